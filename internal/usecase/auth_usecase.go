package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/domain/repository"
	"go-clinic-workflow/internal/service"
	"go-clinic-workflow/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginUnavailable   = errors.New("login service unavailable")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, username, tokenID string) error
}

// authUsecase signs staff in against the remote users collection. Unlike
// patient and consultation data, credentials are never cached locally, so
// login needs the remote store reachable. The issued token is marked
// active in local Redis; logout deletes that mark to revoke the token and
// tears down the workflow session.
type authUsecase struct {
	log         *logrus.Logger
	remote      repository.RemoteStore
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	sessions    *service.SessionManager
}

func NewAuthUsecase(
	log *logrus.Logger,
	remote repository.RemoteStore,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	sessions *service.SessionManager,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		remote:      remote,
		jwtService:  jwtService,
		redisClient: redisClient,
		sessions:    sessions,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	users, err := u.remote.GetUsersWhere(ctx, "username", req.Username)
	if err != nil {
		u.log.Warnf("User lookup failed: %+v", err)
		return nil, ErrLoginUnavailable
	}

	var role string
	found := false
	for _, candidate := range users {
		if bcrypt.CompareHashAndPassword([]byte(candidate.Password), []byte(req.Password)) == nil {
			role = candidate.Role
			found = true
			break
		}
	}
	if !found {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateToken(req.Username, role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	sessionKey := SessionTokenKey(req.Username, tokenID)
	if err := u.redisClient.Set(ctx, sessionKey, "1", u.jwtService.GetExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store session token: %+v", err)
		return nil, err
	}

	u.sessions.Begin(req.Username)

	u.log.Infof("User %s logged in as %s", req.Username, role)

	return &dto.LoginResponse{
		Token:     token,
		Username:  req.Username,
		Role:      role,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, username, tokenID string) error {
	if err := u.redisClient.Del(ctx, SessionTokenKey(username, tokenID)).Err(); err != nil {
		u.log.Warnf("Failed to revoke session token: %+v", err)
		return err
	}

	u.sessions.End(username)

	u.log.Infof("User %s logged out", username)
	return nil
}

// SessionTokenKey is the Redis key marking a token as an active session.
// The auth middleware checks it; logout deletes it.
func SessionTokenKey(username, tokenID string) string {
	return fmt.Sprintf("session:%s:%s", username, tokenID)
}
