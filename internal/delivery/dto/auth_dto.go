package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
}

// SessionResponse describes the logged-in user.
type SessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
