package cache

import (
	"context"
	"fmt"

	"go-clinic-workflow/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to the device-local Redis instance backing the
// local cache and session state.
func NewRedisClient(cfg config.LocalStoreConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to local store: %w", err)
	}

	logrus.Info("Successfully connected to local store")

	return client, nil
}
