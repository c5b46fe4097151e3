package utils

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient opens a client on the given logical database and checks
// that the server answers.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s (db %d): %w", addr, db, err)
	}
	return client, nil
}

// RedisPinger adapts a redis client to the health monitor.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
