package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mentorly/config"
	"mentorly/services/tasks"
)

// RedisOpt is the asynq connection for the availability queue.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewAvailabilityMux routes availability tasks to their handler.
func NewAvailabilityMux(logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAvailabilityBooked, handleAvailabilityTask(logger))
	return mux
}

// RunAvailabilityWorker consumes availability tasks until ctx is done.
func RunAvailabilityWorker(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	go monitorRedisConnection(ctx, cfg, logger)

	logger.Info("Starting availability worker", zap.String("redis", cfg.RedisAddr), zap.Int("db", cfg.RedisQueueDB))
	const maxAttempts = 5
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = srv.Start(NewAvailabilityMux(logger)); err == nil {
			break
		}
		logger.Warn("Failed to start worker", zap.Int("attempt", attempt), zap.Int("max_attempts", maxAttempts), zap.Error(err))
		if errors.Is(err, asynq.ErrServerClosed) || attempt == maxAttempts {
			return fmt.Errorf("start availability worker: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(attempt*2) * time.Second):
		}
	}

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("Availability worker stopped")
	return nil
}

func handleAvailabilityTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseAvailabilityPayload(task)
		if err != nil {
			logger.Error("Invalid availability payload", zap.Error(err))
			// A payload that never decodes must not be retried.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info(fmt.Sprintf("Mentor %s availability on %s updated: %s - %s", p.MentorID, p.Date, p.StartTime, p.EndTime),
			zap.String("appointment_id", p.AppointmentID),
		)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis connection lost", zap.Error(err))
			}
		}
	}
}
