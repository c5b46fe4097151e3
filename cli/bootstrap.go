package cli

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mentorly/config"
	"mentorly/cron"
	"mentorly/database"
	"mentorly/database/repository"
	directoryRepo "mentorly/database/repository/directory"
	memoryRepo "mentorly/database/repository/memory"
	schedulerRepo "mentorly/database/repository/scheduler"
	"mentorly/services/admin"
	"mentorly/services/booking"
	"mentorly/utils"
)

// App holds the stores and clients shared by every command.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Directory repository.DirectoryRepository
	Ledger    repository.LedgerRepository
	Pingers   map[string]utils.Pinger

	closers []func() error
}

// Bootstrap opens the store selected by STORE_DRIVER.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger, Pingers: make(map[string]utils.Pinger)}

	switch cfg.StoreDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.onClose(db.Close)
		app.Directory = directoryRepo.NewSQLiteDirectoryRepo(db, cfg.StoreTimeout())
		app.Ledger = schedulerRepo.NewSQLiteSchedulerRepo(db, cfg.StoreTimeout())
		app.Pingers["sqlite"] = database.SQLitePinger{DB: db}

	case "mongo":
		client, err := database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		app.onClose(func() error { return client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDatabase)
		dir, err := directoryRepo.NewMongoDirectoryRepo(ctx, db, cfg.StoreTimeout())
		if err != nil {
			app.Close()
			return nil, err
		}
		ledger, err := schedulerRepo.NewMongoSchedulerRepo(ctx, db, cfg.StoreTimeout())
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Directory, app.Ledger = dir, ledger
		app.Pingers["mongo"] = database.MongoPinger{Client: client}

	case "memory":
		store := memoryRepo.NewStore()
		app.Directory, app.Ledger = store, store

	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	logger.Info("Store ready", zap.String("driver", cfg.StoreDriver))
	return app, nil
}

// BookingService applies the configured lock and notification drivers.
func (a *App) BookingService(ctx context.Context) (*booking.DefaultBookingService, error) {
	svc := booking.NewBookingService(a.Directory, a.Ledger, a.Logger)

	if a.Config.LockDriver == "redis" {
		client, err := utils.NewRedisClient(ctx, a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisLockDB)
		if err != nil {
			return nil, err
		}
		a.onClose(client.Close)
		locker := booking.NewRedisLocker(client, a.Config.LockTTL())
		locker.Logger = a.Logger
		svc.Locker = locker
		a.Pingers["redis"] = utils.RedisPinger{Client: client}
	}

	if a.Config.NotifyDriver == "asynq" {
		queue := asynq.NewClient(cron.RedisOpt(a.Config))
		a.onClose(queue.Close)
		svc.Notifier = booking.QueueNotifier{Queue: queue, Logger: a.Logger}
	}
	return svc, nil
}

func (a *App) AdminService() *admin.DefaultAdminService {
	return admin.NewAdminService(a.Directory, a.Ledger, a.Logger)
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases clients in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("Close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
