package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentorly/config"
	"mentorly/handlers"
	"mentorly/middleware"
	"mentorly/routes"
	"mentorly/utils"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts)
		},
	}
}

// NewRouter builds the engine with the global middleware and every route.
func NewRouter(logger *zap.Logger, perMinute int, hb *handlers.HandlerBundle) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(perMinute))
	routes.RegisterRoutes(router, hb)
	return router
}

func runServer(ctx context.Context, opts *RootOptions) error {
	cfg, logger := opts.Config, opts.Logger
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	bookingSvc, err := app.BookingService(ctx)
	if err != nil {
		return err
	}
	hb := handlers.NewHandlerBundle(handlers.NewBookingHandler(bookingSvc), handlers.NewAdminHandler(app.AdminService()))
	utils.StartHealthMonitor(ctx, utils.HealthCheckInterval, app.Pingers)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: NewRouter(logger, cfg.MaxRequestsPerMin, hb),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
