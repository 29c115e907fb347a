package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/Mdtr3002/hms-be/internal/app"
	"github.com/Mdtr3002/hms-be/internal/config"
	"github.com/Mdtr3002/hms-be/internal/handler/health"
	promhandler "github.com/Mdtr3002/hms-be/internal/handler/prometheus"
	"github.com/Mdtr3002/hms-be/internal/router"
	"github.com/Mdtr3002/hms-be/internal/service"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/pkg/auth"
	"github.com/Mdtr3002/hms-be/pkg/logger"
	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-be",
		Short: "Hospital management admin API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Setup(logger.Config{
		Level:   cfg.Log.Level,
		Service: cfg.ServiceName,
		Console: cfg.Log.Console,
	})
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create indexes and tables for every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			s, err := app.OpenStore(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer s.Close(context.Background())

			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info().Str("driver", cfg.Database.Driver).Msg("migration complete")
			return nil
		},
	}
}

func runServer(cfg *config.Config) error {
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics("hms", "", registry)

	raw, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer raw.Close(context.Background())
	s := store.Instrument(raw, m)

	broker, err := app.OpenBroker(ctx, cfg.Queue, log.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	if broker != nil {
		defer broker.Close()
	}
	publisher := app.NewPublisher(broker, cfg.Queue.Channel, log.Logger, m)

	var jwt auth.JWTService
	if cfg.Auth.JWTSecret != "" {
		jwt = auth.NewJWTService(cfg.Auth.JWTSecret)
	}

	controllers := app.Controllers(app.NewRepositories(s), service.Deps{Publisher: publisher})
	engine := router.NewRouter(router.RouterConfig{
		Mode:             cfg.Server.Mode,
		CORSOrigins:      cfg.CORS.AllowedOrigins,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		JWT:              jwt,
	},
		health.NewHandler(s),
		promhandler.New(registry),
		controllers,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}
