package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Mdtr3002/hms-be/internal/app"
	"github.com/Mdtr3002/hms-be/internal/config"
	"github.com/Mdtr3002/hms-be/internal/store"
	"github.com/Mdtr3002/hms-be/internal/worker"
	"github.com/Mdtr3002/hms-be/pkg/logger"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

func main() {
	var metricsAddr string
	var once bool

	rootCmd := &cobra.Command{
		Use:   "hms-worker",
		Short: "Background jobs for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Setup(logger.Config{
				Level:   cfg.Log.Level,
				Service: cfg.ServiceName + "-worker",
				Console: cfg.Log.Console,
			})
			return run(cfg, metricsAddr, once)
		},
	}
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address for the /metrics endpoint, empty to disable")
	rootCmd.Flags().BoolVar(&once, "once", false, "run a single purge pass and exit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, metricsAddr string, once bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics("hms", "worker", registry)

	raw, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer raw.Close(context.Background())

	repos := app.NewRepositories(store.Instrument(raw, m))
	purger := worker.NewPurgeWorker(repos.Purgeables(), cfg.Worker.Retention, cfg.Worker.PurgeInterval, log.Logger, m)

	if once {
		return purger.RunOnce(ctx)
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		purger.Start(ctx)
	}()

	broker, err := app.OpenBroker(ctx, cfg.Queue, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("change event consumer disabled")
	} else if broker != nil {
		defer broker.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := messaging.Consume(ctx, broker, cfg.Queue.Channel, log.Logger, worker.LogChangeEvents(log.Logger)); err != nil {
				log.Error().Err(err).Msg("change event consumer stopped")
			}
		}()
	}

	log.Info().Dur("interval", cfg.Worker.PurgeInterval).Dur("retention", cfg.Worker.Retention).Msg("worker started")
	<-ctx.Done()
	wg.Wait()
	log.Info().Msg("worker stopped")
	return nil
}
