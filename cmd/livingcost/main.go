package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"livingcost/internal/amqp"
	"livingcost/internal/backend"
	"livingcost/internal/coicop"
	"livingcost/internal/config"
	apphttp "livingcost/internal/http"
	applog "livingcost/internal/log"
	"livingcost/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	if err := backendCfg.Validate(); err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}

	profiles, err := coicop.LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		logger.Error("Failed to load household profiles", "error", err, "file", cfg.ProfilesFile)
		os.Exit(1)
	}

	analytics := services.NewAnalyticsService(result.Backend, profiles)

	srv := apphttp.NewServer(":"+cfg.Port, analytics, apphttp.CacheConfig{
		TTL:  cfg.CacheTTL,
		Size: cfg.CacheSize,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional AMQP refresh consumer: the ingest pipeline publishes a
	// message when new CSO extracts land in the data directory.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without refresh consumer", "error", err)
		} else {
			defer client.Close()
			go func() {
				err := client.ConsumeDatasetRefresh(ctx, func(msg *amqp.DatasetRefreshMessage) error {
					if err := result.Backend.Refresh(ctx); err != nil {
						return err
					}
					srv.FlushCaches()
					return nil
				})
				if err != nil && ctx.Err() == nil {
					logger.Error("Refresh consumer stopped", "error", err)
				}
			}()
			logger.Info("Dataset refresh consumer started",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting livingcost server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"data_dir", cfg.DataDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
