package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farecast-service/internal/app"
	"farecast-service/internal/infrastructure/config"
	"farecast-service/internal/interface/webhook"
	"farecast-service/internal/usecase"
	"farecast-service/pkg/logger"
	"farecast-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Farecast Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics("farecast", registry)

	markers, closeMarkers, err := app.NewMarkerRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open marker store", "error", err)
	}
	defer closeMarkers()

	verifier, err := webhook.NewVerifier(cfg.DiscordPublicKey)
	if err != nil {
		log.Fatal("Invalid DISCORD_PUBLIC_KEY", "error", err)
	}
	if !verifier.Configured() {
		log.Warn("DISCORD_PUBLIC_KEY not set, interactions will be answered with 500")
	}
	if cfg.EchoVerify {
		log.Warn("ECHO_VERIFY enabled, verified interactions are echoed back")
	}

	// Start the daily schedule ticker in a goroutine
	if err := cfg.ValidateJob(); err != nil {
		log.Warn("Daily job disabled", "error", err)
	} else {
		gate, err := app.NewScheduleGate(cfg, app.NewFareJob(cfg, m, log), markers, m, log)
		if err != nil {
			log.Fatal("Failed to create schedule gate", "error", err)
		}

		go func() {
			ticker := time.NewTicker(cfg.TickInterval)
			defer ticker.Stop()

			runTick(ctx, gate, log)
			for {
				select {
				case <-ctx.Done():
					log.Info("Schedule ticker stopped")
					return
				case <-ticker.C:
					runTick(ctx, gate, log)
				}
			}
		}()
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle(webhook.InteractionsPath, webhook.NewHandler(verifier, usecase.NewInteractionDispatcher(app.NewCommandRouter(log), log), cfg.EchoVerify, m, log))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/", webhook.Liveness)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the ticker

	log.Info("Farecast Service stopped")
}

func runTick(ctx context.Context, gate *usecase.ScheduleGate, log logger.Logger) {
	decision, err := gate.Tick(ctx)
	if err != nil {
		log.Error("Schedule tick failed", "decision", decision, "error", err)
		return
	}
	log.Debug("Schedule tick", "decision", decision)
}
