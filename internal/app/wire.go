// Package app assembles the service components from configuration
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"farecast-service/internal/domain/repository"
	"farecast-service/internal/infrastructure/config"
	"farecast-service/internal/infrastructure/oauth"
	"farecast-service/internal/infrastructure/persistence"
	"farecast-service/internal/infrastructure/router"
	repo "farecast-service/internal/interface/repository"
	"farecast-service/internal/usecase"
	"farecast-service/pkg/logger"
	"farecast-service/pkg/metrics"
	"farecast-service/templates"
)

const redisKeyPrefix = "farecast:"

// NewMarkerRepository opens the configured marker backend. The returned
// close function releases its connection.
func NewMarkerRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.MarkerRepository, func(), error) {
	switch cfg.MarkerBackend {
	case "redis":
		client, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("Using Redis marker store", "addr", cfg.RedisAddr)
		return repo.NewRedisMarkerRepository(client, redisKeyPrefix), func() { _ = client.Close() }, nil

	case "mongo":
		client, db, err := persistence.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		markers, err := repo.NewMongoMarkerRepository(ctx, db)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info("Using MongoDB marker store", "database", cfg.MongoDB)
		return markers, func() { _ = client.Disconnect(context.Background()) }, nil

	case "postgres":
		db, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		markers, err := repo.NewGormMarkerRepository(db)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		log.Info("Using PostgreSQL marker store")
		return markers, closeDB, nil

	default:
		log.Warn("Using in-memory marker store, daily runs are not deduplicated across restarts")
		return repo.NewMemoryMarkerRepository(), func() {}, nil
	}
}

// NewCommandRouter registers every slash command the bot answers
func NewCommandRouter(log logger.Logger) *router.CommandRouter {
	r := router.NewCommandRouter(log)
	r.Register(templates.NewPingCommand())
	return r
}

// NewDiscordRepository builds the chat client from configuration
func NewDiscordRepository(cfg *config.Config, log logger.Logger) *repo.DiscordRepository {
	client := &http.Client{Timeout: 30 * time.Second}
	return repo.NewDiscordRepository(cfg.DiscordAPIBaseURL, cfg.DiscordToken, cfg.DiscordChannelID, client, log)
}

// NewCommandRepository builds the client used to register slash commands
func NewCommandRepository(cfg *config.Config, log logger.Logger) repository.CommandRepository {
	return NewDiscordRepository(cfg, log)
}

// NewFareJob wires the credential, query, format and publish components
func NewFareJob(cfg *config.Config, m *metrics.Metrics, log logger.Logger) *usecase.FareJob {
	client := &http.Client{Timeout: 30 * time.Second}
	return usecase.NewFareJob(
		oauth.NewAmadeusOAuth(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, client, log),
		repo.NewAmadeusFareRepository(cfg.AmadeusBaseURL, client, log),
		templates.NewFareDigest(),
		NewDiscordRepository(cfg, log),
		usecase.FareJobConfig{
			Origin:       cfg.Origin,
			Currency:     cfg.Currency,
			Destinations: cfg.Destinations,
		},
		m,
		log,
	)
}

// NewScheduleGate wires the job behind the daily window in the configured timezone
func NewScheduleGate(cfg *config.Config, job usecase.Runner, markers repository.MarkerRepository, m *metrics.Metrics, log logger.Logger) (*usecase.ScheduleGate, error) {
	loc, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.ScheduleTimezone, err)
	}
	return usecase.NewScheduleGate(job, markers, loc, log,
		usecase.WithRetryFailed(cfg.ScheduleRetryFailed),
		usecase.WithMetrics(m),
	), nil
}
