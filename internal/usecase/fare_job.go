package usecase

import (
	"context"
	"fmt"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/internal/domain/repository"
	"farecast-service/pkg/logger"
	"farecast-service/pkg/metrics"

	"github.com/google/uuid"
)

// DigestFormatter renders one destination's ranked fares as message text
type DigestFormatter interface {
	Render(origin string, dest entity.Destination, fares []entity.RankedFare, fallbackCurrency string) (string, error)
}

// FareJobConfig is the fixed input of every run
type FareJobConfig struct {
	Origin       string
	Currency     string
	Destinations []entity.Destination
}

// FareJob fetches, ranks and publishes the daily fare digest
type FareJob struct {
	tokens    repository.TokenProvider
	fares     repository.FareRepository
	formatter DigestFormatter
	channel   repository.ChannelRepository
	config    FareJobConfig
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewFareJob creates a new fare job. metrics may be nil.
func NewFareJob(
	tokens repository.TokenProvider,
	fares repository.FareRepository,
	formatter DigestFormatter,
	channel repository.ChannelRepository,
	config FareJobConfig,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FareJob {
	return &FareJob{
		tokens:    tokens,
		fares:     fares,
		formatter: formatter,
		channel:   channel,
		config:    config,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run executes one full job. A token failure aborts the run with an error
// wrapping ErrCredential. Destination failures do not stop the others; they
// are recorded in the report and the returned error wraps ErrPartialRun.
func (j *FareJob) Run(ctx context.Context) (*entity.RunReport, error) {
	report := &entity.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := j.logger.With("runID", report.RunID)
	log.Info("Fare job started", "origin", j.config.Origin, "destinations", len(j.config.Destinations))

	defer func() {
		report.FinishedAt = time.Now()
		if j.metrics != nil {
			j.metrics.JobDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
		}
	}()

	token, err := j.tokens.Token(ctx)
	if err != nil {
		log.Error("Failed to acquire token", "error", err)
		j.countRun("credential_failure")
		return report, fmt.Errorf("%w: %w", entity.ErrCredential, err)
	}

	for _, dest := range j.config.Destinations {
		outcome := j.runDestination(ctx, token, dest)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Failed() {
			log.Error("Destination failed",
				"destination", dest.Name,
				"code", dest.Code,
				"stage", outcome.Stage,
				"error", outcome.Err)
			if j.metrics != nil {
				j.metrics.DestinationFailures.WithLabelValues(dest.Code, outcome.Stage).Inc()
			}
			continue
		}
		log.Info("Destination published",
			"destination", dest.Name,
			"code", dest.Code,
			"fetched", outcome.Fetched,
			"ranked", outcome.Ranked)
	}

	if err := report.Err(); err != nil {
		j.countRun("partial_failure")
		log.Warn("Fare job finished with failures", "failed", report.FailedCount())
		return report, err
	}

	j.countRun("success")
	log.Info("Fare job finished", "published", len(report.Outcomes))
	return report, nil
}

func (j *FareJob) runDestination(ctx context.Context, token string, dest entity.Destination) entity.DestinationOutcome {
	outcome := entity.DestinationOutcome{Destination: dest.Name, Code: dest.Code}

	quotes, err := j.fares.CheapestDates(ctx, token, j.config.Origin, dest.Code, j.config.Currency)
	if err != nil {
		outcome.Stage, outcome.Err = entity.StageQuery, err
		return outcome
	}
	outcome.Fetched = len(quotes)

	top := RankTopFares(quotes, TopFaresLimit)
	outcome.Ranked = len(top)

	content, err := j.formatter.Render(j.config.Origin, dest, top, j.config.Currency)
	if err != nil {
		outcome.Stage, outcome.Err = entity.StageFormat, err
		return outcome
	}

	if err := j.channel.PostMessage(ctx, content); err != nil {
		outcome.Stage, outcome.Err = entity.StagePublish, err
		return outcome
	}
	outcome.Published = true
	if j.metrics != nil {
		j.metrics.MessagesPublished.Inc()
	}
	return outcome
}

func (j *FareJob) countRun(outcome string) {
	if j.metrics != nil {
		j.metrics.JobRuns.WithLabelValues(outcome).Inc()
	}
}
