package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/internal/domain/repository"
	"farecast-service/pkg/logger"
	"farecast-service/pkg/metrics"

	// Embedded zone database so the gate works on hosts without one
	_ "time/tzdata"
)

const (
	windowHour        = 12
	windowStartMinute = 30
	windowEndMinute   = 35
)

// GateDecision is what a single tick ended up doing
type GateDecision string

const (
	DecisionOutsideWindow GateDecision = "outside_window"
	DecisionAlreadyRan    GateDecision = "already_ran"
	DecisionRan           GateDecision = "ran"
	DecisionRanFailed     GateDecision = "ran_failed"
	DecisionMarkerError   GateDecision = "marker_error"
)

// Runner is anything that performs one job run
type Runner interface {
	Run(ctx context.Context) (*entity.RunReport, error)
}

// ScheduleGate turns a periodic tick into at most one job run per local day
type ScheduleGate struct {
	job         Runner
	markers     repository.MarkerRepository
	location    *time.Location
	retryFailed bool
	now         func() time.Time
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// GateOption customizes a ScheduleGate
type GateOption func(*ScheduleGate)

// WithClock replaces time.Now
func WithClock(now func() time.Time) GateOption {
	return func(g *ScheduleGate) { g.now = now }
}

// WithRetryFailed leaves the day unmarked when the run failed to get a token,
// so the next tick inside the window tries again.
func WithRetryFailed(retry bool) GateOption {
	return func(g *ScheduleGate) { g.retryFailed = retry }
}

// WithMetrics records gate decisions
func WithMetrics(m *metrics.Metrics) GateOption {
	return func(g *ScheduleGate) { g.metrics = m }
}

// NewScheduleGate creates a gate evaluating the window in location
func NewScheduleGate(job Runner, markers repository.MarkerRepository, location *time.Location, logger logger.Logger, opts ...GateOption) *ScheduleGate {
	g := &ScheduleGate{
		job:      job,
		markers:  markers,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// InDailyWindow reports whether local is within [12:30, 12:35)
func InDailyWindow(local time.Time) bool {
	return local.Hour() == windowHour &&
		local.Minute() >= windowStartMinute &&
		local.Minute() < windowEndMinute
}

// Tick evaluates the window and the marker, running the job when due.
// The marker is written after any attempt unless the retry option applies.
func (g *ScheduleGate) Tick(ctx context.Context) (GateDecision, error) {
	local := g.now().In(g.location)
	if !InDailyWindow(local) {
		return g.decide(DecisionOutsideWindow), nil
	}

	today := local.Format(entity.MarkerDateLayout)
	last, found, err := g.markers.Get(ctx, entity.DailyRunMarkerKey)
	if err != nil {
		g.logger.Error("Failed to read run marker", "key", entity.DailyRunMarkerKey, "error", err)
		return g.decide(DecisionMarkerError), fmt.Errorf("read marker: %w", err)
	}
	if found && last == today {
		g.logger.Debug("Daily job already ran", "date", today)
		return g.decide(DecisionAlreadyRan), nil
	}

	g.logger.Info("Daily window open, running job", "date", today, "lastRun", last)
	_, runErr := g.job.Run(ctx)

	if runErr != nil && g.retryFailed && errors.Is(runErr, entity.ErrCredential) {
		g.logger.Warn("Job failed before publishing, leaving day unmarked", "date", today, "error", runErr)
		return g.decide(DecisionRanFailed), runErr
	}

	// The marker must land even if ctx was cancelled mid-run
	if err := g.markers.Put(context.WithoutCancel(ctx), entity.DailyRunMarkerKey, today, entity.DailyRunMarkerTTL); err != nil {
		g.logger.Error("Failed to write run marker", "date", today, "error", err)
		return g.decide(DecisionMarkerError), errors.Join(runErr, fmt.Errorf("write marker: %w", err))
	}

	if runErr != nil {
		g.logger.Error("Daily job failed", "date", today, "error", runErr)
		return g.decide(DecisionRanFailed), runErr
	}
	return g.decide(DecisionRan), nil
}

func (g *ScheduleGate) decide(d GateDecision) GateDecision {
	if g.metrics != nil {
		g.metrics.GateDecisions.WithLabelValues(string(d)).Inc()
	}
	return d
}
