package entity

import (
	"fmt"
	"strings"
	"time"
)

// Pipeline stages a destination can fail in
const (
	StageQuery   = "query"
	StageFormat  = "format"
	StagePublish = "publish"
)

// DestinationOutcome is the result of one destination's pipeline
type DestinationOutcome struct {
	Destination string
	Code        string
	Fetched     int
	Ranked      int
	Published   bool
	Stage       string
	Err         error
}

// Failed reports whether this destination's pipeline did not complete
func (o DestinationOutcome) Failed() bool {
	return o.Err != nil
}

// RunReport summarizes one job run
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []DestinationOutcome
}

// FailedCount returns how many destinations failed
func (r *RunReport) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Err returns nil when every destination succeeded, otherwise an error
// wrapping ErrPartialRun that names the failed destinations.
func (r *RunReport) Err() error {
	var failed []string
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, fmt.Sprintf("%s (%s): %v", o.Destination, o.Stage, o.Err))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d destinations failed: %s",
		ErrPartialRun, len(failed), len(r.Outcomes), strings.Join(failed, "; "))
}
