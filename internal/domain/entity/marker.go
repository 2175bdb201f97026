package entity

import "time"

const (
	// DailyRunMarkerKey is the single idempotency key used by the daily job
	DailyRunMarkerKey = "last_run_cl"
	// DailyRunMarkerTTL bounds how long a run marker is retained
	DailyRunMarkerTTL = 48 * time.Hour
	// MarkerDateLayout is the YYYY-MM-DD layout stored in the marker
	MarkerDateLayout = "2006-01-02"
)

// IdempotencyMarker records the local date of the last attempted daily run
type IdempotencyMarker struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	ExpiresAt time.Time `bson:"expiresAt"`
}
