package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature is returned when a webhook signature is missing or invalid
	ErrBadSignature = errors.New("bad signature")
	// ErrMissingPublicKey is returned when no verification key is configured
	ErrMissingPublicKey = errors.New("public key not configured")
	// ErrCredential marks a run aborted because no bearer token was obtained
	ErrCredential = errors.New("credential acquisition failed")
	// ErrPartialRun marks a run where at least one destination failed
	ErrPartialRun = errors.New("partial run failure")
)

// UpstreamError is a non-2xx answer from an upstream HTTP API
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %d: %s", e.Op, e.StatusCode, e.Body)
}
