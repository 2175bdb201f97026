package repository

import (
	"context"

	"farecast-service/internal/domain/entity"
)

// FareRepository queries cheapest fares between two locations
type FareRepository interface {
	CheapestDates(ctx context.Context, token, origin, destination, currency string) ([]entity.FareQuote, error)
}

// TokenProvider acquires a fresh bearer token for the fare API
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
