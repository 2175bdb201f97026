package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/internal/domain/repository"
	"farecast-service/pkg/logger"
)

// AmadeusFareRepository queries the cheapest-dates search endpoint
type AmadeusFareRepository struct {
	logger     logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewAmadeusFareRepository creates a new Amadeus fare repository.
// A nil httpClient gets a client with a 30s timeout.
func NewAmadeusFareRepository(baseURL string, httpClient *http.Client, logger logger.Logger) repository.FareRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &AmadeusFareRepository{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type flightDatesResponse struct {
	Data []entity.FareQuote `json:"data"`
}

// CheapestDates returns the records of one cheapest-dates search.
// A response without a data field yields an empty list.
func (r *AmadeusFareRepository) CheapestDates(ctx context.Context, token, origin, destination, currency string) ([]entity.FareQuote, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	query.Set("currencyCode", currency)
	endpoint := fmt.Sprintf("%s/v1/shopping/flight-dates?%s", r.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight-dates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entity.UpstreamError{Op: "amadeus flight-dates", StatusCode: resp.StatusCode}
	}

	var body flightDatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode flight-dates response: %w", err)
	}

	r.logger.Debug("Fetched cheapest dates",
		"origin", origin,
		"destination", destination,
		"count", len(body.Data))

	if body.Data == nil {
		return []entity.FareQuote{}, nil
	}
	return body.Data, nil
}
