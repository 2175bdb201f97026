package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"
)

func TestCheapestDatesSendsQueryAndBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shopping/flight-dates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("origin") != "SCL" || q.Get("destination") != "TYO" || q.Get("currencyCode") != "CLP" {
			t.Errorf("unexpected query %v", q)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"departureDate":"2025-03-01","returnDate":"2025-03-15","price":{"total":"850000.00","currency":"CLP"}},
			{"departureDate":"2025-03-02"}
		]}`))
	}))
	defer srv.Close()

	repo := NewAmadeusFareRepository(srv.URL+"/", srv.Client(), logger.NewNopLogger())
	quotes, err := repo.CheapestDates(context.Background(), "tok", "SCL", "TYO", "CLP")
	if err != nil {
		t.Fatalf("CheapestDates: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].ReturnDate != "2025-03-15" || quotes[0].Price == nil || quotes[0].Price.Total != "850000.00" {
		t.Fatalf("unexpected first quote %+v", quotes[0])
	}
	if quotes[1].Price != nil {
		t.Fatalf("expected nil price on second quote")
	}
}

func TestCheapestDatesMissingDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"count":0}}`))
	}))
	defer srv.Close()

	repo := NewAmadeusFareRepository(srv.URL, srv.Client(), logger.NewNopLogger())
	quotes, err := repo.CheapestDates(context.Background(), "tok", "SCL", "OSA", "CLP")
	if err != nil {
		t.Fatalf("CheapestDates: %v", err)
	}
	if quotes == nil || len(quotes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", quotes)
	}
}

func TestCheapestDatesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewAmadeusFareRepository(srv.URL, srv.Client(), logger.NewNopLogger())
	_, err := repo.CheapestDates(context.Background(), "tok", "SCL", "TYO", "CLP")
	var ue *entity.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 UpstreamError, got %v", err)
	}
	if ue.Error() != "amadeus flight-dates 500" {
		t.Fatalf("unexpected message %q", ue.Error())
	}
}
