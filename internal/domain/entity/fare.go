package entity

import "github.com/shopspring/decimal"

// FareQuote is one cheapest-date record returned by the fare search
type FareQuote struct {
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate,omitempty"`
	Price         *FarePrice `json:"price,omitempty"`
}

// FarePrice keeps the amount as the upstream decimal string
type FarePrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// RankedFare is a quote whose price parsed into a non-negative amount
type RankedFare struct {
	Quote  FareQuote
	Amount decimal.Decimal
}

// Currency returns the quote currency, or fallback when the record has none
func (r RankedFare) Currency(fallback string) string {
	if r.Quote.Price != nil && r.Quote.Price.Currency != "" {
		return r.Quote.Price.Currency
	}
	return fallback
}

// Destination is one configured fare query target
type Destination struct {
	// Name is the suffix of the AM_DEST_<NAME> variable, e.g. TOKYO
	Name string
	// Code is the IATA city or airport code, e.g. TYO
	Code string
}
