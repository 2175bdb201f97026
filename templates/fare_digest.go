package templates

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"farecast-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// MaxMessageLength is the platform limit for one message body
	MaxMessageLength = 2000

	sourceLine = "_(fuente: Amadeus)_"
	emptyLine  = "Sin datos hoy"
)

// destinationLabels overrides the title-cased AM_DEST_ name where the
// Spanish name differs
var destinationLabels = map[string]string{
	"TOKYO": "Tokio",
}

// FareDigest renders ranked fares as a chat message in Chilean Spanish
type FareDigest struct {
	printer *message.Printer
}

// NewFareDigest creates a formatter for the es-CL locale
func NewFareDigest() *FareDigest {
	return &FareDigest{
		printer: message.NewPrinter(language.MustParse("es-CL")),
	}
}

// Label returns the human name for a destination, e.g. TOKYO -> Tokio
func (d *FareDigest) Label(dest entity.Destination) string {
	if label, ok := destinationLabels[strings.ToUpper(dest.Name)]; ok {
		return label
	}
	name := strings.ReplaceAll(dest.Name, "_", " ")
	if name == "" {
		return dest.Code
	}
	// Casers carry state, so one per call
	return cases.Title(language.Spanish).String(name)
}

// Title builds the digest headline
func (d *FareDigest) Title(origin string, dest entity.Destination) string {
	return fmt.Sprintf("Top 10 pasajes más baratos %s ⇄ %s (%s)", origin, d.Label(dest), dest.Code)
}

// Render builds the full message for one destination. fallbackCurrency is
// used for records that carry no currency of their own.
func (d *FareDigest) Render(origin string, dest entity.Destination, fares []entity.RankedFare, fallbackCurrency string) (string, error) {
	lines := []string{
		fmt.Sprintf("✈️ **%s**", d.Title(origin, dest)),
		sourceLine,
		"",
	}

	if len(fares) == 0 {
		lines = append(lines, emptyLine)
	}
	for i, fare := range fares {
		var b strings.Builder
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(fare.Quote.DepartureDate)
		if fare.Quote.ReturnDate != "" {
			b.WriteString(" → ")
			b.WriteString(fare.Quote.ReturnDate)
		}
		b.WriteString(" — ")
		b.WriteString(d.FormatAmount(fare, fallbackCurrency))
		lines = append(lines, b.String())
	}

	content := strings.Join(lines, "\n")
	if n := utf8.RuneCountInString(content); n > MaxMessageLength {
		return "", fmt.Errorf("digest for %s is %d characters, limit is %d", dest.Code, n, MaxMessageLength)
	}
	return content, nil
}

// FormatAmount prints the fare amount with no fraction digits and es-CL
// grouping, prefixed by the local currency symbol.
func (d *FareDigest) FormatAmount(fare entity.RankedFare, fallbackCurrency string) string {
	code := strings.ToUpper(fare.Currency(fallbackCurrency))
	value := d.formatWhole(fare.Amount)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return value + " " + code
	}
	symbol := d.printer.Sprint(currency.Symbol(unit))
	if symbol == unit.String() {
		symbol = d.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return symbol + value
}

// formatWhole rounds half away from zero. Amounts past int64 keep their
// magnitude but only the leading float64 digits.
func (d *FareDigest) formatWhole(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if n := rounded.BigInt(); n.IsInt64() {
		return d.printer.Sprint(number.Decimal(n.Int64(), number.MaxFractionDigits(0)))
	}
	return d.printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Precision(15), number.MaxFractionDigits(0)))
}
