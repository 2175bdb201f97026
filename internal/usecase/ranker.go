package usecase

import (
	"sort"

	"farecast-service/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// TopFaresLimit is the number of fares kept per destination
const TopFaresLimit = 10

// RankTopFares drops quotes without a usable price, sorts the rest by
// ascending amount and keeps at most limit of them. Equal amounts keep
// their upstream order.
func RankTopFares(quotes []entity.FareQuote, limit int) []entity.RankedFare {
	ranked := make([]entity.RankedFare, 0, len(quotes))
	for _, q := range quotes {
		if q.Price == nil || q.Price.Total == "" {
			continue
		}
		amount, err := decimal.NewFromString(q.Price.Total)
		if err != nil || amount.IsNegative() {
			continue
		}
		ranked = append(ranked, entity.RankedFare{Quote: q, Amount: amount})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.LessThan(ranked[j].Amount)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
