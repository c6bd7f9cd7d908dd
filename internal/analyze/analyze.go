// Package analyze derives summary statistics from a market snapshot.
package analyze

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rickgao/coinsheet/internal/model"
)

// ErrEmptySnapshot is wrapped by AnalysisError when there is nothing to summarize.
var ErrEmptySnapshot = errors.New("snapshot has no quotes")

// AnalysisError is returned when a snapshot cannot be summarized.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze snapshot: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyze computes the summary for one snapshot. It is pure: the snapshot is
// not modified and the same input always yields the same Summary.
func Analyze(snapshot model.Snapshot) (model.Summary, error) {
	quotes := snapshot.Quotes
	if len(quotes) == 0 {
		return model.Summary{}, &AnalysisError{Err: ErrEmptySnapshot}
	}

	sum := decimal.Zero
	maxChange := quotes[0].PriceChangePct24h
	minChange := quotes[0].PriceChangePct24h
	for _, q := range quotes {
		sum = sum.Add(q.CurrentPrice)
		if q.PriceChangePct24h.GreaterThan(maxChange) {
			maxChange = q.PriceChangePct24h
		}
		if q.PriceChangePct24h.LessThan(minChange) {
			minChange = q.PriceChangePct24h
		}
	}

	return model.Summary{
		TopByMarketCap: TopByMarketCap(quotes, model.TopN),
		AveragePrice:   sum.Div(decimal.NewFromInt(int64(len(quotes)))),
		MaxChangePct:   maxChange,
		MinChangePct:   minChange,
		Count:          len(quotes),
	}, nil
}

// TopByMarketCap returns up to n assets with the largest market cap, largest
// first. Equal market caps keep their provider order.
func TopByMarketCap(quotes []model.AssetQuote, n int) []model.RankedAsset {
	ranked := make([]model.AssetQuote, len(quotes))
	copy(ranked, quotes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketCap.GreaterThan(ranked[j].MarketCap)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]model.RankedAsset, 0, n)
	for _, q := range ranked[:n] {
		out = append(out, model.RankedAsset{
			Name:         q.Name,
			Symbol:       q.Symbol,
			CurrentPrice: q.CurrentPrice,
		})
	}
	return out
}
