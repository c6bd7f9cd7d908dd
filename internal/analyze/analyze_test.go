package analyze

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/coinsheet/internal/model"
)

func quote(name string, price, marketCap, change float64) model.AssetQuote {
	return model.AssetQuote{
		Name:              name,
		Symbol:            name,
		CurrentPrice:      decimal.NewFromFloat(price),
		MarketCap:         decimal.NewFromFloat(marketCap),
		PriceChangePct24h: decimal.NewFromFloat(change),
	}
}

func snapshotOf(quotes ...model.AssetQuote) model.Snapshot {
	return model.NewSnapshot(quotes, time.Now())
}

func TestAnalyze_FiftyQuotes(t *testing.T) {
	quotes := make([]model.AssetQuote, 0, 50)
	for i := 1; i <= 50; i++ {
		// Market cap grows with price, so the top five are coins 50..46.
		quotes = append(quotes, quote(fmt.Sprintf("c%d", i), float64(i), float64(i*1000), float64(i)-20))
	}

	got, err := Analyze(snapshotOf(quotes...))
	require.NoError(t, err)

	require.True(t, got.AveragePrice.Equal(decimal.RequireFromString("25.5")), "average = %s", got.AveragePrice)
	require.True(t, got.MaxChangePct.Equal(decimal.NewFromInt(30)))
	require.True(t, got.MinChangePct.Equal(decimal.NewFromInt(-19)))
	require.Equal(t, 50, got.Count)

	require.Len(t, got.TopByMarketCap, 5)
	for i, want := range []string{"c50", "c49", "c48", "c47", "c46"} {
		require.Equal(t, want, got.TopByMarketCap[i].Name)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(model.Snapshot{})
	require.Error(t, err)

	var aerr *AnalysisError
	require.True(t, errors.As(err, &aerr))
	require.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestAnalyze_TopLength(t *testing.T) {
	for n := 1; n <= 8; n++ {
		quotes := make([]model.AssetQuote, 0, n)
		for i := 0; i < n; i++ {
			quotes = append(quotes, quote(fmt.Sprintf("c%d", i), 1, float64(i), 0))
		}
		got, err := Analyze(snapshotOf(quotes...))
		require.NoError(t, err)
		require.Len(t, got.TopByMarketCap, min(5, n))
	}
}

func TestAnalyze_StableTies(t *testing.T) {
	got, err := Analyze(snapshotOf(
		quote("a", 1, 10, 0),
		quote("b", 2, 20, 0),
		quote("c", 3, 10, 0),
		quote("d", 4, 20, 0),
	))
	require.NoError(t, err)

	names := make([]string, 0, len(got.TopByMarketCap))
	for _, r := range got.TopByMarketCap {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"b", "d", "a", "c"}, names)
}

func TestAnalyze_AverageIsSumOverCount(t *testing.T) {
	prices := []float64{0.000012, 67123.45, 3500.1, 1, 0.99}
	quotes := make([]model.AssetQuote, 0, len(prices))
	sum := decimal.Zero
	for i, p := range prices {
		quotes = append(quotes, quote(fmt.Sprintf("c%d", i), p, p, 0))
		sum = sum.Add(decimal.NewFromFloat(p))
	}

	got, err := Analyze(snapshotOf(quotes...))
	require.NoError(t, err)

	want := sum.Div(decimal.NewFromInt(int64(len(prices))))
	require.True(t, got.AveragePrice.Sub(want).Abs().LessThan(decimal.New(1, -12)))
}

func TestAnalyze_DoesNotReorderSnapshot(t *testing.T) {
	snap := snapshotOf(quote("small", 1, 1, 0), quote("big", 2, 100, 0))

	_, err := Analyze(snap)
	require.NoError(t, err)
	require.Equal(t, "small", snap.Quotes[0].Name)
}
