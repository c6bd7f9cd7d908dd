package api

import (
	"fmt"
	"strings"

	"github.com/rickgao/coinsheet/internal/model"
)

// ToAssetQuote converts an API coin to the model representation.
// Coins without a name or symbol cannot be rendered and are rejected.
func (c APICoin) ToAssetQuote() (model.AssetQuote, error) {
	name := strings.TrimSpace(c.Name)
	symbol := strings.TrimSpace(c.Symbol)
	if name == "" || symbol == "" {
		return model.AssetQuote{}, fmt.Errorf("coin %q: missing name or symbol", c.ID)
	}

	return model.AssetQuote{
		Name:              name,
		Symbol:            symbol,
		CurrentPrice:      c.CurrentPrice,
		MarketCap:         c.MarketCap,
		TotalVolume:       c.TotalVolume,
		PriceChangePct24h: c.PriceChangePercentage24h,
	}, nil
}

// ToAssetQuotes converts a page of coins, preserving provider order.
func ToAssetQuotes(coins []APICoin) ([]model.AssetQuote, error) {
	quotes := make([]model.AssetQuote, 0, len(coins))
	for i, c := range coins {
		q, err := c.ToAssetQuote()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
