package api

import "github.com/shopspring/decimal"

// PingResponse from GET /ping
type PingResponse struct {
	GeckoSays string `json:"gecko_says"`
}

// APICoin is one entry of GET /coins/markets. Only the fields the pipeline
// renders are decoded; null numbers decode as zero.
type APICoin struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Symbol                   string          `json:"symbol"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	MarketCapRank            int             `json:"market_cap_rank"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	LastUpdated              string          `json:"last_updated"`
}

// OrderMarketCapDesc ranks /coins/markets by descending market cap.
const OrderMarketCapDesc = "market_cap_desc"

// CoinMarketsOptions configures a GetCoinMarkets request.
type CoinMarketsOptions struct {
	VsCurrency string
	Order      string
	PerPage    int
	Page       int
	Sparkline  bool
}
