package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportingZone is the fixed zone capture timestamps are rendered in (IST).
var ReportingZone = time.FixedZone("IST", 5*60*60+30*60)

// TopN is the number of assets kept in Summary.TopByMarketCap.
const TopN = 5

// AssetQuote is one ranked asset as returned by the market data provider.
type AssetQuote struct {
	Name              string
	Symbol            string
	CurrentPrice      decimal.Decimal
	MarketCap         decimal.Decimal
	TotalVolume       decimal.Decimal
	PriceChangePct24h decimal.Decimal
}

// Snapshot is one point-in-time capture of ranked quotes, in provider order.
type Snapshot struct {
	Quotes     []AssetQuote
	CapturedAt time.Time
}

// NewSnapshot stamps quotes with a capture time converted to ReportingZone.
func NewSnapshot(quotes []AssetQuote, capturedAt time.Time) Snapshot {
	return Snapshot{Quotes: quotes, CapturedAt: capturedAt.In(ReportingZone)}
}

// Len returns the number of quotes in the snapshot.
func (s Snapshot) Len() int { return len(s.Quotes) }

// RankedAsset is a row of the top-by-market-cap table.
type RankedAsset struct {
	Name         string
	Symbol       string
	CurrentPrice decimal.Decimal
}

// Summary holds statistics derived from exactly one Snapshot.
type Summary struct {
	TopByMarketCap []RankedAsset
	AveragePrice   decimal.Decimal
	MaxChangePct   decimal.Decimal
	MinChangePct   decimal.Decimal
	Count          int // quotes the statistics were computed over
}
