package sheet

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rickgao/coinsheet/internal/model"
)

// TimestampLayout formats capture times in the snapshot region.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	snapshotCols = 7
	summaryCols  = 3
	// label + top table + blank + three statistic lines
	summaryRows = 1 + model.TopN + 1 + 3
)

// Layout places the snapshot and summary regions on a sheet.
type Layout struct {
	Sheet    string
	PageSize int
}

// SnapshotRegion holds one row per requested quote plus a trailing spacer row.
func (l Layout) SnapshotRegion() Region {
	return Region{Sheet: l.Sheet, Row: 1, Col: 1, Rows: l.PageSize + 1, Cols: snapshotCols}
}

// SummaryRegion starts right after the snapshot region.
func (l Layout) SummaryRegion() Region {
	return Region{Sheet: l.Sheet, Row: l.PageSize + 2, Col: 1, Rows: summaryRows, Cols: summaryCols}
}

// SnapshotBlock renders quotes into the snapshot region. Quotes beyond the
// region are dropped; missing rows are blank so stale rows are cleared.
func (l Layout) SnapshotBlock(snapshot model.Snapshot) Block {
	region := l.SnapshotRegion()
	values := blankRows(region)
	captured := snapshot.CapturedAt.In(model.ReportingZone).Format(TimestampLayout)

	for i, q := range snapshot.Quotes {
		if i >= l.PageSize {
			break
		}
		values[i] = []any{
			q.Name,
			q.Symbol,
			number(q.CurrentPrice),
			number(q.MarketCap),
			number(q.TotalVolume),
			number(q.PriceChangePct24h),
			captured,
		}
	}
	return Block{Region: region, Values: values}
}

// SummaryBlock renders the summary region.
func (l Layout) SummaryBlock(summary model.Summary) Block {
	region := l.SummaryRegion()
	values := blankRows(region)

	values[0][0] = "Top 5 Cryptocurrencies by Market Cap:"
	for i, r := range summary.TopByMarketCap {
		if i >= model.TopN {
			break
		}
		values[1+i] = []any{r.Name, r.Symbol, number(r.CurrentPrice)}
	}

	// The average line names the requested page size, not the quotes received.
	stats := 1 + model.TopN + 1
	values[stats][0] = fmt.Sprintf("Average price of the top %d cryptocurrencies: $%s", l.PageSize, fixed2(summary.AveragePrice))
	values[stats+1][0] = fmt.Sprintf("Highest 24-hour price change: %s%%", fixed2(summary.MaxChangePct))
	values[stats+2][0] = fmt.Sprintf("Lowest 24-hour price change: %s%%", fixed2(summary.MinChangePct))

	return Block{Region: region, Values: values}
}

func blankRows(r Region) [][]any {
	rows := make([][]any, r.Rows)
	for i := range rows {
		row := make([]any, r.Cols)
		for j := range row {
			row[j] = ""
		}
		rows[i] = row
	}
	return rows
}

// fixed2 formats d with two decimals from its float64 value, so exact
// halves round to even (0.125 -> 0.12) like the sheet's existing readers expect.
func fixed2(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', 2, 64)
}

// number converts a decimal to a value sinks store as a numeric cell.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
