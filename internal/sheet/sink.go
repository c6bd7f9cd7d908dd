package sheet

import (
	"context"
	"fmt"
)

// Block is a full replacement for one region. Values has exactly
// Region.Rows rows of Region.Cols cells; "" clears a cell.
type Block struct {
	Region Region
	Values [][]any
}

// Sink stores rendered blocks.
//
//go:generate mockgen -package=sheet -destination=mock_sink_test.go -source=sink.go Sink
type Sink interface {
	// WriteBlock replaces every cell of the block's region in one operation.
	WriteBlock(ctx context.Context, block Block) error
	// Check verifies the sink is reachable and the credentials grant access.
	Check(ctx context.Context) error
}

// Validate checks the values match the region's shape.
func (b Block) Validate() error {
	if b.Region.Rows < 1 || b.Region.Cols < 1 || b.Region.Row < 1 || b.Region.Col < 1 {
		return fmt.Errorf("invalid region %+v", b.Region)
	}
	if len(b.Values) != b.Region.Rows {
		return fmt.Errorf("block %s has %d rows, want %d", b.Region.A1(), len(b.Values), b.Region.Rows)
	}
	for i, row := range b.Values {
		if len(row) != b.Region.Cols {
			return fmt.Errorf("block %s row %d has %d cells, want %d", b.Region.A1(), i, len(row), b.Region.Cols)
		}
	}
	return nil
}

// IsBlank reports whether a cell value clears the cell.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
