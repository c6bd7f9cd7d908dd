package sheet

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
)

type cellKey struct {
	sheet    string
	row, col int
}

// MemorySink keeps cells in memory. It backs dry runs and tests.
type MemorySink struct {
	mu     sync.Mutex
	cells  map[cellKey]any
	writes int
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{cells: make(map[cellKey]any)}
}

// WriteBlock replaces the region atomically under the sink lock.
func (m *MemorySink) WriteBlock(ctx context.Context, block Block) error {
	if err := ctx.Err(); err != nil {
		return NewTransient("write", err)
	}
	if err := block.Validate(); err != nil {
		return NewFatal("write", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := block.Region
	for k := range m.cells {
		if k.sheet == r.Sheet && r.Contains(k.row, k.col) {
			delete(m.cells, k)
		}
	}
	for i, row := range block.Values {
		for j, v := range row {
			if IsBlank(v) {
				continue
			}
			m.cells[cellKey{sheet: r.Sheet, row: r.Row + i, col: r.Col + j}] = v
		}
	}
	m.writes++
	return nil
}

// Check always succeeds.
func (m *MemorySink) Check(context.Context) error { return nil }

// Cell returns the value at the 1-based position, or nil if blank.
func (m *MemorySink) Cell(sheet string, row, col int) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[cellKey{sheet: sheet, row: row, col: col}]
}

// Writes returns how many blocks have been written.
func (m *MemorySink) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Cells returns a copy of all non-blank cells keyed by A1 address.
func (m *MemorySink) Cells() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.cells))
	for k, v := range m.cells {
		out[cellAddress(k)] = v
	}
	return out
}

// Print writes the sheet's used range as an aligned table.
func (m *MemorySink) Print(w io.Writer, sheet string) error {
	m.mu.Lock()
	maxRow, maxCol := 0, 0
	for k := range m.cells {
		if k.sheet != sheet {
			continue
		}
		maxRow = max(maxRow, k.row)
		maxCol = max(maxCol, k.col)
	}
	rows := make([][]string, maxRow)
	for i := range rows {
		rows[i] = make([]string, maxCol)
		for j := range rows[i] {
			if v, ok := m.cells[cellKey{sheet: sheet, row: i + 1, col: j + 1}]; ok {
				rows[i][j] = fmt.Sprint(v)
			}
		}
	}
	m.mu.Unlock()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func cellAddress(k cellKey) string {
	addr := fmt.Sprintf("%s%d", ColumnName(k.col), k.row)
	if k.sheet == "" {
		return addr
	}
	return quoteSheet(k.sheet) + "!" + addr
}
