package sheet

import (
	"fmt"
	"strings"
)

// Region is a rectangle of cells on one sheet. Row and Col are 1-based.
type Region struct {
	Sheet string
	Row   int
	Col   int
	Rows  int
	Cols  int
}

// LastRow returns the 1-based index of the bottom row.
func (r Region) LastRow() int { return r.Row + r.Rows - 1 }

// LastCol returns the 1-based index of the rightmost column.
func (r Region) LastCol() int { return r.Col + r.Cols - 1 }

// Contains reports whether the 1-based cell (row, col) lies inside r.
func (r Region) Contains(row, col int) bool {
	return row >= r.Row && row <= r.LastRow() && col >= r.Col && col <= r.LastCol()
}

// A1 returns the region in A1 notation, e.g. Sheet1!A1:G51.
func (r Region) A1() string {
	rng := fmt.Sprintf("%s%d:%s%d", ColumnName(r.Col), r.Row, ColumnName(r.LastCol()), r.LastRow())
	if r.Sheet == "" {
		return rng
	}
	return quoteSheet(r.Sheet) + "!" + rng
}

// ColumnName converts a 1-based column index to letters: 1 -> A, 27 -> AA.
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// quoteSheet wraps sheet names that need it in single quotes.
func quoteSheet(name string) string {
	if strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z')
	}) < 0 {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
