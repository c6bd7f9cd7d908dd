// Package pgsheet implements sheet.Sink as a cell grid in PostgreSQL.
//
// Each cell is one row of sheet_cells keyed by (document, sheet, row_idx,
// col_idx). A block write deletes every cell of the region and copies the
// non-blank cells back in a single transaction, so readers never see a
// half-written region.
package pgsheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/coinsheet/internal/sheet"
)

// TableName is the grid table.
const TableName = "sheet_cells"

const createTable = `
CREATE TABLE IF NOT EXISTS sheet_cells (
    document   TEXT    NOT NULL,
    sheet      TEXT    NOT NULL,
    row_idx    INTEGER NOT NULL,
    col_idx    INTEGER NOT NULL,
    value      TEXT    NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (document, sheet, row_idx, col_idx)
)`

const deleteRegion = `
DELETE FROM sheet_cells
WHERE document = $1 AND sheet = $2
  AND row_idx BETWEEN $3 AND $4
  AND col_idx BETWEEN $5 AND $6`

var copyColumns = []string{"document", "sheet", "row_idx", "col_idx", "value"}

// DB is the subset of *pgxpool.Pool the sink uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Sink writes blocks into sheet_cells.
type Sink struct {
	db       DB
	document string
	logger   *slog.Logger
}

// New creates a Sink writing cells under the given document name.
func New(db DB, document string, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{db: db, document: document, logger: logger}
}

// Migrate creates the grid table if it does not exist.
func (s *Sink) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTable); err != nil {
		return classify("migrate", err)
	}
	return nil
}

// Check pings the database and ensures the grid table exists.
func (s *Sink) Check(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return classify("check", err)
	}
	return s.Migrate(ctx)
}

// WriteBlock replaces the block's region in one transaction.
func (s *Sink) WriteBlock(ctx context.Context, block sheet.Block) error {
	if err := block.Validate(); err != nil {
		return sheet.NewFatal("write", err)
	}
	r := block.Region
	op := "write " + r.A1()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return classify(op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, deleteRegion, s.document, r.Sheet, r.Row, r.LastRow(), r.Col, r.LastCol()); err != nil {
		return classify(op, fmt.Errorf("clear region: %w", err))
	}

	rows := CellRows(s.document, block)
	if len(rows) > 0 {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{TableName}, copyColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return classify(op, fmt.Errorf("copy cells: %w", err))
		}
		s.logger.Debug("cells copied", "range", r.A1(), "cells", n)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(op, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// CellRows converts the non-blank cells of a block into COPY rows.
func CellRows(document string, block sheet.Block) [][]any {
	r := block.Region
	var rows [][]any
	for i, row := range block.Values {
		for j, v := range row {
			if sheet.IsBlank(v) {
				continue
			}
			rows = append(rows, []any{document, r.Sheet, int32(r.Row + i), int32(r.Col + j), fmt.Sprint(v)})
		}
	}
	return rows
}

// Server error codes that will not clear on retry.
var fatalCodes = map[string]bool{
	"28000": true, // invalid authorization
	"28P01": true, // invalid_password
	"3D000": true, // invalid_catalog_name
	"42501": true, // insufficient_privilege
	"42P01": true, // undefined_table
}

// classify maps driver errors onto sink error kinds. Anything not known to
// be permanent is treated as transient.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && fatalCodes[pgErr.Code] {
		return sheet.NewFatal(op, err)
	}
	return sheet.NewTransient(op, err)
}
