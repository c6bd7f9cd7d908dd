package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/coinsheet/internal/model"
)

// Renderer writes snapshots and summaries to a Sink using a fixed Layout.
type Renderer struct {
	sink   Sink
	layout Layout
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(sink Sink, layout Layout, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{sink: sink, layout: layout, logger: logger}
}

// Render replaces the snapshot region and then the summary region.
//
// The snapshot region is required: any failure writing it is returned. The
// summary region is best effort: a transient failure is logged and the render
// still succeeds, while a fatal one is returned because the sink itself is
// unusable.
func (r *Renderer) Render(ctx context.Context, snapshot model.Snapshot, summary model.Summary) error {
	snapBlock := r.layout.SnapshotBlock(snapshot)
	if err := r.sink.WriteBlock(ctx, snapBlock); err != nil {
		return fmt.Errorf("render snapshot %s: %w", snapBlock.Region.A1(), err)
	}

	sumBlock := r.layout.SummaryBlock(summary)
	if err := r.sink.WriteBlock(ctx, sumBlock); err != nil {
		if IsFatal(err) || !IsSinkError(err) {
			return fmt.Errorf("render summary %s: %w", sumBlock.Region.A1(), err)
		}
		r.logger.Warn("summary section not rendered",
			"range", sumBlock.Region.A1(),
			"error", err,
		)
	}

	return nil
}

// Check verifies the underlying sink.
func (r *Renderer) Check(ctx context.Context) error {
	return r.sink.Check(ctx)
}
