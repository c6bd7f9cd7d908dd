package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rickgao/coinsheet/internal/api"
	"github.com/rickgao/coinsheet/internal/backoff"
	"github.com/rickgao/coinsheet/internal/config"
	"github.com/rickgao/coinsheet/internal/credentials"
	"github.com/rickgao/coinsheet/internal/database"
	"github.com/rickgao/coinsheet/internal/logging"
	"github.com/rickgao/coinsheet/internal/loop"
	"github.com/rickgao/coinsheet/internal/model"
	"github.com/rickgao/coinsheet/internal/sheet"
	"github.com/rickgao/coinsheet/internal/sheet/gsheets"
	"github.com/rickgao/coinsheet/internal/sheet/pgsheet"
	"github.com/rickgao/coinsheet/internal/version"
)

// app is a fully wired process.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	loop   *loop.Loop

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp loads configuration, sets up logging and builds the loop. With
// dryRun the configured sink is replaced by an in-memory sheet printed to out
// after every render.
func newApp(ctx context.Context, rc *RootConfig, dryRun bool, out io.Writer) (*app, error) {
	cfg, err := config.LoadWithDefaults(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if dryRun {
		cfg.Sink.Driver = config.DriverMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, &config.ConfigError{Err: fmt.Errorf("validate config: %w", err)}
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, os.Stdout)
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, closers: []func(){closeLog}}

	logger.Info("starting coinsheet",
		"version", version.Version,
		"commit", version.Commit,
		"config", rc.ConfigPath,
		"sink", cfg.Sink.Driver,
	)

	sink, err := a.newSink(ctx, out)
	if err != nil {
		a.Close()
		return nil, err
	}

	userAgent := cfg.Source.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}
	client := api.NewClient(
		cfg.Source.BaseURL,
		cfg.Source.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Source.Timeout),
		api.WithUserAgent(userAgent),
	)
	source := api.NewSource(client, cfg.Source.Timeout)

	layout := sheet.Layout{Sheet: cfg.Sink.Sheet, PageSize: cfg.Source.PageSize}
	var renderer loop.Renderer = sheet.NewRenderer(sink, layout, logger)
	if mem, ok := sink.(*sheet.MemorySink); ok && dryRun {
		renderer = &printingRenderer{Renderer: renderer, mem: mem, sheet: cfg.Sink.Sheet, out: out}
	}

	a.loop = loop.New(loopConfig(cfg), source, renderer, logger)
	return a, nil
}

func (a *app) newSink(ctx context.Context, out io.Writer) (sheet.Sink, error) {
	cfg := a.cfg
	switch cfg.Sink.Driver {
	case config.DriverMemory:
		return sheet.NewMemorySink(), nil

	case config.DriverPostgres:
		a.logger.Info("connecting to database",
			"host", cfg.Sink.Postgres.Host,
			"port", cfg.Sink.Postgres.Port,
			"database", cfg.Sink.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Sink.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect sink database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return pgsheet.New(pool, cfg.Sink.URL, a.logger), nil

	default:
		sa, err := credentials.Resolve(credentials.DefaultSources()...)
		if err != nil {
			return nil, fmt.Errorf("resolve service account: %w", err)
		}
		a.logger.Info("service account loaded", "client_email", sa.ClientEmail, "project_id", sa.ProjectID)

		gs, err := gsheets.New(ctx, gsheets.Config{Target: cfg.Sink.URL, SheetName: cfg.Sink.Sheet}, sa, a.logger)
		if err != nil {
			return nil, fmt.Errorf("create sheets sink: %w", err)
		}
		a.logger.Info("sheets sink ready", "spreadsheet_id", gs.SpreadsheetID(), "sheet", cfg.Sink.Sheet)
		return gs, nil
	}
}

func loopConfig(cfg *config.Config) loop.Config {
	return loop.Config{
		PageSize: cfg.Source.PageSize,
		Currency: cfg.Source.Currency,
		Interval: cfg.Loop.Interval,
		Jitter:   cfg.Loop.Jitter,
		Backoff: backoff.Policy{
			Base:       cfg.Loop.BackoffBase,
			Cap:        cfg.Loop.BackoffCap,
			MaxRetries: cfg.Loop.MaxRetries,
		},
		CheckTimeout:  cfg.Loop.CheckTimeout,
		RenderTimeout: cfg.Sink.WriteTimeout,
	}
}

// printingRenderer prints the in-memory sheet after each render.
type printingRenderer struct {
	loop.Renderer
	mem   *sheet.MemorySink
	sheet string
	out   io.Writer
}

func (p *printingRenderer) Render(ctx context.Context, snapshot model.Snapshot, summary model.Summary) error {
	if err := p.Renderer.Render(ctx, snapshot, summary); err != nil {
		return err
	}
	return p.mem.Print(p.out, p.sheet)
}
