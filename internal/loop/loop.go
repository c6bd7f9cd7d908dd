package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/coinsheet/internal/analyze"
	"github.com/rickgao/coinsheet/internal/api"
	"github.com/rickgao/coinsheet/internal/backoff"
	"github.com/rickgao/coinsheet/internal/health"
	"github.com/rickgao/coinsheet/internal/logging"
	"github.com/rickgao/coinsheet/internal/model"
	"github.com/rickgao/coinsheet/internal/sheet"
)

var (
	// ErrUnhealthy is returned when the startup health check fails.
	ErrUnhealthy = errors.New("startup health check failed")

	// ErrRetryBudgetExhausted is returned after MaxRetries consecutive failed cycles.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")
)

// Source provides market snapshots.
//
//go:generate mockgen -package=loop -destination=mock_loop_test.go -source=loop.go Source Renderer
type Source interface {
	Fetch(ctx context.Context, pageSize int, currency string) (model.Snapshot, error)
	Ping(ctx context.Context) error
}

// Renderer publishes a snapshot and its summary.
type Renderer interface {
	Render(ctx context.Context, snapshot model.Snapshot, summary model.Summary) error
	Check(ctx context.Context) error
}

// AnalyzeFunc derives a summary from a snapshot.
type AnalyzeFunc func(model.Snapshot) (model.Summary, error)

// Config holds loop configuration.
type Config struct {
	PageSize      int            // quotes requested per cycle (default: 50)
	Currency      string         // quote currency (default: usd)
	Interval      time.Duration  // steady-state wait (default: 300s)
	Jitter        time.Duration  // ± spread on Interval; <= 0 disables (default: 30s)
	Backoff       backoff.Policy // failure waits and retry budget
	CheckTimeout  time.Duration  // bound on the health check (default: 30s)
	RenderTimeout time.Duration  // bound on one render (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageSize: 50,
		Currency: "usd",
		Interval: 300 * time.Second,
		Jitter:   30 * time.Second,
		Backoff: backoff.Policy{
			Base:       15 * time.Second,
			Cap:        600 * time.Second,
			MaxRetries: 5,
		},
		CheckTimeout:  30 * time.Second,
		RenderTimeout: 30 * time.Second,
	}
}

// Option customizes a Loop.
type Option func(*Loop)

// WithAnalyzer replaces analyze.Analyze.
func WithAnalyzer(fn AnalyzeFunc) Option {
	return func(l *Loop) { l.analyze = fn }
}

// WithWait replaces the timer-based wait. fn must return ctx.Err() when ctx
// is done before d elapses.
func WithWait(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Loop) { l.wait = fn }
}

// WithJitter replaces backoff.Jitter for steady-state waits.
func WithJitter(fn func(interval, spread time.Duration) time.Duration) Option {
	return func(l *Loop) { l.jitter = fn }
}

// Loop runs update cycles until cancelled or out of retries.
type Loop struct {
	cfg      Config
	source   Source
	renderer Renderer
	analyze  AnalyzeFunc
	wait     func(ctx context.Context, d time.Duration) error
	jitter   func(interval, spread time.Duration) time.Duration
	logger   *slog.Logger

	state atomic.Int32

	// needsCheck is set after a fatal sink error; the next render first
	// re-validates the sink. Only touched by the Run goroutine.
	needsCheck bool

	mu     sync.Mutex
	status Status
}

// New creates a Loop.
func New(cfg Config, source Source, renderer Renderer, logger *slog.Logger, opts ...Option) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		cfg:      cfg,
		source:   source,
		renderer: renderer,
		analyze:  analyze.Analyze,
		wait:     sleep,
		jitter:   backoff.Jitter,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run checks health, then cycles until ctx is cancelled (returning nil) or
// the retry budget is exhausted (returning ErrRetryBudgetExhausted).
func (l *Loop) Run(ctx context.Context) error {
	defer l.setState(StateStopped)

	if err := l.Check(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	l.logger.Info("update loop started",
		"interval", l.cfg.Interval,
		"jitter", l.cfg.Jitter,
		"page_size", l.cfg.PageSize,
		"max_retries", l.cfg.Backoff.MaxRetries,
	)

	attempt := 0
	for {
		if ctx.Err() != nil {
			l.logger.Info("update loop stopped")
			return nil
		}

		err := l.RunOnce(ctx)
		if err == nil {
			attempt = 0
			l.setAttempt(attempt)

			d := l.jitter(l.cfg.Interval, l.cfg.Jitter)
			l.setState(StateSleeping)
			l.logger.Debug("sleeping until next cycle", "wait", d)
			if l.wait(ctx, d) != nil {
				l.logger.Info("update loop stopped")
				return nil
			}
			continue
		}

		if ctx.Err() != nil {
			l.logger.Info("update loop stopped", "interrupted_cycle_error", err)
			return nil
		}

		attempt++
		l.setAttempt(attempt)

		if l.cfg.Backoff.Exhausted(attempt) {
			logging.Critical(l.logger, "retry budget exhausted",
				"attempt", attempt,
				"max_retries", l.cfg.Backoff.MaxRetries,
				"error", err,
			)
			return fmt.Errorf("%w after %d attempts: %w", ErrRetryBudgetExhausted, attempt, err)
		}

		d := l.cfg.Backoff.Delay(attempt)
		l.setState(StateBackoff)
		attrs := append([]any{"attempt", attempt, "wait", d}, sourceAttrs(err)...)
		l.logger.Warn("cycle failed, backing off", append(attrs, "error", err)...)
		if l.wait(ctx, d) != nil {
			l.logger.Info("update loop stopped")
			return nil
		}
	}
}

// Check verifies the source and the sink in parallel.
func (l *Loop) Check(ctx context.Context) error {
	l.setState(StateChecking)

	results := health.Run(ctx, l.cfg.CheckTimeout,
		health.Check{Name: "source", Fn: l.source.Ping},
		health.Check{Name: "sink", Fn: l.renderer.Check},
	)
	for _, r := range results {
		if r.Err != nil {
			l.logger.Error("health check failed", "check", r.Name, "duration", r.Duration, "error", r.Err)
		} else {
			l.logger.Info("health check passed", "check", r.Name, "duration", r.Duration)
		}
	}
	if err := health.Err(results); err != nil {
		l.setState(StateIdle)
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	l.setState(StateIdle)
	return nil
}

// RunOnce performs a single fetch → analyze → render cycle.
func (l *Loop) RunOnce(ctx context.Context) error {
	cycleID := uuid.NewString()
	logger := l.logger.With("cycle", cycleID)
	start := time.Now()
	l.beginCycle(cycleID)

	err := l.cycle(ctx, logger)
	l.endCycle(err)
	if err != nil {
		logger.Error("cycle failed", "duration", time.Since(start), "error", err)
		return err
	}

	logger.Info("cycle complete", "duration", time.Since(start))
	return nil
}

func (l *Loop) cycle(ctx context.Context, logger *slog.Logger) error {
	l.setState(StateFetching)
	snapshot, err := l.source.Fetch(ctx, l.cfg.PageSize, l.cfg.Currency)
	if err != nil {
		return err
	}
	logger.Debug("snapshot fetched", "quotes", snapshot.Len(), "captured_at", snapshot.CapturedAt)

	l.setState(StateAnalyzing)
	summary, err := l.analyze(snapshot)
	if err != nil {
		return err
	}

	l.setState(StateRendering)
	renderCtx := ctx
	if l.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, l.cfg.RenderTimeout)
		defer cancel()
	}

	if l.needsCheck {
		if err := l.renderer.Check(renderCtx); err != nil {
			return fmt.Errorf("revalidate sink: %w", err)
		}
		l.needsCheck = false
		logger.Info("sink revalidated")
	}

	if err := l.renderer.Render(renderCtx, snapshot, summary); err != nil {
		if sheet.IsFatal(err) {
			l.needsCheck = true
		}
		return err
	}

	logger.Debug("snapshot rendered",
		"quotes", snapshot.Len(),
		"average_price", summary.AveragePrice.StringFixed(2),
	)
	return nil
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// State returns the current phase.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// sourceAttrs describes provider failures by HTTP status.
func sourceAttrs(err error) []any {
	var srcErr *api.SourceError
	if !errors.As(err, &srcErr) {
		return nil
	}
	attrs := []any{"source_op", srcErr.Op}
	if code := srcErr.StatusCode(); code != 0 {
		attrs = append(attrs, "status_code", code)
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, "retryable", apiErr.IsRetryable())
	}
	return attrs
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
