package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rickgao/coinsheet/internal/model"
)

// SourceError is returned by Source.Fetch for any failure to obtain a
// snapshot: transport errors, timeouts, non-2xx responses and bodies that
// do not decode into quotes. All of them are treated as transient.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("market data source: %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status behind the error, or 0 if there was none.
func (e *SourceError) StatusCode() int {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsSourceError reports whether err is (or wraps) a SourceError.
func IsSourceError(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr)
}

// Source fetches ranked snapshots from CoinGecko.
type Source struct {
	client  *Client
	timeout time.Duration
	now     func() time.Time
}

// NewSource creates a Source. timeout bounds a single Fetch; zero keeps
// only the HTTP client's own timeout.
func NewSource(client *Client, timeout time.Duration) *Source {
	return &Source{client: client, timeout: timeout, now: time.Now}
}

// Fetch requests the first page of assets ordered by descending market cap.
// It does not retry.
func (s *Source) Fetch(ctx context.Context, pageSize int, currency string) (model.Snapshot, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	coins, err := s.client.GetCoinMarkets(ctx, CoinMarketsOptions{
		VsCurrency: currency,
		Order:      OrderMarketCapDesc,
		PerPage:    pageSize,
		Page:       1,
		Sparkline:  false,
	})
	if err != nil {
		return model.Snapshot{}, &SourceError{Op: "fetch", Err: err}
	}

	quotes, err := ToAssetQuotes(coins)
	if err != nil {
		return model.Snapshot{}, &SourceError{Op: "parse", Err: err}
	}

	return model.NewSnapshot(quotes, s.now()), nil
}

// Ping checks provider connectivity.
func (s *Source) Ping(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.client.Ping(ctx); err != nil {
		return &SourceError{Op: "ping", Err: err}
	}
	return nil
}
