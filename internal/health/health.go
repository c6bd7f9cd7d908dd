// Package health runs startup checks in parallel.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check is a named health check.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Run executes every check concurrently under a shared timeout and waits
// for all of them. A failing check does not cancel the others.
func Run(ctx context.Context, timeout time.Duration, checks ...Check) []Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results := make([]Result, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			start := time.Now()
			err := c.Fn(ctx)
			results[i] = Result{Name: c.Name, Err: err, Duration: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Err joins the failures in results, naming each check.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}
