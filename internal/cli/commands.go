package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickgao/coinsheet/internal/logging"
	"github.com/rickgao/coinsheet/internal/loop"
	"github.com/rickgao/coinsheet/internal/status"
)

func newRunCmd(rc *RootConfig) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the update loop until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, rc, dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if port := a.cfg.Status.Port; port > 0 {
				srv := status.NewServer(port, a.loop, a.logger)
				srv.Start()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			err = a.loop.Run(ctx)
			switch {
			case err == nil:
				a.logger.Info("coinsheet stopped")
			case errors.Is(err, loop.ErrUnhealthy):
				logging.Critical(a.logger, "startup health check failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render into an in-memory sheet printed to stdout")
	return cmd
}

func newOnceCmd(rc *RootConfig) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Check health and run a single update cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, rc, dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.loop.Check(ctx); err != nil {
				return err
			}
			return a.loop.RunOnce(ctx)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render into an in-memory sheet printed to stdout")
	return cmd
}

func newCheckCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify provider connectivity and sink access",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rc, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.loop.Check(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
