package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// DefaultInterval is how often watch checks the files for changes.
const DefaultInterval = time.Second

// NewWatchCommand creates the watch command. It evaluates the files again
// every time one of them changes, until interrupted.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "watch --target FILE --query FILE",
		Short: "Evaluate again whenever the target or the query changes",
		Long: `Watch a target and a query file and print a new diagnosis after every
change. Invalid content is reported and watching continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Target == "-" || opts.Query == "-" {
				return NewExitError(ExitCommandError, "watch cannot read from stdin")
			}
			if rootOpts.Interval <= 0 {
				return NewExitError(ExitCommandError, "interval must be positive")
			}
			return runWatch(cmd.Context(), cmd, rootOpts, opts)
		},
	}

	addEvalFlags(cmd, opts)
	cmd.Flags().DurationVar(&rootOpts.Interval, "interval", DefaultInterval, "how often files are checked for changes")
	return cmd
}

// stamp holds the modification times of the watched files.
type stamp struct {
	target time.Time
	query  time.Time
}

func (s stamp) equal(o stamp) bool {
	return s.target.Equal(o.target) && s.query.Equal(o.query)
}

func runWatch(ctx context.Context, cmd *cobra.Command, rootOpts *RootOptions, opts *EvalOptions) error {
	ticker := time.NewTicker(rootOpts.Interval)
	defer ticker.Stop()

	var last stamp
	first := true
	for {
		curr, err := stat(opts)
		switch {
		case err != nil:
			rootOpts.logger.Warn("cannot read files", "error", err)
		case first || !curr.equal(last):
			last = curr
			if !first {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), "---"); err != nil {
					return err
				}
			}
			first = false
			rootOpts.logger.Debug("files changed, evaluating")
			watchOnce(ctx, cmd, rootOpts, opts)
		}

		select {
		case <-ctx.Done():
			rootOpts.logger.Debug("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// watchOnce prints a single diagnosis. Errors are logged so watching goes on.
func watchOnce(ctx context.Context, cmd *cobra.Command, rootOpts *RootOptions, opts *EvalOptions) {
	diag, err := evaluate(ctx, nil, rootOpts, opts)
	if err != nil {
		rootOpts.logger.Error("evaluation failed", "error", err)
		return
	}
	if err := newPrinter(cmd.OutOrStdout(), rootOpts).Print(ctx, diag); err != nil {
		rootOpts.logger.Error("cannot print diagnosis", "error", err)
	}
}

func stat(opts *EvalOptions) (stamp, error) {
	t, err := os.Stat(opts.Target)
	if err != nil {
		return stamp{}, err
	}
	q, err := os.Stat(opts.Query)
	if err != nil {
		return stamp{}, err
	}
	return stamp{target: t.ModTime(), query: q.ModTime()}, nil
}
