package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/evaluator"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/loader"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// EvalOptions holds the flags of the eval and watch commands.
type EvalOptions struct {
	Target string
	Query  string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval --target FILE --query FILE",
		Short: "Evaluate a target against a query once",
		Long: `Evaluate a target against a query and print the diagnosis.

Exits with 0 when the target matches, 1 when it does not and 2 when the
input or the query is invalid. Use "-" to read one of the files from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEval(cmd, rootOpts, opts)
		},
	}

	addEvalFlags(cmd, opts)
	return cmd
}

func addEvalFlags(cmd *cobra.Command, opts *EvalOptions) {
	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "file with the target document")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "file with the query")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("query")
}

func runEval(cmd *cobra.Command, rootOpts *RootOptions, opts *EvalOptions) error {
	ctx := cmd.Context()

	diag, err := evaluate(ctx, cmd.InOrStdin(), rootOpts, opts)
	if err != nil {
		return err
	}

	if err := newPrinter(cmd.OutOrStdout(), rootOpts).Print(ctx, diag); err != nil {
		return WrapExitError(ExitCommandError, "cannot print diagnosis", err)
	}

	if diag.Len() > 0 {
		return NewExitError(ExitMismatch, "target does not match query")
	}
	return nil
}

// evaluate loads both files and evaluates them.
func evaluate(ctx context.Context, stdin io.Reader, rootOpts *RootOptions, opts *EvalOptions) (domain.Document, error) {
	if opts.Target == "-" && opts.Query == "-" {
		return nil, NewExitError(ExitCommandError, "target and query cannot both be read from stdin")
	}

	target, err := loadFile(ctx, stdin, opts.Target)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot load target", err)
	}
	query, err := loadFile(ctx, stdin, opts.Query)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot load query", err)
	}
	rootOpts.logger.Debug("files loaded", "target", opts.Target, "query", opts.Query)

	ev, err := evaluator.NewEvaluator(domain.WithMaxDepth(rootOpts.MaxDepth))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot create evaluator", err)
	}

	diag, err := ev.Evaluate(target, query)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid query", err)
	}
	rootOpts.logger.Debug("query evaluated", "failures", diag.Len())
	return diag, nil
}

func loadFile(ctx context.Context, stdin io.Reader, path string) (any, error) {
	l := loader.NewLoader(loader.FormatAuto)
	if path == "-" {
		return l.Load(ctx, path, stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := l.Load(ctx, path, f)
	if err != nil {
		var format domain.ErrUnsupportedFormat
		if errors.As(err, &format) {
			// unknown extensions are tried as JSON
			if _, serr := f.Seek(0, io.SeekStart); serr == nil {
				return loader.NewLoader(loader.FormatJSON).Load(ctx, path, f)
			}
		}
		return nil, err
	}
	return v, nil
}
