// Package cli contains the whynomatch command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Config   string
	Format   string // "text" | "json"
	Color    string // "auto" | "always" | "never"
	Indent   int
	MaxDepth int
	Interval time.Duration

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidColors defines the allowed color modes.
var ValidColors = []string{"auto", "always", "never"}

// NewRootCommand creates the root command for the whynomatch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "whynomatch",
		Short: "Explain why a document does not match a query",
		Long: `whynomatch evaluates a target document against a MongoDB-like query and
prints every clause of the query that the target does not satisfy.

Targets and queries are read from JSON (comments and /regex/ literals
allowed) or YAML files, chosen by extension.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug messages to stderr")
	flags.StringVar(&opts.Config, "config", "", "YAML file with default flag values")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	flags.StringVar(&opts.Color, "color", "auto", "colored output (auto|always|never)")
	flags.IntVar(&opts.Indent, "indent", 2, "indentation of json output, 0 for compact")
	flags.IntVar(&opts.MaxDepth, "max-depth", 0, "maximum query nesting, 0 for unlimited")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewOperatorsCommand(opts))

	return cmd
}

// setup merges the config file into the options, validates them and creates
// the logger. Flags set in the command line win over the config file.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	if opts.Config != "" {
		cfg, err := LoadConfig(cmd.Context(), opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid config", err)
		}
		opts.apply(cfg, cmd.Flags().Changed)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if opts.Config != "" {
		opts.logger.Debug("config loaded", "path", opts.Config)
	}

	if !slices.Contains(ValidFormats, opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}
	if !slices.Contains(ValidColors, opts.Color) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid color %q: must be one of %v", opts.Color, ValidColors))
	}
	if opts.Indent < 0 {
		return NewExitError(ExitCommandError, "indent cannot be negative")
	}
	return nil
}

// apply copies config values for the flags that were not changed.
func (opts *RootOptions) apply(cfg Config, changed func(string) bool) {
	if cfg.Verbose && !changed("verbose") {
		opts.Verbose = true
	}
	if cfg.Format != "" && !changed("format") {
		opts.Format = cfg.Format
	}
	if cfg.Color != "" && !changed("color") {
		opts.Color = cfg.Color
	}
	if cfg.Indent != nil && !changed("indent") {
		opts.Indent = *cfg.Indent
	}
	if cfg.MaxDepth != 0 && !changed("max-depth") {
		opts.MaxDepth = cfg.MaxDepth
	}
	if cfg.Interval != 0 && !changed("interval") {
		opts.Interval = cfg.Interval
	}
}

// Execute runs the CLI with the given arguments and returns the process exit
// code. Errors are written to stderr.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	code := GetExitCode(err)
	if code != ExitMismatch {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return code
}
