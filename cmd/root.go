package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"brb/internal/config"
	"brb/internal/errors"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the brb command. Reports go to out, warnings and
// progress in JSON mode to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "brb [flags] <input> [header...]",
		Short: "Convert a LAS well log to CSV",
		Long: `brb reads a LAS well-log file and writes its curves to a CSV file named
after the well. Column names are standardized through an alias table and the
output can be restricted to a set of columns. Existing files are never
overwritten.`,
		Example: `  brb 15_9-F-1.las
  brb 15_9-F-1.las -h RMS GR
  brb 15_9-F-1.las --header-names names.yml --format xlsx`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrb(cmd, cfg, args, out, errOut)
		},
	}

	flags := rootCmd.Flags()
	// -h belongs to --headers; help keeps its long form.
	flags.Bool("help", false, "help for brb")
	flags.StringSliceVarP(&cfg.Headers, "headers", "h", nil, "Columns to export (repeatable, comma separated; default all)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose mode")
	flags.BoolVar(&cfg.Debug, "debug", false, "Debug mode")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Quiet mode")
	flags.StringVar(&cfg.HeaderNames, "header-names", "", "Alias table (YAML or JSON; default: bundled table, env "+config.EnvHeaderNames+")")
	flags.BoolVar(&cfg.NoStandardize, "no-standardize", false, "Keep the column names of the input")
	flags.StringVar(&cfg.Format, "format", "csv", "Output format (csv, xlsx)")
	flags.StringVar(&cfg.OutputDir, "output-dir", "", "Output directory (default: current directory, env "+config.EnvOutputDir+")")
	flags.Var((*logFormatFlag)(&cfg.LogFormat), "log-format", "Report format (text, json)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("header-names", "no-standardize")

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd
}

// Execute runs the root command and handles top-level error reporting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		stop()
		os.Exit(1)
	}
}

func runBrb(cmd *cobra.Command, cfg *config.Config, args []string, out, errOut io.Writer) error {
	cfg.Input = args[0]

	if extra := args[1:]; len(extra) > 0 {
		if !cmd.Flag("headers").Changed {
			return errors.NewConfigError(fmt.Sprintf("unexpected arguments %s (use --headers to select columns)", strings.Join(extra, " ")), nil)
		}
		cfg.Headers = append(cfg.Headers, extra...)
	}

	cfg.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	return executeBrb(cmd.Context(), cfg, out, errOut)
}

type logFormatFlag config.LogFormat

func (f *logFormatFlag) String() string {
	return string(*f)
}

func (f *logFormatFlag) Set(v string) error {
	switch v := strings.ToLower(v); v {
	case "text", "json":
		*f = logFormatFlag(v)
		return nil
	default:
		return fmt.Errorf("must be 'text' or 'json'")
	}
}

func (f *logFormatFlag) Type() string {
	return "string"
}
