package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dwellcli/internal/config"
	"dwellcli/internal/infrastructure"
	"dwellcli/pkg/contracts"
)

// Execute runs the CLI with the process arguments and exits non-zero on error
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes the CLI and returns the process exit code
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{in: stdin, out: stdout, errOut: stderr}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	a.close(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Dwellings commenced: quarterly summary, charts and export",
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(infrastructure.EnsureTraceID(cmd.Context()))
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.menu(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.opts.configFile, "config", "c", "", "YAML config file (default: dwellings.yaml if present)")
	flags.StringVarP(&a.opts.input, "input", "i", "", "input table (.csv, .txt or .xlsx)")
	flags.StringVar(&a.opts.sheet, "sheet", "", "worksheet to read from an .xlsx input (default: first sheet)")
	flags.BoolVar(&a.opts.strict, "strict", false, "list every rejected input row")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug|info|warn|error")

	cmd.AddCommand(
		summaryCmd(a),
		peaksCmd(a),
		chartsCmd(a),
		exportCmd(a),
		menuCmd(a),
		reportCmd(a),
	)
	return cmd
}

func summaryCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "summary",
		Short: "Show the latest quarter and its growth rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.summary(cmd.Context(), asJSON)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return c
}

func peaksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "peaks",
		Short: "Show peaks and troughs of both series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.peaks(cmd.Context())
		},
	}
}

func chartsCmd(a *app) *cobra.Command {
	var outDir string

	c := &cobra.Command{
		Use:   "charts",
		Short: "Render the three PNG charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.charts(cmd.Context(), outDir)
			return err
		},
	}
	c.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: output.dir from config)")
	return c
}

func exportCmd(a *app) *cobra.Command {
	var outFile string

	c := &cobra.Command{
		Use:   "export",
		Short: "Write the derived dataset as .csv or .xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.export(cmd.Context(), outFile)
			return err
		},
	}
	c.Flags().StringVarP(&outFile, "out", "o", "", "export file (default: output.export_file from config)")
	return c
}

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.menu(cmd.Context())
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print summary and peaks, then render all charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.summary(ctx, false); err != nil {
				return err
			}
			if err := a.peaks(ctx); err != nil {
				return err
			}
			_, err := a.charts(ctx, "")
			return err
		},
	}
}
