package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"depwait/internal/config"
	"depwait/internal/dependency"
	"depwait/internal/engine"
	"depwait/internal/logger"
	"depwait/internal/metrics"
)

var (
	verbose  bool
	dryRun   bool
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "waiter [file|-]",
	Short: "Block until a declared set of network dependencies is reachable",
	Long: "waiter reads a dependency document (file, \"-\" for stdin, or the\n" +
		"INIT_DEPENDENCIES environment variable), probes the declared\n" +
		"dependencies concurrently, and exits 0 once the quorum for success is\n" +
		"met, or 1 if it cannot be met within the configured retry budget.",
	Args: cobra.MaximumNArgs(1),
	Run:  run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a table of the declared dependencies before waiting")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compile and validate the dependency document without probing")
}

func main() {
	loaded, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "waiter: loading settings: %v\n", err)
		os.Exit(1)
	}
	settings = loaded
	logger.Init(logger.LevelFromString(settings.LogLevel))
	if settings.Verbose {
		verbose = true
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "waiter: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}

	doc, err := config.Load(arg, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waiter: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		printDocument(doc)
	}
	if dryRun {
		os.Exit(compileOnly(doc))
	}

	outcome, err := engine.Run(context.Background(), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waiter: %v\n", err)
		os.Exit(1)
	}

	if settings.MetricsPushgateway != "" && !outcome.Skipped {
		metrics.PushOnce(settings, doc, outcome)
	}

	os.Exit(outcome.ExitCode)
}

// compileOnly runs every dependency through the same compiler engine.Run
// uses, without starting any probes. It returns the process exit status:
// 0 if every dependency compiles, 1 on the first compile error.
func compileOnly(doc config.Document) int {
	if !doc.IsEnabled() {
		return 0
	}
	for name, spec := range doc.Dependencies {
		if _, err := dependency.Compile(context.Background(), name, spec, doc.Template, nil); err != nil {
			fmt.Fprintf(os.Stderr, "waiter: %v\n", err)
			return 1
		}
	}
	return 0
}

func printDocument(doc config.Document) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"dependency", "mode", "url", "http", "host", "port", "ports"})
	for name, spec := range doc.Dependencies {
		t.AppendRow(table.Row{name, spec.NormalizedMode(), spec.URL, spec.HTTP, spec.Host, spec.Port, spec.Ports})
	}
	t.Render()
}
