package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"depwait/internal/checkrunner"
	"depwait/internal/config"
	"depwait/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "runner VAR [VAR...]",
	Short: "Run named shell checks carried in environment variables, with retries",
	Long: "runner evaluates one or more named checks; each name must be a\n" +
		"defined environment variable whose value is a shell script body.\n" +
		"Per-check timeout, retry count, retry wait, disable, and debug\n" +
		"settings are read from <NAME>_<SETTING> overrides, falling back to\n" +
		"the unprefixed global and then to hard defaults.",
	Args: cobra.MinimumNArgs(1),
	Run:  run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a table of check attempts and exit statuses")
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "runner: loading settings: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.LevelFromString(settings.LogLevel))
	if settings.Verbose {
		verbose = true
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "runner: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	results, err := checkrunner.Run(context.Background(), args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runner: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		printResults(results)
	}

	if len(results) == 0 {
		os.Exit(0)
	}
	last := results[len(results)-1]
	if last.Passed {
		os.Exit(0)
	}
	if last.ExitStatus == 0 {
		os.Exit(1)
	}
	os.Exit(last.ExitStatus)
}

func printResults(results []checkrunner.CheckResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"check", "attempt", "exit status"})
	for _, r := range results {
		if len(r.Attempts) == 0 {
			t.AppendRow(table.Row{r.Name, "-", "disabled"})
			continue
		}
		for _, a := range r.Attempts {
			status := fmt.Sprint(a.ExitStatus)
			if a.TimedOut {
				status = "timeout"
			}
			t.AppendRow(table.Row{r.Name, a.Number, status})
		}
	}
	t.Render()
}
