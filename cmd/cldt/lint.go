package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cldt/internal/diagfmt"
	"cldt/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <path> [path...]",
	Short: "Lint CLDT documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "text", "output format (text|json)")
	lintCmd.Flags().Int("jobs", 0, "number of parallel workers (0 uses GOMAXPROCS)")
	lintCmd.Flags().Bool("no-cache", false, "lint every document even if unchanged since the last run")
	lintCmd.Flags().Bool("notes", false, "show attached notes in text output")
}

func runLint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	showNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		// A cache that fails to open just means every file gets linted.
		cache, _ = driver.OpenDiskCache("cldt")
	}

	fileSet, results, err := driver.LintPaths(cmd.Context(), args, driver.LintOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	})
	if err != nil {
		return err
	}

	merged := driver.MergeBags(results, maxDiagnostics)

	switch outputFormat {
	case "text":
		colorize, _ := cmd.Root().PersistentFlags().GetString("color")
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     colorize != "off" && isTerminal(os.Stdout),
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: showNotes,
			ShowFixes: showNotes,
		})
		if !quiet {
			fmt.Fprintf(os.Stdout, "%d file(s), %d finding(s)\n", len(results), merged.Len())
		}
	case "json":
		if err := diagfmt.WriteJSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("lint: unsupported output format %q", outputFormat)
	}

	if merged.HasErrors() {
		return fmt.Errorf("lint: errors found")
	}
	return nil
}
