package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cldt/internal/diagfmt"
	"cldt/internal/driver"
	"cldt/internal/format"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <path> [path...]",
	Short: "Reformat and lint documents as they change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "quiet window before a change batch is processed")
	watchCmd.Flags().String("ui", "auto", "interactive status view (auto|on|off)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	uiMode, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	formatOpts, err := loadFormatOptions(".")
	if err != nil {
		return err
	}

	cache, _ := driver.OpenDiskCache("cldt")
	runner := &watchRunner{
		formatOpts:     formatOpts,
		maxDiagnostics: maxDiagnostics,
		cache:          cache,
	}

	var useUI bool
	switch uiMode {
	case "on":
		useUI = true
	case "off":
		useUI = false
	case "auto":
		useUI = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("watch: unsupported ui mode %q", uiMode)
	}

	if useUI {
		return runWatchWithUI(cmd.Context(), args, debounce, runner)
	}
	return runWatchPlain(cmd.Context(), args, debounce, runner)
}

// watchRunner processes one batch of changed documents: format first, then
// lint whatever formatted cleanly.
type watchRunner struct {
	formatOpts     format.Options
	maxDiagnostics int
	cache          *driver.DiskCache
}

func (r *watchRunner) processBatch(ctx context.Context, paths []string, sink driver.WatchSink) {
	for _, path := range paths {
		start := time.Now()
		sink.OnEvent(driver.WatchEvent{File: path, Stage: driver.StageFormat, Status: driver.StatusWorking})

		results, err := driver.FormatPaths(ctx, []string{path}, driver.FormatOptions{Options: r.formatOpts})
		if err != nil || len(results) == 0 {
			sink.OnEvent(driver.WatchEvent{File: path, Stage: driver.StageFormat, Status: driver.StatusError, Err: err, Elapsed: time.Since(start)})
			continue
		}
		if res := results[0]; res.Err != nil {
			sink.OnEvent(driver.WatchEvent{File: path, Stage: driver.StageFormat, Status: driver.StatusError, Err: res.Err, Elapsed: time.Since(start)})
			continue
		}

		sink.OnEvent(driver.WatchEvent{File: path, Stage: driver.StageLint, Status: driver.StatusWorking})
		_, lintResults, err := driver.LintPaths(ctx, []string{path}, driver.LintOptions{
			MaxDiagnostics: r.maxDiagnostics,
			Cache:          r.cache,
		})
		if err != nil || len(lintResults) == 0 {
			sink.OnEvent(driver.WatchEvent{File: path, Stage: driver.StageLint, Status: driver.StatusError, Err: err, Elapsed: time.Since(start)})
			continue
		}

		evt := driver.WatchEvent{File: path, Stage: driver.StageLint, Elapsed: time.Since(start)}
		switch {
		case lintResults[0].Bag.Len() > 0:
			evt.Status = driver.StatusFindings
			evt.Findings = lintResults[0].Bag.Len()
		case results[0].Changed:
			evt.Status = driver.StatusChanged
		default:
			evt.Status = driver.StatusClean
		}
		sink.OnEvent(evt)
	}
}

// plainSink prints one line per settled event, with full diagnostics for
// files that have findings.
type plainSink struct {
	runner *watchRunner
}

func (s plainSink) OnEvent(evt driver.WatchEvent) {
	switch evt.Status {
	case driver.StatusWorking:
		// quiet while in flight
	case driver.StatusError:
		fmt.Fprintf(os.Stderr, "watch: %s: %v\n", evt.File, evt.Err)
	case driver.StatusChanged:
		fmt.Fprintf(os.Stdout, "reformatted %s\n", evt.File)
	case driver.StatusClean:
		fmt.Fprintf(os.Stdout, "clean       %s\n", evt.File)
	case driver.StatusFindings:
		fmt.Fprintf(os.Stdout, "%-11s %s\n", fmt.Sprintf("%d finding(s)", evt.Findings), evt.File)
		s.printFindings(evt.File)
	}
}

func (s plainSink) printFindings(path string) {
	fileSet, results, err := driver.LintPaths(context.Background(), []string{path}, driver.LintOptions{
		MaxDiagnostics: s.runner.maxDiagnostics,
		Cache:          s.runner.cache,
	})
	if err != nil || len(results) == 0 {
		return
	}
	diagfmt.Pretty(os.Stdout, results[0].Bag, fileSet, diagfmt.PrettyOpts{
		Color:    isTerminal(os.Stdout),
		PathMode: diagfmt.PathModeRelative,
	})
}

func runWatchPlain(ctx context.Context, paths []string, debounce time.Duration, runner *watchRunner) error {
	sink := plainSink{runner: runner}

	initial, err := driver.CollectFiles(ctx, paths)
	if err != nil {
		return err
	}
	runner.processBatch(ctx, initial, sink)
	fmt.Fprintln(os.Stdout, "watching for changes (ctrl-c to stop)")

	watcher := driver.NewWatcher(paths, debounce)
	err = watcher.Run(ctx, func(batch []string) {
		runner.processBatch(ctx, batch, sink)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
