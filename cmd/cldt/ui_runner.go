package main

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cldt/internal/driver"
	"cldt/internal/ui"
)

// runWatchWithUI drives the watch loop behind a Bubble Tea status view.
// Quitting the view cancels the loop; the loop ending closes the event
// channel, which in turn ends the view.
func runWatchWithUI(ctx context.Context, paths []string, debounce time.Duration, runner *watchRunner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.WatchEvent, 256)
	sink := driver.ChannelSink{Ch: events}
	loopDone := make(chan error, 1)

	go func() {
		defer close(events)

		initial, err := driver.CollectFiles(ctx, paths)
		if err != nil {
			loopDone <- err
			return
		}
		sink.OnEvent(driver.WatchEvent{}) // cycle marker
		runner.processBatch(ctx, initial, sink)

		watcher := driver.NewWatcher(paths, debounce)
		loopDone <- watcher.Run(ctx, func(batch []string) {
			sink.OnEvent(driver.WatchEvent{})
			runner.processBatch(ctx, batch, sink)
		})
	}()

	model := ui.NewWatchModel("cldt watch", events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	cancel()
	// The loop may still be emitting; drain so it can reach the cancel.
	go func() {
		for range events {
		}
	}()
	err := <-loopDone
	if uiErr != nil {
		return uiErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
