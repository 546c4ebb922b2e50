package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchStage names the pass a watch event belongs to.
type WatchStage string

const (
	// StageFormat is a formatting pass.
	StageFormat WatchStage = "format"
	// StageLint is a lint pass.
	StageLint WatchStage = "lint"
)

// WatchStatus captures progress state for a file within a pass.
type WatchStatus string

const (
	// StatusWorking indicates the pass started on the file.
	StatusWorking WatchStatus = "working"
	// StatusClean indicates the pass finished without findings.
	StatusClean WatchStatus = "clean"
	// StatusChanged indicates the formatter rewrote the file.
	StatusChanged WatchStatus = "changed"
	// StatusFindings indicates the linter reported diagnostics.
	StatusFindings WatchStatus = "findings"
	// StatusError indicates the pass failed on the file.
	StatusError WatchStatus = "error"
)

// WatchEvent reports per-file progress of a watch cycle.
type WatchEvent struct {
	File     string
	Stage    WatchStage
	Status   WatchStatus
	Findings int
	Err      error
	Elapsed  time.Duration
}

// WatchSink consumes watch events.
type WatchSink interface {
	OnEvent(WatchEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- WatchEvent
}

func (s ChannelSink) OnEvent(evt WatchEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Watcher re-runs a callback whenever .cldt files under the watched roots
// change. Rapid event bursts (editor save patterns, formatter rewrites)
// collapse into one invocation per debounce window.
type Watcher struct {
	roots    []string
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher prepares a watcher over the given files or directories.
func NewWatcher(roots []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		roots:    roots,
		debounce: debounce,
		pending:  make(map[string]struct{}),
	}
}

// Run blocks until ctx is cancelled, invoking onChange with the batch of
// changed paths after each quiet debounce window. Directories created under
// a watched root are picked up as they appear.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, root := range w.roots {
		if err := addRecursive(fw, root); err != nil {
			return err
		}
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if evt.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					_ = addRecursive(fw, evt.Name)
					continue
				}
			}
			if filepath.Ext(evt.Name) != SourceExt {
				continue
			}
			if !evt.Op.Has(fsnotify.Write) && !evt.Op.Has(fsnotify.Create) && !evt.Op.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			w.pending[evt.Name] = struct{}{}
			w.mu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			_ = err // transient watch errors do not stop the loop

		case <-timer.C:
			batch := w.takePending()
			if len(batch) > 0 {
				onChange(batch)
			}
		}
	}
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(batch)
	return batch
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
