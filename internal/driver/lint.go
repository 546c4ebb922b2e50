package driver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cldt/internal/diag"
	"cldt/internal/lint"
	"cldt/internal/source"
)

// LintOptions configures a lint run.
type LintOptions struct {
	MaxDiagnostics int
	Jobs           int
	Cache          *DiskCache // nil disables caching
}

// LintResult holds the diagnostics of one document.
type LintResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	CacheHit bool
}

// LintPaths lints the provided files or directories in parallel. Results come
// back in the same deterministic order CollectFiles produces, regardless of
// which worker finished first.
func LintPaths(ctx context.Context, paths []string, opts LintOptions) (*source.FileSet, []LintResult, error) {
	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, errors.New("lint: no source files found")
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}

	// Loading happens up front so the FileSet is not mutated concurrently.
	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]LintResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrors[i] != nil {
				return loadErrors[i]
			}

			f := fileSet.Get(fileIDs[i])
			key := Digest(f.Hash)

			var payload LintPayload
			if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
				results[i] = LintResult{
					Path:     path,
					FileID:   f.ID,
					Bag:      payloadToBag(&payload, f.ID, maxDiag),
					CacheHit: true,
				}
				return nil
			}

			bag := diag.NewBag(maxDiag)
			lint.Run(f, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
			bag.Sort()

			// A broken cache should not fail the run.
			_ = opts.Cache.Put(key, bagToPayload(bag))

			results[i] = LintResult{Path: path, FileID: f.ID, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags folds per-file bags into one sorted bag, useful for aggregate
// reporting.
func MergeBags(results []LintResult, max int) *diag.Bag {
	merged := diag.NewBag(max)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()
	return merged
}
