package driver

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"cronac/internal/source"
)

// FileResult pairs a source path with the Result Run produced for it.
type FileResult struct {
	Path   string
	Result *Result
	LoadErr error
}

// RunMany compiles every path independently and concurrently. Each file
// gets its own FileSet entry, types.Interner, and ir.Program — spec.md §5
// guarantees no mutable state is shared across runs, so fanning the
// otherwise-sequential per-file work out is safe; it is purely a CLI
// convenience, not something the pipeline itself needs. Results preserve
// the input order regardless of completion order.
func RunMany(ctx context.Context, fs *source.FileSet, paths []string, req Request) []FileResult {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// The FileSet itself is shared, so loading into it is serialized.
	var loadMu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			loadMu.Lock()
			id, err := fs.Load(path)
			var f *source.File
			if err == nil {
				f = fs.Get(id)
			}
			loadMu.Unlock()
			if err != nil {
				results[i] = FileResult{Path: path, LoadErr: err}
				return nil
			}
			results[i] = FileResult{Path: path, Result: Run(f, req)}
			return nil
		})
	}
	// Every goroutine above only ever returns nil or a context
	// cancellation, never a per-file error, so partial results before a
	// cancellation are still meaningful to the caller.
	_ = g.Wait()
	return results
}
