package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cronac/internal/diagfmt"
	"cronac/internal/driver"
	"cronac/internal/source"
	"cronac/internal/token"
)

type runOptions struct {
	tokensPath  string
	parseOnly   bool
	unparsePath string
	namesPath   string
	check       bool
	irPath      string

	color    string
	quiet    bool
	cacheDir string
}

func (o *runOptions) toRequest() driver.Request {
	return driver.Request{
		Tokens:  o.tokensPath != "",
		Parse:   o.parseOnly,
		Unparse: o.unparsePath != "",
		Names:   o.namesPath != "",
		Check:   o.check,
		IR:      o.irPath != "",
	}
}

func (o *runOptions) anySelected() bool {
	return o.tokensPath != "" || o.parseOnly || o.unparsePath != "" ||
		o.namesPath != "" || o.check || o.irPath != ""
}

// runPaths dispatches a single path through the rich single-file pipeline
// (every output-path flag makes sense against exactly one source), and
// more than one path through the independent per-file fan-out: each of
// -t/-u/-n/-a names one destination, which a second source file would
// just overwrite, so those flags are rejected once more than one path is
// given; -p/-c (diagnostics only, no named destination) work for any
// number of files.
func runPaths(cmd *cobra.Command, paths []string, opts *runOptions) error {
	if !opts.anySelected() {
		return fmt.Errorf("at least one of -t, -p, -u, -n, -c, -a is required")
	}
	if len(paths) == 1 {
		return runCompile(paths[0], opts)
	}
	if opts.tokensPath != "" || opts.unparsePath != "" || opts.namesPath != "" || opts.irPath != "" {
		return fmt.Errorf("-t, -u, -n, and -a each name a single output destination and require exactly one source path; got %d", len(paths))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runManyPaths(ctx, paths, opts)
}

// runManyPaths compiles every path independently through driver.RunMany —
// safe to fan out because spec.md §5 guarantees no mutable state survives
// across per-file runs except each run's own, never-shared type interner.
func runManyPaths(ctx context.Context, paths []string, opts *runOptions) error {
	colorize := resolveColor(opts.color, os.Stderr)
	fs := source.NewFileSet()
	results := driver.RunMany(ctx, fs, paths, opts.toRequest())

	failed := false
	for _, r := range results {
		if r.LoadErr != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Path, r.LoadErr)
			failed = true
			continue
		}
		if r.Result.Bag.HasErrors() {
			failed = true
			if !opts.quiet {
				r.Result.Bag.Sort()
				diagfmt.Pretty(os.Stderr, r.Result.Bag, fs, diagfmt.PrettyOpts{Color: colorize})
			}
		}
	}
	if failed {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func runCompile(path string, opts *runOptions) error {
	colorize := resolveColor(opts.color, os.Stderr)

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f := fs.Get(id)

	req := opts.toRequest()

	// A cache hit for -a means the IR text is already on disk: drop the
	// pipeline's own IR request so a cache hit that's the only thing asked
	// for skips lexing, parsing, resolving, checking, and lowering
	// entirely, rather than just saving the write.
	var cachedIR string
	var cacheHit bool
	var cache *driver.Cache
	if opts.irPath != "" {
		cache = openIRCache(opts.cacheDir)
		if cache != nil {
			hash := driver.HashContent(f.Content)
			if text, ok, err := cache.Get(hash); err == nil && ok {
				cachedIR, cacheHit = text, true
				req.IR = false
			}
		}
	}

	res, internalErr := runPipeline(f, req)
	if internalErr != nil {
		fmt.Fprintf(os.Stderr, "INTERNAL: %s\n", internalErr.Msg)
		return internalErr
	}

	if !opts.quiet && res.Bag.HasErrors() {
		res.Bag.Sort()
		diagfmt.Pretty(os.Stderr, res.Bag, fs, diagfmt.PrettyOpts{Color: colorize})
	}

	if err := emitRequested(fs, f, res, opts, cache, cachedIR, cacheHit); err != nil {
		return err
	}

	if res.Bag.HasErrors() {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

// runPipeline runs driver.Run, converting a lowering-stage invariant panic
// into a driver.InternalError instead of letting it crash the process —
// the lowerer panics on conditions (unresolved type, out-of-scope symbol)
// that can only come from a bug in an earlier pass, not from user source.
func runPipeline(f *source.File, req driver.Request) (res *driver.Result, internalErr *driver.InternalError) {
	defer func() {
		if r := recover(); r != nil {
			internalErr = driver.NewInternalError(fmt.Sprint(r))
		}
	}()
	return driver.Run(f, req), nil
}

func emitRequested(fs *source.FileSet, f *source.File, res *driver.Result, opts *runOptions, cache *driver.Cache, cachedIR string, cacheHit bool) error {
	if opts.tokensPath != "" {
		if err := writeTokens(opts.tokensPath, fs, res.Tokens); err != nil {
			return err
		}
	}
	if opts.unparsePath != "" && res.Program != nil {
		if err := writeUnparse(opts.unparsePath, res, false); err != nil {
			return err
		}
	}
	if opts.namesPath != "" && res.Program != nil && res.ResolveOK {
		if err := writeUnparse(opts.namesPath, res, true); err != nil {
			return err
		}
	}
	if opts.irPath != "" {
		if cacheHit {
			if err := writeText(opts.irPath, cachedIR); err != nil {
				return err
			}
		} else if res.IR != nil {
			if err := writeIR(opts.irPath, cache, f.Content, res); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTokens(path string, fs *source.FileSet, toks []token.Token) error {
	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for _, t := range toks {
		start, _ := fs.Resolve(t.Span)
		fmt.Fprintf(w, "%s\n", t.String(start.Line, start.Col))
	}
	return nil
}

func writeUnparse(path string, res *driver.Result, withSymbols bool) error {
	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()
	diagfmt.Unparse(w, res.Program, diagfmt.UnparseOpts{WithSymbols: withSymbols})
	return nil
}

func writeText(path, text string) error {
	w, closeFn, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeFn()
	fmt.Fprint(w, text)
	return nil
}

func writeIR(path string, cache *driver.Cache, content []byte, res *driver.Result) error {
	irText := res.IR.String()
	if cache != nil {
		_ = cache.Put(driver.HashContent(content), irText)
	}
	return writeText(path, irText)
}

// openIRCache resolves the cache directory (explicit --cache-dir flag,
// else cronac.toml, else the platform default) and opens it; a failure to
// open the cache is not fatal to compilation, it just disables caching.
func openIRCache(override string) *driver.Cache {
	dir := override
	if dir == "" {
		cfg, _, err := driver.LoadConfig(".")
		if err != nil {
			return nil
		}
		dir = cfg.CacheDir
	}
	c, err := driver.OpenCache(dir)
	if err != nil {
		return nil
	}
	return c
}

func resolveColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(out.Fd()))
	}
}
