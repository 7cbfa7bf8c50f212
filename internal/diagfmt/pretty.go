package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cronac/internal/diag"
	"cronac/internal/source"
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	// Color wraps the severity tag in ANSI color when true. The caller
	// decides this (typically by checking golang.org/x/term.IsTerminal on
	// the destination stream) — Pretty itself never probes the writer.
	Color bool
}

// Pretty writes bag's diagnostics to w in the driver's error-stream format:
// "FATAL [line,col]: <message>" for a semantic error, "INTERNAL: <message>"
// for an invariant violation (which carries no meaningful source position).
// Call bag.Sort() first for deterministic ordering across multiple files.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevInternal:
			fmt.Fprintf(w, "%s: %s\n", tag("INTERNAL", opts.Color), d.Message)
		default:
			pos := "?,?"
			if fs != nil {
				start, _ := fs.Resolve(d.Primary)
				pos = fmt.Sprintf("%d,%d", start.Line, start.Col)
			}
			fmt.Fprintf(w, "%s [%s]: %s\n", tag("FATAL", opts.Color), pos, d.Message)
		}
	}
}

func tag(s string, colorize bool) string {
	if !colorize {
		return s
	}
	c := color.New(color.FgRed, color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}
