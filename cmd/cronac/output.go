package main

import (
	"fmt"
	"io"
	"os"
)

// openOutput resolves a driver flag's path argument to a writer: "--" means
// stdout, anything else is created/truncated on disk. The returned closer
// is a no-op for stdout so callers can always defer it unconditionally.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "--" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 -- path is an operator-supplied CLI flag
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, f.Close, nil
}
