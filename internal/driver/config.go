package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the subset of cronac.toml the driver consults. Its absence is
// never an error — a project with no config file just gets the defaults
// below — matching the teacher's own surge.toml discovery.
type Config struct {
	CacheDir string `toml:"cache_dir"`
}

// DefaultConfig returns the configuration a project gets when no
// cronac.toml is found.
func DefaultConfig() Config {
	return Config{CacheDir: defaultCacheDir()}
}

func defaultCacheDir() string {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".cache")
		} else {
			base = os.TempDir()
		}
	}
	return filepath.Join(base, "cronac")
}

// LoadConfig walks up from startDir looking for cronac.toml, returning the
// defaults (ok=false) if none is found anywhere up to the filesystem root.
func LoadConfig(startDir string) (cfg Config, ok bool, err error) {
	path, found, err := findConfig(startDir)
	if err != nil || !found {
		return DefaultConfig(), false, err
	}

	cfg = DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, true, nil
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cronac.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
