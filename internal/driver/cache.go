package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion guards against decoding a payload from an older,
// incompatible format; bump it whenever cachedArtifact's shape changes.
const cacheSchemaVersion uint16 = 1

// cachedArtifact is what's actually persisted: the rendered 3AC text for
// a source file, keyed by the content hash that produced it. Caching the
// rendered text rather than the *ir.Program graph sidesteps having to
// teach msgpack how to round-trip the operand interface's concrete types.
type cachedArtifact struct {
	Schema  uint16
	Hash    [sha256.Size]byte
	IRText  string
}

// Cache is a disk-backed store of rendered 3AC output, keyed by a
// sha256 hash of the source file's content: re-running `-a` against an
// unchanged file skips lexing, parsing, resolving, checking, and lowering
// entirely.
type Cache struct {
	dir string
}

// OpenCache opens (creating if needed) a disk cache rooted at dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// HashContent returns the cache key for a file's content.
func HashContent(content []byte) [sha256.Size]byte {
	return sha256.Sum256(content)
}

func (c *Cache) pathFor(hash [sha256.Size]byte) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x.mp", hash))
}

// Get returns the cached 3AC text for hash, if present and of the current
// schema version.
func (c *Cache) Get(hash [sha256.Size]byte) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	f, err := os.Open(c.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	var payload cachedArtifact
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return "", false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Hash != hash {
		return "", false, nil
	}
	return payload.IRText, true, nil
}

// Put writes irText to the cache under hash, replacing any prior entry
// atomically via a temp-file rename.
func (c *Cache) Put(hash [sha256.Size]byte, irText string) error {
	if c == nil {
		return nil
	}
	dst := c.pathFor(hash)
	tmp, err := os.CreateTemp(c.dir, "tmp-*.mp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	payload := cachedArtifact{Schema: cacheSchemaVersion, Hash: hash, IRText: irText}
	if err := msgpack.NewEncoder(tmp).Encode(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
