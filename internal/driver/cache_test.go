package driver

import (
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	hash := HashContent([]byte("a:int;\n"))

	if _, ok, err := c.Get(hash); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%v err=%v", ok, err)
	}

	if err := c.Put(hash, "LABEL main:\n"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	text, ok, err := c.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("want cache hit after Put")
	}
	if text != "LABEL main:\n" {
		t.Fatalf("text = %q", text)
	}
}

func TestCacheMissOnDifferentHash(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	if err := c.Put(HashContent([]byte("one")), "one-ir"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := c.Get(HashContent([]byte("two"))); err != nil || ok {
		t.Fatalf("want miss for a different hash, got ok=%v err=%v", ok, err)
	}
}

func TestCacheNilReceiverIsInert(t *testing.T) {
	var c *Cache
	if _, ok, err := c.Get(HashContent([]byte("x"))); ok || err != nil {
		t.Fatalf("nil cache Get should be a clean miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Put(HashContent([]byte("x")), "irrelevant"); err != nil {
		t.Fatalf("nil cache Put should be a no-op, got err=%v", err)
	}
}

func TestOpenCacheCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	if err := c.Put(HashContent([]byte("x")), "ir"); err != nil {
		t.Fatalf("Put into freshly created dir: %v", err)
	}
}
