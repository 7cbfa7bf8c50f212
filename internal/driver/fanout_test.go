package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cronac/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunManyPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "one.crona", "a:int;\n"),
		writeFile(t, dir, "two.crona", "b:bool;\n"),
		writeFile(t, dir, "three.crona", "c:byte;\n"),
	}

	fs := source.NewFileSet()
	results := RunMany(context.Background(), fs, paths, Request{Parse: true})

	if len(results) != len(paths) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(paths))
	}
	for i, want := range paths {
		if results[i].Path != want {
			t.Fatalf("results[%d].Path = %q, want %q", i, results[i].Path, want)
		}
		if results[i].LoadErr != nil {
			t.Fatalf("results[%d].LoadErr = %v", i, results[i].LoadErr)
		}
		if !results[i].Result.ParseOK {
			t.Fatalf("results[%d] failed to parse: %+v", i, results[i].Result.Bag.Items())
		}
	}
}

func TestRunManyReportsLoadErrorPerFile(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.crona", "a:int;\n"),
		filepath.Join(dir, "missing.crona"),
	}

	fs := source.NewFileSet()
	results := RunMany(context.Background(), fs, paths, Request{Parse: true})

	if results[0].LoadErr != nil {
		t.Fatalf("results[0].LoadErr = %v", results[0].LoadErr)
	}
	if results[1].LoadErr == nil {
		t.Fatal("want a load error for the missing file")
	}
	if results[1].Result != nil {
		t.Fatal("a failed load should leave Result nil")
	}
}
