package source

import (
	"os"
	"testing"
)

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cr", []byte("int a;\nbyte b;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 7, End: 14})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 8 {
		t.Fatalf("end = %+v, want line 2 col 8", end)
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cr", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q, want empty", got)
	}
}

func TestFileSetLoadNormalizesCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	path := writeTempFile(t, raw)

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatal("expected FileHadBOM")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatal("expected FileNormalizedCRLF")
	}
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
}

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := t.TempDir() + "/in.cr"
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
