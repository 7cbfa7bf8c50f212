package source

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// FileFlags encodes metadata about how a file's content was obtained.
type FileFlags uint8

const (
	// FileVirtual marks a file added from memory (stdin, a test) rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable, 1-based source position.
type LineCol struct {
	Line uint32
	Col  uint32
}
