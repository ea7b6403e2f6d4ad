package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes how a file's bytes were normalized on load.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin, generated text).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC marks content rewritten to Unicode NFC before indexing.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both fields 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
