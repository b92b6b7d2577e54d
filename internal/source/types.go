package source

type (
	// FileID is the index of a file in its FileSet.
	FileID uint32
	// FileFlags records what Add noticed about a file.
	FileFlags uint8
)

const (
	FileVirtual FileFlags = 1 << iota // added from memory, not loaded from disk
	FileHasBOM                        // starts with a UTF-8 byte order mark, kept in Text
	FileHasCRLF                       // has \r\n line endings, kept as is
)

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
