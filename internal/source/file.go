package source

import (
	"os"
	"path/filepath"
	"strings"
)

// File is one loaded source. Text is the content byte for byte: every Code of
// a tree built from the file is a substring of it.
type File struct {
	ID      FileID
	Path    string
	Text    string
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCount counts lines, the part after the last '\n' included.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 // #nosec G115 -- at most len(Text) newlines, Text fits in uint32
}

// GetLine returns line n (1-based) without its line ending, "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	start, end := uint32(0), StrLen(f.Text)
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	if n <= uint32(len(f.LineIdx)) { // #nosec G115 -- see LineCount
		end = f.LineIdx[n-1]
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}

// FormatPath renders Path for output. mode is one of "absolute", "relative"
// (against baseDir, the working directory when empty), "basename" or "auto";
// anything else prints Path unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		out = BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		out = f.Path
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			out = BaseName(f.Path)
		}
	default:
		out = f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
