package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"math"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of a run. Files are never replaced: adding a path
// again creates a new FileID and the path then resolves to the newest one.
// A FileSet is not safe for concurrent writes; readers may share it once
// loading is over.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// NewFileSetWithBase создаёт набор, относительные пути которого считаются от baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.SetBaseDir(baseDir)
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the base directory, or the working directory if none was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add keeps content verbatim. BOM and CRLF are only recorded in the flags.
// Content larger than 4 GiB cannot be addressed by uint32 offsets and panics.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if len(content) > math.MaxUint32 {
		panic(fmt.Errorf("source file %s is too large: %d bytes", path, len(content)))
	}
	id, err := safecast.Conv[FileID](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	if bytes.HasPrefix(content, bom) {
		flags |= FileHasBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}

	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Text:    string(content),
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.byPath[path] = id
	return id
}

// Load reads path from disk and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- the caller picks the files
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return fs.Add(path, content, 0), nil
}

// AddVirtual adds content that has no file behind it (stdin, tests).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

// GetLatest returns the newest FileID added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.byPath[normalizePath(path)]
	return id, ok
}

// Resolve converts both ends of r into line and column.
func (fs *FileSet) Resolve(r Range) (start, end LineCol) {
	idx := fs.files[r.File].LineIdx
	return toLineCol(idx, r.Start), toLineCol(idx, r.End)
}
