package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"cstree/internal/diag"
	"cstree/internal/source"
	"cstree/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты check по хэшу содержимого файла.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is a note of a cached diagnostic; notes always point into the
// same file.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// CachedDiagnostic is a diagnostic without its FileID.
type CachedDiagnostic struct {
	Severity diag.Severity
	Code     diag.Code
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

// DiskPayload is what check stores per file.
type DiskPayload struct {
	Schema      uint16
	Tool        string
	ContentHash [32]byte
	Nodes       int
	Diagnostics []CachedDiagnostic
}

// CacheKey mixes the schema and the tool version into the content hash, so
// that a new parser never sees results of an old one.
func CacheKey(contentHash [32]byte) [32]byte {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write(contentHash[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// OpenDiskCache opens the cache under the user cache directory
// ($XDG_CACHE_HOME or the platform default).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "check", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload. The file appears atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one of another schema is a miss.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// Clear removes every entry.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "check"))
}

func cacheDiagnostics(items []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, 0, len(items))
	for _, d := range items {
		cd := CachedDiagnostic{
			Severity: d.Severity,
			Code:     d.Code,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Range.Start, End: n.Range.End, Msg: n.Msg})
		}
		out = append(out, cd)
	}
	return out
}

func restoreDiagnostics(bag *diag.Bag, file source.FileID, cached []CachedDiagnostic) {
	for _, cd := range cached {
		d := diag.New(cd.Severity, cd.Code, source.Range{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Range{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
}
