package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of the files a directory walk picks up.
const SourceExt = ".enso"

// ListFiles expands paths into a sorted list of source files. A file path
// is taken as is; a directory is walked for *.enso files. Exclude patterns
// use filepath.Match syntax against the slash-separated path relative to the
// walked directory, and a matching directory is skipped whole.
func ListFiles(paths []string, exclude []string) ([]string, error) {
	for _, pat := range exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
	}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if rel != "." && excluded(filepath.ToSlash(rel), exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}
