package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cstree/internal/diag"
	"cstree/internal/parser"
	"cstree/internal/source"
	"cstree/internal/trace"
	"cstree/internal/tree"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *tree.Tree
	Bag     *diag.Bag
}

// Parse loads path and builds its tree. Syntax errors end up in the bag and
// under Invalid nodes; only I/O fails.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, fileID, maxDiagnostics), nil
}

// ParseFile builds the tree of a file already in fs.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(id)
	span, _ := trace.Start(ctx, trace.ScopeFile, "parse:"+file.Path)
	bag := diag.NewBag(maxDiagnostics)
	root := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	span.WithExtra("diagnostics", itoa(bag.Len())).End("")

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    root,
		Bag:     bag,
	}
}

// ParseDir parses every source file under dir, at most jobs at a time.
// Results share one FileSet and keep the order of ListFiles.
func ParseDir(ctx context.Context, dir string, jobs, maxDiagnostics int) ([]*ParseResult, error) {
	files, err := ListFiles([]string{dir}, nil)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSetWithBase(dir)
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		if ids[i], err = fs.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	pass, ctx := trace.Start(ctx, trace.ScopePass, "parse")
	defer pass.End(itoa(len(files)) + " files")

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*ParseResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ParseFile(gctx, fs, id, maxDiagnostics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func itoa(n int) string { return strconv.Itoa(n) }
