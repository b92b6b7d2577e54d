package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"cstree/internal/diag"
	"cstree/internal/observ"
	"cstree/internal/parser"
	"cstree/internal/source"
	"cstree/internal/trace"
	"cstree/internal/tree"
	"cstree/internal/version"
)

// CheckOptions configures CheckPaths.
type CheckOptions struct {
	MaxDiagnostics int // per file; <= 0 means no limit
	Jobs           int // <= 0 means GOMAXPROCS
	Exclude        []string
	BaseDir        string
	Cache          *DiskCache    // nil disables caching
	Progress       ProgressSink  // may be nil
	Timer          *observ.Timer // may be nil
}

// FileReport is the outcome of checking one file.
type FileReport struct {
	Path   string
	FileID source.FileID
	Tree   *tree.Tree // nil when the result came from the cache or the file did not load
	Nodes  int
	Bag    *diag.Bag
	Cached bool
}

// CheckResult collects the reports of a run in file order.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileReport
}

// Diagnostics merges the bags of all files, sorted by file and position.
func (r *CheckResult) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		if f.Bag != nil {
			out.Merge(f.Bag)
		}
	}
	out.Sort()
	return out
}

// HasErrors reports whether any file has an error diagnostic.
func (r *CheckResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CheckFile parses a file in fs and reports its syntax errors to bag, once
// per code, range and message. It then verifies the tree against the file:
// its code must be the file text (CST5001) and its spans must tile the text
// (CST5002).
func CheckFile(ctx context.Context, fs *source.FileSet, id source.FileID, bag *diag.Bag) *tree.Tree {
	file := fs.Get(id)
	span, _ := trace.Start(ctx, trace.ScopeFile, "check:"+file.Path)
	defer span.End("")

	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	root := parser.ParseFile(file, parser.Options{Reporter: reporter})

	if code := root.Code(); code != file.Text {
		at := commonPrefix(code, file.Text)
		diag.ReportError(reporter, diag.CstRoundTrip, source.Range{File: id, Start: at, End: at},
			fmt.Sprintf("tree does not reproduce the source: first difference at byte %d", at)).Emit()
	}
	if err := tree.CheckSpans(root, file.Text); err != nil {
		diag.ReportError(reporter, diag.CstSpanCoverage, source.Range{File: id}, err.Error()).Emit()
	}
	return root
}

func commonPrefix(a, b string) uint32 {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return uint32(i) // #nosec G115 -- bounded by the file size, which FileSet caps at MaxUint32
}

// CountNodes returns the number of trees in t, t included.
func CountNodes(t *tree.Tree) int {
	n := 0
	tree.VisitTrees(t, func(*tree.Tree) bool {
		n++
		return true
	})
	return n
}

// CheckPaths checks every source file under paths in parallel. Files are
// loaded up front; a file that fails to load gets an IO4001 diagnostic.
// The error is only non-nil when listing fails or ctx is cancelled.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) (*CheckResult, error) {
	files, err := ListFiles(paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	result := &CheckResult{FileSet: fileSet, Files: make([]FileReport, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	pass, ctx := trace.Start(ctx, trace.ScopePass, "check")
	defer pass.End(fmt.Sprintf("%d files", len(files)))

	// FileSet не потокобезопасен: загружаем всё заранее, воркеры только читают
	loadErrors := make(map[int]error)
	loadIdx := -1
	if opts.Timer != nil {
		loadIdx = opts.Timer.Begin("load")
	}
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		result.Files[i] = FileReport{Path: path, FileID: id}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	if opts.Timer != nil {
		opts.Timer.End(loadIdx, fmt.Sprintf("%d files", len(files)))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			rep := &result.Files[i]
			rep.Bag = diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := loadErrors[i]; failed {
				diag.ReportError(&diag.BagReporter{Bag: rep.Bag}, diag.IOLoadFileError,
					source.Range{File: rep.FileID}, "failed to load file: "+loadErr.Error()).Emit()
				emit(opts.Progress, Event{File: rep.Path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			checkOne(gctx, fileSet, rep, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func checkOne(ctx context.Context, fs *source.FileSet, rep *FileReport, opts CheckOptions) {
	started := time.Now()
	file := fs.Get(rep.FileID)
	key := CacheKey(file.Hash)

	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			diag.ReportWarning(&diag.BagReporter{Bag: rep.Bag}, diag.IOCacheError,
				source.Range{File: rep.FileID}, "ignoring cache entry: "+err.Error()).Emit()
		}
		if hit && payload.ContentHash == file.Hash {
			restoreDiagnostics(rep.Bag, rep.FileID, payload.Diagnostics)
			rep.Nodes, rep.Cached = payload.Nodes, true
			emit(opts.Progress, Event{File: rep.Path, Stage: StageCheck, Status: StatusCached, Elapsed: time.Since(started)})
			return
		}
	}

	emit(opts.Progress, Event{File: rep.Path, Stage: StageParse, Status: StatusWorking})
	opts.Timer.Measure("check", func() {
		rep.Tree = CheckFile(ctx, fs, rep.FileID, rep.Bag)
	})
	rep.Nodes = CountNodes(rep.Tree)

	if opts.Cache != nil {
		payload := &DiskPayload{
			Tool:        "cstree " + version.Version,
			ContentHash: file.Hash,
			Nodes:       rep.Nodes,
			Diagnostics: cacheDiagnostics(rep.Bag.Items()),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			diag.ReportWarning(&diag.BagReporter{Bag: rep.Bag}, diag.IOCacheError,
				source.Range{File: rep.FileID}, "cannot write cache entry: "+err.Error()).Emit()
		}
	}

	status := StatusDone
	if rep.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: rep.Path, Stage: StageCheck, Status: status, Elapsed: time.Since(started)})
}
