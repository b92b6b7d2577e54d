package diagfmt

import (
	"encoding/json"
	"io"

	"cstree/internal/diag"
	"cstree/internal/source"
)

// LocationJSON is a byte range with optional 1-based line and column.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document `check --format json` prints. Omitted
// counts diagnostics cut by JSONOpts.Max or by the bag limit.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

// formatPath renders a file path for output. Only the relative mode looks at
// the base directory of fs.
func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	return f.FormatPath(mode.String(), fs.BaseDir())
}

func (b jsonBuilder) location(r source.Range) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(b.fs.Get(r.File), b.fs, b.opts.PathMode),
		StartByte: r.Start,
		EndByte:   r.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(r)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if !b.opts.IncludeNotes {
		return out
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Range)})
	}
	return out
}

// BuildDiagnosticsOutput converts the bag into its JSON shape, in bag order.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	omitted := bag.Dropped()
	if opts.Max > 0 && len(items) > opts.Max {
		omitted += len(items) - opts.Max
		items = items[:opts.Max]
	}

	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, len(items)),
		Count:       len(items),
		Omitted:     omitted,
	}
	for i, d := range items {
		out.Diagnostics[i] = b.diagnostic(d)
	}
	return out
}

// JSON пишет диагностики одним документом с отступами.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
