package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"cstree/internal/source"
)

// shortLine is one line of the short format.
type shortLine struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatShort renders one line per diagnostic (and per note when
// includeNotes is set):
//
//	error SYN2001 src/main.enso:3:7 Unmatched delimiter
//
// Paths are relative to the FileSet base dir with forward slashes, messages
// are folded onto one line, and lines are sorted by path, position,
// severity and code, so the output is stable enough for golden files.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var lines []shortLine
	add := func(sev string, code Code, r source.Range, msg string) {
		if int(r.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(r)
		lines = append(lines, shortLine{
			sev:  sev,
			code: code.ID(),
			path: shortPath(fs.Get(r.File).FormatPath("relative", fs.BaseDir())),
			pos:  start,
			msg:  strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Range, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
