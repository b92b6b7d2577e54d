package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cstree/internal/diag"
	"cstree/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	all := []*color.Color{p.code, p.gutter, p.caret, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty печатает диагностики в человекочитаемом виде:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  <line> | <source line>
//	         |     ^~~~
//	  note: <path>:<line>:<col>: <msg>
//
// Подчёркивание выравнивается по видимой ширине символов, табуляция
// разворачивается до opts.TabWidth.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	tab := int(opts.TabWidth)
	if tab == 0 {
		tab = 4
	}
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		sev, ok := p.sev[d.Severity]
		if !ok {
			sev = p.code
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)

		writeSnippet(w, f, start, end, int(opts.Context), tab, p)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Range.File)
				ns, _ := fs.Resolve(n.Range)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
					formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
			}
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context, tab int, p palette) {
	if f.Text == "" {
		return
	}
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + context
	if last > int(f.LineCount()) {
		last = int(f.LineCount())
	}
	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)

	for n := first; n <= last; n++ {
		text := f.GetLine(uint32(n)) // #nosec G115 -- bounded by LineCount
		fmt.Fprintf(w, "  %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), expandTabs(text, tab))
		if n != int(start.Line) {
			continue
		}
		from := clamp(int(start.Col)-1, len(text))
		to := len(text)
		if end.Line == start.Line {
			to = clamp(int(end.Col)-1, len(text))
		}
		pad := displayWidth(text[:from], tab)
		width := displayWidth(text[:to], tab) - pad
		marker := "^"
		if width > 1 {
			marker += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "  %s %s%s\n", p.gutter.Sprintf("%s |", blank), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}

func expandTabs(s string, tab int) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tab))
}

func displayWidth(s string, tab int) int {
	return runewidth.StringWidth(expandTabs(s, tab))
}
