package lexer

import (
	"cstree/internal/diag"
	"cstree/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки игнорируются, лексинг продолжается
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, start, end uint32, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	r := source.Range{File: lx.file.ID, Start: start, End: end}
	lx.opts.Reporter.Report(code, sev, r, msg, nil)
}

func (lx *Lexer) errLex(code diag.Code, c source.Code, msg string) {
	lx.report(code, diag.SevError, c.Start, c.End(), msg)
}
