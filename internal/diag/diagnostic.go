package diag

import (
	"cstree/internal/source"
)

// Note points at a secondary location of a diagnostic.
type Note struct {
	Range source.Range
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Range
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Range, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Range, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note; d itself is unchanged.
func (d Diagnostic) WithNote(r source.Range, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Range: r, Msg: msg})
	return d
}
