package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints short or relative paths as is and long absolute ones by basename.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag or config value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста до и после основной строки
	PathMode  PathMode
	TabWidth  uint8 // ширина табуляции при выравнивании подчёркивания, 0 - 4
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TreeFormat selects how a parsed tree is printed.
type TreeFormat uint8

const (
	// TreeFormatPretty is an indented outline, one node or token per line.
	TreeFormatPretty TreeFormat = iota
	// TreeFormatBox draws the tree top down with box characters.
	TreeFormatBox
	TreeFormatJSON
	TreeFormatMsgpack
	// TreeFormatCode prints the source the tree reconstructs.
	TreeFormatCode
)

// ParseTreeFormat maps the value of `parse --format` to a TreeFormat.
func ParseTreeFormat(s string) (TreeFormat, bool) {
	switch s {
	case "", "pretty":
		return TreeFormatPretty, true
	case "tree":
		return TreeFormatBox, true
	case "json":
		return TreeFormatJSON, true
	case "msgpack":
		return TreeFormatMsgpack, true
	case "code":
		return TreeFormatCode, true
	}
	return TreeFormatPretty, false
}
