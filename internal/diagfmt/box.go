package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cstree/internal/tree"
)

const boxGap = 2

// box is a rendered subtree: its lines, their common display width and the
// column of the subtree's label centre, where the parent's connector lands.
type box struct {
	lines []string
	width int
	mid   int
}

// FormatTreeBox draws the tree top down, children under their parent:
//
//	    OprApp 0-5
//	  ┌─────┼─────┐
//	 LHS   Opr   RHS
func FormatTreeBox(w io.Writer, t *tree.Tree) error {
	b := layoutBox(BuildTreeNode(t))
	for _, line := range b.lines {
		if _, err := io.WriteString(w, strings.TrimRight(line, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func layoutBox(n *TreeNode) box {
	label := n.label()
	lw := runewidth.StringWidth(label)
	if len(n.Children) == 0 {
		return box{lines: []string{label}, width: lw, mid: lw / 2}
	}

	kids := make([]box, len(n.Children))
	offsets := make([]int, len(n.Children))
	total := 0
	for i, c := range n.Children {
		if i > 0 {
			total += boxGap
		}
		kids[i] = layoutBox(c)
		offsets[i] = total
		total += kids[i].width
	}
	width := max(total, lw)
	shift := (width - total) / 2

	mids := make([]int, len(kids))
	for i := range kids {
		mids[i] = shift + offsets[i] + kids[i].mid
	}
	mid := (mids[0] + mids[len(mids)-1]) / 2
	labelStart := max(0, min(mid-lw/2, width-lw))
	mid = labelStart + lw/2

	out := box{width: width, mid: mid}
	out.lines = append(out.lines, pad(strings.Repeat(" ", labelStart)+label, width))
	out.lines = append(out.lines, connector(width, mid, mids))

	height := 0
	for _, k := range kids {
		height = max(height, len(k.lines))
	}
	for row := range height {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", shift))
		for i, k := range kids {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", boxGap))
			}
			if row < len(k.lines) {
				b.WriteString(pad(k.lines[row], k.width))
			} else {
				b.WriteString(strings.Repeat(" ", k.width))
			}
		}
		out.lines = append(out.lines, pad(b.String(), width))
	}
	return out
}

// connector draws the row joining a parent at column mid to children at mids.
func connector(width, mid int, mids []int) string {
	row := []rune(strings.Repeat(" ", width))
	lo, hi := min(mid, mids[0]), max(mid, mids[len(mids)-1])
	for c := lo; c <= hi; c++ {
		row[c] = '─'
	}
	isChild := make(map[int]bool, len(mids))
	for _, m := range mids {
		isChild[m] = true
	}
	for _, m := range mids {
		switch {
		case m == mid:
			row[m] = '│'
		case m == lo:
			row[m] = '┌'
		case m == hi:
			row[m] = '┐'
		default:
			row[m] = '┬'
		}
	}
	switch {
	case isChild[mid] && len(mids) > 1:
		row[mid] = '┼'
	case isChild[mid]:
		row[mid] = '│'
	case mid == lo:
		row[mid] = '└'
	case mid == hi:
		row[mid] = '┘'
	default:
		row[mid] = '┴'
	}
	return string(row)
}

func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
