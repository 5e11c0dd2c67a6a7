package prettydoc

import "strings"

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

// Render renders d to a string. width is the column budget used by each
// Group's fits test; width<=0 means breaking is disabled entirely and every
// group renders flat.
//
// colorize, if non-nil, is called with each Annotate's tag and the
// already-rendered text of its subtree, and should return that text
// wrapped however the tag implies (e.g. wrapped in ANSI escapes). It is
// not called at all when colorize is nil, so callers that want no colour
// can just pass nil instead of an identity function.
func Render[A any](d Doc[A], width int, colorize func(ann A, s string) string) string {
	var sb strings.Builder
	r := &renderer[A]{width: width, colorize: colorize}
	r.render(&sb, d, 0, 0, modeBreak)
	return sb.String()
}

type renderer[A any] struct {
	width    int
	colorize func(ann A, s string) string
}

func (r *renderer[A]) infinite() bool { return r.width <= 0 }

// render writes d to sb starting at column col with the given nesting
// indent and mode, returning the column after writing.
func (r *renderer[A]) render(sb *strings.Builder, d Doc[A], indent, col int, m mode) int {
	switch n := d.(type) {
	case nilDoc[A]:
		return col
	case textDoc[A]:
		sb.WriteString(n.s)
		return col + runeLen(n.s)
	case lineDoc[A]:
		if m == modeFlat {
			if n.soft {
				return col
			}
			sb.WriteByte(' ')
			return col + 1
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", indent))
		return indent
	case nestDoc[A]:
		return r.render(sb, n.d, indent+n.indent, col, m)
	case groupDoc[A]:
		gm := m
		if !r.infinite() {
			if col+flattenWidth[A](n.d) <= r.width {
				gm = modeFlat
			} else {
				gm = modeBreak
			}
		} else {
			gm = modeFlat
		}
		return r.render(sb, n.d, indent, col, gm)
	case appendDoc[A]:
		col = r.render(sb, n.a, indent, col, m)
		return r.render(sb, n.b, indent, col, m)
	case annotateDoc[A]:
		if r.colorize == nil {
			return r.render(sb, n.d, indent, col, m)
		}
		start := sb.Len()
		newCol := r.render(sb, n.d, indent, col, m)
		inner := sb.String()[start:]
		wrapped := r.colorize(n.ann, inner)
		truncated := sb.String()[:start]
		sb.Reset()
		sb.WriteString(truncated)
		sb.WriteString(wrapped)
		return newCol
	default:
		return col
	}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// flattenWidth returns the rune-width of d if it were rendered in flat
// mode, used by Group's fits test. Breaks never contribute a newline in
// this measurement, only the space a non-soft Line would take.
func flattenWidth[A any](d Doc[A]) int {
	switch n := d.(type) {
	case nilDoc[A]:
		return 0
	case textDoc[A]:
		return runeLen(n.s)
	case lineDoc[A]:
		if n.soft {
			return 0
		}
		return 1
	case nestDoc[A]:
		return flattenWidth[A](n.d)
	case groupDoc[A]:
		return flattenWidth[A](n.d)
	case appendDoc[A]:
		return flattenWidth[A](n.a) + flattenWidth[A](n.b)
	case annotateDoc[A]:
		return flattenWidth[A](n.d)
	default:
		return 0
	}
}
