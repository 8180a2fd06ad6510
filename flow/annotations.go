package flow

import (
	"strings"
)

const annotationSeparator = "; "

// LineAnnotation holds the end-of-line text for one line.
type LineAnnotation struct {
	Notes        string
	HasNotes     bool
	Exception    string
	HasException bool
}

// IsEmpty reports whether a has nothing to render.
func (a LineAnnotation) IsEmpty() bool { return !a.HasNotes && !a.HasException }

// Annotations groups notes and exception text of detailed steps by line.
//
// Skipped steps still contribute text. Keys are 0-based lines; lines without
// any non-empty text are absent.
func Annotations(steps []Step) map[int]LineAnnotation {
	type group struct {
		notes      []string
		exceptions []string
	}

	groups := make(map[int]*group)
	for _, st := range steps {
		if !st.Detailed {
			continue
		}
		g, ok := groups[st.Line]
		if !ok {
			g = &group{}
			groups[st.Line] = g
		}
		if st.Notes != "" {
			g.notes = append(g.notes, escapeLineBreaks(st.Notes))
		}
		if st.Exception != "" {
			g.exceptions = append(g.exceptions, escapeLineBreaks(st.Exception))
		}
	}

	out := make(map[int]LineAnnotation, len(groups))
	for line, g := range groups {
		var a LineAnnotation
		if len(g.notes) > 0 {
			a.Notes = strings.Join(g.notes, annotationSeparator)
			a.HasNotes = true
		}
		if len(g.exceptions) > 0 {
			a.Exception = strings.Join(g.exceptions, annotationSeparator)
			a.HasException = true
		}
		if a.IsEmpty() {
			continue
		}
		out[line-1] = a
	}
	return out
}

var lineBreakEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func escapeLineBreaks(s string) string {
	return lineBreakEscaper.Replace(s)
}
