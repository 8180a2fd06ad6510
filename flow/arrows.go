package flow

// ForwardJumpThreshold is the largest forward line distance that still reads
// as sequential execution. Backward moves are always jumps.
const ForwardJumpThreshold = 2

// JumpArrow connects two 0-based lines.
type JumpArrow struct {
	FromLine    int
	ToLine      int
	Exceptional bool
}

// Arrows derives jump arrows from steps in execution order.
//
// Skipped steps are ignored entirely. A transition is drawn when it goes
// backwards, skips forward by more than ForwardJumpThreshold lines, or leaves a
// step that raised an exception.
func Arrows(steps []Step) []JumpArrow {
	var arrows []JumpArrow

	hasLast := false
	lastLine := 0
	lastException := ""
	for _, st := range steps {
		if st.Skipped {
			continue
		}
		line, exception := st.Line, st.Exception

		if hasLast && (line < lastLine || line-lastLine > ForwardJumpThreshold || lastException != "") {
			arrows = append(arrows, JumpArrow{
				FromLine:    lastLine - 1,
				ToLine:      line - 1,
				Exceptional: lastException != "",
			})
		}

		hasLast = true
		lastLine = line
		lastException = exception
	}
	return arrows
}
