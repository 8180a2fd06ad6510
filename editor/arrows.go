package editor

// JumpArrow connects two rows in the gutter arrow lane.
type JumpArrow struct {
	FromRow     int
	ToRow       int
	Exceptional bool
}

const arrowLaneWidth = 2

// SetJumpArrows replaces the whole arrow layer. A nil or empty slice hides
// the lane.
func (m Model) SetJumpArrows(arrows []JumpArrow) {
	if len(arrows) == 0 && len(m.deco.arrows) == 0 {
		return
	}
	m.deco.arrows = append([]JumpArrow(nil), arrows...)
	m.deco.touch()
}

// JumpArrows returns a copy of the current arrow layer.
func (m Model) JumpArrows() []JumpArrow {
	return append([]JumpArrow(nil), m.deco.arrows...)
}

type laneCell struct {
	glyph       string
	exceptional bool
}

// arrowLane computes the two-cell lane glyph for every row.
//
// The first cell draws the connector (up/down/through), the second cell
// draws an arrowhead on target rows and a stub on source rows.
func arrowLane(arrows []JumpArrow, rowCount int) []laneCell {
	if len(arrows) == 0 || rowCount <= 0 {
		return nil
	}

	type flags struct {
		up, down, in, out, exceptional bool
	}
	rows := make([]flags, rowCount)
	mark := func(row int, fn func(*flags)) {
		if row >= 0 && row < rowCount {
			fn(&rows[row])
		}
	}

	for _, a := range arrows {
		exc := a.Exceptional
		down := a.ToRow > a.FromRow
		mark(a.FromRow, func(f *flags) {
			f.out = true
			f.exceptional = f.exceptional || exc
			if a.ToRow != a.FromRow {
				f.down = f.down || down
				f.up = f.up || !down
			}
		})
		mark(a.ToRow, func(f *flags) {
			f.in = true
			f.exceptional = f.exceptional || exc
			if a.ToRow != a.FromRow {
				f.up = f.up || down
				f.down = f.down || !down
			}
		})
		lo, hi := min(a.FromRow, a.ToRow), max(a.FromRow, a.ToRow)
		for r := lo + 1; r < hi; r++ {
			mark(r, func(f *flags) {
				f.up, f.down = true, true
				f.exceptional = f.exceptional || exc
			})
		}
	}

	out := make([]laneCell, rowCount)
	for i, f := range rows {
		var first rune
		switch {
		case f.up && f.down && (f.in || f.out):
			first = '├'
		case f.up && f.down:
			first = '│'
		case f.up:
			first = '╰'
		case f.down:
			first = '╭'
		case f.in || f.out:
			first = '↻'
		default:
			first = ' '
		}

		second := ' '
		switch {
		case f.in:
			second = '▶'
		case f.out:
			second = '─'
		}
		out[i] = laneCell{glyph: string([]rune{first, second}), exceptional: f.exceptional}
	}
	return out
}
