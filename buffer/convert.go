package buffer

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// PosFromOffset converts a flat rune offset into a position.
//
// With OffsetError, out-of-range offsets report false. With OffsetClamp they
// snap to the document start or end.
func (b *Buffer) PosFromOffset(off int, mode OffsetClampMode) (Pos, bool) {
	off, ok := clampOffset(off, b.docRuneLen(), mode)
	if !ok {
		return Pos{}, false
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}, true
		}
		off -= len(line) + 1
	}
	return Pos{}, false
}

// OffsetFromPos converts a position into a flat rune offset.
//
// With OffsetError, positions outside the document report false. With
// OffsetClamp they are clamped first.
func (b *Buffer) OffsetFromPos(pos Pos, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if b.clampPos(pos) != pos {
			return 0, false
		}
	case OffsetClamp:
		pos = b.clampPos(pos)
	default:
		return 0, false
	}

	off := 0
	for row := 0; row < pos.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + pos.Col, true
}

// CursorOffset returns the cursor position as a flat rune offset.
func (b *Buffer) CursorOffset() int {
	off, _ := b.OffsetFromPos(b.cursor, OffsetClamp)
	return off
}

func clampOffset(off, hi int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > hi {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, hi), true
	default:
		return 0, false
	}
}

func (b *Buffer) docRuneLen() int {
	total := len(b.lines) - 1
	for _, line := range b.lines {
		total += len(line)
	}
	return total
}
