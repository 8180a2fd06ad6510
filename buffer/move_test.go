package buffer

import "testing"

func TestBuffer_Move(t *testing.T) {
	cases := []struct {
		name string
		from Pos
		move Move
		want Pos
	}{
		{name: "left-wraps-to-prev-line", from: Pos{Row: 1}, move: Move{Unit: MoveRune, Dir: DirLeft}, want: Pos{Row: 0, Col: 5}},
		{name: "right-wraps-to-next-line", from: Pos{Row: 0, Col: 5}, move: Move{Unit: MoveRune, Dir: DirRight}, want: Pos{Row: 1}},
		{name: "up-clamps-col", from: Pos{Row: 1, Col: 7}, move: Move{Unit: MoveRune, Dir: DirUp}, want: Pos{Row: 0, Col: 5}},
		{name: "down-at-last-row", from: Pos{Row: 1, Col: 2}, move: Move{Unit: MoveRune, Dir: DirDown}, want: Pos{Row: 1, Col: 2}},
		{name: "word-right", from: Pos{Row: 1}, move: Move{Unit: MoveWord, Dir: DirRight}, want: Pos{Row: 1, Col: 3}},
		{name: "word-left", from: Pos{Row: 1, Col: 7}, move: Move{Unit: MoveWord, Dir: DirLeft}, want: Pos{Row: 1, Col: 4}},
		{name: "line-end", from: Pos{Row: 1}, move: Move{Unit: MoveLine, Dir: DirEnd}, want: Pos{Row: 1, Col: 7}},
		{name: "doc-home", from: Pos{Row: 1, Col: 3}, move: Move{Unit: MoveDoc, Dir: DirHome}, want: Pos{}},
		{name: "doc-end", from: Pos{}, move: Move{Unit: MoveDoc, Dir: DirEnd}, want: Pos{Row: 1, Col: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New("hello\nfoo bar", Options{})
			b.SetCursor(tc.from)
			b.Move(tc.move)
			if got := b.Cursor(); got != tc.want {
				t.Fatalf("cursor=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuffer_Move_ExtendSelection(t *testing.T) {
	b := New("abc", Options{})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection")
	}
	if want := (Range{Start: Pos{}, End: Pos{Col: 2}}); r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}

	b.Move(Move{Unit: MoveRune, Dir: DirLeft})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected plain move to clear selection")
	}
}
