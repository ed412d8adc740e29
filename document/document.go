package document

// CursorRange is a cursor projected into row space: the first and last
// displayed rows the focused position occupies, and how many rows that is.
// When no wrapping is involved Start equals End and NumRows is 1.
type CursorRange[R any] struct {
	Start   R
	End     R
	NumRows int
}

// LayoutDetails reports, for a cursor, how many rows exist in the document
// before the start and after the end of its range. Both counts are capped at
// the bound given to Layout so the walk never has to cover the whole
// document; a count equal to the bound means "at least this many".
type LayoutDetails[R any] struct {
	Range           CursorRange[R]
	RowsBeforeStart int
	RowsAfterEnd    int
}

// Document is the capability set a backing content store must implement to
// be viewed. R identifies one displayed row; C is an opaque focus position.
//
// Boundary conditions (no row past the end, no movement from the first or
// last line) are reported through ok results, never through panics. Compare,
// by contrast, must panic when asked to order rows computed under different
// widths: wrap geometry from two widths is not comparable and mixing them is
// a caller bug.
type Document[R, C any] interface {
	// Append adds streamed bytes. Content only grows.
	Append(data []byte)
	// EndOfStream marks the stream complete. One-shot.
	EndOfStream()

	Width() int
	// Resize changes the wrap width. Rows obtained before the resize must
	// not be compared with rows obtained after it.
	Resize(width int)

	// First returns the first displayed row and initial cursor, once at
	// least one complete line exists.
	First() (R, C, bool)

	Next(row R) (R, bool)
	Prev(row R) (R, bool)

	// LineNumber is the 1-based logical line number of a row.
	LineNumber(row R) int

	IsWrapped(row R) bool
	IsWrapStart(row R) bool
	IsWrapEnd(row R) bool
	IsAfterWrapStart(row R) bool
	IsBeforeWrapEnd(row R) bool

	CursorRange(c C) CursorRange[R]

	// RowToCursor converts a row into a cursor. Implementations that track
	// horizontal position within a row should derive it from prev.
	RowToCursor(row R, prev C) C

	// MoveCursorDown and MoveCursorUp move by n logical steps, clamped to
	// the document. ok is false only when the cursor was already at the
	// boundary and did not move at all.
	MoveCursorDown(n int, c C) (C, bool)
	MoveCursorUp(n int, c C) (C, bool)

	// Compare orders two rows: negative, zero, or positive as a is before,
	// at, or after b.
	Compare(a, b R) int

	// Content returns the bytes displayed on a row.
	Content(row R) []byte
}

// IsFirstRow reports whether row is the very first displayed row of the
// document: line number 1, and either unwrapped or the first wrap segment.
func IsFirstRow[R, C any](d Document[R, C], row R) bool {
	return d.LineNumber(row) == 1 && (!d.IsWrapped(row) || d.IsWrapStart(row))
}

// Intersects reports whether row falls inside the cursor's range.
func Intersects[R, C any](d Document[R, C], row R, c C) bool {
	r := d.CursorRange(c)
	return d.Compare(r.Start, row) <= 0 && d.Compare(row, r.End) <= 0
}

// Layout walks outward from the cursor's range, counting rows before its
// start and after its end, each capped at bound.
func Layout[R, C any](d Document[R, C], c C, bound int) LayoutDetails[R] {
	r := d.CursorRange(c)

	before := 0
	prev := r.Start
	for before < bound {
		p, ok := d.Prev(prev)
		if !ok {
			break
		}
		before++
		prev = p
	}

	after := 0
	next := r.End
	for after < bound {
		n, ok := d.Next(next)
		if !ok {
			break
		}
		after++
		next = n
	}

	return LayoutDetails[R]{
		Range:           r,
		RowsBeforeStart: before,
		RowsAfterEnd:    after,
	}
}

// Diff returns the number of rows between a and b, where b must be at or
// before a. Panics if b is never found walking backward from a.
func Diff[R, C any](d Document[R, C], a, b R) int {
	diff := 0
	t := a
	for d.Compare(t, b) != 0 {
		p, ok := d.Prev(t)
		if !ok {
			panic("document: Diff walked past the start of the document without finding b")
		}
		t = p
		diff++
	}
	return diff
}
