package viewer

import (
	"fmt"
	"iter"
	"math"

	"github.com/iw2rmb/glance/document"
)

// Viewer keeps the focused part of a document visible within the viewport as
// the focus moves, and re-anchors the focus when the viewport itself moves.
type Viewer[R, C any] struct {
	doc   document.Document[R, C]
	top   R
	focus C
	dims  Dimensions

	// What scrolloff is set to, as opposed to what it functionally is for
	// the current height. Read it through effectiveScrolloff.
	scrolloffSetting int
}

// startRange is the inclusive range of screen indexes at which the start of
// the focused range is allowed to appear.
type startRange struct {
	first, last int
}

// RangeDiagnostics records how the acceptable range was derived, stage by
// stage. Returned alongside the range for tests and introspection.
type RangeDiagnostics struct {
	CursorHeight    int
	LastScreenIndex int
	AfterScrolloff  [2]int
	AfterDocEdges   [2]int
	AfterExpansion  [2]int
}

type positionKind int

const (
	aboveTop positionKind = iota
	atIndex
	belowBottom
)

type position struct {
	kind  positionKind
	index int
}

// New builds a viewer over a document that has produced at least one row.
// Callers obtain firstRow and cursor from the document's First and must have
// already sized the document to dims.Width.
func New[R, C any](doc document.Document[R, C], firstRow R, cursor C, dims Dimensions, scrolloff int) *Viewer[R, C] {
	return &Viewer[R, C]{
		doc:              doc,
		top:              firstRow,
		focus:            cursor,
		dims:             dims,
		scrolloffSetting: scrolloff,
	}
}

// Doc exposes the underlying document for read-only render queries.
func (v *Viewer[R, C]) Doc() document.Document[R, C] { return v.doc }

// Focus returns the current focus position.
func (v *Viewer[R, C]) Focus() C { return v.focus }

// Dimensions returns the current viewport size.
func (v *Viewer[R, C]) Dimensions() Dimensions { return v.dims }

func (v *Viewer[R, C]) SetScrolloff(scrolloff int) {
	v.scrolloffSetting = scrolloff
}

// Append forwards streamed bytes to the document.
func (v *Viewer[R, C]) Append(data []byte) { v.doc.Append(data) }

// EndOfStream forwards the end-of-stream marker to the document.
func (v *Viewer[R, C]) EndOfStream() { v.doc.EndOfStream() }

// effectiveScrolloff caps the setting at half the screen so the acceptable
// range can never invert.
//
//	Height | Setting | Min rows between screen edge and focus
//	  15   |    3    |   3
//	  15   |    7    |   7
//	  15   |    8    |   7
//	  16   |    8    |   7
//	  17   |    8    |   8
func (v *Viewer[R, C]) effectiveScrolloff() int {
	return min(v.scrolloffSetting, (v.dims.Height-1)/2)
}

// rowAtIndex walks forward from the top row. ok is false when the document
// ends before the index.
func (v *Viewer[R, C]) rowAtIndex(index int) (R, bool) {
	row := v.top
	for ; index > 0; index-- {
		next, ok := v.doc.Next(row)
		if !ok {
			var zero R
			return zero, false
		}
		row = next
	}
	return row, true
}

func (v *Viewer[R, C]) mustRowAtIndex(index int) R {
	row, ok := v.rowAtIndex(index)
	if !ok {
		panic(fmt.Sprintf("viewer: no row at screen index %d", index))
	}
	return row
}

// lastRowAtOrBefore is rowAtIndex, except that when the document ends before
// the index it returns the document's last row.
func (v *Viewer[R, C]) lastRowAtOrBefore(index int) R {
	row := v.top
	for ; index > 0; index-- {
		next, ok := v.doc.Next(row)
		if !ok {
			return row
		}
		row = next
	}
	return row
}

func (v *Viewer[R, C]) positionOfRow(row R) position {
	if v.doc.Compare(row, v.top) < 0 {
		return position{kind: aboveTop}
	}

	current := v.top
	for index := 0; index < v.dims.Height; index++ {
		if v.doc.Compare(row, current) == 0 {
			return position{kind: atIndex, index: index}
		}
		next, ok := v.doc.Next(current)
		if !ok {
			panic("viewer: row should exist after the top row and before the end of the document")
		}
		current = next
	}

	return position{kind: belowBottom}
}

// nRowsBefore walks n rows backward. The caller guarantees they exist.
func (v *Viewer[R, C]) nRowsBefore(row R, n int) R {
	for ; n > 0; n-- {
		prev, ok := v.doc.Prev(row)
		if !ok {
			panic("viewer: walked past the start of the document")
		}
		row = prev
	}
	return row
}

// nRowsBeforeOrDocStart walks n rows backward, stopping at the document
// start.
func (v *Viewer[R, C]) nRowsBeforeOrDocStart(row R, n int) R {
	for ; n > 0; n-- {
		prev, ok := v.doc.Prev(row)
		if !ok {
			return row
		}
		row = prev
	}
	return row
}

// nRowsAfter walks n rows forward. The caller guarantees they exist.
func (v *Viewer[R, C]) nRowsAfter(row R, n int) R {
	for ; n > 0; n-- {
		next, ok := v.doc.Next(row)
		if !ok {
			panic("viewer: walked past the end of the document")
		}
		row = next
	}
	return row
}

// MoveCursorDown moves the focus down n logical steps and keeps it visible.
func (v *Viewer[R, C]) MoveCursorDown(n int) {
	if c, ok := v.doc.MoveCursorDown(n, v.focus); ok {
		v.showCursor(c)
	}
}

// MoveCursorUp moves the focus up n logical steps and keeps it visible.
func (v *Viewer[R, C]) MoveCursorUp(n int) {
	if c, ok := v.doc.MoveCursorUp(n, v.focus); ok {
		v.showCursor(c)
	}
}

// ScrollDown moves the viewport down up to n rows, stopping at the end of
// the document, then re-anchors the focus if it left the scrolloff band.
func (v *Viewer[R, C]) ScrollDown(n int) {
	moved := 0
	next := v.top
	for ; n > 0; n-- {
		row, ok := v.doc.Next(next)
		if !ok {
			break
		}
		next = row
		moved++
	}
	if moved > 0 {
		v.top = next
		v.correctFocusAfterScroll()
	}
}

// ScrollUp moves the viewport up up to n rows, stopping at the start of the
// document, then re-anchors the focus if it left the scrolloff band.
func (v *Viewer[R, C]) ScrollUp(n int) {
	moved := 0
	next := v.top
	for ; n > 0; n-- {
		row, ok := v.doc.Prev(next)
		if !ok {
			break
		}
		next = row
		moved++
	}
	if moved > 0 {
		v.top = next
		v.correctFocusAfterScroll()
	}
}

// showCursor adopts a new focus and moves the viewport just far enough to
// put the start of its range inside the acceptable range.
func (v *Viewer[R, C]) showCursor(c C) {
	v.focus = c

	rng, starts, _ := v.acceptableStartIndexes(c)

	rowAtFirst, firstOK := v.rowAtIndex(starts.first)
	rowAtLast, lastOK := v.rowAtIndex(starts.last)

	// A missing row at an acceptable start means that index is past the end
	// of the document, so the cursor start is necessarily before it.
	startBeforeFirst := !firstOK || v.doc.Compare(rng.Start, rowAtFirst) < 0
	startAtOrBeforeLast := !lastOK || v.doc.Compare(rng.Start, rowAtLast) <= 0

	switch {
	case startBeforeFirst:
		// Too close to the top of the screen, or past it.
		v.top = v.nRowsBefore(rng.Start, starts.first)
	case startAtOrBeforeLast:
		// Already within the acceptable range.
	default:
		// Too close to the bottom of the screen, or past it.
		v.top = v.nRowsBefore(rng.Start, starts.last)
	}
}

// acceptableStartIndexes computes where on screen the start of the focused
// range may appear. The acceptable range begins as the whole screen, shrinks
// by the scrolloff setting, relaxes near the start and end of the document,
// and grows back when the focused range is taller than what remains.
func (v *Viewer[R, C]) acceptableStartIndexes(c C) (document.CursorRange[R], startRange, RangeDiagnostics) {
	details := document.Layout(v.doc, c, v.dims.Height-1)

	first := 0
	lastIndex := v.dims.Height - 1
	last := lastIndex

	so := v.effectiveScrolloff()
	first += so
	last -= so

	diag := RangeDiagnostics{
		CursorHeight:    details.Range.NumRows,
		LastScreenIndex: lastIndex,
		AfterScrolloff:  [2]int{first, last},
	}

	// Scrolloff is not enforced near the document edges. Enforcing it at the
	// top would require showing rows before the start of the document;
	// relaxing it at the bottom lets a held "down" eventually park the last
	// line at the bottom of the screen.
	first = min(first, details.RowsBeforeStart)
	last = max(last, lastIndex-details.RowsAfterEnd)
	diag.AfterDocEdges = [2]int{first, last}

	rangeHeight := last - first + 1
	cursorHeight := details.Range.NumRows

	switch {
	case cursorHeight >= v.dims.Height:
		// The focused range fills the screen or more; the whole screen is
		// acceptable.
		first, last = 0, lastIndex
	case cursorHeight > rangeHeight:
		needed := cursorHeight - rangeHeight
		spaceAtStart := first
		spaceAtEnd := lastIndex - last

		// Reclaim from the side with more slack first. If one edge was
		// already relaxed by the start or end of the document, expanding
		// evenly would snap well-positioned content toward that edge.
		oneSide := min(absDiff(spaceAtStart, spaceAtEnd), needed)
		needed -= oneSide
		if spaceAtStart > spaceAtEnd {
			first -= oneSide
		} else if spaceAtEnd > spaceAtStart {
			last += oneSide
		}

		// Both sides now have equal slack. Round the remainder up on both
		// sides so the larger half of the range is not always on top.
		both := (needed + 1) / 2
		first -= both
		last += both

		first = max(first, 0)
		last = min(last, lastIndex)
	}
	diag.AfterExpansion = [2]int{first, last}

	// Convert the acceptable screen indexes into acceptable positions for
	// the start of the range: a range of k rows starting at index i ends at
	// i+k-1, so the last acceptable start is k-1 above the last index.
	starts := startRange{
		first: first,
		last:  max(first, last-(cursorHeight-1)),
	}

	return details.Range, starts, diag
}

// scrolloffBand is the inclusive range of screen indexes the focus must
// overlap after viewport-driven movement. The top edge is relaxed when the
// first row of the document is on screen.
func (v *Viewer[R, C]) scrolloffBand() (int, int) {
	so := v.effectiveScrolloff()
	first := so
	if document.IsFirstRow(v.doc, v.top) {
		first = 0
	}
	return first, v.dims.Height - 1 - so
}

// correctFocusAfterScroll re-anchors the focus onto the nearest row inside
// the scrolloff band. Wrapped content may scroll partly off screen as long
// as any part of the focused range still overlaps the band.
//
// Resolving band indexes with lastRowAtOrBefore handles the end of the
// document being on screen: if the last row of the document is the top row,
// every band index resolves to that same row instead of nothing.
func (v *Viewer[R, C]) correctFocusAfterScroll() {
	firstIdx, lastIdx := v.scrolloffBand()
	firstRow := v.lastRowAtOrBefore(firstIdx)
	lastRow := v.lastRowAtOrBefore(lastIdx)

	rng := v.doc.CursorRange(v.focus)

	if v.doc.Compare(rng.End, firstRow) < 0 {
		v.focus = v.doc.RowToCursor(firstRow, v.focus)
	} else if v.doc.Compare(lastRow, rng.Start) < 0 {
		v.focus = v.doc.RowToCursor(lastRow, v.focus)
	}
}

// Resize applies a new viewport size in two phases, width then height, and
// finally nudges the viewport if the focus ended up outside the scrolloff
// band.
func (v *Viewer[R, C]) Resize(dims Dimensions) {
	v.resizeWidth(dims.Width)
	v.resizeHeight(dims.Height)
	v.correctTopAfterResize()
}

func (v *Viewer[R, C]) applyWidth(width int) {
	v.dims.Width = width
	v.doc.Resize(width)
}

func (v *Viewer[R, C]) resizeWidth(width int) {
	if width == v.dims.Width {
		return
	}

	oldRange := v.doc.CursorRange(v.focus)
	startPos := v.positionOfRow(oldRange.Start)
	endPos := v.positionOfRow(oldRange.End)

	switch {
	case startPos.kind == aboveTop && endPos.kind == aboveTop:
		panic("viewer: focused range is entirely above the screen")
	case startPos.kind == belowBottom:
		panic("viewer: focused range is entirely below the screen")

	case startPos.kind == atIndex:
		// Re-anchor so the start of the range stays at the same index.
		v.applyWidth(width)
		newRange := v.doc.CursorRange(v.focus)
		v.top = v.nRowsBeforeOrDocStart(newRange.Start, startPos.index)

	case endPos.kind == atIndex:
		// Start is above the screen; keep the end of the range anchored.
		v.applyWidth(width)
		newRange := v.doc.CursorRange(v.focus)
		v.top = v.nRowsBeforeOrDocStart(newRange.End, endPos.index)

	default:
		// The focused range spans the whole screen.
		rowsAboveTop := document.Diff(v.doc, v.top, oldRange.Start)

		v.applyWidth(width)
		newRange := v.doc.CursorRange(v.focus)

		if oldRange.NumRows == newRange.NumRows {
			// Same height, keep the same rows in the same spots.
			v.top = v.nRowsAfter(newRange.Start, rowsAboveTop)
		} else {
			// Keep the content near the vertical center of the screen in
			// approximately the same place: find what fraction of the old
			// range height the screen center was at, and center the row at
			// the same fraction of the new height. Approximate on purpose;
			// off-by-one here is invisible.
			percentile := (float64(rowsAboveTop) + float64(v.dims.Height)/2.0) /
				float64(oldRange.NumRows)
			newMid := int(percentile * float64(newRange.NumRows))

			midRow := v.nRowsAfter(newRange.Start, newMid)
			v.top = v.nRowsBeforeOrDocStart(midRow, v.dims.Height/2)
		}
	}
}

func (v *Viewer[R, C]) resizeHeight(height int) {
	oldHeight := v.dims.Height
	if height == oldHeight {
		return
	}

	// Keep the focused content at the same percentile of the screen, the
	// way vim does. Using height-1 as the denominator keeps the first and
	// last rows anchored to themselves.
	convert := func(index int) int {
		if oldHeight <= 1 {
			return 0
		}
		percentile := float64(index) / float64(oldHeight-1)
		return int(math.Round(percentile * float64(height-1)))
	}

	rng := v.doc.CursorRange(v.focus)
	startPos := v.positionOfRow(rng.Start)
	endPos := v.positionOfRow(rng.End)

	var anchor R
	var newIndex int

	switch {
	case startPos.kind == aboveTop && endPos.kind == aboveTop:
		panic("viewer: focused range is entirely above the screen")
	case startPos.kind == belowBottom:
		panic("viewer: focused range is entirely below the screen")
	case startPos.kind == atIndex && endPos.kind == aboveTop:
		panic("viewer: focused range starts on screen but ends above it")

	case startPos.kind == aboveTop && endPos.kind == atIndex:
		anchor = rng.End
		newIndex = convert(endPos.index)

	case startPos.kind == aboveTop:
		// The range spans the screen; hold the middle row in the middle.
		anchor = v.mustRowAtIndex(oldHeight / 2)
		newIndex = height / 2

	case endPos.kind == atIndex:
		// Both ends visible; hold the midpoint of the range.
		mid := (startPos.index + endPos.index) / 2
		anchor = v.mustRowAtIndex(mid)
		newIndex = convert(mid)

	default:
		anchor = rng.Start
		newIndex = convert(startPos.index)
	}

	v.top = v.nRowsBeforeOrDocStart(anchor, newIndex)
	v.dims.Height = height
}

// correctTopAfterResize moves the viewport, not the focus, when a resize
// pushed the focused range out of the scrolloff band. The band uses the same
// end-of-document relaxation as scrolling so the focus does not jump when
// the end of the file sits high on the screen.
func (v *Viewer[R, C]) correctTopAfterResize() {
	firstIdx, lastIdx := v.scrolloffBand()
	firstRow := v.lastRowAtOrBefore(firstIdx)
	lastRow := v.lastRowAtOrBefore(lastIdx)

	rng := v.doc.CursorRange(v.focus)

	if v.doc.Compare(rng.End, firstRow) < 0 {
		// Put the end of the range at the first acceptable index.
		v.top = v.nRowsBefore(rng.End, firstIdx)
	} else if v.doc.Compare(lastRow, rng.Start) < 0 {
		// Put the start of the range at the last acceptable index.
		v.top = v.nRowsBefore(rng.Start, lastIdx)
	}
}

// Slot is one viewport row: a document row, or the past-end sentinel when
// OK is false.
type Slot[R any] struct {
	Row R
	OK  bool
}

// Rows yields exactly Height slots from the top row down. The sequence is
// lazy and restartable; it must not outlive the next viewer mutation.
func (v *Viewer[R, C]) Rows() iter.Seq[Slot[R]] {
	return func(yield func(Slot[R]) bool) {
		row := v.top
		ok := true
		for i := 0; i < v.dims.Height; i++ {
			if !ok {
				if !yield(Slot[R]{}) {
					return
				}
				continue
			}
			current := row
			row, ok = v.doc.Next(current)
			if !yield(Slot[R]{Row: current, OK: true}) {
				return
			}
		}
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
