package viewer

import "math"

// ActionKind enumerates the viewer commands an input layer can produce.
type ActionKind int

const (
	NoOp ActionKind = iota

	MoveDown
	MoveUp
	ScrollDown
	ScrollUp

	FocusTop
	FocusBottom
	HalfPageDown
	HalfPageUp
	PageDown
	PageUp

	// Place the focused row at a fixed spot on screen without moving the
	// focus, vim's zz, zt, and zb.
	CenterFocused
	FocusedToTop
	FocusedToBottom
)

// Action is one viewer command. Count is an optional repeat count from the
// input layer; zero means none was given.
type Action struct {
	Kind  ActionKind
	Count int
}

// Apply executes one action. Counts default to 1; for the half-page jumps a
// count replaces the half-screen distance for that one action only.
func (v *Viewer[R, C]) Apply(a Action) {
	n := a.Count
	if n <= 0 {
		n = 1
	}

	switch a.Kind {
	case NoOp:

	case MoveDown:
		v.MoveCursorDown(n)
	case MoveUp:
		v.MoveCursorUp(n)
	case ScrollDown:
		v.ScrollDown(n)
	case ScrollUp:
		v.ScrollUp(n)

	case FocusTop:
		// With a count, jump to the n'th line from the top.
		v.MoveCursorUp(math.MaxInt)
		if a.Count > 1 {
			v.MoveCursorDown(a.Count - 1)
		}
	case FocusBottom:
		v.MoveCursorDown(math.MaxInt)

	case HalfPageDown:
		v.ScrollDown(v.halfPageDistance(a.Count))
	case HalfPageUp:
		v.ScrollUp(v.halfPageDistance(a.Count))
	case PageDown:
		v.ScrollDown(n * v.pageDistance())
	case PageUp:
		v.ScrollUp(n * v.pageDistance())

	case CenterFocused:
		rng := v.doc.CursorRange(v.focus)
		v.placeFocusStartAt(max(0, (v.dims.Height-rng.NumRows)/2))
	case FocusedToTop:
		v.placeFocusStartAt(0)
	case FocusedToBottom:
		rng := v.doc.CursorRange(v.focus)
		v.placeFocusStartAt(max(0, v.dims.Height-rng.NumRows))
	}
}

func (v *Viewer[R, C]) halfPageDistance(count int) int {
	if count > 0 {
		return count
	}
	return max(1, v.dims.Height/2)
}

// pageDistance leaves two rows of overlap between consecutive pages.
func (v *Viewer[R, C]) pageDistance() int {
	return max(1, v.dims.Height-2)
}

// placeFocusStartAt moves the viewport so the start of the focused range
// lands at the given screen index, clamped into the acceptable range so the
// scrolloff and document-edge rules still hold.
func (v *Viewer[R, C]) placeFocusStartAt(target int) {
	rng, starts, _ := v.acceptableStartIndexes(v.focus)
	if target < starts.first {
		target = starts.first
	}
	if target > starts.last {
		target = starts.last
	}
	v.top = v.nRowsBeforeOrDocStart(rng.Start, target)
}
