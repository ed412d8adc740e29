package viewer

import "testing"

const twentyLines = "01\n02\n03\n04\n05\n06\n07\n08\n09\n10\n" +
	"11\n12\n13\n14\n15\n16\n17\n18\n19\n20\n"

func TestApply_MoveWithCount(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 0)

	v.Apply(Action{Kind: MoveDown, Count: 3})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 1 │ 01  │
│ 1│ 2 │ 02  │
│ 2│ 3 │ 03  │
│ 3│*4 │ 04  │
│ 4│ 5 │ 05  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: MoveUp})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 1 │ 01  │
│ 1│ 2 │ 02  │
│ 2│*3 │ 03  │
│ 3│ 4 │ 04  │
│ 4│ 5 │ 05  │
└──┴───┴─────┘
`)
}

func TestApply_FocusTopAndBottom(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 0)

	v.Apply(Action{Kind: FocusBottom})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 16│ 16  │
│ 1│ 17│ 17  │
│ 2│ 18│ 18  │
│ 3│ 19│ 19  │
│ 4│*20│ 20  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: FocusTop})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│*1 │ 01  │
│ 1│ 2 │ 02  │
│ 2│ 3 │ 03  │
│ 3│ 4 │ 04  │
│ 4│ 5 │ 05  │
└──┴───┴─────┘
`)

	// A count turns the jump into "go to line n".
	v.Apply(Action{Kind: FocusTop, Count: 5})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 1 │ 01  │
│ 1│ 2 │ 02  │
│ 2│ 3 │ 03  │
│ 3│ 4 │ 04  │
│ 4│*5 │ 05  │
└──┴───┴─────┘
`)
}

func TestApply_HalfPageJumps(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 0)
	v.Apply(Action{Kind: FocusTop, Count: 5})

	v.Apply(Action{Kind: HalfPageDown})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 3 │ 03  │
│ 1│ 4 │ 04  │
│ 2│*5 │ 05  │
│ 3│ 6 │ 06  │
│ 4│ 7 │ 07  │
└──┴───┴─────┘
`)

	// A count replaces the half-screen distance for this one jump; the
	// focus is dragged along once it leaves the band.
	v.Apply(Action{Kind: HalfPageDown, Count: 3})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│*6 │ 06  │
│ 1│ 7 │ 07  │
│ 2│ 8 │ 08  │
│ 3│ 9 │ 09  │
│ 4│ 10│ 10  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: HalfPageUp})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 4 │ 04  │
│ 1│ 5 │ 05  │
│ 2│*6 │ 06  │
│ 3│ 7 │ 07  │
│ 4│ 8 │ 08  │
└──┴───┴─────┘
`)
}

func TestApply_PageJumps(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 0)

	// One page is the screen height minus two rows of overlap.
	v.Apply(Action{Kind: PageDown})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│*4 │ 04  │
│ 1│ 5 │ 05  │
│ 2│ 6 │ 06  │
│ 3│ 7 │ 07  │
│ 4│ 8 │ 08  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: PageDown, Count: 2})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│*10│ 10  │
│ 1│ 11│ 11  │
│ 2│ 12│ 12  │
│ 3│ 13│ 13  │
│ 4│ 14│ 14  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: PageUp})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 7 │ 07  │
│ 1│ 8 │ 08  │
│ 2│ 9 │ 09  │
│ 3│*10│ 10  │
│ 4│ 11│ 11  │
└──┴───┴─────┘
`)
}

func TestApply_PlaceFocusedRow(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 0)
	v.Apply(Action{Kind: FocusTop, Count: 6})

	v.Apply(Action{Kind: FocusedToTop})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│*6 │ 06  │
│ 1│ 7 │ 07  │
│ 2│ 8 │ 08  │
│ 3│ 9 │ 09  │
│ 4│ 10│ 10  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: CenterFocused})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 4 │ 04  │
│ 1│ 5 │ 05  │
│ 2│*6 │ 06  │
│ 3│ 7 │ 07  │
│ 4│ 8 │ 08  │
└──┴───┴─────┘
`)

	v.Apply(Action{Kind: FocusedToBottom})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 2 │ 02  │
│ 1│ 3 │ 03  │
│ 2│ 4 │ 04  │
│ 3│ 5 │ 05  │
│ 4│*6 │ 06  │
└──┴───┴─────┘
`)
}

func TestApply_PlaceFocusedRowRespectsScrolloff(t *testing.T) {
	v, _ := initViewer(twentyLines, 3, 5, 1)
	v.Apply(Action{Kind: MoveDown, Count: 1})

	// The target index clamps into the acceptable range, which near the
	// start of the document is bounded by the rows that exist above.
	v.Apply(Action{Kind: FocusedToTop})
	assertRender(t, v, `┌SI┬─L#┬─────┐
│ 0│ 1 │ 01  │
│ 1│*2 │ 02  │
│ 2│ 3 │ 03  │
│ 3│ 4 │ 04  │
│ 4│ 5 │ 05  │
└──┴───┴─────┘
`)
}
