package pager

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// plainStyle keeps assertions free of escape sequences.
func plainStyle() Style {
	plain := lipgloss.NewStyle()
	return Style{
		Gutter:   plain,
		LineNum:  plain,
		WrapMark: plain,
		Text:     plain,
		Focus:    plain,
		Sentinel: plain,
		Status:   plain,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func feed(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestView(t *testing.T) {
	m := New(Config{Source: "test", Style: plainStyle()})
	m = feed(t, m,
		tea.WindowSizeMsg{Width: 6, Height: 8},
		DataMsg("aaa\nbb\ncccc\ndddddd\ne\n"),
		EOFMsg{},
	)

	want := strings.Join([]string{
		" aaa ",
		" bb  ",
		" cccc",
		" dddd↩",
		"↪dd  ",
		" e   ",
		"~",
		" test ",
	}, "\n")
	if got := m.View(); got != want {
		t.Fatalf("view:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestView_LineNumbers(t *testing.T) {
	m := New(Config{Source: "test", ShowLineNums: true, Style: plainStyle()})
	m = feed(t, m,
		tea.WindowSizeMsg{Width: 11, Height: 8},
		DataMsg("aaa\nbb\ncccc\ndddddd\ne\n"),
		EOFMsg{},
	)

	want := strings.Join([]string{
		"   1  aaa ",
		"   2  bb  ",
		"   3  cccc",
		"   4  dddd↩",
		"     ↪dd  ",
		"   5  e   ",
		"~",
		" test  1/5 ",
	}, "\n")
	if got := m.View(); got != want {
		t.Fatalf("view:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestView_BeforeSizeAndBeforeContent(t *testing.T) {
	m := New(Config{Source: "test", Style: plainStyle()})
	if got := m.View(); got != "" {
		t.Fatalf("view before size: got %q, want empty", got)
	}

	// Sized but no complete line yet: all sentinel rows.
	m = feed(t, m, tea.WindowSizeMsg{Width: 6, Height: 4}, DataMsg("partial"))
	if m.view != nil {
		t.Fatalf("viewer built before the first complete line")
	}
	want := "~\n~\n~\n test "
	if got := m.View(); got != want {
		t.Fatalf("view:\ngot:\n%q\nwant:\n%q", got, want)
	}

	m = feed(t, m, DataMsg("rest\n"))
	if m.view == nil {
		t.Fatalf("viewer not built after the first complete line")
	}
}

func TestDataArrivalKeepsViewportStill(t *testing.T) {
	m := New(Config{Source: "test", Scrolloff: 2, Style: plainStyle()})
	m = feed(t, m,
		tea.WindowSizeMsg{Width: 10, Height: 8},
		DataMsg("01\n02\n03\n04\n05\n06\n07\n08\n09\n10\n"),
	)

	// Park the last line at the bottom of the screen; the focus now sits
	// inside the zone the scrolloff band only tolerates at end of document.
	m = feed(t, m, runes("G"))
	if got := strings.Split(m.View(), "\n")[0]; got != " 04      " {
		t.Fatalf("top after G: got %q, want %q", got, " 04      ")
	}

	// More data alone must not scroll; only the user or a resize moves top.
	m = feed(t, m, DataMsg("11\n12\n13\n14\n15\n"))
	if got := strings.Split(m.View(), "\n")[0]; got != " 04      " {
		t.Fatalf("top after data: got %q, want %q", got, " 04      ")
	}
	if got := m.view.Focus(); int(got) != 9 {
		t.Fatalf("focus after data: got %d, want 9", got)
	}
}

func TestView_OneRowTerminal(t *testing.T) {
	m := New(Config{Source: "test", Style: plainStyle()})
	m = feed(t, m, tea.WindowSizeMsg{Width: 6, Height: 1})

	// No room for the status bar: exactly one line, a sentinel.
	if got := m.View(); got != "~" {
		t.Fatalf("view: got %q, want %q", got, "~")
	}

	m = feed(t, m, DataMsg("aaa\nbbb\n"), EOFMsg{})
	if got := m.View(); got != " aaa " {
		t.Fatalf("view: got %q, want %q", got, " aaa ")
	}
}

func TestKeyDispatch(t *testing.T) {
	m := New(Config{Source: "test", Style: plainStyle()})
	m = feed(t, m,
		tea.WindowSizeMsg{Width: 6, Height: 8},
		DataMsg("aaa\nbb\ncccc\ndddddd\ne\n"),
		EOFMsg{},
	)

	// Count prefix applies to the next motion.
	m = feed(t, m, runes("3"), runes("j"))
	if got := m.view.Focus(); int(got) != 3 {
		t.Fatalf("after 3j: focus %d, want 3", got)
	}

	m = feed(t, m, runes("k"))
	if got := m.view.Focus(); int(got) != 2 {
		t.Fatalf("after k: focus %d, want 2", got)
	}

	m = feed(t, m, runes("G"))
	if got := m.view.Focus(); int(got) != 4 {
		t.Fatalf("after G: focus %d, want 4", got)
	}

	// A counted G jumps to that line.
	m = feed(t, m, runes("2"), runes("G"))
	if got := m.view.Focus(); int(got) != 1 {
		t.Fatalf("after 2G: focus %d, want 1", got)
	}

	m = feed(t, m, runes("g"))
	if got := m.view.Focus(); int(got) != 0 {
		t.Fatalf("after g: focus %d, want 0", got)
	}

	// Half page down drags the focus out of the top rows.
	m = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := m.view.Focus(); int(got) != 3 {
		t.Fatalf("after ctrl+d: focus %d, want 3", got)
	}

	// z arms a two-key command; an unknown second key cancels.
	m = feed(t, m, runes("z"), runes("t"))
	m = feed(t, m, runes("z"), runes("x"), runes("j"))
	if got := m.view.Focus(); int(got) != 4 {
		t.Fatalf("after zt zx j: focus %d, want 4", got)
	}
}

func TestQuit(t *testing.T) {
	m := New(Config{Source: "test", Style: plainStyle()})
	m = feed(t, m, tea.WindowSizeMsg{Width: 6, Height: 4})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit, got %T", cmd())
	}
}
