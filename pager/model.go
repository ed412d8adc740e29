package pager

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/glance/internal/logx"
	"github.com/iw2rmb/glance/textdoc"
	"github.com/iw2rmb/glance/viewer"
)

// DataMsg carries one chunk of streamed document bytes.
type DataMsg []byte

// EOFMsg marks the end of the document stream.
type EOFMsg struct{}

// Model is a Bubble Tea component that pages through a streamed document.
//
// The viewer only exists once the terminal size is known and the document
// has produced at least one complete line; until then data accumulates in
// the bare document.
type Model struct {
	cfg Config

	doc  *textdoc.Document
	view *viewer.Viewer[textdoc.Row, textdoc.Cursor]

	width, height int
	sized         bool
	eof           bool

	gutterWidth int

	// Pending input state: an accumulated count prefix, and whether a "z"
	// is waiting for its second key.
	count    int
	pendingZ bool
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Down.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return Model{
		cfg: cfg,
		doc: textdoc.New(80),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Streaming reports whether more document data may still arrive.
func (m Model) Streaming() bool { return !m.eof }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.sized = true
		logx.Debugf("resize to %dx%d", msg.Width, msg.Height)
		m.applyLayout()
		return m, nil

	case DataMsg:
		m.doc.Append(msg)
		m.applyLayout()
		return m, nil

	case EOFMsg:
		m.doc.EndOfStream()
		m.eof = true
		logx.Debugf("end of stream after %d lines", m.doc.LineCount())
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// statusVisible reports whether a row is left over for the status bar.
func (m Model) statusVisible() bool { return m.height > 1 }

// contentSize is the area left for document rows after the gutter, the two
// wrap-mark columns, and the status bar.
func (m Model) contentSize() (width, height int) {
	width = m.width
	if m.cfg.ShowLineNums {
		width -= m.gutterWidth + 1
	}
	width -= 2
	height = m.height
	if m.statusVisible() {
		height--
	}
	return max(width, 1), max(height, 1)
}

// applyLayout re-derives the wrap width and viewport size. The gutter widens
// as line numbers grow, which narrows the content and forces a re-wrap.
func (m *Model) applyLayout() {
	if !m.sized {
		return
	}
	m.gutterWidth = gutterDigits(m.doc.LineCount())

	w, h := m.contentSize()
	dims := viewer.Dimensions{Width: w, Height: h}
	if m.view != nil {
		// Data arrival must not move the viewport. Only a real geometry
		// change (window resize, or the gutter widening as line numbers
		// grow) goes through Resize and its focus correction.
		if dims != m.view.Dimensions() {
			m.view.Resize(dims)
		}
	} else {
		m.doc.Resize(w)
		m.maybeBuildViewer()
	}
}

func (m *Model) maybeBuildViewer() {
	if m.view != nil || !m.sized {
		return
	}
	first, cursor, ok := m.doc.First()
	if !ok {
		return
	}
	w, h := m.contentSize()
	m.doc.Resize(w)
	first, cursor, _ = m.doc.First()
	m.view = viewer.New[textdoc.Row, textdoc.Cursor](
		m.doc, first, cursor, viewer.Dimensions{Width: w, Height: h}, m.cfg.Scrolloff)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.cfg.KeyMap.Quit) {
		return m, tea.Quit
	}
	if m.view == nil {
		return m, nil
	}

	s := msg.String()

	if m.pendingZ {
		m.pendingZ = false
		switch s {
		case "t":
			m.apply(viewer.FocusedToTop)
		case "z":
			m.apply(viewer.CenterFocused)
		case "b":
			m.apply(viewer.FocusedToBottom)
		default:
			m.count = 0
		}
		return m, nil
	}

	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		// A leading zero is not a count.
		if s[0] != '0' || m.count > 0 {
			m.count = m.count*10 + int(s[0]-'0')
		}
		return m, nil
	}

	if s == "z" {
		m.pendingZ = true
		return m, nil
	}

	km := m.cfg.KeyMap
	var kind viewer.ActionKind
	switch {
	case key.Matches(msg, km.Down):
		kind = viewer.MoveDown
	case key.Matches(msg, km.Up):
		kind = viewer.MoveUp
	case key.Matches(msg, km.ScrollDown):
		kind = viewer.ScrollDown
	case key.Matches(msg, km.ScrollUp):
		kind = viewer.ScrollUp
	case key.Matches(msg, km.HalfPageDown):
		kind = viewer.HalfPageDown
	case key.Matches(msg, km.HalfPageUp):
		kind = viewer.HalfPageUp
	case key.Matches(msg, km.PageDown):
		kind = viewer.PageDown
	case key.Matches(msg, km.PageUp):
		kind = viewer.PageUp
	case key.Matches(msg, km.Top):
		kind = viewer.FocusTop
	case key.Matches(msg, km.Bottom):
		kind = viewer.FocusBottom
	default:
		m.count = 0
		return m, nil
	}

	// A counted jump targets that line, whichever end it was bound to.
	if kind == viewer.FocusBottom && m.count > 0 {
		kind = viewer.FocusTop
	}

	m.apply(kind)
	return m, nil
}

func (m *Model) apply(kind viewer.ActionKind) {
	m.view.Apply(viewer.Action{Kind: kind, Count: m.count})
	m.count = 0
}
