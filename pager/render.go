package pager

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/glance/document"
	"github.com/iw2rmb/glance/internal/grapheme"
	"github.com/iw2rmb/glance/textdoc"
	"github.com/iw2rmb/glance/viewer"
)

func (m Model) View() string {
	if !m.sized || m.height < 1 {
		return ""
	}

	contentWidth, contentHeight := m.contentSize()
	lines := make([]string, 0, contentHeight+1)

	if m.view == nil {
		// No complete line yet; the whole screen is past-end.
		for i := 0; i < contentHeight; i++ {
			lines = append(lines, m.cfg.Style.Sentinel.Render("~"))
		}
	} else {
		for slot := range m.view.Rows() {
			lines = append(lines, m.renderRow(slot, contentWidth))
		}
	}

	if m.statusVisible() {
		lines = append(lines, m.statusBar())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(slot viewer.Slot[textdoc.Row], contentWidth int) string {
	st := m.cfg.Style
	if !slot.OK {
		return st.Sentinel.Render("~")
	}
	row := slot.Row
	doc := m.doc

	var sb strings.Builder

	if m.cfg.ShowLineNums {
		num := fmt.Sprintf("%*s", m.gutterWidth, "")
		if !doc.IsAfterWrapStart(row) {
			num = fmt.Sprintf("%*d", m.gutterWidth, doc.LineNumber(row))
		}
		sb.WriteString(st.LineNum.Render(num))
		sb.WriteString(st.Gutter.Render(" "))
	}

	if doc.IsAfterWrapStart(row) {
		sb.WriteString(st.WrapMark.Render("↪"))
	} else {
		sb.WriteString(st.Text.Render(" "))
	}

	// Wrap segments are byte slices, so a segment can hold fewer cells than
	// bytes; truncate at a cluster boundary and pad to keep the wrap-mark
	// column aligned.
	text := strings.ToValidUTF8(string(doc.Content(row)), "�")
	text = runewidth.FillRight(grapheme.TruncateCells(text, contentWidth), contentWidth)

	style := st.Text
	if document.Intersects[textdoc.Row, textdoc.Cursor](doc, row, m.view.Focus()) {
		style = st.Focus
	}
	sb.WriteString(style.Render(text))

	if doc.IsBeforeWrapEnd(row) {
		sb.WriteString(st.WrapMark.Render("↩"))
	}

	return sb.String()
}

func (m Model) statusBar() string {
	line, total := 0, m.doc.LineCount()
	if m.view != nil {
		line = int(m.view.Focus()) + 1
	}

	pct := 0
	if total > 0 {
		pct = line * 100 / total
	}

	streaming := ""
	if !m.eof {
		streaming = "  (streaming)"
	}

	status := fmt.Sprintf(" %s  %d/%d  %d%%%s", m.cfg.Source, line, total, pct, streaming)
	status = runewidth.FillRight(grapheme.TruncateCells(status, m.width), m.width)
	return m.cfg.Style.Status.Render(status)
}

func gutterDigits(lines int) int {
	d := 1
	for lines >= 10 {
		lines /= 10
		d++
	}
	return max(d, 4)
}
