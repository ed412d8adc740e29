package textdoc

import (
	"bytes"
	"fmt"

	"github.com/iw2rmb/glance/document"
)

// TrailingNewline records whether the stream ended with a newline. It is
// unknown until EndOfStream.
type TrailingNewline int

const (
	TrailingUnknown TrailingNewline = iota
	TrailingPresent
	TrailingAbsent
)

// WrapTable holds the precalculated break points for one logical line at one
// width: each offset is the starting byte of one displayed row. It is
// immutable after construction and shared by every segment of the line.
type WrapTable struct {
	width   int
	offsets []int
}

func (t *WrapTable) rows() int { return len(t.offsets) }

// segment slices the n'th row of the table out of the full line.
func (t *WrapTable) segment(line []byte, n int) []byte {
	start := t.offsets[n]
	if n+1 < len(t.offsets) {
		return line[start:t.offsets[n+1]]
	}
	return line[start:]
}

type wrapSegment struct {
	table *WrapTable
	index int
}

// Row identifies one displayed row: a logical line, plus the wrap segment
// when the line is wider than the width it was laid out at. The zero Row is
// the first row of an unwrapped first line.
type Row struct {
	line int
	seg  *wrapSegment
}

// Cursor is the focus position for a text document: a logical line index.
type Cursor int

type lineRange struct {
	start, end int
}

// Document buffers appended bytes and exposes them as displayed rows.
type Document struct {
	data      []byte
	lines     []lineRange
	nextStart int
	trailing  TrailingNewline
	width     int

	// Wrap tables by line index, for the current width only. A nil entry
	// records that the line fits unwrapped.
	tables map[int]*WrapTable
}

var _ document.Document[Row, Cursor] = (*Document)(nil)

// New returns an empty document that wraps at width bytes per row.
func New(width int) *Document {
	return &Document{
		width:  width,
		tables: make(map[int]*WrapTable),
	}
}

// Append adds streamed bytes, completing a logical line for every newline in
// the new chunk. Previously appended content is never rescanned.
func (d *Document) Append(data []byte) {
	base := len(d.data)
	d.data = append(d.data, data...)

	off := 0
	for {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			break
		}
		end := base + off + i
		stored := end
		if stored > 0 && d.data[stored-1] == '\r' {
			stored--
		}
		d.lines = append(d.lines, lineRange{start: d.nextStart, end: stored})
		d.nextStart = end + 1
		off += i + 1
	}
}

// EndOfStream marks the stream complete. Any trailing unterminated bytes
// become one final logical line.
func (d *Document) EndOfStream() {
	if end := len(d.data); end > d.nextStart {
		d.trailing = TrailingAbsent
		d.lines = append(d.lines, lineRange{start: d.nextStart, end: end})
		d.nextStart = end
	} else {
		d.trailing = TrailingPresent
	}
}

// TrailingNewline reports whether the stream ended with a newline; unknown
// before EndOfStream.
func (d *Document) TrailingNewline() TrailingNewline { return d.trailing }

func (d *Document) Width() int { return d.width }

// Resize changes the wrap width. Cached wrap tables are dropped; rows minted
// before the resize must not be compared with rows minted after it.
func (d *Document) Resize(width int) {
	if width == d.width {
		return
	}
	d.width = width
	d.tables = make(map[int]*WrapTable)
}

// LineCount returns the number of complete logical lines.
func (d *Document) LineCount() int { return len(d.lines) }

// CursorToLine converts a 1-based line number into a cursor.
func (d *Document) CursorToLine(n int) Cursor { return Cursor(n - 1) }

func (d *Document) lineBytes(n int) []byte {
	r := d.lines[n]
	return d.data[r.start:r.end]
}

// wrapTable returns the shared table for a line, or nil when the line fits
// within the current width. Built on first use, cached until the next resize.
func (d *Document) wrapTable(line int) *WrapTable {
	if t, ok := d.tables[line]; ok {
		return t
	}
	var t *WrapTable
	if b := d.lineBytes(line); d.width > 0 && len(b) > d.width {
		offsets := make([]int, 0, (len(b)+d.width-1)/d.width)
		for o := 0; o < len(b); o += d.width {
			offsets = append(offsets, o)
		}
		t = &WrapTable{width: d.width, offsets: offsets}
	}
	d.tables[line] = t
	return t
}

func (d *Document) startOfLine(line int) Row {
	if t := d.wrapTable(line); t != nil {
		return Row{line: line, seg: &wrapSegment{table: t, index: 0}}
	}
	return Row{line: line}
}

func (d *Document) endOfLine(line int) Row {
	if t := d.wrapTable(line); t != nil {
		return Row{line: line, seg: &wrapSegment{table: t, index: t.rows() - 1}}
	}
	return Row{line: line}
}

// First returns the first displayed row and initial cursor once at least one
// complete line exists.
func (d *Document) First() (Row, Cursor, bool) {
	if len(d.lines) == 0 {
		return Row{}, 0, false
	}
	return d.startOfLine(0), 0, true
}

func (d *Document) Next(row Row) (Row, bool) {
	if row.seg != nil && row.seg.index < row.seg.table.rows()-1 {
		return Row{line: row.line, seg: &wrapSegment{table: row.seg.table, index: row.seg.index + 1}}, true
	}
	next := row.line + 1
	if next == len(d.lines) {
		return Row{}, false
	}
	return d.startOfLine(next), true
}

func (d *Document) Prev(row Row) (Row, bool) {
	if row.seg != nil && row.seg.index > 0 {
		return Row{line: row.line, seg: &wrapSegment{table: row.seg.table, index: row.seg.index - 1}}, true
	}
	if row.line == 0 {
		return Row{}, false
	}
	return d.endOfLine(row.line - 1), true
}

func (d *Document) LineNumber(row Row) int { return row.line + 1 }

func (d *Document) IsWrapped(row Row) bool { return row.seg != nil }

func (d *Document) IsWrapStart(row Row) bool {
	return row.seg != nil && row.seg.index == 0
}

func (d *Document) IsWrapEnd(row Row) bool {
	return row.seg != nil && row.seg.index == row.seg.table.rows()-1
}

func (d *Document) IsAfterWrapStart(row Row) bool {
	return row.seg != nil && row.seg.index > 0
}

func (d *Document) IsBeforeWrapEnd(row Row) bool {
	return row.seg != nil && row.seg.index < row.seg.table.rows()-1
}

func (d *Document) CursorRange(c Cursor) document.CursorRange[Row] {
	start := d.startOfLine(int(c))
	if start.seg == nil {
		return document.CursorRange[Row]{Start: start, End: start, NumRows: 1}
	}
	end := Row{line: start.line, seg: &wrapSegment{table: start.seg.table, index: start.seg.table.rows() - 1}}
	return document.CursorRange[Row]{Start: start, End: end, NumRows: start.seg.table.rows()}
}

// RowToCursor converts a row into a cursor. A text document has a single
// focus per logical line, so prev carries no horizontal intent to preserve.
func (d *Document) RowToCursor(row Row, _ Cursor) Cursor { return Cursor(row.line) }

func (d *Document) MoveCursorDown(n int, c Cursor) (Cursor, bool) {
	maxLine := len(d.lines) - 1
	if int(c) == maxLine {
		return c, false
	}
	next := int(c) + n
	if next > maxLine || next < int(c) {
		next = maxLine
	}
	return Cursor(next), true
}

func (d *Document) MoveCursorUp(n int, c Cursor) (Cursor, bool) {
	if c == 0 {
		return c, false
	}
	next := int(c) - n
	if next < 0 || next > int(c) {
		next = 0
	}
	return Cursor(next), true
}

// Compare orders rows by logical line, then by wrap segment. It panics when
// the rows were laid out under different widths, or when one side is wrapped
// and the other is not for the same line: geometry from two widths must
// never be mixed.
func (d *Document) Compare(a, b Row) int {
	if a.line != b.line {
		if a.line < b.line {
			return -1
		}
		return 1
	}
	switch {
	case a.seg == nil && b.seg == nil:
		return 0
	case a.seg != nil && b.seg != nil:
		if a.seg.table.width != b.seg.table.width {
			panic(fmt.Sprintf(
				"textdoc: comparing rows of line %d wrapped at different widths (%d vs %d)",
				a.line, a.seg.table.width, b.seg.table.width,
			))
		}
		switch {
		case a.seg.index < b.seg.index:
			return -1
		case a.seg.index > b.seg.index:
			return 1
		default:
			return 0
		}
	default:
		panic(fmt.Sprintf(
			"textdoc: two rows point to line %d, but only one is wrapped", a.line,
		))
	}
}

// Content returns the bytes displayed on a row: the full logical line, or
// one wrap segment of it.
func (d *Document) Content(row Row) []byte {
	line := d.lineBytes(row.line)
	if row.seg == nil {
		return line
	}
	return row.seg.table.segment(line, row.seg.index)
}
