// Package textdoc implements a line-oriented document over a byte stream.
//
// Bytes are appended incrementally; complete logical lines are split on '\n'
// (a preceding '\r' is stripped) by scanning only the newly appended bytes.
// Lines wider than the display width are wrapped into fixed-size byte
// segments described by a WrapTable that is computed lazily, once per
// (line, width), and shared by reference across every segment of the line.
package textdoc
