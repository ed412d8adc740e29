// Package pager is the Bubble Tea component around the viewport engine: it
// translates keys into viewer actions (including count prefixes and two-key
// z commands), feeds streamed bytes into the document, and renders the
// viewport with a line-number gutter, wrap marks, and a status bar.
//
// The Bubble Tea message queue is the serialization boundary: keys, resizes,
// and streamed data all arrive as messages and are applied one at a time.
package pager
