// Package document defines the contract between a viewable document and the
// viewport engine.
//
// A document decides what content goes on each displayed row and where line
// wrapping occurs; the engine only ever walks rows one at a time through
// Next/Prev and never assumes a random-access index. The row and cursor
// representations are implementation-specific type parameters: a line
// oriented document uses a line index as its cursor, while a structured
// document could use a node reference without changing the engine.
package document
