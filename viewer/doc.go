// Package viewer decides what part of a document is visible as the user
// moves the focus, scrolls, or resizes the terminal. Much of the behavior
// matches or is inspired by vim: a scrolloff band keeps the focused content
// away from the screen edges except near the start and end of the document,
// and resizes keep the focused content at roughly the same place on screen.
//
// The engine is generic over the document contract and single-threaded:
// callers must deliver actions, appends, and resizes one at a time.
package viewer
