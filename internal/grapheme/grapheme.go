// Package grapheme provides grapheme-cluster-safe cell truncation for the
// render path.
package grapheme

import "github.com/rivo/uniseg"

// TruncateCells cuts text at a cell boundary without splitting grapheme
// clusters. A cluster that would straddle the boundary is dropped whole.
func TruncateCells(text string, cells int) string {
	if cells <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(text)
	used, end := 0, 0
	for g.Next() {
		w := g.Width()
		if used+w > cells {
			break
		}
		used += w
		_, end = g.Positions()
	}
	return text[:end]
}
