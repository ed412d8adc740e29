package grapheme

import "testing"

const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"

func TestTruncateCells(t *testing.T) {
	cases := []struct {
		text  string
		cells int
		want  string
	}{
		{"", 4, ""},
		{"abcdef", 4, "abcd"},
		{"abc", 4, "abc"},
		{"abc", 0, ""},
		// A double-width cluster never straddles the boundary.
		{"a世b", 2, "a"},
		{"a世b", 3, "a世"},
		// Combining marks stay attached to their base.
		{"éx", 1, "é"},
		// A ZWJ emoji sequence is one cluster: kept whole or dropped whole.
		{family + "b", 2, family},
		{"a" + family, 2, "a"},
	}
	for _, tc := range cases {
		if got := TruncateCells(tc.text, tc.cells); got != tc.want {
			t.Fatalf("TruncateCells(%q, %d)=%q, want %q", tc.text, tc.cells, got, tc.want)
		}
	}
}
