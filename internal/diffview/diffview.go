// Package diffview renders classic unified diffs (---/+++ headers, @@ hunks)
// of before/after file content for dry-run and verbose reporting. It uses
// github.com/pmezard/go-difflib/difflib.
package diffview

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Unified produces a unified patch for a↦b with ctx context lines (default 3
// when ctx <= 0). Identical inputs yield an empty string.
func Unified(name string, a, b []byte, ctx int) string {
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: name,
		ToFile:   name,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// splitLinesKeepNL splits into lines keeping the newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
