package manifest

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line-based diff between two manifest serializations.
func Diff(before, after string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}
