// Package patch implements the line-matching and in-place patch core: keyed
// key=value updates, word-set line replacement, and profile-entry application
// with templated rendering. All three operate on the same primitive: load the
// file's lines into memory once, scan top-to-bottom under a matching policy,
// mutate in place, write back only if something changed.
package patch

// MatchMode controls how a word set is combined against a single line.
type MatchMode int

const (
	// AllWords requires every word to be a substring of the line.
	AllWords MatchMode = iota
	// AnyWord requires at least one word to be a substring of the line.
	AnyWord
)

// Scope controls how many matching lines are replaced.
type Scope int

const (
	// FirstOnly stops at the first top-to-bottom match.
	FirstOnly Scope = iota
	// All collects every matching line.
	All
)

// Entry is one desired key/value setting. Keys are matched
// case-insensitively but written verbatim.
type Entry struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Result reports the outcome of one patch operation on one file.
// Replaced holds the indices (0-based, pre-append) of lines that were
// rewritten, in the order they were rewritten. Appended holds keys that had
// no matching line and were added at the end (keyed updates only).
type Result struct {
	Path     string
	Changed  bool
	Replaced []int
	Appended []string
	// Skipped holds profile-entry keys that had no matching line and were
	// left unapplied (profile mode never appends).
	Skipped []string

	// Original and Patched hold the normalized file content before and
	// after mutation, for callers that render previews. Patched equals
	// Original when nothing changed.
	Original []byte
	Patched  []byte
}
