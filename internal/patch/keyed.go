package patch

import (
	"regexp"
	"strings"
)

// exactPattern compiles the tier-1 matcher for key: optional leading
// whitespace or comment markers (';' or '#'), the key itself
// (case-insensitive), optional whitespace, then '='. This deliberately
// matches commented-out assignments; a replacement overwrites the whole
// line, comment marker included.
func exactPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^[\s;#]*` + regexp.QuoteMeta(key) + `\s*=`)
}

// findKeyLine locates the best line for key under the two-tier policy:
// first exact-pattern match top-to-bottom, then first partial
// (case-insensitive substring) match. Returns -1 when neither tier hits.
func findKeyLine(lines []string, key string) int {
	rx := exactPattern(key)
	for i, ln := range lines {
		if rx.MatchString(ln) {
			return i
		}
	}
	lower := strings.ToLower(key)
	for i, ln := range lines {
		if strings.Contains(strings.ToLower(ln), lower) {
			return i
		}
	}
	return -1
}

// UpdateOptions carries the non-core knobs for Update.
type UpdateOptions struct {
	// DryRun computes and reports changes without writing.
	DryRun bool
}

// Update applies entries onto the file at path, one line per key, in entry
// order. Each key's desired line is "key=value". An existing line found via
// the exact or partial tier is replaced in place; a key with no match is
// appended at the end. The file is rewritten only if at least one key
// produced a change; an already-converged file is left byte-identical.
func Update(path string, entries []Entry) (Result, error) {
	return UpdateWith(path, entries, UpdateOptions{})
}

// UpdateWith is Update with explicit options.
func UpdateWith(path string, entries []Entry, opt UpdateOptions) (Result, error) {
	lines, _, err := loadLines(path)
	if err != nil {
		return Result{Path: path}, err
	}

	res := Result{Path: path, Original: joinLines(lines)}
	for _, e := range entries {
		want := e.Key + "=" + e.Value
		i := findKeyLine(lines, e.Key)
		if i < 0 {
			lines = append(lines, want)
			res.Appended = append(res.Appended, e.Key)
			res.Changed = true
			continue
		}
		if lines[i] != want {
			lines[i] = want
			res.Replaced = append(res.Replaced, i)
			res.Changed = true
		}
	}

	res.Patched = joinLines(lines)
	if opt.DryRun || !res.Changed {
		return res, nil
	}
	if err := writeLines(path, lines); err != nil {
		return res, err
	}
	return res, nil
}
