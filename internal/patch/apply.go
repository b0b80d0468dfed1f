package patch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Template renders a replacement line from an entry by substituting the
// {key} and {value} placeholders. The zero value renders "key=value".
type Template string

// DefaultTemplate is the rendering used when no template is configured.
const DefaultTemplate Template = "{key}={value}"

// Render substitutes {key} and {value} in the template.
func (t Template) Render(e Entry) string {
	s := string(t)
	if s == "" {
		s = string(DefaultTemplate)
	}
	s = strings.ReplaceAll(s, "{key}", e.Key)
	return strings.ReplaceAll(s, "{value}", e.Value)
}

// ApplyOptions controls profile-entry application.
type ApplyOptions struct {
	Template      Template
	CaseSensitive bool
	DryRun        bool
}

// prefixMatches reports whether line begins with key followed by a word
// boundary (end of line or a non letter/digit/underscore rune).
func prefixMatches(line, key string, caseSensitive bool) bool {
	if len(line) < len(key) || key == "" {
		return false
	}
	head := line[:len(key)]
	if caseSensitive {
		if head != key {
			return false
		}
	} else if !strings.EqualFold(head, key) {
		return false
	}
	rest := line[len(key):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// ApplyEntries rewrites, for each entry in order, the first line beginning
// with the entry's key, using the rendered template as the new line. Unlike
// Update, this mode never appends: an entry with no matching line is
// recorded in Result.Skipped and the file is left untouched for that entry.
// The file is rewritten only when at least one entry changed a line.
func ApplyEntries(path string, entries []Entry, opt ApplyOptions) (Result, error) {
	lines, _, err := loadLines(path)
	if err != nil {
		return Result{Path: path}, err
	}

	res := Result{Path: path, Original: joinLines(lines)}
	for _, e := range entries {
		idx := -1
		for i, ln := range lines {
			if prefixMatches(ln, e.Key, opt.CaseSensitive) {
				idx = i
				break
			}
		}
		if idx < 0 {
			res.Skipped = append(res.Skipped, e.Key)
			continue
		}
		want := opt.Template.Render(e)
		if lines[idx] != want {
			lines[idx] = want
			res.Replaced = append(res.Replaced, idx)
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
