package patch

import "strings"

// Options controls WordMatch replacement behavior.
type Options struct {
	// Mode combines per-word substring hits (default AllWords).
	Mode MatchMode

	// Scope stops after the first match or collects every match
	// (default FirstOnly).
	Scope Scope

	// CaseSensitive switches substring comparison from ordinal
	// case-insensitive to ordinal exact.
	CaseSensitive bool

	// Backup copies the original file to path+BackupSuffix before writing.
	Backup       bool
	BackupSuffix string // default ".bak"

	// DryRun computes and reports matches without writing anything.
	DryRun bool
}

// hasWords reports whether the set contains at least one non-empty word.
// An empty set matches nothing (not everything).
func hasWords(words []string) bool {
	for _, w := range words {
		if w != "" {
			return true
		}
	}
	return false
}

// lineMatches evaluates one line against the word set under opt.
func lineMatches(line string, words []string, opt Options) bool {
	hay := line
	if !opt.CaseSensitive {
		hay = strings.ToLower(line)
	}
	for _, w := range words {
		if w == "" {
			continue
		}
		if !opt.CaseSensitive {
			w = strings.ToLower(w)
		}
		hit := strings.Contains(hay, w)
		if opt.Mode == AnyWord {
			if hit {
				return true
			}
		} else if !hit {
			return false
		}
	}
	return opt.Mode == AllWords
}

// Replace finds lines containing the given words and overwrites them with
// replacement. Zero matches is a normal outcome, not an error: the result
// reports Changed=false and the file is untouched. When matches exist and
// DryRun is off, the backup (if requested) is taken before mutation and
// persists even if the subsequent write fails.
func Replace(path string, words []string, replacement string, opt Options) (Result, error) {
	lines, raw, err := loadLines(path)
	if err != nil {
		return Result{Path: path}, err
	}

	res := Result{Path: path, Original: joinLines(lines)}
	res.Patched = res.Original
	if !hasWords(words) {
		return res, nil
	}
	for i, ln := range lines {
		if !lineMatches(ln, words, opt) {
			continue
		}
		res.Replaced = append(res.Replaced, i)
		if opt.Scope == FirstOnly {
			break
		}
	}
	if len(res.Replaced) == 0 {
		return res, nil
	}

	for _, i := range res.Replaced {
		if lines[i] != replacement {
			lines[i] = replacement
			res.Changed = true
		}
	}
	res.Patched = joinLines(lines)
	if opt.DryRun || !res.Changed {
		return res, nil
	}

	if opt.Backup {
		if err := writeBackup(path, opt.BackupSuffix, raw); err != nil {
			return res, err
		}
	}
	if err := writeLines(path, lines); err != nil {
		return res, err
	}
	return res, nil
}
