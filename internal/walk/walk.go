// Package walk provides a deterministic, filterable filesystem walker used
// to discover patch targets when the CLI is pointed at a directory tree.
package walk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Target is one discovered candidate file.
type Target struct {
	RelPath string // root-relative path with forward slashes
	AbsPath string // absolute filesystem path
}

// CollectFiles walks root and returns regular files whose extension is in
// exts (empty set = all files), skipping any entry whose base name is, or
// starts with, an exclude key. Results are sorted by RelPath so multi-file
// runs are deterministic.
func CollectFiles(root string, exts, exclude map[string]struct{}) ([]Target, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var out []Target
	err = filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, rerr := filepath.Rel(rootAbs, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && excluded(filepath.Base(rel), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil || !info.Mode().IsRegular() {
			return nil
		}
		if len(exts) > 0 {
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := exts[ext]; !ok {
				return nil
			}
		}
		out = append(out, Target{RelPath: rel, AbsPath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

// excluded reports whether base matches an exclude key exactly or by prefix
// (so "build" also skips "build-out").
func excluded(base string, exclude map[string]struct{}) bool {
	if _, ok := exclude[base]; ok {
		return true
	}
	for k := range exclude {
		if k != "" && strings.HasPrefix(base, k) {
			return true
		}
	}
	return false
}
