package walk

import (
	"os"
	"path/filepath"
	"testing"
)

func seed(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestCollectFilesFiltersAndSorts(t *testing.T) {
	root := seed(t, map[string]string{
		"b/settings.ini": "x",
		"a/game.cfg":     "x",
		"a/readme.md":    "x",
		"build/out.ini":  "x",
	})
	exts := map[string]struct{}{".ini": {}, ".cfg": {}}
	exclude := map[string]struct{}{"build": {}}
	got, err := CollectFiles(root, exts, exclude)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("targets: %#v", got)
	}
	if got[0].RelPath != "a/game.cfg" || got[1].RelPath != "b/settings.ini" {
		t.Fatalf("order: %#v", got)
	}
}

func TestCollectFilesNoExtFilter(t *testing.T) {
	root := seed(t, map[string]string{"x.anything": "x"})
	got, err := CollectFiles(root, nil, nil)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("targets: %#v", got)
	}
}

func TestExcludedPrefix(t *testing.T) {
	exclude := map[string]struct{}{"build": {}}
	if !excluded("build-out", exclude) {
		t.Fatalf("prefix exclude should hit")
	}
	if excluded("rebuild", exclude) {
		t.Fatalf("non-prefix should not hit")
	}
}
