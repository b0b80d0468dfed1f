package patch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const wordsFixture = "alpha beta gamma\nbeta delta\nalpha beta\n"

func TestReplaceAllWordsFirstOnly(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	res, err := Replace(p, []string{"alpha", "beta"}, "REPLACED", Options{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readFile(t, p); got != "REPLACED\nbeta delta\nalpha beta\n" {
		t.Fatalf("got %q", got)
	}
	if len(res.Replaced) != 1 || res.Replaced[0] != 0 {
		t.Fatalf("replaced: %v", res.Replaced)
	}
}

func TestReplaceAllWordsScopeAll(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	res, err := Replace(p, []string{"alpha", "beta"}, "R", Options{Scope: All})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readFile(t, p); got != "R\nbeta delta\nR\n" {
		t.Fatalf("got %q", got)
	}
	if len(res.Replaced) != 2 {
		t.Fatalf("replaced: %v", res.Replaced)
	}
}

func TestReplaceAnyWord(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	_, err := Replace(p, []string{"delta", "nosuch"}, "R", Options{Mode: AnyWord, Scope: All})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readFile(t, p); got != "alpha beta gamma\nR\nalpha beta\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceCaseSensitivity(t *testing.T) {
	p := writeFile(t, "t.txt", "Alpha\n")
	res, err := Replace(p, []string{"alpha"}, "R", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Changed || len(res.Replaced) != 0 {
		t.Fatalf("case-sensitive match should miss: %+v", res)
	}
	// Default comparison is case-insensitive.
	if _, err := Replace(p, []string{"alpha"}, "R", Options{}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readFile(t, p); got != "R\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceNoMatchIsNotAnError(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	res, err := Replace(p, []string{"zeta"}, "R", Options{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Changed {
		t.Fatalf("no match should not change")
	}
	if got := readFile(t, p); got != wordsFixture {
		t.Fatalf("file touched: %q", got)
	}
}

func TestReplaceEmptyWordSetMatchesNothing(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	res, err := Replace(p, nil, "R", Options{Scope: All})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Changed || len(res.Replaced) != 0 {
		t.Fatalf("empty word set matched: %+v", res)
	}
}

func TestReplaceBackupIsByteIdentical(t *testing.T) {
	orig := "one\r\ntwo alpha\r\n"
	p := writeFile(t, "t.txt", orig)
	_, err := Replace(p, []string{"alpha"}, "R", Options{Backup: true})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	b, err := os.ReadFile(p + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	// The backup carries the raw pre-modification bytes, CRLF included.
	if string(b) != orig {
		t.Fatalf("backup differs: %q vs %q", b, orig)
	}
}

func TestReplaceBackupSuffix(t *testing.T) {
	p := writeFile(t, "t.txt", "alpha\n")
	_, err := Replace(p, []string{"alpha"}, "R", Options{Backup: true, BackupSuffix: ".orig"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if _, err := os.Stat(p + ".orig"); err != nil {
		t.Fatalf("backup with custom suffix missing: %v", err)
	}
}

func TestReplaceDryRun(t *testing.T) {
	p := writeFile(t, "t.txt", wordsFixture)
	res, err := Replace(p, []string{"alpha"}, "R", Options{DryRun: true, Backup: true})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !res.Changed {
		t.Fatalf("dry run should report would-be change")
	}
	if got := readFile(t, p); got != wordsFixture {
		t.Fatalf("dry run wrote file: %q", got)
	}
	if _, err := os.Stat(p + ".bak"); err == nil {
		t.Fatalf("dry run took a backup")
	}
}

func TestBackupMirrorsFileMode(t *testing.T) {
	p := writeFile(t, "t.txt", "alpha secret\n")
	if err := os.Chmod(p, 0o600); err != nil {
		t.Fatalf("chmod fixture: %v", err)
	}
	if _, err := Replace(p, []string{"alpha"}, "R", Options{Backup: true}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	st, err := os.Stat(p + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if got := st.Mode().Perm(); got != 0o600 {
		t.Fatalf("backup mode: got %o want %o", got, 0o600)
	}
}

func TestBackupPersistsWhenWriteFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	p := filepath.Join(dir, "t.txt")
	orig := "one\r\ntwo alpha\r\n"
	if err := os.WriteFile(p, []byte(orig), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	lines, raw, err := loadLines(p)
	if err != nil {
		t.Fatalf("loadLines: %v", err)
	}
	// Mirror Replace's write tail: backup first, then the whole-file write.
	// Revoking directory write access in between forces the write to fail
	// after the backup has been taken.
	if err := writeBackup(p, ".bak", raw); err != nil {
		t.Fatalf("writeBackup: %v", err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	lines[1] = "R"
	werr := writeLines(p, lines)
	var we *ErrWrite
	if !errors.As(werr, &we) {
		t.Fatalf("want *ErrWrite, got %v", werr)
	}
	_ = os.Chmod(dir, 0o755)
	b, err := os.ReadFile(p + ".bak")
	if err != nil {
		t.Fatalf("backup gone after failed write: %v", err)
	}
	if string(b) != orig {
		t.Fatalf("backup not byte-identical: %q vs %q", b, orig)
	}
	// The target itself is untouched by the failed write.
	cur, _ := os.ReadFile(p)
	if string(cur) != orig {
		t.Fatalf("target mutated by failed write: %q", cur)
	}
}

func TestReplaceIdenticalReplacementIsNoChange(t *testing.T) {
	p := writeFile(t, "t.txt", "alpha\n")
	res, err := Replace(p, []string{"alpha"}, "alpha", Options{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Changed {
		t.Fatalf("replacement equal to line should not count as change")
	}
}
