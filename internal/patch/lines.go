package patch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// lineEnding is the separator used when writing lines back to disk.
// Reads always normalize to LF; writes use the platform default.
func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// normalizeLF converts CRLF and bare CR to LF and replaces invalid UTF-8
// sequences with the Unicode replacement character.
func normalizeLF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// loadLines reads path fully into memory and returns its lines (without
// terminators) plus the raw on-disk bytes for backup purposes.
// A missing file surfaces the os.ErrNotExist-wrapping error from ReadFile.
func loadLines(path string) (lines []string, raw []byte, err error) {
	raw, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(normalizeLF(raw))
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}, raw, nil
	}
	return strings.Split(text, "\n"), raw, nil
}

// joinLines renders lines with the platform line ending and a single
// trailing terminator.
func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	eol := lineEnding()
	return []byte(strings.Join(lines, eol) + eol)
}

// fileMode returns the permission bits of the file at path, or 0644 when it
// cannot be statted.
func fileMode(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}

// writeLines writes the full line set back to path atomically: temp file in
// the same directory, sync, close, rename. Readers never observe a partial
// file. The temp file takes over the target's permission bits so the rename
// does not change the file's mode. Any failure is surfaced as *ErrWrite.
func writeLines(path string, lines []string) error {
	data := joinLines(lines)
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return &ErrWrite{Path: path, Err: err}
	}
	tmp := f.Name()
	if err := f.Chmod(fileMode(path)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &ErrWrite{Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &ErrWrite{Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &ErrWrite{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &ErrWrite{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &ErrWrite{Path: path, Err: err}
	}
	return nil
}

// writeBackup copies the original raw bytes to path+suffix, mirroring the
// original file's permission bits. The backup is byte-identical to the
// pre-modification file and persists regardless of whether the subsequent
// write succeeds.
func writeBackup(path, suffix string, raw []byte) error {
	if suffix == "" {
		suffix = ".bak"
	}
	bak := path + suffix
	if err := os.WriteFile(bak, raw, fileMode(path)); err != nil {
		return fmt.Errorf("backup %s: %w", bak, err)
	}
	return nil
}
