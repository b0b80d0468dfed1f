package patch

import "fmt"

// ErrWrite wraps an I/O failure during the final write-back. The backup, if
// one was taken, is left in place; there is no rollback beyond the atomic
// rename of the whole-file write itself.
type ErrWrite struct {
	Path string
	Err  error
}

func (e *ErrWrite) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *ErrWrite) Unwrap() error { return e.Err }
