package renamer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// RenameError reports a rename that failed part way through a plan.
type RenameError struct {
	Rename Rename
	Done   int // renames applied before the failure
	Total  int
	Err    error
}

func (e *RenameError) Error() string {
	cause := e.Err
	var linkErr *os.LinkError
	if errors.As(e.Err, &linkErr) {
		cause = linkErr.Err
	}
	return fmt.Sprintf("rename %s -> %s (after %d of %d renames): %v",
		e.Rename.Old, e.Rename.New, e.Done, e.Total, cause)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// ConflictError is returned by Apply when NoClobber is set and at least one
// target name is already taken.
type ConflictError struct {
	Conflicts []Rename
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s (from %s)", c.New, c.Old))
	}
	return fmt.Sprintf("%d target(s) already exist: %s", len(e.Conflicts), strings.Join(parts, ", "))
}

// Is makes errors.Is(err, fs.ErrExist) hold for conflicts.
func (e *ConflictError) Is(target error) bool {
	return target == fs.ErrExist
}
