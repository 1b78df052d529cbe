package context

import "errors"

var (
	// ErrAlreadyCommitted is returned by Stage and Commit after a
	// successful Commit.
	ErrAlreadyCommitted = errors.New("request already committed")

	// ErrRollbackFailed marks a staged write that could not be undone.
	ErrRollbackFailed = errors.New("rollback failed")
)
