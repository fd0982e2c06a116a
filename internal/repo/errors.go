package repo

import "errors"

var (
	// ErrNotFound is returned when an operation targets a record that does
	// not exist, such as updating a deleted task.
	ErrNotFound = errors.New("record not found")

	// ErrNotAuthenticated is returned for mutating operations with no
	// signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied is returned when the signed-in user's role does
	// not allow the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCorrupt wraps decode failures on persisted collections.
	ErrCorrupt = errors.New("corrupt collection")
)
