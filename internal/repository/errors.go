// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver error strings: ErrNotFound maps to
// HTTP 404, ErrDuplicate to 409.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as registering an existing username or re-joining a room.
var ErrDuplicate = errors.New("duplicate")
