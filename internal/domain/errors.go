package domain

import "errors"

// Conflict errors surfaced by the repository layer. The database unique
// constraints are the authoritative signal: a pre-insert existence check can
// lose a race, the constraint cannot.
var (
	ErrEmailTaken      = errors.New("email already taken")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAccountConflict = errors.New("conflicting account record")
)
