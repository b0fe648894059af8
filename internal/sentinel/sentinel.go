package sentinel

import "errors"

// Sentinel dependency errors. Stores and adapters should return these (optionally
// wrapped) so services can translate them into domain errors exactly once.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrAlreadyUsed  = errors.New("already used")
	ErrNoIdentity   = errors.New("no identity")
	ErrUnavailable  = errors.New("unavailable")
)
