package repositories

import "errors"

var (
	// ErrCorruptState indicates a persisted value exists but cannot be decoded.
	ErrCorruptState = errors.New("persisted state is corrupt")
)
