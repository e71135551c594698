package videos

import "errors"

var (
	// ErrProviderUnavailable indicates the metadata provider is not configured.
	ErrProviderUnavailable = errors.New("video metadata provider unavailable")
	// ErrNoSession indicates a video was submitted without a signed-in user.
	ErrNoSession = errors.New("no signed-in user")
	// ErrVideoNotFound indicates no record has the requested id.
	ErrVideoNotFound = errors.New("video not found")
	// ErrInvalidVideo indicates a new video carries out-of-range fields.
	ErrInvalidVideo = errors.New("invalid video")
	// ErrInvalidPatch indicates an update would break a record invariant.
	ErrInvalidPatch = errors.New("invalid video update")
)
