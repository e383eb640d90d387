package manifest

import "errors"

var (
	// ErrNotRegularFile is an error that occurs when a queued path no
	// longer points to a regular file at indexing time.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrEncode is an error that occurs when a manifest fails to encode
	// into the requested output format.
	ErrEncode = errors.New("failed to encode manifest")

	// ErrUnknownFormat is an error that occurs when an unknown output
	// format was requested for writing a manifest.
	ErrUnknownFormat = errors.New("unknown manifest format")
)
