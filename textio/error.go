package textio

import "errors"

var (
	// ErrRead is an error that occurs when a file cannot be read.
	ErrRead = errors.New("failed to read file")

	// ErrWrite is an error that occurs when a file cannot be written.
	ErrWrite = errors.New("failed to write file")
)
