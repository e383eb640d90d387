package main

import "errors"

var (
	// ErrSpaceFloor is an error that occurs when the output filesystem
	// has less free space left than the configured minimum.
	ErrSpaceFloor = errors.New("output filesystem below space floor")

	// ErrVerifyMismatch is an error that occurs when a re-read manifest
	// does not match the manifest that was written.
	ErrVerifyMismatch = errors.New("written manifest does not match")
)
