package configuration

import "errors"

var (
	// ErrReadConfig is an error that occurs when a configuration file
	// could not be read.
	ErrReadConfig = errors.New("failed to read configuration file")

	// ErrNoRoot is an error that occurs when no root directory was
	// configured for the manifest build.
	ErrNoRoot = errors.New("no root directory configured")

	// ErrBadFormat is an error that occurs when an unknown manifest
	// output format was configured.
	ErrBadFormat = errors.New("unknown output format configured")
)
