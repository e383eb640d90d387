package jsonio

import "errors"

var (
	// ErrParse is an error that occurs when text cannot be decoded as JSON.
	ErrParse = errors.New("failed to parse json")

	// ErrUnsupportedValue is a type error that occurs when a value is not of
	// an encodable kind, or is rejected by the underlying JSON encoder.
	ErrUnsupportedValue = errors.New("unsupported value for json encoding")
)
