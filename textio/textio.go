// Package textio implements whole-file reading and writing of UTF-8 text
// files. Malformed UTF-8 never fails a read; any invalid byte sequences are
// replaced with the Unicode replacement character during decoding.
package textio

import (
	"bytes"
	"fmt"
	"os"
)

const (
	// textFilePerms are the file permissions for newly created text files.
	textFilePerms = 0o644

	// replacementChar substitutes byte sequences that are not valid UTF-8.
	replacementChar = "�"
)

type osProvider interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Handler is the principal implementation for text file operations.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new text [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// ReadText reads the named file in full and returns its contents as a
// string. Byte sequences that do not decode as valid UTF-8 are replaced with
// the Unicode replacement character, so any readable file yields a valid
// string. Failure to read the file returns an error matching [ErrRead],
// carrying the underlying cause.
func (h *Handler) ReadText(path string) (string, error) {
	data, err := h.osHandler.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("(textio) %w: %w", ErrRead, err)
	}

	return string(bytes.ToValidUTF8(data, []byte(replacementChar))), nil
}

// WriteText writes text to the named file as UTF-8, creating the file if it
// does not exist and truncating it otherwise. Failure to write returns an
// error matching [ErrWrite], carrying the underlying cause; a failed write
// can leave a partially written file behind.
func (h *Handler) WriteText(path string, text string) error {
	if err := h.osHandler.WriteFile(path, []byte(text), textFilePerms); err != nil {
		return fmt.Errorf("(textio) %w: %w", ErrWrite, err)
	}

	return nil
}
