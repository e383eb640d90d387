package textio_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/briarfell/jotter/schema"
	"github.com/briarfell/jotter/textio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadText_Success tests reading an existing text file.
func TestReadText_Success(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello there\n"), 0o644))

	text, err := handler.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello there\n", text)
}

// TestReadText_Success_EmptyFile tests reading an empty file.
func TestReadText_Success_EmptyFile(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	text, err := handler.ReadText(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

// TestReadText_Success_InvalidUTF8 tests that invalid byte sequences decode
// to the replacement character instead of failing the read.
func TestReadText_Success_InvalidUTF8(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "mangled.txt")
	require.NoError(t, os.WriteFile(path, []byte{'h', 'i', 0xff, 0xfe, '!'}, 0o644))

	text, err := handler.ReadText(path)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(text), "decoded text should be valid UTF-8")
	assert.Equal(t, "hi�!", text)
}

// TestReadText_Fail_NotExists tests the read failure for a missing file.
func TestReadText_Fail_NotExists(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "missing.txt")

	text, err := handler.ReadText(path)
	require.Error(t, err)
	require.ErrorIs(t, err, textio.ErrRead)
	require.ErrorIs(t, err, fs.ErrNotExist, "underlying cause should be preserved")
	assert.Empty(t, text)
}

// TestWriteText_Success tests writing a new text file.
func TestWriteText_Success(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, handler.WriteText(path, "written content"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "written content", string(data))
}

// TestWriteText_Success_Truncates tests that an existing file is replaced in
// full, not appended to or partially overwritten.
func TestWriteText_Success_Truncates(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, handler.WriteText(path, "a much longer first version"))
	require.NoError(t, handler.WriteText(path, "short"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

// TestWriteText_Fail_MissingParent tests the write failure for a path whose
// parent directory does not exist.
func TestWriteText_Fail_MissingParent(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "nosuchdir", "out.txt")

	err := handler.WriteText(path, "content")
	require.Error(t, err)
	require.ErrorIs(t, err, textio.ErrWrite)
	require.ErrorIs(t, err, fs.ErrNotExist, "underlying cause should be preserved")
}

// TestReadWriteText_RoundTrip tests that written text reads back unchanged,
// including non-ASCII content.
func TestReadWriteText_RoundTrip(t *testing.T) {
	t.Parallel()

	handler := textio.NewHandler(&schema.OS{})

	path := filepath.Join(t.TempDir(), "unicode.txt")
	content := "grüße aus dem dateisystem ✓\n"

	require.NoError(t, handler.WriteText(path, content))

	text, err := handler.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}
