package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/briarfell/jotter/jsonio"
	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON selects indented JSON as the manifest output format.
	FormatJSON = "json"

	// FormatYAML selects YAML as the manifest output format.
	FormatYAML = "yaml"
)

type jsonWriteProvider interface {
	WriteJSON(path string, value any) error
}

type textWriteProvider interface {
	WriteText(path string, text string) error
}

// Writer persists manifests to disk in their encoded form.
type Writer struct {
	jsonHandler jsonWriteProvider
	textHandler textWriteProvider
}

// NewWriter returns a pointer to a new manifest [Writer].
func NewWriter(jsonHandler jsonWriteProvider, textHandler textWriteProvider) *Writer {
	return &Writer{
		jsonHandler: jsonHandler,
		textHandler: textHandler,
	}
}

// EncodeJSON returns the manifest encoded as indented JSON.
func EncodeJSON(m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("(manifest-encode) %w: %w", ErrEncode, err)
	}

	return string(data), nil
}

// EncodeYAML returns the manifest encoded as YAML.
func EncodeYAML(m *Manifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("(manifest-encode) %w: %w", ErrEncode, err)
	}

	return string(data), nil
}

// Write encodes the manifest in the requested format and writes it to path.
// JSON output travels through the JSON handler as a pre-encoded string, so
// the indented layout is preserved on disk as-is.
func (w *Writer) Write(m *Manifest, path string, format string) error {
	switch format {
	case FormatJSON:
		text, err := EncodeJSON(m)
		if err != nil {
			return err
		}

		return w.jsonHandler.WriteJSON(path, text)

	case FormatYAML:
		text, err := EncodeYAML(m)
		if err != nil {
			return err
		}

		return w.textHandler.WriteText(path, text)

	default:
		return fmt.Errorf("(manifest-write) %w: %s", ErrUnknownFormat, format)
	}
}

// Load reads a previously written JSON manifest back from disk.
func Load(handler *jsonio.Handler, path string) (*Manifest, error) {
	return jsonio.ReadJSON[*Manifest](handler, path)
}
