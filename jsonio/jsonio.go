// Package jsonio implements JSON encoding, decoding and file transport on
// top of a text provider such as [github.com/briarfell/jotter/textio].
// Decoding is generic over the target type; encoding accepts maps, structs,
// slices and arrays, while passing strings through verbatim so that already
// encoded payloads are never encoded a second time.
package jsonio

import (
	"encoding/json"
	"fmt"
	"reflect"
)

type textProvider interface {
	ReadText(path string) (string, error)
	WriteText(path string, text string) error
}

// Handler is the principal implementation for JSON file operations.
type Handler struct {
	textHandler textProvider
}

// NewHandler returns a pointer to a new JSON [Handler].
func NewHandler(textHandler textProvider) *Handler {
	return &Handler{
		textHandler: textHandler,
	}
}

// Parse decodes text as JSON into a value of type T. Malformed JSON returns
// an error matching [ErrParse], carrying the underlying cause. No validation
// beyond what [json.Unmarshal] itself enforces takes place, so permissive
// target types such as map[string]any accept any well-formed document.
func Parse[T any](text string) (T, error) {
	var value T

	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return value, fmt.Errorf("(jsonio) %w: %w", ErrParse, err)
	}

	return value, nil
}

// Stringify encodes a value as compact JSON. A string input is returned
// verbatim: it is treated as an already encoded payload and neither quoted
// nor escaped. Maps, structs, slices and arrays, including such values
// behind non-nil pointers, are encoded with [json.Marshal]. Anything else,
// nil and values [json.Marshal] rejects included, returns an error matching
// [ErrUnsupportedValue].
func Stringify(value any) (string, error) {
	if text, ok := value.(string); ok {
		return text, nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", fmt.Errorf("(jsonio) %w: %T", ErrUnsupportedValue, value)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil

	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return "", fmt.Errorf("(jsonio) %w: %w", ErrUnsupportedValue, err)
		}

		return string(data), nil

	default:
		return "", fmt.Errorf("(jsonio) %w: %T", ErrUnsupportedValue, value)
	}
}

// ReadJSON reads the named file through the handler's text provider and
// decodes its contents with [Parse]. Errors of either stage are returned
// unchanged, so callers can distinguish read failures from parse failures.
func ReadJSON[T any](h *Handler, path string) (T, error) {
	text, err := h.textHandler.ReadText(path)
	if err != nil {
		var zeroVal T

		return zeroVal, err
	}

	return Parse[T](text)
}

// WriteJSON encodes value with [Stringify] and writes the result to the
// named file through the handler's text provider. Errors of either stage are
// returned unchanged. An unsupported value fails the operation before the
// file is created or truncated.
func (h *Handler) WriteJSON(path string, value any) error {
	text, err := Stringify(value)
	if err != nil {
		return err
	}

	return h.textHandler.WriteText(path, text)
}
