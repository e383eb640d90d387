package configuration

import (
	"fmt"

	"github.com/briarfell/jotter/manifest"
)

// Settings is the principal structure holding the operational application
// configuration, as resolved from defaults, configuration files and any
// command-line overrides.
type Settings struct {
	Root       string
	Output     string
	Format     string
	Checksums  bool
	UI         bool
	Verify     bool
	LogLines   int
	SpaceFloor uint64
}

// DefaultSettings returns a pointer to a new [Settings] holding the
// application defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Root:       "",
		Output:     DefaultOutput,
		Format:     DefaultFormat,
		Checksums:  false,
		UI:         false,
		Verify:     false,
		LogLines:   DefaultLogLines,
		SpaceFloor: 0,
	}
}

// Validate ensures the settings are operationally complete and coherent.
func (s *Settings) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("(config) %w", ErrNoRoot)
	}

	if s.Format != manifest.FormatJSON && s.Format != manifest.FormatYAML {
		return fmt.Errorf("(config) %w: %s", ErrBadFormat, s.Format)
	}

	return nil
}
