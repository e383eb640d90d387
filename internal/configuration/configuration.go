// Package configuration implements the principal configuration services of
// the application. It reads Unix-type key-value configuration files and
// resolves them into the operational application settings.
package configuration

import (
	"fmt"
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation of the configuration services.
type Handler struct {
	genericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
	}
}

// ReadGeneric reads Unix-type configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.genericHandler.Read(filenames...)
}

// MapKeyToString returns the string value of a configuration key, with an
// empty string as the fallback for a missing key.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the integer value of a configuration key, with -1 as
// the fallback for a missing or unparseable key.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToUInt64 returns the unsigned integer value of a configuration key,
// with 0 as the fallback for a missing or unparseable key.
func (c *Handler) MapKeyToUInt64(envMap map[string]string, key string) uint64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0
	}
	intValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}

	return intValue
}

// MapKeyToBool returns the boolean value of a configuration key, with false
// as the fallback for a missing or unparseable key.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) bool {
	switch strings.ToLower(c.MapKeyToString(envMap, key)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

// EstablishSettings reads the given configuration files and resolves them
// into application [Settings]. Keys missing from the files leave the
// respective defaults in place; passing no files returns the defaults.
func (c *Handler) EstablishSettings(filenames ...string) (*Settings, error) {
	settings := DefaultSettings()

	if len(filenames) == 0 {
		return settings, nil
	}

	configMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config) %w: %w", ErrReadConfig, err)
	}

	if value := c.MapKeyToString(configMap, SettingRoot); value != "" {
		settings.Root = value
	}
	if value := c.MapKeyToString(configMap, SettingOutput); value != "" {
		settings.Output = value
	}
	if value := c.MapKeyToString(configMap, SettingFormat); value != "" {
		settings.Format = strings.ToLower(value)
	}
	if _, exists := configMap[SettingChecksums]; exists {
		settings.Checksums = c.MapKeyToBool(configMap, SettingChecksums)
	}
	if _, exists := configMap[SettingUI]; exists {
		settings.UI = c.MapKeyToBool(configMap, SettingUI)
	}
	if _, exists := configMap[SettingVerify]; exists {
		settings.Verify = c.MapKeyToBool(configMap, SettingVerify)
	}
	if value := c.MapKeyToInt(configMap, SettingLogLines); value >= 0 {
		settings.LogLines = value
	}
	if value := c.MapKeyToUInt64(configMap, SettingSpaceFloor); value > 0 {
		settings.SpaceFloor = value
	}

	return settings, nil
}
