package configuration

const (
	// SettingRoot is the configuration key for the directory tree that
	// manifests are built over.
	SettingRoot = "root"

	// SettingOutput is the configuration key for the path the encoded
	// manifest is written to.
	SettingOutput = "output"

	// SettingFormat is the configuration key for the manifest output
	// format ("json" or "yaml").
	SettingFormat = "format"

	// SettingChecksums is the configuration key for enabling per-file
	// BLAKE3 checksums during indexing.
	SettingChecksums = "checksums"

	// SettingUI is the configuration key for enabling the terminal user
	// interface.
	SettingUI = "ui"

	// SettingVerify is the configuration key for re-reading a written
	// JSON manifest as a final validation step.
	SettingVerify = "verify"

	// SettingLogLines is the configuration key for the maximum number of
	// log lines retained by the terminal user interface.
	SettingLogLines = "logLines"

	// SettingSpaceFloor is the configuration key for the minimum free
	// space (in bytes) required on the output filesystem before writing.
	SettingSpaceFloor = "spaceFloor"
)

const (
	// DefaultOutput is the manifest output path used when no other path
	// was configured.
	DefaultOutput = "manifest.json"

	// DefaultFormat is the manifest output format used when no other
	// format was configured.
	DefaultFormat = "json"

	// DefaultLogLines is the terminal user interface log retention used
	// when no other value was configured.
	DefaultLogLines = 100
)
