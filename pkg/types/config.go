package types

import (
	"errors"
	"strings"
)

// Config holds the settings shared by the CLI and the sync engine.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	Extension string `json:"extension" yaml:"extension"`
}

// Defaults applied when a config value is empty.
const (
	DefaultExtension = ".kanban"
	DefaultLogLevel  = "info"
)

// Config validation errors.
var (
	ErrExtensionInvalid = errors.New("extension must start with a dot")
	ErrLogLevelUnknown  = errors.New("unknown log level")
)

// Entity errors.
var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// knownLogLevels lists the levels that Validate accepts.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks that the Config is well-formed. Empty values are valid
// and mean "use the default".
func (c Config) Validate() error {
	if c.Extension != "" && (!strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2) {
		return ErrExtensionInvalid
	}
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	return nil
}

// WithDefaults returns a copy of c with empty values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}
