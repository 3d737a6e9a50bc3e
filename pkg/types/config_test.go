package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty config is valid",
			config:  Config{},
			wantErr: nil,
		},
		{
			name:    "extension without dot returns ErrExtensionInvalid",
			config:  Config{Extension: "kanban"},
			wantErr: ErrExtensionInvalid,
		},
		{
			name:    "bare dot extension returns ErrExtensionInvalid",
			config:  Config{Extension: "."},
			wantErr: ErrExtensionInvalid,
		},
		{
			name:    "unknown log level returns ErrLogLevelUnknown",
			config:  Config{LogLevel: "chatty"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "log level is case insensitive",
			config:  Config{LogLevel: "DEBUG", Extension: ".board"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{DataDir: "/tmp/idx"}.WithDefaults()
	assert.Equal(t, DefaultExtension, cfg.Extension)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "/tmp/idx", cfg.DataDir)

	kept := Config{Extension: ".board", LogLevel: "warn"}.WithDefaults()
	assert.Equal(t, ".board", kept.Extension)
	assert.Equal(t, "warn", kept.LogLevel)
}
