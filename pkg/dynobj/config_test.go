package dynobj

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "default config is valid",
			config:  DefaultConfig(),
			wantErr: nil,
		},
		{
			name:    "negative capacity returns ErrCapacityInvalid",
			config:  Config{Capacity: -1},
			wantErr: ErrCapacityInvalid,
		},
		{
			name:    "unknown level returns ErrLogLevelUnknown",
			config:  Config{LogLevel: "verbose"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "level names are case-insensitive",
			config:  Config{Capacity: 0, LogLevel: "DEBUG"},
			wantErr: nil,
		},
		{
			name:    "off disables logging",
			config:  Config{LogLevel: "off"},
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
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
