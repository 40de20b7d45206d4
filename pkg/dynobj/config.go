package dynobj

import "github.com/mesh-intelligence/dynobj/internal/logging"

// Config holds construction parameters for objects and handles.
type Config struct {
	// Capacity is a size hint for the property map.
	Capacity int `json:"capacity" yaml:"capacity" mapstructure:"capacity"`

	// LogLevel is one of trace, debug, info, warn, error, or off.
	// Empty disables logging.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the configuration used by New and NewObject.
func DefaultConfig() Config {
	return Config{Capacity: 8}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return ErrCapacityInvalid
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return ErrLogLevelUnknown
	}
	return nil
}
