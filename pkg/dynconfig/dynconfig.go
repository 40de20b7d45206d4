// Package dynconfig loads dynobj.Config values from configuration files.
//
// Files may be YAML, JSON, or TOML; the format follows the file extension.
// Keys missing from the file keep the values of dynobj.DefaultConfig.
// Environment variables are not consulted.
package dynconfig

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dynobj/pkg/dynobj"
)

// Config keys, matching the mapstructure tags of dynobj.Config.
const (
	KeyCapacity = "capacity"
	KeyLogLevel = "log_level"
)

// Load reads the file at path and returns the validated Config it
// describes.
func Load(path string) (dynobj.Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return dynobj.Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// Decode builds a validated Config from an in-memory map, such as a plugin
// manifest section that was already parsed by the host.
func Decode(values map[string]any) (dynobj.Config, error) {
	v := newViper()
	if err := v.MergeConfigMap(values); err != nil {
		return dynobj.Config{}, fmt.Errorf("merge config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	def := dynobj.DefaultConfig()
	v := viper.New()
	v.SetDefault(KeyCapacity, def.Capacity)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	return v
}

func decode(v *viper.Viper) (dynobj.Config, error) {
	var cfg dynobj.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return dynobj.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return dynobj.Config{}, err
	}
	return cfg, nil
}
