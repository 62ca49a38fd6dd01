package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/librecal/librecal/recur"
)

// Config is the root configuration for the event server. All engine
// boundaries are configurable here rather than compiled in.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig configures the recurrence engine boundaries.
type EngineConfig struct {
	// Horizon is the last permissible occurrence date, as YYYY-MM-DD.
	Horizon string `yaml:"horizon"`
	// HardCap bounds generation steps per series.
	HardCap int `yaml:"hard_cap"`
	// WarnThreshold is the occurrence count that triggers a volume warning.
	WarnThreshold int `yaml:"warn_threshold"`
}

// DefaultServerConfig provides the defaults used when no config file is
// given.
var DefaultServerConfig = Config{
	Addr: ":8080",
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// EngineConfig translates the file representation into a recur.Config,
// leaving unset fields for the engine defaults to fill.
func (c *Config) EngineConfig() (recur.Config, error) {
	var ec recur.Config
	if c.Engine.Horizon != "" {
		horizon, err := time.ParseInLocation(time.DateOnly, c.Engine.Horizon, time.UTC)
		if err != nil {
			return recur.Config{}, fmt.Errorf("parse horizon: %w", err)
		}
		ec.Horizon = horizon
	}
	ec.HardCap = c.Engine.HardCap
	ec.WarnThreshold = c.Engine.WarnThreshold
	return ec, nil
}
