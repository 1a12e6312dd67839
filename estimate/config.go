package estimate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TargetConfig is one downstream consumer of published state.
type TargetConfig struct {
	Addr  string `yaml:"addr"`
	Proto string `yaml:"proto"` // "udp" or "tcp"
	Mask  uint32 `yaml:"mask"`
}

// SerialConfig describes the accelerometer serial port.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Config holds everything trackd needs: filter parameters and transport
// endpoints. Filter parameters are fixed for the life of the process.
type Config struct {
	StepSec float64 `yaml:"step_sec"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Gamma   float64 `yaml:"gamma"`

	Serial   SerialConfig   `yaml:"serial"`
	UDPPort  int            `yaml:"udp_port"`
	HTTPPort int            `yaml:"http_port"`
	Journal  string         `yaml:"journal"`
	Targets  []TargetConfig `yaml:"targets"`
}

func DefaultConfig() Config {
	return Config{
		StepSec: DefaultStep,
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Gamma:   DefaultGamma,
		Serial:  SerialConfig{Baud: 115200},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StepSec <= 0 {
		return fmt.Errorf("step_sec must be positive, got %g", c.StepSec)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0,1], got %g", c.Alpha)
	}
	for _, t := range c.Targets {
		if t.Proto != "udp" && t.Proto != "tcp" {
			return fmt.Errorf("target %s: unknown proto %q", t.Addr, t.Proto)
		}
	}
	return nil
}

// Gains returns the tracker gains from the config.
func (c Config) Gains() Gains {
	return Gains{Alpha: c.Alpha, Beta: c.Beta, Gamma: c.Gamma}
}
