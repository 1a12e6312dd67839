package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultStep, cfg.StepSec)
	assert.Equal(t, Gains{Alpha: DefaultAlpha, Beta: DefaultBeta, Gamma: DefaultGamma}, cfg.Gains())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackd.yaml")
	body := `
step_sec: 0.05
alpha: 0.7
serial:
  port: /dev/ttyUSB0
  baud: 230400
http_port: 8080
targets:
  - addr: 10.0.0.5:9000
    proto: udp
    mask: 1
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.StepSec)
	assert.Equal(t, 0.7, cfg.Alpha)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultBeta, cfg.Beta)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 230400, cfg.Serial.Baud)
	assert.Equal(t, 8080, cfg.HTTPPort)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "udp", cfg.Targets[0].Proto)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepSec = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Alpha = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Targets = []TargetConfig{{Addr: "x:1", Proto: "sctp"}}
	assert.Error(t, cfg.Validate())
}
