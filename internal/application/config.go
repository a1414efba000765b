package application

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/haldane/qcost/infrastructure/surfacecode"
	"github.com/haldane/qcost/internal/domain"
)

// EngineConfig collects every tunable constant of the estimation
// engine. The zero value is not usable; start from DefaultEngineConfig
// and overlay a YAML file when present.
type EngineConfig struct {
	// SurfaceCode holds the fault tolerance model constants.
	SurfaceCode surfacecode.Config `yaml:"surface_code" validate:"required"`

	// Hardware maps each hardware profile to its syndrome extraction
	// cycle time in seconds.
	Hardware map[domain.HardwareProfile]float64 `yaml:"hardware" validate:"required,min=1,dive,gt=0"`
}

// DefaultEngineConfig returns the engine defaults: surface code
// constants per surfacecode.DefaultConfig, a 1µs superconducting
// cycle, and a 100µs trapped ion cycle.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SurfaceCode: surfacecode.DefaultConfig(),
		Hardware: map[domain.HardwareProfile]float64{
			domain.HardwareSuperconducting: 1e-6,
			domain.HardwareTrappedIon:      1e-4,
		},
	}
}

// LoadEngineConfig reads a YAML configuration file and overlays it on
// the defaults, validating the result. Unknown keys are rejected to
// catch typos early.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultEngineConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its tagged bounds.
func (c EngineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}
	return nil
}

// CycleSeconds resolves the syndrome cycle time for a hardware
// profile, falling back to the surface code default for profiles the
// configuration does not name.
func (c EngineConfig) CycleSeconds(profile domain.HardwareProfile) float64 {
	if seconds, ok := c.Hardware[profile]; ok {
		return seconds
	}
	return c.SurfaceCode.CycleTimeSeconds
}
