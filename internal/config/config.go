package config

import (
	"fmt"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS = 50
	MaxFPS     = 120
)

type Config struct {
	Preset string                   `yaml:"preset,omitempty"`
	Params dynamo.ControlParameters `yaml:"params"`
	FPS    int                      `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "default",
		Params: dynamo.DefaultParams(),
		FPS:    DefaultFPS,
	}
}

// Validate checks every parameter against its slider range. Values coming
// from the live view are clamped already; this guards command-line input.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{physics.ParamDrag, c.Params.Drag},
		{physics.ParamThrust, c.Params.Thrust},
		{physics.ParamGravity, c.Params.Gravity},
	}
	for _, chk := range checks {
		b, err := physics.ParamBounds(chk.name)
		if err != nil {
			return err
		}
		if !b.Contains(chk.value) {
			return &dynamo.ParamError{Name: chk.name, Value: chk.value, Wrapped: dynamo.ErrParameterBounds}
		}
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("fps must be in (0, %d], got %d", MaxFPS, c.FPS)
	}
	return nil
}

// Marshal renders the config as yaml, the same shape presets.yaml uses.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
