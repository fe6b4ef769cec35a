// Package config loads the spec.md §6 configuration options from YAML,
// grounded on the Config/DefaultConfig pattern in
// theRebelliousNerd-codenerd/internal/config/config.go.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stlbnmaria/careplan/pkg/assembler"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
)

// Transport is the YAML-facing transport policy selector.
type Transport string

const (
	// TransportDriving forces every caregiver to be car-licensed.
	TransportDriving Transport = "driving"
	// TransportLicense honors each caregiver's own license flag.
	TransportLicense Transport = "license"
)

// Policy resolves the YAML value to the model-level enum.
func (t Transport) Policy() model.TransportPolicy {
	if t == TransportDriving {
		return model.TransportDriving
	}
	return model.TransportLicense
}

// Config is the full set of spec.md §6 options plus the batch-layer
// concurrency knob.
type Config struct {
	IncludeAvailability bool      `yaml:"include_availability"`
	Transport           Transport `yaml:"transport"`
	FilterForCompetence bool      `yaml:"filter_for_competence"`
	CarbonReduction     bool      `yaml:"carbon_reduction"`
	TimeLimitSeconds    int       `yaml:"time_limit_seconds"`
	Workers             int       `yaml:"workers"`
}

// TimeLimit returns TimeLimitSeconds as a time.Duration.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds) * time.Second
}

// InstanceConfig projects the options the Instance Builder consumes.
func (c Config) InstanceConfig() instance.Config {
	return instance.Config{
		IncludeAvailability: c.IncludeAvailability,
		FilterForCompetence: c.FilterForCompetence,
	}
}

// AssemblerConfig projects the options the Model Assembler consumes.
func (c Config) AssemblerConfig() assembler.Config {
	return assembler.Config{
		Transport:       c.Transport.Policy(),
		CarbonReduction: c.CarbonReduction,
	}
}

// Default returns the spec.md §6 defaults: every boolean option off,
// driving transport, a 1200s solver budget, and Workers == 0, which puts no
// limit on how many days are solved concurrently.
func Default() Config {
	return Config{
		IncludeAvailability: false,
		Transport:           TransportDriving,
		FilterForCompetence: false,
		CarbonReduction:     false,
		TimeLimitSeconds:    1200,
		Workers:             0,
	}
}

// Load reads a YAML config file, starting from Default() so a partial file
// only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
