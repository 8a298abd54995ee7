package v1alpha1

import (
	"github.com/windsorcli/molecule/api/v1alpha1/provisioner"
)

// Config represents the contents of a scenario's molecule.yml
type Config struct {
	Driver      *DriverConfig                  `yaml:"driver,omitempty"`
	Platforms   []Platform                     `yaml:"platforms,omitempty"`
	Provisioner *provisioner.ProvisionerConfig `yaml:"provisioner,omitempty"`
	Scenario    *ScenarioConfig                `yaml:"scenario,omitempty"`
	Verifier    *VerifierConfig                `yaml:"verifier,omitempty"`
}

// DriverConfig names the driver that creates and destroys instances
type DriverConfig struct {
	Name    *string        `yaml:"name,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Platform declares one test instance
type Platform struct {
	Name     string   `yaml:"name"`
	Groups   []string `yaml:"groups,omitempty"`
	Children []string `yaml:"children,omitempty"`
}

// ScenarioConfig holds the scenario name and its action sequences
type ScenarioConfig struct {
	Name         *string  `yaml:"name,omitempty"`
	TestSequence []string `yaml:"test_sequence,omitempty"`
}

// VerifierConfig represents the verifier section of molecule.yml
type VerifierConfig struct {
	Name    *string           `yaml:"name,omitempty"`
	Enabled *bool             `yaml:"enabled,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// GetDriverName returns the configured driver name or an empty string
func (c *Config) GetDriverName() string {
	if c == nil || c.Driver == nil || c.Driver.Name == nil {
		return ""
	}
	return *c.Driver.Name
}

// GetScenarioName returns the configured scenario name or an empty string
func (c *Config) GetScenarioName() string {
	if c == nil || c.Scenario == nil || c.Scenario.Name == nil {
		return ""
	}
	return *c.Scenario.Name
}

// IsVerifierEnabled reports whether the verify action runs. Unset means enabled.
func (c *Config) IsVerifierEnabled() bool {
	if c == nil || c.Verifier == nil || c.Verifier.Enabled == nil {
		return true
	}
	return *c.Verifier.Enabled
}

// GetVerifierEnv returns a copy of the verifier environment
func (c *Config) GetVerifierEnv() map[string]string {
	env := make(map[string]string)
	if c == nil || c.Verifier == nil {
		return env
	}
	for key, value := range c.Verifier.Env {
		env[key] = value
	}
	return env
}

// InstanceNames returns the platform names in declaration order
func (c *Config) InstanceNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Platforms))
	for _, platform := range c.Platforms {
		names = append(names, platform.Name)
	}
	return names
}
