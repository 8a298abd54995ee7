package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/windsorcli/molecule/api/v1alpha1"
	"github.com/windsorcli/molecule/pkg/constants"
)

// The ConfigHandler is the single source of scenario state for the rest of the application.
// It loads a scenario's molecule.yml, expands environment references in it, merges it onto the
// built-in defaults and exposes the typed result together with the directories derived from the
// project and scenario names. It also carries per-invocation state such as the running action,
// debug mode and extra ansible-playbook arguments passed on the command line.

type ConfigHandler interface {
	LoadConfig(scenarioName string) error
	LoadConfigString(content string) error
	IsLoaded() bool
	GetConfig() *v1alpha1.Config

	GetAction() string
	SetAction(action string)
	IsDebug() bool
	SetDebug(debug bool)
	GetAnsibleArgs() []string
	SetAnsibleArgs(args []string)

	GetProjectDirectory() string
	GetMoleculeFile() string
	GetScenarioName() string
	GetScenarioDirectory() string
	GetEphemeralDirectory() string
	GetInventoryDirectory() string
	GetInstanceConfig() string
	GetDataDirectory() string
	GetDriverName() string
	GetEnv() map[string]string
}

// configHandler is the YAML backed implementation of ConfigHandler
type configHandler struct {
	projectDirectory string
	scenarioName     string
	action           string
	debug            bool
	ansibleArgs      []string
	loaded           bool
	shims            *Shims
	data             map[string]any
	config           *v1alpha1.Config
}

// =============================================================================
// Constructor
// =============================================================================

// NewConfigHandler creates a ConfigHandler rooted at the given project directory.
func NewConfigHandler(projectDirectory string) ConfigHandler {
	return &configHandler{
		projectDirectory: projectDirectory,
		scenarioName:     constants.DefaultScenarioName,
		shims:            NewShims(),
		data:             make(map[string]any),
		config:           &v1alpha1.Config{},
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// LoadConfig reads molecule/<scenarioName>/molecule.yml below the project directory and
// merges it onto the defaults. An empty scenarioName selects the default scenario.
func (c *configHandler) LoadConfig(scenarioName string) error {
	if scenarioName != "" {
		c.scenarioName = scenarioName
	}

	moleculeFile := c.GetMoleculeFile()
	if _, err := c.shims.Stat(moleculeFile); err != nil {
		return fmt.Errorf("scenario %q not found: %w", c.scenarioName, err)
	}

	fileData, err := c.shims.ReadFile(moleculeFile)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", moleculeFile, err)
	}

	return c.LoadConfigString(string(fileData))
}

// LoadConfigString expands environment references in content, merges the resulting YAML
// mapping onto the defaults and decodes it into the typed configuration.
func (c *configHandler) LoadConfigString(content string) error {
	defaults, err := c.toMap(DefaultConfig)
	if err != nil {
		return fmt.Errorf("error converting defaults: %w", err)
	}

	var dataMap map[string]any
	if content != "" {
		expanded := os.Expand(content, c.lookupEnv)
		if err := c.shims.YamlUnmarshal([]byte(expanded), &dataMap); err != nil {
			return fmt.Errorf("error unmarshalling yaml: %w", err)
		}
	}

	c.data = deepMerge(defaults, dataMap)

	merged, err := c.shims.YamlMarshal(c.data)
	if err != nil {
		return fmt.Errorf("error marshalling merged config: %w", err)
	}
	var config v1alpha1.Config
	if err := c.shims.YamlUnmarshal(merged, &config); err != nil {
		return fmt.Errorf("error decoding config: %w", err)
	}

	c.config = &config
	c.loaded = true
	return nil
}

// IsLoaded reports whether a scenario configuration has been loaded
func (c *configHandler) IsLoaded() bool {
	return c.loaded
}

// GetConfig returns the typed configuration. Callers may mutate it in place.
func (c *configHandler) GetConfig() *v1alpha1.Config {
	return c.config
}

// GetAction returns the action currently being run
func (c *configHandler) GetAction() string {
	return c.action
}

// SetAction records the action currently being run
func (c *configHandler) SetAction(action string) {
	c.action = action
}

// IsDebug reports whether debug mode is on
func (c *configHandler) IsDebug() bool {
	return c.debug
}

// SetDebug turns debug mode on or off
func (c *configHandler) SetDebug(debug bool) {
	c.debug = debug
}

// GetAnsibleArgs returns extra ansible-playbook arguments given on the command line
func (c *configHandler) GetAnsibleArgs() []string {
	return c.ansibleArgs
}

// SetAnsibleArgs records extra ansible-playbook arguments given on the command line
func (c *configHandler) SetAnsibleArgs(args []string) {
	c.ansibleArgs = args
}

// GetProjectDirectory returns the project root
func (c *configHandler) GetProjectDirectory() string {
	return c.projectDirectory
}

// GetMoleculeFile returns the path of the scenario's molecule.yml
func (c *configHandler) GetMoleculeFile() string {
	return filepath.Join(c.GetScenarioDirectory(), constants.MoleculeFileName)
}

// GetScenarioName returns the scenario name
func (c *configHandler) GetScenarioName() string {
	return c.scenarioName
}

// GetScenarioDirectory returns <project>/molecule/<scenario>
func (c *configHandler) GetScenarioDirectory() string {
	return filepath.Join(c.projectDirectory, constants.MoleculeDirName, c.scenarioName)
}

// GetEphemeralDirectory returns the per scenario cache directory. MOLECULE_EPHEMERAL_DIRECTORY
// overrides the default of <cache>/molecule/<project name>/<scenario>.
func (c *configHandler) GetEphemeralDirectory() string {
	if dir, ok := c.shims.LookupEnv(constants.EnvEphemeralDirectory); ok && dir != "" {
		return dir
	}
	return filepath.Join(c.xdgDir("XDG_CACHE_HOME", ".cache"), "molecule", filepath.Base(c.projectDirectory), c.scenarioName)
}

// GetInventoryDirectory returns <ephemeral>/inventory
func (c *configHandler) GetInventoryDirectory() string {
	return filepath.Join(c.GetEphemeralDirectory(), constants.InventoryDirName)
}

// GetInstanceConfig returns the path of the instance config file written by create playbooks
func (c *configHandler) GetInstanceConfig() string {
	return filepath.Join(c.GetEphemeralDirectory(), constants.InstanceConfigName)
}

// GetDataDirectory returns the root of molecule's bundled data. MOLECULE_DATA_DIRECTORY
// overrides the default of $XDG_DATA_HOME or ~/.local/share.
func (c *configHandler) GetDataDirectory() string {
	if dir, ok := c.shims.LookupEnv(constants.EnvDataDirectory); ok && dir != "" {
		return dir
	}
	return c.xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// GetDriverName returns the configured driver name
func (c *configHandler) GetDriverName() string {
	if name := c.config.GetDriverName(); name != "" {
		return name
	}
	return constants.DefaultDriverName
}

// GetEnv returns the MOLECULE_* variables exported to every ansible-playbook run
func (c *configHandler) GetEnv() map[string]string {
	env := c.baseEnv()
	env["MOLECULE_DEBUG"] = strconv.FormatBool(c.debug)
	env["MOLECULE_INVENTORY_FILE"] = filepath.Join(c.GetInventoryDirectory(), constants.InventoryFileName)
	env["MOLECULE_INSTANCE_CONFIG"] = c.GetInstanceConfig()
	env["MOLECULE_DRIVER_NAME"] = c.GetDriverName()
	if c.config.Provisioner != nil {
		env["MOLECULE_PROVISIONER_NAME"] = c.config.Provisioner.GetName()
	}
	if c.config.Verifier != nil && c.config.Verifier.Name != nil {
		env["MOLECULE_VERIFIER_NAME"] = *c.config.Verifier.Name
	}
	return env
}

// =============================================================================
// Private Methods
// =============================================================================

// baseEnv holds the variables that are known before molecule.yml is read and may be
// referenced from it
func (c *configHandler) baseEnv() map[string]string {
	return map[string]string{
		"MOLECULE_FILE":                c.GetMoleculeFile(),
		"MOLECULE_PROJECT_DIRECTORY":   c.projectDirectory,
		"MOLECULE_SCENARIO_NAME":       c.scenarioName,
		"MOLECULE_SCENARIO_DIRECTORY":  c.GetScenarioDirectory(),
		"MOLECULE_EPHEMERAL_DIRECTORY": c.GetEphemeralDirectory(),
	}
}

// lookupEnv resolves a reference found in molecule.yml. It supports ${NAME:-default} and
// maps $$ to a literal dollar sign.
func (c *configHandler) lookupEnv(name string) string {
	if name == "$" {
		return "$"
	}
	fallback := ""
	if key, def, ok := strings.Cut(name, ":-"); ok {
		name, fallback = key, def
	}
	if value, ok := c.baseEnv()[name]; ok {
		return value
	}
	if value, ok := c.shims.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// xdgDir returns the XDG directory named by envVar or the home relative fallback
func (c *configHandler) xdgDir(envVar, homeRelative string) string {
	if dir, ok := c.shims.LookupEnv(envVar); ok && dir != "" {
		return dir
	}
	home, err := c.shims.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), homeRelative)
	}
	return filepath.Join(home, homeRelative)
}

// toMap converts a typed config into a generic map through its YAML form
func (c *configHandler) toMap(config v1alpha1.Config) (map[string]any, error) {
	data, err := c.shims.YamlMarshal(config)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := c.shims.YamlUnmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// =============================================================================
// Helpers
// =============================================================================

// deepMerge returns base overlaid with overlay. Nested maps are merged recursively, every
// other value in overlay replaces the one in base. Neither input is modified.
func deepMerge(base, overlay map[string]any) map[string]any {
	result := maps.Clone(base)
	if result == nil {
		result = make(map[string]any)
	}
	for k, overlayValue := range overlay {
		if baseValue, exists := result[k]; exists {
			if baseMap, baseIsMap := baseValue.(map[string]any); baseIsMap {
				if overlayMap, overlayIsMap := overlayValue.(map[string]any); overlayIsMap {
					result[k] = deepMerge(baseMap, overlayMap)
					continue
				}
			}
		}
		result[k] = overlayValue
	}
	return result
}

// DeepMerge exposes the merge used for scenario files to other packages
func DeepMerge(base, overlay map[string]any) map[string]any {
	return deepMerge(base, overlay)
}

// Ensure configHandler implements the ConfigHandler interface
var _ ConfigHandler = (*configHandler)(nil)
