package ansible

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/windsorcli/molecule/pkg/constants"
)

// =============================================================================
// Public Methods
// =============================================================================

// ModulesDirectories returns the module search path. Entries of ANSIBLE_LIBRARY come first,
// followed by the bundled, ephemeral, project, user and system module directories.
func (a *Ansible) ModulesDirectories() []string {
	paths := a.envPaths(constants.EnvAnsibleLibrary)
	return append(paths,
		filepath.Join(a.pluginDirectory(), "modules"),
		filepath.Join(a.configHandler.GetEphemeralDirectory(), "library"),
		filepath.Join(a.configHandler.GetProjectDirectory(), "library"),
		filepath.Join(a.homeDirectory(), ".ansible", "plugins", "modules"),
		filepath.Join(constants.SystemAnsibleDir, "plugins", "modules"),
	)
}

// FilterPluginsDirectories returns the filter plugin search path, shaped like ModulesDirectories
func (a *Ansible) FilterPluginsDirectories() []string {
	paths := a.envPaths(constants.EnvAnsibleFilterPlugins)
	return append(paths,
		filepath.Join(a.pluginDirectory(), "filter"),
		filepath.Join(a.configHandler.GetEphemeralDirectory(), "plugins", "filter"),
		filepath.Join(a.configHandler.GetProjectDirectory(), "plugins", "filter"),
		filepath.Join(a.homeDirectory(), ".ansible", "plugins", "filter"),
		filepath.Join(constants.SystemAnsibleDir, "plugins", "filter"),
	)
}

// RolesDirectories returns the role search path. The project's parent is included so a role
// under test resolves by its directory name.
func (a *Ansible) RolesDirectories() []string {
	paths := a.envPaths(constants.EnvAnsibleRolesPath)
	return append(paths,
		filepath.Join(a.configHandler.GetEphemeralDirectory(), "roles"),
		filepath.Dir(filepath.Clean(a.configHandler.GetProjectDirectory())),
		filepath.Join(a.homeDirectory(), ".ansible", "roles"),
		filepath.Join(constants.SystemAnsibleDir, "roles"),
		constants.SystemAnsibleRoles,
	)
}

// CollectionsDirectories returns the collection search path
func (a *Ansible) CollectionsDirectories() []string {
	paths := a.envPaths(constants.EnvAnsibleCollectionsPath)
	return append(paths,
		filepath.Join(a.configHandler.GetEphemeralDirectory(), "collections"),
		filepath.Join(a.homeDirectory(), ".ansible", "collections"),
		filepath.Join(constants.SystemAnsibleDir, "collections"),
		"/etc/ansible/collections",
	)
}

// AbsolutePathFor resolves every colon separated entry of env[key] against the scenario
// directory and joins them back with colons. A missing key is an error.
func (a *Ansible) AbsolutePathFor(env map[string]string, key string) (string, error) {
	value, ok := env[key]
	if !ok {
		return "", fmt.Errorf("%s not found in env", key)
	}
	var paths []string
	for _, p := range strings.Split(value, ":") {
		paths = append(paths, a.absPath(p))
	}
	return strings.Join(paths, ":"), nil
}

// =============================================================================
// Private Methods
// =============================================================================

// pluginDirectory returns the bundled plugins directory
func (a *Ansible) pluginDirectory() string {
	return filepath.Join(a.Directory(), "plugins")
}

// envPaths splits the process variable name on colons and makes each entry absolute
func (a *Ansible) envPaths(name string) []string {
	value := a.shims.Getenv(name)
	if value == "" {
		return []string{}
	}
	var paths []string
	for _, p := range strings.Split(value, ":") {
		if p == "" {
			continue
		}
		paths = append(paths, a.absPath(p))
	}
	return paths
}

// absPath makes p absolute, resolving relative paths against the scenario directory
func (a *Ansible) absPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(a.configHandler.GetScenarioDirectory(), p)
}

// homeDirectory returns the user's home directory, or "~" when it cannot be determined
func (a *Ansible) homeDirectory() string {
	home, err := a.shims.UserHomeDir()
	if err != nil {
		return "~"
	}
	return home
}
