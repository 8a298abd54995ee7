package ansible

import (
	"maps"
	"regexp"
	"strings"

	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/runtime/config"
)

// verbosePermutation matches option names made only of v characters, such as v, vv or vvv
var verbosePermutation = regexp.MustCompile(`^v+$`)

// =============================================================================
// Public Methods
// =============================================================================

// DefaultOptions returns the options passed to every ansible-playbook run. The idempotence
// action also skips tasks tagged molecule-idempotence-notest, and debug mode raises
// verbosity and shows diffs.
func (a *Ansible) DefaultOptions() map[string]any {
	skipTags := constants.DefaultSkipTags
	if a.configHandler.GetAction() == "idempotence" {
		skipTags += "," + constants.IdempotenceSkipTag
	}
	options := map[string]any{"skip-tags": skipTags}
	if a.configHandler.IsDebug() {
		options["vvv"] = true
		options["diff"] = true
	}
	return options
}

// Options returns the user's provisioner options overlaid on DefaultOptions. The create and
// destroy actions only receive the defaults. In debug mode user verbosity options are dropped
// in favour of the debug verbosity.
func (a *Ansible) Options() map[string]any {
	switch a.configHandler.GetAction() {
	case "create", "destroy":
		return a.DefaultOptions()
	}

	user := a.provisionerConfig().Options
	if a.configHandler.IsDebug() {
		user = filterVerbosePermutation(user)
	}

	options := a.DefaultOptions()
	maps.Copy(options, user)
	return options
}

// DefaultConfigOptions returns the ansible.cfg sections molecule writes for every scenario
func (a *Ansible) DefaultConfigOptions() map[string]any {
	return map[string]any{
		"defaults": map[string]any{
			"ansible_managed":       "Ansible managed: Do NOT edit this file manually!",
			"display_failed_stderr": true,
			"forks":                 50,
			"host_key_checking":     false,
			"interpreter_python":    "auto_silent",
			"nocows":                1,
			"retry_files_enabled":   false,
		},
		"ssh_connection": map[string]any{
			"control_path": "%(directory)s/%%h-%%p-%%r",
			"scp_if_ssh":   true,
		},
	}
}

// ConfigOptions returns DefaultConfigOptions deep merged with provisioner.config_options
func (a *Ansible) ConfigOptions() map[string]any {
	return config.DeepMerge(a.DefaultConfigOptions(), a.provisionerConfig().ConfigOptions)
}

// ConnectionOptions returns the driver's connection variables for instance overlaid with
// provisioner.connection_options
func (a *Ansible) ConnectionOptions(instance string) map[string]any {
	options := a.driverConnectionOptions(instance)
	maps.Copy(options, a.provisionerConfig().ConnectionOptions)
	return options
}

// DefaultEnv returns the process environment with molecule's variables and the Ansible
// search paths and config file set
func (a *Ansible) DefaultEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range a.shims.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	maps.Copy(env, a.configHandler.GetEnv())

	env[constants.EnvAnsibleConfig] = a.ConfigFile()
	env[constants.EnvAnsibleRolesPath] = strings.Join(a.RolesDirectories(), ":")
	env[constants.EnvAnsibleCollectionsPath] = strings.Join(a.CollectionsDirectories(), ":")
	env[constants.EnvAnsibleLibrary] = strings.Join(a.ModulesDirectories(), ":")
	env[constants.EnvAnsibleFilterPlugins] = strings.Join(a.FilterPluginsDirectories(), ":")
	return env
}

// Env returns DefaultEnv overlaid with provisioner.env. Search path variables set in
// provisioner.env are resolved against the scenario directory and appended to the defaults
// instead of replacing them.
func (a *Ansible) Env() map[string]string {
	defaults := a.DefaultEnv()
	user := a.provisionerConfig().Env

	env := maps.Clone(defaults)
	maps.Copy(env, user)

	for _, key := range []string{
		constants.EnvAnsibleRolesPath,
		constants.EnvAnsibleLibrary,
		constants.EnvAnsibleFilterPlugins,
	} {
		env[key] = defaults[key]
		if path, err := a.AbsolutePathFor(user, key); err == nil {
			env[key] += ":" + path
		}
	}
	return env
}

// =============================================================================
// Helpers
// =============================================================================

// filterVerbosePermutation returns a copy of options without v, vv, vvv and similar keys
func filterVerbosePermutation(options map[string]any) map[string]any {
	result := make(map[string]any, len(options))
	for key, value := range options {
		if verbosePermutation.MatchString(key) {
			continue
		}
		result[key] = value
	}
	return result
}
