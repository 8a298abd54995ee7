package runtime

import (
	"fmt"

	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/logging"
	"github.com/windsorcli/molecule/pkg/runtime/config"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
	"github.com/windsorcli/molecule/pkg/runtime/tools"
)

// =============================================================================
// Loader Methods
// =============================================================================

// LoadLogger installs the global logger. MOLECULE_LOG_LEVEL and MOLECULE_LOG_FORMAT select
// the level and format; debug raises the level to debug.
func (r *Runtime) LoadLogger(debug bool) *Runtime {
	if r.err != nil {
		return r
	}
	if r.Logger != nil {
		return r
	}

	level := "info"
	if value, ok := r.Shims.LookupEnv(constants.EnvLogLevel); ok && value != "" {
		level = value
	}
	format, _ := r.Shims.LookupEnv(constants.EnvLogFormat)

	if err := logging.Init(level, format, r.Shims.Stderr()); err != nil {
		r.err = fmt.Errorf("failed to create logger: %w", err)
		return r
	}
	if debug {
		if err := logging.SetLevel("debug"); err != nil {
			r.err = fmt.Errorf("failed to set log level: %w", err)
			return r
		}
	}
	r.Logger = logging.L()
	return r
}

// LoadShell loads the shell dependency, creating a new default shell if none exists.
func (r *Runtime) LoadShell() *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil {
		r.Shell = shell.NewDefaultShell()
	}
	return r
}

// LoadConfigHandler loads the scenario's molecule.yml. The project root defaults to the
// working directory and an empty scenarioName selects the default scenario.
func (r *Runtime) LoadConfigHandler(scenarioName string) *Runtime {
	if r.err != nil {
		return r
	}
	if r.Shell == nil {
		r.err = fmt.Errorf("shell not loaded - call LoadShell() first")
		return r
	}

	if r.ProjectRoot == "" {
		wd, err := r.Shims.Getwd()
		if err != nil {
			r.err = fmt.Errorf("error getting working directory: %w", err)
			return r
		}
		r.ProjectRoot = wd
	}
	if scenarioName == "" {
		scenarioName = constants.DefaultScenarioName
	}

	if r.ConfigHandler == nil {
		r.ConfigHandler = config.NewConfigHandler(r.ProjectRoot)
	}
	if r.ConfigHandler.IsLoaded() {
		return r
	}
	if err := r.ConfigHandler.LoadConfig(scenarioName); err != nil {
		r.err = fmt.Errorf("failed to load scenario %s: %w", scenarioName, err)
		return r
	}
	return r
}

// LoadToolsManager loads the tools manager used to check ansible-playbook.
func (r *Runtime) LoadToolsManager() *Runtime {
	if r.err != nil {
		return r
	}
	if r.ConfigHandler == nil {
		r.err = fmt.Errorf("config handler not loaded - call LoadConfigHandler() first")
		return r
	}
	if r.ToolsManager == nil {
		r.ToolsManager = tools.NewToolsManager(r.ConfigHandler, r.Shell)
	}
	return r
}

// CheckTools verifies the required tools are installed.
func (r *Runtime) CheckTools() *Runtime {
	if r.err != nil {
		return r
	}
	if r.ToolsManager == nil {
		r.err = fmt.Errorf("tools manager not loaded - call LoadToolsManager() first")
		return r
	}
	if err := r.ToolsManager.Check(); err != nil {
		r.err = fmt.Errorf("error checking tools: %w", err)
		return r
	}
	return r
}
