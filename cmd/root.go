package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/molecule/pkg/provisioner"
	"github.com/windsorcli/molecule/pkg/runtime"
)

// contextKey keys the values tests place on the command context
type contextKey string

const (
	runtimeOverridesKey     contextKey = "runtimeOverrides"
	provisionerOverridesKey contextKey = "provisionerOverrides"
)

var (
	debug        bool
	scenarioName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "molecule",
	Short:         "Test Ansible roles against disposable instances",
	Long:          "Molecule runs a scenario's create, converge, verify and destroy playbooks through ansible-playbook.",
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Context() == nil {
			cmd.SetContext(context.Background())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&scenarioName, "scenario-name", "s", "", "Name of the scenario to target")
}

// Execute adds all child commands to the root command and runs it. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode returns the process exit status for an error returned by Execute
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *provisioner.SysExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// =============================================================================
// Helpers
// =============================================================================

// loadScenario builds the runtime for the selected scenario and its provisioner. Arguments
// after -- are passed to ansible-playbook.
func loadScenario(cmd *cobra.Command, args []string) (*runtime.Runtime, provisioner.Provisioner, error) {
	var deps []*runtime.Dependencies
	if overridesVal := cmd.Context().Value(runtimeOverridesKey); overridesVal != nil {
		deps = []*runtime.Dependencies{overridesVal.(*runtime.Dependencies)}
	}

	rt := runtime.NewRuntime(deps...)
	if err := rt.LoadLogger(debug).
		LoadShell().
		LoadConfigHandler(scenarioName).
		LoadToolsManager().
		Do(); err != nil {
		return nil, nil, err
	}

	rt.Shell.SetVerbosity(debug)
	rt.ConfigHandler.SetDebug(debug)
	rt.ConfigHandler.SetAnsibleArgs(ansibleArgs(cmd, args))

	if overridesVal := cmd.Context().Value(provisionerOverridesKey); overridesVal != nil {
		return rt, overridesVal.(provisioner.Provisioner), nil
	}
	p, err := provisioner.NewProvisioner(rt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create provisioner: %w", err)
	}
	return rt, p, nil
}

// ansibleArgs returns the arguments given after --
func ansibleArgs(cmd *cobra.Command, args []string) []string {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 && dash <= len(args) {
		return args[dash:]
	}
	return args
}
