package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/molecule/pkg/provisioner"
)

// actionCommands lists the single action subcommands as command name, action and description
var actionCommands = []struct {
	use    string
	action string
	short  string
}{
	{"check", "check", "Run the converge playbook in check mode"},
	{"cleanup", "cleanup", "Run the cleanup playbook"},
	{"converge", "converge", "Run the converge playbook against the instances"},
	{"create", "create", "Create the scenario's instances"},
	{"destroy", "destroy", "Destroy the scenario's instances"},
	{"idempotence", "idempotence", "Converge again and fail if anything changed"},
	{"prepare", "prepare", "Run the prepare playbook"},
	{"side-effect", "side_effect", "Run the side_effect playbook"},
	{"syntax", "syntax", "Check the converge playbook's syntax"},
	{"verify", "verify", "Run the verify playbook"},
}

// newActionCmd creates the subcommand that runs action for the selected scenario
func newActionCmd(use, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:          use + " [-- ansible-args...]",
		Short:        short,
		Long:         fmt.Sprintf("%s. Arguments after -- are passed to ansible-playbook.", short),
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, p, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			if err := rt.CheckTools().Do(); err != nil {
				return err
			}
			return provisioner.NewRunner(rt.ConfigHandler, p, rt.Logger).Run(action)
		},
	}
}

func init() {
	for _, c := range actionCommands {
		rootCmd.AddCommand(newActionCmd(c.use, c.action, c.short))
	}
}
