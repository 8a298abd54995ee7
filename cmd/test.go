package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/windsorcli/molecule/pkg/provisioner"
	"github.com/windsorcli/molecule/pkg/runtime/config"
)

var destroyStrategy string

var testCmd = &cobra.Command{
	Use:          "test [-- ansible-args...]",
	Short:        "Run the scenario's full test sequence",
	Long:         "Run every action in scenario.test_sequence, destroying the instances afterwards. Arguments after -- are passed to ansible-playbook.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if destroyStrategy != "always" && destroyStrategy != "never" {
			return fmt.Errorf("invalid destroy strategy %q: must be always or never", destroyStrategy)
		}

		rt, p, err := loadScenario(cmd, args)
		if err != nil {
			return err
		}
		if err := rt.CheckTools().Do(); err != nil {
			return err
		}

		sequence := config.DefaultTestSequence
		if c := rt.ConfigHandler.GetConfig(); c != nil && c.Scenario != nil && len(c.Scenario.TestSequence) > 0 {
			sequence = c.Scenario.TestSequence
		}
		if destroyStrategy == "never" {
			sequence = withoutAction(sequence, "destroy")
		}

		runner := provisioner.NewRunner(rt.ConfigHandler, p, rt.Logger)
		return runner.Test(sequence, destroyStrategy == "always")
	},
}

// withoutAction returns sequence with every occurrence of action removed
func withoutAction(sequence []string, action string) []string {
	result := make([]string, 0, len(sequence))
	for _, a := range sequence {
		if a != action {
			result = append(result, a)
		}
	}
	return result
}

func init() {
	testCmd.Flags().StringVar(&destroyStrategy, "destroy", "always", "Destroy strategy: always or never")
	rootCmd.AddCommand(testCmd)
}
