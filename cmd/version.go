package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/windsorcli/molecule/pkg/constants"
)

// Goos returns the operating system, can be mocked for testing
var Goos = runtime.GOOS

// versionCmd prints the build of molecule and the ansible release its provisioner targets
var versionCmd = &cobra.Command{
	Use:          "version",
	Short:        "Display the current version",
	Long:         "Display the molecule build, the platform it runs on and the oldest ansible-core release the ansible provisioner supports",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Version: %s\n", constants.Version)
		cmd.Printf("Commit SHA: %s\n", constants.CommitSHA)
		cmd.Printf("Platform: %s/%s\n", Goos, runtime.GOARCH)
		cmd.Printf("Provisioner: %s (%s >= %s)\n", constants.DefaultProvisionerName, constants.AnsiblePlaybookCommand, constants.MinimumVersionAnsible)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
