package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/windsorcli/molecule/cmd"
	"github.com/windsorcli/molecule/pkg/logging"
	"github.com/windsorcli/molecule/pkg/provisioner"
)

func main() {
	err := cmd.Execute()
	_ = logging.Sync()
	if err != nil {
		// SysExitError messages were already logged where they were raised
		var exitErr *provisioner.SysExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
