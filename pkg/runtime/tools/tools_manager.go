package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/runtime/config"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
)

// The ToolsManager verifies the external tools a scenario run depends on.
// ansible-playbook must be on the PATH and at least the minimum supported version.
// The version check runs behind the shell's progress spinner.

type ToolsManager interface {
	Check() error
	GetAnsiblePlaybookCommand() string
}

// BaseToolsManager is the base implementation of the ToolsManager interface.
type BaseToolsManager struct {
	configHandler config.ConfigHandler
	shell         shell.Shell
}

// =============================================================================
// Constructor
// =============================================================================

// NewToolsManager creates a new ToolsManager instance with the given config handler and shell.
func NewToolsManager(configHandler config.ConfigHandler, shell shell.Shell) *BaseToolsManager {
	return &BaseToolsManager{
		configHandler: configHandler,
		shell:         shell,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Check checks that appropriate tools are installed.
func (t *BaseToolsManager) Check() error {
	if err := t.checkAnsiblePlaybook(); err != nil {
		return fmt.Errorf("ansible-playbook check failed: %w", err)
	}
	return nil
}

// GetAnsiblePlaybookCommand returns the command used to run playbooks
func (t *BaseToolsManager) GetAnsiblePlaybookCommand() string {
	return constants.AnsiblePlaybookCommand
}

// =============================================================================
// Private Methods
// =============================================================================

// checkAnsiblePlaybook ensures ansible-playbook is on the PATH and reports a version no older
// than constants.MinimumVersionAnsible.
func (t *BaseToolsManager) checkAnsiblePlaybook() error {
	command := t.GetAnsiblePlaybookCommand()
	if _, err := t.shell.LookPath(command); err != nil {
		return fmt.Errorf("%s is not available in the PATH", command)
	}

	output, err := t.shell.ExecProgress("🛠️ Checking "+command+" version", command, "--version")
	if err != nil {
		return fmt.Errorf("failed to run %s --version: %w", command, err)
	}

	version := extractVersion(output)
	if version == "" {
		return fmt.Errorf("failed to extract %s version", command)
	}

	if compareVersion(version, constants.MinimumVersionAnsible) < 0 {
		return fmt.Errorf("%s version %s is below the minimum required version %s", command, version, constants.MinimumVersionAnsible)
	}

	return nil
}

// compareVersion is a helper function to compare two version strings.
// It returns -1 if version1 < version2, 0 if version1 == version2, and 1 if version1 > version2.
func compareVersion(version1, version2 string) int {
	splitVersion := func(version string) (main, preRelease string) {
		parts := strings.SplitN(version, "-", 2)
		main = parts[0]
		if len(parts) > 1 {
			preRelease = parts[1]
		}
		return
	}

	main1, pre1 := splitVersion(version1)
	main2, pre2 := splitVersion(version2)

	v1 := strings.Split(main1, ".")
	v2 := strings.Split(main2, ".")
	length := max(len(v1), len(v2))

	for i := range length {
		var comp1, comp2 int
		if i < len(v1) {
			comp1, _ = strconv.Atoi(v1[i])
		}
		if i < len(v2) {
			comp2, _ = strconv.Atoi(v2[i])
		}
		if comp1 < comp2 {
			return -1
		}
		if comp1 > comp2 {
			return 1
		}
	}

	if pre1 == "" && pre2 == "" {
		return 0
	}
	if pre1 == "" {
		return 1
	}
	if pre2 == "" {
		return -1
	}
	return strings.Compare(pre1, pre2)
}

// extractVersion pulls the first dotted version out of a tool's output. ansible prints
// two-component versions for some pre-releases, so the patch component is optional.
func extractVersion(output string) string {
	re := regexp.MustCompile(`\d+\.\d+(\.\d+)?`)
	return re.FindString(output)
}

// Ensure BaseToolsManager implements ToolsManager.
var _ ToolsManager = (*BaseToolsManager)(nil)
