package provisioner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/windsorcli/molecule/pkg/runtime/config"
	"go.uber.org/zap"
)

var (
	// changedPattern finds a non-zero changed count in a play recap
	changedPattern = regexp.MustCompile(`changed=[1-9][0-9]*`)
	// ansiPattern matches terminal color escapes
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	// bracketPattern captures the first [...] group on a line
	bracketPattern = regexp.MustCompile(`\[(.*?)\]`)
)

// =============================================================================
// Types
// =============================================================================

// Runner executes scenario actions against a Provisioner. Every action records itself on
// the config handler, then refreshes ansible.cfg and the inventory before running.
type Runner struct {
	configHandler config.ConfigHandler
	provisioner   Provisioner
	logger        *zap.Logger
}

// =============================================================================
// Constructor
// =============================================================================

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(configHandler config.ConfigHandler, provisioner Provisioner, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		configHandler: configHandler,
		provisioner:   provisioner,
		logger:        logger,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Run executes action. The dependency action is accepted and skipped.
func (r *Runner) Run(action string) error {
	r.configHandler.SetAction(action)
	r.logger.Info(fmt.Sprintf("Running %s > %s", r.configHandler.GetScenarioName(), action))

	if action == "dependency" {
		r.logger.Warn("Skipping, dependency management is not supported.")
		return nil
	}

	if err := r.provisioner.WriteConfig(); err != nil {
		return fmt.Errorf("error writing ansible config: %w", err)
	}
	if err := r.provisioner.ManageInventory(); err != nil {
		return err
	}

	switch action {
	case "check":
		return r.provisioner.Check()
	case "cleanup":
		return r.provisioner.Cleanup()
	case "converge":
		_, err := r.provisioner.Converge("")
		return err
	case "create":
		return r.provisioner.Create()
	case "destroy":
		return r.provisioner.Destroy()
	case "idempotence":
		return r.idempotence()
	case "prepare":
		return r.provisioner.Prepare()
	case "side_effect":
		return r.provisioner.SideEffect()
	case "syntax":
		return r.provisioner.Syntax()
	case "verify":
		return r.provisioner.Verify()
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

// Test runs sequence in order, stopping at the first failure. With destroyOnFailure set a
// failed sequence still runs destroy before the failure is returned.
func (r *Runner) Test(sequence []string, destroyOnFailure bool) error {
	r.logger.Info(fmt.Sprintf("%s scenario test matrix: %s", r.configHandler.GetScenarioName(), strings.Join(sequence, ", ")))

	for _, action := range sequence {
		err := r.Run(action)
		if err == nil {
			continue
		}
		if destroyOnFailure && action != "destroy" {
			if destroyErr := r.Run("destroy"); destroyErr != nil {
				r.logger.Error("destroy after failure failed", zap.Error(destroyErr))
			}
		}
		return err
	}
	return nil
}

// =============================================================================
// Private Methods
// =============================================================================

// idempotence converges again and fails when any task reports a change
func (r *Runner) idempotence() error {
	output, err := r.provisioner.Converge("")
	if err != nil {
		return err
	}

	if !changedPattern.MatchString(output) {
		r.logger.Info("Idempotence completed successfully.")
		return nil
	}

	message := "Idempotence test failed because of the following tasks:"
	if tasks := nonIdempotentTasks(output); len(tasks) > 0 {
		message += "\n" + strings.Join(tasks, "\n")
	}
	r.logger.Error(message)
	return &SysExitError{Code: 1, Message: message}
}

// =============================================================================
// Helpers
// =============================================================================

// nonIdempotentTasks lists "* [host] => task" for every changed result in a playbook run
func nonIdempotentTasks(output string) []string {
	output = ansiPattern.ReplaceAllString(output, "")

	var tasks []string
	var task string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "TASK"), strings.HasPrefix(line, "RUNNING HANDLER"):
			task = bracketGroup(line)
		case strings.HasPrefix(line, "changed"):
			tasks = append(tasks, fmt.Sprintf("* [%s] => %s", bracketGroup(line), task))
		}
	}
	return tasks
}

// bracketGroup returns the contents of the first [...] in line
func bracketGroup(line string) string {
	if match := bracketPattern.FindStringSubmatch(line); match != nil {
		return match[1]
	}
	return ""
}
