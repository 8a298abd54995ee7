package ansible

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
	"go.uber.org/zap"
)

// The Playbook runs one ansible-playbook invocation.
// Bake assembles the command line from the provisioner options, extra CLI arguments and the
// user's ansible args; Execute runs it in the scenario directory with the provisioner
// environment and turns a failed run into a SysExitError carrying ansible's return code.

// =============================================================================
// Types
// =============================================================================

// Playbook is a single ansible-playbook invocation
type Playbook interface {
	Bake()
	AddCLIArg(name string, value any)
	AddEnvArg(name, value string)
	Execute() (string, error)
}

// AnsiblePlaybook is the Playbook implementation backed by the ansible-playbook command
type AnsiblePlaybook struct {
	playbook    string
	provisioner *Ansible
	cli         map[string]any
	env         map[string]string
	command     []string
	baked       bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewAnsiblePlaybook creates a Playbook for playbook running with the provisioner environment
func NewAnsiblePlaybook(playbook string, provisioner *Ansible) *AnsiblePlaybook {
	return &AnsiblePlaybook{
		playbook:    playbook,
		provisioner: provisioner,
		cli:         make(map[string]any),
		env:         provisioner.Env(),
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Bake builds the ansible-playbook command line. become is only kept for the converge
// playbook, and user ansible args are not passed to create and destroy.
func (p *AnsiblePlaybook) Bake() {
	p.baked = true
	if p.playbook == "" {
		return
	}

	p.AddCLIArg("inventory", p.provisioner.InventoryDirectory())

	options := p.provisioner.Options()
	maps.Copy(options, p.cli)
	verbose := verboseFlag(options)

	if p.playbook != p.provisioner.Playbooks().Converge() {
		delete(options, "become")
	}

	var ansibleArgs []string
	switch p.provisioner.configHandler.GetAction() {
	case "create", "destroy":
	default:
		ansibleArgs = append(ansibleArgs, p.provisioner.provisionerConfig().AnsibleArgs...)
		ansibleArgs = append(ansibleArgs, p.provisioner.configHandler.GetAnsibleArgs()...)
	}

	command := []string{constants.AnsiblePlaybookCommand}
	command = append(command, dictToArgs(options)...)
	command = append(command, verbose...)
	command = append(command, ansibleArgs...)
	command = append(command, p.playbook)
	p.command = command
}

// AddCLIArg sets a command line option. Empty and false values are ignored.
func (p *AnsiblePlaybook) AddCLIArg(name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case bool:
		if !v {
			return
		}
	case string:
		if v == "" {
			return
		}
	}
	p.cli[name] = value
}

// AddEnvArg sets an environment variable for the run, overriding the provisioner environment
func (p *AnsiblePlaybook) AddEnvArg(name, value string) {
	p.env[name] = value
}

// Command returns the baked command line
func (p *AnsiblePlaybook) Command() []string {
	return p.command
}

// Execute bakes the command if needed and runs it, returning its output. A missing playbook
// is skipped with a warning. A non-zero exit is returned as a SysExitError with ansible's
// return code.
func (p *AnsiblePlaybook) Execute() (string, error) {
	if !p.baked {
		p.Bake()
	}

	action := p.provisioner.configHandler.GetAction()
	if p.playbook == "" {
		p.provisioner.logger.Warn(fmt.Sprintf("Skipping, %s action has no playbook.", action))
		return "", nil
	}

	p.provisioner.logger.Debug("running ansible-playbook",
		zap.String("action", action),
		zap.Strings("command", p.command),
	)

	output, err := p.provisioner.shell.ExecWithEnv(
		p.provisioner.configHandler.GetScenarioDirectory(),
		p.env,
		p.command[0],
		p.command[1:]...,
	)
	if err != nil {
		code := shell.ExitCode(err)
		return output, sysExit(p.provisioner.logger,
			fmt.Sprintf("Ansible return code was %d, command was: %s", code, strings.Join(p.command, " ")),
			code,
		)
	}
	return output, nil
}

// =============================================================================
// Helpers
// =============================================================================

// verboseFlag removes the first of v, vv or vvv set in options, along with verbose, and
// returns it as a flag
func verboseFlag(options map[string]any) []string {
	for _, v := range []string{"v", "vv", "vvv"} {
		if enabled, _ := options[v].(bool); enabled {
			delete(options, v)
			delete(options, "verbose")
			return []string{"-" + v}
		}
	}
	return nil
}

// dictToArgs renders options as command line flags in key order. Single letter keys take one
// dash and the rest two, underscores become dashes, true is a bare flag and false is dropped.
// Long options carry their value as --key=value, short options as a separate argument.
func dictToArgs(options map[string]any) []string {
	var args []string
	for _, key := range slices.Sorted(maps.Keys(options)) {
		value := options[key]
		if b, ok := value.(bool); ok && !b {
			continue
		}
		flag := strings.ReplaceAll(key, "_", "-")
		isTrue := false
		if b, ok := value.(bool); ok && b {
			isTrue = true
		}
		switch {
		case len(key) == 1 && isTrue:
			args = append(args, "-"+flag)
		case len(key) == 1:
			args = append(args, "-"+flag, fmt.Sprint(value))
		case isTrue:
			args = append(args, "--"+flag)
		default:
			args = append(args, fmt.Sprintf("--%s=%v", flag, value))
		}
	}
	return args
}

// Ensure AnsiblePlaybook implements the Playbook interface
var _ Playbook = (*AnsiblePlaybook)(nil)
