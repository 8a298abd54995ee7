package ansible

// The ansible package provides the Ansible provisioner.
// It turns a scenario's molecule.yml into ansible-playbook invocations: options become
// command line flags, provisioner env and search paths become the process environment,
// and the inventory section is written to the ephemeral inventory directory that every
// run points at. Each action resolves its playbook and runs it through a Playbook.

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/windsorcli/molecule/api/v1alpha1"
	"github.com/windsorcli/molecule/api/v1alpha1/provisioner"
	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/runtime/config"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
	"go.uber.org/zap"
)

// =============================================================================
// Types
// =============================================================================

// Ansible is the provisioner that drives ansible-playbook
type Ansible struct {
	configHandler config.ConfigHandler
	shell         shell.Shell
	logger        *zap.Logger
	shims         *Shims
	playbooks     *Playbooks

	// NewPlaybook builds the Playbook run by an action
	NewPlaybook func(playbook string) Playbook
}

// =============================================================================
// Constructor
// =============================================================================

// NewAnsible creates the Ansible provisioner. A nil logger discards log output.
func NewAnsible(configHandler config.ConfigHandler, shell shell.Shell, logger *zap.Logger) *Ansible {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Ansible{
		configHandler: configHandler,
		shell:         shell,
		logger:        logger.With(zap.String("provisioner", constants.DefaultProvisionerName)),
		shims:         NewShims(),
	}
	a.playbooks = NewPlaybooks(configHandler, a.shims)
	a.NewPlaybook = func(playbook string) Playbook {
		return NewAnsiblePlaybook(playbook, a)
	}
	return a
}

// =============================================================================
// Properties
// =============================================================================

// Name returns the provisioner name
func (a *Ansible) Name() string {
	return constants.DefaultProvisionerName
}

// Directory returns the provisioner's bundled data directory
func (a *Ansible) Directory() string {
	return filepath.Join(a.configHandler.GetDataDirectory(), "molecule", "provisioner", "ansible")
}

// InventoryDirectory returns the directory passed to ansible-playbook as --inventory
func (a *Ansible) InventoryDirectory() string {
	return a.configHandler.GetInventoryDirectory()
}

// InventoryFile returns the path of the generated inventory
func (a *Ansible) InventoryFile() string {
	return filepath.Join(a.InventoryDirectory(), constants.InventoryFileName)
}

// ConfigFile returns the path of the generated ansible.cfg
func (a *Ansible) ConfigFile() string {
	return filepath.Join(a.configHandler.GetEphemeralDirectory(), constants.AnsibleConfigName)
}

// Playbooks returns the playbook resolver for this scenario
func (a *Ansible) Playbooks() *Playbooks {
	return a.playbooks
}

// Hosts returns the user supplied inventory tree
func (a *Ansible) Hosts() map[string]any {
	return a.inventoryConfig().Hosts
}

// HostVars returns the host_vars section of the inventory
func (a *Ansible) HostVars() map[string]provisioner.VarsList {
	return a.inventoryConfig().HostVars
}

// GroupVars returns the group_vars section of the inventory
func (a *Ansible) GroupVars() map[string]provisioner.VarsList {
	return a.inventoryConfig().GroupVars
}

// Links returns the inventory links, target name to source path
func (a *Ansible) Links() map[string]string {
	links := a.inventoryConfig().Links
	if links == nil {
		return map[string]string{}
	}
	return links
}

// =============================================================================
// Actions
// =============================================================================

// Check runs the converge playbook in check mode
func (a *Ansible) Check() error {
	pb := a.NewPlaybook(a.playbooks.Converge())
	pb.AddCLIArg("check", true)
	_, err := pb.Execute()
	return err
}

// Converge runs playbook, or the converge playbook when playbook is empty, and returns its output
func (a *Ansible) Converge(playbook string) (string, error) {
	if playbook == "" {
		playbook = a.playbooks.Converge()
	}
	return a.NewPlaybook(playbook).Execute()
}

// Cleanup runs the cleanup playbook
func (a *Ansible) Cleanup() error {
	return a.run(a.playbooks.Cleanup())
}

// Destroy runs the destroy playbook
func (a *Ansible) Destroy() error {
	return a.run(a.playbooks.Destroy())
}

// SideEffect runs the side_effect playbook
func (a *Ansible) SideEffect() error {
	return a.run(a.playbooks.SideEffect())
}

// Create runs the create playbook
func (a *Ansible) Create() error {
	return a.run(a.playbooks.Create())
}

// Prepare runs the prepare playbook
func (a *Ansible) Prepare() error {
	return a.run(a.playbooks.Prepare())
}

// Syntax checks the converge playbook's syntax
func (a *Ansible) Syntax() error {
	pb := a.NewPlaybook(a.playbooks.Converge())
	pb.AddCLIArg("syntax-check", true)
	_, err := pb.Execute()
	return err
}

// Verify runs the verify playbook with the verifier env layered over the provisioner env.
// A disabled verifier or a missing verify playbook is skipped with a warning.
func (a *Ansible) Verify() error {
	if !a.config().IsVerifierEnabled() {
		a.logger.Warn("Skipping, verifier is disabled.")
		return nil
	}
	playbook := a.playbooks.Verify()
	if playbook == "" {
		a.logger.Warn("Skipping, verify playbook not configured.")
		return nil
	}

	pb := a.NewPlaybook(playbook)
	env := a.config().GetVerifierEnv()
	for _, name := range slices.Sorted(maps.Keys(env)) {
		pb.AddEnvArg(name, env[name])
	}
	_, err := pb.Execute()
	return err
}

// ManageInventory rebuilds the inventory directory. The generated inventory is written first,
// stale vars are removed, then the links are created when configured or the vars are written.
func (a *Ansible) ManageInventory() error {
	if err := a.WriteInventory(); err != nil {
		return err
	}
	if err := a.RemoveVars(); err != nil {
		return err
	}
	if len(a.Links()) > 0 {
		return a.LinkOrUpdateVars()
	}
	return a.AddOrUpdateVars()
}

// =============================================================================
// Private Methods
// =============================================================================

// run executes playbook without extra arguments
func (a *Ansible) run(playbook string) error {
	_, err := a.NewPlaybook(playbook).Execute()
	return err
}

// config returns the loaded scenario configuration
func (a *Ansible) config() *v1alpha1.Config {
	if c := a.configHandler.GetConfig(); c != nil {
		return c
	}
	return &v1alpha1.Config{}
}

// provisionerConfig returns the provisioner section, never nil
func (a *Ansible) provisionerConfig() *provisioner.ProvisionerConfig {
	if p := a.config().Provisioner; p != nil {
		return p
	}
	return &provisioner.ProvisionerConfig{}
}

// inventoryConfig returns the inventory section, never nil
func (a *Ansible) inventoryConfig() *provisioner.InventoryConfig {
	return a.provisionerConfig().GetInventory()
}
