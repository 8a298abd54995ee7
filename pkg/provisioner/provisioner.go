package provisioner

import (
	"fmt"

	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/provisioner/ansible"
	"github.com/windsorcli/molecule/pkg/runtime"
)

// The Provisioner package selects and drives the provisioner named by a scenario.
// It exposes the provisioner actions behind one interface so commands and the scenario
// Runner can be tested against MockProvisioner. Ansible is the only provisioner.

// =============================================================================
// Types
// =============================================================================

// Provisioner runs the playbooks behind each scenario action and maintains the files
// those runs read: the generated inventory and ansible.cfg.
type Provisioner interface {
	Name() string
	Check() error
	Cleanup() error
	Converge(playbook string) (string, error)
	Create() error
	Destroy() error
	Prepare() error
	SideEffect() error
	Syntax() error
	Verify() error
	WriteConfig() error
	ManageInventory() error
}

// SysExitError is a fatal error carrying the process exit code
type SysExitError = ansible.SysExitError

// =============================================================================
// Constructor
// =============================================================================

// NewProvisioner creates the provisioner named in the scenario configuration. The runtime's
// shell and config handler must be loaded.
func NewProvisioner(rt *runtime.Runtime) (Provisioner, error) {
	if rt == nil || rt.ConfigHandler == nil {
		return nil, fmt.Errorf("config handler not loaded")
	}
	if rt.Shell == nil {
		return nil, fmt.Errorf("shell not loaded")
	}

	name := constants.DefaultProvisionerName
	if c := rt.ConfigHandler.GetConfig(); c != nil && c.Provisioner.GetName() != "" {
		name = c.Provisioner.GetName()
	}

	switch name {
	case constants.DefaultProvisionerName:
		return ansible.NewAnsible(rt.ConfigHandler, rt.Shell, rt.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provisioner: %s", name)
	}
}

// Ensure Ansible implements the Provisioner interface
var _ Provisioner = (*ansible.Ansible)(nil)
