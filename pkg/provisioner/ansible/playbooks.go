package ansible

import (
	"path/filepath"
	"slices"

	"github.com/windsorcli/molecule/pkg/runtime/config"
)

// optionalSections resolve to no playbook when their file does not exist
var optionalSections = []string{"prepare", "create", "destroy", "cleanup", "side_effect", "verify"}

// =============================================================================
// Types
// =============================================================================

// Playbooks resolves the playbook each action runs. provisioner.playbooks maps sections to
// paths relative to the scenario directory; a nested mapping named after the driver overrides
// individual sections for that driver.
type Playbooks struct {
	configHandler config.ConfigHandler
	shims         *Shims
}

// =============================================================================
// Constructor
// =============================================================================

// NewPlaybooks creates a Playbooks resolver
func NewPlaybooks(configHandler config.ConfigHandler, shims *Shims) *Playbooks {
	return &Playbooks{
		configHandler: configHandler,
		shims:         shims,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Cleanup returns the cleanup playbook or an empty string
func (p *Playbooks) Cleanup() string { return p.Get("cleanup") }

// Converge returns the converge playbook
func (p *Playbooks) Converge() string { return p.Get("converge") }

// Create returns the create playbook or an empty string
func (p *Playbooks) Create() string { return p.Get("create") }

// Destroy returns the destroy playbook or an empty string
func (p *Playbooks) Destroy() string { return p.Get("destroy") }

// Prepare returns the prepare playbook or an empty string
func (p *Playbooks) Prepare() string { return p.Get("prepare") }

// SideEffect returns the side_effect playbook or an empty string
func (p *Playbooks) SideEffect() string { return p.Get("side_effect") }

// Verify returns the verify playbook or an empty string
func (p *Playbooks) Verify() string { return p.Get("verify") }

// Get resolves section to an absolute playbook path. When the scenario's playbook is missing
// the driver's bundled playbook is used if present. Optional sections without either resolve
// to an empty string; converge always resolves.
func (p *Playbooks) Get(section string) string {
	playbook := p.configured(section)
	if playbook == "" {
		return ""
	}

	path := playbook
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.configHandler.GetScenarioDirectory(), path)
	}
	if p.exists(path) {
		return path
	}

	bundled := p.bundled(section)
	if p.exists(bundled) {
		return bundled
	}

	if slices.Contains(optionalSections, section) {
		return ""
	}
	return path
}

// =============================================================================
// Private Methods
// =============================================================================

// configured returns the playbook named for section, preferring the driver's override
func (p *Playbooks) configured(section string) string {
	var playbooks map[string]any
	if c := p.configHandler.GetConfig(); c != nil && c.Provisioner != nil {
		playbooks = c.Provisioner.Playbooks
	}

	playbook, _ := playbooks[section].(string)
	if driver, ok := playbooks[p.configHandler.GetDriverName()].(map[string]any); ok {
		if override, ok := driver[section].(string); ok && override != "" {
			playbook = override
		}
	}
	return playbook
}

// bundled returns the path of the driver's bundled playbook for section
func (p *Playbooks) bundled(section string) string {
	return filepath.Join(p.configHandler.GetDataDirectory(), "molecule", "driver", p.configHandler.GetDriverName(), "playbooks", section+".yml")
}

// exists reports whether path exists
func (p *Playbooks) exists(path string) bool {
	_, err := p.shims.Stat(path)
	return err == nil
}
