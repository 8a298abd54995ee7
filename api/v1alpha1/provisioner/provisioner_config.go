package provisioner

import (
	"fmt"
	"maps"

	"github.com/goccy/go-yaml"
)

// ProvisionerConfig represents the provisioner section of molecule.yml
type ProvisionerConfig struct {
	Name              *string           `yaml:"name,omitempty"`
	Log               *bool             `yaml:"log,omitempty"`
	ConfigOptions     map[string]any    `yaml:"config_options,omitempty"`
	ConnectionOptions map[string]any    `yaml:"connection_options,omitempty"`
	Options           map[string]any    `yaml:"options,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	Inventory         *InventoryConfig  `yaml:"inventory,omitempty"`
	Playbooks         map[string]any    `yaml:"playbooks,omitempty"`
	AnsibleArgs       []string          `yaml:"ansible_args,omitempty"`
}

// InventoryConfig holds the user supplied inventory sources. Hosts is an
// arbitrary Ansible YAML inventory tree written verbatim to the hosts file.
type InventoryConfig struct {
	Hosts     map[string]any      `yaml:"hosts,omitempty"`
	HostVars  map[string]VarsList `yaml:"host_vars,omitempty"`
	GroupVars map[string]VarsList `yaml:"group_vars,omitempty"`
	Links     map[string]string   `yaml:"links,omitempty"`
}

// VarsList is an ordered list of variable mappings for one host or group.
// A plain mapping in YAML decodes to a single element list.
type VarsList []map[string]any

// UnmarshalYAML accepts either a sequence of mappings or a single mapping.
func (v *VarsList) UnmarshalYAML(data []byte) error {
	var list []map[string]any
	if err := yaml.Unmarshal(data, &list); err == nil {
		*v = list
		return nil
	}
	var single map[string]any
	if err := yaml.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("vars must be a mapping or a list of mappings: %w", err)
	}
	if single == nil {
		*v = nil
		return nil
	}
	*v = VarsList{single}
	return nil
}

// Merged folds the list into one mapping, later entries winning on conflict.
// The receiver is left untouched.
func (v VarsList) Merged() map[string]any {
	result := make(map[string]any)
	for _, vars := range v {
		maps.Copy(result, vars)
	}
	return result
}

// GetInventory returns the inventory section, never nil
func (p *ProvisionerConfig) GetInventory() *InventoryConfig {
	if p == nil || p.Inventory == nil {
		return &InventoryConfig{}
	}
	return p.Inventory
}

// GetName returns the provisioner name or an empty string
func (p *ProvisionerConfig) GetName() string {
	if p == nil || p.Name == nil {
		return ""
	}
	return *p.Name
}
