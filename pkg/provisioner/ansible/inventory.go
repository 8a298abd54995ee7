package ansible

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"

	"github.com/windsorcli/molecule/api/v1alpha1/provisioner"
	"github.com/windsorcli/molecule/pkg/constants"
)

// errMissingPlatforms is logged when there is nothing to put in the inventory
const errMissingPlatforms = "Instances missing from the 'platform' section of molecule.yml."

// =============================================================================
// Public Methods
// =============================================================================

// Inventory generates the Ansible inventory for the scenario's platforms. Every instance is a
// host of "all" and of each of its groups ("ungrouped" when it declares none), carries its
// connection options, and is added to each declared child group of those groups.
func (a *Ansible) Inventory() map[string]any {
	inventory := make(map[string]any)

	for _, platform := range a.config().Platforms {
		groups := platform.Groups
		if len(groups) == 0 {
			groups = []string{"ungrouped"}
		}
		for _, group := range groups {
			connection := a.ConnectionOptions(platform.Name)

			all := subMap(inventory, "all")
			subMap(all, "hosts")[platform.Name] = maps.Clone(connection)
			all["vars"] = moleculeVars()

			named := subMap(inventory, group)
			subMap(named, "hosts")[platform.Name] = maps.Clone(connection)
			named["vars"] = moleculeVars()

			subMap(inventory, "ungrouped")["vars"] = map[string]any{}

			for _, child := range platform.Children {
				childGroup := subMap(subMap(named, "children"), child)
				subMap(childGroup, "hosts")[platform.Name] = maps.Clone(connection)
			}
		}
	}

	return inventory
}

// WriteInventory verifies the generated inventory and writes it to InventoryFile
func (a *Ansible) WriteInventory() error {
	inventory := a.Inventory()
	if err := a.VerifyInventory(inventory); err != nil {
		return err
	}
	if err := a.shims.MkdirAll(a.InventoryDirectory(), 0755); err != nil {
		return fmt.Errorf("error creating inventory directory: %w", err)
	}
	return a.writeYAML(a.InventoryFile(), inventory)
}

// VerifyInventory fails when no platforms are declared, the inventory is empty, or a
// declared platform is not a host anywhere in the inventory tree
func (a *Ansible) VerifyInventory(inventory map[string]any) error {
	platforms := a.config().InstanceNames()
	if len(platforms) == 0 || len(inventory) == 0 {
		return sysExit(a.logger, errMissingPlatforms, 1)
	}
	for _, name := range platforms {
		if !hostInTree(inventory, name) {
			return sysExit(a.logger, fmt.Sprintf("Instance '%s' missing from the generated inventory.", name), 1)
		}
	}
	return nil
}

// AddOrUpdateVars writes the user inventory to the inventory directory: the hosts tree to
// hosts, and one merged file per entry under host_vars and group_vars. Empty sections write
// nothing.
func (a *Ansible) AddOrUpdateVars() error {
	inventoryDir := a.InventoryDirectory()

	if hosts := a.Hosts(); len(hosts) > 0 {
		if err := a.shims.MkdirAll(inventoryDir, 0755); err != nil {
			return fmt.Errorf("error creating inventory directory: %w", err)
		}
		path := filepath.Join(inventoryDir, constants.InventoryHostsName)
		if err := a.removePath(path); err != nil {
			return err
		}
		if err := a.writeYAML(path, hosts); err != nil {
			return err
		}
	}

	for _, target := range []struct {
		dir  string
		vars map[string]provisioner.VarsList
	}{
		{constants.InventoryHostVarsDir, a.HostVars()},
		{constants.InventoryGroupVarsDir, a.GroupVars()},
	} {
		if len(target.vars) == 0 {
			continue
		}
		dir := filepath.Join(inventoryDir, target.dir)
		if err := a.shims.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating %s directory: %w", target.dir, err)
		}
		for _, name := range slices.Sorted(maps.Keys(target.vars)) {
			path := filepath.Join(dir, name)
			if err := a.removePath(path); err != nil {
				return err
			}
			if err := a.writeYAML(path, target.vars[name].Merged()); err != nil {
				return err
			}
		}
	}

	return nil
}

// RemoveVars removes hosts, host_vars and group_vars from the inventory directory. Symlinks
// are removed without following them and missing entries are ignored.
func (a *Ansible) RemoveVars() error {
	for _, name := range []string{
		constants.InventoryHostsName,
		constants.InventoryGroupVarsDir,
		constants.InventoryHostVarsDir,
	} {
		if err := a.removePath(filepath.Join(a.InventoryDirectory(), name)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Private Methods
// =============================================================================

// removePath removes a file, symlink or directory tree at path, tolerating absence
func (a *Ansible) removePath(path string) error {
	info, err := a.shims.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		err = a.shims.RemoveAll(path)
	} else {
		err = a.shims.Remove(path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}

// writeYAML serializes data to path
func (a *Ansible) writeYAML(path string, data any) error {
	content, err := a.shims.YamlMarshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling %s: %w", path, err)
	}
	if err := a.shims.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// moleculeVars are set on every generated group so playbooks can reach molecule's paths
func moleculeVars() map[string]any {
	return map[string]any{
		"molecule_file":                "{{ lookup('env', 'MOLECULE_FILE') }}",
		"molecule_ephemeral_directory": "{{ lookup('env', 'MOLECULE_EPHEMERAL_DIRECTORY') }}",
		"molecule_scenario_directory":  "{{ lookup('env', 'MOLECULE_SCENARIO_DIRECTORY') }}",
		"molecule_yml":                 "{{ lookup('file', molecule_file) | from_yaml }}",
		"molecule_instance_config":     "{{ lookup('env', 'MOLECULE_INSTANCE_CONFIG') }}",
		"molecule_no_log":              "{{ lookup('env', 'MOLECULE_NO_LOG') or not molecule_yml.provisioner.log|default(False) | bool }}",
	}
}

// subMap returns m[key] as a map, creating it when absent
func subMap(m map[string]any, key string) map[string]any {
	if existing, ok := m[key].(map[string]any); ok {
		return existing
	}
	created := make(map[string]any)
	m[key] = created
	return created
}

// hostInTree reports whether host is listed under any group's hosts or, recursively, under
// any group's children
func hostInTree(groups map[string]any, host string) bool {
	for _, value := range groups {
		group, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if hosts, ok := group["hosts"].(map[string]any); ok {
			if _, found := hosts[host]; found {
				return true
			}
		}
		if children, ok := group["children"].(map[string]any); ok && hostInTree(children, host) {
			return true
		}
	}
	return false
}
