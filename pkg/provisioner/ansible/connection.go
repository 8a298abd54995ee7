package ansible

import (
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"
)

// sshConnectionOptions are passed as ansible_ssh_common_args for instances reached with a key
var sshConnectionOptions = []string{
	"-o UserKnownHostsFile=/dev/null",
	"-o ControlMaster=auto",
	"-o ControlPersist=60s",
	"-o ForwardX11=no",
	"-o LogLevel=ERROR",
	"-o IdentitiesOnly=yes",
	"-o StrictHostKeyChecking=no",
}

// instanceConnectionKeys maps instance config fields to their Ansible connection variables
var instanceConnectionKeys = map[string]string{
	"address":       "ansible_host",
	"user":          "ansible_user",
	"port":          "ansible_port",
	"connection":    "ansible_connection",
	"become_method": "ansible_become_method",
	"become_pass":   "ansible_become_pass",
	"password":      "ansible_password",
	"shell_type":    "ansible_shell_type",
}

// =============================================================================
// Private Methods
// =============================================================================

// driverConnectionOptions returns the connection variables for instance. An unmanaged driver
// supplies them through driver.options.ansible_connection_options; a managed driver records
// them in the instance config written by the create playbook. A missing instance config or
// instance yields no options.
func (a *Ansible) driverConnectionOptions(instance string) map[string]any {
	options := make(map[string]any)

	if driver := a.config().Driver; driver != nil {
		if managed, ok := driver.Options["managed"].(bool); ok && !managed {
			if conn, ok := driver.Options["ansible_connection_options"].(map[string]any); ok {
				maps.Copy(options, conn)
			}
			return options
		}
	}

	entry, err := a.instanceConfig(instance)
	if err != nil {
		a.logger.Debug("no instance config", zap.String("instance", instance), zap.Error(err))
		return options
	}
	if entry == nil {
		return options
	}

	for field, variable := range instanceConnectionKeys {
		if value, ok := entry[field]; ok && value != nil && value != "" {
			options[variable] = value
		}
	}
	if identity, ok := entry["identity_file"]; ok && identity != nil && identity != "" {
		options["ansible_private_key_file"] = identity
		options["ansible_ssh_common_args"] = strings.Join(sshConnectionOptions, " ")
	}
	return options
}

// instanceConfig returns the instance config entry for instance, or nil when not found
func (a *Ansible) instanceConfig(instance string) (map[string]any, error) {
	path := a.configHandler.GetInstanceConfig()
	data, err := a.shims.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading instance config %s: %w", path, err)
	}

	var entries []map[string]any
	if err := a.shims.YamlUnmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing instance config %s: %w", path, err)
	}
	for _, entry := range entries {
		if name, ok := entry["instance"].(string); ok && name == instance {
			return entry, nil
		}
	}
	return nil, nil
}
