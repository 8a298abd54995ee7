package ansible

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/ini.v1"
)

// WriteConfig renders ConfigOptions to ConfigFile in ansible.cfg INI format. Top level maps
// become sections; scalar top level values go to the default section.
func (a *Ansible) WriteConfig() error {
	cfg := ini.Empty()
	options := a.ConfigOptions()

	for _, name := range slices.Sorted(maps.Keys(options)) {
		values, ok := options[name].(map[string]any)
		if !ok {
			cfg.Section(ini.DefaultSection).Key(name).SetValue(fmt.Sprint(options[name]))
			continue
		}
		section, err := cfg.NewSection(name)
		if err != nil {
			return fmt.Errorf("error creating section %s: %w", name, err)
		}
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if _, err := section.NewKey(key, fmt.Sprint(values[key])); err != nil {
				return fmt.Errorf("error setting %s.%s: %w", name, key, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("error rendering ansible.cfg: %w", err)
	}

	path := a.ConfigFile()
	if err := a.shims.MkdirAll(a.configHandler.GetEphemeralDirectory(), 0755); err != nil {
		return fmt.Errorf("error creating ephemeral directory: %w", err)
	}
	if err := a.shims.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
