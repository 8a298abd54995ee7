package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/windsorcli/molecule/pkg/constants"
	"github.com/windsorcli/molecule/pkg/runtime"
	"github.com/windsorcli/molecule/pkg/runtime/config"
)

var listFormat string

// instanceRow is one line of molecule list
type instanceRow struct {
	Instance    string `yaml:"instance"`
	Driver      string `yaml:"driver"`
	Provisioner string `yaml:"provisioner"`
	Scenario    string `yaml:"scenario"`
}

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "List the instances of every scenario",
	Long:         "List the instances declared by each scenario's molecule.yml, or by the scenario selected with --scenario-name.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var deps []*runtime.Dependencies
		if overridesVal := cmd.Context().Value(runtimeOverridesKey); overridesVal != nil {
			deps = []*runtime.Dependencies{overridesVal.(*runtime.Dependencies)}
		}
		rt := runtime.NewRuntime(deps...)

		projectRoot := rt.ProjectRoot
		if projectRoot == "" {
			wd, err := rt.Shims.Getwd()
			if err != nil {
				return fmt.Errorf("error getting working directory: %w", err)
			}
			projectRoot = wd
		}

		scenarios := []string{scenarioName}
		if scenarioName == "" {
			var err error
			if scenarios, err = findScenarios(projectRoot); err != nil {
				return err
			}
		}

		var rows []instanceRow
		for _, name := range scenarios {
			handler := config.NewConfigHandler(projectRoot)
			if err := handler.LoadConfig(name); err != nil {
				return fmt.Errorf("failed to load scenario %s: %w", name, err)
			}
			c := handler.GetConfig()
			for _, instance := range c.InstanceNames() {
				rows = append(rows, instanceRow{
					Instance:    instance,
					Driver:      handler.GetDriverName(),
					Provisioner: c.Provisioner.GetName(),
					Scenario:    handler.GetScenarioName(),
				})
			}
		}

		switch listFormat {
		case "yaml":
			data, err := yaml.Marshal(rows)
			if err != nil {
				return fmt.Errorf("error marshalling instances: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		case "simple", "plain":
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			if listFormat == "plain" {
				t.Style().Options = table.OptionsNoBordersAndSeparators
			}
			t.AppendHeader(table.Row{"Instance Name", "Driver Name", "Provisioner Name", "Scenario Name"})
			for _, row := range rows {
				t.AppendRow(table.Row{row.Instance, row.Driver, row.Provisioner, row.Scenario})
			}
			t.Render()
		default:
			return fmt.Errorf("unsupported format %q: must be simple, plain or yaml", listFormat)
		}
		return nil
	},
}

// findScenarios returns the names of the scenarios under the project's molecule directory
func findScenarios(projectRoot string) ([]string, error) {
	pattern := filepath.Join(projectRoot, constants.MoleculeDirName, "*", constants.MoleculeFileName)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("error finding scenarios: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, filepath.Base(filepath.Dir(match)))
	}
	sort.Strings(names)
	return names, nil
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "Output format: simple, plain or yaml")
	rootCmd.AddCommand(listCmd)
}
