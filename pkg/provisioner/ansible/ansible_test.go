package ansible

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windsorcli/molecule/pkg/runtime/config"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// =============================================================================
// Test Setup
// =============================================================================

// baseConfig declares two instances across three groups
const baseConfig = `
platforms:
  - name: instance-1
    groups:
      - foo
      - bar
    children:
      - child1
  - name: instance-2
    groups:
      - foo
      - baz
    children:
      - child2
provisioner:
  name: ansible
  options:
    become: true
`

// provisionerSectionConfig extends baseConfig with every provisioner section populated
const provisionerSectionConfig = `
platforms:
  - name: instance-1
    groups:
      - foo
      - bar
    children:
      - child1
  - name: instance-2
    groups:
      - foo
      - baz
    children:
      - child2
provisioner:
  name: ansible
  config_options:
    defaults:
      foo: bar
  connection_options:
    foo: bar
  options:
    foo: bar
    become: true
    v: true
  env:
    FOO: bar
    ANSIBLE_ROLES_PATH: foo/bar
    ANSIBLE_LIBRARY: foo/bar
    ANSIBLE_FILTER_PLUGINS: foo/bar
  inventory:
    hosts:
      all:
        hosts:
          extra-host-01: {}
        children:
          extra-group:
            hosts:
              - extra-host-01
    host_vars:
      instance-1:
        - foo: bar
      localhost:
        - foo: baz
    group_vars:
      example_group1:
        - foo: bar
      example_group2:
        - foo: bar
`

type AnsibleTestMocks struct {
	ProjectDir    string
	ScenarioDir   string
	EphemeralDir  string
	DataDir       string
	HomeDir       string
	Env           map[string]string
	ConfigHandler config.ConfigHandler
	Shell         *shell.MockShell
	Logs          *observer.ObservedLogs
}

// setupAnsibleMocks creates a project with a default scenario and loads content as its molecule.yml
func setupAnsibleMocks(t *testing.T, content string) *AnsibleTestMocks {
	t.Helper()

	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project")
	scenarioDir := filepath.Join(projectDir, "molecule", "default")
	ephemeralDir := filepath.Join(tmpDir, "ephemeral")
	dataDir := filepath.Join(tmpDir, "data")
	homeDir := filepath.Join(tmpDir, "home")
	for _, dir := range []string{scenarioDir, ephemeralDir, dataDir, homeDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv("MOLECULE_EPHEMERAL_DIRECTORY", ephemeralDir)
	t.Setenv("MOLECULE_DATA_DIRECTORY", dataDir)

	configHandler := config.NewConfigHandler(projectDir)
	require.NoError(t, configHandler.LoadConfigString(content))

	return &AnsibleTestMocks{
		ProjectDir:    projectDir,
		ScenarioDir:   scenarioDir,
		EphemeralDir:  ephemeralDir,
		DataDir:       dataDir,
		HomeDir:       homeDir,
		Env:           map[string]string{},
		ConfigHandler: configHandler,
		Shell:         shell.NewMockShell(),
	}
}

// setupAnsible creates an Ansible provisioner whose environment and home directory come from mocks
func setupAnsible(t *testing.T, mocks *AnsibleTestMocks) *Ansible {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	mocks.Logs = logs

	a := NewAnsible(mocks.ConfigHandler, mocks.Shell, zap.New(core))
	a.shims.Getenv = func(key string) string {
		return mocks.Env[key]
	}
	a.shims.Environ = func() []string {
		return []string{"PATH=/usr/bin:/bin", "HOME=" + mocks.HomeDir}
	}
	a.shims.UserHomeDir = func() (string, error) {
		return mocks.HomeDir, nil
	}
	return a
}

// =============================================================================
// Test Properties
// =============================================================================

func TestAnsible_Properties(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		assert.Equal(t, "ansible", a.Name())
	})

	t.Run("Directories", func(t *testing.T) {
		// Given a provisioner for the default scenario
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		// Then its files live in the ephemeral directory
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "inventory"), a.InventoryDirectory())
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "inventory", "ansible_inventory.yml"), a.InventoryFile())
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "ansible.cfg"), a.ConfigFile())
		assert.True(t, strings.HasSuffix(a.Directory(), filepath.Join("molecule", "provisioner", "ansible")))
		assert.True(t, strings.HasSuffix(a.pluginDirectory(), filepath.Join("molecule", "provisioner", "ansible", "plugins")))
	})

	t.Run("InventorySections", func(t *testing.T) {
		// Given a scenario with an inventory section
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		// Then the sections are exposed as configured
		assert.Equal(t, map[string]any{"foo": "bar"}, a.HostVars()["instance-1"].Merged())
		assert.Equal(t, map[string]any{"foo": "baz"}, a.HostVars()["localhost"].Merged())
		assert.Len(t, a.GroupVars(), 2)
		assert.Contains(t, a.Hosts(), "all")
		assert.Equal(t, map[string]string{}, a.Links())
	})

	t.Run("EmptyInventory", func(t *testing.T) {
		// Given a scenario without an inventory section
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		// Then every section is empty
		assert.Empty(t, a.Hosts())
		assert.Empty(t, a.HostVars())
		assert.Empty(t, a.GroupVars())
		assert.Empty(t, a.Links())
	})
}

// =============================================================================
// Test Options
// =============================================================================

func TestAnsible_DefaultConfigOptions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		expected := map[string]any{
			"defaults": map[string]any{
				"ansible_managed":       "Ansible managed: Do NOT edit this file manually!",
				"display_failed_stderr": true,
				"forks":                 50,
				"host_key_checking":     false,
				"interpreter_python":    "auto_silent",
				"nocows":                1,
				"retry_files_enabled":   false,
			},
			"ssh_connection": map[string]any{
				"control_path": "%(directory)s/%%h-%%p-%%r",
				"scp_if_ssh":   true,
			},
		}
		assert.Equal(t, expected, a.DefaultConfigOptions())
	})
}

func TestAnsible_ConfigOptions(t *testing.T) {
	t.Run("MergesUserOptions", func(t *testing.T) {
		// Given config_options adding a key to defaults
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		// When merging
		options := a.ConfigOptions()

		// Then the user key joins the defaults without replacing them
		defaults := options["defaults"].(map[string]any)
		assert.Equal(t, "bar", defaults["foo"])
		assert.Equal(t, 50, defaults["forks"])
		assert.Equal(t, "auto_silent", defaults["interpreter_python"])
		assert.Contains(t, options, "ssh_connection")
	})

	t.Run("DoesNotMutateDefaults", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		_ = a.ConfigOptions()

		assert.NotContains(t, a.DefaultConfigOptions()["defaults"], "foo")
	})
}

func TestAnsible_DefaultOptions(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		assert.Equal(t, map[string]any{"skip-tags": "molecule-notest,notest"}, a.DefaultOptions())
	})

	t.Run("Idempotence", func(t *testing.T) {
		// Given the idempotence action
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.ConfigHandler.SetAction("idempotence")
		a := setupAnsible(t, mocks)

		// Then idempotence tagged tasks are skipped too
		assert.Equal(t, "molecule-notest,notest,molecule-idempotence-notest", a.DefaultOptions()["skip-tags"])
	})

	t.Run("Debug", func(t *testing.T) {
		// Given debug mode
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.ConfigHandler.SetDebug(true)
		a := setupAnsible(t, mocks)

		// Then verbosity and diff are on
		options := a.DefaultOptions()
		assert.Equal(t, true, options["vvv"])
		assert.Equal(t, true, options["diff"])
	})
}

func TestAnsible_Options(t *testing.T) {
	t.Run("MergesUserOptions", func(t *testing.T) {
		// Given user options
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		// Then they are overlaid on the defaults
		expected := map[string]any{
			"become":    true,
			"foo":       "bar",
			"v":         true,
			"skip-tags": "molecule-notest,notest",
		}
		assert.Equal(t, expected, a.Options())
	})

	t.Run("CreateAndDestroyGetDefaultsOnly", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		for _, action := range []string{"create", "destroy"} {
			mocks.ConfigHandler.SetAction(action)
			assert.Equal(t, map[string]any{"skip-tags": "molecule-notest,notest"}, a.Options(), action)
		}
	})

	t.Run("DebugDropsUserVerbosity", func(t *testing.T) {
		// Given debug mode and a user v option
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		mocks.ConfigHandler.SetDebug(true)
		a := setupAnsible(t, mocks)

		// Then the user verbosity is replaced by the debug options
		expected := map[string]any{
			"vvv":       true,
			"become":    true,
			"foo":       "bar",
			"diff":      true,
			"skip-tags": "molecule-notest,notest",
		}
		assert.Equal(t, expected, a.Options())
	})

	t.Run("DoesNotMutateUserOptions", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		mocks.ConfigHandler.SetDebug(true)
		a := setupAnsible(t, mocks)

		_ = a.Options()

		assert.Contains(t, mocks.ConfigHandler.GetConfig().Provisioner.Options, "v")
		assert.NotContains(t, mocks.ConfigHandler.GetConfig().Provisioner.Options, "skip-tags")
	})
}

func TestFilterVerbosePermutation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		options := map[string]any{"v": true, "vv": true, "vvvv": true, "verbose": true, "foo": "bar"}

		result := filterVerbosePermutation(options)

		assert.Equal(t, map[string]any{"verbose": true, "foo": "bar"}, result)
		assert.Len(t, options, 5)
	})
}

// =============================================================================
// Test Environment
// =============================================================================

func TestAnsible_DefaultEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Given a provisioner
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		// When building the default environment
		env := a.DefaultEnv()

		// Then it carries the process, molecule and ansible variables
		assert.Equal(t, a.ConfigFile(), env["ANSIBLE_CONFIG"])
		assert.Equal(t, "/usr/bin:/bin", env["PATH"])
		for _, key := range []string{
			"MOLECULE_FILE",
			"MOLECULE_INVENTORY_FILE",
			"MOLECULE_SCENARIO_DIRECTORY",
			"MOLECULE_INSTANCE_CONFIG",
			"ANSIBLE_ROLES_PATH",
			"ANSIBLE_COLLECTIONS_PATH",
			"ANSIBLE_LIBRARY",
			"ANSIBLE_FILTER_PLUGINS",
		} {
			assert.NotEmpty(t, env[key], key)
		}
	})
}

func TestAnsible_Env(t *testing.T) {
	t.Run("OverlaysProvisionerEnv", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		env := a.Env()

		assert.Equal(t, a.ConfigFile(), env["ANSIBLE_CONFIG"])
		assert.Equal(t, "bar", env["FOO"])
	})

	t.Run("AppendsSearchPaths", func(t *testing.T) {
		// Given provisioner env search paths relative to the scenario
		mocks := setupAnsibleMocks(t, provisionerSectionConfig)
		a := setupAnsible(t, mocks)

		// When building the environment
		env := a.Env()

		// Then the resolved paths follow the defaults
		userPath := filepath.Join(mocks.ScenarioDir, "foo", "bar")
		assert.Equal(t, append(a.ModulesDirectories(), userPath), strings.Split(env["ANSIBLE_LIBRARY"], ":"))
		assert.Equal(t, append(a.RolesDirectories(), userPath), strings.Split(env["ANSIBLE_ROLES_PATH"], ":"))

		expectedFilters := []string{
			filepath.Join(mocks.DataDir, "molecule", "provisioner", "ansible", "plugins", "filter"),
			filepath.Join(mocks.EphemeralDir, "plugins", "filter"),
			filepath.Join(mocks.ProjectDir, "plugins", "filter"),
			filepath.Join(mocks.HomeDir, ".ansible", "plugins", "filter"),
			"/usr/share/ansible/plugins/filter",
			userPath,
		}
		assert.Equal(t, expectedFilters, strings.Split(env["ANSIBLE_FILTER_PLUGINS"], ":"))
	})

	t.Run("KeepsDefaultsWithoutUserPaths", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		env := a.Env()

		assert.Equal(t, strings.Join(a.ModulesDirectories(), ":"), env["ANSIBLE_LIBRARY"])
	})
}

// =============================================================================
// Test Search Paths
// =============================================================================

func TestAnsible_ModulesDirectories(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		// Given no ANSIBLE_LIBRARY
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		// When resolving module directories
		paths := a.ModulesDirectories()

		// Then exactly the conventional locations are returned
		require.Len(t, paths, 5)
		assert.True(t, strings.HasSuffix(paths[0], "molecule/provisioner/ansible/plugins/modules"))
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "library"), paths[1])
		assert.Equal(t, filepath.Join(mocks.ProjectDir, "library"), paths[2])
		assert.Equal(t, filepath.Join(mocks.HomeDir, ".ansible", "plugins", "modules"), paths[3])
		assert.Equal(t, "/usr/share/ansible/plugins/modules", paths[4])
	})

	t.Run("SingleAnsibleLibrary", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.Env["ANSIBLE_LIBRARY"] = "/abs/path/lib"
		a := setupAnsible(t, mocks)

		paths := a.ModulesDirectories()

		require.Len(t, paths, 6)
		assert.Equal(t, "/abs/path/lib", paths[0])
	})

	t.Run("MultiAnsibleLibrary", func(t *testing.T) {
		// Given a relative and an absolute entry
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.Env["ANSIBLE_LIBRARY"] = "relpath/lib:/abs/path/lib"
		a := setupAnsible(t, mocks)

		// When resolving module directories
		paths := a.ModulesDirectories()

		// Then both lead the list in order, the relative one resolved against the scenario
		require.Len(t, paths, 7)
		assert.Equal(t, filepath.Join(mocks.ScenarioDir, "relpath", "lib"), paths[0])
		assert.Equal(t, "/abs/path/lib", paths[1])
	})
}

func TestAnsible_FilterPluginsDirectories(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		paths := a.FilterPluginsDirectories()

		require.Len(t, paths, 5)
		assert.True(t, strings.HasSuffix(paths[0], "molecule/provisioner/ansible/plugins/filter"))
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "plugins", "filter"), paths[1])
		assert.Equal(t, filepath.Join(mocks.ProjectDir, "plugins", "filter"), paths[2])
		assert.Equal(t, filepath.Join(mocks.HomeDir, ".ansible", "plugins", "filter"), paths[3])
		assert.Equal(t, "/usr/share/ansible/plugins/filter", paths[4])
	})

	t.Run("SingleAnsibleFilterPlugins", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.Env["ANSIBLE_FILTER_PLUGINS"] = "/abs/path/plugins/filter"
		a := setupAnsible(t, mocks)

		paths := a.FilterPluginsDirectories()

		require.Len(t, paths, 6)
		assert.Equal(t, "/abs/path/plugins/filter", paths[0])
	})

	t.Run("MultiAnsibleFilterPlugins", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.Env["ANSIBLE_FILTER_PLUGINS"] = "relpath/plugins/filter:/abs/path/plugins/filter"
		a := setupAnsible(t, mocks)

		paths := a.FilterPluginsDirectories()

		require.Len(t, paths, 7)
		assert.True(t, strings.HasSuffix(paths[0], "relpath/plugins/filter"))
		assert.Equal(t, "/abs/path/plugins/filter", paths[1])
	})
}

func TestAnsible_RolesAndCollectionsDirectories(t *testing.T) {
	t.Run("Roles", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		paths := a.RolesDirectories()

		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "roles"), paths[0])
		assert.Equal(t, filepath.Dir(mocks.ProjectDir), paths[1])
		assert.Equal(t, "/etc/ansible/roles", paths[len(paths)-1])
	})

	t.Run("CollectionsFromEnv", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		mocks.Env["ANSIBLE_COLLECTIONS_PATH"] = "/opt/collections"
		a := setupAnsible(t, mocks)

		paths := a.CollectionsDirectories()

		assert.Equal(t, "/opt/collections", paths[0])
		assert.Equal(t, filepath.Join(mocks.EphemeralDir, "collections"), paths[1])
	})
}

func TestAnsible_AbsolutePathFor(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		result, err := a.AbsolutePathFor(map[string]string{"foo": "foo:bar"}, "foo")

		require.NoError(t, err)
		expected := filepath.Join(mocks.ScenarioDir, "foo") + ":" + filepath.Join(mocks.ScenarioDir, "bar")
		assert.Equal(t, expected, result)
	})

	t.Run("MissingKey", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		_, err := a.AbsolutePathFor(map[string]string{"foo": "foo:bar"}, "bar")

		assert.Error(t, err)
	})
}
