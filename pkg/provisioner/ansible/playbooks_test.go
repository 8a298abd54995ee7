package ansible

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file and its parent directories
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestPlaybooks_Get(t *testing.T) {
	t.Run("ConvergeAlwaysResolves", func(t *testing.T) {
		// Given a scenario without playbook files
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		// Then converge still resolves to its scenario path
		assert.Equal(t, filepath.Join(mocks.ScenarioDir, "converge.yml"), a.Playbooks().Converge())
	})

	t.Run("OptionalSectionsMissing", func(t *testing.T) {
		// Given a scenario without playbook files
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)
		p := a.Playbooks()

		// Then optional sections resolve to no playbook
		assert.Empty(t, p.Cleanup())
		assert.Empty(t, p.Create())
		assert.Empty(t, p.Destroy())
		assert.Empty(t, p.Prepare())
		assert.Empty(t, p.SideEffect())
		assert.Empty(t, p.Verify())
	})

	t.Run("ScenarioPlaybook", func(t *testing.T) {
		// Given a prepare playbook in the scenario
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)
		prepare := filepath.Join(mocks.ScenarioDir, "prepare.yml")
		touch(t, prepare)

		// Then it is used
		assert.Equal(t, prepare, a.Playbooks().Prepare())
	})

	t.Run("ConfiguredPath", func(t *testing.T) {
		// Given a side_effect playbook configured with a custom name
		content := baseConfig + `  playbooks:
    side_effect: effects/side.yml
`
		mocks := setupAnsibleMocks(t, content)
		a := setupAnsible(t, mocks)
		sideEffect := filepath.Join(mocks.ScenarioDir, "effects", "side.yml")
		touch(t, sideEffect)

		// Then the configured path is resolved against the scenario
		assert.Equal(t, sideEffect, a.Playbooks().SideEffect())
	})

	t.Run("DriverOverride", func(t *testing.T) {
		// Given a playbook override for the scenario's driver
		content := baseConfig + `  playbooks:
    create: create.yml
    delegated:
      create: delegated-create.yml
driver:
  name: delegated
`
		mocks := setupAnsibleMocks(t, content)
		a := setupAnsible(t, mocks)
		touch(t, filepath.Join(mocks.ScenarioDir, "create.yml"))
		override := filepath.Join(mocks.ScenarioDir, "delegated-create.yml")
		touch(t, override)

		// Then the override wins
		assert.Equal(t, override, a.Playbooks().Create())
	})

	t.Run("OtherDriverOverrideIgnored", func(t *testing.T) {
		content := baseConfig + `  playbooks:
    podman:
      create: podman-create.yml
`
		mocks := setupAnsibleMocks(t, content)
		a := setupAnsible(t, mocks)
		create := filepath.Join(mocks.ScenarioDir, "create.yml")
		touch(t, create)
		touch(t, filepath.Join(mocks.ScenarioDir, "podman-create.yml"))

		assert.Equal(t, create, a.Playbooks().Create())
	})

	t.Run("BundledPlaybook", func(t *testing.T) {
		// Given the driver ships a destroy playbook
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)
		bundled := filepath.Join(mocks.DataDir, "molecule", "driver", "default", "playbooks", "destroy.yml")
		touch(t, bundled)

		// Then it is used when the scenario has none
		assert.Equal(t, bundled, a.Playbooks().Destroy())
	})

	t.Run("AbsolutePath", func(t *testing.T) {
		verify := filepath.Join(t.TempDir(), "shared", "verify.yml")
		touch(t, verify)
		mocks := setupAnsibleMocks(t, baseConfig+"  playbooks:\n    verify: "+verify+"\n")
		a := setupAnsible(t, mocks)

		assert.Equal(t, verify, a.Playbooks().Verify())
	})

	t.Run("Unconfigured", func(t *testing.T) {
		mocks := setupAnsibleMocks(t, baseConfig)
		a := setupAnsible(t, mocks)

		assert.Empty(t, a.Playbooks().Get("unknown"))
	})
}
