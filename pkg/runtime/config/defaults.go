// This file defines the default scenario configuration that every molecule.yml is merged onto.
// It names the default driver, provisioner and verifier, and the playbook file used for each action.

package config

import (
	"github.com/windsorcli/molecule/api/v1alpha1"
	"github.com/windsorcli/molecule/api/v1alpha1/provisioner"
	"github.com/windsorcli/molecule/pkg/constants"
)

// DefaultPlaybooks maps each action to the playbook file it runs, relative to the scenario directory
var DefaultPlaybooks = map[string]any{
	"cleanup":     "cleanup.yml",
	"create":      "create.yml",
	"converge":    "converge.yml",
	"destroy":     "destroy.yml",
	"prepare":     "prepare.yml",
	"side_effect": "side_effect.yml",
	"verify":      "verify.yml",
}

// DefaultTestSequence is the action order run by `molecule test`
var DefaultTestSequence = []string{
	"dependency",
	"cleanup",
	"destroy",
	"syntax",
	"create",
	"prepare",
	"converge",
	"idempotence",
	"side_effect",
	"verify",
	"cleanup",
	"destroy",
}

// DefaultConfig is the base every scenario configuration is merged onto
var DefaultConfig = v1alpha1.Config{
	Driver: &v1alpha1.DriverConfig{
		Name: ptrString(constants.DefaultDriverName),
	},
	Provisioner: &provisioner.ProvisionerConfig{
		Name:      ptrString(constants.DefaultProvisionerName),
		Log:       ptrBool(true),
		Playbooks: DefaultPlaybooks,
	},
	Scenario: &v1alpha1.ScenarioConfig{
		Name:         ptrString(constants.DefaultScenarioName),
		TestSequence: DefaultTestSequence,
	},
	Verifier: &v1alpha1.VerifierConfig{
		Name:    ptrString(constants.DefaultVerifierName),
		Enabled: ptrBool(true),
	},
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
