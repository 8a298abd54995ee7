package constants

// Version is the CLI version, set at build time via ldflags
var Version = "dev"

// CommitSHA is the git commit SHA, set at build time via ldflags
var CommitSHA = "none"

// The Constants package provides centralized default values and configuration constants
// It provides shared constants for file names, environment variable names and tool versions
// The Constants package serves as a single source of truth for default values across the application

// =============================================================================
// Constants
// =============================================================================

// MoleculeDirName is the directory holding scenarios inside a project
const MoleculeDirName = "molecule"

// MoleculeFileName is the scenario configuration file name
const MoleculeFileName = "molecule.yml"

// DefaultScenarioName is used when no scenario is selected
const DefaultScenarioName = "default"

// DefaultDriverName is the driver assumed when molecule.yml names none
const DefaultDriverName = "default"

// DefaultProvisionerName is the only supported provisioner
const DefaultProvisionerName = "ansible"

// DefaultVerifierName is the verifier assumed when molecule.yml names none
const DefaultVerifierName = "ansible"

// AnsiblePlaybookCommand is the executable wrapped by the provisioner
const AnsiblePlaybookCommand = "ansible-playbook"

// MinimumVersionAnsible is the oldest ansible-core release the provisioner supports
const MinimumVersionAnsible = "2.12.0"

// Inventory layout inside the ephemeral directory
const (
	InventoryDirName      = "inventory"
	InventoryFileName     = "ansible_inventory.yml"
	AnsibleConfigName     = "ansible.cfg"
	InstanceConfigName    = "instance_config.yml"
	InventoryHostsName    = "hosts"
	InventoryHostVarsDir  = "host_vars"
	InventoryGroupVarsDir = "group_vars"
)

// DefaultSkipTags are always skipped by the provisioner
const DefaultSkipTags = "molecule-notest,notest"

// IdempotenceSkipTag is additionally skipped during the idempotence action
const IdempotenceSkipTag = "molecule-idempotence-notest"

// System-wide Ansible locations
const (
	SystemAnsibleDir   = "/usr/share/ansible"
	SystemAnsibleRoles = "/etc/ansible/roles"
)

// Environment variables read by molecule
const (
	EnvEphemeralDirectory = "MOLECULE_EPHEMERAL_DIRECTORY"
	EnvDataDirectory      = "MOLECULE_DATA_DIRECTORY"
	EnvLogLevel           = "MOLECULE_LOG_LEVEL"
	EnvLogFormat          = "MOLECULE_LOG_FORMAT"
)

// Environment variables read and written for Ansible
const (
	EnvAnsibleConfig          = "ANSIBLE_CONFIG"
	EnvAnsibleRolesPath       = "ANSIBLE_ROLES_PATH"
	EnvAnsibleCollectionsPath = "ANSIBLE_COLLECTIONS_PATH"
	EnvAnsibleLibrary         = "ANSIBLE_LIBRARY"
	EnvAnsibleFilterPlugins   = "ANSIBLE_FILTER_PLUGINS"
)
