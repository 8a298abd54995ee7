package config

import (
	"github.com/windsorcli/molecule/api/v1alpha1"
)

// MockConfigHandler is a mock implementation of the ConfigHandler interface
type MockConfigHandler struct {
	LoadConfigFunc            func(scenarioName string) error
	LoadConfigStringFunc      func(content string) error
	IsLoadedFunc              func() bool
	GetConfigFunc             func() *v1alpha1.Config
	GetActionFunc             func() string
	SetActionFunc             func(action string)
	IsDebugFunc               func() bool
	SetDebugFunc              func(debug bool)
	GetAnsibleArgsFunc        func() []string
	SetAnsibleArgsFunc        func(args []string)
	GetProjectDirectoryFunc   func() string
	GetMoleculeFileFunc       func() string
	GetScenarioNameFunc       func() string
	GetScenarioDirectoryFunc  func() string
	GetEphemeralDirectoryFunc func() string
	GetInventoryDirectoryFunc func() string
	GetInstanceConfigFunc     func() string
	GetDataDirectoryFunc      func() string
	GetDriverNameFunc         func() string
	GetEnvFunc                func() map[string]string
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockConfigHandler is a constructor for MockConfigHandler
func NewMockConfigHandler() *MockConfigHandler {
	return &MockConfigHandler{}
}

// =============================================================================
// Public Methods
// =============================================================================

// LoadConfig calls the mock LoadConfigFunc if set, otherwise returns nil
func (m *MockConfigHandler) LoadConfig(scenarioName string) error {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(scenarioName)
	}
	return nil
}

// LoadConfigString calls the mock LoadConfigStringFunc if set, otherwise returns nil
func (m *MockConfigHandler) LoadConfigString(content string) error {
	if m.LoadConfigStringFunc != nil {
		return m.LoadConfigStringFunc(content)
	}
	return nil
}

// IsLoaded calls the mock IsLoadedFunc if set, otherwise returns true
func (m *MockConfigHandler) IsLoaded() bool {
	if m.IsLoadedFunc != nil {
		return m.IsLoadedFunc()
	}
	return true
}

// GetConfig calls the mock GetConfigFunc if set, otherwise returns an empty config
func (m *MockConfigHandler) GetConfig() *v1alpha1.Config {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc()
	}
	return &v1alpha1.Config{}
}

// GetAction calls the mock GetActionFunc if set, otherwise returns an empty string
func (m *MockConfigHandler) GetAction() string {
	if m.GetActionFunc != nil {
		return m.GetActionFunc()
	}
	return ""
}

// SetAction calls the mock SetActionFunc if set
func (m *MockConfigHandler) SetAction(action string) {
	if m.SetActionFunc != nil {
		m.SetActionFunc(action)
	}
}

// IsDebug calls the mock IsDebugFunc if set, otherwise returns false
func (m *MockConfigHandler) IsDebug() bool {
	if m.IsDebugFunc != nil {
		return m.IsDebugFunc()
	}
	return false
}

// SetDebug calls the mock SetDebugFunc if set
func (m *MockConfigHandler) SetDebug(debug bool) {
	if m.SetDebugFunc != nil {
		m.SetDebugFunc(debug)
	}
}

// GetAnsibleArgs calls the mock GetAnsibleArgsFunc if set, otherwise returns nil
func (m *MockConfigHandler) GetAnsibleArgs() []string {
	if m.GetAnsibleArgsFunc != nil {
		return m.GetAnsibleArgsFunc()
	}
	return nil
}

// SetAnsibleArgs calls the mock SetAnsibleArgsFunc if set
func (m *MockConfigHandler) SetAnsibleArgs(args []string) {
	if m.SetAnsibleArgsFunc != nil {
		m.SetAnsibleArgsFunc(args)
	}
}

// GetProjectDirectory calls the mock GetProjectDirectoryFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetProjectDirectory() string {
	if m.GetProjectDirectoryFunc != nil {
		return m.GetProjectDirectoryFunc()
	}
	return "/mock/project"
}

// GetMoleculeFile calls the mock GetMoleculeFileFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetMoleculeFile() string {
	if m.GetMoleculeFileFunc != nil {
		return m.GetMoleculeFileFunc()
	}
	return "/mock/project/molecule/default/molecule.yml"
}

// GetScenarioName calls the mock GetScenarioNameFunc if set, otherwise returns "default"
func (m *MockConfigHandler) GetScenarioName() string {
	if m.GetScenarioNameFunc != nil {
		return m.GetScenarioNameFunc()
	}
	return "default"
}

// GetScenarioDirectory calls the mock GetScenarioDirectoryFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetScenarioDirectory() string {
	if m.GetScenarioDirectoryFunc != nil {
		return m.GetScenarioDirectoryFunc()
	}
	return "/mock/project/molecule/default"
}

// GetEphemeralDirectory calls the mock GetEphemeralDirectoryFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetEphemeralDirectory() string {
	if m.GetEphemeralDirectoryFunc != nil {
		return m.GetEphemeralDirectoryFunc()
	}
	return "/mock/ephemeral"
}

// GetInventoryDirectory calls the mock GetInventoryDirectoryFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetInventoryDirectory() string {
	if m.GetInventoryDirectoryFunc != nil {
		return m.GetInventoryDirectoryFunc()
	}
	return "/mock/ephemeral/inventory"
}

// GetInstanceConfig calls the mock GetInstanceConfigFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetInstanceConfig() string {
	if m.GetInstanceConfigFunc != nil {
		return m.GetInstanceConfigFunc()
	}
	return "/mock/ephemeral/instance_config.yml"
}

// GetDataDirectory calls the mock GetDataDirectoryFunc if set, otherwise returns a placeholder
func (m *MockConfigHandler) GetDataDirectory() string {
	if m.GetDataDirectoryFunc != nil {
		return m.GetDataDirectoryFunc()
	}
	return "/mock/data"
}

// GetDriverName calls the mock GetDriverNameFunc if set, otherwise returns "default"
func (m *MockConfigHandler) GetDriverName() string {
	if m.GetDriverNameFunc != nil {
		return m.GetDriverNameFunc()
	}
	return "default"
}

// GetEnv calls the mock GetEnvFunc if set, otherwise returns an empty map
func (m *MockConfigHandler) GetEnv() map[string]string {
	if m.GetEnvFunc != nil {
		return m.GetEnvFunc()
	}
	return map[string]string{}
}

// Ensure MockConfigHandler implements the ConfigHandler interface
var _ ConfigHandler = (*MockConfigHandler)(nil)
