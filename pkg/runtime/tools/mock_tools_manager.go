package tools

// MockToolsManager is a mock implementation of the ToolsManager interface for testing purposes.
type MockToolsManager struct {
	CheckFunc                     func() error
	GetAnsiblePlaybookCommandFunc func() string
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockToolsManager creates a new instance of MockToolsManager.
func NewMockToolsManager() *MockToolsManager {
	return &MockToolsManager{}
}

// =============================================================================
// Public Methods
// =============================================================================

// Check calls the mock CheckFunc if set, otherwise returns nil.
func (m *MockToolsManager) Check() error {
	if m.CheckFunc != nil {
		return m.CheckFunc()
	}
	return nil
}

// GetAnsiblePlaybookCommand calls the mock GetAnsiblePlaybookCommandFunc if set, otherwise returns "ansible-playbook"
func (m *MockToolsManager) GetAnsiblePlaybookCommand() string {
	if m.GetAnsiblePlaybookCommandFunc != nil {
		return m.GetAnsiblePlaybookCommandFunc()
	}
	return "ansible-playbook"
}

// Ensure MockToolsManager implements ToolsManager.
var _ ToolsManager = (*MockToolsManager)(nil)
