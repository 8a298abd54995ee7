package ansible

// MockPlaybook is a mock implementation of the Playbook interface for testing purposes.
type MockPlaybook struct {
	BakeFunc      func()
	AddCLIArgFunc func(name string, value any)
	AddEnvArgFunc func(name, value string)
	ExecuteFunc   func() (string, error)
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockPlaybook creates a new instance of MockPlaybook.
func NewMockPlaybook() *MockPlaybook {
	return &MockPlaybook{}
}

// =============================================================================
// Public Methods
// =============================================================================

// Bake calls the mock BakeFunc if set.
func (m *MockPlaybook) Bake() {
	if m.BakeFunc != nil {
		m.BakeFunc()
	}
}

// AddCLIArg calls the mock AddCLIArgFunc if set.
func (m *MockPlaybook) AddCLIArg(name string, value any) {
	if m.AddCLIArgFunc != nil {
		m.AddCLIArgFunc(name, value)
	}
}

// AddEnvArg calls the mock AddEnvArgFunc if set.
func (m *MockPlaybook) AddEnvArg(name, value string) {
	if m.AddEnvArgFunc != nil {
		m.AddEnvArgFunc(name, value)
	}
}

// Execute calls the mock ExecuteFunc if set, otherwise returns an empty output.
func (m *MockPlaybook) Execute() (string, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc()
	}
	return "", nil
}

// Ensure MockPlaybook implements the Playbook interface.
var _ Playbook = (*MockPlaybook)(nil)
