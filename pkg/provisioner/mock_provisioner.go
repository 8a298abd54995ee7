package provisioner

// MockProvisioner is a mock implementation of the Provisioner interface for testing purposes.
type MockProvisioner struct {
	NameFunc            func() string
	CheckFunc           func() error
	CleanupFunc         func() error
	ConvergeFunc        func(playbook string) (string, error)
	CreateFunc          func() error
	DestroyFunc         func() error
	PrepareFunc         func() error
	SideEffectFunc      func() error
	SyntaxFunc          func() error
	VerifyFunc          func() error
	WriteConfigFunc     func() error
	ManageInventoryFunc func() error
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockProvisioner creates a new instance of MockProvisioner.
func NewMockProvisioner() *MockProvisioner {
	return &MockProvisioner{}
}

// =============================================================================
// Public Methods
// =============================================================================

// Name calls the mock NameFunc if set, otherwise returns "mock".
func (m *MockProvisioner) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

// Check calls the mock CheckFunc if set, otherwise returns nil.
func (m *MockProvisioner) Check() error {
	if m.CheckFunc != nil {
		return m.CheckFunc()
	}
	return nil
}

// Cleanup calls the mock CleanupFunc if set, otherwise returns nil.
func (m *MockProvisioner) Cleanup() error {
	if m.CleanupFunc != nil {
		return m.CleanupFunc()
	}
	return nil
}

// Converge calls the mock ConvergeFunc if set, otherwise returns an empty output.
func (m *MockProvisioner) Converge(playbook string) (string, error) {
	if m.ConvergeFunc != nil {
		return m.ConvergeFunc(playbook)
	}
	return "", nil
}

// Create calls the mock CreateFunc if set, otherwise returns nil.
func (m *MockProvisioner) Create() error {
	if m.CreateFunc != nil {
		return m.CreateFunc()
	}
	return nil
}

// Destroy calls the mock DestroyFunc if set, otherwise returns nil.
func (m *MockProvisioner) Destroy() error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc()
	}
	return nil
}

// Prepare calls the mock PrepareFunc if set, otherwise returns nil.
func (m *MockProvisioner) Prepare() error {
	if m.PrepareFunc != nil {
		return m.PrepareFunc()
	}
	return nil
}

// SideEffect calls the mock SideEffectFunc if set, otherwise returns nil.
func (m *MockProvisioner) SideEffect() error {
	if m.SideEffectFunc != nil {
		return m.SideEffectFunc()
	}
	return nil
}

// Syntax calls the mock SyntaxFunc if set, otherwise returns nil.
func (m *MockProvisioner) Syntax() error {
	if m.SyntaxFunc != nil {
		return m.SyntaxFunc()
	}
	return nil
}

// Verify calls the mock VerifyFunc if set, otherwise returns nil.
func (m *MockProvisioner) Verify() error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc()
	}
	return nil
}

// WriteConfig calls the mock WriteConfigFunc if set, otherwise returns nil.
func (m *MockProvisioner) WriteConfig() error {
	if m.WriteConfigFunc != nil {
		return m.WriteConfigFunc()
	}
	return nil
}

// ManageInventory calls the mock ManageInventoryFunc if set, otherwise returns nil.
func (m *MockProvisioner) ManageInventory() error {
	if m.ManageInventoryFunc != nil {
		return m.ManageInventoryFunc()
	}
	return nil
}

// Ensure MockProvisioner implements the Provisioner interface
var _ Provisioner = (*MockProvisioner)(nil)
