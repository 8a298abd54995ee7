package shell

// The MockShell is a mock implementation of the Shell interface for testing purposes.
// It provides a way to simulate command execution without running external tools.

// =============================================================================
// Types
// =============================================================================

// MockShell is a mock implementation of the Shell interface
type MockShell struct {
	SetVerbosityFunc func(verbose bool)
	ExecFunc         func(command string, args ...string) (string, error)
	ExecProgressFunc func(message string, command string, args ...string) (string, error)
	ExecWithEnvFunc  func(dir string, env map[string]string, command string, args ...string) (string, error)
	LookPathFunc     func(file string) (string, error)
}

// =============================================================================
// Constructor
// =============================================================================

// NewMockShell creates a new instance of MockShell
func NewMockShell() *MockShell {
	return &MockShell{}
}

// =============================================================================
// Public Methods
// =============================================================================

// SetVerbosity calls the custom SetVerbosityFunc if provided.
func (s *MockShell) SetVerbosity(verbose bool) {
	if s.SetVerbosityFunc != nil {
		s.SetVerbosityFunc(verbose)
	}
}

// Exec calls the custom ExecFunc if provided.
func (s *MockShell) Exec(command string, args ...string) (string, error) {
	if s.ExecFunc != nil {
		return s.ExecFunc(command, args...)
	}
	return "", nil
}

// ExecProgress calls the custom ExecProgressFunc if provided.
func (s *MockShell) ExecProgress(message string, command string, args ...string) (string, error) {
	if s.ExecProgressFunc != nil {
		return s.ExecProgressFunc(message, command, args...)
	}
	return "", nil
}

// ExecWithEnv calls the custom ExecWithEnvFunc if provided.
func (s *MockShell) ExecWithEnv(dir string, env map[string]string, command string, args ...string) (string, error) {
	if s.ExecWithEnvFunc != nil {
		return s.ExecWithEnvFunc(dir, env, command, args...)
	}
	return "", nil
}

// LookPath calls the custom LookPathFunc if provided.
func (s *MockShell) LookPath(file string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Ensure MockShell implements the Shell interface
var _ Shell = (*MockShell)(nil)
