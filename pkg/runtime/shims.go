// The shims package is a system call abstraction layer
// It provides mockable wrappers around process state used while loading the runtime
// It serves as a testing aid by allowing system calls to be intercepted

package runtime

import (
	"io"
	"os"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and runtime functions
type Shims struct {
	Getwd     func() (string, error)
	LookupEnv func(string) (string, bool)
	Stderr    func() io.Writer
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	return &Shims{
		Getwd:     os.Getwd,
		LookupEnv: os.LookupEnv,
		Stderr: func() io.Writer {
			return os.Stderr
		},
	}
}
