// The shims package is a system call abstraction layer
// It provides mockable wrappers around filesystem, environment and YAML functions
// It serves as a testing aid by allowing system calls to be intercepted

package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and runtime functions
type Shims struct {
	ReadFile      func(string) ([]byte, error)
	Stat          func(string) (os.FileInfo, error)
	LookupEnv     func(string) (string, bool)
	UserHomeDir   func() (string, error)
	YamlMarshal   func(any) ([]byte, error)
	YamlUnmarshal func([]byte, any) error
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	return &Shims{
		ReadFile:      os.ReadFile,
		Stat:          os.Stat,
		LookupEnv:     os.LookupEnv,
		UserHomeDir:   os.UserHomeDir,
		YamlMarshal:   yaml.Marshal,
		YamlUnmarshal: yaml.Unmarshal,
	}
}
