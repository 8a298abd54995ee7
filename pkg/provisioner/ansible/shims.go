// The shims package is a system call abstraction layer
// It provides mockable wrappers around filesystem, environment and YAML functions
// It serves as a testing aid by allowing system calls to be intercepted

package ansible

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
	WriteFile     func(string, []byte, os.FileMode) error
	Stat          func(string) (os.FileInfo, error)
	Lstat         func(string) (os.FileInfo, error)
	MkdirAll      func(string, os.FileMode) error
	Remove        func(string) error
	RemoveAll     func(string) error
	Symlink       func(string, string) error
	Getenv        func(string) string
	Environ       func() []string
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
		WriteFile:     os.WriteFile,
		Stat:          os.Stat,
		Lstat:         os.Lstat,
		MkdirAll:      os.MkdirAll,
		Remove:        os.Remove,
		RemoveAll:     os.RemoveAll,
		Symlink:       os.Symlink,
		Getenv:        os.Getenv,
		Environ:       os.Environ,
		UserHomeDir:   os.UserHomeDir,
		YamlMarshal:   yaml.Marshal,
		YamlUnmarshal: yaml.Unmarshal,
	}
}
