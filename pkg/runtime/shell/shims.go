// The shims package is a system call abstraction layer
// It provides mockable wrappers around process execution and terminal functions
// It serves as a testing aid by allowing system calls to be intercepted

package shell

import (
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// =============================================================================
// Types
// =============================================================================

// Shims provides mockable wrappers around system and runtime functions
type Shims struct {
	// Standard I/O operations
	Stderr func() io.Writer
	Stdout func() io.Writer

	// Exec operations
	Command  func(name string, arg ...string) *exec.Cmd
	Environ  func() []string
	LookPath func(file string) (string, error)
	CmdRun   func(cmd *exec.Cmd) error
	CmdStart func(cmd *exec.Cmd) error
	CmdWait  func(cmd *exec.Cmd) error

	// Terminal operations
	IsTerminal func(fd int) bool
	StderrFd   func() int
}

// =============================================================================
// Constructor
// =============================================================================

// NewShims creates a new Shims instance with default implementations
func NewShims() *Shims {
	return &Shims{
		Stderr: func() io.Writer {
			return os.Stderr
		},
		Stdout: func() io.Writer {
			return os.Stdout
		},

		Command:  exec.Command,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
		CmdRun:   (*exec.Cmd).Run,
		CmdStart: (*exec.Cmd).Start,
		CmdWait:  (*exec.Cmd).Wait,

		IsTerminal: term.IsTerminal,
		StderrFd: func() int {
			return int(os.Stderr.Fd())
		},
	}
}
