package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"time"

	"github.com/briandowns/spinner"
)

// The Shell package is a unified interface for running external tools.
// It provides command execution with inherited or explicit environments, progress display and exit code handling.
// Every call to ansible-playbook and friends goes through this package so callers can be tested with MockShell.

// =============================================================================
// Types
// =============================================================================

// Shell is the interface that defines shell operations.
type Shell interface {
	SetVerbosity(verbose bool)
	Exec(command string, args ...string) (string, error)
	ExecProgress(message string, command string, args ...string) (string, error)
	ExecWithEnv(dir string, env map[string]string, command string, args ...string) (string, error)
	LookPath(file string) (string, error)
}

// DefaultShell is the default implementation of the Shell interface
type DefaultShell struct {
	verbose bool
	shims   *Shims
}

// =============================================================================
// Constructor
// =============================================================================

// NewDefaultShell creates a new instance of DefaultShell
func NewDefaultShell() *DefaultShell {
	return &DefaultShell{
		shims:   NewShims(),
		verbose: false,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// SetVerbosity sets the verbosity flag
func (s *DefaultShell) SetVerbosity(verbose bool) {
	s.verbose = verbose
}

// Exec runs a command with args in the current environment, streaming its output to the
// terminal while capturing stdout, which is returned.
func (s *DefaultShell) Exec(command string, args ...string) (string, error) {
	return s.ExecWithEnv("", nil, command, args...)
}

// ExecWithEnv runs a command in dir with exactly the given environment. A nil env inherits
// the current process environment; an empty dir keeps the working directory. Stdout and
// stderr are streamed to the terminal and stdout is also returned. A non-zero exit is
// returned as an error wrapping *exec.ExitError, see ExitCode.
func (s *DefaultShell) ExecWithEnv(dir string, env map[string]string, command string, args ...string) (string, error) {
	cmd := s.shims.Command(command, args...)
	if cmd == nil {
		return "", fmt.Errorf("failed to create command")
	}

	var stdoutBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(s.shims.Stdout(), &stdoutBuf)
	cmd.Stderr = s.shims.Stderr()
	cmd.Dir = dir
	if env != nil {
		cmd.Env = renderEnv(env)
	} else if cmd.Env == nil {
		cmd.Env = s.shims.Environ()
	}

	if err := s.shims.CmdStart(cmd); err != nil {
		return stdoutBuf.String(), fmt.Errorf("command start failed: %w", err)
	}
	if err := s.shims.CmdWait(cmd); err != nil {
		return stdoutBuf.String(), fmt.Errorf("command execution failed: %w", err)
	}
	return stdoutBuf.String(), nil
}

// ExecProgress runs a command behind a spinner carrying message. In verbose mode, or when
// stderr is not a terminal, it prints the message and falls back to Exec.
func (s *DefaultShell) ExecProgress(message string, command string, args ...string) (string, error) {
	if s.verbose || !s.shims.IsTerminal(s.shims.StderrFd()) {
		fmt.Fprintln(s.shims.Stderr(), message)
		return s.Exec(command, args...)
	}

	cmd := s.shims.Command(command, args...)
	if cmd == nil {
		return "", fmt.Errorf("failed to create command")
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if cmd.Env == nil {
		cmd.Env = s.shims.Environ()
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithColor("green"), spinner.WithWriter(s.shims.Stderr()))
	spin.Suffix = " " + message
	spin.Start()
	err := s.shims.CmdRun(cmd)
	spin.Stop()

	if err != nil {
		fmt.Fprintf(s.shims.Stderr(), "\033[31m✗ %s - Failed\033[0m\n%s", message, stderrBuf.String())
		return stdoutBuf.String(), fmt.Errorf("command execution failed: %w", err)
	}

	fmt.Fprintf(s.shims.Stderr(), "\033[32m✔\033[0m %s - \033[32mDone\033[0m\n", message)
	return stdoutBuf.String(), nil
}

// LookPath searches for an executable in the directories named by PATH.
func (s *DefaultShell) LookPath(file string) (string, error) {
	return s.shims.LookPath(file)
}

// =============================================================================
// Helpers
// =============================================================================

// ExitCode extracts the process exit status from an error returned by the shell.
// Errors that did not come from a finished process map to 1, and nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// renderEnv turns an environment map into KEY=value pairs in a stable order
func renderEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result, key+"="+env[key])
	}
	return result
}

// =============================================================================
// Interface Compliance
// =============================================================================

// Ensure DefaultShell implements the Shell interface
var _ Shell = (*DefaultShell)(nil)
