package runtime

import (
	"github.com/windsorcli/molecule/pkg/runtime/config"
	"github.com/windsorcli/molecule/pkg/runtime/shell"
	"github.com/windsorcli/molecule/pkg/runtime/tools"
	"go.uber.org/zap"
)

// The Runtime package holds the dependencies shared by every molecule command.
// Loaders are chained and stop at the first error, which Do returns.
// Dependencies supplied up front are kept, so tests can inject mocks.

// =============================================================================
// Types
// =============================================================================

// Dependencies are the components a Runtime loads. Fields left nil are created by the loaders.
type Dependencies struct {
	ProjectRoot   string
	Logger        *zap.Logger
	Shell         shell.Shell
	ConfigHandler config.ConfigHandler
	ToolsManager  tools.ToolsManager
}

// Runtime encapsulates the molecule runtime dependencies
type Runtime struct {
	Dependencies

	Shims *Shims

	err error
}

// =============================================================================
// Constructor
// =============================================================================

// NewRuntime creates a Runtime, seeded with deps when given
func NewRuntime(deps ...*Dependencies) *Runtime {
	r := &Runtime{
		Shims: NewShims(),
	}
	if len(deps) > 0 && deps[0] != nil {
		r.Dependencies = *deps[0]
	}
	return r
}

// =============================================================================
// Public Methods
// =============================================================================

// Do returns the first error raised by the preceding loaders, or nil
func (r *Runtime) Do() error {
	return r.err
}
