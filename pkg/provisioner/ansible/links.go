package ansible

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

// inventoryLink is one validated link from the inventory directory to a user source
type inventoryLink struct {
	source string
	target string
}

// =============================================================================
// Public Methods
// =============================================================================

// LinkOrUpdateVars replaces entries of the inventory directory with symlinks to the sources
// named in inventory.links. Sources are relative to the scenario directory. Every source is
// checked before anything is changed on disk, so a missing source leaves the directory as it was.
func (a *Ansible) LinkOrUpdateVars() error {
	links := a.Links()
	inventoryDir := a.InventoryDirectory()

	resolved := make([]inventoryLink, 0, len(links))
	for _, name := range slices.Sorted(maps.Keys(links)) {
		source := a.absPath(links[name])
		if _, err := a.shims.Stat(source); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return sysExit(a.logger, fmt.Sprintf("The source path '%s' does not exist.", source), 1)
			}
			return fmt.Errorf("error checking link source %s: %w", source, err)
		}
		resolved = append(resolved, inventoryLink{
			source: source,
			target: filepath.Join(inventoryDir, name),
		})
	}

	if err := a.shims.MkdirAll(inventoryDir, 0755); err != nil {
		return fmt.Errorf("error creating inventory directory: %w", err)
	}

	for _, link := range resolved {
		if err := a.removePath(link.target); err != nil {
			return err
		}
		if err := a.shims.Symlink(link.source, link.target); err != nil {
			return fmt.Errorf("error linking %s to %s: %w", link.source, link.target, err)
		}
		a.logger.Info("Inventory linked", zap.String("source", link.source), zap.String("target", link.target))
	}

	return nil
}
