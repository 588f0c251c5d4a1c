package cli

import (
	"fmt"

	"github.com/julianstephens/growlog/internal/kvstore"
	"github.com/julianstephens/growlog/internal/registry"
)

// Context carries the shared store and registries into every command.
type Context struct {
	Store  kvstore.Store
	Plants *registry.PlantRegistry
	Cards  *registry.QuickCardRegistry
}

// load restores both registries from storage. Every command except init
// starts here.
func (c *Context) load() error {
	if err := c.Plants.Load(); err != nil {
		return err
	}
	if err := c.Cards.Load(); err != nil {
		return fmt.Errorf("failed to load quick cards: %w", err)
	}
	return nil
}

// resolvePlant accepts an id or an exact plant name and returns the matching
// active plant's id, so commands stay usable without copying UUIDs around.
func (c *Context) resolvePlant(ref string) (string, error) {
	if p := c.Plants.FindActive(ref); p != nil {
		return p.ID, nil
	}
	for _, p := range c.Plants.Active() {
		if p.Name == ref {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no active plant with id or name %q", ref)
}
