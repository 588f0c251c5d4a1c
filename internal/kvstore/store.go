// Package kvstore provides the durable key/value space backing the
// registries. Values are text; composite state is serialized to JSON by the
// caller before it gets here. Two backends exist behind the same interface,
// selected by the config path extension, and both survive restarts but are
// scoped to the local config directory.
package kvstore

// Storage keys used by the registries.
const (
	KeyPlants         = "plants"
	KeyArchivedPlants = "archivedPlants"
	KeyExpandedEvents = "expandedEvents"
	KeySelectedPlants = "selectedPlants"
	KeyQuickCards     = "quickCards"
)

// Store is a text-oriented key/value space that survives restarts.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	SetItem(key, value string) error
	GetItem(key string) (value string, ok bool, err error)
	RemoveItem(key string) error
	Clear() error

	// Keys lists all stored keys, sorted, for inspection commands.
	Keys() ([]string, error)

	// Path returns the backing file path.
	Path() string
}
