package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/julianstephens/growlog/internal/kvstore"
	"github.com/julianstephens/growlog/internal/logging"
	"github.com/julianstephens/growlog/internal/models"
)

// QuickCardRegistry owns the catalog of reusable event templates. Applying a
// card to a plant goes through the live PlantRegistry state, never a re-read
// storage snapshot, so unsaved in-memory changes are never discarded.
type QuickCardRegistry struct {
	store  kvstore.Store
	plants *PlantRegistry
	cards  []*models.QuickCard

	renderListeners []func()
}

var (
	cardsOnce sync.Once
	cards     *QuickCardRegistry
)

// Cards returns the shared quick-card registry bound to the shared plant
// registry, creating both on first use.
func Cards(store kvstore.Store) *QuickCardRegistry {
	cardsOnce.Do(func() {
		cards = NewQuickCardRegistry(store, Plants(store))
	})
	return cards
}

// NewQuickCardRegistry creates an unshared registry. The catalog refreshes
// its view whenever the plant registry re-renders, since card drops change
// plant state.
func NewQuickCardRegistry(store kvstore.Store, plants *PlantRegistry) *QuickCardRegistry {
	r := &QuickCardRegistry{
		store:  store,
		plants: plants,
	}
	plants.OnRender(r.notifyRender)
	return r
}

// OnRender registers a listener invoked after every catalog change.
func (r *QuickCardRegistry) OnRender(fn func()) {
	r.renderListeners = append(r.renderListeners, fn)
}

func (r *QuickCardRegistry) notifyRender() {
	for _, fn := range r.renderListeners {
		fn()
	}
}

// Load restores the catalog, dropping individually corrupted entries.
func (r *QuickCardRegistry) Load() error {
	raw, ok, err := r.store.GetItem(kvstore.KeyQuickCards)
	if err != nil {
		return err
	}
	r.cards = []*models.QuickCard{}
	if !ok {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		logging.Logger().Error("discarding unreadable quick card catalog", "err", err)
		return nil
	}

	dropped := 0
	for _, element := range elements {
		var card models.QuickCard
		if err := json.Unmarshal(element, &card); err != nil || card.ID == "" || card.Label == "" {
			dropped++
			continue
		}
		r.cards = append(r.cards, &card)
	}
	if dropped > 0 {
		logging.Logger().Warn("dropped corrupted quick card entries", "count", dropped)
	}
	return nil
}

func (r *QuickCardRegistry) persist() {
	catalog := r.cards
	if catalog == nil {
		catalog = []*models.QuickCard{}
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		logging.Logger().Error("failed to serialize quick cards", "err", err)
		return
	}
	if err := r.store.SetItem(kvstore.KeyQuickCards, string(data)); err != nil {
		logging.Logger().Error("storage write failed", "key", kvstore.KeyQuickCards, "err", err)
	}
}

// AddQuickCard creates a card. Label and details are required and the label
// must be unique (case-sensitive) in the catalog.
func (r *QuickCardRegistry) AddQuickCard(label, details, icon string) (*models.QuickCard, error) {
	if strings.TrimSpace(label) == "" || strings.TrimSpace(details) == "" {
		return nil, fmt.Errorf("%w: label and details are required", ErrEmptyField)
	}
	for _, card := range r.cards {
		if card.Label == label {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
	}

	card := models.NewQuickCard(label, details, icon)
	r.cards = append(r.cards, card)
	r.persist()
	r.notifyRender()
	return card, nil
}

// DeleteQuickCard removes a card by id. By id rather than display position:
// the catalog is shown sorted, so indexes shift.
func (r *QuickCardRegistry) DeleteQuickCard(id string) bool {
	for i, card := range r.cards {
		if card.ID != id {
			continue
		}
		r.cards = append(r.cards[:i], r.cards[i+1:]...)
		r.persist()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("quick card delete target not found", "id", id)
	return false
}

// SetPinned pins or unpins a card, which only affects display ordering.
func (r *QuickCardRegistry) SetPinned(id string, pinned bool) bool {
	for _, card := range r.cards {
		if card.ID != id {
			continue
		}
		card.Pinned = pinned
		r.persist()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("quick card pin target not found", "id", id)
	return false
}

// Find looks up a card by id, nil if absent.
func (r *QuickCardRegistry) Find(id string) *models.QuickCard {
	for _, card := range r.cards {
		if card.ID == id {
			return card
		}
	}
	return nil
}

// FindByLabel looks up a card by its exact label, nil if absent.
func (r *QuickCardRegistry) FindByLabel(label string) *models.QuickCard {
	for _, card := range r.cards {
		if card.Label == label {
			return card
		}
	}
	return nil
}

// Sorted returns the catalog in display order: pinned before unpinned, then
// by label case-insensitively.
func (r *QuickCardRegistry) Sorted() []*models.QuickCard {
	out := make([]*models.QuickCard, len(r.cards))
	copy(out, r.cards)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// ApplyToPlant logs the card's label as an event dated today on the target
// active plant. Dropping the same card on the same plant twice in one day is
// a no-op, so re-drops never duplicate the event.
func (r *QuickCardRegistry) ApplyToPlant(plantID string, card *models.QuickCard) error {
	p := r.plants.FindActive(plantID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, plantID)
	}

	today := r.plants.Today()
	if p.HasEvent(card.Label, today) {
		logging.Logger().Debug("quick card already applied today", "plant", plantID, "label", card.Label)
		return nil
	}

	p.AddEvent(card.Label, today)
	r.plants.persistActive()
	r.plants.notifyRender()
	return nil
}
