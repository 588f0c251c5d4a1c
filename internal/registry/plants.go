// Package registry holds the authoritative in-memory state of the tracker:
// the plant collections, the quick-card catalog, the multi-select set, and
// the per-plant expand flags. Every mutation persists the affected keys and
// notifies render observers; persistence failure is logged and non-fatal, so
// in-memory state stays authoritative for the session.
package registry

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/growlog/internal/kvstore"
	"github.com/julianstephens/growlog/internal/logging"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/validation"
)

// FilterAll shows every active plant regardless of phase.
const FilterAll = "all"

// PlantRegistry owns the active and archived plant collections plus the
// transient view state that must survive re-renders.
type PlantRegistry struct {
	store    kvstore.Store
	active   []*models.Plant
	archived []*models.Plant
	selected map[string]bool
	expanded map[string]bool
	filter   string
	now      func() time.Time

	renderListeners []func()
}

var (
	plantsOnce sync.Once
	plants     *PlantRegistry
)

// Plants returns the shared plant registry, creating it against store on the
// first call. Subsequent calls return the same instance so listener
// registrations and loaded state are never silently re-initialized.
func Plants(store kvstore.Store) *PlantRegistry {
	plantsOnce.Do(func() {
		plants = NewPlantRegistry(store)
	})
	return plants
}

// NewPlantRegistry creates an unshared registry. The Plants accessor wires
// the session singleton; tests construct their own.
func NewPlantRegistry(store kvstore.Store) *PlantRegistry {
	return &PlantRegistry{
		store:    store,
		selected: make(map[string]bool),
		expanded: make(map[string]bool),
		filter:   FilterAll,
		now:      time.Now,
	}
}

// SetClock overrides the registry clock. Tests use it to pin "today".
func (r *PlantRegistry) SetClock(now func() time.Time) {
	r.now = now
}

// Today returns the current date in storage format.
func (r *PlantRegistry) Today() string {
	return r.now().Format(validation.DateLayout)
}

// OnRender registers a listener invoked after every mutation's re-render.
// This replaces ad-hoc wrapping of render functions: collaborators subscribe
// here instead of reassigning each other's methods.
func (r *PlantRegistry) OnRender(fn func()) {
	r.renderListeners = append(r.renderListeners, fn)
}

func (r *PlantRegistry) notifyRender() {
	for _, fn := range r.renderListeners {
		fn()
	}
}

// Load restores all collections from the store. Individual entities that
// fail to decode are dropped with a logged count rather than aborting the
// whole load.
func (r *PlantRegistry) Load() error {
	if err := r.store.Load(); err != nil {
		return err
	}

	r.active = r.loadPlants(kvstore.KeyPlants)
	r.archived = r.loadPlants(kvstore.KeyArchivedPlants)

	r.expanded = make(map[string]bool)
	if raw, ok := r.getItem(kvstore.KeyExpandedEvents); ok {
		if err := json.Unmarshal([]byte(raw), &r.expanded); err != nil {
			logging.Logger().Warn("discarding unreadable expand state", "err", err)
			r.expanded = make(map[string]bool)
		}
	}

	r.selected = make(map[string]bool)
	if raw, ok := r.getItem(kvstore.KeySelectedPlants); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			logging.Logger().Warn("discarding unreadable selection", "err", err)
		} else {
			for _, id := range ids {
				if r.findActive(id) != nil {
					r.selected[id] = true
				}
			}
		}
	}

	// Expand entries exist for exactly the active set.
	for id := range r.expanded {
		if r.findActive(id) == nil {
			delete(r.expanded, id)
		}
	}
	for _, p := range r.active {
		if _, ok := r.expanded[p.ID]; !ok {
			r.expanded[p.ID] = false
		}
	}

	return nil
}

func (r *PlantRegistry) loadPlants(key string) []*models.Plant {
	raw, ok := r.getItem(key)
	if !ok {
		return []*models.Plant{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		logging.Logger().Error("discarding unreadable plant collection", "key", key, "err", err)
		return []*models.Plant{}
	}

	plants := make([]*models.Plant, 0, len(elements))
	dropped := 0
	for _, element := range elements {
		var p models.Plant
		if err := json.Unmarshal(element, &p); err != nil || p.ID == "" {
			dropped++
			continue
		}
		plants = append(plants, &p)
	}
	if dropped > 0 {
		logging.Logger().Warn("dropped corrupted plant entries", "key", key, "count", dropped)
	}
	return plants
}

func (r *PlantRegistry) getItem(key string) (string, bool) {
	raw, ok, err := r.store.GetItem(key)
	if err != nil {
		logging.Logger().Error("storage read failed", "key", key, "err", err)
		return "", false
	}
	return raw, ok
}

// setItem persists one key, logging instead of propagating failure.
func (r *PlantRegistry) setItem(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Logger().Error("failed to serialize state", "key", key, "err", err)
		return
	}
	if err := r.store.SetItem(key, string(data)); err != nil {
		logging.Logger().Error("storage write failed", "key", key, "err", err)
	}
}

func (r *PlantRegistry) persistActive()   { r.setItem(kvstore.KeyPlants, r.active) }
func (r *PlantRegistry) persistArchived() { r.setItem(kvstore.KeyArchivedPlants, r.archived) }
func (r *PlantRegistry) persistExpanded() { r.setItem(kvstore.KeyExpandedEvents, r.expanded) }

func (r *PlantRegistry) persistSelection() {
	ids := make([]string, 0, len(r.selected))
	for _, p := range r.active {
		if r.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	r.setItem(kvstore.KeySelectedPlants, ids)
}

// Active returns the active collection in insertion order.
func (r *PlantRegistry) Active() []*models.Plant {
	return r.active
}

// Archived returns the archived collection in insertion order.
func (r *PlantRegistry) Archived() []*models.Plant {
	return r.archived
}

func (r *PlantRegistry) findActive(id string) *models.Plant {
	for _, p := range r.active {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindActive looks up an active plant by id, nil if absent.
func (r *PlantRegistry) FindActive(id string) *models.Plant {
	return r.findActive(id)
}

// FindArchived looks up an archived plant by id, nil if absent.
func (r *PlantRegistry) FindArchived(id string) *models.Plant {
	for _, p := range r.archived {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPlant validates and creates a plant in the active collection. If a
// batch selection is already underway the new plant joins it, so repeated
// adds accumulate targets for bulk event entry.
func (r *PlantRegistry) AddPlant(name, seedDate string, opts models.PlantOptions) (*models.Plant, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(seedDate) == "" {
		return nil, fmt.Errorf("%w: name and seed date are required", ErrEmptyField)
	}
	if !validation.ValidDate(seedDate) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, seedDate)
	}

	p := models.NewPlant(name, seedDate, opts)
	r.active = append(r.active, p)
	r.expanded[p.ID] = false

	if len(r.selected) > 0 {
		r.selected[p.ID] = true
		r.persistSelection()
	}

	r.persistActive()
	r.persistExpanded()
	r.notifyRender()
	return p, nil
}

// RenamePlant updates a plant's name. Blank names are a silent no-op.
func (r *PlantRegistry) RenamePlant(id, newName string) bool {
	if strings.TrimSpace(newName) == "" {
		return false
	}
	p := r.findActive(id)
	if p == nil {
		p = r.FindArchived(id)
	}
	if p == nil {
		logging.Logger().Debug("rename target not found", "id", id)
		return false
	}

	p.Name = newName
	r.persistActive()
	r.persistArchived()
	r.notifyRender()
	return true
}

// UpdatePhase moves an active plant to a new growth stage, logging the
// synthetic phase-change event dated today.
func (r *PlantRegistry) UpdatePhase(id string, phase models.Phase) error {
	if !models.ValidPhase(phase) {
		return fmt.Errorf("unknown phase %q", phase)
	}
	p := r.findActive(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	p.UpdatePhase(phase, r.now())
	r.persistActive()
	r.notifyRender()
	return nil
}

// AddEventToPlant appends one event to a single active plant.
func (r *PlantRegistry) AddEventToPlant(id, eventType, date string) error {
	if strings.TrimSpace(eventType) == "" {
		return fmt.Errorf("%w: event type is required", ErrEmptyField)
	}
	if !validation.ValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	p := r.findActive(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	p.AddEvent(eventType, date)
	r.persistActive()
	r.notifyRender()
	return nil
}

// RemoveEventFromPlant removes an event by position. False if the plant is
// not active or the index is out of bounds.
func (r *PlantRegistry) RemoveEventFromPlant(id string, index int) bool {
	p := r.findActive(id)
	if p == nil {
		logging.Logger().Debug("event removal target not found", "id", id)
		return false
	}
	if !p.RemoveEvent(index) {
		return false
	}

	r.persistActive()
	r.notifyRender()
	return true
}

// AddEventToSelected appends the event to every selected active plant.
// Validation failures touch zero plants; otherwise every selected plant is
// updated and the count reported.
func (r *PlantRegistry) AddEventToSelected(eventType, date string) (int, error) {
	if len(r.selected) == 0 {
		return 0, ErrEmptySelection
	}
	if strings.TrimSpace(eventType) == "" {
		return 0, fmt.Errorf("%w: event type is required", ErrEmptyField)
	}
	if !validation.ValidDate(date) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	count := 0
	for _, p := range r.active {
		if r.selected[p.ID] {
			p.AddEvent(eventType, date)
			count++
		}
	}

	r.persistActive()
	r.notifyRender()
	return count, nil
}

// AddHeightToSelected appends a height measurement to every selected plant.
func (r *PlantRegistry) AddHeightToSelected(height float64, date string) (int, error) {
	if err := r.checkMeasurement(height, date); err != nil {
		return 0, err
	}

	count := 0
	for _, p := range r.active {
		if r.selected[p.ID] {
			p.AddHeightMeasurement(height, date)
			count++
		}
	}

	r.persistActive()
	r.notifyRender()
	return count, nil
}

// AddWeightToSelected appends a weight measurement to every selected plant.
func (r *PlantRegistry) AddWeightToSelected(weight float64, date string) (int, error) {
	if err := r.checkMeasurement(weight, date); err != nil {
		return 0, err
	}

	count := 0
	for _, p := range r.active {
		if r.selected[p.ID] {
			p.AddWeightMeasurement(weight, date)
			count++
		}
	}

	r.persistActive()
	r.notifyRender()
	return count, nil
}

func (r *PlantRegistry) checkMeasurement(value float64, date string) error {
	if len(r.selected) == 0 {
		return ErrEmptySelection
	}
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
	if !validation.ValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// ArchivePlant moves a plant from the active to the archived collection,
// dropping its transient view state. False if the id is not active.
func (r *PlantRegistry) ArchivePlant(id string) bool {
	for i, p := range r.active {
		if p.ID != id {
			continue
		}
		r.active = append(r.active[:i], r.active[i+1:]...)
		r.archived = append(r.archived, p)
		delete(r.expanded, id)
		delete(r.selected, id)

		r.persistActive()
		r.persistArchived()
		r.persistExpanded()
		r.persistSelection()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("archive target not found", "id", id)
	return false
}

// UnarchivePlant moves a plant back to the active collection with a fresh
// collapsed expand entry.
func (r *PlantRegistry) UnarchivePlant(id string) bool {
	for i, p := range r.archived {
		if p.ID != id {
			continue
		}
		r.archived = append(r.archived[:i], r.archived[i+1:]...)
		r.active = append(r.active, p)
		r.expanded[id] = false

		r.persistActive()
		r.persistArchived()
		r.persistExpanded()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("unarchive target not found", "id", id)
	return false
}

// DeletePlant permanently removes an active plant. Confirmation is the UI
// boundary's job, not this method's.
func (r *PlantRegistry) DeletePlant(id string) bool {
	for i, p := range r.active {
		if p.ID != id {
			continue
		}
		r.active = append(r.active[:i], r.active[i+1:]...)
		delete(r.expanded, id)
		delete(r.selected, id)

		r.persistActive()
		r.persistExpanded()
		r.persistSelection()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("delete target not found", "id", id)
	return false
}

// DeleteArchivedPlant permanently removes a plant from the archive.
func (r *PlantRegistry) DeleteArchivedPlant(id string) bool {
	for i, p := range r.archived {
		if p.ID != id {
			continue
		}
		r.archived = append(r.archived[:i], r.archived[i+1:]...)
		delete(r.expanded, id)
		delete(r.selected, id)

		r.persistArchived()
		r.persistExpanded()
		r.persistSelection()
		r.notifyRender()
		return true
	}
	logging.Logger().Debug("archived delete target not found", "id", id)
	return false
}

// ToggleSelect flips a plant's membership in the bulk-operation selection.
// Only active plants are selectable.
func (r *PlantRegistry) ToggleSelect(id string) bool {
	if r.findActive(id) == nil {
		logging.Logger().Debug("selection target not active", "id", id)
		return false
	}

	if r.selected[id] {
		delete(r.selected, id)
	} else {
		r.selected[id] = true
	}
	r.persistSelection()
	r.notifyRender()
	return true
}

// ClearSelection empties the bulk-operation selection.
func (r *PlantRegistry) ClearSelection() {
	r.selected = make(map[string]bool)
	r.persistSelection()
	r.notifyRender()
}

// IsSelected reports a plant's selection membership; the render layer uses
// this to restore highlight markers after every rebuild.
func (r *PlantRegistry) IsSelected(id string) bool {
	return r.selected[id]
}

// SelectedIDs returns the selected ids in active-collection order.
func (r *PlantRegistry) SelectedIDs() []string {
	ids := make([]string, 0, len(r.selected))
	for _, p := range r.active {
		if r.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// ToggleEventsExpanded flips whether a plant's event panel is open and
// persists the flag so it survives both re-renders and restarts.
func (r *PlantRegistry) ToggleEventsExpanded(id string) bool {
	if r.findActive(id) == nil {
		return false
	}

	r.expanded[id] = !r.expanded[id]
	r.persistExpanded()
	r.notifyRender()
	return true
}

// IsExpanded reports whether a plant's event panel is open.
func (r *PlantRegistry) IsExpanded(id string) bool {
	return r.expanded[id]
}

// SetFilter sets the phase filter tab. View-only state, not persisted.
func (r *PlantRegistry) SetFilter(filter string) {
	r.filter = filter
	r.notifyRender()
}

// Filter returns the current phase filter tab.
func (r *PlantRegistry) Filter() string {
	return r.filter
}

// Filtered returns the active plants passing the current phase filter.
func (r *PlantRegistry) Filtered() []*models.Plant {
	if r.filter == "" || r.filter == FilterAll {
		return r.active
	}
	var out []*models.Plant
	for _, p := range r.active {
		if string(p.Phase) == r.filter {
			out = append(out, p)
		}
	}
	return out
}
