package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/growlog/internal/models"
)

// snapshot is the export file format. Import additionally accepts a bare
// array of plants from older exports, which replaces the active collection
// only.
type snapshot struct {
	Plants         []*models.Plant `json:"plants"`
	ArchivedPlants []*models.Plant `json:"archivedPlants"`
}

// ExportAll serializes both collections into an import-ready document.
func (r *PlantRegistry) ExportAll() (string, error) {
	data, err := json.MarshalIndent(snapshot{
		Plants:         r.activeOrEmpty(),
		ArchivedPlants: r.archivedOrEmpty(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(data), nil
}

func (r *PlantRegistry) activeOrEmpty() []*models.Plant {
	if r.active == nil {
		return []*models.Plant{}
	}
	return r.active
}

func (r *PlantRegistry) archivedOrEmpty() []*models.Plant {
	if r.archived == nil {
		return []*models.Plant{}
	}
	return r.archived
}

// ImportAll replaces the collections from an exported document. Structural
// failure aborts atomically: existing state is untouched unless every
// element validates. On success expand entries are regenerated collapsed and
// the selection keeps only ids still active.
func (r *PlantRegistry) ImportAll(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: empty input", ErrInvalidImport)
	}

	var (
		newActive    []*models.Plant
		newArchived  []*models.Plant
		haveArchived bool
	)

	switch trimmed[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &elements); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		active, err := decodePlants(elements)
		if err != nil {
			return err
		}
		newActive = active
	case '{':
		var doc struct {
			Plants         []json.RawMessage `json:"plants"`
			ArchivedPlants []json.RawMessage `json:"archivedPlants"`
		}
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		if doc.Plants == nil {
			return fmt.Errorf("%w: missing plants array", ErrInvalidImport)
		}
		active, err := decodePlants(doc.Plants)
		if err != nil {
			return err
		}
		archived, err := decodePlants(doc.ArchivedPlants)
		if err != nil {
			return err
		}
		newActive = active
		newArchived = archived
		haveArchived = true
	default:
		return fmt.Errorf("%w: expected array or object", ErrInvalidImport)
	}

	// Ids must stay unique across the union of both collections.
	ids := make(map[string]bool, len(newActive))
	for _, p := range newActive {
		ids[p.ID] = true
	}
	other := r.archived
	if haveArchived {
		other = newArchived
	}
	for _, p := range other {
		if ids[p.ID] {
			return fmt.Errorf("%w: id %s present in both collections", ErrInvalidImport, p.ID)
		}
	}

	// Everything validated; now it is safe to swap state.
	r.active = newActive
	if haveArchived {
		r.archived = newArchived
	}

	r.expanded = make(map[string]bool)
	for _, p := range r.active {
		r.expanded[p.ID] = false
	}
	for id := range r.selected {
		if r.findActive(id) == nil {
			delete(r.selected, id)
		}
	}

	r.persistActive()
	if haveArchived {
		r.persistArchived()
	}
	r.persistExpanded()
	r.persistSelection()
	r.notifyRender()
	return nil
}

// decodePlants strictly validates every element; one bad element fails the
// whole import so it never partially applies.
func decodePlants(elements []json.RawMessage) ([]*models.Plant, error) {
	plants := make([]*models.Plant, 0, len(elements))
	seen := make(map[string]bool)
	for i, element := range elements {
		var p models.Plant
		if err := json.Unmarshal(element, &p); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidImport, i, err)
		}
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.SeedDate) == "" {
			return nil, fmt.Errorf("%w: element %d missing name or seedDate", ErrInvalidImport, i)
		}
		imported := models.NewPlant(p.Name, p.SeedDate, models.PlantOptions{
			ID:               p.ID,
			Strain:           p.Strain,
			GrowMedium:       p.GrowMedium,
			LightCycle:       p.LightCycle,
			NutrientSchedule: p.NutrientSchedule,
		})
		if p.Phase != "" {
			imported.Phase = p.Phase
		}
		if p.Events != nil {
			imported.Events = p.Events
		}
		if p.HeightData != nil {
			imported.HeightData = p.HeightData
		}
		if p.WeightData != nil {
			imported.WeightData = p.WeightData
		}
		if seen[imported.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidImport, imported.ID)
		}
		seen[imported.ID] = true
		plants = append(plants, imported)
	}
	return plants, nil
}
