package models

import (
	"time"

	"github.com/julianstephens/growlog/internal/ident"
)

// Phase is a plant's current growth stage.
type Phase string

const (
	PhaseSeedling   Phase = "Seedling"
	PhaseMutter     Phase = "Mutter"
	PhaseVegetative Phase = "Vegetative"
	PhaseFlowering  Phase = "Flowering"
	PhaseDrying     Phase = "Drying"
	PhaseCuring     Phase = "Curing"
	PhaseHarvested  Phase = "Harvested"
)

// Phases lists all growth stages in lifecycle order.
var Phases = []Phase{
	PhaseSeedling,
	PhaseMutter,
	PhaseVegetative,
	PhaseFlowering,
	PhaseDrying,
	PhaseCuring,
	PhaseHarvested,
}

// ValidPhase reports whether p is one of the known growth stages.
func ValidPhase(p Phase) bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}

// PlantEvent is a single care event logged against a plant.
type PlantEvent struct {
	Type string `json:"type"`
	Date string `json:"date"` // YYYY-MM-DD format
}

// HeightMeasurement records a plant's height on a given day.
type HeightMeasurement struct {
	Height float64 `json:"height"`
	Date   string  `json:"date"` // YYYY-MM-DD format
}

// WeightMeasurement records a plant's weight on a given day.
type WeightMeasurement struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"` // YYYY-MM-DD format
}

// Plant is a single tracked plant with its care history.
type Plant struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	SeedDate         string              `json:"seedDate"` // YYYY-MM-DD format
	Strain           string              `json:"strain,omitempty"`
	GrowMedium       string              `json:"growMedium,omitempty"`
	LightCycle       string              `json:"lightCycle,omitempty"`
	NutrientSchedule string              `json:"nutrientSchedule,omitempty"`
	Phase            Phase               `json:"phase"`
	Events           []PlantEvent        `json:"events"`
	HeightData       []HeightMeasurement `json:"heightData"`
	WeightData       []WeightMeasurement `json:"weightData"`
}

// PlantOptions carries the optional free-text attributes for NewPlant.
type PlantOptions struct {
	ID               string
	Strain           string
	GrowMedium       string
	LightCycle       string
	NutrientSchedule string
}

// NewPlant creates a plant in the first growth stage. An id is generated
// unless opts supplies one (imports preserve existing ids).
func NewPlant(name, seedDate string, opts PlantOptions) *Plant {
	id := opts.ID
	if id == "" {
		id = ident.New()
	}
	return &Plant{
		ID:               id,
		Name:             name,
		SeedDate:         seedDate,
		Strain:           opts.Strain,
		GrowMedium:       opts.GrowMedium,
		LightCycle:       opts.LightCycle,
		NutrientSchedule: opts.NutrientSchedule,
		Phase:            PhaseSeedling,
		Events:           []PlantEvent{},
		HeightData:       []HeightMeasurement{},
		WeightData:       []WeightMeasurement{},
	}
}

// AddEvent appends a care event and returns the created record.
func (p *Plant) AddEvent(eventType, date string) PlantEvent {
	ev := PlantEvent{Type: eventType, Date: date}
	p.Events = append(p.Events, ev)
	return ev
}

// RemoveEvent removes the event at index. Returns false if index is out of
// bounds.
func (p *Plant) RemoveEvent(index int) bool {
	if index < 0 || index >= len(p.Events) {
		return false
	}
	p.Events = append(p.Events[:index], p.Events[index+1:]...)
	return true
}

// HasEvent reports whether an event with the given type and date is already
// logged. Used as the idempotency guard for quick-card drops.
func (p *Plant) HasEvent(eventType, date string) bool {
	for _, ev := range p.Events {
		if ev.Type == eventType && ev.Date == date {
			return true
		}
	}
	return false
}

// AddHeightMeasurement appends a height reading and returns the record.
func (p *Plant) AddHeightMeasurement(height float64, date string) HeightMeasurement {
	m := HeightMeasurement{Height: height, Date: date}
	p.HeightData = append(p.HeightData, m)
	return m
}

// AddWeightMeasurement appends a weight reading and returns the record.
func (p *Plant) AddWeightMeasurement(weight float64, date string) WeightMeasurement {
	m := WeightMeasurement{Weight: weight, Date: date}
	p.WeightData = append(p.WeightData, m)
	return m
}

// UpdatePhase moves the plant to a new growth stage and logs a synthetic
// event dated now, so phase history stays reconstructable from the event log.
func (p *Plant) UpdatePhase(phase Phase, now time.Time) PlantEvent {
	p.Phase = phase
	return p.AddEvent("Phase Changed to "+string(phase), now.Format("2006-01-02"))
}
