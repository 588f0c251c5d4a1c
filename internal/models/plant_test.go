package models

import (
	"testing"
	"time"
)

func TestNewPlant_Defaults(t *testing.T) {
	p := NewPlant("Northern Lights", "2024-04-01", PlantOptions{})

	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Phase != PhaseSeedling {
		t.Errorf("expected initial phase %q, got %q", PhaseSeedling, p.Phase)
	}
	if len(p.Events) != 0 || len(p.HeightData) != 0 || len(p.WeightData) != 0 {
		t.Error("expected empty history on a new plant")
	}
}

func TestNewPlant_PreservesProvidedID(t *testing.T) {
	p := NewPlant("Imported", "2024-01-01", PlantOptions{ID: "fixed-id"})
	if p.ID != "fixed-id" {
		t.Errorf("expected provided id to be kept, got %q", p.ID)
	}
}

func TestAddEvent_AppendsAndReturns(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})

	ev := p.AddEvent("Watered", "2024-06-01")
	if ev.Type != "Watered" || ev.Date != "2024-06-01" {
		t.Errorf("unexpected event returned: %+v", ev)
	}
	if len(p.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(p.Events))
	}
}

func TestRemoveEvent_OutOfBounds(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})
	p.AddEvent("Watered", "2024-06-01")

	if p.RemoveEvent(-1) {
		t.Error("expected false for negative index")
	}
	if p.RemoveEvent(1) {
		t.Error("expected false for index past end")
	}
	if !p.RemoveEvent(0) {
		t.Error("expected true for valid index")
	}
	if len(p.Events) != 0 {
		t.Errorf("expected empty events after removal, got %d", len(p.Events))
	}
}

func TestRemoveEvent_MiddlePreservesOrder(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})
	p.AddEvent("A", "2024-06-01")
	p.AddEvent("B", "2024-06-02")
	p.AddEvent("C", "2024-06-03")

	if !p.RemoveEvent(1) {
		t.Fatal("expected removal to succeed")
	}
	if p.Events[0].Type != "A" || p.Events[1].Type != "C" {
		t.Errorf("unexpected events after removal: %+v", p.Events)
	}
}

func TestUpdatePhase_SetsPhaseAndLogsEvent(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	p.UpdatePhase(PhaseFlowering, now)

	if p.Phase != PhaseFlowering {
		t.Errorf("expected phase %q, got %q", PhaseFlowering, p.Phase)
	}
	if len(p.Events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(p.Events))
	}
	ev := p.Events[0]
	if ev.Type != "Phase Changed to Flowering" {
		t.Errorf("unexpected event type %q", ev.Type)
	}
	if ev.Date != "2024-06-15" {
		t.Errorf("unexpected event date %q", ev.Date)
	}
}

func TestHasEvent(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})
	p.AddEvent("Fed", "2024-06-01")

	if !p.HasEvent("Fed", "2024-06-01") {
		t.Error("expected HasEvent to find logged event")
	}
	if p.HasEvent("Fed", "2024-06-02") {
		t.Error("did not expect a match on a different date")
	}
	if p.HasEvent("Watered", "2024-06-01") {
		t.Error("did not expect a match on a different type")
	}
}

func TestMeasurements_Append(t *testing.T) {
	p := NewPlant("Test", "2024-04-01", PlantOptions{})

	h := p.AddHeightMeasurement(12.5, "2024-06-01")
	w := p.AddWeightMeasurement(3.2, "2024-06-01")

	if h.Height != 12.5 || w.Weight != 3.2 {
		t.Errorf("unexpected measurement records: %+v %+v", h, w)
	}
	if len(p.HeightData) != 1 || len(p.WeightData) != 1 {
		t.Error("expected one measurement in each series")
	}
}

func TestValidPhase(t *testing.T) {
	for _, phase := range Phases {
		if !ValidPhase(phase) {
			t.Errorf("expected %q to be valid", phase)
		}
	}
	if ValidPhase("Sprouting") {
		t.Error("did not expect unknown phase to be valid")
	}
}
