package registry

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/growlog/internal/models"
)

func TestExportImport_RoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")
	a.AddEvent("Watered", "2024-05-01")
	a.AddHeightMeasurement(10, "2024-05-01")
	r.UpdatePhase(a.ID, models.PhaseVegetative)
	b := mustAdd(t, r, "B", "2024-04-02")
	r.ArchivePlant(b.ID)

	exported, err := r.ExportAll()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestRegistry(t)
	if err := other.ImportAll(exported); err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(other.Active()) != 1 || len(other.Archived()) != 1 {
		t.Fatalf("expected 1 active + 1 archived, got %d + %d",
			len(other.Active()), len(other.Archived()))
	}
	got := other.FindActive(a.ID)
	if got == nil {
		t.Fatal("imported plant not findable by original id")
	}
	want, _ := json.Marshal(a)
	have, _ := json.Marshal(got)
	if string(want) != string(have) {
		t.Errorf("imported plant differs:\n%s\n%s", want, have)
	}
	if other.IsExpanded(a.ID) {
		t.Error("imported plants must start collapsed")
	}
}

func TestImportAll_BareArrayReplacesActiveOnly(t *testing.T) {
	r := newTestRegistry(t)
	old := mustAdd(t, r, "Old", "2024-01-01")
	kept := mustAdd(t, r, "Kept", "2024-01-02")
	r.ArchivePlant(kept.ID)

	err := r.ImportAll(`[{"id":"new","name":"New","seedDate":"2024-06-01"}]`)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if r.FindActive(old.ID) != nil {
		t.Error("bare-array import must replace the active collection")
	}
	if r.FindActive("new") == nil {
		t.Error("imported plant missing")
	}
	if r.FindArchived(kept.ID) == nil {
		t.Error("bare-array import must leave archived untouched")
	}
}

func TestImportAll_AtomicOnFailure(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "Survivor", "2024-04-01")
	r.ToggleSelect(p.ID)

	bad := []string{
		`not json`,
		`{"archivedPlants":[]}`,                  // missing plants array
		`[{"id":"x"}]`,                           // missing required fields
		`[{"name":"ok","seedDate":"2024-01-01"}, {"id":"y"}]`, // second element bad
		`"just a string"`,
		`[{"id":"d","name":"A","seedDate":"2024-01-01"},{"id":"d","name":"B","seedDate":"2024-01-02"}]`, // duplicate ids
	}
	for _, input := range bad {
		if err := r.ImportAll(input); err == nil {
			t.Errorf("expected import of %q to fail", input)
		}
		if len(r.Active()) != 1 || r.FindActive(p.ID) == nil {
			t.Fatalf("failed import of %q mutated state", input)
		}
		if !r.IsSelected(p.ID) {
			t.Errorf("failed import of %q touched the selection", input)
		}
	}
}

func TestImportAll_GeneratesMissingIDs(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.ImportAll(`[{"name":"NoID","seedDate":"2024-06-01"}]`); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(r.Active()) != 1 {
		t.Fatalf("expected one plant, got %d", len(r.Active()))
	}
	if r.Active()[0].ID == "" {
		t.Error("expected a generated id for a plant imported without one")
	}
}

func TestImportAll_RejectsCrossCollectionDuplicate(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "A", "2024-04-01")
	r.ArchivePlant(p.ID)

	// Array import keeps the archive, so reusing an archived id must fail.
	err := r.ImportAll(`[{"id":"` + p.ID + `","name":"Clash","seedDate":"2024-06-01"}]`)
	if err == nil {
		t.Error("expected import reusing an archived id to fail")
	}
}
