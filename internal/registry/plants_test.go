package registry

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/growlog/internal/kvstore"
	"github.com/julianstephens/growlog/internal/models"
)

func newTestStore(t *testing.T) *kvstore.FileStore {
	t.Helper()
	store := kvstore.NewFileStore(filepath.Join(t.TempDir(), "growlog.json"), false)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func newTestRegistry(t *testing.T) *PlantRegistry {
	t.Helper()
	r := NewPlantRegistry(newTestStore(t))
	if err := r.Load(); err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return r
}

func mustAdd(t *testing.T, r *PlantRegistry, name, seedDate string) *models.Plant {
	t.Helper()
	p, err := r.AddPlant(name, seedDate, models.PlantOptions{})
	if err != nil {
		t.Fatalf("add plant %q: %v", name, err)
	}
	return p
}

func TestAddPlant_LookupByID(t *testing.T) {
	r := newTestRegistry(t)

	p := mustAdd(t, r, "Northern Lights", "2024-04-01")

	found := r.FindActive(p.ID)
	if found == nil {
		t.Fatal("expected added plant to be findable")
	}
	if found.Name != "Northern Lights" || found.SeedDate != "2024-04-01" {
		t.Errorf("unexpected plant %+v", found)
	}
	if found.Phase != models.PhaseSeedling {
		t.Errorf("expected default phase, got %q", found.Phase)
	}
	if r.IsExpanded(p.ID) {
		t.Error("expected new plant to start collapsed")
	}
}

func TestAddPlant_Validation(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.AddPlant("", "2024-04-01", models.PlantOptions{}); err == nil {
		t.Error("expected empty name to fail")
	}
	if _, err := r.AddPlant("Plant", "", models.PlantOptions{}); err == nil {
		t.Error("expected empty seed date to fail")
	}
	if _, err := r.AddPlant("Plant", "2024-02-30", models.PlantOptions{}); err == nil {
		t.Error("expected invalid date to fail")
	}
	if len(r.Active()) != 0 {
		t.Errorf("expected no plants after failed adds, got %d", len(r.Active()))
	}
}

func TestAddPlant_JoinsOngoingSelection(t *testing.T) {
	r := newTestRegistry(t)

	first := mustAdd(t, r, "A", "2024-04-01")
	if r.IsSelected(first.ID) {
		t.Error("first add with empty selection must not self-select")
	}

	r.ToggleSelect(first.ID)
	second := mustAdd(t, r, "B", "2024-04-02")
	if !r.IsSelected(second.ID) {
		t.Error("add during an ongoing selection must join the batch")
	}
}

func TestUpdatePhase_BothEffects(t *testing.T) {
	r := newTestRegistry(t)
	r.SetClock(func() time.Time {
		return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	})
	p := mustAdd(t, r, "A", "2024-04-01")

	if err := r.UpdatePhase(p.ID, models.PhaseVegetative); err != nil {
		t.Fatalf("update phase: %v", err)
	}

	if p.Phase != models.PhaseVegetative {
		t.Errorf("expected phase Vegetative, got %q", p.Phase)
	}
	if len(p.Events) != 1 {
		t.Fatalf("expected exactly one synthetic event, got %d", len(p.Events))
	}
	if p.Events[0].Type != "Phase Changed to Vegetative" || p.Events[0].Date != "2024-06-15" {
		t.Errorf("unexpected synthetic event %+v", p.Events[0])
	}
}

func TestUpdatePhase_Rejections(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "A", "2024-04-01")

	if err := r.UpdatePhase(p.ID, "Sprouting"); err == nil {
		t.Error("expected unknown phase to be rejected")
	}
	if err := r.UpdatePhase("missing", models.PhaseDrying); err == nil {
		t.Error("expected missing plant to be rejected")
	}
}

func TestArchiveUnarchive_RoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "A", "2024-04-01")
	p.AddEvent("Watered", "2024-05-01")
	p.AddHeightMeasurement(10, "2024-05-01")
	r.ToggleEventsExpanded(p.ID)

	before, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !r.ArchivePlant(p.ID) {
		t.Fatal("archive failed")
	}
	if r.FindActive(p.ID) != nil {
		t.Error("archived plant still active")
	}
	if r.FindArchived(p.ID) == nil {
		t.Error("archived plant missing from archive")
	}
	if r.IsExpanded(p.ID) {
		t.Error("expand entry must be dropped on archive")
	}

	if !r.UnarchivePlant(p.ID) {
		t.Fatal("unarchive failed")
	}
	restored := r.FindActive(p.ID)
	if restored == nil {
		t.Fatal("unarchived plant missing from active collection")
	}
	after, _ := json.Marshal(restored)
	if string(before) != string(after) {
		t.Errorf("plant changed across archive round trip:\n%s\n%s", before, after)
	}
	if r.IsExpanded(p.ID) {
		t.Error("expand state must reset to collapsed after unarchive")
	}
}

func TestArchivePlant_NotFound(t *testing.T) {
	r := newTestRegistry(t)
	if r.ArchivePlant("missing") {
		t.Error("expected archive of unknown id to be a no-op returning false")
	}
}

func TestAddEventToSelected_TouchesOnlySelection(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")
	b := mustAdd(t, r, "B", "2024-04-01")
	c := mustAdd(t, r, "C", "2024-04-01")

	r.ToggleSelect(a.ID)
	r.ToggleSelect(b.ID)

	count, err := r.AddEventToSelected("Watered", "2024-06-01")
	if err != nil {
		t.Fatalf("bulk event: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	for _, p := range []*models.Plant{a, b} {
		if len(p.Events) != 1 || p.Events[0].Type != "Watered" || p.Events[0].Date != "2024-06-01" {
			t.Errorf("plant %s missing bulk event: %+v", p.Name, p.Events)
		}
	}
	if len(c.Events) != 0 {
		t.Errorf("unselected plant gained events: %+v", c.Events)
	}
}

func TestAddEventToSelected_Validation(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")

	if _, err := r.AddEventToSelected("Watered", "2024-06-01"); err == nil {
		t.Error("expected empty selection to fail")
	}

	r.ToggleSelect(a.ID)
	if _, err := r.AddEventToSelected("", "2024-06-01"); err == nil {
		t.Error("expected empty type to fail")
	}
	if _, err := r.AddEventToSelected("Watered", "2024-13-01"); err == nil {
		t.Error("expected invalid date to fail")
	}
	if len(a.Events) != 0 {
		t.Error("failed validation must touch zero plants")
	}
}

func TestMeasurementsToSelected(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")
	r.ToggleSelect(a.ID)

	if _, err := r.AddHeightToSelected(0, "2024-06-01"); err == nil {
		t.Error("expected non-positive height to fail")
	}
	if _, err := r.AddWeightToSelected(-1, "2024-06-01"); err == nil {
		t.Error("expected negative weight to fail")
	}

	count, err := r.AddHeightToSelected(12.5, "2024-06-01")
	if err != nil || count != 1 {
		t.Fatalf("height: count=%d err=%v", count, err)
	}
	count, err = r.AddWeightToSelected(3.5, "2024-06-01")
	if err != nil || count != 1 {
		t.Fatalf("weight: count=%d err=%v", count, err)
	}
	if len(a.HeightData) != 1 || len(a.WeightData) != 1 {
		t.Error("expected one measurement in each series")
	}
}

func TestDeletePlant_DropsTransientState(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")
	b := mustAdd(t, r, "B", "2024-04-01")
	r.ToggleSelect(a.ID)
	r.ToggleEventsExpanded(a.ID)

	if !r.DeletePlant(a.ID) {
		t.Fatal("delete failed")
	}
	if r.IsSelected(a.ID) || r.IsExpanded(a.ID) {
		t.Error("delete must drop selection and expand entries")
	}

	// Deleting a never-selected plant must also succeed.
	if !r.DeletePlant(b.ID) {
		t.Error("delete of unselected plant failed")
	}
	if r.DeletePlant("missing") {
		t.Error("expected delete of unknown id to return false")
	}
}

func TestDeleteArchivedPlant(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "A", "2024-04-01")
	r.ArchivePlant(p.ID)

	if !r.DeleteArchivedPlant(p.ID) {
		t.Fatal("delete archived failed")
	}
	if len(r.Archived()) != 0 {
		t.Error("expected empty archive")
	}
	if r.DeleteArchivedPlant(p.ID) {
		t.Error("expected second delete to return false")
	}
}

func TestRenamePlant(t *testing.T) {
	r := newTestRegistry(t)
	p := mustAdd(t, r, "A", "2024-04-01")

	if r.RenamePlant(p.ID, "   ") {
		t.Error("expected blank rename to be a no-op")
	}
	if p.Name != "A" {
		t.Error("blank rename must not mutate")
	}
	if !r.RenamePlant(p.ID, "Aurora") {
		t.Error("expected rename to succeed")
	}
	if p.Name != "Aurora" {
		t.Errorf("expected renamed plant, got %q", p.Name)
	}
}

func TestSelection_SurvivesReload(t *testing.T) {
	store := newTestStore(t)
	r := NewPlantRegistry(store)
	if err := r.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	a := mustAdd(t, r, "A", "2024-04-01")
	mustAdd(t, r, "B", "2024-04-01")
	r.ToggleSelect(a.ID)
	r.ToggleEventsExpanded(a.ID)

	reloaded := NewPlantRegistry(kvstore.NewFileStore(store.Path(), false))
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Active()) != 2 {
		t.Fatalf("expected 2 plants after reload, got %d", len(reloaded.Active()))
	}
	if !reloaded.IsSelected(a.ID) {
		t.Error("selection must survive reload")
	}
	if !reloaded.IsExpanded(a.ID) {
		t.Error("expand state must survive reload")
	}
}

func TestLoad_DropsCorruptedElements(t *testing.T) {
	store := newTestStore(t)
	good := `{"id":"ok","name":"A","seedDate":"2024-04-01","phase":"Seedling","events":[],"heightData":[],"weightData":[]}`
	if err := store.SetItem(kvstore.KeyPlants, `[`+good+`, 42, {"name":"no id"}]`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	r := NewPlantRegistry(store)
	if err := r.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(r.Active()) != 1 || r.Active()[0].ID != "ok" {
		t.Errorf("expected only the intact plant to load, got %d", len(r.Active()))
	}
}

func TestLoad_SelectionDropsStaleIDs(t *testing.T) {
	store := newTestStore(t)
	good := `{"id":"ok","name":"A","seedDate":"2024-04-01"}`
	store.SetItem(kvstore.KeyPlants, `[`+good+`]`)
	store.SetItem(kvstore.KeySelectedPlants, `["ok","gone"]`)
	store.SetItem(kvstore.KeyExpandedEvents, `{"ok":true,"gone":true}`)

	r := NewPlantRegistry(store)
	if err := r.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.IsSelected("ok") || r.IsSelected("gone") {
		t.Error("selection must keep only active ids")
	}
	if !r.IsExpanded("ok") || r.IsExpanded("gone") {
		t.Error("expand map must keep only active ids")
	}
}

func TestFiltered(t *testing.T) {
	r := newTestRegistry(t)
	a := mustAdd(t, r, "A", "2024-04-01")
	mustAdd(t, r, "B", "2024-04-01")
	r.UpdatePhase(a.ID, models.PhaseFlowering)

	r.SetFilter(string(models.PhaseFlowering))
	filtered := r.Filtered()
	if len(filtered) != 1 || filtered[0].ID != a.ID {
		t.Errorf("expected only the flowering plant, got %d", len(filtered))
	}

	r.SetFilter(FilterAll)
	if len(r.Filtered()) != 2 {
		t.Error("expected all plants under the all filter")
	}
}

func TestOnRender_NotifiedAfterMutation(t *testing.T) {
	r := newTestRegistry(t)
	calls := 0
	r.OnRender(func() { calls++ })

	mustAdd(t, r, "A", "2024-04-01")
	if calls != 1 {
		t.Errorf("expected one render notification, got %d", calls)
	}

	r.ClearSelection()
	if calls != 2 {
		t.Errorf("expected notification on selection change, got %d", calls)
	}
}
