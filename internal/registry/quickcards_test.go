package registry

import (
	"testing"
	"time"

	"github.com/julianstephens/growlog/internal/kvstore"
)

func newTestCardRegistry(t *testing.T) (*QuickCardRegistry, *PlantRegistry) {
	t.Helper()
	store := newTestStore(t)
	plants := NewPlantRegistry(store)
	if err := plants.Load(); err != nil {
		t.Fatalf("load plants: %v", err)
	}
	cards := NewQuickCardRegistry(store, plants)
	if err := cards.Load(); err != nil {
		t.Fatalf("load cards: %v", err)
	}
	return cards, plants
}

func TestAddQuickCard_DuplicateLabel(t *testing.T) {
	cards, _ := newTestCardRegistry(t)

	if _, err := cards.AddQuickCard("Water", "1L per pot", ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := cards.AddQuickCard("Water", "different details", ""); err == nil {
		t.Error("expected duplicate label to be rejected")
	}
	if len(cards.Sorted()) != 1 {
		t.Errorf("expected exactly one card, got %d", len(cards.Sorted()))
	}

	// Case-sensitive: a different casing is a different label.
	if _, err := cards.AddQuickCard("water", "lowercase", ""); err != nil {
		t.Errorf("expected different casing to be allowed: %v", err)
	}
}

func TestAddQuickCard_RequiredFields(t *testing.T) {
	cards, _ := newTestCardRegistry(t)

	if _, err := cards.AddQuickCard("", "details", ""); err == nil {
		t.Error("expected empty label to fail")
	}
	if _, err := cards.AddQuickCard("Label", "", ""); err == nil {
		t.Error("expected empty details to fail")
	}
}

func TestDeleteQuickCard_ByID(t *testing.T) {
	cards, _ := newTestCardRegistry(t)
	card, _ := cards.AddQuickCard("Water", "details", "")

	if !cards.DeleteQuickCard(card.ID) {
		t.Error("expected delete to succeed")
	}
	if cards.DeleteQuickCard(card.ID) {
		t.Error("expected second delete to return false")
	}
	if len(cards.Sorted()) != 0 {
		t.Error("expected empty catalog")
	}
}

func TestSorted_PinnedFirstThenLabel(t *testing.T) {
	cards, _ := newTestCardRegistry(t)
	cards.AddQuickCard("water", "w", "")
	feed, _ := cards.AddQuickCard("Feed", "f", "")
	cards.AddQuickCard("prune", "p", "")
	zap, _ := cards.AddQuickCard("Zap", "z", "")

	cards.SetPinned(zap.ID, true)
	cards.SetPinned(feed.ID, true)

	got := cards.Sorted()
	labels := make([]string, len(got))
	for i, c := range got {
		labels[i] = c.Label
	}
	want := []string{"Feed", "Zap", "prune", "water"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", labels, want)
		}
	}
}

func TestApplyToPlant_IdempotentPerDay(t *testing.T) {
	cards, plants := newTestCardRegistry(t)
	plants.SetClock(func() time.Time {
		return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	})
	p := mustAdd(t, plants, "A", "2024-04-01")
	card, _ := cards.AddQuickCard("Fed", "bloom nutes", "")

	if err := cards.ApplyToPlant(p.ID, card); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := cards.ApplyToPlant(p.ID, card); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	count := 0
	for _, ev := range p.Events {
		if ev.Type == "Fed" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one Fed event, got %d", count)
	}

	// A new day allows the same card again.
	plants.SetClock(func() time.Time {
		return time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
	})
	if err := cards.ApplyToPlant(p.ID, card); err != nil {
		t.Fatalf("next-day apply: %v", err)
	}
	if len(p.Events) != 2 {
		t.Errorf("expected a second event on the next day, got %d", len(p.Events))
	}
}

func TestApplyToPlant_MissingPlant(t *testing.T) {
	cards, _ := newTestCardRegistry(t)
	card, _ := cards.AddQuickCard("Fed", "details", "")

	if err := cards.ApplyToPlant("missing", card); err == nil {
		t.Error("expected apply to a missing plant to fail")
	}
}

func TestQuickCards_SurviveReload(t *testing.T) {
	store := newTestStore(t)
	plants := NewPlantRegistry(store)
	plants.Load()
	cards := NewQuickCardRegistry(store, plants)
	cards.Load()

	card, _ := cards.AddQuickCard("Water", "details", "💧")
	cards.SetPinned(card.ID, true)

	reloadedPlants := NewPlantRegistry(kvstore.NewFileStore(store.Path(), false))
	if err := reloadedPlants.Load(); err != nil {
		t.Fatalf("reload plants: %v", err)
	}
	reloaded := NewQuickCardRegistry(reloadedPlants.store, reloadedPlants)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload cards: %v", err)
	}

	got := reloaded.Find(card.ID)
	if got == nil {
		t.Fatal("card missing after reload")
	}
	if !got.Pinned || got.Icon != "💧" {
		t.Errorf("card state lost across reload: %+v", got)
	}
}

func TestQuickCardLoad_DropsCorruptedEntries(t *testing.T) {
	store := newTestStore(t)
	store.SetItem(kvstore.KeyQuickCards,
		`[{"id":"ok","label":"Water","inputDetails":"d","icon":"x"}, 7, {"id":"","label":""}]`)

	plants := NewPlantRegistry(store)
	plants.Load()
	cards := NewQuickCardRegistry(store, plants)
	if err := cards.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards.Sorted()) != 1 || cards.Sorted()[0].ID != "ok" {
		t.Errorf("expected only the intact card to load")
	}
}
