package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/registry"
)

type SessionState int

const (
	StatePlants SessionState = iota
	StateArchive
	StateCards
	StateAddPlant
	StateAddCard
	StateConfirmDelete
	StateApplyCard
)

// tabCount covers the cyclable top-level tabs; form and confirm states sit
// outside the cycle.
const tabCount = 3

type PlantFormModel struct {
	Name      string
	SeedDate  string
	Strain    string
	Medium    string
	Light     string
	Nutrients string
}

type CardFormModel struct {
	Label   string
	Details string
	Icon    string
}

// Model projects the registries into the terminal. It holds no entity state
// of its own: every View call re-reads the registries, which is what restores
// selection markers and expand panels after any mutation.
type Model struct {
	plants *registry.PlantRegistry
	cards  *registry.QuickCardRegistry

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	cursor    int
	filterIdx int

	form      *huh.Form
	plantForm *PlantFormModel
	cardForm  *CardFormModel

	// pendingCard is the card picked up for an apply gesture; the next enter
	// on a plant drops it there.
	pendingCard *models.QuickCard

	deleteTarget      string
	deleteFromArchive bool
	deleteCardTarget  string

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(plants *registry.PlantRegistry, cards *registry.QuickCardRegistry) Model {
	return Model{
		plants: plants,
		cards:  cards,
		state:  StatePlants,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// filters returns the phase-filter tabs: "all" plus every growth stage.
func filters() []string {
	out := []string{registry.FilterAll}
	for _, p := range models.Phases {
		out = append(out, string(p))
	}
	return out
}

// visiblePlants is the plant list the cursor moves over.
func (m Model) visiblePlants() []*models.Plant {
	if m.state == StateArchive {
		return m.plants.Archived()
	}
	return m.plants.Filtered()
}

func (m *Model) clampCursor() {
	var size int
	switch m.state {
	case StateCards:
		size = len(m.cards.Sorted())
	default:
		size = len(m.visiblePlants())
	}
	if m.cursor >= size {
		m.cursor = size - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) applyFilter() {
	m.plants.SetFilter(filters()[m.filterIdx])
	m.clampCursor()
}

func (m *Model) newPlantForm() {
	m.plantForm = &PlantFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.plantForm.Name),
			huh.NewInput().Title("Seed date (YYYY-MM-DD)").Value(&m.plantForm.SeedDate),
			huh.NewInput().Title("Strain").Value(&m.plantForm.Strain),
			huh.NewInput().Title("Grow medium").Value(&m.plantForm.Medium),
			huh.NewInput().Title("Light cycle").Value(&m.plantForm.Light),
			huh.NewInput().Title("Nutrient schedule").Value(&m.plantForm.Nutrients),
		),
	)
}

func (m *Model) newCardForm() {
	m.cardForm = &CardFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Label").Value(&m.cardForm.Label),
			huh.NewInput().Title("Details").Value(&m.cardForm.Details),
			huh.NewInput().Title("Icon").Value(&m.cardForm.Icon),
		),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StatePlants:
		keys = append(keys, m.keys.Add, m.keys.Select, m.keys.Archive, m.keys.Phase)
	case StateArchive:
		keys = append(keys, m.keys.Unarchive, m.keys.Delete)
	case StateCards:
		keys = append(keys, m.keys.Add, m.keys.Pin, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}
