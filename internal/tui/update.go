package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growlog/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateAddPlant, StateAddCard:
			return m.updateForm(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		case StateApplyCard:
			return m.updateApplyCard(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.state == StateAddPlant || m.state == StateAddCard {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Left) && m.state == StatePlants:
		m.filterIdx = (m.filterIdx - 1 + len(filters())) % len(filters())
		m.applyFilter()

	case key.Matches(msg, m.keys.Right) && m.state == StatePlants:
		m.filterIdx = (m.filterIdx + 1) % len(filters())
		m.applyFilter()

	case key.Matches(msg, m.keys.Add):
		switch m.state {
		case StatePlants:
			m.previousState = m.state
			m.newPlantForm()
			m.state = StateAddPlant
			return m, m.form.Init()
		case StateCards:
			m.previousState = m.state
			m.newCardForm()
			m.state = StateAddCard
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Select) && m.state == StatePlants:
		if p := m.cursorPlant(); p != nil {
			m.plants.ToggleSelect(p.ID)
		}

	case key.Matches(msg, m.keys.ClearSel) && m.state == StatePlants:
		m.plants.ClearSelection()

	case key.Matches(msg, m.keys.Enter):
		switch m.state {
		case StatePlants:
			if p := m.cursorPlant(); p != nil {
				m.plants.ToggleEventsExpanded(p.ID)
			}
		case StateCards:
			if card := m.cursorCard(); card != nil {
				m.pendingCard = card
				m.state = StateApplyCard
				m.cursor = 0
				m.status = fmt.Sprintf("Pick a plant for %q (enter to apply, esc to cancel)", card.Label)
			}
		}

	case key.Matches(msg, m.keys.Phase):
		switch m.state {
		case StatePlants:
			if p := m.cursorPlant(); p != nil {
				if next := nextPhase(p.Phase); next != "" {
					if err := m.plants.UpdatePhase(p.ID, next); err != nil {
						m.status = err.Error()
					}
				}
			}
		case StateCards:
			if card := m.cursorCard(); card != nil {
				m.cards.SetPinned(card.ID, !card.Pinned)
			}
		}

	case key.Matches(msg, m.keys.Archive) && m.state == StatePlants:
		if p := m.cursorPlant(); p != nil {
			m.plants.ArchivePlant(p.ID)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Unarchive) && m.state == StateArchive:
		if p := m.cursorPlant(); p != nil {
			m.plants.UnarchivePlant(p.ID)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Delete):
		switch m.state {
		case StatePlants:
			if p := m.cursorPlant(); p != nil {
				m.deleteTarget = p.ID
				m.deleteFromArchive = false
				m.state = StateConfirmDelete
			}
		case StateArchive:
			if p := m.cursorPlant(); p != nil {
				m.deleteTarget = p.ID
				m.deleteFromArchive = true
				m.state = StateConfirmDelete
			}
		case StateCards:
			if card := m.cursorCard(); card != nil {
				m.deleteCardTarget = card.ID
				m.state = StateConfirmDelete
			}
		}
	}

	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		switch {
		case m.deleteCardTarget != "":
			m.cards.DeleteQuickCard(m.deleteCardTarget)
			m.state = StateCards
		case m.deleteFromArchive:
			m.plants.DeleteArchivedPlant(m.deleteTarget)
			m.state = StateArchive
		default:
			m.plants.DeletePlant(m.deleteTarget)
			m.state = StatePlants
		}
		m.deleteTarget = ""
		m.deleteCardTarget = ""
		m.clampCursor()
	case "n", "esc":
		switch {
		case m.deleteCardTarget != "":
			m.state = StateCards
		case m.deleteFromArchive:
			m.state = StateArchive
		default:
			m.state = StatePlants
		}
		m.deleteTarget = ""
		m.deleteCardTarget = ""
	}
	return m, nil
}

func (m Model) updateApplyCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.pendingCard = nil
		m.state = StateCards
		m.status = ""

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Enter):
		if p := m.cursorPlant(); p != nil && m.pendingCard != nil {
			if err := m.cards.ApplyToPlant(p.ID, m.pendingCard); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("Applied %q to %s", m.pendingCard.Label, p.Name)
			}
		}
		m.pendingCard = nil
		m.state = StateCards
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddPlant {
			_, err := m.plants.AddPlant(m.plantForm.Name, m.plantForm.SeedDate, models.PlantOptions{
				Strain:           m.plantForm.Strain,
				GrowMedium:       m.plantForm.Medium,
				LightCycle:       m.plantForm.Light,
				NutrientSchedule: m.plantForm.Nutrients,
			})
			if err != nil {
				m.status = err.Error()
			}
		} else {
			_, err := m.cards.AddQuickCard(m.cardForm.Label, m.cardForm.Details, m.cardForm.Icon)
			if err != nil {
				m.status = err.Error()
			}
		}
		m.state = m.previousState
		m.form = nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
	}

	return m, cmd
}

func (m Model) cursorPlant() *models.Plant {
	plants := m.visiblePlants()
	if m.cursor < 0 || m.cursor >= len(plants) {
		return nil
	}
	return plants[m.cursor]
}

func (m Model) cursorCard() *models.QuickCard {
	cards := m.cards.Sorted()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return nil
	}
	return cards[m.cursor]
}

// nextPhase returns the following growth stage, or "" from the last one.
func nextPhase(current models.Phase) models.Phase {
	for i, p := range models.Phases {
		if p == current && i+1 < len(models.Phases) {
			return models.Phases[i+1]
		}
	}
	return ""
}
