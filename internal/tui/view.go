package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growlog/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StatePlants, StateApplyCard:
		content = m.viewPlants()
	case StateArchive:
		content = m.viewArchive()
	case StateCards:
		content = m.viewCards()
	case StateAddPlant, StateAddCard:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	current := m.state
	if current >= tabCount {
		current = m.previousState
	}
	if m.state == StateApplyCard {
		current = StatePlants
	}

	var tabs []string
	for i, title := range []string{"Plants", "Archive", "Cards"} {
		if current == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewFilterBar() string {
	var parts []string
	for i, f := range filters() {
		if i == m.filterIdx {
			parts = append(parts, activeFilterStyle.Render(f))
		} else {
			parts = append(parts, inactiveFilterStyle.Render(f))
		}
	}
	return strings.Join(parts, " · ")
}

// viewPlants rebuilds the whole plant list from registry state: selection
// markers and expanded event panels come from the registry's transient maps,
// never from what a previous frame showed.
func (m Model) viewPlants() string {
	var b strings.Builder
	b.WriteString(m.viewFilterBar())
	b.WriteString("\n\n")

	plants := m.plants.Filtered()
	if len(plants) == 0 {
		b.WriteString(dimStyle.Render("No plants yet. Press 'a' to add one."))
		return docStyle.Render(b.String())
	}

	for i, p := range plants {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		marker := "[ ]"
		if m.plants.IsSelected(p.ID) {
			marker = selectedStyle.Render("[*]")
		}

		line := fmt.Sprintf("%s%s %s — %s (seeded %s)", cursor, marker, p.Name, p.Phase, p.SeedDate)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if p.Strain != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("       strain: %s", p.Strain)))
			b.WriteString("\n")
		}

		if m.plants.IsExpanded(p.ID) {
			if len(p.Events) == 0 {
				b.WriteString(dimStyle.Render("       no events logged"))
				b.WriteString("\n")
			}
			for _, ev := range p.Events {
				b.WriteString(dimStyle.Render(fmt.Sprintf("       %s  %s", ev.Date, ev.Type)))
				b.WriteString("\n")
			}
			if len(p.HeightData) > 0 || len(p.WeightData) > 0 {
				last := measurementSummary(p)
				b.WriteString(dimStyle.Render("       " + last))
				b.WriteString("\n")
			}
		}
	}

	return docStyle.Render(b.String())
}

func measurementSummary(p *models.Plant) string {
	var parts []string
	if n := len(p.HeightData); n > 0 {
		parts = append(parts, fmt.Sprintf("height %v (%s)", p.HeightData[n-1].Height, p.HeightData[n-1].Date))
	}
	if n := len(p.WeightData); n > 0 {
		parts = append(parts, fmt.Sprintf("weight %v (%s)", p.WeightData[n-1].Weight, p.WeightData[n-1].Date))
	}
	return strings.Join(parts, ", ")
}

func (m Model) viewArchive() string {
	var b strings.Builder

	archived := m.plants.Archived()
	if len(archived) == 0 {
		b.WriteString(dimStyle.Render("Archive is empty."))
		return docStyle.Render(b.String())
	}

	for i, p := range archived {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s — %s (seeded %s, %d events)", cursor, p.Name, p.Phase, p.SeedDate, len(p.Events))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return docStyle.Render(b.String())
}

func (m Model) viewCards() string {
	var b strings.Builder

	cards := m.cards.Sorted()
	if len(cards) == 0 {
		b.WriteString(dimStyle.Render("No quick cards yet. Press 'a' to add one."))
		return docStyle.Render(b.String())
	}

	for i, card := range cards {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		pin := " "
		if card.Pinned {
			pin = "📌"
		}
		line := fmt.Sprintf("%s%s %s %s — %s", cursor, pin, card.Icon, card.Label, card.InputDetails)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return docStyle.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	target := "this plant"
	if m.deleteCardTarget != "" {
		target = "this quick card"
	} else if m.deleteFromArchive {
		target = "this archived plant"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Permanently delete %s?", target)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
