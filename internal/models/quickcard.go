package models

import "github.com/julianstephens/growlog/internal/ident"

// DefaultCardIcon is used when a quick card is created without a glyph.
const DefaultCardIcon = "🌱"

// QuickCard is a reusable template that logs its label as an event type on a
// plant in a single gesture.
type QuickCard struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	InputDetails string `json:"inputDetails"`
	Icon         string `json:"icon"`
	Pinned       bool   `json:"pinned"`
}

// NewQuickCard creates an unpinned card with a generated id. An empty icon
// falls back to DefaultCardIcon.
func NewQuickCard(label, inputDetails, icon string) *QuickCard {
	if icon == "" {
		icon = DefaultCardIcon
	}
	return &QuickCard{
		ID:           ident.New(),
		Label:        label,
		InputDetails: inputDetails,
		Icon:         icon,
	}
}
