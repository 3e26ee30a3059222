package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Navigation",
		items: []helpItem{
			{"j/k", "Move down/up"},
			{"g/G", "Go to top/bottom"},
			{"L", "Toggle activity log"},
			{"esc", "Back / clear search"},
		},
	},
	{
		title: "Filters",
		items: []helpItem{
			{"/", "Search (live)"},
			{"f", "Cycle group"},
			{"b", "Cycle blacklist filter"},
			{"r", "Refresh now"},
		},
	},
	{
		title: "Contacts",
		items: []helpItem{
			{"n", "New contact"},
			{"e/enter", "Edit selected"},
			{"B", "Blacklist / unblacklist"},
			{"x/d", "Delete selected"},
		},
	},
	{
		title: "Form",
		items: []helpItem{
			{"tab/S-tab", "Next/prev field"},
			{"ctrl+b", "Toggle blacklisted"},
			{"enter", "Save"},
			{"esc", "Cancel"},
		},
	},
	{
		title: "General",
		items: []helpItem{
			{"T", "Cycle theme"},
			{"?", "Toggle help"},
			{"q/ctrl+c", "Quit"},
		},
	},
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range helpSections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(helpSections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(42)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
