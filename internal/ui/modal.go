package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal answers a pending Confirm call from the router.
type confirmModal struct {
	prompt string
	reply  chan<- bool
}

func newConfirmModal(req confirmRequestMsg) *confirmModal {
	return &confirmModal{prompt: req.prompt, reply: req.reply}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes), key.Matches(km, keys.Confirm):
		c.answer(true)
		return c, nil, true
	case key.Matches(km, keys.No), km.String() == "ctrl+c":
		c.answer(false)
		return c, nil, true
	}
	return c, nil, false
}

// answer never blocks; the reply channel is buffered and read at most once.
func (c *confirmModal) answer(ok bool) {
	select {
	case c.reply <- ok:
	default:
	}
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Confirm"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/Enter: Yes  •  n/Esc: No"))

	return placeModal(theme, width, height, 40, theme.Danger, b.String())
}

// placeModal draws content in a bordered box centered on the screen.
func placeModal(theme Theme, width, height, modalWidth int, border, content string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
