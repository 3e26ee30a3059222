package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contactdesk/internal/activity"
)

func (m *Model) resizeActivity() {
	m.activityViewport.Width = max(m.width-4, 10)
	m.activityViewport.Height = max(m.contentHeight()-2, 1)
	m.updateActivityViewport()
}

// updateActivityViewport refills the viewport and follows the newest line.
func (m *Model) updateActivityViewport() {
	styles := m.theme.Styles()
	var lines []string
	switch {
	case m.activityErr != nil:
		lines = []string{styles.DangerText.Render(m.activityErr.Error())}
	case len(m.activityEntries) == 0:
		lines = []string{styles.MutedText.Render("No activity yet")}
	default:
		lines = make([]string, 0, len(m.activityEntries))
		for _, e := range m.activityEntries {
			lines = append(lines, m.formatEntry(e))
		}
	}
	m.activityViewport.SetContent(strings.Join(lines, "\n"))
	m.activityViewport.GotoBottom()
}

func (m Model) formatEntry(e activity.Entry) string {
	styles := m.theme.Styles()
	line := truncate(e.Summary(), max(m.activityViewport.Width, 10))
	switch strings.ToLower(e.Level) {
	case "error", "dpanic", "panic", "fatal":
		return styles.DangerText.Render(line)
	case "warn":
		return styles.WarningText.Render(line)
	case "debug":
		return styles.FaintText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

func (m Model) renderActivity() string {
	title := "Activity"
	if m.logFile != "" {
		title += " · " + truncateMiddle(m.logFile, 40)
	}
	content := lipgloss.NewStyle().Padding(0, 1).Render(m.activityViewport.View())
	return m.renderTitledBox(title, content, m.width, m.contentHeight(), true)
}
