package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contactdesk/internal/render"
)

// renderContacts renders the contacts view: table on the left, detail on the
// right. Narrow terminals get the table only.
func (m Model) renderContacts() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	if m.rows.Empty {
		msg := "No contacts"
		switch {
		case !m.snapshot.HasContacts && m.snapshot.LastError == nil:
			msg = "Loading contacts..."
		case m.snapshot.Keyword != "" && len(m.snapshot.Contacts) > 0:
			msg = fmt.Sprintf("No contacts match %q", truncate(m.snapshot.Keyword, 30))
		}
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	if m.width < LayoutCompactWidth {
		content := m.renderContactTable(m.width-2, contentHeight-2, m.theme.FocusBg)
		return m.renderTitledBox(m.tableTitle(), content, m.width, contentHeight, true)
	}

	tableWidth := m.width * 55 / 100
	if m.width >= LayoutExtraWideWidth {
		tableWidth = m.width * 45 / 100
	}
	detailWidth := m.width - tableWidth

	content := m.renderContactTable(tableWidth-2, contentHeight-2, m.theme.FocusBg)
	tablePane := m.renderTitledBox(m.tableTitle(), content, tableWidth, contentHeight, true)

	detail := m.renderDetail(detailWidth-4, m.theme.SurfaceAlt)
	detailPane := m.renderTitledBox("Details", detail, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailPane)
}

// renderContactTable renders the visible rows, scrolled so the selection stays
// on screen.
func (m Model) renderContactTable(width, height int, bgColor string) string {
	rows := m.rows.Rows
	if len(rows) == 0 || height <= 0 {
		return ""
	}

	start := 0
	if m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		bg := bgColor
		if selected {
			bg = m.theme.SelectionBg
		}
		content := m.formatRowContent(rows[i], width, bg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatRowContent formats one row with inline colors.
// Format: "#ID Name · phone · email [group] BLACK"
func (m Model) formatRowContent(r render.Row, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	idStr := "#" + r.ID.String()

	var badges []string
	if r.Group != "" {
		badges = append(badges, styles.BadgeStyle(badgeGroup).Render(truncate(r.Group, 16)))
	}
	if r.Black != "" {
		badges = append(badges, styles.BadgeStyle(badgeBlack).Render(r.Black))
	}
	badgeStr := strings.Join(badges, bg.Space())
	badgeWidth := lipgloss.Width(badgeStr)

	details := r.Phone
	if r.Email != "" && width >= LayoutEmailWidth {
		details += " · " + r.Email
	}

	var idStyle, nameStyle, sepStyle, detailStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, sepStyle, detailStyle = selText, selText.Bold(true), selText, selText
	} else {
		idStyle = styles.MutedText
		nameStyle = styles.Text
		sepStyle = styles.FaintText
		detailStyle = styles.MutedText
		if r.Blacklisted {
			nameStyle = styles.DangerText
		}
	}

	separatorLen := 3 // " · "
	avail := width - len(idStr) - separatorLen - badgeWidth - 3
	nameWidth := max(avail*2/5, 8)
	detailWidth := max(avail-nameWidth, 5)

	line := bg.Render(idStr, idStyle) + bg.Space() +
		bg.Render(truncate(r.Name, nameWidth), nameStyle) +
		bg.Render(" · ", sepStyle) +
		bg.Render(truncate(details, detailWidth), detailStyle)
	if badgeStr != "" {
		line += bg.Space() + badgeStr
	}
	return line
}

// tableTitle returns the table pane title with counts and active filters.
func (m Model) tableTitle() string {
	total := len(m.snapshot.Contacts)
	visible := len(m.rows.Rows)
	if m.snapshot.Keyword == "" {
		return fmt.Sprintf("Contacts (%d)", total)
	}
	return fmt.Sprintf("Contacts (%d/%d) /%s", visible, total, truncate(m.snapshot.Keyword, 16))
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	bgColor := lipgloss.Color(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(bgColor)
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
