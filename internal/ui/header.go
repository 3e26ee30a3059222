package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/render"
)

// renderHeader renders the status bar: connection state, counts, filters,
// and the current toast.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("contactdesk", styles.Logo)}
	parts = append(parts, m.connectionStatus(styles, bg))

	if m.snapshot.HasContacts {
		parts = append(parts,
			bg.Render("Contacts:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.snapshot.Contacts)), styles.Text))
	}

	parts = append(parts,
		bg.Render("Group:", styles.MutedText)+bg.Space()+
			bg.Render(m.groupLabel(), styles.AccentText),
		bg.Render("List:", styles.MutedText)+bg.Space()+
			bg.Render(m.blacklistLabel(), styles.AccentText))

	if m.searching {
		parts = append(parts, m.searchInput.View())
	} else if m.snapshot.Keyword != "" {
		parts = append(parts, bg.Render("/"+truncate(m.snapshot.Keyword, 18), styles.AccentText))
	}

	if !compact && m.baseURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.baseURL, 32), styles.FaintText))
	}

	if m.toast.visible() {
		st := styles.SuccessText
		if !m.toast.ok {
			st = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.toast.text, 48), st))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// connectionStatus summarizes the last refresh.
func (m Model) connectionStatus(styles Styles, bg BgStyle) string {
	switch {
	case m.snapshot.IsOffline():
		return styles.BadgeStyle(badgeOffline).Render("OFFLINE") + bg.Space() +
			bg.Render(truncate(desk.Message(m.snapshot.LastError), 40), styles.WarningText)
	case m.snapshot.LastError != nil:
		return bg.Render("● ERROR", styles.DangerText) + bg.Space() +
			bg.Render(truncate(desk.Message(m.snapshot.LastError), 40), styles.MutedText)
	case !m.snapshot.HasContacts:
		return bg.Render("Connecting...", styles.WarningText.Bold(true))
	default:
		return bg.Render("● ON", styles.SuccessText) + bg.Space() +
			bg.Render(m.formatTimestamp(), styles.FaintText)
	}
}

func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	return m.lastUpdated.Format("15:04:05")
}

func (m Model) groupLabel() string {
	opts := render.GroupOptions(m.snapshot.Groups, m.snapshot.Filter.Group)
	if m.snapshot.Filter.Group != "" && opts.Selected == "" {
		// Filter set to a group the server no longer reports.
		return m.snapshot.Filter.Group
	}
	return opts.Items[opts.Index()].Label
}

func (m Model) blacklistLabel() string {
	opts := render.BlacklistOptions(m.snapshot.Filter.Blacklisted)
	return opts.Items[opts.Index()].Label
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{
			{"Enter", "Keep"},
			{"Esc", "Clear"},
		}
	case m.currentView == ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"L/Esc", "Contacts"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"f", "Group"},
			{"b", "List"},
			{"n", "New"},
			{"e", "Edit"},
			{"B", "Blacklist"},
			{"x", "Delete"},
			{"r", "Refresh"},
			{"L", "Activity"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(segments, sep)))
}
