package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/sanitize"
)

// noteRenderer renders contact notes as Markdown and caches the last result.
// The model holds it by pointer so the cache survives value-receiver View calls.
type noteRenderer struct {
	width    int
	note     string
	rendered string
}

func (n *noteRenderer) reset() {
	if n != nil {
		n.width, n.note, n.rendered = 0, "", ""
	}
}

func (n *noteRenderer) render(note string, width int) string {
	if n == nil {
		return renderMarkdown(note, width)
	}
	if note == n.note && width == n.width && n.rendered != "" {
		return n.rendered
	}
	out := renderMarkdown(note, width)
	n.note, n.width, n.rendered = note, width, out
	return out
}

// renderMarkdown renders note through glamour, falling back to the cleaned
// text when rendering fails.
func renderMarkdown(note string, width int) string {
	clean := cleanNote(note)
	if strings.TrimSpace(clean) == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return clean
	}
	out, err := renderer.Render(clean)
	if err != nil {
		return clean
	}
	return strings.Trim(out, "\n")
}

// cleanNote strips control characters line by line so the Markdown structure
// survives but no terminal escape sequence does.
func cleanNote(note string) string {
	lines := strings.Split(strings.ReplaceAll(note, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = sanitize.ForTerminal(line)
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the selected contact's fields and note.
func (m Model) renderDetail(width int, bgColor string) string {
	c, ok := m.selectedContact()
	if !ok {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(bgColor)).
			Render("Select a contact")
	}

	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var b strings.Builder
	b.WriteString(bg.Render(truncate(sanitize.ForTerminal(c.Name), width), styles.Text.Bold(true)))
	b.WriteString("\n\n")
	for _, f := range detailFields(c) {
		b.WriteString(bg.Render(padRight(f.label, 8), styles.MutedText))
		b.WriteString(bg.Render(truncate(f.value, max(width-8, 4)), f.style(styles)))
		b.WriteString("\n")
	}

	if strings.TrimSpace(c.Note) != "" {
		b.WriteString("\n")
		b.WriteString(bg.Render("Note", styles.AccentText.Bold(true)))
		b.WriteString("\n")
		b.WriteString(m.notes.render(c.Note, width))
	}
	return b.String()
}

type detailField struct {
	label string
	value string
	style func(Styles) lipgloss.Style
}

func detailFields(c contacts.Contact) []detailField {
	text := func(s Styles) lipgloss.Style { return s.Text }
	muted := func(s Styles) lipgloss.Style { return s.FaintText }

	orDash := func(v string) (string, func(Styles) lipgloss.Style) {
		v = sanitize.ForTerminal(v)
		if strings.TrimSpace(v) == "" {
			return "-", muted
		}
		return v, text
	}

	fields := []detailField{{label: "ID", value: c.ID.String(), style: muted}}
	for _, f := range []struct{ label, value string }{
		{"Phone", c.Phone},
		{"Email", c.Email},
		{"Group", c.GroupName},
	} {
		v, st := orDash(f.value)
		fields = append(fields, detailField{label: f.label, value: v, style: st})
	}

	status := detailField{label: "Status", value: "active", style: func(s Styles) lipgloss.Style { return s.SuccessText }}
	if c.Blacklisted {
		status = detailField{label: "Status", value: "blacklisted", style: func(s Styles) lipgloss.Style { return s.DangerText }}
	}
	return append(fields, status)
}
