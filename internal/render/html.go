package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/contactdesk/internal/sanitize"
)

// WriteHTML writes t as an HTML table. Row text must already be escaped for
// HTML, which Table guarantees; row IDs are escaped here.
func WriteHTML(w io.Writer, t TableModel) error {
	var b strings.Builder
	b.WriteString("<table class=\"contacts\">\n")
	b.WriteString("<thead><tr><th>ID</th><th>Name</th><th>Phone</th><th>Email</th><th>Group</th><th>Status</th></tr></thead>\n")
	b.WriteString("<tbody>\n")
	if t.Empty {
		b.WriteString("<tr><td colspan=\"6\" class=\"empty\">No contacts</td></tr>\n")
	}
	for _, r := range t.Rows {
		id := sanitize.EscapeForDisplay(r.ID.String())
		fmt.Fprintf(&b, "<tr data-id=\"%s\"><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			id, id, r.Name, r.Phone, r.Email,
			badge("group", r.Group), badge("black", r.Black))
	}
	b.WriteString("</tbody>\n</table>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func badge(class, text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("<span class=\"badge %s\">%s</span>", class, text)
}
