package state

import (
	"strings"

	"github.com/five82/contactdesk/internal/contacts"
)

// ApplyFilter keeps contacts whose name, phone, email, group, or note contains
// keyword, ignoring case. A blank keyword returns list itself.
func ApplyFilter(list []contacts.Contact, keyword string) []contacts.Contact {
	q := strings.ToLower(strings.TrimSpace(keyword))
	if q == "" {
		return list
	}
	out := make([]contacts.Contact, 0, len(list))
	for _, c := range list {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c contacts.Contact, q string) bool {
	for _, field := range [...]string{c.Name, c.Phone, c.Email, c.GroupName, c.Note} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
