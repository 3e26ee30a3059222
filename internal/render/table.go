package render

import (
	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/sanitize"
)

// Action tags carried by row affordances. The router dispatches on these.
const (
	ActionEdit    = "edit"
	ActionBlack   = "black"
	ActionUnblack = "unblack"
	ActionDelete  = "del"
)

// BlackBadge marks a blacklisted row.
const BlackBadge = "BLACK"

// Affordance is an action a row offers.
type Affordance struct {
	ID     contacts.ID
	Action string
	Label  string
}

// Row is the display model of one contact.
type Row struct {
	ID          contacts.ID
	Name        string
	Phone       string
	Email       string
	Group       string // empty when the contact has no group
	Black       string // BlackBadge or empty
	Blacklisted bool
	Actions     []Affordance
}

// TableModel is the projected contact list.
type TableModel struct {
	Rows  []Row
	Empty bool
}

// Escaper turns raw user-supplied text into display-safe text.
type Escaper func(string) string

// Table projects list into rows, HTML-escaping user text.
func Table(list []contacts.Contact) TableModel {
	return TableWith(list, sanitize.EscapeForDisplay)
}

// TableWith projects list into rows using escape for every user-supplied
// string. Rows keep the input order.
func TableWith(list []contacts.Contact, escape Escaper) TableModel {
	if escape == nil {
		escape = sanitize.EscapeForDisplay
	}
	if len(list) == 0 {
		return TableModel{Empty: true}
	}

	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, row(c, escape))
	}
	return TableModel{Rows: rows}
}

func row(c contacts.Contact, escape Escaper) Row {
	r := Row{
		ID:          c.ID,
		Name:        escape(c.Name),
		Phone:       escape(c.Phone),
		Email:       escape(c.Email),
		Blacklisted: c.Blacklisted,
	}
	if c.GroupName != "" {
		r.Group = escape(c.GroupName)
	}
	if c.Blacklisted {
		r.Black = BlackBadge
	}
	r.Actions = Affordances(c)
	return r
}

// Affordances returns the edit, blacklist-toggle, and delete actions for c,
// in that order.
func Affordances(c contacts.Contact) []Affordance {
	toggle := Affordance{ID: c.ID, Action: ActionBlack, Label: "Blacklist"}
	if c.Blacklisted {
		toggle = Affordance{ID: c.ID, Action: ActionUnblack, Label: "Unblacklist"}
	}
	return []Affordance{
		{ID: c.ID, Action: ActionEdit, Label: "Edit"},
		toggle,
		{ID: c.ID, Action: ActionDelete, Label: "Delete"},
	}
}
