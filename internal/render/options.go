package render

import "github.com/five82/contactdesk/internal/contacts"

// AllGroupsLabel is the wildcard entry of the group selector.
const AllGroupsLabel = "All Groups"

// Option is one entry of a selector.
type Option struct {
	Value string
	Label string
}

// Options is a selector with its current selection.
type Options struct {
	Items    []Option
	Selected string
}

// Index returns the position of the selected value, or 0.
func (o Options) Index() int {
	for i, item := range o.Items {
		if item.Value == o.Selected {
			return i
		}
	}
	return 0
}

// Next returns the value after the selection, wrapping around.
func (o Options) Next() string {
	if len(o.Items) == 0 {
		return ""
	}
	return o.Items[(o.Index()+1)%len(o.Items)].Value
}

// GroupOptions builds the group selector. The wildcard comes first; current
// stays selected only if it is still one of groups.
func GroupOptions(groups []string, current string) Options {
	items := make([]Option, 0, len(groups)+1)
	items = append(items, Option{Value: "", Label: AllGroupsLabel})
	selected := ""
	for _, g := range groups {
		items = append(items, Option{Value: g, Label: g})
		if g == current {
			selected = current
		}
	}
	return Options{Items: items, Selected: selected}
}

// Blacklist selector values.
const (
	BlacklistAll = ""
	BlacklistYes = "true"
	BlacklistNo  = "false"
)

// BlacklistOptions builds the blacklist selector for the current filter value.
func BlacklistOptions(current *bool) Options {
	return Options{
		Items: []Option{
			{Value: BlacklistAll, Label: "All"},
			{Value: BlacklistYes, Label: "Blacklisted"},
			{Value: BlacklistNo, Label: "Not blacklisted"},
		},
		Selected: BlacklistValue(current),
	}
}

// BlacklistValue encodes a filter value as a selector value.
func BlacklistValue(v *bool) string {
	switch {
	case v == nil:
		return BlacklistAll
	case *v:
		return BlacklistYes
	default:
		return BlacklistNo
	}
}

// ParseBlacklist decodes a selector value back into a filter value.
func ParseBlacklist(value string) *bool {
	switch value {
	case BlacklistYes:
		return contacts.Bool(true)
	case BlacklistNo:
		return contacts.Bool(false)
	default:
		return nil
	}
}
