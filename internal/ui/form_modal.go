package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/form"
)

const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldGroup
	fieldNote
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name:  ",
	"Phone: ",
	"Email: ",
	"Group: ",
	"Note:  ",
}

var fieldKeys = [fieldCount]string{
	form.FieldName,
	form.FieldPhone,
	form.FieldEmail,
	form.FieldGroup,
	"note",
}

// formModal is the create/edit overlay. Submission runs through submit and
// the result comes back as a submitDoneMsg.
type formModal struct {
	state       form.State
	inputs      [fieldCount]textinput.Model
	focus       int
	blacklisted bool
	errText     string
	errField    string
	pending     bool
	submit      func(form.State) tea.Cmd
}

func newFormModal(s form.State, submit func(form.State) tea.Cmd) *formModal {
	f := &formModal{state: s, blacklisted: s.Fields.Blacklisted, submit: submit}
	values := [fieldCount]string{s.Fields.Name, s.Fields.Phone, s.Fields.Email, s.Fields.Group, s.Fields.Note}
	limits := [fieldCount]int{120, 40, 120, form.MaxGroupLength + 10, 2000}
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldName].Placeholder = "required"
	f.inputs[fieldPhone].Placeholder = "+14155551234"
	f.inputs[fieldNote].Placeholder = "markdown"
	f.inputs[0].Focus()
	return f
}

// current returns the form state as typed so far.
func (f *formModal) current() form.State {
	return form.State{
		ID: f.state.ID,
		Fields: form.Fields{
			Name:        f.inputs[fieldName].Value(),
			Phone:       f.inputs[fieldPhone].Value(),
			Email:       f.inputs[fieldEmail].Value(),
			Group:       f.inputs[fieldGroup].Value(),
			Note:        f.inputs[fieldNote].Value(),
			Blacklisted: f.blacklisted,
		},
	}
}

func (f *formModal) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		f.pending = false
		if msg.err == nil {
			return f, nil, true
		}
		f.showError(msg.err)
		return f, nil, false

	case tea.KeyMsg:
		if f.pending {
			return f, nil, false
		}
		switch {
		case key.Matches(msg, keys.Escape):
			return f, nil, true
		case key.Matches(msg, keys.Confirm):
			f.errText, f.errField = "", ""
			f.pending = true
			return f, f.submit(f.current()), false
		case key.Matches(msg, keys.NextField):
			f.setFocus(f.focus + 1)
			return f, nil, false
		case key.Matches(msg, keys.PrevField):
			f.setFocus(f.focus - 1)
			return f, nil, false
		case key.Matches(msg, keys.ToggleFlag):
			f.blacklisted = !f.blacklisted
			return f, nil, false
		}
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, false
	}
	return f, nil, false
}

func (f *formModal) showError(err error) {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		f.errText, f.errField = verr.Message, verr.Field
		for i, k := range fieldKeys {
			if k == verr.Field {
				f.setFocus(i)
				break
			}
		}
		return
	}
	f.errText, f.errField = desk.Message(err), ""
}

func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	title := "New Contact"
	if f.state.Editing() {
		title = "Edit Contact #" + f.state.ID.String()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	for i, input := range f.inputs {
		label := fieldLabels[i]
		switch {
		case fieldKeys[i] == f.errField:
			label = styles.DangerText.Render(label)
		case i == f.focus:
			label = styles.AccentText.Render(label)
		default:
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	flag := "[ ] Blacklisted"
	if f.blacklisted {
		flag = "[x] Blacklisted"
	}
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(flag))
	b.WriteString("\n\n")

	switch {
	case f.pending:
		b.WriteString(styles.WarningText.Render("Saving..."))
		b.WriteString("\n")
	case f.errText != "":
		b.WriteString(styles.DangerText.Render(f.errText))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next  •  Ctrl+B: Blacklist  •  Esc: Cancel"))

	return placeModal(theme, width, height, 64, theme.Accent, b.String())
}
