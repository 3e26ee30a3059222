package form

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/sanitize"
)

// Field names used in validation errors.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
	FieldGroup = "group"
)

// MaxGroupLength is the longest group name accepted.
const MaxGroupLength = 50

var (
	// Digits with at most one leading +, 5 to 32 characters in total.
	phonePattern = regexp.MustCompile(`^(\+[0-9]{4,31}|[0-9]{5,32})$`)
	// \p{Z} also rejects Unicode spaces such as U+00A0.
	emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)
)

// Fields holds the raw values the user typed.
type Fields struct {
	Name        string
	Phone       string
	Email       string
	Group       string
	Note        string
	Blacklisted bool
}

// State is the form: an optional bound contact ID and its fields. An empty ID
// means create mode.
type State struct {
	ID     contacts.ID
	Fields Fields
}

// New returns an empty create-mode form.
func New() State {
	return State{}
}

// Load returns an edit-mode form bound to c.
func Load(c contacts.Contact) State {
	return State{
		ID: c.ID,
		Fields: Fields{
			Name:        c.Name,
			Phone:       c.Phone,
			Email:       c.Email,
			Group:       c.GroupName,
			Note:        c.Note,
			Blacklisted: c.Blacklisted,
		},
	}
}

// Reset clears the form back to create mode.
func (s State) Reset() State {
	return New()
}

// Editing reports whether the form is bound to an existing contact.
func (s State) Editing() bool {
	return s.ID != ""
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks fields in order and stops at the first failure. On success
// it returns the normalized payload.
func Validate(f Fields) (contacts.Payload, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return contacts.Payload{}, &ValidationError{Field: FieldName, Message: "Name required"}
	}

	phone := sanitize.NormalizePhone(f.Phone)
	if !phonePattern.MatchString(phone) {
		return contacts.Payload{}, &ValidationError{Field: FieldPhone, Message: "Invalid phone"}
	}

	email := strings.TrimSpace(f.Email)
	if email != "" && !emailPattern.MatchString(email) {
		return contacts.Payload{}, &ValidationError{Field: FieldEmail, Message: "Invalid email"}
	}

	group := strings.TrimSpace(f.Group)
	if utf8.RuneCountInString(group) > MaxGroupLength {
		return contacts.Payload{}, &ValidationError{
			Field:   FieldGroup,
			Message: fmt.Sprintf("Group max length %d", MaxGroupLength),
		}
	}

	return contacts.Payload{
		Name:        name,
		Phone:       phone,
		Email:       email,
		GroupName:   group,
		Blacklisted: f.Blacklisted,
		Note:        strings.TrimSpace(f.Note),
	}, nil
}

// Intent is the write a submit will perform, decided before any request.
type Intent interface {
	intent()
	Payload() contacts.Payload
}

// Create adds a new contact.
type Create struct {
	Body contacts.Payload
}

// Update replaces the contact with ID.
type Update struct {
	ID   contacts.ID
	Body contacts.Payload
}

func (Create) intent() {}
func (Update) intent() {}

func (c Create) Payload() contacts.Payload { return c.Body }
func (u Update) Payload() contacts.Payload { return u.Body }

// Plan validates s and picks the write to perform.
func Plan(s State) (Intent, error) {
	payload, err := Validate(s.Fields)
	if err != nil {
		return nil, err
	}
	if s.Editing() {
		return Update{ID: s.ID, Body: payload}, nil
	}
	return Create{Body: payload}, nil
}

// Writer is the subset of the contacts API a submit needs.
type Writer interface {
	CreateContact(ctx context.Context, p contacts.Payload) (contacts.Contact, error)
	UpdateContact(ctx context.Context, id contacts.ID, p contacts.Payload) (contacts.Contact, error)
}

// Execute performs intent against w.
func Execute(ctx context.Context, w Writer, intent Intent) (contacts.Contact, error) {
	switch in := intent.(type) {
	case Create:
		return w.CreateContact(ctx, in.Body)
	case Update:
		return w.UpdateContact(ctx, in.ID, in.Body)
	default:
		return contacts.Contact{}, fmt.Errorf("unsupported intent %T", intent)
	}
}
