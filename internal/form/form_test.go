package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/contactdesk/internal/contacts"
)

func valid() Fields {
	return Fields{Name: "Ada", Phone: "+14155551234"}
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Fields)
		wantField string
		wantMsg   string
	}{
		{"empty name", func(f *Fields) { f.Name = "" }, FieldName, "Name required"},
		{"blank name", func(f *Fields) { f.Name = "   " }, FieldName, "Name required"},
		{"short phone", func(f *Fields) { f.Phone = "123" }, FieldPhone, "Invalid phone"},
		{"letters in phone", func(f *Fields) { f.Phone = "555-CALL-NOW" }, FieldPhone, "Invalid phone"},
		{"phone too long", func(f *Fields) { f.Phone = strings.Repeat("1", 33) }, FieldPhone, "Invalid phone"},
		{"plus inside phone", func(f *Fields) { f.Phone = "12+345" }, FieldPhone, "Invalid phone"},
		{"several plus signs", func(f *Fields) { f.Phone = "1+2+3+4" }, FieldPhone, "Invalid phone"},
		{"only plus signs", func(f *Fields) { f.Phone = "+++++" }, FieldPhone, "Invalid phone"},
		{"plus with too few digits", func(f *Fields) { f.Phone = "+123" }, FieldPhone, "Invalid phone"},
		{"bad email", func(f *Fields) { f.Email = "not-an-email" }, FieldEmail, "Invalid email"},
		{"no-break space in email", func(f *Fields) { f.Email = "a\u00a0b@example.com" }, FieldEmail, "Invalid email"},
		{"group 51", func(f *Fields) { f.Group = strings.Repeat("g", 51) }, FieldGroup, "Group max length 50"},
		{"name before phone", func(f *Fields) { f.Name = ""; f.Phone = "1" }, FieldName, "Name required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)

			_, err := Validate(f)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Fields)
	}{
		{"minimal", func(*Fields) {}},
		{"empty email", func(f *Fields) { f.Email = "  " }},
		{"valid email", func(f *Fields) { f.Email = "ada@example.com" }},
		{"group 50", func(f *Fields) { f.Group = strings.Repeat("g", 50) }},
		{"group 50 after trim", func(f *Fields) { f.Group = "  " + strings.Repeat("g", 50) + "  " }},
		{"formatted phone", func(f *Fields) { f.Phone = " (415) 555-1234 " }},
		{"five digits", func(f *Fields) { f.Phone = "12345" }},
		{"plus and four digits", func(f *Fields) { f.Phone = "+1234" }},
		{"plus and 31 digits", func(f *Fields) { f.Phone = "+" + strings.Repeat("1", 31) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			_, err := Validate(f)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_NormalizesPayload(t *testing.T) {
	got, err := Validate(Fields{
		Name:        "  Ada Lovelace ",
		Phone:       "+1 (415) 555.1234",
		Email:       " ada@example.com ",
		Group:       " vip ",
		Note:        " likes *math* ",
		Blacklisted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, contacts.Payload{
		Name:        "Ada Lovelace",
		Phone:       "+14155551234",
		Email:       "ada@example.com",
		GroupName:   "vip",
		Blacklisted: true,
		Note:        "likes *math*",
	}, got)
}

func TestPlan_ChoosesIntent(t *testing.T) {
	in, err := Plan(State{Fields: valid()})
	require.NoError(t, err)
	create, ok := in.(Create)
	require.True(t, ok, "create mode should plan Create, got %T", in)
	assert.Equal(t, "Ada", create.Payload().Name)

	in, err = Plan(Load(contacts.Contact{ID: "42", Name: "Ada", Phone: "12345"}))
	require.NoError(t, err)
	update, ok := in.(Update)
	require.True(t, ok, "edit mode should plan Update, got %T", in)
	assert.Equal(t, contacts.ID("42"), update.ID)
}

func TestPlan_InvalidReturnsNoIntent(t *testing.T) {
	in, err := Plan(State{ID: "1", Fields: Fields{Name: "Ada", Phone: "123"}})
	assert.Nil(t, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldPhone, verr.Field)
}

func TestLoadAndReset(t *testing.T) {
	s := Load(contacts.Contact{ID: "7", Name: "Grace", Phone: "555", Email: "g@x.io", GroupName: "navy", Note: "n", Blacklisted: true})
	assert.True(t, s.Editing())
	assert.Equal(t, Fields{Name: "Grace", Phone: "555", Email: "g@x.io", Group: "navy", Note: "n", Blacklisted: true}, s.Fields)

	r := s.Reset()
	assert.False(t, r.Editing())
	assert.Equal(t, New(), r)
}

type recordingWriter struct {
	created []contacts.Payload
	updated map[contacts.ID]contacts.Payload
	err     error
}

func (w *recordingWriter) CreateContact(_ context.Context, p contacts.Payload) (contacts.Contact, error) {
	w.created = append(w.created, p)
	return contacts.Contact{ID: "new", Name: p.Name}, w.err
}

func (w *recordingWriter) UpdateContact(_ context.Context, id contacts.ID, p contacts.Payload) (contacts.Contact, error) {
	if w.updated == nil {
		w.updated = map[contacts.ID]contacts.Payload{}
	}
	w.updated[id] = p
	return contacts.Contact{ID: id, Name: p.Name}, w.err
}

func TestExecute(t *testing.T) {
	w := &recordingWriter{}
	body := contacts.Payload{Name: "Ada", Phone: "12345"}

	c, err := Execute(context.Background(), w, Create{Body: body})
	require.NoError(t, err)
	assert.Equal(t, contacts.ID("new"), c.ID)
	assert.Equal(t, []contacts.Payload{body}, w.created)

	_, err = Execute(context.Background(), w, Update{ID: "9", Body: body})
	require.NoError(t, err)
	assert.Equal(t, body, w.updated["9"])
	assert.Len(t, w.created, 1, "update must not create")
}

func TestExecute_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Execute(context.Background(), &recordingWriter{err: boom}, Create{})
	assert.ErrorIs(t, err, boom)
}
