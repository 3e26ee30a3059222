package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/form"
	"github.com/five82/contactdesk/internal/prefs"
	"github.com/five82/contactdesk/internal/state"
)

// fakeAPI is an in-memory contacts.API that counts list requests.
type fakeAPI struct {
	mu      sync.Mutex
	list    []contacts.Contact
	lists   int
	deleted []contacts.ID
}

func (f *fakeAPI) ListContacts(context.Context, contacts.ListFilter) ([]contacts.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]contacts.Contact(nil), f.list...), nil
}

func (f *fakeAPI) ListGroups(context.Context) ([]string, error) {
	return []string{"Work"}, nil
}

func (f *fakeAPI) CreateContact(_ context.Context, p contacts.Payload) (contacts.Contact, error) {
	return contacts.Contact{ID: "99", Name: p.Name}, nil
}

func (f *fakeAPI) UpdateContact(_ context.Context, id contacts.ID, p contacts.Payload) (contacts.Contact, error) {
	return contacts.Contact{ID: id, Name: p.Name}, nil
}

func (f *fakeAPI) DeleteContact(_ context.Context, id contacts.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) SetBlacklisted(_ context.Context, id contacts.ID, _ *bool) (contacts.Contact, error) {
	return contacts.Contact{ID: id}, nil
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

var seed = []contacts.Contact{
	{ID: "1", Name: "Alice", Phone: "+15550001", GroupName: "Work"},
	{ID: "2", Name: "Bob", Phone: "+15550002", Blacklisted: true},
	{ID: "3", Name: "Carol", Email: "carol@example.com"},
}

func newTestModel(t *testing.T, opts ...desk.Option) (Model, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{list: seed}
	d := desk.New(api, &state.Store{}, opts...)
	require.NoError(t, d.RefreshAll(context.Background()))

	m := New(Options{Desk: d, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, api
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rowIDs(m Model) []contacts.ID {
	ids := make([]contacts.ID, 0, len(m.rows.Rows))
	for _, r := range m.rows.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSearchFiltersLocally(t *testing.T) {
	m, api := newTestModel(t)
	before := api.listCount()

	m = update(t, m, runes("/"))
	require.True(t, m.searching)
	for _, r := range "car" {
		m = update(t, m, runes(string(r)))
	}

	assert.Equal(t, []contacts.ID{"3"}, rowIDs(m))
	assert.Equal(t, "car", m.snapshot.Keyword)
	assert.Equal(t, before, api.listCount(), "search must not hit the network")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Len(t, m.rows.Rows, 3)
}

func TestSelectionFollowsContactID(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("j"))
	require.Equal(t, contacts.ID("2"), m.selectedID)

	snap := m.snapshot
	snap.Contacts = append([]contacts.Contact{{ID: "0", Name: "Aaron"}}, seed...)
	m = update(t, m, snapshotMsg(snap))

	assert.Equal(t, contacts.ID("2"), m.selectedID)
	assert.Equal(t, 2, m.selectedRow)
}

func TestSelectionClampsWhenContactDisappears(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("G"))
	require.Equal(t, contacts.ID("3"), m.selectedID)

	snap := m.snapshot
	snap.Contacts = seed[:2]
	m = update(t, m, snapshotMsg(snap))

	assert.Equal(t, 1, m.selectedRow)
	assert.Equal(t, contacts.ID("2"), m.selectedID)
}

func TestToastOnlyExpiresItsOwnSequence(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, toastMsg{text: "Saved", ok: true})
	m = update(t, m, toastMsg{text: "Deleted", ok: true})
	require.Equal(t, "Deleted", m.toast.text)

	m = update(t, m, toastExpiredMsg{seq: m.toast.seq - 1})
	assert.True(t, m.toast.visible())

	m = update(t, m, toastExpiredMsg{seq: m.toast.seq})
	assert.False(t, m.toast.visible())
}

func TestConfirmRequestOpensModal(t *testing.T) {
	m, _ := newTestModel(t)
	reply := make(chan bool, 1)
	m = update(t, m, confirmRequestMsg{prompt: "Delete #1?", reply: reply})
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Delete #1?")

	m = update(t, m, runes("y"))
	assert.Nil(t, m.modal)
	assert.True(t, <-reply)
}

func TestConfirmDeclinedWhileModalOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("n"))
	require.IsType(t, &formModal{}, m.modal)

	reply := make(chan bool, 1)
	m = update(t, m, confirmRequestMsg{prompt: "Delete #1?", reply: reply})
	assert.False(t, <-reply)
	assert.IsType(t, &formModal{}, m.modal)
}

func TestEditResultKeepsPendingConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	reply := make(chan bool, 1)
	m = update(t, m, confirmRequestMsg{prompt: "Delete #2?", reply: reply})
	require.IsType(t, &confirmModal{}, m.modal)

	loaded := form.Load(seed[0])
	m = update(t, m, actionDoneMsg{result: desk.Result{Form: &loaded, Performed: true}})
	require.IsType(t, &confirmModal{}, m.modal)
	assert.True(t, m.toast.visible())
	assert.Equal(t, "Close the open dialog first", m.toast.text)

	m = update(t, m, runes("y"))
	assert.Nil(t, m.modal)
	assert.True(t, <-reply)
}

func TestEditOpensLoadedForm(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := updateCmd(t, m, runes("e"))
	require.NotNil(t, cmd)

	m = update(t, m, cmd())
	fm, ok := m.modal.(*formModal)
	require.True(t, ok)
	assert.Equal(t, contacts.ID("1"), fm.state.ID)
	assert.Equal(t, "Alice", fm.inputs[fieldName].Value())
}

func TestDeleteRunsThroughConfirmer(t *testing.T) {
	yes := desk.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	m, api := newTestModel(t, desk.WithConfirmer(yes))
	m = update(t, m, runes("j"))

	_, cmd := updateCmd(t, m, runes("x"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(actionDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.True(t, msg.result.Performed)
	assert.Equal(t, []contacts.ID{"2"}, api.deleted)
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, "Nightfox", m.theme.Name)

	m = update(t, m, runes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)
	assert.Equal(t, "Kanagawa", prefs.Load(m.prefsPath).Theme)
}

func TestHeaderShowsOffline(t *testing.T) {
	m, _ := newTestModel(t)
	snap := m.snapshot
	snap.LastError = &contacts.RemoteError{Message: "connection refused"}
	snap.ConsecutiveFailures = 2
	m = update(t, m, snapshotMsg(snap))

	view := m.View()
	assert.Contains(t, view, "OFFLINE")
	assert.Contains(t, view, "Alice", "cached rows stay visible while offline")
}

func TestActivityToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := updateCmd(t, m, runes("L"))
	require.Equal(t, ViewActivity, m.currentView)
	require.NotNil(t, cmd)

	m = update(t, m, activityMsg{})
	assert.Contains(t, m.View(), "No activity yet")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewContacts, m.currentView)
}
