package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/contactdesk/internal/activity"
	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/form"
	"github.com/five82/contactdesk/internal/prefs"
	"github.com/five82/contactdesk/internal/render"
	"github.com/five82/contactdesk/internal/sanitize"
	"github.com/five82/contactdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewContacts View = iota
	ViewActivity
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Desk      *desk.Desk
	Bridge    *Bridge
	BaseURL   string
	LogFile   string
	PollTick  time.Duration // how often the UI re-reads the cache
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	desk      *desk.Desk
	store     *state.Store
	keys      keyMap
	baseURL   string
	logFile   string
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	rows        render.TableModel

	// Table state
	selectedRow int
	selectedID  contacts.ID

	// Search
	searching   bool
	searchInput textinput.Model

	// Overlays
	modal    Modal
	showHelp bool
	toast    toast

	// Detail pane
	notes *noteRenderer

	// Activity view
	activityViewport viewport.Model
	activityEntries  []activity.Entry
	activityErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search name, phone, email, group, note"
	search.CharLimit = 100

	m := Model{
		ctx:         ctx,
		desk:        opts.Desk,
		keys:        DefaultKeyMap(),
		baseURL:     opts.BaseURL,
		logFile:     opts.LogFile,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		currentView: ViewContacts,
		searchInput: search,
		notes:       &noteRenderer{},
	}
	if opts.Desk != nil {
		m.store = opts.Desk.Store()
		m.snapshot = m.store.Snapshot()
		m.rebuildRows()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.activityViewport = viewport.New(m.width-4, m.contentHeight()-2)
		}
		m.ready = true
		m.resizeActivity()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case toastMsg:
		cmd := m.toast.show(msg.text, msg.ok)
		return m, cmd

	case toastExpiredMsg:
		m.toast.expire(msg.seq)
		return m, nil

	case confirmRequestMsg:
		if m.modal != nil {
			// Something else has the screen; decline rather than stack modals.
			msg.reply <- false
			return m, nil
		}
		m.showHelp = false
		m.modal = newConfirmModal(msg)
		return m, nil

	case submitDoneMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}
		if m.modal != nil {
			var cmd tea.Cmd
			var done bool
			m.modal, cmd, done = m.modal.Update(msg, m.keys)
			if done {
				m.modal = nil
			}
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case refreshDoneMsg:
		var cmd tea.Cmd
		if msg.err != nil && msg.notify {
			cmd = m.toast.show(desk.Message(msg.err), false)
		}
		return m, tea.Batch(cmd, fetchSnapshotCmd(m.store))

	case activityMsg:
		m.activityEntries = msg.entries
		m.activityErr = msg.err
		m.updateActivityViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.notes.reset()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		if m.currentView == ViewActivity {
			m.currentView = ViewContacts
			return m, nil
		}
		m.currentView = ViewActivity
		return m, loadActivityCmd(m.logFile)

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewActivity {
			m.currentView = ViewContacts
			return m, nil
		}
		if m.snapshot.Keyword != "" {
			m.setSearch("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd(true)
	}

	switch m.currentView {
	case ViewActivity:
		var cmd tea.Cmd
		m.activityViewport, cmd = m.activityViewport.Update(msg)
		return m, cmd
	default:
		return m.handleContactsKey(msg)
	}
}

// handleContactsKey processes keys for the contacts table.
func (m Model) handleContactsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.rows.Rows)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectRow(m.selectedRow + 1)
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectRow(m.selectedRow - 1)
		}
	case key.Matches(msg, m.keys.Top):
		m.selectRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectRow(count - 1)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.snapshot.Keyword)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleGroup):
		next := render.GroupOptions(m.snapshot.Groups, m.snapshot.Filter.Group).Next()
		return m, m.filterCmd(func(ctx context.Context, d *desk.Desk) error {
			return d.SetGroupFilter(ctx, next)
		})

	case key.Matches(msg, m.keys.CycleBlacklist):
		next := render.ParseBlacklist(render.BlacklistOptions(m.snapshot.Filter.Blacklisted).Next())
		return m, m.filterCmd(func(ctx context.Context, d *desk.Desk) error {
			return d.SetBlacklistFilter(ctx, next)
		})

	case key.Matches(msg, m.keys.New):
		m.modal = newFormModal(form.New(), m.submitCmd)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m, m.rowActionCmd(0)

	case key.Matches(msg, m.keys.ToggleBlacklist):
		return m, m.rowActionCmd(1)

	case key.Matches(msg, m.keys.Delete):
		return m, m.rowActionCmd(2)
	}
	return m, nil
}

// handleSearchKey feeds the search input and applies the keyword live.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.setSearch("")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.setSearch(m.searchInput.Value())
	return m, cmd
}

// setSearch updates the keyword and re-reads the cache. No request is sent.
func (m *Model) setSearch(keyword string) {
	if m.desk == nil {
		return
	}
	m.desk.SetSearch(keyword)
	m.applySnapshot(m.store.Snapshot())
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case msg.err != nil:
		// Remote failures were already reported through the notifier.
		if _, remote := contacts.AsRemoteError(msg.err); !remote && !errors.Is(msg.err, context.Canceled) {
			cmd = m.toast.show(desk.Message(msg.err), false)
		}
	case msg.result.Form != nil && m.modal != nil:
		// A confirm is waiting on its reply; replacing it would leave the
		// caller blocked.
		cmd = m.toast.show("Close the open dialog first", false)
	case msg.result.Form != nil:
		m.modal = newFormModal(*msg.result.Form, m.submitCmd)
	}
	return m, tea.Batch(cmd, fetchSnapshotCmd(m.store))
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewActivity {
		cmds = append(cmds, loadActivityCmd(m.logFile))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot stores a new snapshot and keeps the selection on the same
// contact when it is still visible.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if !snap.LastUpdated.Equal(m.snapshot.LastUpdated) {
		m.lastUpdated = time.Now()
	}
	m.snapshot = snap
	m.rebuildRows()
}

func (m *Model) rebuildRows() {
	m.rows = render.TableWith(m.snapshot.Visible(), sanitize.ForTerminal)
	count := len(m.rows.Rows)
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedID != "" {
		for i, r := range m.rows.Rows {
			if r.ID == m.selectedID {
				m.selectedRow = i
				return
			}
		}
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	m.selectedID = m.rows.Rows[m.selectedRow].ID
}

func (m *Model) selectRow(i int) {
	if len(m.rows.Rows) == 0 {
		m.selectedRow = 0
		m.selectedID = ""
		return
	}
	i = max(0, min(i, len(m.rows.Rows)-1))
	m.selectedRow = i
	m.selectedID = m.rows.Rows[i].ID
}

// selectedRowModel returns the highlighted row, if any.
func (m Model) selectedRowModel() (render.Row, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.rows.Rows) {
		return render.Row{}, false
	}
	return m.rows.Rows[m.selectedRow], true
}

// selectedContact returns the cached contact behind the highlighted row.
func (m Model) selectedContact() (contacts.Contact, bool) {
	row, ok := m.selectedRowModel()
	if !ok {
		return contacts.Contact{}, false
	}
	return m.snapshot.Lookup(row.ID)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewActivity:
		b.WriteString(m.renderActivity())
	default:
		b.WriteString(m.renderContacts())
	}
	return b.String()
}

func (m Model) contentHeight() int {
	return max(m.height-2, 3) // header + command bar
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type toastMsg struct {
	text string
	ok   bool
}

type confirmRequestMsg struct {
	prompt string
	reply  chan<- bool
}

type submitDoneMsg struct {
	err error
}

type actionDoneMsg struct {
	action desk.RowAction
	result desk.Result
	err    error
}

type refreshDoneMsg struct {
	err    error
	notify bool
}

type activityMsg struct {
	entries []activity.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshCmd(notify bool) tea.Cmd {
	d, ctx := m.desk, m.ctx
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		return refreshDoneMsg{err: d.RefreshAll(ctx), notify: notify}
	}
}

func (m Model) filterCmd(apply func(context.Context, *desk.Desk) error) tea.Cmd {
	d, ctx := m.desk, m.ctx
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		return refreshDoneMsg{err: apply(ctx, d), notify: true}
	}
}

func (m Model) submitCmd(s form.State) tea.Cmd {
	d, ctx := m.desk, m.ctx
	return func() tea.Msg {
		if d == nil {
			return submitDoneMsg{err: errors.New("not connected")}
		}
		_, err := d.Submit(ctx, s)
		return submitDoneMsg{err: err}
	}
}

// rowActionCmd dispatches the idx-th affordance of the selected row.
func (m Model) rowActionCmd(idx int) tea.Cmd {
	row, ok := m.selectedRowModel()
	if !ok || m.desk == nil || idx >= len(row.Actions) {
		return nil
	}
	a := desk.RowAction{ID: row.Actions[idx].ID, Action: row.Actions[idx].Action}
	d, ctx := m.desk, m.ctx
	return func() tea.Msg {
		res, err := d.Dispatch(ctx, a)
		return actionDoneMsg{action: a, result: res, err: err}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := activity.Tail(path, ActivityLineLimit)
		return activityMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and attaches the bridge to it.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.Bridge != nil {
		opts.Bridge.Attach(p)
		defer opts.Bridge.Attach(nil)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
