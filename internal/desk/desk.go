package desk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/form"
	"github.com/five82/contactdesk/internal/render"
	"github.com/five82/contactdesk/internal/state"
)

var (
	// ErrUnknownAction is returned when a row action has no handler.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNotCached is returned when an edit targets a contact that is not in
	// the local cache.
	ErrNotCached = errors.New("contact not in cache")
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string, ok bool)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(message string, ok bool)

// Notify calls f.
func (f NotifyFunc) Notify(message string, ok bool) { f(message, ok) }

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Refresher reloads the cache from the server.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// RowAction is a user action on one table row.
type RowAction struct {
	ID     contacts.ID
	Action string
}

// Result describes what Dispatch did.
type Result struct {
	// Form is set by the edit action.
	Form *form.State
	// Performed is false when nothing was sent, e.g. a declined delete.
	Performed bool
}

type route func(ctx context.Context, id contacts.ID) (Result, error)

// Desk coordinates user actions with the remote API and the local cache.
type Desk struct {
	api     contacts.API
	store   *state.Store
	notify  Notifier
	confirm Confirmer
	logger  *zap.Logger
	routes  map[string]route
}

var _ Refresher = (*Desk)(nil)

// Option configures a Desk.
type Option func(*Desk)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(d *Desk) {
		if n != nil {
			d.notify = n
		}
	}
}

// WithConfirmer sets the confirmation source. Without one every confirmation
// is declined.
func WithConfirmer(c Confirmer) Option {
	return func(d *Desk) {
		if c != nil {
			d.confirm = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Desk) {
		if l != nil {
			d.logger = l
		}
	}
}

// New builds a Desk over api and store.
func New(api contacts.API, store *state.Store, opts ...Option) *Desk {
	d := &Desk{
		api:     api,
		store:   store,
		notify:  NotifyFunc(func(string, bool) {}),
		confirm: ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil }),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.routes = map[string]route{
		render.ActionEdit:    d.edit,
		render.ActionDelete:  d.remove,
		render.ActionBlack:   d.blacklist(true),
		render.ActionUnblack: d.blacklist(false),
	}
	return d
}

// Store returns the cache the desk writes to.
func (d *Desk) Store() *state.Store {
	return d.store
}

// RefreshAll reloads contacts and groups concurrently.
func (d *Desk) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return d.RefreshContacts(ctx) })
	g.Go(func() error { return d.refreshGroups(ctx) })
	return g.Wait()
}

// RefreshContacts reloads the contact list with the current server filter.
func (d *Desk) RefreshContacts(ctx context.Context) error {
	t := d.store.BeginContacts()
	filter := d.store.Filter()
	list, err := d.api.ListContacts(ctx, filter)
	if !d.store.ApplyContacts(t, list, err) {
		d.logger.Debug("discarded stale contacts response")
	}
	if err != nil {
		d.logger.Warn("list contacts failed", zap.Error(err))
		return fmt.Errorf("list contacts: %w", err)
	}
	d.logger.Debug("contacts refreshed", zap.Int("count", len(list)), zap.String("group", filter.Group))
	return nil
}

func (d *Desk) refreshGroups(ctx context.Context) error {
	t := d.store.BeginGroups()
	groups, err := d.api.ListGroups(ctx)
	if !d.store.ApplyGroups(t, groups, err) {
		d.logger.Debug("discarded stale groups response")
	}
	if err != nil {
		d.logger.Warn("list groups failed", zap.Error(err))
		return fmt.Errorf("list groups: %w", err)
	}
	if gone, ok := d.store.ClearVanishedGroup(); ok {
		d.logger.Info("group filter cleared", zap.String("group", gone))
		return d.RefreshContacts(ctx)
	}
	return nil
}

// Submit validates s, writes it, and reloads the cache. It returns a reset
// form on success. On failure it returns s unchanged with the error.
func (d *Desk) Submit(ctx context.Context, s form.State) (form.State, error) {
	intent, err := form.Plan(s)
	if err != nil {
		return s, err
	}
	if _, err := form.Execute(ctx, d.api, intent); err != nil {
		d.logger.Warn("save contact failed", zap.String("id", s.ID.String()), zap.Error(err))
		return s, err
	}

	msg := "Saved"
	if _, ok := intent.(form.Update); ok {
		msg = "Updated"
	}
	d.logger.Info("contact "+strings.ToLower(msg), zap.String("id", s.ID.String()))
	d.notify.Notify(msg, true)
	d.afterWrite(d.RefreshAll(ctx))
	return s.Reset(), nil
}

// Dispatch routes a row action to its handler.
func (d *Desk) Dispatch(ctx context.Context, action RowAction) (Result, error) {
	h, ok := d.routes[action.Action]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, action.Action)
	}
	d.logger.Debug("dispatch", zap.String("action", action.Action), zap.String("id", action.ID.String()))
	return h(ctx, action.ID)
}

func (d *Desk) edit(_ context.Context, id contacts.ID) (Result, error) {
	c, ok := d.store.Snapshot().Lookup(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotCached, id)
	}
	s := form.Load(c)
	return Result{Form: &s, Performed: true}, nil
}

func (d *Desk) remove(ctx context.Context, id contacts.ID) (Result, error) {
	ok, err := d.confirm.Confirm(ctx, fmt.Sprintf("Delete #%s?", id))
	if err != nil {
		return Result{}, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return Result{}, nil
	}
	if err := d.api.DeleteContact(ctx, id); err != nil {
		return Result{}, d.fail("delete contact", id, err)
	}
	d.logger.Info("contact deleted", zap.String("id", id.String()))
	d.notify.Notify("Deleted", true)
	d.afterWrite(d.RefreshAll(ctx))
	return Result{Performed: true}, nil
}

func (d *Desk) blacklist(value bool) route {
	return func(ctx context.Context, id contacts.ID) (Result, error) {
		if _, err := d.api.SetBlacklisted(ctx, id, contacts.Bool(value)); err != nil {
			return Result{}, d.fail("set blacklist", id, err)
		}
		msg := "Unblacklisted"
		if value {
			msg = "Blacklisted"
		}
		d.logger.Info("contact "+strings.ToLower(msg), zap.String("id", id.String()))
		d.notify.Notify(msg, true)
		d.afterWrite(d.RefreshContacts(ctx))
		return Result{Performed: true}, nil
	}
}

// ToggleBlacklist sends the blacklist request without a body and lets the
// server decide the new value.
func (d *Desk) ToggleBlacklist(ctx context.Context, id contacts.ID) (contacts.Contact, error) {
	c, err := d.api.SetBlacklisted(ctx, id, nil)
	if err != nil {
		return contacts.Contact{}, d.fail("toggle blacklist", id, err)
	}
	d.notify.Notify("Toggled", true)
	d.afterWrite(d.RefreshContacts(ctx))
	return c, nil
}

// SetGroupFilter changes the server-side group filter and reloads contacts.
// An empty group clears the filter.
func (d *Desk) SetGroupFilter(ctx context.Context, group string) error {
	f := d.store.Filter()
	f.Group = group
	d.store.SetFilter(f)
	return d.RefreshContacts(ctx)
}

// SetBlacklistFilter changes the server-side blacklist filter and reloads
// contacts. Nil clears the filter.
func (d *Desk) SetBlacklistFilter(ctx context.Context, value *bool) error {
	f := d.store.Filter()
	f.Blacklisted = value
	d.store.SetFilter(f)
	return d.RefreshContacts(ctx)
}

// SetSearch changes the local search keyword. No request is sent.
func (d *Desk) SetSearch(keyword string) {
	d.store.SetKeyword(keyword)
}

func (d *Desk) fail(op string, id contacts.ID, err error) error {
	d.logger.Warn(op+" failed", zap.String("id", id.String()), zap.Error(err))
	d.notify.Notify(Message(err), false)
	return err
}

func (d *Desk) afterWrite(err error) {
	if err != nil {
		d.notify.Notify(Message(err), false)
	}
}

// Message returns the user-facing text for err: the remote message when the
// error came from the API, otherwise the error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if remote, ok := contacts.AsRemoteError(err); ok {
		return remote.Message
	}
	return err.Error()
}
