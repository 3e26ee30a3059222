// Package desk routes user actions to the contacts API and keeps the local
// cache in step.
//
// Every entry point a surface calls lives here: Dispatch for row actions
// (edit, delete, blacklist, unblacklist), Submit for the form, the filter and
// search setters, and the two refresh paths. Writes are never applied to the
// cache directly; each one is followed by a refresh:
//
//	create/update/delete  -> RefreshAll (contacts and groups)
//	blacklist/unblacklist -> RefreshContacts
//	group/blacklist filter -> RefreshContacts
//	search keyword        -> no request
//
// Confirmation and notification are supplied by the surface through the
// Confirmer and Notifier interfaces. The TUI answers Confirm from its modal;
// the CLI answers from stdin or --yes.
package desk
