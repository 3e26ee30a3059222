// Package state holds the local contact cache shared by the refresh paths
// and the surfaces.
//
// # Overview
//
// Store keeps the last fetched contact list (in server order), the group list,
// the active server-side filter, and the local search keyword. Producers are
// refresh commands and the poller; consumers take a Snapshot and render it.
//
// # Stale responses
//
// Refreshes run on their own goroutines, so two list requests can finish out
// of order. Each refresh asks the Store for a Ticket before issuing its
// request and hands it back with the result:
//
//	t := store.BeginContacts()
//	list, err := api.ListContacts(ctx, store.Filter())
//	store.ApplyContacts(t, list, err)
//
// A result whose ticket is not newer than the last applied one is dropped.
// Contact and group slots are tracked separately.
//
// # Update semantics
//
// A successful apply replaces the slot wholesale. A failed apply keeps the
// previous data, records LastError, and bumps ConsecutiveFailures; the
// snapshot reports IsOffline once two refreshes in a row have failed.
//
// # Local search
//
// ApplyFilter narrows a list by a case-insensitive substring across name,
// phone, email, group, and note. Snapshot.Visible applies the stored keyword
// to the cached list. Changing the keyword never causes a fetch.
//
// The zero Store is ready to use.
package state
