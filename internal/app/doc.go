// Package app is the composition root for contactdesk.
//
// Open loads the TOML config, builds the zap logger, the contacts HTTP client,
// the shared state.Store, and the desk that routes every user intent. The CLI
// subcommands use a Session directly; Run adds the TUI on top:
//
//  1. Open the session with a ui.Bridge as notifier and confirmer
//  2. Refresh contacts and groups once so the first frame has data
//  3. Start the poller (RefreshAll every poll interval)
//  4. Run the Bubble Tea program until quit or cancellation
//
// The poller keeps going through failures. Each failed poll is logged and
// shown as a toast; the store counts consecutive failures and the header
// switches to OFFLINE after two.
package app
