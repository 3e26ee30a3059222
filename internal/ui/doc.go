// Package ui is the Bubble Tea front end for contactdesk.
//
// The root Model reads the contact cache from state.Store on a short tick and
// routes every mutation through desk.Desk from a tea.Cmd, so the Update loop
// never blocks on the network. Confirmation prompts and notifications that
// desk raises from those commands come back into the program through Bridge,
// which turns them into messages.
//
// Views:
//
//   - Contacts: table of the filtered cache with a detail pane. Notes are
//     rendered as Markdown with glamour.
//   - Activity: tail of the zap log file.
//
// Overlays (help, confirm, contact form) take over the screen until closed.
// Untrusted server text is passed through sanitize.ForTerminal before it is
// drawn.
package ui
