package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/contactdesk/internal/desk"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge lets router code running on command goroutines reach the TUI. It
// implements desk.Notifier and desk.Confirmer by sending messages into the
// running program.
type Bridge struct {
	mu   sync.RWMutex
	prog sender
}

var (
	_ desk.Notifier  = (*Bridge)(nil)
	_ desk.Confirmer = (*Bridge)(nil)
)

// Attach connects the bridge to a program. Messages sent before Attach are
// dropped and confirmations are declined.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prog = p
}

func (b *Bridge) program() sender {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prog
}

// Notify shows a toast.
func (b *Bridge) Notify(message string, ok bool) {
	if p := b.program(); p != nil {
		p.Send(toastMsg{text: message, ok: ok})
	}
}

// Confirm opens the confirm modal and blocks until it is answered or ctx ends.
func (b *Bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	p := b.program()
	if p == nil {
		return false, nil
	}
	reply := make(chan bool, 1)
	p.Send(confirmRequestMsg{prompt: prompt, reply: reply})
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
