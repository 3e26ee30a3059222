package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/contactdesk/internal/contacts"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Contacts            []contacts.Contact
	Groups              []string
	Filter              contacts.ListFilter
	Keyword             string
	HasContacts         bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed refreshes
}

// IsOffline returns true when the API has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Visible returns the cached contacts narrowed by the local search keyword.
func (s Snapshot) Visible() []contacts.Contact {
	return ApplyFilter(s.Contacts, s.Keyword)
}

// Lookup finds a cached contact by id.
func (s Snapshot) Lookup(id contacts.ID) (contacts.Contact, bool) {
	for _, c := range s.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return contacts.Contact{}, false
}

// Ticket identifies one in-flight refresh. Responses are applied only when
// their ticket is newer than the last one applied for the same slot.
type Ticket struct {
	seq uint64
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	issued         uint64
	contactApplied uint64
	groupApplied   uint64
}

// BeginContacts issues a ticket for a contact-list refresh.
func (s *Store) BeginContacts() Ticket {
	return s.begin()
}

// BeginGroups issues a ticket for a group-list refresh.
func (s *Store) BeginGroups() Ticket {
	return s.begin()
}

func (s *Store) begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{seq: s.issued}
}

// ApplyContacts replaces the cached contact list. When err is non-nil the
// previous data is kept but the error is recorded for visibility. It returns
// false when the response is older than one already applied.
func (s *Store) ApplyContacts(t Ticket, list []contacts.Contact, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq <= s.contactApplied {
		return false
	}
	s.contactApplied = t.seq
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.recordFailure(err)
		return true
	}

	s.snapshot.Contacts = cloneContacts(list)
	s.snapshot.HasContacts = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// ApplyGroups replaces the cached group list with the same rules as
// ApplyContacts.
func (s *Store) ApplyGroups(t Ticket, groups []string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq <= s.groupApplied {
		return false
	}
	s.groupApplied = t.seq

	if err != nil {
		s.snapshot.LastUpdated = time.Now()
		s.recordFailure(err)
		return true
	}
	s.snapshot.Groups = cloneStrings(groups)
	return true
}

// ClearVanishedGroup drops the group filter when the cached group list no
// longer contains it, falling back to all groups. It reports the name that
// was cleared.
func (s *Store) ClearVanishedGroup() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.snapshot.Filter.Group
	if group == "" || slices.Contains(s.snapshot.Groups, group) {
		return "", false
	}
	s.snapshot.Filter.Group = ""
	return group, true
}

func (s *Store) recordFailure(err error) {
	s.snapshot.LastError = err
	s.snapshot.ConsecutiveFailures++
}

// SetFilter records the server-side filter used by the next contact refresh.
func (s *Store) SetFilter(filter contacts.ListFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Filter = cloneFilter(filter)
}

// Filter returns the current server-side filter.
func (s *Store) Filter() contacts.ListFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFilter(s.snapshot.Filter)
}

// SetKeyword records the local search keyword. It never triggers a fetch.
func (s *Store) SetKeyword(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Keyword = keyword
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Contacts = cloneContacts(s.snapshot.Contacts)
	snap.Groups = cloneStrings(s.snapshot.Groups)
	snap.Filter = cloneFilter(s.snapshot.Filter)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneContacts(items []contacts.Contact) []contacts.Contact {
	if len(items) == 0 {
		return nil
	}
	dup := make([]contacts.Contact, len(items))
	copy(dup, items)
	return dup
}

func cloneStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	dup := make([]string, len(items))
	copy(dup, items)
	return dup
}

func cloneFilter(f contacts.ListFilter) contacts.ListFilter {
	if f.Blacklisted != nil {
		f.Blacklisted = contacts.Bool(*f.Blacklisted)
	}
	return f
}
