package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/contactdesk/internal/contacts"
)

func TestStore_ApplyAndSnapshotClone(t *testing.T) {
	var s Store

	list := []contacts.Contact{{ID: "1", Name: "Ada"}, {ID: "2", Name: "Bob"}}

	before := time.Now()
	if !s.ApplyContacts(s.BeginContacts(), list, nil) {
		t.Fatal("ApplyContacts returned false for first ticket")
	}
	s.ApplyGroups(s.BeginGroups(), []string{"vip"}, nil)

	snap := s.Snapshot()
	if !snap.HasContacts || len(snap.Contacts) != 2 || snap.Contacts[0].Name != "Ada" {
		t.Fatalf("snapshot contacts = %#v, want 2 items starting with Ada", snap.Contacts)
	}
	if len(snap.Groups) != 1 || snap.Groups[0] != "vip" {
		t.Fatalf("snapshot groups = %#v, want [vip]", snap.Groups)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Contacts[0].Name = "mutated"
	snap.Groups[0] = "mutated"
	list[1].Name = "mutated"
	snap2 := s.Snapshot()
	if snap2.Contacts[0].Name != "Ada" || snap2.Contacts[1].Name != "Bob" {
		t.Fatalf("Snapshot should clone contacts; got %#v", snap2.Contacts)
	}
	if snap2.Groups[0] != "vip" {
		t.Fatalf("Snapshot should clone groups; got %#v", snap2.Groups)
	}
}

func TestStore_ApplyErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.ApplyContacts(s.BeginContacts(), []contacts.Contact{{ID: "1"}}, nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.ApplyContacts(s.BeginContacts(), nil, origErr)

	snap := s.Snapshot()
	if len(snap.Contacts) != 1 || snap.Contacts[0].ID != "1" {
		t.Fatalf("contacts changed on error: got %#v", snap.Contacts)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_StaleTicketDiscarded(t *testing.T) {
	var s Store

	older := s.BeginContacts()
	newer := s.BeginContacts()

	if !s.ApplyContacts(newer, []contacts.Contact{{ID: "new"}}, nil) {
		t.Fatal("newer ticket rejected")
	}
	if s.ApplyContacts(older, []contacts.Contact{{ID: "old"}}, nil) {
		t.Fatal("older ticket applied after newer one")
	}
	if s.ApplyContacts(older, nil, errors.New("late failure")) {
		t.Fatal("older failure applied after newer success")
	}

	snap := s.Snapshot()
	if len(snap.Contacts) != 1 || snap.Contacts[0].ID != "new" {
		t.Fatalf("contacts = %#v, want the newer response", snap.Contacts)
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("stale failure leaked: err=%v failures=%d", snap.LastError, snap.ConsecutiveFailures)
	}
}

func TestStore_GroupAndContactTicketsIndependent(t *testing.T) {
	var s Store

	groups := s.BeginGroups()
	list := s.BeginContacts()

	if !s.ApplyContacts(list, []contacts.Contact{{ID: "1"}}, nil) {
		t.Fatal("contacts ticket rejected")
	}
	if !s.ApplyGroups(groups, []string{"a"}, nil) {
		t.Fatal("groups ticket rejected after an unrelated contacts apply")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.ApplyContacts(s.BeginContacts(), nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.ApplyGroups(s.BeginGroups(), nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.ApplyContacts(s.BeginContacts(), []contacts.Contact{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_FilterAndKeyword(t *testing.T) {
	var s Store

	s.SetFilter(contacts.ListFilter{Group: "vip", Blacklisted: contacts.Bool(true)})
	s.SetKeyword("ada")

	f := s.Filter()
	if f.Group != "vip" || f.Blacklisted == nil || !*f.Blacklisted {
		t.Fatalf("Filter() = %#v, want vip/true", f)
	}
	*f.Blacklisted = false
	if !*s.Filter().Blacklisted {
		t.Fatal("Filter() should clone the blacklisted pointer")
	}
	if got := s.Snapshot().Keyword; got != "ada" {
		t.Fatalf("Keyword = %q, want ada", got)
	}
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := Snapshot{Contacts: []contacts.Contact{{ID: "7", Name: "Grace"}}}

	c, ok := snap.Lookup("7")
	if !ok || c.Name != "Grace" {
		t.Fatalf("Lookup(7) = %#v, %v", c, ok)
	}
	if _, ok := snap.Lookup("8"); ok {
		t.Fatal("Lookup(8) found a contact that is not cached")
	}
}

func TestStore_ClearVanishedGroup(t *testing.T) {
	var s Store

	if _, ok := s.ClearVanishedGroup(); ok {
		t.Fatal("ClearVanishedGroup cleared an empty filter")
	}

	s.SetFilter(contacts.ListFilter{Group: "vip"})
	s.ApplyGroups(s.BeginGroups(), []string{"vip", "work"}, nil)
	if _, ok := s.ClearVanishedGroup(); ok {
		t.Fatal("ClearVanishedGroup cleared a group that still exists")
	}
	if got := s.Filter().Group; got != "vip" {
		t.Fatalf("Filter().Group = %q, want vip", got)
	}

	s.ApplyGroups(s.BeginGroups(), []string{"work"}, nil)
	gone, ok := s.ClearVanishedGroup()
	if !ok || gone != "vip" {
		t.Fatalf("ClearVanishedGroup() = %q, %v, want vip, true", gone, ok)
	}
	if got := s.Filter().Group; got != "" {
		t.Fatalf("Filter().Group = %q, want empty", got)
	}
}
