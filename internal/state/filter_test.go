package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/contactdesk/internal/contacts"
)

func sample() []contacts.Contact {
	return []contacts.Contact{
		{ID: "1", Name: "Ada Lovelace", Phone: "+441234", Email: "ada@example.com", GroupName: "vip"},
		{ID: "2", Name: "Bob", Phone: "55501", GroupName: "work", Note: "Prefers EMAIL"},
		{ID: "3", Name: "Carol", Phone: "+15550100", Email: "carol@example.org"},
	}
}

func TestApplyFilter_EmptyKeywordIsIdentity(t *testing.T) {
	list := sample()
	for _, kw := range []string{"", "   ", "\t"} {
		got := ApplyFilter(list, kw)
		require.Len(t, got, len(list))
		assert.Same(t, &list[0], &got[0], "keyword %q should return the input slice", kw)
	}
}

func TestApplyFilter_MatchesEveryField(t *testing.T) {
	tests := []struct {
		keyword string
		want    []contacts.ID
	}{
		{"ada", []contacts.ID{"1"}},
		{"LOVELACE", []contacts.ID{"1"}},
		{"555", []contacts.ID{"2", "3"}},
		{"example", []contacts.ID{"1", "3"}},
		{"work", []contacts.ID{"2"}},
		{"email", []contacts.ID{"2"}},
		{"  carol ", []contacts.ID{"3"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			var ids []contacts.ID
			for _, c := range ApplyFilter(sample(), tt.keyword) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApplyFilter_SubsetInInputOrder(t *testing.T) {
	list := sample()
	got := ApplyFilter(list, "a")

	// Every result must come from the input, in the same relative order.
	j := 0
	for _, c := range got {
		for j < len(list) && list[j].ID != c.ID {
			j++
		}
		require.Less(t, j, len(list), "result %s not found in order", c.ID)
		j++
	}
}

func TestSnapshot_VisibleComposesServerFilterAndKeyword(t *testing.T) {
	var s Store

	// Server already narrowed to group "vip"; local keyword narrows further.
	s.SetFilter(contacts.ListFilter{Group: "vip"})
	s.ApplyContacts(s.BeginContacts(), []contacts.Contact{
		{ID: "1", Name: "Ada", GroupName: "vip"},
		{ID: "4", Name: "Alan", GroupName: "vip"},
	}, nil)
	s.SetKeyword("ada")

	visible := s.Snapshot().Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, contacts.ID("1"), visible[0].ID)
	assert.Len(t, s.Snapshot().Contacts, 2, "keyword must not shrink the cache")
}
