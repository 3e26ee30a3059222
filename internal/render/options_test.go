package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/five82/contactdesk/internal/contacts"
)

func TestGroupOptions(t *testing.T) {
	got := GroupOptions([]string{"family", "work"}, "work")

	want := Options{
		Items: []Option{
			{Value: "", Label: AllGroupsLabel},
			{Value: "family", Label: "family"},
			{Value: "work", Label: "work"},
		},
		Selected: "work",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, got.Index())
	assert.Equal(t, "", got.Next(), "Next wraps to the wildcard")
}

func TestGroupOptions_SelectionDroppedWhenGroupGone(t *testing.T) {
	got := GroupOptions([]string{"family"}, "work")
	assert.Equal(t, "", got.Selected)
	assert.Equal(t, 0, got.Index())
	assert.Equal(t, "family", got.Next())
}

func TestGroupOptions_NoGroups(t *testing.T) {
	got := GroupOptions(nil, "")
	assert.Len(t, got.Items, 1)
	assert.Equal(t, AllGroupsLabel, got.Items[0].Label)
}

func TestBlacklistOptions(t *testing.T) {
	tests := []struct {
		name    string
		current *bool
		want    string
	}{
		{"absent", nil, BlacklistAll},
		{"true", contacts.Bool(true), BlacklistYes},
		{"false", contacts.Bool(false), BlacklistNo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlacklistOptions(tt.current)
			assert.Len(t, got.Items, 3)
			assert.Equal(t, tt.want, got.Selected)
			assert.Equal(t, tt.current, ParseBlacklist(got.Selected))
		})
	}
}
