package contacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the server-assigned contact identifier. The API may encode it as a
// JSON number or string; it is kept opaque either way.
type ID string

// UnmarshalJSON accepts numbers, strings, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integral identifiers back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Contact mirrors a record returned by /api/contacts.
type Contact struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	GroupName   string `json:"group_name"`
	Blacklisted bool   `json:"is_blacklisted"`
	Note        string `json:"note"`
}

// Payload is the create/update request body.
type Payload struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	GroupName   string `json:"group_name"`
	Blacklisted bool   `json:"is_blacklisted"`
	Note        string `json:"note"`
}

// ListFilter narrows /api/contacts on the server. Zero values are omitted.
type ListFilter struct {
	Group       string
	Blacklisted *bool
}

// IsZero reports whether no server-side filter is set.
func (f ListFilter) IsZero() bool {
	return f.Group == "" && f.Blacklisted == nil
}

// Bool returns a pointer to v, for ListFilter.Blacklisted and SetBlacklisted.
func Bool(v bool) *bool {
	return &v
}

type blacklistBody struct {
	Blacklisted bool `json:"is_blacklisted"`
}

type errorBody struct {
	Message string `json:"message"`
}
