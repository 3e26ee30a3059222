package desk

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/contactdesk/internal/contacts"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// backend is an in-memory contacts API.
type backend struct {
	mu     sync.Mutex
	nextID int
	order  []contacts.ID
	data   map[contacts.ID]contacts.Contact
	calls  []call
	failOn map[string]int // "METHOD /path" -> status
}

func newBackend(t *testing.T, seed ...contacts.Contact) (*backend, *contacts.Client) {
	t.Helper()
	b := &backend{nextID: 100, data: map[contacts.ID]contacts.Contact{}, failOn: map[string]int{}}
	for _, c := range seed {
		b.order = append(b.order, c.ID)
		b.data[c.ID] = c
	}
	server := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(server.Close)

	client, err := contacts.NewClient(server.URL)
	require.NoError(t, err)
	return b, client
}

func (b *backend) fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failOn[method+" "+path] = status
}

func (b *backend) recorded() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *backend) count(method, path string) int {
	n := 0
	for _, c := range b.recorded() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *backend) writes() []call {
	var out []call
	for _, c := range b.recorded() {
		if c.Method != http.MethodGet {
			out = append(out, c)
		}
	}
	return out
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})

	if status, ok := b.failOn[r.Method+" "+r.URL.Path]; ok {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "backend says no"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/contacts")
	switch {
	case path == "" && r.Method == http.MethodGet:
		b.list(w, r)
	case path == "/groups" && r.Method == http.MethodGet:
		b.groups(w)
	case path == "" && r.Method == http.MethodPost:
		var p contacts.Payload
		_ = json.Unmarshal(body, &p)
		b.nextID++
		id := contacts.ID(strconv.Itoa(b.nextID))
		b.order = append(b.order, id)
		b.data[id] = fromPayload(id, p)
		writeJSON(w, http.StatusCreated, b.data[id])
	case strings.HasSuffix(path, "/blacklist") && r.Method == http.MethodPatch:
		id := contacts.ID(strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/blacklist"))
		c, ok := b.data[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req struct {
			Blacklisted *bool `json:"is_blacklisted"`
		}
		_ = json.Unmarshal(body, &req)
		if req.Blacklisted == nil {
			c.Blacklisted = !c.Blacklisted
		} else {
			c.Blacklisted = *req.Blacklisted
		}
		b.data[id] = c
		writeJSON(w, http.StatusOK, c)
	case r.Method == http.MethodPut:
		id := contacts.ID(strings.TrimPrefix(path, "/"))
		var p contacts.Payload
		_ = json.Unmarshal(body, &p)
		b.data[id] = fromPayload(id, p)
		writeJSON(w, http.StatusOK, b.data[id])
	case r.Method == http.MethodDelete:
		id := contacts.ID(strings.TrimPrefix(path, "/"))
		delete(b.data, id)
		for i, o := range b.order {
			if o == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) list(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	black := r.URL.Query().Get("blacklisted")
	out := []contacts.Contact{}
	for _, id := range b.order {
		c := b.data[id]
		if group != "" && c.GroupName != group {
			continue
		}
		if black != "" && strconv.FormatBool(c.Blacklisted) != black {
			continue
		}
		out = append(out, c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *backend) groups(w http.ResponseWriter) {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range b.data {
		if c.GroupName != "" && !seen[c.GroupName] {
			seen[c.GroupName] = true
			out = append(out, c.GroupName)
		}
	}
	sort.Strings(out)
	writeJSON(w, http.StatusOK, out)
}

func fromPayload(id contacts.ID, p contacts.Payload) contacts.Contact {
	return contacts.Contact{
		ID: id, Name: p.Name, Phone: p.Phone, Email: p.Email,
		GroupName: p.GroupName, Blacklisted: p.Blacklisted, Note: p.Note,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
