package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// API is the remote record store surface the desk depends on.
// *Client implements it; tests substitute fakes or httptest servers.
type API interface {
	ListContacts(ctx context.Context, filter ListFilter) ([]Contact, error)
	ListGroups(ctx context.Context) ([]string, error)
	CreateContact(ctx context.Context, payload Payload) (Contact, error)
	UpdateContact(ctx context.Context, id ID, payload Payload) (Contact, error)
	DeleteContact(ctx context.Context, id ID) error
	SetBlacklisted(ctx context.Context, id ID, value *bool) (Contact, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the contacts HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

const (
	defaultBaseURL   = "127.0.0.1:8080"
	defaultUserAgent = "contactdesk/0.1"

	contactsPath = "/api/contacts"
	groupsPath   = "/api/contacts/groups"

	maxBodyBytes = 4 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero leaves the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			// Copy so a client passed to WithHTTPClient is not mutated.
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given base URL. A bare host:port gets an
// http scheme; any path prefix is kept and endpoint paths are appended to it.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListContacts fetches the contact list, applying server-side filters.
func (c *Client) ListContacts(ctx context.Context, filter ListFilter) ([]Contact, error) {
	values := url.Values{}
	if filter.Group != "" {
		values.Set("group", filter.Group)
	}
	if filter.Blacklisted != nil {
		values.Set("blacklisted", strconv.FormatBool(*filter.Blacklisted))
	}
	resp, err := c.do(ctx, http.MethodGet, contactsPath, values, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp.status, resp.body)
	}
	var list []Contact
	if err := resp.decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListGroups fetches the distinct group names currently in use.
func (c *Client) ListGroups(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, groupsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp.status, resp.body)
	}
	var groups []string
	if err := resp.decode(&groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateContact posts a new contact. The server may treat the request as an
// upsert.
func (c *Client) CreateContact(ctx context.Context, payload Payload) (Contact, error) {
	return c.writeContact(ctx, http.MethodPost, contactsPath, payload)
}

// UpdateContact replaces the contact with the given id.
func (c *Client) UpdateContact(ctx context.Context, id ID, payload Payload) (Contact, error) {
	if id == "" {
		return Contact{}, fmt.Errorf("contact id required")
	}
	return c.writeContact(ctx, http.MethodPut, contactPath(id), payload)
}

// DeleteContact removes a contact. Only 204 No Content counts as success.
func (c *Client) DeleteContact(ctx context.Context, id ID) error {
	if id == "" {
		return fmt.Errorf("contact id required")
	}
	resp, err := c.do(ctx, http.MethodDelete, contactPath(id), nil, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusNoContent {
		return rawStatusError(resp.status, resp.body)
	}
	return nil
}

// SetBlacklisted patches only the blacklist flag. A nil value sends the
// request without a body and leaves the outcome to the server.
func (c *Client) SetBlacklisted(ctx context.Context, id ID, value *bool) (Contact, error) {
	if id == "" {
		return Contact{}, fmt.Errorf("contact id required")
	}
	var body any
	if value != nil {
		body = blacklistBody{Blacklisted: *value}
	}
	return c.writeContact(ctx, http.MethodPatch, contactPath(id)+"/blacklist", body)
}

func (c *Client) writeContact(ctx context.Context, method, path string, body any) (Contact, error) {
	resp, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return Contact{}, err
	}
	if !resp.ok() {
		return Contact{}, statusError(resp.status, resp.body)
	}
	var contact Contact
	if err := resp.decode(&contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// decode treats an empty body as the zero value.
func (r response) decode(dest any) error {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, dest); err != nil {
		return decodeError(r.status, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (response, error) {
	reqURL := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Cache-Control", "no-store")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", reqURL.Path),
			zap.Error(err))
		return response{}, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read response: %v", err),
			Err:        err,
		}
	}

	c.logger.Debug("request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", reqURL.Path),
		zap.String("query", reqURL.RawQuery),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	return response{status: resp.StatusCode, body: data}, nil
}

func (c *Client) endpoint(path string, query url.Values) *url.URL {
	u := *c.baseURL
	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + path
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
		u.RawPath = escaped
	} else {
		u.Path = escaped
		u.RawPath = ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func contactPath(id ID) string {
	return contactsPath + "/" + url.PathEscape(string(id))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
