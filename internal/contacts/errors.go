package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RemoteError is the single failure shape for every client call. StatusCode
// is zero when the request never produced a response.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNetwork reports whether the failure happened before any HTTP status was
// received.
func (e *RemoteError) IsNetwork() bool {
	return e != nil && e.StatusCode == 0
}

// AsRemoteError unwraps err into a *RemoteError when possible.
func AsRemoteError(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}

func networkError(err error) *RemoteError {
	return &RemoteError{Message: fmt.Sprintf("execute request: %v", err), Err: err}
}

// statusError builds the error for a non-success response, preferring a
// structured message field, then the raw body, then a generic status line.
func statusError(status int, body []byte) *RemoteError {
	text := strings.TrimSpace(string(body))
	if text != "" {
		var parsed errorBody
		if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Message) != "" {
			return &RemoteError{StatusCode: status, Message: strings.TrimSpace(parsed.Message)}
		}
		return &RemoteError{StatusCode: status, Message: text}
	}
	return &RemoteError{StatusCode: status, Message: fmt.Sprintf("HTTP %d", status)}
}

// rawStatusError never interprets the body; delete failures carry it verbatim.
func rawStatusError(status int, body []byte) *RemoteError {
	if text := strings.TrimSpace(string(body)); text != "" {
		return &RemoteError{StatusCode: status, Message: text}
	}
	return &RemoteError{StatusCode: status, Message: fmt.Sprintf("HTTP %d", status)}
}

func decodeError(status int, err error) *RemoteError {
	return &RemoteError{StatusCode: status, Message: fmt.Sprintf("decode response: %v", err), Err: err}
}
