package fetcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyBody is returned by the JSON helpers when the server answered
	// successfully with no content. FetchBytes never returns it.
	ErrEmptyBody = errors.New("empty response body")

	// ErrInvalidUTF8 is wrapped by a DecodeError when the body is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("body is not valid UTF-8")
)

// TransportError reports a request that never produced an HTTP response:
// DNS failure, refused connection, timeout, malformed URL or a cancelled context.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("get %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a 4xx or 5xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return fmt.Sprintf("get %s: status %s", e.URL, status)
	}
	return fmt.Sprintf("get %s: status %s body: %s", e.URL, status, e.Body)
}

// DecodeError reports a body that could not be turned into a JSON value.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode json from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport or HTTP status failure.
func IsTransport(err error) bool {
	var te *TransportError
	var se *StatusError
	return errors.As(err, &te) || errors.As(err, &se)
}

// IsDecode reports whether err is a UTF-8 or JSON decoding failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

const maxSnippetLen = 512

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		return s[:maxSnippetLen] + "..."
	}
	return s
}
