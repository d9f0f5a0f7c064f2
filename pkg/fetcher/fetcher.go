package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/samvad-hq/getrequester/pkg/httpclient"
)

// Fetcher issues GET requests against a single URL fixed at construction.
// Its fields are never mutated after New, so an instance may be shared.
type Fetcher struct {
	url       string
	client    httpclient.Client
	log       Logger
	useNumber bool
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for requests.
func WithClient(c httpclient.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithNumbers makes the JSON helpers decode numbers into json.Number instead
// of float64, keeping integers beyond 2^53 exact.
func WithNumbers() Option {
	return func(f *Fetcher) { f.useNumber = true }
}

// WithLogger sets the logger failures are reported to. A nil logger silences
// diagnostics.
func WithLogger(log Logger) Option {
	return func(f *Fetcher) {
		f.log = ensureLogger(log)
	}
}

// New returns a Fetcher for url. The URL is stored verbatim and not validated;
// a malformed URL surfaces as a TransportError on the first fetch.
// Without WithLogger, failures are reported as JSON lines on stderr.
func New(url string, opts ...Option) *Fetcher {
	f := &Fetcher{url: url, log: defaultLogger()}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = httpclient.NewRestyClient(0)
	}
	return f
}

// URL returns the URL the fetcher was built with.
func (f *Fetcher) URL() string { return f.url }

// FetchBytes performs one GET request and returns the raw body.
//
// A successful response with no content yields a non-nil empty slice and a nil
// error. Transport failures return a *TransportError and 4xx/5xx responses a
// *StatusError; both are logged before returning.
func (f *Fetcher) FetchBytes(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := f.client.Get(ctx, f.url, nil)
	if err != nil {
		terr := &TransportError{URL: f.url, Err: err}
		f.log.WarnObj("http request failed", "fetch_error", map[string]any{
			"url":   f.url,
			"error": err.Error(),
		})
		return nil, terr
	}

	body := resp.Body()
	if httpclient.IsError(resp.StatusCode()) {
		serr := &StatusError{
			URL:        f.url,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       bodySnippet(body),
		}
		f.log.WarnObj("http request returned error status", "fetch_error", map[string]any{
			"url":         f.url,
			"status_code": resp.StatusCode(),
			"error":       serr.Error(),
		})
		return nil, serr
	}

	if body == nil {
		body = []byte{}
	}
	f.log.DebugObj("http request completed", "fetch_result", map[string]any{
		"url":         f.url,
		"status_code": resp.StatusCode(),
		"body_bytes":  len(body),
	})
	return body, nil
}

// FetchJSON fetches the body and parses it as UTF-8 JSON into a generic value:
// map[string]any, []any, string, float64, bool or nil for a JSON null.
//
// Fetch failures are returned unchanged without attempting to parse. An empty
// body returns ErrEmptyBody. Invalid UTF-8 or malformed JSON returns a
// *DecodeError, which is logged.
func (f *Fetcher) FetchJSON(ctx context.Context) (any, error) {
	var v any
	if err := f.FetchJSONInto(ctx, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// FetchJSONInto is FetchJSON decoding into a caller-supplied value.
func (f *Fetcher) FetchJSONInto(ctx context.Context, v any) error {
	body, err := f.FetchBytes(ctx)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		f.log.DebugObj("empty body, skipping json decode", "url", f.url)
		return ErrEmptyBody
	}
	if err := decodeJSON(body, v, f.useNumber); err != nil {
		derr := &DecodeError{URL: f.url, Err: err}
		f.log.WarnObj("failed to parse json", "decode_error", map[string]any{
			"url":   f.url,
			"error": err.Error(),
		})
		return derr
	}
	return nil
}

// DecodeJSON fetches f's URL and decodes the body into a T.
func DecodeJSON[T any](ctx context.Context, f *Fetcher) (T, error) {
	var out T
	if f == nil {
		return out, errors.New("fetcher is nil")
	}
	if err := f.FetchJSONInto(ctx, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func decodeJSON(body []byte, v any, useNumber bool) error {
	if !utf8.Valid(body) {
		return ErrInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if useNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}
	return nil
}
