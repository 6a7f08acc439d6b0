// Package transport defines the narrow HTTP collaborator the binding layer
// fetches through. Connection handling, TLS, authentication, retries, and
// caching all live behind this interface; the default implementation is a
// thin wrapper over net/http.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Request is one outbound HTTP exchange.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the raw result of an exchange. The body is fully read before
// the response is returned.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs HTTP exchanges. Implementations wrap signing, custom
// headers, or test doubles around the request without the binding layer
// knowing.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport is the net/http-backed default.
type HTTPTransport struct {
	client *http.Client
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithClient overrides the underlying *http.Client.
func WithClient(c *http.Client) Option {
	return func(t *HTTPTransport) { t.client = c }
}

// New builds an HTTPTransport, using http.DefaultClient unless overridden.
func New(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{client: http.DefaultClient}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoundTrip performs the exchange synchronously and drains the response body.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req Request) (Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("transport: build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("transport: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("transport: read response body: %w", err)
	}
	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

var defaultTransport Transport = New()

// Default returns the process-wide transport used when an object carries no
// override.
func Default() Transport { return defaultTransport }
