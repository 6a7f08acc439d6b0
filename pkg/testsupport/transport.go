// Package testsupport provides canned transports for exercising delivery
// paths without a network.
package testsupport

import (
	"context"
	"net/http"

	"github.com/goliatone/go-remoteobjects/pkg/transport"
)

// StaticTransport replies to every request with one canned response and
// records the requests it saw.
type StaticTransport struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Header      http.Header

	Requests []transport.Request
}

// JSONResponse builds a StaticTransport replying with a JSON body.
func JSONResponse(status int, body string) *StaticTransport {
	return &StaticTransport{
		StatusCode:  status,
		ContentType: "application/json",
		Body:        []byte(body),
	}
}

// XMLResponse builds a StaticTransport replying with an XML body.
func XMLResponse(status int, body string) *StaticTransport {
	return &StaticTransport{
		StatusCode:  status,
		ContentType: "text/xml",
		Body:        []byte(body),
	}
}

// RoundTrip records the request and returns the canned response.
func (t *StaticTransport) RoundTrip(_ context.Context, req transport.Request) (transport.Response, error) {
	t.Requests = append(t.Requests, req)
	header := http.Header{}
	for k, vs := range t.Header {
		header[k] = vs
	}
	if t.ContentType != "" {
		header.Set("Content-Type", t.ContentType)
	}
	return transport.Response{
		StatusCode: t.StatusCode,
		Header:     header,
		Body:       append([]byte(nil), t.Body...),
	}, nil
}

// Calls returns how many requests the transport served.
func (t *StaticTransport) Calls() int { return len(t.Requests) }

// ErrorTransport fails every request with a fixed error, standing in for
// connection-level failures.
type ErrorTransport struct {
	Err error

	Requests []transport.Request
}

// RoundTrip records the request and returns the configured error.
func (t *ErrorTransport) RoundTrip(_ context.Context, req transport.Request) (transport.Response, error) {
	t.Requests = append(t.Requests, req)
	return transport.Response{}, t.Err
}
