package remote

import "fmt"

// DeliveryError reports a delivery attempt the promise state machine forbids:
// redelivering an already-delivered object, or delivering with no location.
type DeliveryError struct {
	Location string
	Reason   string
}

func (e *DeliveryError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("remote: %s", e.Reason)
	}
	return fmt.Sprintf("remote: %s (%s)", e.Reason, e.Location)
}

// ResponseError reports a failed HTTP exchange: either a transport-level
// failure (wrapped in Err) or a non-success status, carrying the body for
// diagnostics.
type ResponseError struct {
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("remote: request %s: unexpected status %d: %s", e.URL, e.StatusCode, truncate(e.Body, 200))
}

func (e *ResponseError) Unwrap() error { return e.Err }

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
