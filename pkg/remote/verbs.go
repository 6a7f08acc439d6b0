package remote

import (
	"context"
	"net/http"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/goliatone/go-remoteobjects/pkg/transport"
)

// Put writes the object's encoded representation back to its location. The
// object must be delivered and located; a success response updates the
// object in place.
func (o *Object) Put(ctx context.Context) error {
	if !o.delivered {
		return &DeliveryError{Location: o.location, Reason: "cannot save an undelivered object"}
	}
	if o.location == "" {
		return &DeliveryError{Reason: "object has no URL to save to"}
	}
	body, err := o.encodeBody()
	if err != nil {
		return err
	}
	resp, err := o.roundTrip(ctx, http.MethodPut, o.location, body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{URL: o.location, StatusCode: resp.StatusCode, Body: resp.Body}
	}
	if len(resp.Body) == 0 {
		return nil
	}
	o.delivered = false
	return o.updateFromResponse(resp)
}

// Post submits a child object to the receiver's location, the usual
// add-to-collection idiom. The child is updated from the response, and
// adopts a Location header as its canonical URL when the server sends one.
func (o *Object) Post(ctx context.Context, child *Object) error {
	if o.location == "" {
		return &DeliveryError{Reason: "object has no URL to post to"}
	}
	body, err := child.encodeBody()
	if err != nil {
		return err
	}
	resp, err := o.roundTrip(ctx, http.MethodPost, o.location, body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{URL: o.location, StatusCode: resp.StatusCode, Body: resp.Body}
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		child.location = loc
	}
	if len(resp.Body) == 0 {
		return nil
	}
	child.delivered = false
	return child.updateFromResponse(resp)
}

// Delete removes the remote resource. The local object keeps its data; only
// the server side is affected.
func (o *Object) Delete(ctx context.Context) error {
	if o.location == "" {
		return &DeliveryError{Reason: "object has no URL to delete"}
	}
	resp, err := o.roundTrip(ctx, http.MethodDelete, o.location, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{URL: o.location, StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return nil
}

func (o *Object) encodeBody() ([]byte, error) {
	m, err := o.inst.ToMap()
	if err != nil {
		return nil, err
	}
	return []byte(oj.JSON(m)), nil
}

func (o *Object) roundTrip(ctx context.Context, method, url string, body []byte) (transport.Response, error) {
	tr := o.transport
	if tr == nil {
		tr = transport.Default()
	}
	header := http.Header{"Accept": []string{strings.Join(o.typ.ContentTypes(), ", ")}}
	if len(body) > 0 {
		header.Set("Content-Type", o.typ.ContentTypes()[0])
	}
	resp, err := tr.RoundTrip(ctx, transport.Request{
		Method: method,
		URL:    url,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return transport.Response{}, &ResponseError{URL: url, Err: err}
	}
	return resp, nil
}
