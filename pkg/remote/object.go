// Package remote binds modeled types to HTTP resources. An Object is a
// promise: constructed via Get it knows its location but holds no data, and
// the first read of a declared field (or an explicit Deliver) fetches and
// decodes the remote representation exactly once. Filtering and slicing
// derive new undelivered objects without touching the original.
//
// Objects are not safe for concurrent use. Each object is meant to be driven
// by a single goroutine; concurrent field reads on one undelivered object may
// attempt duplicate deliveries.
package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-remoteobjects/pkg/codec"
	"github.com/goliatone/go-remoteobjects/pkg/schema"
	"github.com/goliatone/go-remoteobjects/pkg/transport"
)

// DecodeFunc overrides response decoding for resources whose payloads do not
// map directly onto a codec, such as ring-decoded XML.
type DecodeFunc func(contentType string, body []byte) (map[string]any, error)

// Object is an HTTP-bound modeled entity with lazy delivery.
type Object struct {
	typ       *schema.Type
	inst      *schema.Instance
	location  string
	transport transport.Transport
	codecs    *codec.Registry
	decode    DecodeFunc
	delivered bool
}

// Option configures an Object at construction.
type Option func(*Object)

// WithTransport overrides the transport used for delivery. Derived objects
// (filters, slices, links) carry the override forward.
func WithTransport(t transport.Transport) Option {
	return func(o *Object) { o.transport = t }
}

// WithCodecs overrides the codec registry consulted for response decoding.
func WithCodecs(r *codec.Registry) Option {
	return func(o *Object) { o.codecs = r }
}

// WithDecodeFunc installs a custom response decoder, bypassing codec
// selection entirely. Content-type validation becomes the decoder's problem.
func WithDecodeFunc(fn DecodeFunc) Option {
	return func(o *Object) { o.decode = fn }
}

// New builds a delivered, empty object with no location.
func New(t *schema.Type, opts ...Option) *Object {
	o := &Object{typ: t, inst: t.New(), delivered: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Get promises the resource at url as an undelivered object. No network
// access happens until a declared field is read or Deliver is called.
func Get(t *schema.Type, rawurl string, opts ...Option) *Object {
	o := New(t, opts...)
	o.location = rawurl
	o.delivered = false
	return o
}

// FromMap builds a delivered object directly from a raw mapping.
func FromMap(t *schema.Type, raw map[string]any, opts ...Option) *Object {
	o := New(t, opts...)
	o.inst = t.FromMap(raw)
	return o
}

// Type returns the object's modeled type.
func (o *Object) Type() *schema.Type { return o.typ }

// Location returns the object's canonical URL, empty for directly
// constructed objects.
func (o *Object) Location() string { return o.location }

// Delivered reports whether the object holds its data.
func (o *Object) Delivered() bool { return o.delivered }

// Instance exposes the underlying modeled instance. Reading fields through
// it never triggers delivery.
func (o *Object) Instance() *schema.Instance { return o.inst }

// Deliver fetches the object's backing representation and installs it,
// flipping the object to delivered. Redelivery and delivery without a
// location fail with a *DeliveryError. A failed delivery leaves the object
// undelivered, so the caller may retry.
func (o *Object) Deliver(ctx context.Context) error {
	if o.delivered {
		return &DeliveryError{Location: o.location, Reason: o.typ.Name() + " object has already been delivered"}
	}
	if o.location == "" {
		return &DeliveryError{Reason: "object has no URL from which to deliver"}
	}

	tr := o.transport
	if tr == nil {
		tr = transport.Default()
	}
	resp, err := tr.RoundTrip(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    o.location,
		Header: http.Header{"Accept": []string{strings.Join(o.typ.ContentTypes(), ", ")}},
	})
	if err != nil {
		return &ResponseError{URL: o.location, Err: err}
	}
	return o.updateFromResponse(resp)
}

// updateFromResponse validates a response, decodes it into a raw mapping,
// and installs it. Any successful update constitutes delivery.
func (o *Object) updateFromResponse(resp transport.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{URL: o.location, StatusCode: resp.StatusCode, Body: resp.Body}
	}

	contentType := resp.Header.Get("Content-Type")
	var raw map[string]any
	var err error
	if o.decode != nil {
		raw, err = o.decode(contentType, resp.Body)
	} else {
		accepted := o.typ.ContentTypes()
		if !codec.Match(contentType, accepted) {
			return &codec.ContentTypeError{ContentType: contentType, Accepted: accepted}
		}
		codecs := o.codecs
		if codecs == nil {
			codecs = codec.Default()
		}
		c, ok := codecs.For(contentType)
		if !ok {
			return &codec.ContentTypeError{ContentType: contentType, Accepted: codecs.Accepted()}
		}
		raw, err = c.Decode(resp.Body)
	}
	if err != nil {
		return err
	}

	o.inst.UpdateFromMap(raw)
	o.delivered = true
	return nil
}

// Get reads a declared field, delivering the object first when necessary.
// Reading an undeclared name fails with a *schema.FieldError without
// attempting delivery; a failed delivery propagates its own error rather
// than masking it as a missing attribute. Link fields derive a new
// undelivered object and never trigger delivery of the owner.
func (o *Object) Get(ctx context.Context, name string) (any, error) {
	f, ok := o.typ.Field(name)
	if !ok {
		return nil, &schema.FieldError{Type: o.typ.Name(), Name: name}
	}
	if f.Kind() == schema.KindLink {
		if v, err := o.inst.Get(name); err != nil {
			return nil, err
		} else if v != nil {
			return v, nil
		}
		return o.linkTo(f)
	}
	if !o.delivered {
		if err := o.Deliver(ctx); err != nil {
			return nil, err
		}
	}
	return o.inst.Get(name)
}

// Set assigns a field value without triggering delivery. Values assigned
// before delivery are discarded when the fetched payload is installed.
func (o *Object) Set(name string, value any) error {
	return o.inst.Set(name, value)
}

// Unset resets a field to its default without triggering delivery.
func (o *Object) Unset(name string) error {
	return o.inst.Delete(name)
}

// ToMap delivers the object if necessary and encodes it back to a wire
// mapping.
func (o *Object) ToMap(ctx context.Context) (map[string]any, error) {
	if !o.delivered {
		if err := o.Deliver(ctx); err != nil {
			return nil, err
		}
	}
	return o.inst.ToMap()
}

// linkTo derives the undelivered object a Link field names, joining the
// field's path segment onto the owner's location.
func (o *Object) linkTo(f *schema.Field) (*Object, error) {
	if o.location == "" {
		return nil, &DeliveryError{Reason: "object has no URL from which to derive link " + f.Name()}
	}
	target, err := f.Target()
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(o.location)
	if err != nil {
		return nil, &DeliveryError{Location: o.location, Reason: "unparseable location: " + err.Error()}
	}
	derived := base.ResolveReference(&url.URL{Path: f.LinkPath()})
	return Get(target, derived.String(), o.carriedOptions(false)...), nil
}

// carriedOptions propagates overrides to derived objects. The decode
// override only carries to derivations of the same type; a linked resource
// decodes by its own rules.
func (o *Object) carriedOptions(sameType bool) []Option {
	var opts []Option
	if o.transport != nil {
		opts = append(opts, WithTransport(o.transport))
	}
	if o.codecs != nil {
		opts = append(opts, WithCodecs(o.codecs))
	}
	if sameType && o.decode != nil {
		opts = append(opts, WithDecodeFunc(o.decode))
	}
	return opts
}

// GetString reads a field and asserts it to a string.
func (o *Object) GetString(ctx context.Context, name string) (string, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &schema.TypeError{Field: name, Expected: "string", Value: v}
	}
	return s, nil
}

// GetInt reads a field and coerces it to an int64. JSON numbers arrive as
// int64 or float64 depending on their textual form.
func (o *Object) GetInt(ctx context.Context, name string) (int64, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, &schema.TypeError{Field: name, Expected: "integer", Value: v}
	}
}

// GetBool reads a field and asserts it to a bool.
func (o *Object) GetBool(ctx context.Context, name string) (bool, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &schema.TypeError{Field: name, Expected: "boolean", Value: v}
	}
	return b, nil
}

// GetTime reads a Datetime field.
func (o *Object) GetTime(ctx context.Context, name string) (time.Time, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	ts, ok := v.(time.Time)
	if !ok {
		return time.Time{}, &schema.TypeError{Field: name, Expected: "time value", Value: v}
	}
	return ts, nil
}

// GetObject reads a reference field's decoded instance.
func (o *Object) GetObject(ctx context.Context, name string) (*schema.Instance, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return nil, err
	}
	inst, ok := v.(*schema.Instance)
	if !ok {
		return nil, &schema.TypeError{Field: name, Expected: "modeled instance", Value: v}
	}
	return inst, nil
}

// GetList reads a collection field's decoded sequence.
func (o *Object) GetList(ctx context.Context, name string) ([]any, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return nil, err
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, &schema.TypeError{Field: name, Expected: "sequence", Value: v}
	}
	return seq, nil
}

// GetLink reads a Link field as an undelivered object.
func (o *Object) GetLink(ctx context.Context, name string) (*Object, error) {
	v, err := o.Get(ctx, name)
	if err != nil || v == nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &schema.TypeError{Field: name, Expected: "linked object", Value: v}
	}
	return obj, nil
}
