package schema

import (
	"errors"
	"reflect"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Kind tags the closed set of field variants.
type Kind string

const (
	// KindBasic passes wire values through untouched.
	KindBasic Kind = "basic"
	// KindDatetime coerces ISO-8601 timestamps (UTC, no fractional seconds).
	KindDatetime Kind = "datetime"
	// KindObject decodes a nested mapping into another modeled type.
	KindObject Kind = "object"
	// KindList applies an element field to each member of a sequence.
	KindList Kind = "list"
	// KindConstant always yields its declared value and rejects assignment.
	KindConstant Kind = "constant"
	// KindLink names a related resource reachable via a derived URL. Link
	// fields never appear in payloads; they are traversed, not decoded.
	KindLink Kind = "link"
	// KindHTML passes strings through a markup sanitizer on decode.
	KindHTML Kind = "html"
)

// DatetimeLayout is the exact wire format Datetime fields accept and emit.
// The trailing Z is literal; offsets and fractional seconds are rejected.
const DatetimeLayout = "2006-01-02T15:04:05Z"

// Field describes one named, typed attribute of a modeled type: the wire key
// it binds, how raw values decode into typed values and encode back, and an
// optional default resolved when no value is present.
type Field struct {
	name     string
	apiName  string
	kind     Kind
	elem     *Field
	refName  string
	ref      *Type
	registry *Registry
	constant any
	def      any
	defFunc  func(*Instance) any
	linkPath string
	policy   *bluemonday.Policy
}

// FieldOption configures a field declaration.
type FieldOption func(*Field)

// WithAPIName binds the field to a wire key different from its attribute
// name, e.g. a "foo-bar-baz" payload key for a fooBarBaz attribute.
func WithAPIName(name string) FieldOption {
	return func(f *Field) { f.apiName = name }
}

// WithDefault sets a static default returned whenever no value is present.
// The value is shared by reference across instances, never copied.
func WithDefault(v any) FieldOption {
	return func(f *Field) { f.def = v }
}

// WithDefaultFunc sets a default resolver invoked with the owning instance on
// every access for which no real value is set.
func WithDefaultFunc(fn func(*Instance) any) FieldOption {
	return func(f *Field) { f.defFunc = fn }
}

// WithPath overrides the URL segment a Link field appends to its owner's
// location. The attribute name is used when no path is given.
func WithPath(p string) FieldOption {
	return func(f *Field) { f.linkPath = p }
}

// WithPolicy overrides the sanitizer policy of an HTML field. The default is
// bluemonday's UGC policy.
func WithPolicy(p *bluemonday.Policy) FieldOption {
	return func(f *Field) { f.policy = p }
}

// Basic declares an identity-coded field: the decoded value is the wire value.
func Basic(opts ...FieldOption) *Field {
	return newField(KindBasic, opts)
}

// Datetime declares a timestamp field using DatetimeLayout.
func Datetime(opts ...FieldOption) *Field {
	return newField(KindDatetime, opts)
}

// Object declares a reference field whose nested mapping decodes into the
// named modeled type. The name is resolved against the registry the first
// time a value is decoded, so self references and types declared later both
// work as long as the target is registered by then.
func Object(target string, opts ...FieldOption) *Field {
	f := newField(KindObject, opts)
	f.refName = target
	return f
}

// ObjectOf declares a reference field bound directly to a concrete type.
func ObjectOf(target *Type, opts ...FieldOption) *Field {
	f := newField(KindObject, opts)
	f.ref = target
	return f
}

// List declares a collection field applying elem to every member of a
// sequence value.
func List(elem *Field, opts ...FieldOption) *Field {
	f := newField(KindList, opts)
	f.elem = elem
	return f
}

// Constant declares a fixed-value field. Decoding ignores the wire value,
// encoding always emits the constant, and assignment to any other value
// fails.
func Constant(value any, opts ...FieldOption) *Field {
	f := newField(KindConstant, opts)
	f.constant = value
	return f
}

// Link declares a relation to the named type reachable at a URL derived from
// the owner's location. Reading a Link constructs an undelivered object; it
// never decodes payload data.
func Link(target string, opts ...FieldOption) *Field {
	f := newField(KindLink, opts)
	f.refName = target
	return f
}

// LinkOf declares a relation bound directly to a concrete type.
func LinkOf(target *Type, opts ...FieldOption) *Field {
	f := newField(KindLink, opts)
	f.ref = target
	return f
}

// HTML declares a string field sanitized on decode.
func HTML(opts ...FieldOption) *Field {
	return newField(KindHTML, opts)
}

func newField(kind Kind, opts []FieldOption) *Field {
	f := &Field{kind: kind}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// clone copies a declaration so the same *Field literal can be installed on
// more than one type without sharing per-type state.
func (f *Field) clone() *Field {
	c := *f
	return &c
}

// Name returns the attribute name the field was installed under.
func (f *Field) Name() string { return f.name }

// Kind returns the field's variant tag.
func (f *Field) Kind() Kind { return f.kind }

// APIName returns the wire key the field binds: the declared alias when one
// was given, the attribute name otherwise.
func (f *Field) APIName() string {
	if f.apiName != "" {
		return f.apiName
	}
	return f.name
}

// Elem returns the element field of a List, nil for other kinds.
func (f *Field) Elem() *Field { return f.elem }

// LinkPath returns the URL segment a Link field appends to its owner's
// location.
func (f *Field) LinkPath() string {
	if f.linkPath != "" {
		return f.linkPath
	}
	return f.name
}

// Target resolves the referenced type of an Object or Link field, consulting
// the registry on first use and caching the handle.
func (f *Field) Target() (*Type, error) {
	if f.ref != nil {
		return f.ref, nil
	}
	reg := f.registry
	if reg == nil {
		reg = Default()
	}
	t, ok := reg.Lookup(f.refName)
	if !ok {
		return nil, &ReferenceError{Field: f.name, Target: f.refName}
	}
	f.ref = t
	return t, nil
}

// Decode coerces a raw wire value into the field's typed form. A nil raw
// value is legal and decodes to nil, meaning "not present".
func (f *Field) Decode(raw any) (any, error) {
	if raw == nil && f.kind != KindConstant {
		return nil, nil
	}
	switch f.kind {
	case KindBasic:
		return raw, nil
	case KindHTML:
		s, ok := raw.(string)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "string", Value: raw}
		}
		return f.sanitizer().Sanitize(s), nil
	case KindDatetime:
		s, ok := raw.(string)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "timestamp string", Value: raw}
		}
		ts, err := time.Parse(DatetimeLayout, s)
		if err != nil {
			return nil, &TypeError{Field: f.name, Expected: "timestamp in " + DatetimeLayout + " form", Value: raw}
		}
		return ts.UTC(), nil
	case KindObject:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "mapping", Value: raw}
		}
		target, err := f.Target()
		if err != nil {
			return nil, err
		}
		return target.FromMap(m), nil
	case KindList:
		seq, ok := raw.([]any)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "sequence", Value: raw}
		}
		out := make([]any, 0, len(seq))
		for _, el := range seq {
			v, err := f.elem.decodeElement(f.name, el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindConstant:
		return f.constant, nil
	case KindLink:
		return nil, &TypeError{Field: f.name, Expected: "no payload data for a link field", Value: raw}
	}
	return raw, nil
}

// decodeElement decodes one sequence member, attributing shape errors to the
// owning list field.
func (f *Field) decodeElement(owner string, raw any) (any, error) {
	v, err := f.Decode(raw)
	if err != nil {
		var te *TypeError
		if errors.As(err, &te) && te.Field == "" {
			te.Field = owner
		}
		return nil, err
	}
	return v, nil
}

// Encode coerces a typed value back to its wire form.
func (f *Field) Encode(value any) (any, error) {
	if value == nil && f.kind != KindConstant {
		return nil, nil
	}
	switch f.kind {
	case KindBasic, KindHTML:
		return value, nil
	case KindDatetime:
		ts, ok := value.(time.Time)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "time value", Value: value}
		}
		return ts.UTC().Format(DatetimeLayout), nil
	case KindObject:
		inst, ok := value.(*Instance)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "modeled instance", Value: value}
		}
		return inst.ToMap()
	case KindList:
		seq, ok := value.([]any)
		if !ok {
			return nil, &TypeError{Field: f.name, Expected: "sequence", Value: value}
		}
		out := make([]any, 0, len(seq))
		for _, el := range seq {
			v, err := f.elem.Encode(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindConstant:
		return f.constant, nil
	}
	return value, nil
}

// validateAssign rejects assignments a field forbids. Constants accept only
// their declared value; setting it again is a no-op upstream.
func (f *Field) validateAssign(value any) error {
	if f.kind == KindConstant && !reflect.DeepEqual(value, f.constant) {
		return &ValueError{Field: f.name, Reason: "cannot assign over a constant value"}
	}
	return nil
}

// defaultFor resolves the field's default against an instance. Static
// defaults are returned verbatim; resolver functions run once per access.
func (f *Field) defaultFor(inst *Instance) any {
	if f.kind == KindConstant {
		return f.constant
	}
	if f.defFunc != nil {
		return f.defFunc(inst)
	}
	return f.def
}

func (f *Field) sanitizer() *bluemonday.Policy {
	if f.policy != nil {
		return f.policy
	}
	return defaultPolicy
}

var defaultPolicy = bluemonday.UGCPolicy()
