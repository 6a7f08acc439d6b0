package schema

// Type is a modeled type: a name plus an ordered, flattened field table
// computed once at declaration time by walking the ancestry chain. A field a
// derived type redeclares replaces the ancestor's field in place; otherwise
// declaration order is preserved, ancestors first.
type Type struct {
	name         string
	parent       *Type
	fields       []*Field
	index        map[string]int
	contentTypes []string
	entries      string
	registry     *Registry
}

type typeConfig struct {
	parent       *Type
	fields       []declaredField
	contentTypes []string
	entries      string
	registry     *Registry
}

type declaredField struct {
	name  string
	field *Field
}

// TypeOption configures a type declaration.
type TypeOption func(*typeConfig)

// Extends inherits the parent's field table. More than one Extends composes
// left to right, later parents overriding same-named fields.
func Extends(parent *Type) TypeOption {
	return func(c *typeConfig) { c.parent = parent }
}

// WithField declares a named field. Declaration order is the encode/iteration
// order; redeclaring an inherited name replaces the ancestor's field without
// moving it.
func WithField(name string, f *Field) TypeOption {
	return func(c *typeConfig) { c.fields = append(c.fields, declaredField{name: name, field: f}) }
}

// WithContentTypes declares the response content types instances of this type
// accept when fetched over HTTP. The default is application/json.
func WithContentTypes(cts ...string) TypeOption {
	return func(c *typeConfig) { c.contentTypes = append([]string(nil), cts...) }
}

// WithEntries marks the field holding the type's element sequence, enabling
// ordinal indexing on delivered list-like objects.
func WithEntries(field string) TypeOption {
	return func(c *typeConfig) { c.entries = field }
}

// WithRegistry registers the type into a registry other than the process-wide
// default.
func WithRegistry(r *Registry) TypeOption {
	return func(c *typeConfig) { c.registry = r }
}

// NewType declares a modeled type, computes its flattened field table, and
// registers it under its name so string references can resolve to it.
func NewType(name string, opts ...TypeOption) *Type {
	cfg := typeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := cfg.registry
	if reg == nil {
		reg = Default()
	}

	t := &Type{
		name:         name,
		parent:       cfg.parent,
		index:        make(map[string]int),
		contentTypes: cfg.contentTypes,
		entries:      cfg.entries,
		registry:     reg,
	}
	if len(t.contentTypes) == 0 {
		t.contentTypes = []string{"application/json"}
	}

	if cfg.parent != nil {
		for _, pf := range cfg.parent.fields {
			t.index[pf.name] = len(t.fields)
			t.fields = append(t.fields, t.install(pf.name, pf))
		}
	}
	for _, d := range cfg.fields {
		installed := t.install(d.name, d.field)
		if at, ok := t.index[d.name]; ok {
			t.fields[at] = installed
			continue
		}
		t.index[d.name] = len(t.fields)
		t.fields = append(t.fields, installed)
	}

	reg.Register(t)
	return t
}

// install clones a declaration into this type, stamping the attribute name
// and the registry used for reference resolution, recursively for list
// element fields.
func (t *Type) install(name string, f *Field) *Field {
	c := f.clone()
	c.name = name
	c.registry = t.registry
	if c.elem != nil {
		elem := c.elem.clone()
		elem.registry = t.registry
		c.elem = elem
	}
	return c
}

// Name returns the registered type name.
func (t *Type) Name() string { return t.name }

// Fields returns the flattened field table in declaration order.
func (t *Type) Fields() []*Field {
	return append([]*Field(nil), t.fields...)
}

// Field looks a field up by attribute name.
func (t *Type) Field(name string) (*Field, bool) {
	at, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.fields[at], true
}

// ContentTypes returns the acceptable response content types.
func (t *Type) ContentTypes() []string {
	return append([]string(nil), t.contentTypes...)
}

// EntriesField returns the name of the element-sequence field, empty when the
// type did not declare one.
func (t *Type) EntriesField() string { return t.entries }

// New builds an empty instance with no backing payload.
func (t *Type) New() *Instance {
	return &Instance{typ: t, raw: map[string]any{}, values: map[string]any{}}
}

// FromMap builds an instance backed by the given raw mapping. The top level
// of the mapping is copied so later mutation of the caller's map does not
// reach the instance; nested values are aliased, not copied, so deep mutation
// through a retained reference remains observable in re-encoded output.
func (t *Type) FromMap(raw map[string]any) *Instance {
	inst := t.New()
	inst.UpdateFromMap(raw)
	return inst
}
