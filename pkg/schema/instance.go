package schema

// Instance is one modeled entity: the raw mapping it was decoded from,
// retained verbatim, plus a private store of typed values that were decoded
// or assigned. Field values decode lazily on first access; successful decodes
// are cached, failed ones are recomputed on every access.
type Instance struct {
	typ    *Type
	raw    map[string]any
	values map[string]any
}

// Type returns the instance's modeled type.
func (i *Instance) Type() *Type { return i.typ }

// Get returns the typed value of the named field, decoding it from the raw
// mapping on first access. Missing values resolve to the field's default, or
// nil when there is none. Undeclared names fail with a *FieldError.
func (i *Instance) Get(name string) (any, error) {
	f, ok := i.typ.Field(name)
	if !ok {
		return nil, &FieldError{Type: i.typ.Name(), Name: name}
	}
	if v, ok := i.values[name]; ok {
		return v, nil
	}
	if f.kind != KindLink {
		if rawv, ok := i.raw[f.APIName()]; ok && rawv != nil {
			v, err := f.Decode(rawv)
			if err != nil {
				return nil, err
			}
			i.values[name] = v
			return v, nil
		}
	}
	return f.defaultFor(i), nil
}

// Set assigns a typed value, shadowing any raw payload value for the field.
// The retained raw mapping is not rewritten; the new value only becomes wire
// data when the instance is re-encoded. Assigning over a Constant field fails
// with a *ValueError unless the value equals the constant, which is a no-op.
func (i *Instance) Set(name string, value any) error {
	f, ok := i.typ.Field(name)
	if !ok {
		return &FieldError{Type: i.typ.Name(), Name: name}
	}
	if err := f.validateAssign(value); err != nil {
		return err
	}
	if f.kind == KindConstant {
		return nil
	}
	i.values[name] = value
	return nil
}

// Delete resets the named field to its default, dropping both the assigned
// value and the field's wire data. Resolver defaults run again on the next
// access.
func (i *Instance) Delete(name string) error {
	f, ok := i.typ.Field(name)
	if !ok {
		return &FieldError{Type: i.typ.Name(), Name: name}
	}
	delete(i.values, name)
	delete(i.raw, f.APIName())
	return nil
}

// UpdateFromMap replaces the instance's backing payload, clearing every
// previously decoded or assigned value. The top level of the mapping is
// copied; nested values are aliased.
func (i *Instance) UpdateFromMap(raw map[string]any) {
	copied := make(map[string]any, len(raw))
	for k, v := range raw {
		copied[k] = v
	}
	i.raw = copied
	i.values = make(map[string]any)
}

// ToMap encodes the instance back to a wire mapping: every key of the
// retained raw mapping that no field claims passes through unchanged, and
// every field whose effective value is non-nil is encoded under its wire
// name, field values winning on conflict. Link fields never serialize. The
// returned mapping is deep-copied, so mutating it does not reach the
// instance.
func (i *Instance) ToMap() (map[string]any, error) {
	out := make(map[string]any, len(i.raw))
	for k, v := range i.raw {
		out[k] = v
	}
	for _, f := range i.typ.fields {
		if f.kind == KindLink {
			delete(out, f.APIName())
			continue
		}
		v, err := i.Get(f.name)
		if err != nil {
			return nil, err
		}
		if v == nil {
			delete(out, f.APIName())
			continue
		}
		enc, err := f.Encode(v)
		if err != nil {
			return nil, err
		}
		out[f.APIName()] = enc
	}
	return deepCopyMap(out), nil
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return deepCopyMap(tv)
	case []any:
		out := make([]any, len(tv))
		for n, el := range tv {
			out[n] = deepCopyValue(el)
		}
		return out
	default:
		return v
	}
}
