// Package openapi declares modeled types from the component schemas of an
// OpenAPI document, so a service's published schema can drive the binding
// layer without hand-written type declarations.
//
// Schema references ($ref) become named Object fields resolved through the
// type registry, which is what makes mutually referencing and
// declared-in-any-order schemas work: nothing is resolved until an instance
// decodes a reference.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

type config struct {
	registry *schema.Registry
}

// Option configures an import.
type Option func(*config)

// WithRegistry declares the imported types into a registry other than the
// process-wide default.
func WithRegistry(r *schema.Registry) Option {
	return func(c *config) { c.registry = r }
}

// ImportTypes parses an OpenAPI document and declares one modeled type per
// component schema. Properties map to fields by these rules: $ref becomes a
// named Object reference, arrays become List fields over their item mapping,
// date-time strings become Datetime fields, and everything else passes
// through as a Basic field. Schema defaults become field defaults. Property
// order inside a JSON/YAML mapping is not meaningful, so fields are declared
// in sorted property order to keep imports deterministic.
func ImportTypes(ctx context.Context, raw []byte, opts ...Option) ([]*schema.Type, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	types := make([]*schema.Type, 0, len(names))
	for _, name := range names {
		t, err := importType(name, doc.Components.Schemas[name], cfg.registry)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func importType(name string, ref *openapi3.SchemaRef, reg *schema.Registry) (*schema.Type, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %q has no value", name)
	}

	opts := []schema.TypeOption{}
	if reg != nil {
		opts = append(opts, schema.WithRegistry(reg))
	}

	props := ref.Value.Properties
	propNames := make([]string, 0, len(props))
	for prop := range props {
		propNames = append(propNames, prop)
	}
	sort.Strings(propNames)

	for _, prop := range propNames {
		f, err := importField(name, prop, props[prop])
		if err != nil {
			return nil, err
		}
		opts = append(opts, schema.WithField(prop, f))
	}

	return schema.NewType(name, opts...), nil
}

func importField(typeName, prop string, ref *openapi3.SchemaRef) (*schema.Field, error) {
	if ref == nil {
		return schema.Basic(), nil
	}
	if target := refTargetName(ref.Ref); target != "" {
		return schema.Object(target), nil
	}
	sch := ref.Value
	if sch == nil {
		return schema.Basic(), nil
	}

	var fieldOpts []schema.FieldOption
	if sch.Default != nil {
		fieldOpts = append(fieldOpts, schema.WithDefault(sch.Default))
	}

	switch {
	case typeIs(sch, "array"):
		elem, err := importElement(typeName, prop, sch.Items)
		if err != nil {
			return nil, err
		}
		return schema.List(elem, fieldOpts...), nil
	case typeIs(sch, "string") && sch.Format == "date-time":
		return schema.Datetime(fieldOpts...), nil
	default:
		return schema.Basic(fieldOpts...), nil
	}
}

func importElement(typeName, prop string, items *openapi3.SchemaRef) (*schema.Field, error) {
	if items == nil {
		return schema.Basic(), nil
	}
	if target := refTargetName(items.Ref); target != "" {
		return schema.Object(target), nil
	}
	if items.Value != nil && typeIs(items.Value, "array") {
		return nil, fmt.Errorf("openapi: schema %q property %q: nested arrays are not supported", typeName, prop)
	}
	if items.Value != nil && typeIs(items.Value, "string") && items.Value.Format == "date-time" {
		return schema.Datetime(), nil
	}
	return schema.Basic(), nil
}

func typeIs(sch *openapi3.Schema, name string) bool {
	return sch.Type != nil && sch.Type.Is(name)
}

// refTargetName extracts the schema name from a component reference like
// "#/components/schemas/Author".
func refTargetName(ref string) string {
	if ref == "" {
		return ""
	}
	at := strings.LastIndex(ref, "/")
	return ref[at+1:]
}
