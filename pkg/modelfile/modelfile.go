// Package modelfile declares modeled types from YAML definitions, for
// clients that prefer shipping their type tables as data instead of code.
// Field declarations are ordered sequences, so declaration order survives
// the trip through YAML the way it does in Go declarations.
package modelfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

// File is the top-level YAML document shape.
type File struct {
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one modeled type.
type TypeDef struct {
	Name         string     `yaml:"name"`
	Extends      string     `yaml:"extends,omitempty"`
	ContentTypes []string   `yaml:"content_types,omitempty"`
	Entries      string     `yaml:"entries,omitempty"`
	Fields       []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. Kind is one of basic, datetime, object, list,
// constant, link, or html; object and link name their target type, list
// nests its element definition.
type FieldDef struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	APIName string    `yaml:"api_name,omitempty"`
	Target  string    `yaml:"target,omitempty"`
	Elem    *FieldDef `yaml:"elem,omitempty"`
	Default any       `yaml:"default,omitempty"`
	Value   any       `yaml:"value,omitempty"`
	Path    string    `yaml:"path,omitempty"`
}

type config struct {
	registry *schema.Registry
}

// Option configures loading.
type Option func(*config)

// WithRegistry declares the loaded types into a registry other than the
// process-wide default.
func WithRegistry(r *schema.Registry) Option {
	return func(c *config) { c.registry = r }
}

// Load reads YAML type declarations and declares each type in document
// order. Extends must name a type declared earlier in the file or already
// registered.
func Load(r io.Reader, opts ...Option) ([]*schema.Type, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reg := cfg.registry
	if reg == nil {
		reg = schema.Default()
	}

	var file File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("modelfile: decode: %w", err)
	}
	if len(file.Types) == 0 {
		return nil, errors.New("modelfile: no types declared")
	}

	types := make([]*schema.Type, 0, len(file.Types))
	for _, def := range file.Types {
		t, err := declare(def, reg)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// LoadFile loads declarations from a file on disk.
func LoadFile(path string, opts ...Option) ([]*schema.Type, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: open: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

func declare(def TypeDef, reg *schema.Registry) (*schema.Type, error) {
	if def.Name == "" {
		return nil, errors.New("modelfile: type declaration is missing a name")
	}

	opts := []schema.TypeOption{schema.WithRegistry(reg)}
	if def.Extends != "" {
		parent, ok := reg.Lookup(def.Extends)
		if !ok {
			return nil, fmt.Errorf("modelfile: type %q extends unknown type %q", def.Name, def.Extends)
		}
		opts = append(opts, schema.Extends(parent))
	}
	if len(def.ContentTypes) > 0 {
		opts = append(opts, schema.WithContentTypes(def.ContentTypes...))
	}
	if def.Entries != "" {
		opts = append(opts, schema.WithEntries(def.Entries))
	}

	for _, fd := range def.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("modelfile: type %q has a field with no name", def.Name)
		}
		f, err := buildField(def.Name, fd)
		if err != nil {
			return nil, err
		}
		opts = append(opts, schema.WithField(fd.Name, f))
	}

	return schema.NewType(def.Name, opts...), nil
}

func buildField(typeName string, fd FieldDef) (*schema.Field, error) {
	var opts []schema.FieldOption
	if fd.APIName != "" {
		opts = append(opts, schema.WithAPIName(fd.APIName))
	}
	if fd.Default != nil {
		opts = append(opts, schema.WithDefault(fd.Default))
	}
	if fd.Path != "" {
		opts = append(opts, schema.WithPath(fd.Path))
	}

	switch fd.Kind {
	case "", "basic":
		return schema.Basic(opts...), nil
	case "datetime":
		return schema.Datetime(opts...), nil
	case "html":
		return schema.HTML(opts...), nil
	case "object":
		if fd.Target == "" {
			return nil, fmt.Errorf("modelfile: type %q field %q: object fields need a target", typeName, fd.Name)
		}
		return schema.Object(fd.Target, opts...), nil
	case "link":
		if fd.Target == "" {
			return nil, fmt.Errorf("modelfile: type %q field %q: link fields need a target", typeName, fd.Name)
		}
		return schema.Link(fd.Target, opts...), nil
	case "list":
		if fd.Elem == nil {
			return nil, fmt.Errorf("modelfile: type %q field %q: list fields need an elem", typeName, fd.Name)
		}
		elem, err := buildField(typeName, *fd.Elem)
		if err != nil {
			return nil, err
		}
		return schema.List(elem, opts...), nil
	case "constant":
		if fd.Value == nil {
			return nil, fmt.Errorf("modelfile: type %q field %q: constant fields need a value", typeName, fd.Name)
		}
		return schema.Constant(fd.Value, opts...), nil
	default:
		return nil, fmt.Errorf("modelfile: type %q field %q: unknown kind %q", typeName, fd.Name, fd.Kind)
	}
}
