// Package remoteobjects represents remote HTTP resources as typed objects.
// Modeled types declare named fields mapping payload keys to typed
// attributes; objects fetched by URL are promises, delivered transparently
// on first use of their data.
//
// The root package re-exports the common surface; the subpackages carry the
// pieces: pkg/schema for the field model, pkg/remote for promises and
// filtering, pkg/codec and pkg/transport for the collaborator boundaries,
// pkg/openapi and pkg/modelfile for declaring types from documents.
package remoteobjects

import (
	"github.com/goliatone/go-remoteobjects/pkg/remote"
	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

// Re-exported model surface.
type (
	Type     = schema.Type
	Field    = schema.Field
	Instance = schema.Instance
	Registry = schema.Registry
	Object   = remote.Object
	Param    = remote.Param
)

// NewType declares a modeled type. See schema.NewType.
func NewType(name string, opts ...schema.TypeOption) *Type {
	return schema.NewType(name, opts...)
}

// Get promises the resource at url as an undelivered object.
func Get(t *Type, url string, opts ...remote.Option) *Object {
	return remote.Get(t, url, opts...)
}

// FromMap builds a delivered object from a raw mapping.
func FromMap(t *Type, raw map[string]any, opts ...remote.Option) *Object {
	return remote.FromMap(t, raw, opts...)
}

// P builds a filter parameter.
func P(key, value string) Param {
	return remote.P(key, value)
}
