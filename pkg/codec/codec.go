// Package codec decodes HTTP response bodies into the raw mappings the field
// model consumes. Codecs are selected by response content type; media type
// parameters (charset and friends) are ignored for matching.
package codec

import (
	"fmt"
	"strings"
)

// Codec turns a response body into a raw mapping.
type Codec interface {
	// ContentTypes lists the media types the codec handles.
	ContentTypes() []string
	// Decode parses a response body into a raw mapping.
	Decode(body []byte) (map[string]any, error)
}

// ContentTypeError reports a response content type no codec or modeled type
// accepts.
type ContentTypeError struct {
	ContentType string
	Accepted    []string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("codec: unsupported content type %q (accepted: %s)",
		e.ContentType, strings.Join(e.Accepted, ", "))
}

// Registry resolves content types to codecs.
type Registry struct {
	codecs []Codec
	byType map[string]Codec
}

// NewRegistry builds a registry over the given codecs.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{byType: make(map[string]Codec)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Register adds a codec, overriding earlier codecs for any shared media type.
func (r *Registry) Register(c Codec) {
	r.codecs = append(r.codecs, c)
	for _, ct := range c.ContentTypes() {
		r.byType[normalize(ct)] = c
	}
}

// For resolves the codec for a response content type.
func (r *Registry) For(contentType string) (Codec, bool) {
	c, ok := r.byType[normalize(contentType)]
	return c, ok
}

// Accepted returns every media type the registry can decode.
func (r *Registry) Accepted() []string {
	out := make([]string, 0, len(r.byType))
	for ct := range r.byType {
		out = append(out, ct)
	}
	return out
}

// Match reports whether a response content type is among the accepted media
// types, ignoring parameters and case.
func Match(contentType string, accepted []string) bool {
	ct := normalize(contentType)
	for _, a := range accepted {
		if ct == normalize(a) {
			return true
		}
	}
	return false
}

// normalize strips media type parameters and case so "Application/JSON;
// charset=utf-8" matches "application/json".
func normalize(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

var defaultRegistry = NewRegistry(JSON())

// Default returns the process-wide registry, preloaded with the JSON codec.
func Default() *Registry { return defaultRegistry }
