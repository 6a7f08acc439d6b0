// Package query manipulates URL query strings while preserving parameter
// order, which url.Values cannot do. Filter composition promises that
// untouched keys keep their positions and new keys append in caller order.
package query

import (
	"net/url"
	"strings"
)

// Pair is one query parameter.
type Pair struct {
	Key   string
	Value string
}

// Parse splits a raw query string into ordered pairs, keeping blank values.
// Pairs that fail percent-decoding are dropped.
func Parse(raw string) []Pair {
	if raw == "" {
		return nil
	}
	var pairs []Pair
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs
}

// Merge overlays updates onto existing pairs: a matching key is overwritten
// in place (first occurrence kept, duplicates removed), a new key appends in
// update order.
func Merge(existing, updates []Pair) []Pair {
	out := append([]Pair(nil), existing...)
	for _, up := range updates {
		found := false
		filtered := out[:0]
		for _, p := range out {
			if p.Key != up.Key {
				filtered = append(filtered, p)
				continue
			}
			if !found {
				filtered = append(filtered, Pair{Key: up.Key, Value: up.Value})
				found = true
			}
		}
		out = filtered
		if !found {
			out = append(out, up)
		}
	}
	return out
}

// Encode serializes pairs back into a query string in order.
func Encode(pairs []Pair) string {
	var b strings.Builder
	for n, p := range pairs {
		if n > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
