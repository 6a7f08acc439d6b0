package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-remoteobjects/internal/query"
	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

// Param is one query filter parameter. Params keep their caller order when
// appended to a location's query string.
type Param struct {
	Key   string
	Value string
}

// P is shorthand for building a Param.
func P(key, value string) Param {
	return Param{Key: key, Value: value}
}

// Filter derives a new undelivered object at the receiver's location with
// the given parameters merged into its query string: new values overwrite
// same-named keys in place, untouched keys keep their order, and new keys
// append. The receiver is never mutated and no delivery occurs, so filters
// compose freely before a single fetch.
func (o *Object) Filter(params ...Param) (*Object, error) {
	if o.location == "" {
		return nil, &DeliveryError{Reason: "cannot filter an object with no URL"}
	}
	u, err := url.Parse(o.location)
	if err != nil {
		return nil, fmt.Errorf("remote: parse location %q: %w", o.location, err)
	}

	updates := make([]query.Pair, len(params))
	for n, p := range params {
		updates[n] = query.Pair{Key: p.Key, Value: p.Value}
	}
	u.RawQuery = query.Encode(query.Merge(query.Parse(u.RawQuery), updates))

	return Get(o.typ, u.String(), o.carriedOptions(true)...), nil
}

// Slice translates a start/stop range into offset and limit filter
// parameters, returning a new undelivered object rather than elements.
func (o *Object) Slice(start, stop int) (*Object, error) {
	return o.Filter(
		P("offset", strconv.Itoa(start)),
		P("limit", strconv.Itoa(stop-start)),
	)
}

// Index reads one element of the object's entries sequence by ordinal,
// delivering the object first when necessary. Types that declared no entries
// field, and entries values that are not sequences, fail with a
// *schema.TypeError.
func (o *Object) Index(ctx context.Context, i int) (any, error) {
	entries := o.typ.EntriesField()
	if entries == "" {
		return nil, &schema.TypeError{
			Field:    o.typ.Name(),
			Expected: "an entries field; objects without one index only by Slice",
			Value:    nil,
		}
	}
	seq, err := o.GetList(ctx, entries)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(seq) {
		return nil, fmt.Errorf("remote: index %d out of range (%d entries)", i, len(seq))
	}
	return seq[i], nil
}
