package codec

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/oj"
)

type jsonCodec struct{}

// JSON returns the JSON codec. Parsing is intentionally lenient about the
// byte-level irregularities remote APIs produce; the payload must still be a
// JSON object, since the field model binds mappings.
func JSON() Codec { return jsonCodec{} }

func (jsonCodec) ContentTypes() []string {
	return []string{"application/json", "text/json"}
}

func (jsonCodec) Decode(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return nil, errors.New("codec: empty JSON payload")
	}
	val, err := oj.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("codec: parse JSON: %w", err)
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("codec: JSON payload is %T, not an object", val)
	}
	return m, nil
}
