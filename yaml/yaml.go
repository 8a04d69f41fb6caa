// Package yaml provides a YAML codec implementation.
package yaml

import (
	"fmt"

	"github.com/wanadev/serializable"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements serializable.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() serializable.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
// Decoding into a *map[string]any yields map[string]any at every level;
// mappings with non-string keys have their keys formatted as strings.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*map[string]any)
	if !ok {
		return yaml.Unmarshal(data, v)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		*m = nil
		return nil
	}
	*m = plainMap(doc)
	return nil
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return plainMap(x)
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	}
	return v
}
