// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/wanadev/serializable"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements serializable.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() serializable.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
// Decoding into a *map[string]any yields plain maps and slices at every
// level instead of bson.D and bson.A.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*map[string]any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
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
	case bson.M:
		return plainMap(x)
	case map[string]any:
		return plainMap(x)
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
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
