// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/wanadev/serializable"
)

// msgpackCodec implements serializable.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() serializable.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
// Decoding into a *map[string]any yields map[string]any at every level;
// maps with non-string keys have their keys formatted as strings.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*map[string]any)
	if !ok {
		return msgpack.Unmarshal(data, v)
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetMapDecoder(func(d *msgpack.Decoder) (any, error) {
		return d.DecodeUntypedMap()
	})
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if doc == nil {
		*m = nil
		return nil
	}
	out, ok := plain(doc).(map[string]any)
	if !ok {
		return fmt.Errorf("msgpack: cannot decode %T into map[string]any", doc)
	}
	*m = out
	return nil
}

func plain(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
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
