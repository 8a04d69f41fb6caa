package serializable

// Codec provides content-type aware marshaling of records.
//
// Implementations must encode a Record and decode into a *map[string]any
// holding only plain maps, slices and scalars, so that nested tags survive
// the round trip.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
