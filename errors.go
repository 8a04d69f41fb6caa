package serializable

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrWrongType indicates a serializer was handed a record tagged for another type.
	ErrWrongType = errors.New("wrong type")

	// ErrMissingSerializer indicates no serializer is registered for a tag or type.
	ErrMissingSerializer = errors.New("missing serializer")

	// ErrPropertyType indicates a value cannot be assigned to a property.
	ErrPropertyType = errors.New("invalid property value")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates sealing a payload failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates opening a sealed payload failed.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// TypeError is returned when a record's tag does not match the serializer
// asked to reconstruct it, or when a reconstructed value is not of the
// requested Go type.
type TypeError struct {
	Err  error  // Underlying sentinel error (ErrWrongType)
	Want string // Tag or type the caller expected
	Got  string // Tag or type that was found
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %q, got %q", e.Err.Error(), e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// DispatchError is returned by the registry when a value cannot be routed
// to a serializer.
type DispatchError struct {
	Err error  // Underlying sentinel error (ErrMissingSerializer)
	Tag string // Tag of the value, if it carried one
}

func (e *DispatchError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s for tag %q", e.Err.Error(), e.Tag)
	}
	return e.Err.Error()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// PropertyError represents a failure to read or write a single property.
type PropertyError struct {
	Err      error  // Underlying sentinel error
	Tag      string // Tag of the type owning the property
	Property string // Property name
	Cause    error  // Original error, if any
}

func (e *PropertyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: property %s of %q: %v", e.Err.Error(), e.Property, e.Tag, e.Cause)
	}
	return fmt.Sprintf("%s: property %s of %q", e.Err.Error(), e.Property, e.Tag)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal or seal/open error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal, ErrEncrypt, ErrDecrypt)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newTypeError creates a TypeError for tag or Go type mismatches.
func newTypeError(want, got string) error {
	return &TypeError{
		Err:  ErrWrongType,
		Want: want,
		Got:  got,
	}
}

// newDispatchError creates a DispatchError for unresolvable values.
func newDispatchError(tag string) error {
	return &DispatchError{
		Err: ErrMissingSerializer,
		Tag: tag,
	}
}

// newPropertyError creates a PropertyError for assignment failures.
func newPropertyError(sentinel error, tag, property string, cause error) error {
	return &PropertyError{
		Err:      sentinel,
		Tag:      tag,
		Property: property,
		Cause:    cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
