// Package testing provides test utilities for serializable.
package testing

import (
	"testing"

	"github.com/wanadev/serializable"
)

// TestKey returns a valid 32-byte key for testing.
func TestKey(t testing.TB) []byte {
	t.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(t testing.TB) serializable.Encryptor {
	t.Helper()
	enc, err := serializable.AES(TestKey(t))
	if err != nil {
		t.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Point is a fixture type with two typed accessor pairs.
type Point struct {
	serializable.Object
	X, Y int
}

// PointType declares Point's properties "x" and "y".
var PointType = serializable.NewType("Point", nil,
	serializable.Accessor("x",
		func(p *Point) int { return p.X },
		func(p *Point, v int) { p.X = v }),
	serializable.Accessor("y",
		func(p *Point) int { return p.Y },
		func(p *Point, v int) { p.Y = v }),
)

// NewPoint returns an initialized Point.
func NewPoint() *Point {
	p := &Point{}
	p.Init(p, PointType)
	return p
}

// Shape is a fixture type holding nested registered values in a pointer,
// a slice and a data-store map, plus an excluded property.
type Shape struct {
	serializable.Object
	Label    string
	Origin   *Point
	Vertices []*Point
	Cache    string
}

// ShapeType declares Shape's properties.
var ShapeType = serializable.NewType("Shape", nil,
	serializable.Accessor("label",
		func(s *Shape) string { return s.Label },
		func(s *Shape, v string) { s.Label = v }),
	serializable.Accessor("origin",
		func(s *Shape) *Point { return s.Origin },
		func(s *Shape, v *Point) { s.Origin = v }),
	serializable.Accessor("vertices",
		func(s *Shape) []*Point { return s.Vertices },
		func(s *Shape, v []*Point) { s.Vertices = v }),
	serializable.Field("meta"),
	serializable.Exclude(serializable.Accessor("cache",
		func(s *Shape) string { return s.Cache },
		func(s *Shape, v string) { s.Cache = v })),
)

// NewShape returns an initialized Shape.
func NewShape() *Shape {
	s := &Shape{}
	s.Init(s, ShapeType)
	return s
}

// Register registers the fixture types with reg.
func Register(reg *serializable.Registry) {
	reg.Register(serializable.NewAutoSerializer("Point", NewPoint))
	reg.Register(serializable.NewAutoSerializer("Shape", NewShape))
}

// Triangle returns a Shape with three vertices, an origin and metadata.
func Triangle() *Shape {
	s := NewShape()
	s.Label = "triangle"
	s.Origin = point(0, 0)
	s.Vertices = []*Point{point(0, 0), point(4, 0), point(0, 3)}
	s.Data()["meta"] = map[string]any{"color": "red", "tags": []any{"a", "b"}}
	s.Cache = "derived"
	return s
}

func point(x, y int) *Point {
	p := NewPoint()
	p.X, p.Y = x, y
	return p
}
