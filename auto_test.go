package serializable_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wanadev/serializable"
)

// testClass mirrors a typical declaration: a plain field, a computed
// reader, a stored pair and an opted-out pair.
type testClass struct {
	serializable.Object
	Prop1 int
}

var testClassType = serializable.NewType("TestClass", nil,
	serializable.Reader("prop2", func(*testClass) int { return 2 }),
	serializable.Field("prop3"),
	serializable.Exclude(serializable.Field("prop4")),
)

func newTestClass() *testClass {
	c := &testClass{Prop1: 1}
	c.Init(c, testClassType)
	return c
}

func newTestClassWith(t *testing.T, data serializable.Record) *testClass {
	t.Helper()
	c := newTestClass()
	if err := c.Apply(data); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	return c
}

var constructorData = serializable.Record{
	"foo":   "bar",
	"prop1": 42,
	"prop2": 43,
	"prop3": 44,
	"prop4": 45,
}

func TestApply_ConstructorData(t *testing.T) {
	c := newTestClassWith(t, constructorData)

	if c.Prop1 != 1 {
		t.Errorf("Prop1 = %d, want 1", c.Prop1)
	}
	if got := c.Data()["prop3"]; got != 44 {
		t.Errorf("prop3 = %v, want 44", got)
	}
	if got := c.Data()["prop4"]; got != 45 {
		t.Errorf("prop4 = %v, want 45", got)
	}
	if _, ok := c.Data()["foo"]; ok {
		t.Error("unknown key foo should be ignored")
	}
}

func TestApply_Nil(t *testing.T) {
	c := newTestClass()
	if err := c.Apply(nil); err != nil {
		t.Errorf("Apply(nil) error: %v", err)
	}
	if len(c.Data()) != 0 {
		t.Errorf("Data() = %v, want empty", c.Data())
	}
}

func TestApply_ID(t *testing.T) {
	c := newTestClassWith(t, serializable.Record{"id": "given"})
	if c.ID() != "given" {
		t.Errorf("ID() = %q, want %q", c.ID(), "given")
	}

	c = newTestClassWith(t, serializable.Record{"id": 12})
	if c.ID() == "" || c.ID() == "12" {
		t.Errorf("ID() = %q, want a minted identity", c.ID())
	}
}

func TestAutoSerializer_Serialize(t *testing.T) {
	s := serializable.NewAutoSerializer("TestClass", newTestClass)
	c := newTestClassWith(t, constructorData)

	rec, err := s.Serialize(serializable.NewRegistry(), c)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	want := serializable.Record{
		"__name__": "TestClass",
		"id":       c.ID(),
		"prop3":    44,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoSerializer_Unserialize(t *testing.T) {
	s := serializable.NewAutoSerializer("TestClass", newTestClass)
	input := serializable.Record{
		"id":     "testid",
		"noprop": "bar",
		"prop1":  111,
		"prop2":  222,
		"prop3":  333,
		"prop4":  444,
	}

	_, err := s.Unserialize(nil, input)
	if !errors.Is(err, serializable.ErrWrongType) {
		t.Fatalf("Unserialize() without tag error = %v, want ErrWrongType", err)
	}

	input["__name__"] = "TestClass"
	c, err := s.Decode(nil, input)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if c.ID() != "testid" {
		t.Errorf("ID() = %q, want %q", c.ID(), "testid")
	}
	if c.Prop1 != 1 {
		t.Errorf("Prop1 = %d, want 1", c.Prop1)
	}
	if got := c.Data()["prop3"]; got != 333 {
		t.Errorf("prop3 = %v, want 333", got)
	}
	if _, ok := c.Data()["prop4"]; ok {
		t.Error("excluded prop4 should not be assigned")
	}
	if _, ok := c.Data()["noprop"]; ok {
		t.Error("unknown key noprop should not surface")
	}
}

func TestAutoSerializer_WrongTag(t *testing.T) {
	a := serializable.NewAutoSerializer("TestClass", newTestClass)

	_, err := a.Unserialize(nil, serializable.Record{"__name__": "Other", "prop3": 1})

	var typeErr *serializable.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Unserialize() error = %v, want *TypeError", err)
	}
	if typeErr.Want != "TestClass" || typeErr.Got != "Other" {
		t.Errorf("TypeError = %+v, want TestClass/Other", typeErr)
	}
}

func TestAutoSerializer_OptOutBothDirections(t *testing.T) {
	reg := serializable.NewRegistry()
	s := serializable.NewAutoSerializer("TestClass", newTestClass)
	reg.Register(s)

	c := newTestClass()
	c.Data()["prop4"] = "secret"

	rec, err := reg.Serialize(c)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if _, ok := rec["prop4"]; ok {
		t.Error("excluded prop4 should not be serialized")
	}

	rec["prop4"] = "injected"
	out, err := s.Decode(reg, rec)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if _, ok := out.Data()["prop4"]; ok {
		t.Error("excluded prop4 should not be unserialized")
	}
}

func TestAutoSerializer_UndefinedOmitted(t *testing.T) {
	s := serializable.NewAutoSerializer("TestClass", newTestClass)

	rec, err := s.Serialize(nil, newTestClass())
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if _, ok := rec["prop3"]; ok {
		t.Error("unset prop3 should be omitted")
	}
	if len(rec) != 2 {
		t.Errorf("Serialize() = %v, want only reserved keys", rec)
	}
}

func TestAutoSerializer_Matches(t *testing.T) {
	s := serializable.NewAutoSerializer("TestClass", newTestClass)

	if !s.Matches(newTestClass()) {
		t.Error("Matches() should accept its own type")
	}
	if !s.Matches(newTestClass2()) {
		t.Error("Matches() should accept subtypes")
	}
	if s.Matches(newUnrelated()) {
		t.Error("Matches() should reject unrelated types")
	}
	var nilClass *testClass
	if s.Matches(nilClass) {
		t.Error("Matches() should reject nil instances")
	}
	if s.Type() != testClassType {
		t.Error("Type() should return the constructed type")
	}
}
