package exec

import (
	"errors"
	"testing"

	"github.com/luigitni/relcore/storage"
)

func TestSchemaIndexOf(t *testing.T) {
	s := NewSchema(
		ColumnInfo{Qualifier: "T", Name: "a", Type: storage.INT},
		ColumnInfo{Qualifier: "U", Name: "a", Type: storage.INT},
	)

	if _, err := s.IndexOf("", "a"); !errors.Is(err, ErrAmbiguousColumn) {
		t.Fatalf("expected ErrAmbiguousColumn, got %v", err)
	}

	idx, err := s.IndexOf("T", "a")
	if err != nil {
		t.Fatalf("IndexOf: %v", err)
	}
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}

	if _, err := s.IndexOf("", "z"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSchemaEqual(t *testing.T) {
	a := intSchema("a", "b")
	b := intSchema("a", "b")
	c := intSchema("a", "c")

	if !a.Equal(b) {
		t.Fatal("expected equal schemas to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing schemas to compare unequal")
	}
}

func TestSchemaBuilder(t *testing.T) {
	var b SchemaBuilder
	b.Append(ColumnInfo{Name: "a", Type: storage.INT})
	b.Append(ColumnInfo{Name: "b", Type: storage.TEXT})

	s := b.Build()
	if s.Len() != 2 {
		t.Fatalf("expected 2 columns, got %d", s.Len())
	}
}
