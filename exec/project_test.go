package exec

import (
	"io"
	"testing"

	"github.com/luigitni/relcore/storage"
)

func newScanOverRows(t *testing.T, schema *Schema, rows [][]byte) *TableScan {
	t.Helper()

	cache := newTestTable(t, rows)
	stats := uniformStats(schema.Len(), len(rows))

	return NewTableScan("t", schema, stats, len(rows), cache, FixedWidthCodec{})
}

// TestProjectTrivialIdentity covers scenario 3: Project([*]) yields exactly
// the child's stream, tuple for tuple.
func TestProjectTrivialIdentity(t *testing.T) {
	schema := intSchema("a", "b")
	rows := [][]byte{encodeIntRow(1, 2), encodeIntRow(3, 4)}

	scan := newScanOverRows(t, schema, rows)
	project := NewProject(scan, ProjectionSpec{Wildcard("")})

	if err := project.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !project.IsTrivial() {
		t.Fatal("expected trivial projection")
	}
	if err := project.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := [][2]storage.Int{{1, 2}, {3, 4}}
	for i, w := range want {
		tuple, err := project.GetNextTuple()
		if err != nil {
			t.Fatalf("GetNextTuple %d: %v", i, err)
		}
		if got := storage.ValueAsInteger[storage.Int](tuple.Value(0)); got != w[0] {
			t.Fatalf("row %d col a: expected %d, got %d", i, w[0], got)
		}
		if got := storage.ValueAsInteger[storage.Int](tuple.Value(1)); got != w[1] {
			t.Fatalf("row %d col b: expected %d, got %d", i, w[1], got)
		}
	}

	if _, err := project.GetNextTuple(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	if _, err := project.GetNextTuple(); err != io.EOF {
		t.Fatalf("expected terminal io.EOF without touching the child, got %v", err)
	}
}

// TestProjectExpressionAndAlias covers scenario 4: Project([a, a+b AS s]).
func TestProjectExpressionAndAlias(t *testing.T) {
	schema := intSchema("a", "b")
	rows := [][]byte{encodeIntRow(1, 2), encodeIntRow(3, 4)}

	scan := newScanOverRows(t, schema, rows)
	spec := ProjectionSpec{
		Expression(ColumnRef{Name: "a"}, ""),
		Expression(BinaryOp{Op: OpAdd, Left: ColumnRef{Name: "a"}, Right: ColumnRef{Name: "b"}}, "s"),
	}
	project := NewProject(scan, spec)

	if err := project.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	outSchema := project.Schema()
	if outSchema.Len() != 2 {
		t.Fatalf("expected schema width 2, got %d", outSchema.Len())
	}
	if outSchema.Columns()[0].Name != "a" || outSchema.Columns()[0].Type != storage.INT {
		t.Fatalf("unexpected column 0: %+v", outSchema.Columns()[0])
	}
	if outSchema.Columns()[1].Name != "s" || outSchema.Columns()[1].Type != storage.INT {
		t.Fatalf("unexpected column 1: %+v", outSchema.Columns()[1])
	}

	if u := project.Stats().Columns[1].NumUniqueValues; u != 2 {
		t.Fatalf("expected numUniqueValues 2, got %d", u)
	}

	if err := project.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := [][2]storage.Int{{1, 3}, {3, 7}}
	for i, w := range want {
		tuple, err := project.GetNextTuple()
		if err != nil {
			t.Fatalf("GetNextTuple %d: %v", i, err)
		}
		if got := storage.ValueAsInteger[storage.Int](tuple.Value(0)); got != w[0] {
			t.Fatalf("row %d col a: expected %d, got %d", i, w[0], got)
		}
		if got := storage.ValueAsInteger[storage.Int](tuple.Value(1)); got != w[1] {
			t.Fatalf("row %d col s: expected %d, got %d", i, w[1], got)
		}
	}

	if _, err := project.GetNextTuple(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

// TestProjectQualifiedWildcard covers scenario 5: Project([T.*]) over a
// schema with columns from two qualifiers selects only T's columns.
func TestProjectQualifiedWildcard(t *testing.T) {
	schema := NewSchema(
		ColumnInfo{Qualifier: "T", Name: "a", Type: storage.INT},
		ColumnInfo{Qualifier: "T", Name: "b", Type: storage.INT},
		ColumnInfo{Qualifier: "U", Name: "c", Type: storage.INT},
	)
	rows := [][]byte{encodeIntRow(1, 2, 9)}

	scan := newScanOverRows(t, schema, rows)
	project := NewProject(scan, ProjectionSpec{Wildcard("T")})

	if err := project.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	outSchema := project.Schema()
	if outSchema.Len() != 2 {
		t.Fatalf("expected schema width 2, got %d", outSchema.Len())
	}
	for i, name := range []string{"a", "b"} {
		if outSchema.Columns()[i].Name != name || outSchema.Columns()[i].Qualifier != "T" {
			t.Fatalf("unexpected column %d: %+v", i, outSchema.Columns()[i])
		}
	}

	if err := project.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	tuple, err := project.GetNextTuple()
	if err != nil {
		t.Fatalf("GetNextTuple: %v", err)
	}
	if tuple.Len() != 2 {
		t.Fatalf("expected tuple width 2, got %d", tuple.Len())
	}
	if got := storage.ValueAsInteger[storage.Int](tuple.Value(0)); got != 1 {
		t.Fatalf("expected a=1, got %d", got)
	}
	if got := storage.ValueAsInteger[storage.Int](tuple.Value(1)); got != 2 {
		t.Fatalf("expected b=2, got %d", got)
	}
}

// TestProjectScalarSubqueryRejected covers scenario 6.
func TestProjectScalarSubqueryRejected(t *testing.T) {
	schema := intSchema("a")
	scan := newScanOverRows(t, schema, nil)

	project := NewProject(scan, ProjectionSpec{ScalarSubquery()})

	if err := project.Prepare(); err == nil {
		t.Fatal("expected an error")
	} else if err != ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestProjectStructuralEquality(t *testing.T) {
	schema := intSchema("a", "b")

	scan1 := newScanOverRows(t, schema, [][]byte{encodeIntRow(1, 2)})
	scan2 := newScanOverRows(t, schema, [][]byte{encodeIntRow(1, 2)})

	spec := ProjectionSpec{Wildcard("")}

	p1 := NewProject(scan1, spec)
	p2 := NewProject(scan2, spec)

	if err := p1.Prepare(); err != nil {
		t.Fatalf("Prepare p1: %v", err)
	}
	if err := p2.Prepare(); err != nil {
		t.Fatalf("Prepare p2: %v", err)
	}

	if !p1.Equal(p2) {
		t.Fatal("expected structurally equal projections to compare equal")
	}

	p3 := NewProject(scan1, ProjectionSpec{Wildcard("T")})
	if p1.Equal(p3) {
		t.Fatal("expected differing specs to compare unequal")
	}
}

func TestProjectRestartsOnInitialize(t *testing.T) {
	schema := intSchema("a")
	rows := [][]byte{encodeIntRow(1), encodeIntRow(2)}

	scan := newScanOverRows(t, schema, rows)
	project := NewProject(scan, ProjectionSpec{Wildcard("")})

	if err := project.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	for pass := 0; pass < 2; pass++ {
		if err := project.Initialize(); err != nil {
			t.Fatalf("Initialize: %v", err)
		}

		var got []storage.Int
		for {
			tuple, err := project.GetNextTuple()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("GetNextTuple: %v", err)
			}
			got = append(got, storage.ValueAsInteger[storage.Int](tuple.Value(0)))
		}

		if len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Fatalf("pass %d: expected [1 2], got %v", pass, got)
		}
	}
}
