package exec

import (
	"fmt"

	"github.com/luigitni/relcore/storage"
)

// ColumnInfo describes one output column: its name, an optional table
// qualifier, and its type.
type ColumnInfo struct {
	Qualifier string
	Name      string
	Type      storage.FieldType
}

// QualifiedName returns "qualifier.name", or just "name" if unqualified.
func (c ColumnInfo) QualifiedName() string {
	if c.Qualifier == "" {
		return c.Name
	}
	return c.Qualifier + "." + c.Name
}

// Schema is an ordered sequence of column descriptors, resolvable both by
// position and by (qualifier, name).
type Schema struct {
	columns []ColumnInfo
}

// NewSchema builds a Schema from an ordered column list.
func NewSchema(columns ...ColumnInfo) *Schema {
	return &Schema{columns: columns}
}

func (s *Schema) Columns() []ColumnInfo {
	return s.columns
}

func (s *Schema) Len() int {
	return len(s.columns)
}

// IndexOf resolves (qualifier, name) to a column index. An empty qualifier
// matches any qualifier. Fails with ErrAmbiguousColumn if more than one
// column matches, or ErrUnknownColumn if none does.
func (s *Schema) IndexOf(qualifier, name string) (int, error) {
	found := -1
	for i, c := range s.columns {
		if c.Name != name {
			continue
		}
		if qualifier != "" && c.Qualifier != qualifier {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %s", ErrAmbiguousColumn, name)
		}
		found = i
	}

	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	return found, nil
}

// ColumnsWithQualifier returns, in schema order, the indices of columns
// whose qualifier matches. An empty qualifier matches every column.
func (s *Schema) ColumnsWithQualifier(qualifier string) []int {
	var idxs []int
	for i, c := range s.columns {
		if qualifier == "" || c.Qualifier == qualifier {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Equal reports structural equality: same columns, in the same order.
func (s *Schema) Equal(other *Schema) bool {
	if other == nil || len(s.columns) != len(other.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i] != other.columns[i] {
			return false
		}
	}
	return true
}

// ApproxWidth estimates the byte width of a tuple conforming to this
// schema. Varlen columns use a nominal average width since their true size
// is only known per tuple.
const approxVarlenWidth = 32

func (s *Schema) ApproxWidth() int {
	var sum int
	for _, c := range s.columns {
		if c.Type.Size() == storage.SizeOfVarlen {
			sum += approxVarlenWidth
		} else {
			sum += int(c.Type.Size())
		}
	}
	return sum
}

// SchemaBuilder accumulates columns for a schema under construction, e.g.
// during a plan node's Prepare.
type SchemaBuilder struct {
	columns []ColumnInfo
}

func (b *SchemaBuilder) Append(c ColumnInfo) {
	b.columns = append(b.columns, c)
}

func (b *SchemaBuilder) Build() *Schema {
	return &Schema{columns: b.columns}
}
