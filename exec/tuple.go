package exec

import "github.com/luigitni/relcore/storage"

// Tuple is a decoded row: a fixed-width sequence of tagged values, indexed
// by schema position.
type Tuple interface {
	Value(i int) storage.Value
	Len() int
}

// LiteralTuple is an in-memory Tuple built by the projection operator's
// general path.
type LiteralTuple []storage.Value

func (t LiteralTuple) Value(i int) storage.Value {
	return t[i]
}

func (t LiteralTuple) Len() int {
	return len(t)
}

// RecordCodec decodes a tuple's raw byte range, as produced by a tuple
// cursor, into a Tuple conforming to schema. It is a capability external to
// the execution core: any concrete encoding can be plugged in.
type RecordCodec interface {
	Decode(schema *Schema, raw []byte) (Tuple, error)
}

// FixedWidthCodec decodes tuples whose columns are laid out sequentially,
// fixed-width columns at their type's natural size, varlen columns self-
// describing their length via the storage package's Varlen encoding.
type FixedWidthCodec struct{}

func (FixedWidthCodec) Decode(schema *Schema, raw []byte) (Tuple, error) {
	columns := schema.Columns()
	values := make(LiteralTuple, len(columns))

	var offset storage.Offset
	for i, col := range columns {
		if col.Type.Size() == storage.SizeOfVarlen {
			v := storage.UnsafeBytesToVarlen(raw[offset:])
			size := storage.Offset(v.Size())
			values[i] = storage.Value(raw[offset : offset+size])
			offset += size
			continue
		}

		size := storage.Offset(col.Type.Size())
		values[i] = storage.Value(raw[offset : offset+size])
		offset += size
	}

	return values, nil
}

var _ RecordCodec = FixedWidthCodec{}
