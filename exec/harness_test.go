package exec

import (
	"testing"

	"github.com/luigitni/relcore/pagecache"
	"github.com/luigitni/relcore/pages"
	"github.com/luigitni/relcore/storage"
	"github.com/rs/zerolog"
)

// encodeIntRow packs a row of plain ints as fixed-width storage.Int values,
// matching FixedWidthCodec's expected layout for an all-INT schema.
func encodeIntRow(values ...int) []byte {
	var buf []byte
	for _, v := range values {
		buf = append(buf, storage.ValueFromInteger[storage.Int](storage.SizeOfInt, storage.Int(v))...)
	}
	return buf
}

// newTestTable allocates one page in a fresh MemCache and inserts rows, each
// already encoded to its raw byte form.
func newTestTable(t *testing.T, rows [][]byte) pagecache.Cache {
	t.Helper()

	cache := pagecache.NewMemCache(zerolog.Nop())

	_, page, err := cache.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}

	sp := pages.NewSlottedPage(page, storage.PageSize)
	sp.Initialize()

	for _, row := range rows {
		idx, err := sp.AllocateTuple(len(row))
		if err != nil {
			t.Fatalf("AllocateTuple: %v", err)
		}
		body, err := sp.TupleBytes(idx)
		if err != nil {
			t.Fatalf("TupleBytes: %v", err)
		}
		copy(body, row)
	}

	return cache
}

func intSchema(names ...string) *Schema {
	columns := make([]ColumnInfo, len(names))
	for i, n := range names {
		columns[i] = ColumnInfo{Name: n, Type: storage.INT}
	}
	return NewSchema(columns...)
}

func uniformStats(n int, numUnique int) *Stats {
	cols := make([]ColumnStats, n)
	for i := range cols {
		cols[i] = ColumnStats{NumUniqueValues: numUnique}
	}
	return &Stats{Columns: cols}
}
