package exec

import (
	"errors"
	"fmt"
	"io"

	"github.com/luigitni/relcore/cursor"
	"github.com/luigitni/relcore/pagecache"
)

// TableScan is the leaf plan node: it wraps a tuple cursor over a page
// cache's pages and decodes each tuple via a RecordCodec.
type TableScan struct {
	source    string
	schema    *Schema
	stats     *Stats
	numTuples int

	cache pagecache.Cache
	codec RecordCodec
	cur   *cursor.Cursor

	cost Cost

	state   execState
	pos     cursor.Position
	mark    cursor.Position
	hasMark bool
}

// NewTableScan returns a TableScan over cache's pages, decoding tuples
// against schema via codec. numTuples is the expected row count, used for
// cost estimation; it is not verified against the actual page contents.
func NewTableScan(source string, schema *Schema, stats *Stats, numTuples int, cache pagecache.Cache, codec RecordCodec) *TableScan {
	return &TableScan{
		source:    source,
		schema:    schema,
		stats:     stats,
		numTuples: numTuples,
		cache:     cache,
		codec:     codec,
		cur:       cursor.New(cache),
	}
}

func (t *TableScan) Prepare() error {
	t.cost = Cost{
		NumTuples: float64(t.numTuples),
		IOCost:    float64(t.cache.PageCount()),
		TupleSize: float64(t.schema.ApproxWidth()),
	}
	return nil
}

func (t *TableScan) Initialize() error {
	t.state = stateFresh
	t.pos = cursor.Position{}
	return nil
}

func (t *TableScan) GetNextTuple() (Tuple, error) {
	if t.state == stateDone {
		return nil, io.EOF
	}

	var pos cursor.Position
	var err error
	if t.state == stateFresh {
		pos, err = t.cur.First()
	} else {
		pos, err = t.cur.NextAfter(t.pos)
	}

	if errors.Is(err, io.EOF) {
		t.state = stateDone
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	t.state = stateRunning
	t.pos = pos

	raw, err := t.cur.TupleAt(pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return t.codec.Decode(t.schema, raw)
}

func (t *TableScan) SupportsMarking() bool      { return true }
func (t *TableScan) RequiresLeftMarking() bool  { return false }
func (t *TableScan) RequiresRightMarking() bool { return false }

func (t *TableScan) MarkCurrentPosition() error {
	t.mark = t.pos
	t.hasMark = true
	return nil
}

func (t *TableScan) ResetToLastMark() error {
	if !t.hasMark {
		return fmt.Errorf("%w: no mark set", ErrInvalidState)
	}
	t.pos = t.mark
	t.state = stateRunning
	return nil
}

func (t *TableScan) CleanUp() error {
	t.state = stateDone
	return nil
}

func (t *TableScan) Duplicate() PlanNode {
	return NewTableScan(t.source, t.schema, t.stats, t.numTuples, t.cache, t.codec)
}

func (t *TableScan) Equal(other PlanNode) bool {
	o, ok := other.(*TableScan)
	if !ok {
		return false
	}
	return t.source == o.source && t.schema.Equal(o.schema)
}

func (t *TableScan) Schema() *Schema { return t.schema }
func (t *TableScan) Stats() *Stats   { return t.stats }
func (t *TableScan) Cost() Cost      { return t.cost }

func (t *TableScan) String() string {
	return fmt.Sprintf("TableScan[%s]", t.source)
}

var _ PlanNode = (*TableScan)(nil)
