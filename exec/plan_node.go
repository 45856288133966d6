package exec

// execState is the Fresh/Running/Done lifecycle shared by every plan node
// that pulls from a single child (or from a tuple cursor directly).
type execState int

const (
	stateFresh execState = iota
	stateRunning
	stateDone
)

// PlanNode is the capability contract every physical operator satisfies:
// preparation, pull, initialization, optional mark/reset, cleanup, cloning,
// and cost/schema/stats propagation. Table scan, selection, projection,
// join and grouping are all distinct concrete implementations composing by
// child references; this package details the projection operator.
type PlanNode interface {
	// Prepare computes schema, stats and cost, recursively preparing
	// children first. Must be called before any GetNextTuple. Idempotent
	// within a plan's lifetime.
	Prepare() error
	// Initialize resets internal state and recursively initializes
	// children. Safe to call more than once; each call restarts the
	// stream from the beginning.
	Initialize() error
	// GetNextTuple pulls one tuple, or io.EOF once the stream is
	// exhausted. Subsequent calls keep returning io.EOF until the next
	// Initialize.
	GetNextTuple() (Tuple, error)

	SupportsMarking() bool
	RequiresLeftMarking() bool
	RequiresRightMarking() bool
	MarkCurrentPosition() error
	ResetToLastMark() error

	// CleanUp releases resources held by this subtree. Mandatory on every
	// exit path; must be idempotent.
	CleanUp() error
	// Duplicate produces a structurally independent clone of the whole
	// subtree. Plan-local state (e.g. a projection spec) is deep-copied;
	// external resources (page cache handles) are shared.
	Duplicate() PlanNode
	// Equal reports structural equality: same operator type, same
	// operator-local spec, structurally equal children.
	Equal(other PlanNode) bool

	Schema() *Schema
	Stats() *Stats
	Cost() Cost

	String() string
}
