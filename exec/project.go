package exec

import (
	"fmt"
	"io"
	"math"
)

// Project evaluates a projection spec over a child stream, deriving its own
// schema and column statistics from the child's at Prepare time.
type Project struct {
	child PlanNode
	spec  ProjectionSpec

	inputSchema *Schema
	// exprs holds, in spec order, the expression of each KindExpression
	// entry. Consumed in lockstep with the spec during projectTuple.
	exprs []Expr

	schema  *Schema
	stats   *Stats
	cost    Cost
	trivial bool

	env   *Env
	state execState
}

// NewProject returns a Project over child evaluating spec. Call Prepare
// before pulling any tuples.
func NewProject(child PlanNode, spec ProjectionSpec) *Project {
	return &Project{
		child: child,
		spec:  spec,
		env:   NewEnv(),
	}
}

func (p *Project) Prepare() error {
	if err := p.child.Prepare(); err != nil {
		return err
	}

	inputSchema := p.child.Schema()
	inputStats := p.child.Stats()
	inputCost := p.child.Cost()

	var builder SchemaBuilder
	var outStats []ColumnStats
	var exprs []Expr

	for _, v := range p.spec {
		switch v.Kind {
		case KindWildcard:
			for _, idx := range inputSchema.ColumnsWithQualifier(v.Qualifier) {
				builder.Append(inputSchema.Columns()[idx])
				outStats = append(outStats, inputStats.Columns[idx])
			}
		case KindExpression:
			col, stats, err := p.resolveExpressionColumn(v, inputSchema, inputStats, inputCost)
			if err != nil {
				return err
			}
			builder.Append(col)
			outStats = append(outStats, stats)
			exprs = append(exprs, v.Expr)
		case KindScalarSubquery:
			return ErrUnsupported
		default:
			return fmt.Errorf("%w: unrecognized select value kind", ErrInvalidState)
		}
	}

	p.schema = builder.Build()
	p.stats = &Stats{Columns: outStats}
	p.inputSchema = inputSchema
	p.exprs = exprs
	p.trivial = p.spec.IsTrivial()

	cost := inputCost
	cost.CPUCost += inputCost.NumTuples
	cost.TupleSize = float64(p.schema.ApproxWidth())
	p.cost = cost

	return nil
}

// resolveExpressionColumn derives the output column info and stats entry
// for one expression select value: a bare column reference is relabeled
// from the input schema; a computed expression gets its type from static
// inference and a conservative "every row distinct" stats estimate.
func (p *Project) resolveExpressionColumn(v SelectValue, inputSchema *Schema, inputStats *Stats, inputCost Cost) (ColumnInfo, ColumnStats, error) {
	if qualifier, name, ok := v.Expr.IsColumnRef(); ok {
		idx, err := inputSchema.IndexOf(qualifier, name)
		if err != nil {
			return ColumnInfo{}, ColumnStats{}, err
		}

		col := inputSchema.Columns()[idx]
		if v.Alias != "" {
			col.Name = v.Alias
			col.Qualifier = ""
		}

		return col, inputStats.Columns[idx], nil
	}

	typ, err := v.Expr.Type(inputSchema)
	if err != nil {
		return ColumnInfo{}, ColumnStats{}, err
	}

	col := ColumnInfo{Name: v.Alias, Type: typ}
	stats := ColumnStats{NumUniqueValues: int(math.Round(inputCost.NumTuples))}

	return col, stats, nil
}

func (p *Project) Initialize() error {
	p.state = stateFresh
	return p.child.Initialize()
}

func (p *Project) GetNextTuple() (Tuple, error) {
	if p.state == stateDone {
		return nil, io.EOF
	}
	p.state = stateRunning

	tuple, err := p.child.GetNextTuple()
	if err == io.EOF {
		p.state = stateDone
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	if p.trivial {
		return tuple, nil
	}

	return p.projectTuple(tuple)
}

// projectTuple walks the spec in order, consuming the expression list in
// lockstep with each expression slot.
func (p *Project) projectTuple(tuple Tuple) (Tuple, error) {
	p.env.Clear()
	p.env.AddTuple(p.inputSchema, tuple)

	out := make(LiteralTuple, 0, p.schema.Len())
	exprIdx := 0

	for _, v := range p.spec {
		switch v.Kind {
		case KindWildcard:
			for _, idx := range p.inputSchema.ColumnsWithQualifier(v.Qualifier) {
				out = append(out, tuple.Value(idx))
			}
		case KindExpression:
			val, err := p.exprs[exprIdx].Eval(p.env)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
			exprIdx++
		case KindScalarSubquery:
			return nil, ErrUnsupported
		default:
			return nil, fmt.Errorf("%w: unrecognized select value kind", ErrInvalidState)
		}
	}

	return out, nil
}

func (p *Project) SupportsMarking() bool {
	return p.child.SupportsMarking()
}

func (p *Project) RequiresLeftMarking() bool  { return false }
func (p *Project) RequiresRightMarking() bool { return false }

func (p *Project) MarkCurrentPosition() error {
	return p.child.MarkCurrentPosition()
}

func (p *Project) ResetToLastMark() error {
	if err := p.child.ResetToLastMark(); err != nil {
		return err
	}
	p.state = stateRunning
	return nil
}

func (p *Project) CleanUp() error {
	p.state = stateDone
	return p.child.CleanUp()
}

func (p *Project) Duplicate() PlanNode {
	specCopy := make(ProjectionSpec, len(p.spec))
	copy(specCopy, p.spec)
	return NewProject(p.child.Duplicate(), specCopy)
}

func (p *Project) Equal(other PlanNode) bool {
	o, ok := other.(*Project)
	if !ok {
		return false
	}
	return p.spec.Equal(o.spec) && p.child.Equal(o.child)
}

// IsTrivial reports whether this projection is a structural no-op, eligible
// for elision by a plan rewriter.
func (p *Project) IsTrivial() bool {
	return p.trivial
}

func (p *Project) Schema() *Schema { return p.schema }
func (p *Project) Stats() *Stats   { return p.stats }
func (p *Project) Cost() Cost      { return p.cost }

func (p *Project) String() string {
	return fmt.Sprintf("Project[values: %s]", p.spec.String())
}

var _ PlanNode = (*Project)(nil)
