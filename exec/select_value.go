package exec

import "strings"

// SelectValueKind tags the variant of a SelectValue.
type SelectValueKind int

const (
	KindWildcard SelectValueKind = iota
	KindExpression
	KindScalarSubquery
)

// SelectValue is one entry of a projection spec: a wildcard (optionally
// qualified), an aliased expression, or a scalar subquery (rejected at
// schema-resolution time).
type SelectValue struct {
	Kind      SelectValueKind
	Qualifier string
	Expr      Expr
	Alias     string
}

// Wildcard builds a wildcard select value. An empty qualifier means
// unqualified (expands to the whole input schema).
func Wildcard(qualifier string) SelectValue {
	return SelectValue{Kind: KindWildcard, Qualifier: qualifier}
}

// Expression builds an (optionally aliased) expression select value.
func Expression(e Expr, alias string) SelectValue {
	return SelectValue{Kind: KindExpression, Expr: e, Alias: alias}
}

// ScalarSubquery builds the not-implemented scalar-subquery variant.
func ScalarSubquery() SelectValue {
	return SelectValue{Kind: KindScalarSubquery}
}

func (v SelectValue) Equal(other SelectValue) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindWildcard:
		return v.Qualifier == other.Qualifier
	case KindExpression:
		return v.Alias == other.Alias && exprEqual(v.Expr, other.Expr)
	default:
		return true
	}
}

func (v SelectValue) String() string {
	switch v.Kind {
	case KindWildcard:
		if v.Qualifier == "" {
			return "*"
		}
		return v.Qualifier + ".*"
	case KindExpression:
		if v.Alias == "" {
			return v.Expr.String()
		}
		return v.Expr.String() + " AS " + v.Alias
	default:
		return "<subquery>"
	}
}

// ProjectionSpec is an ordered sequence of select values, the input to the
// projection operator.
type ProjectionSpec []SelectValue

func (s ProjectionSpec) Equal(other ProjectionSpec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// IsTrivial reports whether the spec is a single unqualified wildcard,
// equivalent to identity.
func (s ProjectionSpec) IsTrivial() bool {
	return len(s) == 1 && s[0].Kind == KindWildcard && s[0].Qualifier == ""
}

func (s ProjectionSpec) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}
