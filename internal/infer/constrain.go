package infer

import (
	"strconv"

	"github.com/lumo-lang/lumoc/internal/types"
)

type constrainPair struct{ lhs, rhs types.Ref }

// Constrain records that lhs is assignable to rhs (lhs <: rhs) and
// propagates the obligation through any variable bounds it touches
// (spec.md §4.4.4). It is the only place lower/upper bound lists grow.
func Constrain(scope *types.Scope, lhs, rhs types.Ref) error {
	return constrain(scope, lhs, rhs, make(map[constrainPair]bool))
}

func constrain(scope *types.Scope, lhs, rhs types.Ref, cache map[constrainPair]bool) error {
	pair := constrainPair{lhs, rhs}
	if cache[pair] {
		return nil
	}
	if lhs == rhs {
		return nil
	}
	cache[pair] = true

	cells := scope.GetDisjoint(lhs, rhs)
	lhsTy, rhsTy := cells[0], cells[1]
	if lhsTy == nil || rhsTy == nil {
		// A dangling ref denotes a cell the caller guarantees is
		// unreachable; treat it as a no-op rather than panicking.
		return nil
	}

	var toConstrain []constrainPair
	// lhsMatched is false when no lhs-driven rule applies, in which
	// case a Variable rhs still takes lhs as a new lower bound.
	lhsMatched := true

	switch l := lhsTy.(type) {
	case types.Primitive:
		r, ok := rhsTy.(types.Primitive)
		if !ok || l.Name != r.Name {
			lhsMatched = false
			break
		}
		return nil

	case types.Function:
		r, ok := rhsTy.(types.Function)
		if !ok || len(l.Args) != len(r.Args) {
			lhsMatched = false
			break
		}
		// Argument position is contravariant: lhs, the subtype, must
		// accept every argument a caller of rhs may pass, so the
		// obligation runs rhs_arg <: lhs_arg.
		for i := range l.Args {
			toConstrain = append(toConstrain, constrainPair{r.Args[i], l.Args[i]})
		}
		toConstrain = append(toConstrain, constrainPair{l.Ret, r.Ret})

	case types.Variable:
		l.State.UpperBounds = append([]types.Ref{rhs}, l.State.UpperBounds...)
		for _, lb := range l.State.LowerBounds {
			toConstrain = append(toConstrain, constrainPair{lb, rhs})
		}

	default:
		lhsMatched = false
	}

	if !lhsMatched {
		r, ok := rhsTy.(types.Variable)
		if !ok {
			return constraintError(lhsTy, rhsTy)
		}
		r.State.LowerBounds = append([]types.Ref{lhs}, r.State.LowerBounds...)
		for _, ub := range r.State.UpperBounds {
			toConstrain = append(toConstrain, constrainPair{lhs, ub})
		}
	}

	for _, p := range toConstrain {
		childCache := make(map[constrainPair]bool, len(cache))
		for k := range cache {
			childCache[k] = true
		}
		if err := constrain(scope, p.lhs, p.rhs, childCache); err != nil {
			return err
		}
	}
	return nil
}

func constraintError(lhs, rhs types.SimpleType) error {
	return newErr("Cannot constraint %s <: %s", describe(lhs), describe(rhs))
}

func describe(ty types.SimpleType) string {
	switch t := ty.(type) {
	case types.Primitive:
		return "Primitive(" + t.Name + ")"
	case types.VariantTag:
		return t.Root + "." + t.Variant
	case types.Function:
		return "Function/" + strconv.Itoa(len(t.Args))
	case types.Tuple:
		return "Tuple/" + strconv.Itoa(len(t.Elements))
	case types.Variable:
		return "Variable"
	default:
		return "?"
	}
}
