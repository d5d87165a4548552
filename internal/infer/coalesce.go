package infer

import "github.com/lumo-lang/lumoc/internal/types"

type polarVariable struct {
	state *types.VariableState
	polar bool
}

// Coalesce turns ty into a finite RepresentationalType by walking the
// accumulated constraint graph polarity-first (spec.md §4.5): positive
// positions join their lower bounds with ∪, negative positions join
// their upper bounds with ∩, and any cycle back to a variable already
// on the walk's stack closes as a μ-binder instead of recursing forever.
func Coalesce(scope *types.Scope, ty types.Ref) types.RepresentationalType {
	recursive := make(map[polarVariable]int)
	counter := 0
	return coalesceVisit(scope, ty, true, map[polarVariable]bool{}, recursive, &counter)
}

func coalesceVisit(
	scope *types.Scope,
	ref types.Ref,
	polar bool,
	wip map[polarVariable]bool,
	recursive map[polarVariable]int,
	counter *int,
) types.RepresentationalType {
	ty, ok := scope.Get(ref)
	if !ok {
		// Unreachable under the invariant that every ref handed to the
		// coalescer was obtained from this scope; fail closed rather
		// than panic.
		return types.Bot{}
	}

	switch t := ty.(type) {
	case types.Primitive:
		return types.PrimitiveRepr{Name: t.Name}

	case types.VariantTag:
		return types.VariantTagRepr{Root: t.Root, Variant: t.Variant}

	case types.Function:
		args := make([]types.RepresentationalType, len(t.Args))
		for i, a := range t.Args {
			args[i] = coalesceVisit(scope, a, !polar, wip, recursive, counter)
		}
		ret := coalesceVisit(scope, t.Ret, polar, wip, recursive, counter)
		return types.FunctionRepr{Args: args, Ret: ret}

	case types.Tuple:
		elems := make([]types.RepresentationalType, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = coalesceVisit(scope, e, polar, wip, recursive, counter)
		}
		return types.TupleRepr{Elements: elems}

	case types.Variable:
		pv := polarVariable{state: t.State, polar: polar}
		if wip[pv] {
			if _, ok := recursive[pv]; !ok {
				*counter++
				recursive[pv] = *counter
			}
			return types.VariableRepr{ID: recursive[pv]}
		}

		bounds := t.State.LowerBounds
		if !polar {
			bounds = t.State.UpperBounds
		}

		childWip := make(map[polarVariable]bool, len(wip)+1)
		for k := range wip {
			childWip[k] = true
		}
		childWip[pv] = true

		var acc types.RepresentationalType
		for _, b := range bounds {
			next := coalesceVisit(scope, b, polar, childWip, recursive, counter)
			if acc == nil {
				acc = next
			} else if polar {
				acc = types.Union{Left: acc, Right: next}
			} else {
				acc = types.Inter{Left: acc, Right: next}
			}
		}

		*counter++
		self := types.VariableRepr{ID: *counter}
		var res types.RepresentationalType = self
		if acc != nil {
			res = types.Union{Left: self, Right: acc}
		}

		if id, ok := recursive[pv]; ok {
			res = types.Recursive{ID: id, Body: res}
		}
		return res

	default:
		return types.Bot{}
	}
}
