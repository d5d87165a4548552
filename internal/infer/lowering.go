package infer

import (
	"strings"

	"github.com/lumo-lang/lumoc/internal/ast"
	"github.com/lumo-lang/lumoc/internal/types"
)

// LowerType maps a surface TypeNode to a Ref by environment lookup
// (spec.md §4.2).
func LowerType(scope *types.Scope, node ast.TypeNode) (types.Ref, error) {
	switch n := node.(type) {
	case ast.PathTypeNode:
		parts := make([]string, len(n.Path))
		for i, id := range n.Path {
			parts[i] = id.Value
		}
		path := strings.Join(parts, ".")
		ref, ok := scope.GetRef(path)
		if !ok {
			return 0, newErr("cannot transform path type syntax")
		}
		return ref, nil
	case ast.TupleTypeNode:
		elems := make([]types.Ref, len(n.Elements))
		for i, el := range n.Elements {
			ref, err := LowerType(scope, el)
			if err != nil {
				return 0, err
			}
			elems[i] = ref
		}
		return scope.Put(types.Tuple{Elements: elems}), nil
	default:
		return 0, newErr("cannot transform type syntax")
	}
}
