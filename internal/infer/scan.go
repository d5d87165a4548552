package infer

import (
	"github.com/lumo-lang/lumoc/internal/ast"
	"github.com/lumo-lang/lumoc/internal/types"
)

// Scan predeclares every top-level item so that mutually recursive
// references resolve before any InferItem call (spec.md §4.3). It
// must complete before inference begins, and it returns the subset of
// items inference actually walks: one entry per enum, and — for a
// name with several overloaded declarations — the one core
// definition the group resolved to. A lone function declaration needs
// no full annotation to stand as its own definition; the "core
// definition" requirement only disambiguates a genuine multi-overload
// group, which is why `fn id(x) { x }` type-checks in spec.md §8
// scenario 1 despite its unannotated parameter.
func Scan(items []ast.ItemNode) (*types.Scope, []ast.ItemNode, error) {
	scope := types.New()

	type enumEntry struct {
		decl ast.DeclEnumNode
		tags map[string]types.Ref
	}
	enums := make(map[string]*enumEntry)
	fnGroups := make(map[string][]ast.DeclFunctionNode)
	var fnOrder []string

	// Pass A: partition items, rejecting duplicate names across
	// either category; distinct function declarations sharing a name
	// are allowed (overload candidates).
	for _, item := range items {
		switch it := item.(type) {
		case ast.DeclEnumNode:
			name := it.Name.Value
			if _, dup := enums[name]; dup {
				return nil, nil, newErr("Item %q declared multiple times", name)
			}
			if _, dup := fnGroups[name]; dup {
				return nil, nil, newErr("Item %q declared multiple times", name)
			}
			enumTy := scope.Assign(name, types.NewVariable())
			tags := make(map[string]types.Ref)
			for _, branch := range it.Branches {
				tag := scope.Put(types.VariantTag{Root: name, Variant: branch.Name.Value})
				if err := Constrain(scope, tag, enumTy); err != nil {
					return nil, nil, err
				}
				tags[branch.Name.Value] = tag
			}
			enums[name] = &enumEntry{decl: it, tags: tags}

		case ast.DeclFunctionNode:
			name := it.Name.Value
			if _, dup := enums[name]; dup {
				return nil, nil, newErr("Item %q declared multiple times", name)
			}
			if _, exists := fnGroups[name]; !exists {
				fnOrder = append(fnOrder, name)
			}
			fnGroups[name] = append(fnGroups[name], it)
		}
	}

	var resolved []ast.ItemNode

	// Pass B: variant constructors.
	for _, name := range enumOrder(items) {
		entry := enums[name]
		if entry == nil {
			continue
		}
		for _, branch := range entry.decl.Branches {
			tagRef := entry.tags[branch.Name.Value]
			fullName := name + "." + branch.Name.Value

			switch fields := branch.Fields.(type) {
			case nil:
				scope.AssignAlias(fullName, tagRef)
			case ast.UnnamedFieldsNode:
				argTypes := make([]types.Ref, len(fields.Types))
				for i, tyNode := range fields.Types {
					ref, err := LowerType(scope, tyNode)
					if err != nil {
						return nil, nil, err
					}
					argTypes[i] = ref
				}
				scope.Assign(fullName, types.Function{Args: argTypes, Ret: tagRef})
			case ast.NamedFieldsNode:
				return nil, nil, newErr("enum variant with named fields is not supported yet")
			}
		}
		resolved = append(resolved, entry.decl)
	}

	// Pass C: function signatures. A singleton group stands on its
	// own; a group of two or more requires exactly one member with
	// every parameter annotated (the core definition) to disambiguate
	// it. Parameter and return positions lower their annotation when
	// present and fall back to a fresh variable otherwise, so the
	// assigned ref is always a concrete Function — never a bare
	// Variable — by the time InferItem resolves it.
	for _, name := range fnOrder {
		group := fnGroups[name]

		fn := group[0]
		if len(group) > 1 {
			var core []ast.DeclFunctionNode
			for _, g := range group {
				if allParamsAnnotated(g) {
					core = append(core, g)
				}
			}
			switch len(core) {
			case 0:
				return nil, nil, newErr("Function %q has no core definition", name)
			case 1:
				fn = core[0]
			default:
				return nil, nil, newErr("Function %q has multiple core definition", name)
			}
		}

		argRefs := make([]types.Ref, len(fn.Parameters))
		for i, p := range fn.Parameters {
			if p.Ty != nil {
				ref, err := LowerType(scope, p.Ty)
				if err != nil {
					return nil, nil, err
				}
				argRefs[i] = ref
			} else {
				argRefs[i] = scope.Put(types.NewVariable())
			}
		}

		retRef := scope.Put(types.NewVariable())
		if fn.ReturnType != nil {
			ref, err := LowerType(scope, fn.ReturnType)
			if err != nil {
				return nil, nil, err
			}
			retRef = ref
		}

		scope.Assign(name, types.Function{Args: argRefs, Ret: retRef})
		resolved = append(resolved, fn)
	}

	return scope, resolved, nil
}

func allParamsAnnotated(fn ast.DeclFunctionNode) bool {
	for _, p := range fn.Parameters {
		if p.Ty == nil {
			return false
		}
	}
	return true
}

// enumOrder preserves the source order of enum declarations so
// diagnostics and golden output stay deterministic across runs.
func enumOrder(items []ast.ItemNode) []string {
	var order []string
	seen := map[string]bool{}
	for _, item := range items {
		if e, ok := item.(ast.DeclEnumNode); ok && !seen[e.Name.Value] {
			seen[e.Name.Value] = true
			order = append(order, e.Name.Value)
		}
	}
	return order
}
