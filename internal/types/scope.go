package types

// Scope is the arena of SimpleTypes addressed by dense Refs, plus the
// name-to-ref environment populated during scanning and read during
// inference (spec.md §4.1). A Scope is created once per compilation
// unit and is never freed piecewise: Refs live until the whole Scope
// is dropped.
type Scope struct {
	cells   []SimpleType
	nameMap map[string]Ref
}

// builtinPrimitives are bound into every fresh Scope's environment so
// that annotations naming them (`x: Int`) resolve through the same
// path-lookup the rest of syntax-to-type lowering uses, rather than
// needing a special case in LowerType. The original source (see
// DESIGN.md) never registers these anywhere, which means a program
// using `Int` in an annotation could never actually type-check there;
// spec.md's own scenario 2 requires `Primitive(Int)` to resolve, so
// this is a deliberate gap-fill rather than a literal port.
var builtinPrimitives = []string{"Unit", "Int", "Bool", "String"}

// New returns a Scope with the Unit primitive pre-installed at ref 0
// and the builtin primitive names bound in the environment.
func New() *Scope {
	s := &Scope{nameMap: make(map[string]Ref)}
	for _, name := range builtinPrimitives {
		s.Assign(name, Primitive{Name: name})
	}
	return s
}

// Put allocates a fresh cell holding ty and returns its ref. Never fails.
func (s *Scope) Put(ty SimpleType) Ref {
	s.cells = append(s.cells, ty)
	return Ref(len(s.cells) - 1)
}

// Assign puts ty and binds name to the resulting ref.
func (s *Scope) Assign(name string, ty SimpleType) Ref {
	ref := s.Put(ty)
	s.nameMap[name] = ref
	return ref
}

// AssignAlias binds name to an existing ref without allocating —
// used to give nullary variant constructors the same ref as their tag.
func (s *Scope) AssignAlias(name string, ref Ref) {
	s.nameMap[name] = ref
}

// Get returns the cell at ref, or ok=false if ref is out of range.
func (s *Scope) Get(ref Ref) (ty SimpleType, ok bool) {
	if ref < 0 || int(ref) >= len(s.cells) {
		return nil, false
	}
	return s.cells[ref], true
}

// GetDisjoint returns one SimpleType per ref in refs. If any two refs
// in the call are equal, both of their result slots are nil — the
// caller never observes two overlapping views of the same cell,
// matching the store's disjoint-mutable-access contract even though
// the Go representation returns values rather than borrows.
func (s *Scope) GetDisjoint(refs ...Ref) []SimpleType {
	result := make([]SimpleType, len(refs))
	for i, r := range refs {
		aliased := false
		for j, r2 := range refs {
			if i != j && r == r2 {
				aliased = true
				break
			}
		}
		if aliased {
			continue
		}
		if ty, ok := s.Get(r); ok {
			result[i] = ty
		}
	}
	return result
}

// GetRef looks up name in the environment.
func (s *Scope) GetRef(name string) (Ref, bool) {
	ref, ok := s.nameMap[name]
	return ref, ok
}

// Entries iterates the environment in unspecified order.
func (s *Scope) Entries(yield func(name string, ref Ref) bool) {
	for name, ref := range s.nameMap {
		if !yield(name, ref) {
			return
		}
	}
}
