package types

// SimpleType is a closed sum, exactly one of Primitive, VariantTag,
// Function, Tuple, or Variable (spec.md §3).
type SimpleType interface{ isSimpleType() }

// Primitive is a nominal primitive such as "Int".
type Primitive struct {
	Name string
}

// VariantTag is a singleton nominal type identifying one branch of an
// enum. Equality is structural on Root/Variant.
type VariantTag struct {
	Root    string
	Variant string
}

// Function fixes its arity at construction; spec.md requires it stay
// immutable afterward, so nothing in this package ever mutates Args
// in place — constrain only ever reads it.
type Function struct {
	Args []Ref
	Ret  Ref
}

// Tuple is an ordered sequence of element refs.
type Tuple struct {
	Elements []Ref
}

// VariableState holds the insertion-ordered lower/upper bound lists of
// a type variable. Bounds only ever grow: constrain never removes one.
//
// VariableState is shared by pointer between every SimpleType value
// that represents the same variable, so mutating the bounds through
// one alias is visible through all of them without the store handing
// back raw pointers into its own slice.
type VariableState struct {
	LowerBounds []Ref
	UpperBounds []Ref
}

// Variable is an as-yet-unresolved position with accumulating bounds.
type Variable struct {
	State *VariableState
}

// NewVariable returns a fresh Variable with empty bound sets.
func NewVariable() Variable {
	return Variable{State: &VariableState{}}
}

func (Primitive) isSimpleType()  {}
func (VariantTag) isSimpleType() {}
func (Function) isSimpleType()   {}
func (Tuple) isSimpleType()      {}
func (Variable) isSimpleType()   {}
