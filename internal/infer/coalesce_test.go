package infer

import (
	"testing"

	"github.com/lumo-lang/lumoc/internal/types"
)

func TestCoalesce_UnitIdentity(t *testing.T) {
	s := types.New()
	got := Coalesce(s, types.Unit)
	p, ok := got.(types.PrimitiveRepr)
	if !ok || p.Name != "Unit" {
		t.Errorf("coalesce(Scope::new(), UNIT) = %#v, want Primitive(Unit) (spec P6)", got)
	}
}

func TestCoalesce_PrimitiveMapsStructurally(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	got := Coalesce(s, intRef)
	p, ok := got.(types.PrimitiveRepr)
	if !ok || p.Name != "Int" {
		t.Errorf("coalesce(Int) = %#v, want Primitive(Int)", got)
	}
}

func TestCoalesce_FunctionFlipsArgPolarity(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	boolRef, _ := s.GetRef("Bool")
	argRef := s.Put(types.NewVariable())
	cell, _ := s.Get(argRef)
	arg := cell.(types.Variable)
	arg.State.LowerBounds = []types.Ref{intRef}
	arg.State.UpperBounds = []types.Ref{boolRef}
	fnRef := s.Put(types.Function{Args: []types.Ref{argRef}, Ret: intRef})
	got, ok := Coalesce(s, fnRef).(types.FunctionRepr)
	if !ok {
		t.Fatalf("coalesce(Function) = %#v, want FunctionRepr", got)
	}
	if len(got.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(got.Args))
	}
	// The function is walked at + polarity, so its argument is walked
	// at - polarity and shows its upper bound (Bool), not its lower (Int).
	argUnion, ok := got.Args[0].(types.Union)
	if !ok {
		t.Fatalf("argument should coalesce to self ∪ bounds, got %#v", got.Args[0])
	}
	if p, ok := argUnion.Right.(types.PrimitiveRepr); !ok || p.Name != "Bool" {
		t.Errorf("argument should be read through its upper bound Bool, got %#v", argUnion.Right)
	}
}

// TestCoalesce_PolarityDuality checks P5: swapping the initial
// polarity swaps which bound list feeds the walk (lower vs upper) and
// swaps the join operator (∪ vs ∩), while the "variable plus its
// bounds" outer wrap stays ∪ regardless of polarity (spec.md §4.5's
// literal, intentionally asymmetric final step).
func TestCoalesce_PolarityDuality(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	boolRef, _ := s.GetRef("Bool")
	stringRef, _ := s.GetRef("String")

	vRef := s.Put(types.NewVariable())
	cell, _ := s.Get(vRef)
	v := cell.(types.Variable)
	v.State.LowerBounds = []types.Ref{intRef, boolRef}
	v.State.UpperBounds = []types.Ref{stringRef, intRef}

	pos := Coalesce(s, vRef)
	posUnion, ok := pos.(types.Union)
	if !ok {
		t.Fatalf("expected top-level Union (self ∪ bounds) at + polarity, got %#v", pos)
	}
	if _, ok := posUnion.Right.(types.Union); !ok {
		t.Errorf("expected lower bounds joined with ∪ at + polarity, got %#v", posUnion.Right)
	}

	neg := coalesceVisit(s, vRef, false, map[polarVariable]bool{}, map[polarVariable]int{}, new(int))
	negUnion, ok := neg.(types.Union)
	if !ok {
		t.Fatalf("expected top-level Union (self ∪ bounds) even at - polarity, got %#v", neg)
	}
	if _, ok := negUnion.Right.(types.Inter); !ok {
		t.Errorf("expected upper bounds joined with ∩ at - polarity, got %#v", negUnion.Right)
	}
}

// TestCoalesce_CycleClosesWithMu checks P4: a variable that is its
// own lower bound must still coalesce to a finite tree, closed by a
// Recursive (mu) node rather than looping forever.
func TestCoalesce_CycleClosesWithMu(t *testing.T) {
	s := types.New()
	vRef := s.Put(types.NewVariable())
	cell, _ := s.Get(vRef)
	v := cell.(types.Variable)
	v.State.LowerBounds = []types.Ref{vRef}

	got := Coalesce(s, vRef)
	if _, ok := got.(types.Recursive); !ok {
		t.Errorf("self-referential variable should coalesce to Recursive, got %#v", got)
	}
}
