package infer

import (
	"strings"
	"testing"

	"github.com/lumo-lang/lumoc/internal/types"
)

func TestConstrain_MatchingPrimitives(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	if err := Constrain(s, intRef, intRef); err != nil {
		t.Errorf("Int <: Int should succeed, got %v", err)
	}
}

func TestConstrain_MismatchedPrimitives(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	boolRef, _ := s.GetRef("Bool")
	err := Constrain(s, intRef, boolRef)
	if err == nil {
		t.Fatal("Int <: Bool should fail")
	}
	if !strings.Contains(err.Error(), "Cannot constraint") {
		t.Errorf("expected a %q error, got %v", "Cannot constraint", err)
	}
}

func TestConstrain_ArityMismatchFails(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	unary := s.Put(types.Function{Args: []types.Ref{intRef}, Ret: intRef})
	nullary := s.Put(types.Function{Args: nil, Ret: intRef})
	if err := Constrain(s, unary, nullary); err == nil {
		t.Error("differing arity must never constrain successfully (spec P3)")
	}
}

func TestConstrain_VariableAccumulatesBounds(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	v := s.Put(types.NewVariable())
	if err := Constrain(s, intRef, v); err != nil {
		t.Fatalf("Int <: variable should succeed: %v", err)
	}
	cell, _ := s.Get(v)
	state := cell.(types.Variable).State
	if len(state.LowerBounds) != 1 || state.LowerBounds[0] != intRef {
		t.Errorf("expected Int in lower bounds, got %#v", state.LowerBounds)
	}
}

func TestConstrain_FunctionArgsAreContravariant(t *testing.T) {
	s := types.New()
	intRef, _ := s.GetRef("Int")
	boolRef, _ := s.GetRef("Bool")

	narrow := s.Put(types.Function{Args: []types.Ref{intRef}, Ret: intRef})
	wide := s.Put(types.Function{Args: []types.Ref{boolRef}, Ret: intRef})

	// narrow <: wide requires wide's arg <: narrow's arg (Bool <: Int),
	// which is false, so this must fail.
	if err := Constrain(s, narrow, wide); err == nil {
		t.Error("contravariant argument constraint should have rejected Bool <: Int")
	}
}

func TestConstrain_SelfConstraintIsNoOp(t *testing.T) {
	s := types.New()
	v := s.Put(types.NewVariable())
	if err := Constrain(s, v, v); err != nil {
		t.Errorf("lhs == rhs must short-circuit to success, got %v", err)
	}
	cell, _ := s.Get(v)
	state := cell.(types.Variable).State
	if len(state.LowerBounds) != 0 || len(state.UpperBounds) != 0 {
		t.Error("self-constraint should not touch the variable's own bound lists")
	}
}

func TestConstrain_DanglingRefIsNoOp(t *testing.T) {
	s := types.New()
	if err := Constrain(s, types.Ref(9999), types.Ref(9998)); err != nil {
		t.Errorf("an out-of-range ref pair must succeed silently, got %v", err)
	}
}
