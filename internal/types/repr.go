package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumo-lang/lumoc/internal/config"
)

// RepresentationalType is the canonical, variable-renumbered output of
// the coalescer (spec.md §4.5):
//
//	RT ::= ⊤ | ⊥ | RT ∪ RT | RT ∩ RT | fn(RT,…) -> RT
//	     | μ<id>.RT | <id> | Primitive(s) | Tag(root.variant) | Tuple(RT,…)
type RepresentationalType interface {
	isRepr()
	String() string
}

type Top struct{}
type Bot struct{}

type Union struct{ Left, Right RepresentationalType }
type Inter struct{ Left, Right RepresentationalType }

type FunctionRepr struct {
	Args []RepresentationalType
	Ret  RepresentationalType
}

type Recursive struct {
	ID   int
	Body RepresentationalType
}

type VariableRepr struct{ ID int }

type PrimitiveRepr struct{ Name string }

type VariantTagRepr struct{ Root, Variant string }

type TupleRepr struct{ Elements []RepresentationalType }

func (Top) isRepr()            {}
func (Bot) isRepr()             {}
func (Union) isRepr()           {}
func (Inter) isRepr()           {}
func (FunctionRepr) isRepr()    {}
func (Recursive) isRepr()       {}
func (VariableRepr) isRepr()    {}
func (PrimitiveRepr) isRepr()   {}
func (VariantTagRepr) isRepr()  {}
func (TupleRepr) isRepr()       {}

func (Top) String() string { return "⊤" }
func (Bot) String() string { return "⊥" }

func (u Union) String() string { return u.Left.String() + " ∪ " + u.Right.String() }
func (i Inter) String() string { return i.Left.String() + " ∩ " + i.Right.String() }

func (f FunctionRepr) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), f.Ret.String())
}

func (r Recursive) String() string {
	return fmt.Sprintf("μ<#%s>. (%s)", varLabel(r.ID), r.Body.String())
}

func (v VariableRepr) String() string {
	return fmt.Sprintf("<#%s>", varLabel(v.ID))
}

func (p PrimitiveRepr) String() string { return p.Name }

func (t VariantTagRepr) String() string { return t.Root + "." + t.Variant }

func (t TupleRepr) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// varLabel normalizes numbered ids to "?" under config.IsTestMode so
// golden output stays deterministic across renumbering, the Go
// analogue of the teacher's typesystem.TVar.String() "t?" scheme.
func varLabel(id int) string {
	if config.IsTestMode {
		return "?"
	}
	return strconv.Itoa(id)
}
