// Package ast defines the surface syntax tree handed to internal/infer.
//
// Every node carries its Span and a monotonic ID scalar alongside the
// tree rather than as part of any pointer identity, so that ids survive
// copies.
package ast

import "github.com/lumo-lang/lumoc/internal/token"

// Span is a half-open source range.
type Span struct {
	Start token.Position
	End   token.Position
}

// Identifier is a single name token together with its span.
type Identifier struct {
	ID    int
	Span  Span
	Value string
}

// TypeNode is a type as written in source: a dotted path or a tuple.
type TypeNode interface{ isType() }

type PathTypeNode struct {
	ID   int
	Span Span
	Path []Identifier
}

type TupleTypeNode struct {
	ID       int
	Span     Span
	Elements []TypeNode
}

func (PathTypeNode) isType()  {}
func (TupleTypeNode) isType() {}

// FieldsNode describes an enum branch's fields.
type FieldsNode interface{ isFields() }

type UnnamedFieldsNode struct {
	Types []TypeNode
}

type NamedFieldsNode struct {
	Names []Identifier
	Types []TypeNode
}

func (UnnamedFieldsNode) isFields() {}
func (NamedFieldsNode) isFields()   {}

// EnumBranchNode is one variant of a DeclEnumNode.
type EnumBranchNode struct {
	ID     int
	Span   Span
	Name   Identifier
	Fields FieldsNode // nil for a no-field branch
}

// ItemNode is a top-level declaration.
type ItemNode interface{ isItem() }

type DeclEnumNode struct {
	ID       int
	Span     Span
	Name     Identifier
	Branches []EnumBranchNode
}

type FunctionParameterNode struct {
	ID      int
	Span    Span
	Pattern FunctionParameterPatternNode
	Ty      TypeNode // nil if unannotated
}

// FunctionParameterPatternNode is the pattern bound by one parameter.
type FunctionParameterPatternNode interface{ isParamPattern() }

type BindPatternNode struct {
	ID   int
	Span Span
	Name Identifier
}

type MutBindPatternNode struct {
	ID   int
	Span Span
	Name Identifier
}

type WrappedSimplePatternNode struct {
	ID      int
	Span    Span
	Pattern SimplePatternNode
}

func (BindPatternNode) isParamPattern()        {}
func (MutBindPatternNode) isParamPattern()      {}
func (WrappedSimplePatternNode) isParamPattern() {}

// SimplePatternNode is a pattern usable outside parameter position too
// (e.g. match arms): discard or tagged destructuring.
type SimplePatternNode interface{ isSimplePattern() }

type DiscardPatternNode struct {
	ID   int
	Span Span
}

// DestructuringBodyNode is the argument list of a tagged destructuring.
type DestructuringBodyNode interface{ isDestructuringBody() }

type NoBodyNode struct{}

type PositionalBodyNode struct {
	Items []PatternNode
}

type NamedBodyNode struct {
	Names []Identifier
	Items []PatternNode
}

func (NoBodyNode) isDestructuringBody()         {}
func (PositionalBodyNode) isDestructuringBody() {}
func (NamedBodyNode) isDestructuringBody()      {}

type TaggedDestructuringNode struct {
	ID   int
	Span Span
	// Root is nil for the inferred short form (".variant(...)").
	Root    []Identifier
	Variant Identifier
	Body    DestructuringBodyNode
}

func (DiscardPatternNode) isSimplePattern()      {}
func (TaggedDestructuringNode) isSimplePattern() {}

// PatternNode is a full pattern: a bare name bind or a simple pattern.
type PatternNode interface{ isPattern() }

type NameBindNode struct {
	ID   int
	Span Span
	Name Identifier
}

type SimplePatternWrapperNode struct {
	ID      int
	Span    Span
	Pattern SimplePatternNode
}

func (NameBindNode) isPattern()             {}
func (SimplePatternWrapperNode) isPattern() {}

// FunctionCallArgumentNode is one call-site argument.
type FunctionCallArgumentNode interface{ isCallArg() }

type ExprArgNode struct{ Expr ExpressionNode }
type MutNameArgNode struct{ Name Identifier }

func (ExprArgNode) isCallArg()    {}
func (MutNameArgNode) isCallArg() {}

// ExpressionNode is an expression.
type ExpressionNode interface{ isExpr() }

type NameNode struct {
	ID   int
	Span Span
	// Path is the dotted identifier chain as written, e.g. ["Option",
	// "some"] for `Option.some`, or a single element for a bare name.
	Path []Identifier
}

type BlockNode struct {
	ID    int
	Span  Span
	Exprs []ExpressionNode
}

type FunctionCallNode struct {
	ID   int
	Span Span
	Fn   ExpressionNode
	Args []FunctionCallArgumentNode
}

type MatchArmNode struct {
	ID   int
	Span Span
	Pat  PatternNode
	Body ExpressionNode
}

type MatchNode struct {
	ID   int
	Span Span
	Expr ExpressionNode
	Arms []MatchArmNode
}

// EnumVariantNode constructs or refers to an enum variant directly by
// tag, e.g. `.some(x)`.
type EnumVariantNode struct {
	ID      int
	Span    Span
	Root    []Identifier // nil for the inferred short form
	Variant Identifier
	Args    []ExpressionNode
}

type FieldAccessNode struct {
	ID     int
	Span   Span
	Target ExpressionNode
	Field  Identifier
}

type IndexNode struct {
	ID     int
	Span   Span
	Target ExpressionNode
	Index  ExpressionNode
}

type PrefixOperatorNode struct {
	ID       int
	Span     Span
	Operator string
	Operand  ExpressionNode
}

type InfixOperatorNode struct {
	ID       int
	Span     Span
	Operator string
	Left     ExpressionNode
	Right    ExpressionNode
}

func (NameNode) isExpr()           {}
func (BlockNode) isExpr()          {}
func (FunctionCallNode) isExpr()   {}
func (MatchNode) isExpr()          {}
func (EnumVariantNode) isExpr()    {}
func (FieldAccessNode) isExpr()    {}
func (IndexNode) isExpr()          {}
func (PrefixOperatorNode) isExpr() {}
func (InfixOperatorNode) isExpr()  {}

type DeclFunctionNode struct {
	ID         int
	Span       Span
	Name       Identifier
	Parameters []FunctionParameterNode
	ReturnType TypeNode // nil if unannotated
	Body       ExpressionNode // nil if the declaration has no body
}

func (DeclEnumNode) isItem()     {}
func (DeclFunctionNode) isItem() {}
