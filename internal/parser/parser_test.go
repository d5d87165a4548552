package parser

import (
	"strings"
	"testing"

	"github.com/lumo-lang/lumoc/internal/ast"
)

func TestParseProgram_EnumAndFunction(t *testing.T) {
	src := `
enum Option {
	none,
	some(Int),
}

fn id(x) {
	x
}
`
	items, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	enum, ok := items[0].(ast.DeclEnumNode)
	if !ok || enum.Name.Value != "Option" || len(enum.Branches) != 2 {
		t.Fatalf("expected Option enum with 2 branches, got %#v", items[0])
	}
	if enum.Branches[0].Fields != nil {
		t.Errorf("`none` branch should have nil fields, got %#v", enum.Branches[0].Fields)
	}
	some := enum.Branches[1]
	unnamed, ok := some.Fields.(ast.UnnamedFieldsNode)
	if !ok || len(unnamed.Types) != 1 {
		t.Fatalf("expected `some` to carry 1 unnamed field, got %#v", some.Fields)
	}

	fn, ok := items[1].(ast.DeclFunctionNode)
	if !ok || fn.Name.Value != "id" || len(fn.Parameters) != 1 {
		t.Fatalf("expected id(x) function, got %#v", items[1])
	}
	if _, ok := fn.Parameters[0].Pattern.(ast.BindPatternNode); !ok {
		t.Errorf("expected a bind pattern for x, got %#v", fn.Parameters[0].Pattern)
	}
}

func TestParseFunction_AnnotatedParamsAndReturnType(t *testing.T) {
	items, err := New("fn add(x: Int, y: Int) -> Int { x }").ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := items[0].(ast.DeclFunctionNode)
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	for _, p := range fn.Parameters {
		ty, ok := p.Ty.(ast.PathTypeNode)
		if !ok || len(ty.Path) != 1 || ty.Path[0].Value != "Int" {
			t.Errorf("expected each parameter annotated Int, got %#v", p.Ty)
		}
	}
	ret, ok := fn.ReturnType.(ast.PathTypeNode)
	if !ok || ret.Path[0].Value != "Int" {
		t.Errorf("expected return type Int, got %#v", fn.ReturnType)
	}
}

func TestParseFunction_NoBodyIsForwardDeclaration(t *testing.T) {
	items, err := New("fn f(x: Int) -> Int").ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := items[0].(ast.DeclFunctionNode)
	if fn.Body != nil {
		t.Errorf("expected nil body for a bodyless declaration, got %#v", fn.Body)
	}
}

func TestParseMatch_TaggedDestructuring(t *testing.T) {
	src := `
fn unwrap(o) {
	match o {
		.some(x) => x,
		.none() => o,
	}
}
`
	items, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := items[0].(ast.DeclFunctionNode)
	block := fn.Body.(ast.BlockNode)
	m := block.Exprs[0].(ast.MatchNode)
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(m.Arms))
	}
	wrapper := m.Arms[0].Pat.(ast.SimplePatternWrapperNode)
	td := wrapper.Pattern.(ast.TaggedDestructuringNode)
	if td.Variant.Value != "some" || td.Root != nil {
		t.Errorf("expected inferred-root `.some` destructuring, got %#v", td)
	}
	items1, ok := td.Body.(ast.PositionalBodyNode)
	if !ok || len(items1.Items) != 1 {
		t.Fatalf("expected 1 positional pattern inside .some(...), got %#v", td.Body)
	}
}

func TestParseCall_EnumConstructorAndQualifiedName(t *testing.T) {
	src := `
fn make() {
	Option.some(Option.none())
}
`
	items, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := items[0].(ast.DeclFunctionNode)
	block := fn.Body.(ast.BlockNode)
	call := block.Exprs[0].(ast.FunctionCallNode)
	name := call.Fn.(ast.NameNode)
	if len(name.Path) != 2 || name.Path[0].Value != "Option" || name.Path[1].Value != "some" {
		t.Errorf("expected qualified name Option.some, got %#v", name.Path)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 call argument, got %d", len(call.Args))
	}
}

func TestParseError_UnterminatedEnumBody(t *testing.T) {
	_, err := New("enum Option { none").ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error for an unterminated enum body")
	}
	if !strings.Contains(err.Error(), "identifier") {
		t.Errorf("expected the error to report the unexpected EOF where another branch name was expected, got %v", err)
	}
}

func TestParseError_UnknownTopLevelKeyword(t *testing.T) {
	_, err := New("match x { }").ParseProgram()
	if err == nil || !strings.Contains(err.Error(), "fn") {
		t.Fatalf("expected a top-level item error mentioning `fn`/`enum`, got %v", err)
	}
}
