// Command lumoc drives the lumo-lang type-inference core end to end:
// lex, parse, scan, infer every item, coalesce its ref, and print the
// resulting signatures (spec.md §2's control-flow diagram), the way
// the teacher's cmd/funxy wires its own pipeline stages together.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/lumo-lang/lumoc/internal/ast"
	"github.com/lumo-lang/lumoc/internal/config"
	"github.com/lumo-lang/lumoc/internal/diagnostics"
	"github.com/lumo-lang/lumoc/internal/infer"
	"github.com/lumo-lang/lumoc/internal/lexer"
	"github.com/lumo-lang/lumoc/internal/parser"
	"github.com/lumo-lang/lumoc/internal/token"
	"github.com/lumo-lang/lumoc/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: lumoc <source-file> [debug-config.yaml]")
		return 2
	}
	path := args[0]

	debugPath := "lumoc.debug.yaml"
	if len(args) > 1 {
		debugPath = args[1]
	}
	debug, err := config.LoadDebugConfig(debugPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lumoc: loading debug config: %v\n", err)
		return 2
	}

	color := isatty.IsTerminal(os.Stderr.Fd())
	unitID := uuid.New()

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lumoc: %v\n", err)
		return 1
	}

	if debug.DumpTokens {
		dumpTokens(string(src))
	}

	p := parser.New(string(src))
	items, perr := p.ParseProgram()
	if perr != nil {
		fmt.Fprintf(os.Stderr, "lumoc: %v\n", perr)
		return 1
	}
	if debug.DumpItems {
		fmt.Fprintf(os.Stderr, "# unit %s: %d item(s)\n", unitID, len(items))
	}

	scope, resolved, serr := infer.Scan(items)
	if serr != nil {
		report(color, unitID, diagnostics.New(serr.Error(), token.Position{}))
		return 1
	}

	diags := diagnostics.NewSet()
	var refs []types.Ref
	for _, item := range resolved {
		ref, err := infer.InferItem(scope, item)
		if err != nil {
			diags.Add(diagnostics.New(err.Error(), itemPos(item)))
			continue
		}
		refs = append(refs, ref)
		if debug.DumpTypes {
			fmt.Fprintf(os.Stderr, "# %s: ref %d\n", itemName(item), ref)
		}
	}

	if all := diags.All(); len(all) > 0 {
		for _, d := range all {
			report(color, unitID, d)
		}
		return 1
	}

	for i, item := range resolved {
		repr := infer.Coalesce(scope, refs[i])
		fmt.Printf("%s : %s\n", itemName(item), repr.String())
	}
	return 0
}

func dumpTokens(src string) {
	lx := lexer.New(src)
	for {
		tok := lx.NextToken()
		fmt.Fprintf(os.Stderr, "# token %d:%d %v %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Lexeme)
		if tok.Type == token.EOF {
			return
		}
	}
}

func report(color bool, unitID uuid.UUID, d *diagnostics.DiagnosticError) {
	if color {
		fmt.Fprintf(os.Stderr, "\x1b[31merror[%s]\x1b[0m %s (unit %s)\n", d.Code, d.Error(), unitID)
		return
	}
	fmt.Fprintf(os.Stderr, "error[%s] %s (unit %s)\n", d.Code, d.Error(), unitID)
}

func itemName(item ast.ItemNode) string {
	switch it := item.(type) {
	case ast.DeclEnumNode:
		return it.Name.Value
	case ast.DeclFunctionNode:
		return it.Name.Value
	default:
		return "<item>"
	}
}

func itemPos(item ast.ItemNode) token.Position {
	switch it := item.(type) {
	case ast.DeclEnumNode:
		return it.Span.Start
	case ast.DeclFunctionNode:
		return it.Span.Start
	default:
		return token.Position{}
	}
}
