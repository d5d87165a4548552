package infer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/lumo-lang/lumoc/internal/ast"
	"github.com/lumo-lang/lumoc/internal/parser"
)

// runGolden drives the real tokenize→parse→scan→infer→coalesce
// pipeline over a source file and renders one line per enum variant
// (deterministic: never touches an inference variable) or aborts on
// the first error, matching the first-error-aborts policy documented
// on parser.Parser.ParseProgram.
func runGolden(src string) string {
	items, err := parser.New(src).ParseProgram()
	if err != nil {
		return "error: " + err.Error() + "\n"
	}
	scope, resolved, err := Scan(items)
	if err != nil {
		return "error: " + err.Error() + "\n"
	}
	var lines []string
	for _, item := range resolved {
		switch it := item.(type) {
		case ast.DeclEnumNode:
			for _, branch := range it.Branches {
				fullName := it.Name.Value + "." + branch.Name.Value
				ref, ok := scope.GetRef(fullName)
				if !ok {
					return fmt.Sprintf("error: %s was not bound by scan\n", fullName)
				}
				lines = append(lines, fmt.Sprintf("%s : %s", fullName, Coalesce(scope, ref).String()))
			}
		case ast.DeclFunctionNode:
			if _, err := InferItem(scope, it); err != nil {
				return "error: " + err.Error() + "\n"
			}
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestInferGolden(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("no golden fixtures found under testdata/")
	}
	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing archive: %v", err)
			}
			var input, expect string
			var haveInput, haveExpect bool
			for _, f := range archive.Files {
				switch f.Name {
				case "input.lumo":
					input, haveInput = string(f.Data), true
				case "expect.txt":
					expect, haveExpect = string(f.Data), true
				}
			}
			if !haveInput || !haveExpect {
				t.Fatalf("%s must contain both input.lumo and expect.txt", path)
			}
			got := runGolden(input)
			if got != expect {
				t.Errorf("mismatch for %s:\n--- got ---\n%s--- want ---\n%s", path, got, expect)
			}
		})
	}
}
