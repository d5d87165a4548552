// Package parser turns a token stream into a []ast.ItemNode tree for
// internal/infer. The whole recursive-descent parser lives in this one
// file, with one parseX method per construct.
package parser

import (
	"fmt"

	"github.com/lumo-lang/lumoc/internal/ast"
	"github.com/lumo-lang/lumoc/internal/lexer"
	"github.com/lumo-lang/lumoc/internal/token"
)

// ParseError is a syntax error with its source position.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser consumes tokens from a Lexer one lookahead token at a time.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	peek   token.Token
	nextID int
}

// New returns a Parser reading from src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) id() int {
	p.nextID++
	return p.nextID
}

func (p *Parser) span(start token.Position) ast.Span {
	return ast.Span{Start: start, End: p.cur.Pos}
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	if p.cur.Type != t {
		return token.Token{}, &ParseError{
			Message: fmt.Sprintf("expected %s, got %q", what, p.cur.Lexeme),
			Pos:     p.cur.Pos,
		}
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// ParseProgram parses a whole source file into a list of top-level
// items. The first error aborts parsing, matching the core's
// first-error-aborts policy.
func (p *Parser) ParseProgram() ([]ast.ItemNode, error) {
	var items []ast.ItemNode
	p.skipNewlines()
	for p.cur.Type != token.EOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipNewlines()
	}
	return items, nil
}

func (p *Parser) parseItem() (ast.ItemNode, error) {
	switch p.cur.Type {
	case token.KEYWORD_ENUM:
		return p.parseDeclEnum()
	case token.KEYWORD_FN:
		return p.parseDeclFunction()
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected `fn` or `enum`, got %q", p.cur.Lexeme), Pos: p.cur.Pos}
	}
}

func (p *Parser) parseIdentifier() (ast.Identifier, error) {
	start := p.cur.Pos
	tok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return ast.Identifier{}, err
	}
	return ast.Identifier{ID: p.id(), Span: ast.Span{Start: start, End: p.cur.Pos}, Value: tok.Lexeme}, nil
}

func (p *Parser) parseDeclEnum() (ast.ItemNode, error) {
	start := p.cur.Pos
	p.advance() // enum
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "`{`"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	var branches []ast.EnumBranchNode
	for p.cur.Type != token.RBRACE {
		branch, err := p.parseEnumBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		p.skipNewlines()
		if p.cur.Type == token.COMMA {
			p.advance()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RBRACE, "`}`"); err != nil {
		return nil, err
	}
	return ast.DeclEnumNode{ID: p.id(), Span: p.span(start), Name: name, Branches: branches}, nil
}

func (p *Parser) parseEnumBranch() (ast.EnumBranchNode, error) {
	start := p.cur.Pos
	name, err := p.parseIdentifier()
	if err != nil {
		return ast.EnumBranchNode{}, err
	}
	var fields ast.FieldsNode
	switch p.cur.Type {
	case token.LPAREN:
		p.advance()
		p.skipNewlines()
		var types []ast.TypeNode
		for p.cur.Type != token.RPAREN {
			ty, err := p.parseType()
			if err != nil {
				return ast.EnumBranchNode{}, err
			}
			types = append(types, ty)
			p.skipNewlines()
			if p.cur.Type == token.COMMA {
				p.advance()
				p.skipNewlines()
			}
		}
		if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
			return ast.EnumBranchNode{}, err
		}
		fields = ast.UnnamedFieldsNode{Types: types}
	case token.LBRACE:
		p.advance()
		p.skipNewlines()
		var names []ast.Identifier
		var types []ast.TypeNode
		for p.cur.Type != token.RBRACE {
			fname, err := p.parseIdentifier()
			if err != nil {
				return ast.EnumBranchNode{}, err
			}
			if _, err := p.expect(token.COLON, "`:`"); err != nil {
				return ast.EnumBranchNode{}, err
			}
			ty, err := p.parseType()
			if err != nil {
				return ast.EnumBranchNode{}, err
			}
			names = append(names, fname)
			types = append(types, ty)
			p.skipNewlines()
			if p.cur.Type == token.COMMA {
				p.advance()
				p.skipNewlines()
			}
		}
		if _, err := p.expect(token.RBRACE, "`}`"); err != nil {
			return ast.EnumBranchNode{}, err
		}
		fields = ast.NamedFieldsNode{Names: names, Types: types}
	}
	return ast.EnumBranchNode{ID: p.id(), Span: p.span(start), Name: name, Fields: fields}, nil
}

func (p *Parser) parseType() (ast.TypeNode, error) {
	start := p.cur.Pos
	if p.cur.Type == token.LPAREN {
		p.advance()
		p.skipNewlines()
		var elems []ast.TypeNode
		for p.cur.Type != token.RPAREN {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, ty)
			p.skipNewlines()
			if p.cur.Type == token.COMMA {
				p.advance()
				p.skipNewlines()
			}
		}
		if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
			return nil, err
		}
		return ast.TupleTypeNode{ID: p.id(), Span: p.span(start), Elements: elems}, nil
	}

	first, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	path := []ast.Identifier{first}
	for p.cur.Type == token.DOT {
		p.advance()
		next, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		path = append(path, next)
	}
	return ast.PathTypeNode{ID: p.id(), Span: p.span(start), Path: path}, nil
}

func (p *Parser) parseDeclFunction() (ast.ItemNode, error) {
	start := p.cur.Pos
	p.advance() // fn
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "`(`"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var params []ast.FunctionParameterNode
	for p.cur.Type != token.RPAREN {
		param, err := p.parseFunctionParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		p.skipNewlines()
		if p.cur.Type == token.COMMA {
			p.advance()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
		return nil, err
	}

	var retType ast.TypeNode
	if p.cur.Type == token.ARROW {
		p.advance()
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	var body ast.ExpressionNode
	if p.cur.Type == token.LBRACE {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = block
	}

	return ast.DeclFunctionNode{
		ID: p.id(), Span: p.span(start),
		Name: name, Parameters: params, ReturnType: retType, Body: body,
	}, nil
}

func (p *Parser) parseFunctionParameter() (ast.FunctionParameterNode, error) {
	start := p.cur.Pos
	pattern, err := p.parseFunctionParameterPattern()
	if err != nil {
		return ast.FunctionParameterNode{}, err
	}
	var ty ast.TypeNode
	if p.cur.Type == token.COLON {
		p.advance()
		ty, err = p.parseType()
		if err != nil {
			return ast.FunctionParameterNode{}, err
		}
	}
	return ast.FunctionParameterNode{ID: p.id(), Span: p.span(start), Pattern: pattern, Ty: ty}, nil
}

func (p *Parser) parseFunctionParameterPattern() (ast.FunctionParameterPatternNode, error) {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.KEYWORD_MUT:
		p.advance()
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return ast.MutBindPatternNode{ID: p.id(), Span: p.span(start), Name: name}, nil
	case token.UNDERSCORE, token.DOT:
		sp, err := p.parseSimplePattern()
		if err != nil {
			return nil, err
		}
		return ast.WrappedSimplePatternNode{ID: p.id(), Span: p.span(start), Pattern: sp}, nil
	case token.IDENT:
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return ast.BindPatternNode{ID: p.id(), Span: p.span(start), Name: name}, nil
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected parameter pattern, got %q", p.cur.Lexeme), Pos: p.cur.Pos}
	}
}

// parsePattern parses a full pattern (match arms, destructuring
// bodies): a bare name bind, or a simple pattern.
func (p *Parser) parsePattern() (ast.PatternNode, error) {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.UNDERSCORE, token.DOT:
		sp, err := p.parseSimplePattern()
		if err != nil {
			return nil, err
		}
		return ast.SimplePatternWrapperNode{ID: p.id(), Span: p.span(start), Pattern: sp}, nil
	case token.IDENT:
		// Could be a bare name bind, or the full qualified form of a
		// tagged destructuring (`Root.variant(...)`): only decide once
		// we see whether a `.` follows.
		first, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.DOT {
			return ast.NameBindNode{ID: p.id(), Span: p.span(start), Name: first}, nil
		}
		path := []ast.Identifier{first}
		for p.cur.Type == token.DOT {
			p.advance()
			next, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			path = append(path, next)
		}
		variant := path[len(path)-1]
		root := path[:len(path)-1]
		body, err := p.parseDestructuringBody()
		if err != nil {
			return nil, err
		}
		sp := ast.TaggedDestructuringNode{ID: p.id(), Span: p.span(start), Root: root, Variant: variant, Body: body}
		return ast.SimplePatternWrapperNode{ID: p.id(), Span: p.span(start), Pattern: sp}, nil
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected pattern, got %q", p.cur.Lexeme), Pos: p.cur.Pos}
	}
}

func (p *Parser) parseSimplePattern() (ast.SimplePatternNode, error) {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.UNDERSCORE:
		p.advance()
		return ast.DiscardPatternNode{ID: p.id(), Span: p.span(start)}, nil
	case token.DOT:
		p.advance()
		variant, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		body, err := p.parseDestructuringBody()
		if err != nil {
			return nil, err
		}
		return ast.TaggedDestructuringNode{ID: p.id(), Span: p.span(start), Root: nil, Variant: variant, Body: body}, nil
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected `_` or `.variant`, got %q", p.cur.Lexeme), Pos: p.cur.Pos}
	}
}

func (p *Parser) parseDestructuringBody() (ast.DestructuringBodyNode, error) {
	if p.cur.Type != token.LPAREN {
		return ast.NoBodyNode{}, nil
	}
	p.advance()
	p.skipNewlines()
	if p.cur.Type == token.RPAREN {
		p.advance()
		return ast.PositionalBodyNode{}, nil
	}

	// Disambiguate named ("field: pattern") from positional bodies by
	// looking at the first entry: IDENT immediately followed by `:`.
	named := p.cur.Type == token.IDENT && p.peek.Type == token.COLON

	if named {
		var names []ast.Identifier
		var items []ast.PatternNode
		for p.cur.Type != token.RPAREN {
			fname, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, "`:`"); err != nil {
				return nil, err
			}
			pat, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			names = append(names, fname)
			items = append(items, pat)
			p.skipNewlines()
			if p.cur.Type == token.COMMA {
				p.advance()
				p.skipNewlines()
			}
		}
		if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
			return nil, err
		}
		return ast.NamedBodyNode{Names: names, Items: items}, nil
	}

	var items []ast.PatternNode
	for p.cur.Type != token.RPAREN {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		items = append(items, pat)
		p.skipNewlines()
		if p.cur.Type == token.COMMA {
			p.advance()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
		return nil, err
	}
	return ast.PositionalBodyNode{Items: items}, nil
}

func (p *Parser) parseBlock() (ast.BlockNode, error) {
	start := p.cur.Pos
	if _, err := p.expect(token.LBRACE, "`{`"); err != nil {
		return ast.BlockNode{}, err
	}
	p.skipNewlines()
	var exprs []ast.ExpressionNode
	for p.cur.Type != token.RBRACE {
		expr, err := p.parseExpr()
		if err != nil {
			return ast.BlockNode{}, err
		}
		exprs = append(exprs, expr)
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE, "`}`"); err != nil {
		return ast.BlockNode{}, err
	}
	return ast.BlockNode{ID: p.id(), Span: p.span(start), Exprs: exprs}, nil
}

func (p *Parser) parseExpr() (ast.ExpressionNode, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(expr)
}

func (p *Parser) parsePrimary() (ast.ExpressionNode, error) {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.KEYWORD_MATCH:
		return p.parseMatch()
	case token.DOT:
		p.advance()
		variant, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		args, err := p.parseOptionalCallArgs()
		if err != nil {
			return nil, err
		}
		return ast.EnumVariantNode{ID: p.id(), Span: p.span(start), Root: nil, Variant: variant, Args: args}, nil
	case token.IDENT:
		first, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		path := []ast.Identifier{first}
		for p.cur.Type == token.DOT {
			p.advance()
			next, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			path = append(path, next)
		}
		return ast.NameNode{ID: p.id(), Span: p.span(start), Path: path}, nil
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected expression, got %q", p.cur.Lexeme), Pos: p.cur.Pos}
	}
}

func (p *Parser) parseOptionalCallArgs() ([]ast.ExpressionNode, error) {
	if p.cur.Type != token.LPAREN {
		return nil, nil
	}
	p.advance()
	p.skipNewlines()
	var args []ast.ExpressionNode
	for p.cur.Type != token.RPAREN {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.cur.Type == token.COMMA {
			p.advance()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePostfix(expr ast.ExpressionNode) (ast.ExpressionNode, error) {
	for {
		start := p.cur.Pos
		switch p.cur.Type {
		case token.LPAREN:
			p.advance()
			p.skipNewlines()
			var args []ast.FunctionCallArgumentNode
			for p.cur.Type != token.RPAREN {
				arg, err := p.parseCallArgument()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.skipNewlines()
				if p.cur.Type == token.COMMA {
					p.advance()
					p.skipNewlines()
				}
			}
			if _, err := p.expect(token.RPAREN, "`)`"); err != nil {
				return nil, err
			}
			expr = ast.FunctionCallNode{ID: p.id(), Span: p.span(start), Fn: expr, Args: args}
		case token.DOT:
			p.advance()
			field, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			expr = ast.FieldAccessNode{ID: p.id(), Span: p.span(start), Target: expr, Field: field}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArgument() (ast.FunctionCallArgumentNode, error) {
	if p.cur.Type == token.KEYWORD_MUT {
		p.advance()
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return ast.MutNameArgNode{Name: name}, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.ExprArgNode{Expr: expr}, nil
}

func (p *Parser) parseMatch() (ast.ExpressionNode, error) {
	start := p.cur.Pos
	p.advance() // match
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "`{`"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var arms []ast.MatchArmNode
	for p.cur.Type != token.RBRACE {
		armStart := p.cur.Pos
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.FATARROW, "`=>`"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArmNode{ID: p.id(), Span: p.span(armStart), Pat: pat, Body: body})
		p.skipNewlines()
		if p.cur.Type == token.COMMA {
			p.advance()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RBRACE, "`}`"); err != nil {
		return nil, err
	}
	return ast.MatchNode{ID: p.id(), Span: p.span(start), Expr: scrutinee, Arms: arms}, nil
}
