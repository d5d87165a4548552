package lexer

import (
	"testing"

	"github.com/lumo-lang/lumoc/internal/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertTypes(t *testing.T, src string, want []token.Type) {
	t.Helper()
	got := types(collect(src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestLexer_Keywords(t *testing.T) {
	assertTypes(t, "fn enum match mut",
		[]token.Type{token.KEYWORD_FN, token.KEYWORD_ENUM, token.KEYWORD_MATCH, token.KEYWORD_MUT, token.EOF})
}

func TestLexer_IdentVsKeyword(t *testing.T) {
	assertTypes(t, "function enumerate", []token.Type{token.IDENT, token.IDENT, token.EOF})
}

func TestLexer_Punctuation(t *testing.T) {
	assertTypes(t, ".,:(){}->=>_",
		[]token.Type{
			token.DOT, token.COMMA, token.COLON, token.LPAREN, token.RPAREN,
			token.LBRACE, token.RBRACE, token.ARROW, token.FATARROW, token.UNDERSCORE, token.EOF,
		})
}

func TestLexer_UnderscoreInIdentIsNotDiscard(t *testing.T) {
	assertTypes(t, "my_var _", []token.Type{token.IDENT, token.UNDERSCORE, token.EOF})
}

func TestLexer_LineComment(t *testing.T) {
	assertTypes(t, "fn // a comment about fn\nenum", []token.Type{token.KEYWORD_FN, token.NEWLINE, token.KEYWORD_ENUM, token.EOF})
}

func TestLexer_IntegerLiteral(t *testing.T) {
	assertTypes(t, "42", []token.Type{token.INT, token.EOF})
}

func TestLexer_PositionsTrackLinesAndColumns(t *testing.T) {
	toks := collect("fn\n  id")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("first token position = %+v, want line 1 col 1", toks[0].Pos)
	}
	idTok := toks[2]
	if idTok.Lexeme != "id" || idTok.Pos.Line != 2 {
		t.Errorf("expected `id` on line 2, got %+v", idTok)
	}
}

func TestLexer_EOFIsIdempotent(t *testing.T) {
	l := New("")
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != token.EOF || second.Type != token.EOF {
		t.Errorf("repeated NextToken at end of input should keep returning EOF, got %v then %v", first.Type, second.Type)
	}
}
