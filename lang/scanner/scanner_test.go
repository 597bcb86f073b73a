package scanner_test

import (
	"testing"

	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s scanner.Scanner
	s.Init([]byte(src))
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "( ) { } , . - + ; / * ! != = == > >= < <=")
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.SLASH,
		token.STAR, token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL,
		token.EOF,
	}, kinds(toks))
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "var x = foo and bar")
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.EQUAL, token.IDENT, token.AND, token.IDENT, token.EOF,
	}, kinds(toks))
	require.Equal(t, "x", toks[1].Lexeme)
}

func TestScanNumber(t *testing.T) {
	toks := scanAll(t, "123 1.5")
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, "123", toks[0].Lexeme)
	require.Equal(t, token.NUMBER, toks[1].Kind)
	require.Equal(t, "1.5", toks[1].Lexeme)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanLineCommentsAndWhitespace(t *testing.T) {
	toks := scanAll(t, "// a comment\nvar a = 1; // trailing\n")
	require.Equal(t, []token.Kind{token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON, token.EOF}, kinds(toks))
	require.Equal(t, 2, toks[0].Line)
}

func TestScanLineNumbersInsideStringLiterals(t *testing.T) {
	toks := scanAll(t, "\"a\nb\" 1")
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, 2, toks[1].Line)
}

func TestUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"never closes`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
}
