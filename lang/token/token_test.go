package token_test

import (
	"testing"

	"github.com/mna/loxvm/lang/token"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		kind token.Kind
	}{
		{"and", token.AND},
		{"class", token.CLASS},
		{"while", token.WHILE},
		{"print", token.PRINT},
		{"foo", token.IDENT},
		{"printer", token.IDENT},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, token.LookupIdent(c.lit), c.lit)
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "(", token.LPAREN.String())
	require.Equal(t, "end of file", token.EOF.String())
}
