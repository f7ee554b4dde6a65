package parselly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func cmpDiff(x, y interface{}) string {
	return cmp.Diff(x, y, cmp.AllowUnexported(Token{}, Node{}))
}

func tokTypes(tokens []Token) []tokenType {
	out := make([]tokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.typ
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []tokenType
	}{
		{"type", "div", []tokenType{tokenIdent, tokenEOF}},
		{"universal", "*", []tokenType{tokenStar, tokenEOF}},
		{"class", ".foo", []tokenType{tokenDot, tokenIdent, tokenEOF}},
		{"id", "#main", []tokenType{tokenHash, tokenIdent, tokenEOF}},
		{"child combinator", "a > b", []tokenType{tokenIdent, tokenChild, tokenIdent, tokenEOF}},
		{"adjacent", "a+b", []tokenType{tokenIdent, tokenAdjacent, tokenIdent, tokenEOF}},
		{"sibling", "a~b", []tokenType{tokenIdent, tokenSibling, tokenIdent, tokenEOF}},
		{"attr bare", "[href]", []tokenType{tokenLBracket, tokenIdent, tokenRBracket, tokenEOF}},
		{"attr equal", `[a="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenEqual, tokenString, tokenRBracket, tokenEOF}},
		{"attr includes", `[a~="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenIncludes, tokenString, tokenRBracket, tokenEOF}},
		{"attr dashmatch", `[a|="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenDashMatch, tokenString, tokenRBracket, tokenEOF}},
		{"attr prefix", `[a^="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenPrefixMatch, tokenString, tokenRBracket, tokenEOF}},
		{"attr suffix", `[a$="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenSuffixMatch, tokenString, tokenRBracket, tokenEOF}},
		{"attr substring", `[a*="b"]`, []tokenType{tokenLBracket, tokenIdent, tokenSubstringMatch, tokenString, tokenRBracket, tokenEOF}},
		{"pseudo class", ":hover", []tokenType{tokenColon, tokenIdent, tokenEOF}},
		{"pseudo element", "::before", []tokenType{tokenColon, tokenColon, tokenIdent, tokenEOF}},
		{"pseudo function", "is(a)", []tokenType{tokenIdent, tokenLParen, tokenIdent, tokenRParen, tokenEOF}},
		{"comma", "a, b", []tokenType{tokenIdent, tokenComma, tokenIdent, tokenEOF}},
		{"number", "2n+1", []tokenType{tokenNumber, tokenIdent, tokenAdjacent, tokenNumber, tokenEOF}},
		{"decimal", "1.5", []tokenType{tokenNumber, tokenEOF}},
		{"custom ident", "--foo", []tokenType{tokenIdent, tokenEOF}},
		{"escaped ident", `\.foo`, []tokenType{tokenIdent, tokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := tokenize(tt.in)
			require.NoError(t, err)
			if diff := cmpDiff(tt.want, tokTypes(toks)); diff != "" {
				t.Errorf("tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	toks, err := tokenize(`div.foo#bar`)
	require.NoError(t, err)
	require.Len(t, toks, 6) // IDENT DOT IDENT HASH IDENT EOF

	var vals []string
	for _, tok := range toks {
		vals = append(vals, tok.val)
	}
	require.Equal(t, []string{"div", ".", "foo", "#", "bar", ""}, vals[:6])
}

func TestTokenizeStringStripsQuotes(t *testing.T) {
	toks, err := tokenize(`[a="hello world"]`)
	require.NoError(t, err)
	var found bool
	for _, tok := range toks {
		if tok.typ == tokenString {
			require.Equal(t, "hello world", tok.val)
			found = true
		}
	}
	require.True(t, found, "expected a STRING token")
}

func TestTokenizeSingleQuoteString(t *testing.T) {
	toks, err := tokenize(`[a='x']`)
	require.NoError(t, err)
	for _, tok := range toks {
		if tok.typ == tokenString {
			require.Equal(t, "x", tok.val)
		}
	}
}

func TestTokenizeErrorUnexpectedChar(t *testing.T) {
	_, err := tokenize("a&b")
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, '&', lexErr.Char)
}

func TestTokenizeErrorUnterminatedString(t *testing.T) {
	_, err := tokenize(`[a="unterminated]`)
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestTokenizePositions(t *testing.T) {
	toks, err := tokenize("a b")
	require.NoError(t, err)
	require.Equal(t, Pos{Line: 1, Column: 1}, toks[0].pos)
	require.Equal(t, Pos{Line: 1, Column: 3}, toks[1].pos)
}

func TestTokenizeMultilinePositions(t *testing.T) {
	toks, err := tokenize("a\n.b")
	require.NoError(t, err)
	require.Equal(t, Pos{Line: 1, Column: 1}, toks[0].pos)
	require.Equal(t, Pos{Line: 2, Column: 1}, toks[1].pos)
}

func TestStripIdentEscapes(t *testing.T) {
	if got := stripIdentEscapes(`foo\:bar`); got != "foo:bar" {
		t.Errorf("stripIdentEscapes = %q", got)
	}
	if got := stripIdentEscapes("plain"); got != "plain" {
		t.Errorf("stripIdentEscapes = %q", got)
	}
}
