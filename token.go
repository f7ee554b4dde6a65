package parselly

import "fmt"

// tokenType enumerates the lexical categories produced by the lexer, plus
// the one synthetic kind (tokenDescendant) inserted by the preprocessor.
type tokenType int

const (
	tokenIdent tokenType = iota
	tokenString
	tokenNumber
	tokenHash
	tokenDot
	tokenStar
	tokenLBracket
	tokenRBracket
	tokenLParen
	tokenRParen
	tokenColon
	tokenComma
	tokenMinus
	tokenEqual
	tokenChild
	tokenAdjacent
	tokenSibling
	tokenDescendant // synthetic, never produced by the lexer
	tokenIncludes
	tokenDashMatch
	tokenPrefixMatch
	tokenSuffixMatch
	tokenSubstringMatch
	tokenEOF
)

var tokenNames = map[tokenType]string{
	tokenIdent:          "IDENT",
	tokenString:         "STRING",
	tokenNumber:         "NUMBER",
	tokenHash:           "HASH",
	tokenDot:            "DOT",
	tokenStar:           "STAR",
	tokenLBracket:       "LBRACKET",
	tokenRBracket:       "RBRACKET",
	tokenLParen:         "LPAREN",
	tokenRParen:         "RPAREN",
	tokenColon:          "COLON",
	tokenComma:          "COMMA",
	tokenMinus:          "MINUS",
	tokenEqual:          "EQUAL",
	tokenChild:          "CHILD",
	tokenAdjacent:       "ADJACENT",
	tokenSibling:        "SIBLING",
	tokenDescendant:     "DESCENDANT",
	tokenIncludes:       "INCLUDES",
	tokenDashMatch:      "DASHMATCH",
	tokenPrefixMatch:    "PREFIXMATCH",
	tokenSuffixMatch:    "SUFFIXMATCH",
	tokenSubstringMatch: "SUBSTRINGMATCH",
	tokenEOF:            "EOF",
}

func (t tokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tokenType(%d)", int(t))
}

// canEndCompound reports whether a token of this kind can be the last
// token of a compound selector, per the descendant-insertion rule (§4.2).
func (t tokenType) canEndCompound() bool {
	switch t {
	case tokenIdent, tokenStar, tokenRParen, tokenRBracket:
		return true
	}
	return false
}

// canStartCompound reports whether a token of this kind can open a new
// compound selector, per the descendant-insertion rule (§4.2).
func (t tokenType) canStartCompound() bool {
	switch t {
	case tokenIdent, tokenStar, tokenDot, tokenHash, tokenLBracket, tokenColon:
		return true
	}
	return false
}

// Pos is a 1-based source position, counted in UTF-8 bytes within the line.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit: (kind, lexeme, position).
type Token struct {
	typ tokenType
	val string
	pos Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.typ, t.val, t.pos)
}

func (t Token) isCombinator() bool {
	switch t.typ {
	case tokenChild, tokenAdjacent, tokenSibling, tokenDescendant:
		return true
	}
	return false
}
