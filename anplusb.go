package parselly

import (
	"regexp"
	"strings"
)

var nthPseudoNames = map[string]bool{
	"nth-child":        true,
	"nth-last-child":   true,
	"nth-of-type":      true,
	"nth-last-of-type": true,
	"nth-col":          true,
	"nth-last-col":     true,
}

func isNthPseudoName(name string) bool {
	return nthPseudoNames[name]
}

// anPlusBPattern is the closed-form An+B grammar (§4.3): "even", "odd", a
// signed multiple of n with an optional trailing offset, or a bare signed
// integer. The trailing bare-integer branch is deliberately broadened to
// accept a sign, beyond the unsigned "\d+" the §3 node-value invariant
// names; see DESIGN.md, "Open Question resolutions", for why.
var anPlusBPattern = regexp.MustCompile(`^(?:even|odd|[+-]?\d*n(?:[+-]\d+)?|[+-]?n(?:[+-]\d+)?|[+-]?\d+)$`)

// anPlusBFusedSuffix matches the offset half of an identifier like "n-1" or
// "n+3" once the leading "n" has been stripped: the lexer's identifier rule
// happily continues through a "-" (it's a legal ident-continuation
// character), so "2n-1" tokenizes as NUMBER("2") IDENT("n-1") rather than
// NUMBER("2") IDENT("n") MINUS NUMBER("1"). "+" never fuses this way since
// it isn't an ident-continuation character.
var anPlusBFusedSuffix = regexp.MustCompile(`^[+-]\d+$`)

// tryDirectAnPlusB attempts to read an An+B expression directly out of the
// token stream, covering every shape that could never also parse as a
// valid selector: a NUMBER or MINUS token starting the argument, and the
// two-token "n"/"-n" plus signed-offset continuation. It reports ok=false
// (with the cursor rewound) when the lookahead doesn't match any of these
// shapes, leaving the lone-bare-IDENT case ("n", "-n", "even", "odd" with
// no offset) to the generic selector grammar and the normalizer.
func (p *parser) tryDirectAnPlusB() (string, bool, error) {
	m := p.mark()
	t := p.peek()

	switch t.typ {
	case tokenNumber:
		p.next()
		var sb strings.Builder
		sb.WriteString(t.val)
		p.consumeAnPlusBN(&sb)
		return p.finishAnPlusB(sb.String(), m)

	case tokenMinus:
		p.next()
		numTok := p.peek()
		if numTok.typ != tokenNumber {
			p.reset(m)
			return "", false, nil
		}
		p.next()
		var sb strings.Builder
		sb.WriteString("-")
		sb.WriteString(numTok.val)
		p.consumeAnPlusBN(&sb)
		return p.finishAnPlusB(sb.String(), m)

	case tokenIdent:
		if t.val != "n" && t.val != "-n" {
			return "", false, nil
		}
		save := p.mark()
		p.next()
		sign, ok := signOf(p.peek())
		if !ok {
			p.reset(save)
			return "", false, nil
		}
		numTok := p.peekN(1)
		if numTok.typ != tokenNumber {
			p.reset(save)
			return "", false, nil
		}
		p.next()
		p.next()
		return p.finishAnPlusB(t.val+sign+numTok.val, m)
	}

	return "", false, nil
}

// consumeAnPlusBN consumes the "n" (and any offset) that follows a leading
// NUMBER or MINUS NUMBER, appending it to sb. It handles both the split
// form ("n" as its own IDENT, offset as a separate ADJACENT/MINUS NUMBER
// pair) and the fused form ("n-1" lexed as a single IDENT). A bare "n"
// with no offset is also consumed here so "2n" and "-2n" resolve fully.
func (p *parser) consumeAnPlusBN(sb *strings.Builder) {
	n := p.peek()
	if n.typ != tokenIdent {
		return
	}
	if n.val == "n" {
		p.next()
		sb.WriteString("n")
		p.consumeAnPlusBTail(sb)
		return
	}
	if strings.HasPrefix(n.val, "n") && anPlusBFusedSuffix.MatchString(n.val[1:]) {
		p.next()
		sb.WriteString(n.val)
	}
}

func (p *parser) consumeAnPlusBTail(sb *strings.Builder) {
	sign, ok := signOf(p.peek())
	if !ok {
		return
	}
	numTok := p.peekN(1)
	if numTok.typ != tokenNumber {
		return
	}
	p.next()
	p.next()
	sb.WriteString(sign)
	sb.WriteString(numTok.val)
}

func signOf(t Token) (string, bool) {
	switch t.typ {
	case tokenAdjacent:
		return "+", true
	case tokenMinus:
		return "-", true
	}
	return "", false
}

func (p *parser) finishAnPlusB(value string, m int) (string, bool, error) {
	if !anPlusBPattern.MatchString(value) {
		t := p.tokens[m]
		return "", false, newParseError(t, "An+B expression")
	}
	return value, true, nil
}

// normalize walks the completed tree looking for pseudo_function nodes
// whose argument degenerated to a single bare identifier that the direct
// An+B reader deliberately skipped (see tryDirectAnPlusB): a relative
// selector list holding exactly one type_selector, produced when "n",
// "-n", "n-2", "-n-2", "even", or "odd" parsed as an ordinary compound
// selector. When that identifier matches the An+B grammar, the subtree is
// collapsed into an an_plus_b node.
func normalize(n *Node) {
	if n.Type == PseudoFunction && isNthPseudoName(n.Value) && len(n.Children) == 1 {
		if anb, ok := degenerateAnPlusB(n.Children[0]); ok {
			n.ReplaceChild(0, anb)
		}
	}
	for _, c := range n.Children {
		normalize(c)
	}
}

func degenerateAnPlusB(list *Node) (*Node, bool) {
	if list.Type != SelectorList || len(list.Children) != 1 {
		return nil, false
	}
	seq := list.Children[0]
	if seq.Type != SimpleSelectorSequence || len(seq.Children) != 1 {
		return nil, false
	}
	ts := seq.Children[0]
	if ts.Type != TypeSelector || !anPlusBPattern.MatchString(ts.Value) {
		return nil, false
	}
	return newNode(AnPlusB, ts.Value, ts.Pos), true
}
