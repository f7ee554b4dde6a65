package parselly

// parser is a grammar driver over a pre-tokenized, pre-processed token
// vector, materialized up front by tokenize()+insertDescendants(). It
// uses a plain slice index for lookahead and backtracking instead of a
// bounded ring buffer, since the whole token stream is already in memory
// by the time parsing starts.
type parser struct {
	tokens []Token
	idx    int
}

func newParser(tokens []Token) *parser {
	return &parser{tokens: tokens}
}

func (p *parser) peek() Token {
	return p.peekN(0)
}

func (p *parser) peekN(n int) Token {
	i := p.idx + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF sentinel
	}
	return p.tokens[i]
}

func (p *parser) next() Token {
	t := p.peek()
	if p.idx < len(p.tokens)-1 {
		p.idx++
	}
	return t
}

// mark and reset support the speculative An+B lookahead (§4.3): an
// attempt that doesn't pan out rewinds the cursor with no side effects.
func (p *parser) mark() int { return p.idx }
func (p *parser) reset(m int) { p.idx = m }

func (p *parser) expectIdent() (Token, error) {
	t := p.next()
	if t.typ != tokenIdent {
		return Token{}, newParseError(t, "identifier")
	}
	return t, nil
}

// parse runs the grammar driver's entry production:
//
//	selector_list := complex_selector (COMMA complex_selector)*
func (p *parser) parse() (*Node, error) {
	list := newNode(SelectorList, "", p.peek().pos)
	for {
		sel, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		list.AddChild(sel)
		t := p.peek()
		if t.typ == tokenEOF {
			break
		}
		if t.typ != tokenComma {
			return nil, newParseError(t, "',' or end of input")
		}
		p.next()
	}
	return list, nil
}

// parseComplexSelector implements:
//
//	complex_selector := compound_selector (combinator compound_selector)*
//
// left-associatively: "a > b + c" builds (((a) > b) + c).
func (p *parser) parseComplexSelector() (*Node, error) {
	first, err := p.parseCompoundSelector()
	if err != nil {
		return nil, err
	}
	return p.continueComplexSelector(first)
}

func (p *parser) continueComplexSelector(left *Node) (*Node, error) {
	for {
		t := p.peek()
		if !t.isCombinator() {
			return left, nil
		}
		combNode, err := p.parseCombinatorNode()
		if err != nil {
			return nil, err
		}
		right, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		sel := newNode(Selector, "", left.Pos)
		sel.AddChild(left)
		sel.AddChild(combNode)
		sel.AddChild(right)
		left = sel
	}
}

func (p *parser) parseCombinatorNode() (*Node, error) {
	t := p.next()
	switch t.typ {
	case tokenChild:
		return newNode(ChildCombinator, ">", t.pos), nil
	case tokenAdjacent:
		return newNode(AdjacentCombinator, "+", t.pos), nil
	case tokenSibling:
		return newNode(SiblingCombinator, "~", t.pos), nil
	case tokenDescendant:
		return newNode(DescendantCombinator, " ", t.pos), nil
	}
	return nil, newParseError(t, "combinator")
}

func canStartSubclass(t tokenType) bool {
	switch t {
	case tokenHash, tokenDot, tokenLBracket, tokenColon:
		return true
	}
	return false
}

// parseCompoundSelector implements:
//
//	compound_selector := (type_selector | subclass_selector) subclass_selector*
func (p *parser) parseCompoundSelector() (*Node, error) {
	t := p.peek()
	if t.typ != tokenIdent && t.typ != tokenStar && !canStartSubclass(t.typ) {
		return nil, newParseError(t, "identifier, '#', '*', '.', '[', ':'")
	}
	seq := newNode(SimpleSelectorSequence, "", t.pos)
	if t.typ == tokenIdent || t.typ == tokenStar {
		p.next()
		if t.typ == tokenStar {
			seq.AddChild(newNode(UniversalSelector, "*", t.pos))
		} else {
			seq.AddChild(newNode(TypeSelector, t.val, t.pos))
		}
	}
	for {
		sub, ok, err := p.trySubclassSelector()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		seq.AddChild(sub)
	}
	if len(seq.Children) == 0 {
		return nil, newParseError(t, "identifier, '#', '*', '.', '[', ':'")
	}
	return seq, nil
}

// trySubclassSelector implements:
//
//	subclass_selector := id_selector | class_selector
//	                   | attribute_selector | pseudo_class_selector | pseudo_element_selector
func (p *parser) trySubclassSelector() (*Node, bool, error) {
	t := p.peek()
	switch t.typ {
	case tokenHash:
		p.next()
		ident, err := p.expectIdent()
		if err != nil {
			return nil, false, err
		}
		return newNode(IDSelector, ident.val, t.pos), true, nil
	case tokenDot:
		p.next()
		ident, err := p.expectIdent()
		if err != nil {
			return nil, false, err
		}
		return newNode(ClassSelector, ident.val, t.pos), true, nil
	case tokenLBracket:
		node, err := p.parseAttributeSelector()
		if err != nil {
			return nil, false, err
		}
		return node, true, nil
	case tokenColon:
		return p.parsePseudo()
	}
	return nil, false, nil
}

// parseAttributeSelector implements:
//
//	attribute_selector := LBRACKET IDENT RBRACKET
//	                    | LBRACKET IDENT attr_matcher (STRING|IDENT) RBRACKET
func (p *parser) parseAttributeSelector() (*Node, error) {
	open := p.next() // '['
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.typ == tokenRBracket {
		p.next()
		return newNode(AttributeSelector, nameTok.val, open.pos), nil
	}

	opType, opLiteral, err := p.parseAttrMatcher()
	if err != nil {
		return nil, err
	}
	valTok := p.next()
	if valTok.typ != tokenString && valTok.typ != tokenIdent {
		return nil, newParseError(valTok, "string or identifier")
	}
	rbTok := p.next()
	if rbTok.typ != tokenRBracket {
		return nil, newParseError(rbTok, "']'")
	}

	sel := newNode(AttributeSelector, "", open.pos)
	sel.AddChild(newNode(Attribute, nameTok.val, nameTok.pos))
	sel.AddChild(newNode(opType, opLiteral, nameTok.pos))
	sel.AddChild(newNode(Value, valTok.val, valTok.pos))
	return sel, nil
}

// attr_matcher := [ '~' | '|' | '^' | '$' | '*' ]? '='
func (p *parser) parseAttrMatcher() (NodeType, string, error) {
	t := p.next()
	switch t.typ {
	case tokenEqual:
		return EqualOperator, "=", nil
	case tokenIncludes:
		return IncludesOperator, "~=", nil
	case tokenDashMatch:
		return DashMatchOperator, "|=", nil
	case tokenPrefixMatch:
		return PrefixMatchOperator, "^=", nil
	case tokenSuffixMatch:
		return SuffixMatchOperator, "$=", nil
	case tokenSubstringMatch:
		return SubstringMatchOperator, "*=", nil
	}
	return 0, "", newParseError(t, "'=', '~=', '|=', '^=', '$=', or '*='")
}

// parsePseudo implements:
//
//	pseudo_element := COLON COLON IDENT
//	pseudo_class    := COLON IDENT | COLON IDENT LPAREN any_value RPAREN
func (p *parser) parsePseudo() (*Node, bool, error) {
	colonTok := p.next() // first ':'
	if p.peek().typ == tokenColon {
		p.next() // second ':'
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, false, err
		}
		return newNode(PseudoElement, nameTok.val, colonTok.pos), true, nil
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, false, err
	}
	if p.peek().typ != tokenLParen {
		return newNode(PseudoClass, nameTok.val, colonTok.pos), true, nil
	}
	p.next() // '('

	fn := newNode(PseudoFunction, nameTok.val, colonTok.pos)
	arg, err := p.parsePseudoArgument(nameTok.val)
	if err != nil {
		return nil, false, err
	}
	fn.AddChild(arg)

	rp := p.next()
	if rp.typ != tokenRParen {
		return nil, false, newParseError(rp, "')'")
	}
	return fn, true, nil
}

// parsePseudoArgument implements:
//
//	any_value := STRING | an_plus_b | relative_selector_list
//
// For the nth-* family, An+B shapes that could never be valid
// compound-selector syntax (anything beginning with NUMBER or MINUS, or a
// multi-token "IDENT + NUMBER"/"IDENT - NUMBER" run) are recognized
// directly, matching the precedence policy in §4.3: these shift to an
// An+B read rather than attempting — and failing — a selector parse. A
// lone IDENT token is deliberately left to the generic selector grammar;
// see the An+B normalizer (anplusb.go) for why.
func (p *parser) parsePseudoArgument(name string) (*Node, error) {
	if isNthPseudoName(name) {
		pos := p.peek().pos
		if value, ok, err := p.tryDirectAnPlusB(); err != nil {
			return nil, err
		} else if ok {
			return newNode(AnPlusB, value, pos), nil
		}
	}

	t := p.peek()
	if t.typ == tokenString {
		p.next()
		return newNode(Argument, t.val, t.pos), nil
	}
	return p.parseRelativeSelectorList()
}

// relative_selector_list := relative_selector (COMMA relative_selector)*
func (p *parser) parseRelativeSelectorList() (*Node, error) {
	list := newNode(SelectorList, "", p.peek().pos)
	for {
		sel, err := p.parseRelativeSelector()
		if err != nil {
			return nil, err
		}
		list.AddChild(sel)
		if p.peek().typ != tokenComma {
			break
		}
		p.next()
	}
	return list, nil
}

// relative_selector := complex_selector | combinator complex_selector
//
// A leading combinator (used by :has()) has no left operand in the
// source text, but every selector node must be ternary (§3). Parselly
// resolves this the way :has() is specified to behave: the missing left
// operand is an implicit anchor, represented as a simple_selector_sequence
// wrapping a universal_selector, so ":has(> img)" has the same shape as
// ":has(* > img)".
func (p *parser) parseRelativeSelector() (*Node, error) {
	t := p.peek()
	if !t.isCombinator() {
		return p.parseComplexSelector()
	}
	combNode, err := p.parseCombinatorNode()
	if err != nil {
		return nil, err
	}
	right, err := p.parseCompoundSelector()
	if err != nil {
		return nil, err
	}
	anchor := newNode(SimpleSelectorSequence, "", t.pos)
	anchor.AddChild(newNode(UniversalSelector, "*", t.pos))
	sel := newNode(Selector, "", t.pos)
	sel.AddChild(anchor)
	sel.AddChild(combNode)
	sel.AddChild(right)
	return p.continueComplexSelector(sel)
}
