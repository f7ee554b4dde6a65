// Package parselly parses CSS Selectors Level 3/4 selector strings into an
// AST: type, universal, class, ID, and attribute selectors, pseudo-classes,
// pseudo-elements, functional pseudo-classes (including is(), where(),
// has(), not(), and the nth-* family), combinators, and selector lists.
//
// Parselly produces a tree; it does not evaluate a selector against a
// document. Matching against a DOM is out of scope.
package parselly

// Parse scans and parses input into a selector_list AST root. It returns a
// *LexError if the scanner meets a character no rule accepts, or a
// *ParseError if the grammar driver's expected-token set does not contain
// the lookahead.
func Parse(input string) (*Node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	tokens = insertDescendants(tokens)

	p := newParser(tokens)
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	normalize(root)
	return root, nil
}
