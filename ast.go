package parselly

import "strings"

// NodeType is the closed set of AST node kinds (§3).
type NodeType int

const (
	SelectorList NodeType = iota
	Selector
	SimpleSelectorSequence

	TypeSelector
	UniversalSelector
	IDSelector
	ClassSelector
	AttributeSelector
	PseudoClass
	PseudoElement
	PseudoFunction

	Attribute
	Value
	EqualOperator
	IncludesOperator
	DashMatchOperator
	PrefixMatchOperator
	SuffixMatchOperator
	SubstringMatchOperator

	Argument
	AnPlusB

	ChildCombinator
	AdjacentCombinator
	SiblingCombinator
	DescendantCombinator
)

var nodeTypeNames = map[NodeType]string{
	SelectorList:           "selector_list",
	Selector:               "selector",
	SimpleSelectorSequence: "simple_selector_sequence",
	TypeSelector:           "type_selector",
	UniversalSelector:      "universal_selector",
	IDSelector:             "id_selector",
	ClassSelector:          "class_selector",
	AttributeSelector:      "attribute_selector",
	PseudoClass:            "pseudo_class",
	PseudoElement:          "pseudo_element",
	PseudoFunction:         "pseudo_function",
	Attribute:              "attribute",
	Value:                  "value",
	EqualOperator:          "equal_operator",
	IncludesOperator:       "includes_operator",
	DashMatchOperator:      "dashmatch_operator",
	PrefixMatchOperator:    "prefixmatch_operator",
	SuffixMatchOperator:    "suffixmatch_operator",
	SubstringMatchOperator: "substringmatch_operator",
	Argument:               "argument",
	AnPlusB:                "an_plus_b",
	ChildCombinator:        "child_combinator",
	AdjacentCombinator:     "adjacent_combinator",
	SiblingCombinator:      "sibling_combinator",
	DescendantCombinator:   "descendant_combinator",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return "unknown_node"
}

// Node is the uniform AST node described in §3: a type drawn from the
// closed set above, an optional string value, ordered children, a weak
// parent back-reference, and a source position.
//
// Nodes are created only during parsing and normalization. The only legal
// mutators are AddChild and ReplaceChild; both keep the parent pointer
// consistent and invalidate the descendant cache on self and every
// ancestor. Direct manipulation of the children slice is unsupported and
// will desynchronize the cache.
type Node struct {
	Type     NodeType
	Value    string
	Pos      Pos
	Children []*Node
	Parent   *Node

	descendants []*Node
	cacheValid  bool
}

func newNode(t NodeType, value string, pos Pos) *Node {
	return &Node{Type: t, Value: value, Pos: pos}
}

// AddChild appends c to n's children, sets c's parent to n, and
// invalidates the descendant cache of n and every ancestor of n.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
	n.invalidateUpward()
}

// ReplaceChild swaps the child at index i for c, preserving c's position
// in the slot, and invalidates the descendant cache of n and every
// ancestor. Out-of-range indices are a no-op.
func (n *Node) ReplaceChild(i int, c *Node) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children[i].Parent = nil
	n.Children[i] = c
	c.Parent = n
	n.invalidateUpward()
}

func (n *Node) invalidateUpward() {
	for cur := n; cur != nil; cur = cur.Parent {
		cur.cacheValid = false
		cur.descendants = nil
	}
}

// Descendants returns every node reachable through Children, self
// excluded, in pre-order. The result is cached and reused by identity
// until the next AddChild/ReplaceChild touches this node or a descendant.
func (n *Node) Descendants() []*Node {
	if n.cacheValid {
		return n.descendants
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	n.descendants = out
	n.cacheValid = true
	return out
}

// Ancestors returns Parent, grandparent, and so on up to (but excluding)
// the root's nil parent. Not cached.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// Siblings returns Parent.Children with self removed, in order. Returns
// nil for a root node.
func (n *Node) Siblings() []*Node {
	if n.Parent == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Parent.Children {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// ID returns the value of the first id_selector among self and
// descendants, and whether one was found.
func (n *Node) ID() (string, bool) {
	if n.Type == IDSelector {
		return n.Value, true
	}
	for _, d := range n.Descendants() {
		if d.Type == IDSelector {
			return d.Value, true
		}
	}
	return "", false
}

// Classes returns every class_selector value among self and descendants,
// in tree order.
func (n *Node) Classes() []string {
	var out []string
	if n.Type == ClassSelector {
		out = append(out, n.Value)
	}
	for _, d := range n.Descendants() {
		if d.Type == ClassSelector {
			out = append(out, d.Value)
		}
	}
	return out
}

// Attr is a single resolved attribute selector: a bare [name] selector has
// no Operator/Value; an operated [name<op>"value"] selector has both.
type Attr struct {
	Name     string
	Operator string
	Value    string
	HasValue bool
}

// Attributes returns every attribute_selector among self and descendants,
// in tree order, resolved into Attr records.
func (n *Node) Attributes() []Attr {
	var out []Attr
	collect := func(d *Node) {
		if d.Type != AttributeSelector {
			return
		}
		out = append(out, resolveAttr(d))
	}
	if n.Type == AttributeSelector {
		collect(n)
	}
	for _, d := range n.Descendants() {
		collect(d)
	}
	return out
}

func resolveAttr(n *Node) Attr {
	if len(n.Children) == 0 {
		return Attr{Name: n.Value}
	}
	a := Attr{Name: n.Children[0].Value, HasValue: true}
	if len(n.Children) >= 3 {
		a.Operator = operatorLiteral(n.Children[1].Type)
		a.Value = n.Children[2].Value
	}
	return a
}

func operatorLiteral(t NodeType) string {
	switch t {
	case EqualOperator:
		return "="
	case IncludesOperator:
		return "~="
	case DashMatchOperator:
		return "|="
	case PrefixMatchOperator:
		return "^="
	case SuffixMatchOperator:
		return "$="
	case SubstringMatchOperator:
		return "*="
	}
	return ""
}

// PseudoClasses returns the value of every pseudo_class, pseudo_element,
// or pseudo_function among self and descendants, in tree order.
func (n *Node) PseudoClasses() []string {
	var out []string
	isPseudo := func(d *Node) bool {
		return d.Type == PseudoClass || d.Type == PseudoElement || d.Type == PseudoFunction
	}
	if isPseudo(n) {
		out = append(out, n.Value)
	}
	for _, d := range n.Descendants() {
		if isPseudo(d) {
			out = append(out, d.Value)
		}
	}
	return out
}

// IsCompound reports whether n mixes at least two distinct selector kinds
// among {id, class, attribute, pseudo, type}. Two class selectors do not
// count as compound.
func (n *Node) IsCompound() bool {
	kinds := map[string]bool{}
	for _, c := range n.Children {
		switch c.Type {
		case IDSelector:
			kinds["id"] = true
		case ClassSelector:
			kinds["class"] = true
		case AttributeSelector:
			kinds["attribute"] = true
		case PseudoClass, PseudoElement, PseudoFunction:
			kinds["pseudo"] = true
		case TypeSelector, UniversalSelector:
			kinds["type"] = true
		}
	}
	return len(kinds) >= 2
}

// HasTypeSelector reports whether n or any descendant is a type_selector.
func (n *Node) HasTypeSelector() bool {
	if n.Type == TypeSelector {
		return true
	}
	for _, d := range n.Descendants() {
		if d.Type == TypeSelector {
			return true
		}
	}
	return false
}

// ToSelector serializes n back into a canonical selector string (§4.5).
// Round-tripping is canonical, not lossless: original whitespace, quote
// style, and escape encoding are not preserved.
func (n *Node) ToSelector() string {
	var b strings.Builder
	writeSelector(&b, n)
	return b.String()
}

func writeSelector(b *strings.Builder, n *Node) {
	switch n.Type {
	case SelectorList:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			writeSelector(b, c)
		}
	case Selector, SimpleSelectorSequence:
		for _, c := range n.Children {
			writeSelector(b, c)
		}
	case TypeSelector, UniversalSelector:
		b.WriteString(n.Value)
	case IDSelector:
		b.WriteByte('#')
		b.WriteString(n.Value)
	case ClassSelector:
		b.WriteByte('.')
		b.WriteString(n.Value)
	case PseudoClass:
		b.WriteByte(':')
		b.WriteString(n.Value)
	case PseudoElement:
		b.WriteString("::")
		b.WriteString(n.Value)
	case PseudoFunction:
		b.WriteByte(':')
		b.WriteString(n.Value)
		b.WriteByte('(')
		if len(n.Children) == 1 {
			writeSelector(b, n.Children[0])
		}
		b.WriteByte(')')
	case AttributeSelector:
		b.WriteByte('[')
		if len(n.Children) == 0 {
			b.WriteString(n.Value)
		} else {
			b.WriteString(n.Children[0].Value)
			b.WriteString(operatorLiteral(n.Children[1].Type))
			b.WriteByte('"')
			b.WriteString(n.Children[2].Value)
			b.WriteByte('"')
		}
		b.WriteByte(']')
	case Argument:
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	case AnPlusB:
		b.WriteString(n.Value)
	case ChildCombinator:
		b.WriteString(" > ")
	case AdjacentCombinator:
		b.WriteString(" + ")
	case SiblingCombinator:
		b.WriteString(" ~ ")
	case DescendantCombinator:
		b.WriteByte(' ')
	}
}
