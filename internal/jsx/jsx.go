// Package jsx provides a tolerant, span-preserving scanner for the JSX
// markup inside component source files.
//
// The scanner is deliberately not a general-purpose JSX/TSX parser: it
// locates a component function's returned markup and parses that markup
// region into a tree of nodes, recording the byte span of every tag,
// attribute, and text run. Spans into the original source are what make the
// mutator's edits surgical, so the scanner never normalizes or rewrites
// anything it reads.
package jsx

import (
	"fmt"
	"regexp"
	"strings"
)

// ChildKind discriminates the children of a markup node.
type ChildKind int

const (
	// ChildElement is a nested markup element
	ChildElement ChildKind = iota
	// ChildText is a literal text run
	ChildText
	// ChildExpr is a braced JSX expression
	ChildExpr
)

// Node is one markup element with the source spans needed to edit it in
// place.
type Node struct {
	// Tag is the element's tag name; empty for a fragment ("<>")
	Tag string
	// TagStart is the offset of '<'; TagEnd is just past the open tag's
	// '>' or '/>'
	TagStart int
	TagEnd   int
	// NameEnd is the offset just past the tag name, where an attribute
	// can be inserted
	NameEnd int
	// End is the offset just past the element, including its close tag
	End int
	// SelfClosing reports an open tag ending in '/>'
	SelfClosing bool
	// Attrs holds the open tag's attributes in source order
	Attrs []Attr
	// Children holds nested elements, text runs, and expressions in
	// source order
	Children []Child
}

// Attr is one attribute inside an open tag.
type Attr struct {
	Name string
	// Start is the offset of the attribute name's first byte; End is
	// just past the attribute
	Start int
	End   int
	// ValueStart and ValueEnd bound the raw value between quotes or
	// braces; both -1 for bare boolean attributes
	ValueStart int
	ValueEnd   int
	// Quoted is true for string-literal values, false for braced
	// expressions and bare attributes
	Quoted bool
}

// Child is one ordered child of a node.
type Child struct {
	Kind ChildKind
	// Elem is set for ChildElement
	Elem *Node
	// Start and End bound text runs and expression bodies
	Start int
	End   int
}

// Attr returns the node's attribute by name.
func (n *Node) Attr(name string) (Attr, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// ElementChildren returns only the nested element children.
func (n *Node) ElementChildren() []*Node {
	var elems []*Node
	for _, c := range n.Children {
		if c.Kind == ChildElement {
			elems = append(elems, c.Elem)
		}
	}
	return elems
}

// InlineText returns the span of the node's single non-whitespace text run
// when the node has no element children, which is the only shape the
// content mapping edits. Returns ok=false otherwise.
func (n *Node) InlineText(src string) (start, end int, ok bool) {
	start, end = -1, -1
	for _, c := range n.Children {
		switch c.Kind {
		case ChildElement:
			return -1, -1, false
		case ChildText:
			if strings.TrimSpace(src[c.Start:c.End]) == "" {
				continue
			}
			if start != -1 {
				return -1, -1, false
			}
			start, end = c.Start, c.End
		}
	}
	return start, end, start != -1
}

var (
	funcDeclRe  = regexp.MustCompile(`(?m)(?:^|\s)(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_]\w*)\s*\(`)
	arrowDeclRe = regexp.MustCompile(`(?m)(?:^|\s)(?:export\s+)?(?:const|let|var)\s+([A-Za-z_]\w*)(?:\s*:\s*[\w.<>\[\]]+)?\s*=\s*(?:async\s*)?(?:\([^)]*\)|[A-Za-z_]\w*)\s*=>`)
	returnRe    = regexp.MustCompile(`return\s*\(?\s*<`)
)

// FindComponent locates a component function definition in the source. When
// name is non-empty only that function matches; otherwise the first
// capitalized function or arrow definition wins. It returns the function's
// name and the offset just past the match, from which the returned markup
// is searched.
func FindComponent(src, name string) (string, int, bool) {
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for _, m := range funcDeclRe.FindAllStringSubmatchIndex(src, -1) {
		hits = append(hits, hit{src[m[2]:m[3]], m[1]})
	}
	for _, m := range arrowDeclRe.FindAllStringSubmatchIndex(src, -1) {
		hits = append(hits, hit{src[m[2]:m[3]], m[1]})
	}
	best := hit{pos: -1}
	for _, h := range hits {
		if name != "" {
			if h.name == name && (best.pos == -1 || h.pos < best.pos) {
				best = h
			}
			continue
		}
		if h.name[0] >= 'A' && h.name[0] <= 'Z' && (best.pos == -1 || h.pos < best.pos) {
			best = h
		}
	}
	if best.pos == -1 {
		return "", 0, false
	}
	return best.name, best.pos, true
}

// FindMarkup locates the '<' opening the markup returned by the component,
// scanning forward from the given offset. Arrow bodies that are bare JSX
// expressions ("=> (<div .../>)" or "=> <div/>") are handled as well as
// explicit return statements.
func FindMarkup(src string, from int) (int, bool) {
	if m := returnRe.FindStringIndex(src[from:]); m != nil {
		return from + m[1] - 1, true
	}
	// Arrow expression body: from sits just past '=>', so the body's first
	// significant byte must open a tag.
	i := from
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r', '(':
			i++
		case '<':
			return i, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// Parse parses one element (or fragment) starting at offset pos, which must
// point at '<'.
func Parse(src string, pos int) (*Node, error) {
	p := &parser{src: src, pos: pos}
	node, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	return node, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(format string, args ...any) error {
	line := 1 + strings.Count(p.src[:min(p.pos, len(p.src))], "\n")
	return fmt.Errorf("markup line %d: %s", line, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isNameByte(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return true
	case !first && (b >= '0' && b <= '9' || b == '-' || b == '.' || b == ':'):
		return true
	}
	return false
}

func (p *parser) readName() string {
	start := p.pos
	for !p.eof() && isNameByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// skipBraced consumes a balanced {...} block, tracking string and template
// literals so braces inside them do not count. p.pos must point at '{'.
// Returns the inner content span.
func (p *parser) skipBraced() (int, int, error) {
	open := p.pos
	depth := 0
	for !p.eof() {
		switch b := p.src[p.pos]; b {
		case '{':
			depth++
			p.pos++
		case '}':
			depth--
			p.pos++
			if depth == 0 {
				return open + 1, p.pos - 1, nil
			}
		case '"', '\'', '`':
			if err := p.skipString(b); err != nil {
				return 0, 0, err
			}
		case '/':
			p.skipComment()
		default:
			p.pos++
		}
	}
	p.pos = open
	return 0, 0, p.errf("unterminated expression")
}

// skipComment consumes a // or /* */ comment when p.pos points at '/',
// advancing by one byte otherwise.
func (p *parser) skipComment() {
	if p.pos+1 < len(p.src) {
		switch p.src[p.pos+1] {
		case '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
			return
		case '*':
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end == -1 {
				p.pos = len(p.src)
				return
			}
			p.pos += 2 + end + 2
			return
		}
	}
	p.pos++
}

// skipString consumes a string or template literal starting at the opening
// quote byte q.
func (p *parser) skipString(q byte) error {
	start := p.pos
	p.pos++ // opening quote
	for !p.eof() {
		b := p.src[p.pos]
		if b == '\\' {
			p.pos += 2
			continue
		}
		if b == q {
			p.pos++
			return nil
		}
		p.pos++
	}
	p.pos = start
	return p.errf("unterminated string literal")
}

func (p *parser) parseElement() (*Node, error) {
	if p.eof() || p.src[p.pos] != '<' {
		return nil, p.errf("expected '<'")
	}
	node := &Node{TagStart: p.pos}
	p.pos++
	node.Tag = p.readName()
	node.NameEnd = p.pos

	// Fragment "<>...</>".
	if node.Tag == "" {
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '>' {
			return nil, p.errf("malformed fragment")
		}
		p.pos++
		node.TagEnd = p.pos
		if err := p.parseChildren(node); err != nil {
			return nil, err
		}
		return node, nil
	}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated open tag <%s", node.Tag)
		}
		switch b := p.src[p.pos]; {
		case b == '>':
			p.pos++
			node.TagEnd = p.pos
			if err := p.parseChildren(node); err != nil {
				return nil, err
			}
			return node, nil
		case b == '/':
			if p.pos+1 >= len(p.src) || p.src[p.pos+1] != '>' {
				return nil, p.errf("malformed self-closing tag <%s", node.Tag)
			}
			p.pos += 2
			node.TagEnd = p.pos
			node.End = p.pos
			node.SelfClosing = true
			return node, nil
		case b == '{':
			// Spread attribute {...props}: consumed but not modeled.
			if _, _, err := p.skipBraced(); err != nil {
				return nil, err
			}
		case isNameByte(b, true):
			attr, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			node.Attrs = append(node.Attrs, attr)
		default:
			return nil, p.errf("unexpected %q in open tag <%s", b, node.Tag)
		}
	}
}

func (p *parser) parseAttr() (Attr, error) {
	attr := Attr{Start: p.pos, ValueStart: -1, ValueEnd: -1}
	attr.Name = p.readName()
	if attr.Name == "" {
		return attr, p.errf("expected attribute name")
	}
	if p.eof() || p.src[p.pos] != '=' {
		// Bare boolean attribute.
		attr.End = p.pos
		return attr, nil
	}
	p.pos++
	if p.eof() {
		return attr, p.errf("attribute %s missing value", attr.Name)
	}
	switch b := p.src[p.pos]; b {
	case '"', '\'':
		attr.Quoted = true
		attr.ValueStart = p.pos + 1
		if err := p.skipString(b); err != nil {
			return attr, err
		}
		attr.ValueEnd = p.pos - 1
	case '{':
		vs, ve, err := p.skipBraced()
		if err != nil {
			return attr, err
		}
		attr.ValueStart, attr.ValueEnd = vs, ve
	default:
		return attr, p.errf("attribute %s has unquoted value", attr.Name)
	}
	attr.End = p.pos
	return attr, nil
}

func (p *parser) parseChildren(node *Node) error {
	for {
		if p.eof() {
			return p.errf("missing close tag for <%s>", node.Tag)
		}
		switch p.src[p.pos] {
		case '<':
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '/' {
				p.pos += 2
				name := p.readName()
				p.skipSpace()
				if p.eof() || p.src[p.pos] != '>' {
					return p.errf("malformed close tag </%s>", name)
				}
				p.pos++
				if name != node.Tag {
					return p.errf("close tag </%s> does not match <%s>", name, node.Tag)
				}
				node.End = p.pos
				return nil
			}
			child, err := p.parseElement()
			if err != nil {
				return err
			}
			node.Children = append(node.Children, Child{
				Kind:  ChildElement,
				Elem:  child,
				Start: child.TagStart,
				End:   child.End,
			})
		case '{':
			vs, ve, err := p.skipBraced()
			if err != nil {
				return err
			}
			node.Children = append(node.Children, Child{Kind: ChildExpr, Start: vs, End: ve})
		default:
			start := p.pos
			for !p.eof() && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
				p.pos++
			}
			node.Children = append(node.Children, Child{Kind: ChildText, Start: start, End: p.pos})
		}
	}
}
