package sandbox

import (
	"regexp"
	"strconv"
	"strings"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/jsx"
)

// Transpile rewrites the JSX in a source fragment into plain calls to the
// h() runtime primitive, leaving all other code untouched. Markup inside
// braced expressions (attribute values, child expressions, callback bodies)
// is transformed recursively, so patterns like items.map(i => <li>{i}</li>)
// come out executable.
func Transpile(src string) (string, error) {
	var out strings.Builder
	out.Grow(len(src) + len(src)/4)

	var sig1, sig2 byte // last two significant bytes copied through
	var word string     // identifier word currently being copied

	i := 0
	for i < len(src) {
		b := src[i]
		switch {
		case b == '"' || b == '\'' || b == '`':
			end, ok := skipStringAt(src, i)
			if !ok {
				return "", chiselerr.NewTranspileError("unterminated_string", "unterminated string literal", nil)
			}
			out.WriteString(src[i:end])
			sig2, sig1 = sig1, b
			word = ""
			i = end
		case b == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			end := skipCommentAt(src, i)
			out.WriteString(src[i:end])
			i = end
		case b == '<' && jsxStarts(sig1, sig2, word) && i+1 < len(src) && (isAlpha(src[i+1]) || src[i+1] == '>'):
			node, err := jsx.Parse(src, i)
			if err != nil {
				return "", chiselerr.NewTranspileError("jsx_syntax", err.Error(), nil)
			}
			if err := emitNode(&out, src, node); err != nil {
				return "", err
			}
			sig2, sig1 = sig1, ')'
			word = ""
			i = node.End
		default:
			out.WriteByte(b)
			if isIdentByte(b) {
				word += string(b)
			} else if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
				word = ""
			}
			if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
				sig2, sig1 = sig1, b
			}
			i++
		}
	}
	return out.String(), nil
}

// jsxStarts reports whether a '<' at the current position opens markup
// rather than a comparison, judged from the preceding significant bytes.
func jsxStarts(sig1, sig2 byte, word string) bool {
	switch word {
	case "return", "default", "case", "yield", "do", "typeof":
		return true
	}
	if word != "" {
		// An identifier directly before '<' means comparison or generics.
		return false
	}
	switch sig1 {
	case 0, '(', '=', ',', '?', ':', '&', '|', '!', ';', '{', '[':
		return true
	case '>':
		return sig2 == '=' // arrow body: => <div/>
	}
	return false
}

var identKeyRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// emitNode writes one markup node as an h() call.
func emitNode(out *strings.Builder, src string, n *jsx.Node) error {
	out.WriteString("h(")
	switch {
	case n.Tag == "":
		out.WriteString("Fragment")
	case n.Tag[0] >= 'A' && n.Tag[0] <= 'Z':
		out.WriteString(n.Tag)
	default:
		out.WriteString(strconv.Quote(n.Tag))
	}

	if len(n.Attrs) == 0 {
		out.WriteString(", null")
	} else {
		out.WriteString(", { ")
		for i, a := range n.Attrs {
			if i > 0 {
				out.WriteString(", ")
			}
			if identKeyRe.MatchString(a.Name) {
				out.WriteString(a.Name)
			} else {
				out.WriteString(strconv.Quote(a.Name))
			}
			out.WriteString(": ")
			switch {
			case a.ValueStart == -1:
				out.WriteString("true")
			case a.Quoted:
				out.WriteString(strconv.Quote(src[a.ValueStart:a.ValueEnd]))
			default:
				inner, err := Transpile(src[a.ValueStart:a.ValueEnd])
				if err != nil {
					return err
				}
				out.WriteString("(")
				out.WriteString(inner)
				out.WriteString(")")
			}
		}
		out.WriteString(" }")
	}

	for _, c := range n.Children {
		switch c.Kind {
		case jsx.ChildElement:
			out.WriteString(", ")
			if err := emitNode(out, src, c.Elem); err != nil {
				return err
			}
		case jsx.ChildText:
			if t := collapseSpace(src[c.Start:c.End]); t != "" {
				out.WriteString(", ")
				out.WriteString(strconv.Quote(t))
			}
		case jsx.ChildExpr:
			body := strings.TrimSpace(src[c.Start:c.End])
			if body == "" || isCommentOnly(body) {
				continue
			}
			inner, err := Transpile(body)
			if err != nil {
				return err
			}
			out.WriteString(", (")
			out.WriteString(inner)
			out.WriteString(")")
		}
	}
	out.WriteString(")")
	return nil
}

// collapseSpace applies JSX text semantics: interior whitespace runs
// collapse to one space, and edge whitespace is dropped only when it spans
// a line break. A boundary space on the same line survives as one space,
// so text abutting an expression ("Hello {name}") keeps its separator.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && !strings.ContainsAny(s, "\n\r") {
			return " "
		}
		return ""
	}
	t := strings.Join(fields, " ")
	lead := s[:len(s)-len(strings.TrimLeft(s, " \t\n\r"))]
	if lead != "" && !strings.ContainsAny(lead, "\n\r") {
		t = " " + t
	}
	trail := s[len(strings.TrimRight(s, " \t\n\r")):]
	if trail != "" && !strings.ContainsAny(trail, "\n\r") {
		t += " "
	}
	return t
}

func isCommentOnly(s string) bool {
	return strings.HasPrefix(s, "/*") && strings.HasSuffix(s, "*/")
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentByte(b byte) bool {
	return isAlpha(b) || b >= '0' && b <= '9' || b == '_' || b == '$'
}

// skipStringAt returns the offset just past the string or template literal
// starting at i.
func skipStringAt(src string, i int) (int, bool) {
	q := src[i]
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case q:
			return j + 1, true
		case '\n':
			if q != '`' {
				return 0, false
			}
		}
		j++
	}
	return 0, false
}

// skipCommentAt returns the offset just past the comment starting at i.
func skipCommentAt(src string, i int) int {
	if src[i+1] == '/' {
		if nl := strings.IndexByte(src[i:], '\n'); nl != -1 {
			return i + nl
		}
		return len(src)
	}
	if end := strings.Index(src[i+2:], "*/"); end != -1 {
		return i + 2 + end + 2
	}
	return len(src)
}
