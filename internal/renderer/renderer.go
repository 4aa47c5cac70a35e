// Package renderer produces the simulated preview: it maps an extracted
// component structure plus the editing session's live property values onto
// a tree of concrete HTML primitives.
//
// This is the fast feedback path: no compilation happens here. Styling is
// split into two buckets per element: component styles go inline on the
// primitive itself (inline wins over class styling by construction), while
// margin-family values go onto an outer non-visual wrapper so externally
// requested margins never fight a component's internal layout. The rendered
// markup is sanitized before it is returned.
package renderer

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/chisel-ui/chisel/internal/styles"
	"github.com/chisel-ui/chisel/internal/types"
)

// primitiveTags is the fixed set of basic tag renderers. Element types
// outside this set render a visible "unknown element" placeholder instead
// of failing.
var primitiveTags = map[string]string{
	"div":      "div",
	"section":  "div",
	"main":     "div",
	"article":  "div",
	"h1":       "h1",
	"h2":       "h2",
	"h3":       "h3",
	"h4":       "h4",
	"p":        "p",
	"span":     "span",
	"a":        "a",
	"img":      "img",
	"button":   "button",
	"input":    "input",
	"textarea": "textarea",
	"label":    "label",
	"ul":       "ul",
	"ol":       "ol",
	"li":       "li",
}

// voidTags render without a closing tag.
var voidTags = map[string]bool{"img": true, "input": true}

// Renderer renders component structures to sanitized preview HTML.
type Renderer struct {
	catalog *styles.Catalog
	policy  *bluemonday.Policy
}

// New creates a renderer over the given catalog; nil selects the default.
func New(catalog *styles.Catalog) *Renderer {
	if catalog == nil {
		catalog = styles.Default()
	}
	return &Renderer{catalog: catalog, policy: previewPolicy()}
}

// previewPolicy admits exactly the markup the renderer itself emits.
func previewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"div", "span", "p", "h1", "h2", "h3", "h4",
		"a", "img", "button", "input", "textarea", "label",
		"ul", "ol", "li", "em", "strong",
	)
	p.AllowAttrs("class", "style", "data-element-id").Globally()
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("placeholder", "type", "value", "disabled", "readonly", "required").OnElements("input", "textarea")
	p.AllowAttrs("disabled", "type").OnElements("button")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.AllowDataURIImages()
	return p
}

// Render renders the whole structure with the session's property values
// applied and returns sanitized HTML.
func (r *Renderer) Render(structure *types.ComponentStructure, values types.PropertyValues) (string, error) {
	if structure == nil {
		return "", fmt.Errorf("render: nil structure")
	}
	var b strings.Builder
	for _, elem := range structure.Elements {
		r.renderElement(&b, elem, values)
	}
	return r.policy.Sanitize(b.String()), nil
}

// ElementStyles holds the style buckets computed for one element.
type ElementStyles struct {
	// Component styles are applied inline on the primitive itself
	Component map[string]string
	// Wrapper styles (margin family) go on an outer non-visual wrapper
	Wrapper map[string]string
	// Classes are the utility tokens passed through to the class list
	Classes []string
}

// ComputeStyles resolves an element's effective property values into style
// buckets and class tokens. Bare numeric values for unit-bearing keys get a
// px suffix; colors and font weights pass through. When a non-zero border
// width arrives without an explicit border color, the color defaults to
// currentColor and the border style is forced solid so the border is
// actually visible.
func (r *Renderer) ComputeStyles(elem *types.ComponentElement, values types.PropertyValues) ElementStyles {
	out := ElementStyles{
		Component: make(map[string]string),
		Wrapper:   make(map[string]string),
	}
	for _, prop := range elem.Properties {
		if prop.Mapping != types.MappingClassGroup {
			continue
		}
		v := values.Lookup(elem.ID, prop)
		if v == "" {
			continue
		}
		if group, ok := r.catalog.Group(prop.Name); ok {
			if member, _ := group.Contains(v); member {
				out.Classes = append(out.Classes, v)
				continue
			}
		}
		// Freeform style override.
		if r.catalog.RequiresUnit(prop.Name) {
			v = styles.EnsureUnit(v)
		}
		if isMarginKey(prop.Name) {
			out.Wrapper[prop.Name] = v
		} else {
			out.Component[prop.Name] = v
		}
	}

	if w, ok := out.Component["borderWidth"]; ok && !styles.IsZeroValue(w) {
		if _, ok := out.Component["borderColor"]; !ok {
			out.Component["borderColor"] = "currentColor"
		}
		out.Component["borderStyle"] = "solid"
	}
	return out
}

func isMarginKey(name string) bool {
	return strings.HasPrefix(name, "margin")
}

// renderElement writes one element and its subtree.
func (r *Renderer) renderElement(b *strings.Builder, elem *types.ComponentElement, values types.PropertyValues) {
	tag, known := primitiveTags[strings.ToLower(elem.Type)]
	if !known {
		r.renderUnknown(b, elem, values)
		return
	}

	st := r.ComputeStyles(elem, values)
	wrapped := len(st.Wrapper) > 0
	if wrapped {
		fmt.Fprintf(b, `<div style="%s">`, styleAttr(st.Wrapper))
	}

	b.WriteByte('<')
	b.WriteString(tag)
	fmt.Fprintf(b, ` data-element-id="%s"`, html.EscapeString(elem.ID))
	if len(st.Classes) > 0 {
		fmt.Fprintf(b, ` class="%s"`, html.EscapeString(strings.Join(st.Classes, " ")))
	}
	if len(st.Component) > 0 {
		fmt.Fprintf(b, ` style="%s"`, styleAttr(st.Component))
	}
	r.writeAttributes(b, elem, values)

	if voidTags[tag] {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
		if text := r.contentText(elem, values); text != "" {
			b.WriteString(html.EscapeString(text))
		}
		for _, child := range elem.Children {
			r.renderElement(b, child, values)
		}
		fmt.Fprintf(b, "</%s>", tag)
	}

	if wrapped {
		b.WriteString("</div>")
	}
}

// renderUnknown draws the visible placeholder for unsupported types.
func (r *Renderer) renderUnknown(b *strings.Builder, elem *types.ComponentElement, values types.PropertyValues) {
	fmt.Fprintf(b,
		`<div data-element-id="%s" style="border: 1px dashed #f87171; color: #b91c1c; padding: 8px; font-size: 12px">unknown element: %s</div>`,
		html.EscapeString(elem.ID), html.EscapeString(elem.Type))
	for _, child := range elem.Children {
		r.renderElement(b, child, values)
	}
}

// writeAttributes emits the element's attribute-mapped properties.
func (r *Renderer) writeAttributes(b *strings.Builder, elem *types.ComponentElement, values types.PropertyValues) {
	for _, prop := range elem.Properties {
		if prop.Mapping != types.MappingAttribute {
			continue
		}
		v := values.Lookup(elem.ID, prop)
		if v == "" {
			continue
		}
		name := strings.ToLower(prop.Name)
		if prop.Type == types.PropertyTypeBoolean {
			if v == "true" {
				fmt.Fprintf(b, " %s", name)
			}
			continue
		}
		fmt.Fprintf(b, ` %s="%s"`, name, html.EscapeString(v))
	}
}

// contentText resolves the element's content-mapped property value.
func (r *Renderer) contentText(elem *types.ComponentElement, values types.PropertyValues) string {
	for _, prop := range elem.Properties {
		if prop.Mapping == types.MappingContent {
			return values.Lookup(elem.ID, prop)
		}
	}
	return ""
}

// styleAttr serializes a style bucket as an inline style attribute value
// with deterministic key order.
func styleAttr(bucket map[string]string) string {
	keys := make([]string, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", cssKey(k), html.EscapeString(bucket[k])))
	}
	return strings.Join(parts, "; ")
}

// cssKey converts a camelCase style key to its kebab-case CSS form.
func cssKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
