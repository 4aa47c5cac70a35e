// Package extractor derives an editable component model from raw component
// source text.
//
// Extraction is a pure function of the source: it locates the component's
// returned markup, walks it, and synthesizes editable property definitions
// for every element from three disjoint sources: utility-class tokens
// matched against the class-group catalog, recognized tag attributes, and
// inline text on leaf nodes. The resulting structure drives the property
// panel; edits flow back through the mutator, never through the structure.
package extractor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/jsx"
	"github.com/chisel-ui/chisel/internal/styles"
	"github.com/chisel-ui/chisel/internal/types"
)

// Extractor builds component structures using an injected styling catalog.
type Extractor struct {
	catalog *styles.Catalog
	titler  cases.Caser
}

// New creates an extractor over the given catalog; a nil catalog selects
// the compiled-in default.
func New(catalog *styles.Catalog) *Extractor {
	if catalog == nil {
		catalog = styles.Default()
	}
	return &Extractor{
		catalog: catalog,
		titler:  cases.Title(language.English),
	}
}

// Extract parses component source text into a fresh ComponentStructure.
// rootName selects which function definition to extract; empty means the
// first capitalized one. Element ids are deterministic for one extraction
// pass (path of sibling indexes) but are not guaranteed stable across
// passes once the source has been edited.
func (e *Extractor) Extract(source, rootName string) (*types.ComponentStructure, error) {
	name, pos, ok := jsx.FindComponent(source, rootName)
	if !ok {
		return nil, chiselerr.NewParseError("component_not_found",
			"no component function definition found").WithComponent(rootName)
	}
	markupAt, ok := jsx.FindMarkup(source, pos)
	if !ok {
		return nil, chiselerr.NewParseError("markup_not_found",
			"component returns no renderable markup").WithComponent(name)
	}
	root, err := jsx.Parse(source, markupAt)
	if err != nil {
		return nil, chiselerr.NewParseError("markup_invalid", err.Error()).WithComponent(name)
	}

	structure := &types.ComponentStructure{Name: name}
	if root.Tag == "" {
		// Fragment root: its element children are the root sequence.
		for i, child := range root.ElementChildren() {
			structure.Elements = append(structure.Elements, e.convert(source, child, fmt.Sprintf("el-%d", i), i))
		}
	} else {
		structure.Elements = append(structure.Elements, e.convert(source, root, "el-0", 0))
	}
	return structure, nil
}

// convert maps one markup node and its subtree into the element model.
func (e *Extractor) convert(source string, node *jsx.Node, id string, siblingIndex int) *types.ComponentElement {
	elem := &types.ComponentElement{
		ID:   id,
		Type: node.Tag,
		Name: fmt.Sprintf("%s %d", e.titler.String(node.Tag), siblingIndex+1),
		Span: spanOf(node),
	}
	if start, end, ok := node.InlineText(source); ok {
		elem.Span.TextStart, elem.Span.TextEnd = start, end
	}
	elem.Properties = e.synthesize(source, node)
	for i, child := range node.ElementChildren() {
		elem.Children = append(elem.Children, e.convert(source, child, fmt.Sprintf("%s-%d", id, i), i))
	}
	return elem
}

// synthesize builds the element's property definitions from its class list,
// its recognized attributes, and its inline text.
func (e *Extractor) synthesize(source string, node *jsx.Node) []types.PropertyDefinition {
	var props []types.PropertyDefinition
	seen := make(map[string]bool)

	// 1. Class-group derived: every existing utility-class token matched
	// against the catalog. The first token of a group wins; the mutator
	// keeps groups at one token anyway.
	if attr, ok := classAttr(node); ok && attr.Quoted {
		for _, token := range strings.Fields(source[attr.ValueStart:attr.ValueEnd]) {
			group, ok := e.catalog.Match(token)
			if !ok || seen[group.Name] {
				continue
			}
			seen[group.Name] = true
			props = append(props, e.catalog.Definition(group, token))
		}
	}

	// 2. Attribute derived: recognized attributes with literal values.
	for _, attr := range node.Attrs {
		if isClassAttrName(attr.Name) || strings.HasPrefix(attr.Name, "on") {
			continue
		}
		spec, ok := e.catalog.Attribute(attr.Name)
		if !ok || !spec.AppliesTo(node.Tag) || seen[spec.Name] {
			continue
		}
		def := types.PropertyDefinition{
			Name:     spec.Name,
			Label:    spec.Label,
			Type:     spec.Type,
			Category: "Attributes",
			Mapping:  types.MappingAttribute,
		}
		for _, o := range spec.Options {
			def.Options = append(def.Options, types.PropertyOption{Label: o, Value: o})
		}
		switch {
		case attr.ValueStart == -1:
			// Bare boolean attribute present means true.
			def.DefaultValue = "true"
		case attr.Quoted:
			def.DefaultValue = source[attr.ValueStart:attr.ValueEnd]
		default:
			// Expression-valued attributes round-trip but are not
			// editable as literals; surface without a default.
		}
		seen[spec.Name] = true
		props = append(props, def)
	}

	// 3. Content derived: leaf nodes with inline text get exactly one
	// text property.
	if start, end, ok := node.InlineText(source); ok {
		text := strings.TrimSpace(source[start:end])
		ptype := types.PropertyTypeString
		if len(text) > 40 {
			ptype = types.PropertyTypeTextarea
		}
		props = append(props, types.PropertyDefinition{
			Name:         "text",
			Label:        "Text",
			Type:         ptype,
			Category:     "Content",
			DefaultValue: text,
			Mapping:      types.MappingContent,
		})
	}
	return props
}

// spanOf copies a markup node's offsets into the mutator-facing span model.
func spanOf(node *jsx.Node) types.ElementSpan {
	span := types.ElementSpan{
		TagStart:    node.TagStart,
		TagEnd:      node.TagEnd,
		AttrInsert:  node.NameEnd,
		SelfClosing: node.SelfClosing,
		TextStart:   -1,
		TextEnd:     -1,
		Attrs:       make(map[string]types.AttrSpan, len(node.Attrs)),
	}
	for _, a := range node.Attrs {
		span.Attrs[a.Name] = types.AttrSpan{
			Start:      a.Start,
			End:        a.End,
			ValueStart: a.ValueStart,
			ValueEnd:   a.ValueEnd,
			Quoted:     a.Quoted,
		}
	}
	return span
}

// classAttr returns the element's class-list attribute under either its
// JSX or plain HTML name.
func classAttr(node *jsx.Node) (jsx.Attr, bool) {
	if a, ok := node.Attr("className"); ok {
		return a, true
	}
	return node.Attr("class")
}

func isClassAttrName(name string) bool {
	return name == "className" || name == "class"
}

// GroupProperties groups a property list by category. Properties without a
// category land under "uncategorized". The input order is preserved within
// each group.
func GroupProperties(props []types.PropertyDefinition) map[string][]types.PropertyDefinition {
	grouped := make(map[string][]types.PropertyDefinition)
	for _, p := range props {
		category := p.Category
		if category == "" {
			category = "uncategorized"
		}
		grouped[category] = append(grouped[category], p)
	}
	return grouped
}
