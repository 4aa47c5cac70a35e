// Package mutator rewrites component source text in response to a single
// property change.
//
// Every edit is surgical: only the span belonging to the targeted element
// and property changes, and all unrelated text is preserved byte for byte.
// Applying a property's own current value is a content no-op (class token
// spacing aside). Values are assumed pre-validated; a malformed value
// reaching this package is a programming error in the caller.
package mutator

import (
	"fmt"
	"regexp"
	"strings"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/styles"
	"github.com/chisel-ui/chisel/internal/types"
)

// Mutator applies property changes using an injected styling catalog.
type Mutator struct {
	catalog *styles.Catalog
}

// New creates a mutator over the given catalog; nil selects the default.
func New(catalog *styles.Catalog) *Mutator {
	if catalog == nil {
		catalog = styles.Default()
	}
	return &Mutator{catalog: catalog}
}

// ApplyChange writes newValue for the element's property into the source
// text and returns the new source. The element's spans must come from an
// extraction pass over exactly this source string.
func (m *Mutator) ApplyChange(source string, elem *types.ComponentElement, prop types.PropertyDefinition, newValue string) (string, error) {
	if elem == nil {
		return "", chiselerr.NewInternalError("nil_element", "ApplyChange called without an element", nil)
	}
	if elem.Span.TagStart < 0 || elem.Span.TagEnd > len(source) {
		return "", chiselerr.NewInternalError("stale_span",
			fmt.Sprintf("element %s spans do not fit the given source", elem.ID), nil)
	}
	switch prop.Mapping {
	case types.MappingClassGroup:
		return m.applyClassGroup(source, elem, prop, newValue)
	case types.MappingAttribute:
		return m.applyAttribute(source, elem, prop, newValue)
	case types.MappingContent:
		return m.applyContent(source, elem, newValue)
	default:
		return "", chiselerr.NewInternalError("unknown_mapping",
			fmt.Sprintf("property %q has unknown mapping %q", prop.Name, prop.Mapping), nil)
	}
}

// applyClassGroup replaces the element's token for the property's
// class-group. Member tokens of the group go into the class list; raw CSS
// values (anything that is not a member token) go into the element's inline
// style object, with a px suffix added to bare numbers for unit-bearing
// groups.
func (m *Mutator) applyClassGroup(source string, elem *types.ComponentElement, prop types.PropertyDefinition, newValue string) (string, error) {
	group, ok := m.catalog.Group(prop.Name)
	if !ok {
		return "", chiselerr.NewInternalError("unknown_group",
			fmt.Sprintf("no class-group named %q in the catalog", prop.Name), nil)
	}
	if newValue != "" {
		if member, _ := group.Contains(newValue); !member {
			return m.applyInlineStyle(source, elem, prop, newValue)
		}
	}

	attr, hasClass := classSpan(elem)
	if !hasClass {
		if newValue == "" {
			return source, nil
		}
		insert := fmt.Sprintf(" className=%q", newValue)
		return source[:elem.Span.AttrInsert] + insert + source[elem.Span.AttrInsert:], nil
	}
	if !attr.Quoted {
		return "", chiselerr.NewInternalError("dynamic_class",
			"class list is a dynamic expression and cannot be edited", nil)
	}

	tokens := strings.Fields(source[attr.ValueStart:attr.ValueEnd])
	kept := make([]string, 0, len(tokens)+1)
	replaceAt := -1
	for _, token := range tokens {
		if g, ok := m.catalog.Match(token); ok && g.Name == group.Name {
			if replaceAt == -1 {
				replaceAt = len(kept)
			}
			continue
		}
		kept = append(kept, token)
	}
	if newValue != "" {
		if replaceAt == -1 {
			kept = append(kept, newValue)
		} else {
			kept = append(kept[:replaceAt], append([]string{newValue}, kept[replaceAt:]...)...)
		}
	}
	return source[:attr.ValueStart] + strings.Join(kept, " ") + source[attr.ValueEnd:], nil
}

// styleDeclRe matches one "key: value" declaration inside a JSX style
// object literal; built per key.
func styleDeclRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[{,])(\s*` + regexp.QuoteMeta(key) + `\s*:\s*(?:'[^']*'|"[^"]*"|[^,}]+))`)
}

// applyInlineStyle writes a freeform CSS value into the element's style
// attribute object.
func (m *Mutator) applyInlineStyle(source string, elem *types.ComponentElement, prop types.PropertyDefinition, newValue string) (string, error) {
	if m.catalog.RequiresUnit(prop.Name) {
		newValue = styles.EnsureUnit(newValue)
	}
	attr, hasStyle := elem.Span.Attrs["style"]

	if !hasStyle {
		if newValue == "" {
			return source, nil
		}
		insert := fmt.Sprintf(" style={{ %s: '%s' }}", prop.Name, newValue)
		return source[:elem.Span.AttrInsert] + insert + source[elem.Span.AttrInsert:], nil
	}
	if attr.Quoted || attr.ValueStart == -1 {
		return "", chiselerr.NewInternalError("style_not_object",
			"style attribute is not a JSX object literal", nil)
	}

	object := source[attr.ValueStart:attr.ValueEnd]
	re := styleDeclRe(prop.Name)
	switch {
	case newValue == "":
		cleaned := re.ReplaceAllString(object, "$1")
		cleaned = strings.Replace(cleaned, "{,", "{", 1)
		return source[:attr.ValueStart] + cleaned + source[attr.ValueEnd:], nil
	case re.MatchString(object):
		replaced := re.ReplaceAllString(object, fmt.Sprintf("$1 %s: '%s'", prop.Name, newValue))
		return source[:attr.ValueStart] + replaced + source[attr.ValueEnd:], nil
	default:
		open := strings.Index(object, "{")
		if open == -1 {
			return "", chiselerr.NewInternalError("style_not_object",
				"style attribute is not a JSX object literal", nil)
		}
		inserted := object[:open+1] + fmt.Sprintf(" %s: '%s',", prop.Name, newValue) + object[open+1:]
		return source[:attr.ValueStart] + inserted + source[attr.ValueEnd:], nil
	}
}

// applyAttribute replaces, appends, or removes one tag attribute.
func (m *Mutator) applyAttribute(source string, elem *types.ComponentElement, prop types.PropertyDefinition, newValue string) (string, error) {
	attr, exists := elem.Span.Attrs[prop.Name]

	if prop.Type == types.PropertyTypeBoolean {
		switch newValue {
		case "true":
			if exists {
				return source, nil
			}
			return source[:elem.Span.AttrInsert] + " " + prop.Name + source[elem.Span.AttrInsert:], nil
		default:
			if !exists {
				return source, nil
			}
			return removeSpan(source, attr), nil
		}
	}

	if newValue == "" {
		if !exists {
			return source, nil
		}
		return removeSpan(source, attr), nil
	}
	if m.catalog.RequiresUnit(prop.Name) {
		newValue = styles.EnsureUnit(newValue)
	}
	if !exists {
		insert := fmt.Sprintf(" %s=%q", prop.Name, newValue)
		return source[:elem.Span.AttrInsert] + insert + source[elem.Span.AttrInsert:], nil
	}
	if !attr.Quoted {
		if attr.ValueStart == -1 {
			// Bare attribute gaining a value.
			return source[:attr.End] + fmt.Sprintf("=%q", newValue) + source[attr.End:], nil
		}
		return "", chiselerr.NewInternalError("dynamic_attribute",
			fmt.Sprintf("attribute %q is a dynamic expression and cannot be edited", prop.Name), nil)
	}
	return source[:attr.ValueStart] + newValue + source[attr.ValueEnd:], nil
}

// applyContent replaces the element's inline text child, leaving tags,
// attributes, and sibling markup untouched. The original text run's leading
// and trailing whitespace is preserved so surrounding indentation survives.
func (m *Mutator) applyContent(source string, elem *types.ComponentElement, newValue string) (string, error) {
	span := elem.Span
	if span.TextStart == -1 {
		if span.SelfClosing {
			return "", chiselerr.NewInternalError("no_content",
				fmt.Sprintf("element %s is self-closing and has no text content", elem.ID), nil)
		}
		// Empty element: the text goes right after the open tag.
		return source[:span.TagEnd] + newValue + source[span.TagEnd:], nil
	}
	run := source[span.TextStart:span.TextEnd]
	lead := run[:len(run)-len(strings.TrimLeft(run, " \t\n\r"))]
	trail := run[len(strings.TrimRight(run, " \t\n\r")):]
	return source[:span.TextStart] + lead + newValue + trail + source[span.TextEnd:], nil
}

// removeSpan deletes an attribute together with the whitespace run before
// it.
func removeSpan(source string, attr types.AttrSpan) string {
	start := attr.Start
	for start > 0 && (source[start-1] == ' ' || source[start-1] == '\t' || source[start-1] == '\n') {
		start--
	}
	return source[:start] + source[attr.End:]
}

func classSpan(elem *types.ComponentElement) (types.AttrSpan, bool) {
	if a, ok := elem.Span.Attrs["className"]; ok {
		return a, true
	}
	a, ok := elem.Span.Attrs["class"]
	return a, ok
}
