// Package types provides common type definitions used throughout the Chisel
// editor. This package contains shared types to avoid circular dependencies
// between the extractor, mutator, renderer, and server packages.
package types

import "time"

// ComponentStructure is the extracted, editable model of one component's
// markup: a tree of elements with the properties inferred from their
// existing source. A structure is produced fresh on every extraction pass
// and is never mutated in place; edits go through the source text.
type ComponentStructure struct {
	// Name is the component identifier (e.g., "Button", "PricingCard")
	Name string `json:"name"`
	// Elements is the root-level ordered sequence of markup elements;
	// order is preserved from source order and affects rendering order
	Elements []*ComponentElement `json:"elements"`
}

// ComponentElement is one markup node in a component structure.
type ComponentElement struct {
	// ID identifies the element within one extraction pass. It is derived
	// from structural position (depth and sibling index) and is unique
	// within a structure, but not guaranteed stable across re-extractions
	// of edited source.
	ID string `json:"id"`
	// Type is the element's tag or known primitive name (e.g., "div",
	// "button", "h2"). Unrecognized types still round-trip through the
	// mutator; the renderer shows a placeholder for them.
	Type string `json:"type"`
	// Name is the human-readable display label (e.g., "Button 1")
	Name string `json:"name"`
	// Properties are the editable properties inferred for this element
	Properties []PropertyDefinition `json:"properties"`
	// Children holds nested elements in source order
	Children []*ComponentElement `json:"children,omitempty"`

	// Span locates this element in the source text for surgical edits.
	// Spans are extraction-pass internals and are not serialized.
	Span ElementSpan `json:"-"`
}

// ElementSpan records the byte offsets the mutator needs to rewrite one
// element without touching any surrounding text. All offsets index into the
// exact source string the element was extracted from.
type ElementSpan struct {
	// TagStart is the offset of the element's '<'
	TagStart int
	// TagEnd is the offset just past the open tag's '>' (or '/>')
	TagEnd int
	// AttrInsert is the offset just past the tag name, where a new
	// attribute can be inserted
	AttrInsert int
	// Attrs maps attribute names to their spans within the open tag
	Attrs map[string]AttrSpan
	// TextStart and TextEnd bound the element's inline text child;
	// both are -1 when the element has no inline text
	TextStart int
	TextEnd   int
	// SelfClosing reports whether the open tag ends with '/>'
	SelfClosing bool
}

// AttrSpan locates one attribute inside an element's open tag.
type AttrSpan struct {
	// Start is the offset of the attribute name's first byte; the
	// preceding whitespace run belongs to the attribute for removal
	Start int
	// End is the offset just past the attribute (closing quote or brace,
	// or the name itself for bare boolean attributes)
	End int
	// ValueStart and ValueEnd bound the raw value between the quotes or
	// braces; both are -1 for bare boolean attributes
	ValueStart int
	ValueEnd   int
	// Quoted reports whether the value is a quoted string literal, as
	// opposed to a braced JSX expression
	Quoted bool
}

// PropertyType enumerates the form-control types a property can surface as.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypeSelect   PropertyType = "select"
	PropertyTypeColor    PropertyType = "color"
	PropertyTypeTextarea PropertyType = "textarea"
)

// PropertyMapping describes where in the source an edit to a property is
// written.
type PropertyMapping string

const (
	// MappingClassGroup writes into the element's class list, replacing
	// any token of the same class-group
	MappingClassGroup PropertyMapping = "class-group"
	// MappingAttribute writes into one of the element's tag attributes
	MappingAttribute PropertyMapping = "attribute"
	// MappingContent writes into the element's inline text child
	MappingContent PropertyMapping = "content"
)

// PropertyDefinition describes one editable property of an element.
type PropertyDefinition struct {
	// Name is the property identifier, unique per element
	Name string `json:"name"`
	// Label is the human-readable form label
	Label string `json:"label"`
	// Type selects the form control used to edit the value
	Type PropertyType `json:"type"`
	// Category groups related properties in the editing panel
	// (e.g., "Appearance", "Spacing", "Typography")
	Category string `json:"category,omitempty"`
	// DefaultValue is the value currently present in the source; an
	// absent entry in the value map means this applies
	DefaultValue string `json:"defaultValue,omitempty"`
	// Options enumerates choices for select and color properties.
	// Consumers tolerate free-text values outside this list.
	Options []PropertyOption `json:"options,omitempty"`
	// Min, Max, and Step bound numeric properties (zero values mean unset)
	Min  float64 `json:"min,omitempty"`
	Max  float64 `json:"max,omitempty"`
	Step float64 `json:"step,omitempty"`
	// Description documents the property for the editing UI
	Description string `json:"description,omitempty"`
	// Mapping determines how the mutator writes this property back
	Mapping PropertyMapping `json:"mapping"`
}

// PropertyOption is one enumerated choice for a select property.
type PropertyOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PropertyValues holds the editing session's live overrides, keyed by
// "<elementID>.<propertyName>". An absent key means the property's
// DefaultValue applies. This map is owned by the calling layer; the core
// never retains it between calls.
type PropertyValues map[string]string

// ValueKey builds the value-map key for an element property.
func ValueKey(elementID, propertyName string) string {
	return elementID + "." + propertyName
}

// Lookup returns the effective value for a property: the session override
// when present, the property's default otherwise.
func (pv PropertyValues) Lookup(elementID string, prop PropertyDefinition) string {
	if v, ok := pv[ValueKey(elementID, prop.Name)]; ok {
		return v
	}
	return prop.DefaultValue
}

// Walk visits the element and all of its descendants depth-first in source
// order, stopping early if fn returns false.
func (e *ComponentElement) Walk(fn func(*ComponentElement) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FindElement returns the element with the given id, searching the whole
// structure depth-first.
func (s *ComponentStructure) FindElement(id string) (*ComponentElement, bool) {
	var found *ComponentElement
	for _, root := range s.Elements {
		root.Walk(func(e *ComponentElement) bool {
			if e.ID == id {
				found = e
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// Property returns the element's property definition by name.
func (e *ComponentElement) Property(name string) (PropertyDefinition, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDefinition{}, false
}

// EventType represents the type of component change event.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeUpdated EventType = "updated"
	EventTypeRemoved EventType = "removed"
)

// ComponentRecord is a discovered component as held by the registry:
// its current source text plus the structure extracted from it.
type ComponentRecord struct {
	// Name is the component identifier, unique within the registry
	Name string `json:"name"`
	// FilePath is the source file the component was discovered in;
	// empty for components registered directly over the API
	FilePath string `json:"filePath,omitempty"`
	// Source is the component's current source text, the single source
	// of truth for all edits
	Source string `json:"source"`
	// Structure is the model extracted from Source
	Structure *ComponentStructure `json:"structure,omitempty"`
	// LastMod tracks the last modification time for change detection
	LastMod time.Time `json:"lastMod"`
	// Hash is a CRC32 checksum of Source for cheap change detection
	Hash string `json:"hash"`
}

// ComponentEvent represents a change in the component registry, used for
// live-reload notifications to the development server and editing UI.
type ComponentEvent struct {
	Type      EventType        `json:"type"`
	Component *ComponentRecord `json:"component,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
