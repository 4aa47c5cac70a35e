// Package styles holds the styling catalog: the class-group table, the
// recognized-attribute table, and the unit-requiring style-key table used by
// the extractor, mutator, and renderer.
//
// The catalog is configuration data, not hardwired logic. A compiled-in
// default covers the common utility classes; a YAML overlay can extend or
// replace it without touching any algorithm that consumes it.
package styles

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chisel-ui/chisel/internal/types"
)

// ClassGroup is a named set of mutually exclusive utility-class tokens
// representing one semantic visual property. At most one token of a group
// may be present in an element's class list; the mutator maintains this.
type ClassGroup struct {
	// Name is the property name the group surfaces as (e.g., "backgroundColor")
	Name string `yaml:"name"`
	// Label is the form label shown in the editing panel
	Label string `yaml:"label"`
	// Category groups the property in the panel (Appearance, Spacing, ...)
	Category string `yaml:"category"`
	// Tokens enumerates exact member tokens. Exact members are matched
	// before any prefix so that, e.g., "text-base" binds to fontSize and
	// not to the "text-" color prefix.
	Tokens []string `yaml:"tokens,omitempty"`
	// Prefixes lists token prefixes that mark membership (e.g., "bg-")
	Prefixes []string `yaml:"prefixes,omitempty"`
	// Type overrides the surfaced property type; defaults to select
	Type types.PropertyType `yaml:"type,omitempty"`
	// Unit marks the group as unit-bearing: bare numeric values written
	// to a freeform style destination get a px suffix
	Unit bool `yaml:"unit,omitempty"`
}

// Contains reports whether token belongs to this group, and whether the
// match was exact (a listed token) rather than by prefix.
func (g *ClassGroup) Contains(token string) (member, exact bool) {
	for _, t := range g.Tokens {
		if token == t {
			return true, true
		}
	}
	for _, p := range g.Prefixes {
		if strings.HasPrefix(token, p) {
			return true, false
		}
	}
	return false, false
}

// Attribute describes one recognized tag attribute and how it surfaces as
// an editable property.
type Attribute struct {
	Name    string             `yaml:"name"`
	Label   string             `yaml:"label"`
	Type    types.PropertyType `yaml:"type"`
	Options []string           `yaml:"options,omitempty"`
	// Tags restricts the attribute to specific tags; empty means any
	Tags []string `yaml:"tags,omitempty"`
}

// AppliesTo reports whether the attribute is recognized on the given tag.
func (a *Attribute) AppliesTo(tag string) bool {
	if len(a.Tags) == 0 {
		return true
	}
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Catalog bundles the injected styling tables.
type Catalog struct {
	Groups     []ClassGroup `yaml:"groups"`
	Attributes []Attribute  `yaml:"attributes"`
	// UnitKeys lists style keys whose bare numeric values require a px
	// suffix (padding, fontSize, ...)
	UnitKeys []string `yaml:"unitKeys"`
}

// Match resolves the class-group a utility token belongs to. Exact token
// members win over prefix members across the whole catalog, so overlapping
// prefixes (fontSize tokens under the textColor "text-" prefix) resolve
// deterministically.
func (c *Catalog) Match(token string) (*ClassGroup, bool) {
	var prefixHit *ClassGroup
	for i := range c.Groups {
		g := &c.Groups[i]
		member, exact := g.Contains(token)
		if !member {
			continue
		}
		if exact {
			return g, true
		}
		if prefixHit == nil {
			prefixHit = g
		}
	}
	return prefixHit, prefixHit != nil
}

// Group returns the class-group with the given property name.
func (c *Catalog) Group(name string) (*ClassGroup, bool) {
	for i := range c.Groups {
		if c.Groups[i].Name == name {
			return &c.Groups[i], true
		}
	}
	return nil, false
}

// Attribute returns the recognized-attribute entry for name.
func (c *Catalog) Attribute(name string) (*Attribute, bool) {
	for i := range c.Attributes {
		if strings.EqualFold(c.Attributes[i].Name, name) {
			return &c.Attributes[i], true
		}
	}
	return nil, false
}

// RequiresUnit reports whether the style key takes a length and therefore
// needs a unit suffix on bare numeric values.
func (c *Catalog) RequiresUnit(styleKey string) bool {
	for _, k := range c.UnitKeys {
		if strings.EqualFold(k, styleKey) {
			return true
		}
	}
	return false
}

// Definition builds the PropertyDefinition a class-group surfaces as, with
// the given current token as the default value. Used by the extractor for
// tokens found in source and by callers offering a baseline property set
// for groups not yet present.
func (c *Catalog) Definition(g *ClassGroup, current string) types.PropertyDefinition {
	ptype := g.Type
	if ptype == "" {
		ptype = types.PropertyTypeSelect
	}
	def := types.PropertyDefinition{
		Name:         g.Name,
		Label:        g.Label,
		Type:         ptype,
		Category:     g.Category,
		DefaultValue: current,
		Mapping:      types.MappingClassGroup,
	}
	for _, t := range g.Tokens {
		def.Options = append(def.Options, types.PropertyOption{Label: t, Value: t})
	}
	return def
}

// ResolveProperty finds the definition to use when changing a property on
// an element: the one the extractor surfaced if present, otherwise a
// baseline definition derived from the catalog so that a class-group or
// recognized attribute can be introduced on an element that lacks it.
func (c *Catalog) ResolveProperty(elem *types.ComponentElement, name string) (types.PropertyDefinition, bool) {
	if prop, ok := elem.Property(name); ok {
		return prop, true
	}
	if group, ok := c.Group(name); ok {
		return c.Definition(group, ""), true
	}
	if attr, ok := c.Attribute(name); ok && attr.AppliesTo(elem.Type) {
		def := types.PropertyDefinition{
			Name:     attr.Name,
			Label:    attr.Label,
			Type:     attr.Type,
			Category: "Attributes",
			Mapping:  types.MappingAttribute,
		}
		for _, o := range attr.Options {
			def.Options = append(def.Options, types.PropertyOption{Label: o, Value: o})
		}
		return def, true
	}
	return types.PropertyDefinition{}, false
}

// LoadFile reads a YAML catalog overlay and merges it over the defaults:
// overlay groups and attributes replace same-named defaults, new entries
// are appended, and a non-empty unitKeys list replaces the default list.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return Merge(Default(), &overlay), nil
}

// Merge overlays one catalog over a base without mutating either.
func Merge(base, overlay *Catalog) *Catalog {
	merged := &Catalog{
		Groups:     append([]ClassGroup(nil), base.Groups...),
		Attributes: append([]Attribute(nil), base.Attributes...),
		UnitKeys:   append([]string(nil), base.UnitKeys...),
	}
	for _, g := range overlay.Groups {
		replaced := false
		for i := range merged.Groups {
			if merged.Groups[i].Name == g.Name {
				merged.Groups[i] = g
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Groups = append(merged.Groups, g)
		}
	}
	for _, a := range overlay.Attributes {
		replaced := false
		for i := range merged.Attributes {
			if strings.EqualFold(merged.Attributes[i].Name, a.Name) {
				merged.Attributes[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Attributes = append(merged.Attributes, a)
		}
	}
	if len(overlay.UnitKeys) > 0 {
		merged.UnitKeys = append([]string(nil), overlay.UnitKeys...)
	}
	return merged
}
