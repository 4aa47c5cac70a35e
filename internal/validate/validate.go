// Package validate checks proposed property values before they reach the
// mutator. A rejected value is local and non-fatal: the caller keeps the
// previous value and decides whether to surface the rejection. The mutator
// assumes every value it receives passed this check.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/types"
)

var (
	bareNumberRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)
	lengthRe     = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:px|rem|em|%|pt|vh|vw|ch|ex)$`)
	hexColorRe   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	colorFnRe    = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[\d.,%\s/-]+\s*\)$`)
	keywordRe    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z-]*$`)
	utilityRe    = regexp.MustCompile(`^-?[a-z][a-zA-Z0-9/._:\[\]-]*$`)
)

// Change validates a proposed value for a property. Empty values are always
// valid: they clear the property (the mutator removes the token or
// attribute).
func Change(prop types.PropertyDefinition, value string) error {
	if value == "" {
		return nil
	}
	switch prop.Mapping {
	case types.MappingClassGroup:
		return classGroupValue(prop, value)
	case types.MappingAttribute:
		return attributeValue(prop, value)
	case types.MappingContent:
		return contentValue(value)
	default:
		return chiselerr.NewValidationError("unknown_mapping",
			fmt.Sprintf("property %q has unknown mapping %q", prop.Name, prop.Mapping))
	}
}

// classGroupValue accepts utility-class tokens and raw CSS values (lengths,
// colors, keywords). Anything else is a malformed CSS value.
func classGroupValue(prop types.PropertyDefinition, value string) error {
	// Color functions may carry spaces after their commas, so they are
	// matched before the single-token guard.
	if colorFnRe.MatchString(value) {
		return nil
	}
	if strings.ContainsAny(value, " \t\n\"'<>") {
		return reject(prop.Name, value, "must be a single token")
	}
	switch {
	case utilityRe.MatchString(value),
		bareNumberRe.MatchString(value),
		lengthRe.MatchString(value),
		hexColorRe.MatchString(value),
		keywordRe.MatchString(value):
		return nil
	}
	return reject(prop.Name, value, "not a recognized class token or CSS value")
}

// attributeValue rejects anything that would escape the quoted attribute
// syntax the mutator writes.
func attributeValue(prop types.PropertyDefinition, value string) error {
	if strings.ContainsAny(value, "\"<>\x00\n\r") {
		return reject(prop.Name, value, "attribute values may not contain quotes, angle brackets, or newlines")
	}
	if prop.Type == types.PropertyTypeBoolean && value != "true" && value != "false" {
		return reject(prop.Name, value, "boolean attributes take true or false")
	}
	if prop.Type == types.PropertyTypeSelect && len(prop.Options) > 0 {
		// Free-text fallback is allowed for select properties, but it
		// must still be a plausible token.
		if strings.TrimSpace(value) == "" {
			return reject(prop.Name, value, "empty select value")
		}
	}
	return nil
}

// contentValue rejects text that would open or close markup.
func contentValue(value string) error {
	if strings.ContainsAny(value, "<>{}\x00") {
		return reject("text", value, "text content may not contain markup delimiters")
	}
	return nil
}

func reject(name, value, reason string) error {
	return chiselerr.NewValidationError("invalid_value",
		fmt.Sprintf("value %q for %s rejected: %s", value, name, reason))
}
