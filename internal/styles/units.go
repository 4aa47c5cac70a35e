package styles

import "strings"

// bareNumber reports whether v is a plain integer or decimal string with no
// unit, sign handling included ("16", "-4", "1.5").
func bareNumber(v string) bool {
	if v == "" {
		return false
	}
	s := v
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" || s == "." {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

// EnsureUnit normalizes a freeform style value for a unit-bearing key: bare
// integers and decimals get a px suffix, everything else (values already
// carrying units, keywords, utility tokens) passes through unchanged.
func EnsureUnit(v string) string {
	if bareNumber(v) {
		return v + "px"
	}
	return v
}

// IsZeroValue reports whether a style value is numerically zero
// ("0", "0px", "0rem"). Used by the border-visibility rule.
func IsZeroValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	i := 0
	seen := false
	for i < len(v) && (v[i] == '0' || v[i] == '.') {
		if v[i] == '0' {
			seen = true
		}
		i++
	}
	if !seen {
		return false
	}
	rest := v[i:]
	switch rest {
	case "", "px", "rem", "em", "%", "pt", "vh", "vw":
		return true
	}
	return false
}
