package jsx

import (
	"strings"
)

// StripModuleSyntax removes module-boundary syntax from a source fragment so
// that independently authored fragments can be concatenated into one
// compilation unit: import statements, export keywords, and "use client"/
// "use server" directives.
//
// The pass is lexical rather than a naive regex: it tracks template
// literals and block comments across lines, so import-like text inside a
// string or comment is left alone.
func StripModuleSyntax(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	inTemplate := false
	inBlockComment := false
	droppingImport := false

	for _, line := range strings.SplitAfter(src, "\n") {
		trimmed := strings.TrimSpace(line)

		if inTemplate || inBlockComment {
			out.WriteString(line)
			inTemplate, inBlockComment = scanLineState(line, inTemplate, inBlockComment)
			continue
		}

		if droppingImport {
			if importEnds(trimmed) {
				droppingImport = false
			}
			continue
		}

		switch {
		case isDirective(trimmed):
			// Dropped entirely.
		case isImportStart(trimmed):
			if !importEnds(trimmed) {
				droppingImport = true
			}
		case strings.HasPrefix(trimmed, "export default "):
			out.WriteString(strings.Replace(line, "export default ", "", 1))
		case trimmed == "export default":
			// Orphan keyword line before a declaration.
		case strings.HasPrefix(trimmed, "export {"):
			// Re-export statements carry nothing executable.
			if !strings.Contains(trimmed, "}") {
				droppingImport = true
			}
		case strings.HasPrefix(trimmed, "export "):
			out.WriteString(strings.Replace(line, "export ", "", 1))
		default:
			out.WriteString(line)
		}
		inTemplate, inBlockComment = scanLineState(line, inTemplate, inBlockComment)
	}
	return out.String()
}

// isDirective matches "use client" / "use server" directive prologues.
func isDirective(trimmed string) bool {
	for _, d := range []string{"use client", "use server", "use strict"} {
		for _, q := range []string{`"`, `'`} {
			if trimmed == q+d+q || trimmed == q+d+q+";" {
				return true
			}
		}
	}
	return false
}

func isImportStart(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "import") {
		return false
	}
	rest := trimmed[len("import"):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '"' || rest[0] == '\'' || rest[0] == '{'
}

// importEnds reports whether an import (or export-list) statement completes
// on this line: a module specifier string or a closing brace/semicolon.
func importEnds(trimmed string) bool {
	if strings.HasSuffix(trimmed, ";") {
		return true
	}
	if strings.Contains(trimmed, "from") && (strings.Contains(trimmed, `"`) || strings.Contains(trimmed, "'")) {
		return true
	}
	// Side-effect import: import "./styles.css"
	if strings.Count(trimmed, `"`) >= 2 || strings.Count(trimmed, "'") >= 2 {
		return true
	}
	return strings.Contains(trimmed, "}") && !strings.Contains(trimmed, "{")
}

// scanLineState advances the template-literal and block-comment state over
// one line of source.
func scanLineState(line string, inTemplate, inBlockComment bool) (bool, bool) {
	i := 0
	for i < len(line) {
		b := line[i]
		switch {
		case inBlockComment:
			if b == '*' && i+1 < len(line) && line[i+1] == '/' {
				inBlockComment = false
				i++
			}
		case inTemplate:
			if b == '\\' {
				i++
			} else if b == '`' {
				inTemplate = false
			}
		case b == '`':
			inTemplate = true
		case b == '/' && i+1 < len(line) && line[i+1] == '*':
			inBlockComment = true
			i++
		case b == '/' && i+1 < len(line) && line[i+1] == '/':
			return inTemplate, inBlockComment
		case b == '"' || b == '\'':
			// Single-line string: skip to its end.
			q := b
			i++
			for i < len(line) {
				if line[i] == '\\' {
					i++
				} else if line[i] == q {
					break
				}
				i++
			}
		}
		i++
	}
	return inTemplate, inBlockComment
}
