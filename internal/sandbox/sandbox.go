package sandbox

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dop251/goja"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/jsx"
)

// Sandbox compiles and executes preview source against the shared compiler
// resource. A sandbox is cheap and stateless between calls: every Compile
// runs in a fresh engine, so a later call naturally supersedes an earlier
// one's result.
type Sandbox struct {
	resource *Resource
	timeout  time.Duration
}

// Option configures a sandbox.
type Option func(*Sandbox)

// WithResource substitutes the compiler resource, mainly for tests that
// need an isolated lifecycle.
func WithResource(r *Resource) Option {
	return func(s *Sandbox) { s.resource = r }
}

// WithTimeout bounds one compile-and-execute call.
func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) { s.timeout = d }
}

// New creates a sandbox over the process-wide compiler resource.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{resource: Shared(), timeout: 2 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a successfully rendered preview.
type Result struct {
	// HTML is the serialized output of the executed preview function
	HTML string
	// FunctionName is the preview function that was located and invoked
	FunctionName string
}

// Compile runs the full sandbox pipeline: strip module syntax from both
// fragments independently, concatenate the edited component source ahead of
// the preview source, transpile, locate the preview function, execute it
// against the enumerated capability scope, and serialize the returned node
// tree. Every failure is returned as a structured error; nothing escapes
// the boundary, panics included.
func (s *Sandbox) Compile(ctx context.Context, previewSource, componentSource string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = chiselerr.NewExecutionError("sandbox_panic",
				fmt.Sprintf("sandbox execution panicked: %v", r), nil)
		}
	}()

	prog, rerr := s.resource.Await(ctx)
	if rerr != nil {
		// A canceled request is the caller's doing, not a compiler failure.
		if errors.Is(rerr, context.Canceled) || errors.Is(rerr, context.DeadlineExceeded) {
			return nil, rerr
		}
		return nil, chiselerr.NewInternalError("compiler_unavailable",
			"JSX compiler resource is not available", rerr)
	}

	preview := jsx.StripModuleSyntax(previewSource)
	combined := preview
	if strings.TrimSpace(componentSource) != "" {
		// The edited component definition goes first so it shadows and
		// supports the preview's usage of it.
		combined = jsx.StripModuleSyntax(componentSource) + "\n" + preview
	}

	name, _, ok := jsx.FindComponent(preview, "")
	if !ok {
		return nil, chiselerr.NewParseError("preview_not_found",
			"no top-level preview function definition found")
	}

	compiled, terr := Transpile(combined)
	if terr != nil {
		return nil, terr
	}

	rt := goja.New()
	if _, perr := rt.RunProgram(prog); perr != nil {
		return nil, chiselerr.NewInternalError("runtime_install",
			"installing the sandbox capability set failed", perr)
	}

	timer := time.AfterFunc(s.timeout, func() { rt.Interrupt("execution timeout") })
	defer timer.Stop()

	if _, eerr := rt.RunString(compiled); eerr != nil {
		return nil, classify(eerr)
	}

	fn, ok := goja.AssertFunction(rt.Get(name))
	if !ok {
		return nil, chiselerr.NewParseError("preview_not_callable",
			fmt.Sprintf("%s is not a callable preview function", name))
	}

	val, cerr := fn(goja.Undefined(), rt.NewObject())
	if cerr != nil {
		return nil, classify(cerr)
	}

	var b strings.Builder
	writeNode(&b, val.Export())
	return &Result{HTML: b.String(), FunctionName: name}, nil
}

// classify converts an engine error into the sandbox error taxonomy.
func classify(err error) error {
	var ierr *goja.InterruptedError
	if errors.As(err, &ierr) {
		return chiselerr.NewExecutionError("timeout", "execution exceeded the sandbox time limit", err)
	}
	var serr *goja.CompilerSyntaxError
	if errors.As(err, &serr) {
		return chiselerr.NewTranspileError("syntax", serr.Error(), err)
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return chiselerr.NewExecutionError("exception", exc.Error(), err)
	}
	return chiselerr.NewExecutionError("runtime", err.Error(), err)
}

// sandboxVoidTags render without closing tags in serialized output.
var sandboxVoidTags = map[string]bool{"img": true, "input": true, "br": true, "hr": true}

// writeNode serializes one exported node value: vnode objects become
// elements, strings and numbers become escaped text, arrays flatten, and
// null/boolean children disappear, matching JSX child semantics.
func writeNode(b *strings.Builder, v any) {
	switch node := v.(type) {
	case nil:
	case string:
		b.WriteString(html.EscapeString(node))
	case bool:
	case int64:
		b.WriteString(strconv.FormatInt(node, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(node, 'f', -1, 64))
	case []any:
		for _, child := range node {
			writeNode(b, child)
		}
	case map[string]any:
		writeVNode(b, node)
	}
}

func writeVNode(b *strings.Builder, node map[string]any) {
	tag, _ := node["tag"].(string)
	props, _ := node["props"].(map[string]any)
	children := node["children"]

	if tag == "" {
		// Fragment: children only.
		writeNode(b, children)
		return
	}

	b.WriteByte('<')
	b.WriteString(tag)
	writeProps(b, props)
	if sandboxVoidTags[tag] {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	writeNode(b, children)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// writeProps emits a vnode's props as attributes in deterministic order.
// Event handlers, function values, and the children prop are dropped.
func writeProps(b *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "children" || strings.HasPrefix(k, "on") {
			continue
		}
		name := k
		switch k {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}
		switch val := props[k].(type) {
		case nil:
		case bool:
			if val {
				fmt.Fprintf(b, " %s", name)
			}
		case string:
			fmt.Fprintf(b, ` %s="%s"`, name, html.EscapeString(val))
		case int64:
			fmt.Fprintf(b, ` %s="%d"`, name, val)
		case float64:
			fmt.Fprintf(b, ` %s="%s"`, name, strconv.FormatFloat(val, 'f', -1, 64))
		case map[string]any:
			if k == "style" {
				fmt.Fprintf(b, ` style="%s"`, html.EscapeString(styleString(val)))
			}
		}
	}
}

// styleString serializes a JS style object into an inline CSS declaration
// list, converting camelCase keys to kebab-case.
func styleString(style map[string]any) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		var v string
		switch sv := style[k].(type) {
		case string:
			v = sv
		case int64:
			v = strconv.FormatInt(sv, 10) + "px"
		case float64:
			v = strconv.FormatFloat(sv, 'f', -1, 64) + "px"
		default:
			continue
		}
		parts = append(parts, kebab(k)+": "+v)
	}
	return strings.Join(parts, "; ")
}

func kebab(k string) string {
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
