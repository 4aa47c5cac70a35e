// Package sandbox compiles and executes edited component source to produce
// an actually rendered preview, with every failure contained at the sandbox
// boundary.
//
// The pipeline strips module-boundary syntax from the preview and the
// edited component source independently, concatenates them into one
// compilation unit, transpiles the JSX into plain calls to the h() runtime
// primitive, and executes the result inside an embedded ECMAScript engine
// whose global scope is exactly the enumerated capability set: the runtime
// primitives, the icon set, the UI component set, and the style-utility
// helpers. Nothing outside that set resolves.
package sandbox

import (
	"context"
	"sync"

	"github.com/dop251/goja"
)

// resourceState tracks the shared compiler resource lifecycle.
type resourceState int

const (
	stateUninitialized resourceState = iota
	stateLoading
	stateReady
	stateFailed
)

func (s resourceState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateLoading:
		return "loading"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resource is the lifecycle-managed compiler resource: the compiled runtime
// program every sandbox execution starts from. Exactly one load is
// attempted per resource; all callers wait on the same in-flight load
// rather than triggering duplicates. A failed load is terminal.
type Resource struct {
	mu    sync.Mutex
	state resourceState
	prog  *goja.Program
	err   error
	done  chan struct{}
}

// NewResource creates an unloaded resource. Loading starts on first Await.
func NewResource() *Resource {
	return &Resource{done: make(chan struct{})}
}

var (
	sharedOnce sync.Once
	shared     *Resource
)

// Shared returns the process-wide resource used by default sandboxes.
func Shared() *Resource {
	sharedOnce.Do(func() {
		shared = NewResource()
	})
	return shared
}

// Await returns the compiled runtime program, starting the one-time load if
// nobody has yet, and blocking until the load settles or the context is
// canceled.
func (r *Resource) Await(ctx context.Context) (*goja.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.state == stateUninitialized {
		r.state = stateLoading
		go r.load()
	}
	done := r.done
	r.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateFailed {
		return nil, r.err
	}
	return r.prog, nil
}

// State reports the resource's current lifecycle state.
func (r *Resource) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.String()
}

// load compiles the runtime capability set once and settles the resource.
func (r *Resource) load() {
	prog, err := goja.Compile("chisel-runtime.js", runtimeSource, true)

	r.mu.Lock()
	if err != nil {
		r.state = stateFailed
		r.err = err
	} else {
		r.state = stateReady
		r.prog = prog
	}
	r.mu.Unlock()
	close(r.done)
}
