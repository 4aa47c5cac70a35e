package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisel-ui/chisel/internal/types"
)

func record(name, path string) *types.ComponentRecord {
	return &types.ComponentRecord{
		Name:     name,
		FilePath: path,
		Source:   "const " + name + " = () => <div />;",
		LastMod:  time.Now(),
	}
}

func TestRegister_AddAndUpdate(t *testing.T) {
	reg := NewComponentRegistry()
	events := reg.Watch()
	defer reg.UnWatch(events)

	reg.Register(record("Button", "/c/Button.tsx"))
	assert.Equal(t, 1, reg.Count())

	got, ok := reg.Get("Button")
	require.True(t, ok)
	assert.Equal(t, "/c/Button.tsx", got.FilePath)

	event := <-events
	assert.Equal(t, types.EventTypeAdded, event.Type)

	reg.Register(record("Button", "/c/Button.tsx"))
	event = <-events
	assert.Equal(t, types.EventTypeUpdated, event.Type)
	assert.Equal(t, 1, reg.Count())
}

func TestGetAll_Sorted(t *testing.T) {
	reg := NewComponentRegistry()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		reg.Register(record(name, "/c/"+name+".tsx"))
	}
	all := reg.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].Name)
	assert.Equal(t, "Mid", all[1].Name)
	assert.Equal(t, "Zeta", all[2].Name)
}

func TestRemove(t *testing.T) {
	reg := NewComponentRegistry()
	reg.Register(record("Button", "/c/Button.tsx"))

	events := reg.Watch()
	defer reg.UnWatch(events)

	reg.Remove("Button")
	assert.Equal(t, 0, reg.Count())
	event := <-events
	assert.Equal(t, types.EventTypeRemoved, event.Type)

	// Removing again is a silent no-op.
	reg.Remove("Button")
	assert.Empty(t, events)
}

func TestRemoveByPath(t *testing.T) {
	reg := NewComponentRegistry()
	reg.Register(record("Button", "/c/shared.tsx"))
	reg.Register(record("Badge", "/c/shared.tsx"))
	reg.Register(record("Card", "/c/Card.tsx"))

	reg.RemoveByPath("/c/shared.tsx")
	assert.Equal(t, 1, reg.Count())
	_, ok := reg.Get("Card")
	assert.True(t, ok)
}

func TestWatch_SlowWatcherDoesNotBlock(t *testing.T) {
	reg := NewComponentRegistry()
	_ = reg.Watch() // never drained

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			reg.Register(record(fmt.Sprintf("C%d", i), "/c/x.tsx"))
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("registration blocked on a full watcher channel")
	}
}

func TestUnWatch_ClosesChannel(t *testing.T) {
	reg := NewComponentRegistry()
	events := reg.Watch()
	reg.UnWatch(events)

	_, open := <-events
	assert.False(t, open)

	// Events after UnWatch are not delivered anywhere.
	reg.Register(record("Button", "/c/Button.tsx"))
}
