// Package registry manages all discovered components: their current source
// text, the structure extracted from it, and change events broadcast to
// watchers such as the development server's live-reload channel.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/chisel-ui/chisel/internal/types"
)

// ComponentRegistry is a thread-safe store of component records.
type ComponentRegistry struct {
	components map[string]*types.ComponentRecord
	mutex      sync.RWMutex
	watchers   []chan types.ComponentEvent
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[string]*types.ComponentRecord),
	}
}

// Register adds or updates a component and notifies watchers.
func (r *ComponentRegistry) Register(record *types.ComponentRecord) {
	r.mutex.Lock()
	eventType := types.EventTypeAdded
	if _, exists := r.components[record.Name]; exists {
		eventType = types.EventTypeUpdated
	}
	r.components[record.Name] = record
	watchers := append([]chan types.ComponentEvent(nil), r.watchers...)
	r.mutex.Unlock()

	broadcast(watchers, types.ComponentEvent{
		Type:      eventType,
		Component: record,
		Timestamp: time.Now(),
	})
}

// Get retrieves a component by name.
func (r *ComponentRegistry) Get(name string) (*types.ComponentRecord, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	record, exists := r.components[name]
	return record, exists
}

// GetAll returns all registered components sorted by name.
func (r *ComponentRegistry) GetAll() []*types.ComponentRecord {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]*types.ComponentRecord, 0, len(r.components))
	for _, record := range r.components {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Remove removes a component and notifies watchers.
func (r *ComponentRegistry) Remove(name string) {
	r.mutex.Lock()
	record, exists := r.components[name]
	if !exists {
		r.mutex.Unlock()
		return
	}
	delete(r.components, name)
	watchers := append([]chan types.ComponentEvent(nil), r.watchers...)
	r.mutex.Unlock()

	broadcast(watchers, types.ComponentEvent{
		Type:      types.EventTypeRemoved,
		Component: record,
		Timestamp: time.Now(),
	})
}

// RemoveByPath removes every component discovered in the given file.
func (r *ComponentRegistry) RemoveByPath(path string) {
	r.mutex.RLock()
	var names []string
	for name, record := range r.components {
		if record.FilePath == path {
			names = append(names, name)
		}
	}
	r.mutex.RUnlock()
	for _, name := range names {
		r.Remove(name)
	}
}

// Watch returns a channel that receives component events.
func (r *ComponentRegistry) Watch() <-chan types.ComponentEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ch := make(chan types.ComponentEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (r *ComponentRegistry) UnWatch(ch <-chan types.ComponentEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered components.
func (r *ComponentRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.components)
}

// broadcast delivers an event to each watcher without blocking; a full
// channel drops the event for that watcher.
func broadcast(watchers []chan types.ComponentEvent, event types.ComponentEvent) {
	for _, watcher := range watchers {
		select {
		case watcher <- event:
		default:
		}
	}
}
