package view

import "sync"

// Bus stores handler registrations keyed by event. Views embed it to get
// Bind and use Emit to fire events.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// Bind registers h for ev. Handlers run in registration order.
func (b *Bus) Bind(ev Event, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[Event][]Handler)
	}
	b.handlers[ev] = append(b.handlers[ev], h)
}

// Emit invokes every handler bound to ev and reports whether any ran.
func (b *Bus) Emit(ev Event, p Payload) bool {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[ev]...)
	b.mu.RUnlock()
	for _, h := range hs {
		h(p)
	}
	return len(hs) > 0
}

// Bound reports whether ev has at least one handler.
func (b *Bus) Bound(ev Event) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[ev]) > 0
}
