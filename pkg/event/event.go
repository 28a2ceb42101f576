// Package event is a small in-process event bus. Services fire domain
// events (order placed, status changed, user suspended) and listeners
// react without the services knowing about mail, websockets or logging.
package event

import "sync"

// Handler receives the payload that was fired with the event.
type Handler func(payload any)

// Bus routes fired events to registered handlers.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{listeners: map[string][]Handler{}}
}

var defaultBus = NewBus()

// Listen registers a handler on the default bus.
func Listen(name string, h Handler) { defaultBus.Listen(name, h) }

// Fire dispatches synchronously on the default bus.
func Fire(name string, payload any) { defaultBus.Fire(name, payload) }

// FireAsync dispatches concurrently on the default bus and returns
// without waiting for handlers.
func FireAsync(name string, payload any) { defaultBus.FireAsync(name, payload) }

// Flush drops all listeners on the default bus. Tests use this to start
// from a clean slate.
func Flush() { defaultBus.Flush() }

func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], h)
}

func (b *Bus) Fire(name string, payload any) {
	for _, h := range b.snapshot(name) {
		h(payload)
	}
}

func (b *Bus) FireAsync(name string, payload any) {
	for _, h := range b.snapshot(name) {
		go h(payload)
	}
}

func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = map[string][]Handler{}
}

// snapshot copies the handler slice so handlers registered mid-dispatch
// do not race with the loop.
func (b *Bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.listeners[name]))
	copy(hs, b.listeners[name])
	return hs
}
