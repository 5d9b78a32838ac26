package storefront

import "sync"

const EventOrderStatusUpdated = "orderStatusUpdated"

// Bus is an in-process publish/subscribe hub between views.
type Bus struct {
	mu       sync.Mutex
	handlers map[string]map[int]func(payload any)
	next     int
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]map[int]func(any))}
}

func (b *Bus) On(event string, fn func(payload any)) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	if b.handlers[event] == nil {
		b.handlers[event] = make(map[int]func(any))
	}
	b.handlers[event][id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[event], id)
	}
}

// Emit calls every handler of event synchronously.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	fns := make([]func(any), 0, len(b.handlers[event]))
	for _, fn := range b.handlers[event] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(payload)
	}
}
