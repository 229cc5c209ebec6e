package notify

import gosync "sync"

// EventNotificationsChanged is published after the notification list has
// been written to storage.
const EventNotificationsChanged = "app_notifications_changed"

// Bus delivers named, payload-free signals to listeners in this process.
type Bus struct {
	mu     gosync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for event and returns a function that removes it.
func (b *Bus) Subscribe(event string, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[event] == nil {
		b.subs[event] = make(map[int]func())
	}
	b.subs[event][id] = fn

	var once gosync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[event], id)
		})
	}
}

// Publish calls every listener of event synchronously. Listeners may
// subscribe, unsubscribe or publish from inside the callback.
func (b *Bus) Publish(event string) {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs[event]))
	for _, fn := range b.subs[event] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
