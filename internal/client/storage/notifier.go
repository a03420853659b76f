package storage

import "sync"

// Change describes a single mutation of the shared store. NewValue is nil
// when the key was deleted. Origin identifies the handle that performed the
// mutation so that a handle can be spared its own changes.
type Change struct {
	Key      string
	NewValue []byte
	Origin   string
}

// Bus fans store mutations out to subscribers. One Bus is shared by all
// store handles of a database.
type Bus struct {
	mu   sync.Mutex
	subs map[int]*Subscription
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Publish delivers c to every subscription whose origin differs from
// c.Origin. A stalled subscriber drops the change rather than blocking
// store writes.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.origin != "" && s.origin == c.Origin {
			continue
		}
		select {
		case s.C <- c:
		default:
		}
	}
}

// Subscribe registers a new subscription. origin may be empty, in which case
// the subscription receives all changes.
func (b *Bus) Subscribe(origin string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Subscription{
		C:      make(chan Change, 16),
		bus:    b,
		id:     b.next,
		origin: origin,
	}
	b.subs[b.next] = s
	b.next++
	return s
}

// Subscription is a scoped listener for store changes. Close detaches it and
// closes C; Close is idempotent and safe to call concurrently with Publish.
type Subscription struct {
	C chan Change

	bus    *Bus
	id     int
	origin string
	once   sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		close(s.C)
		s.bus.mu.Unlock()
	})
}
