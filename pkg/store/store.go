// Package store implements Glint's observable key-value store.
//
// A Store is an explicit instance with no package-level state: construct
// one per application (or several, independently, in tests). Subscribers
// are notified after the write completes, outside the store's lock, in
// subscription order.
package store

import (
	"sort"
	"sync"

	interrors "github.com/glint-dev/glint/internal/errors"
)

// Func is a subscriber callback. It receives the key that changed and its
// new value (nil for a deletion).
type Func func(key string, value any)

// subscriber pairs a callback with its identity for unsubscription.
type subscriber struct {
	id uint64
	fn Func
}

// Store is an observable key-value map with optional persistence.
type Store struct {
	mu     sync.RWMutex
	data   map[string]any
	subs   map[string][]subscriber // key -> subscribers; "" means all keys
	nextID uint64

	persister Persister
}

// Option configures a Store.
type Option func(*Store)

// WithPersister attaches a persistence backend. The previous snapshot is
// loaded during New.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// New creates a Store. When a persister is attached, the previous
// snapshot is loaded; a load failure is returned as an E401 error with
// the store still usable (empty).
func New(opts ...Option) (*Store, error) {
	s := &Store{
		data: make(map[string]any),
		subs: make(map[string][]subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persister != nil {
		snapshot, err := s.persister.Load()
		if err != nil {
			return s, interrors.FromError(err, "E401")
		}
		for k, v := range snapshot {
			s.data[k] = v
		}
	}
	return s, nil
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the value for key as a string, or "" when absent or
// not a string.
func (s *Store) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// Set writes a value and notifies subscribers of that key.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.data[key] = value
	subs := s.subscribersFor(key)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(key, value)
	}
}

// Delete removes a key and notifies subscribers with a nil value. It is a
// no-op for an absent key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	if _, ok := s.data[key]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.data, key)
	subs := s.subscribersFor(key)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(key, nil)
	}
}

// Keys returns all present keys, sorted for deterministic iteration.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a shallow copy of the current contents.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Subscribe registers fn for changes to key and returns an unsubscribe
// function. Unsubscribing twice is harmless.
func (s *Store) Subscribe(key string, fn Func) func() {
	return s.subscribe(key, fn)
}

// SubscribeAll registers fn for changes to every key.
func (s *Store) SubscribeAll(fn Func) func() {
	return s.subscribe("", fn)
}

func (s *Store) subscribe(key string, fn Func) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[key] = append(s.subs[key], subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.subs[key]
		for i, sub := range list {
			if sub.id == id {
				s.subs[key] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// subscribersFor copies the notify list for key while the lock is held,
// so callbacks run without it.
func (s *Store) subscribersFor(key string) []subscriber {
	keyed := s.subs[key]
	all := s.subs[""]
	out := make([]subscriber, 0, len(keyed)+len(all))
	out = append(out, keyed...)
	out = append(out, all...)
	return out
}

// Flush writes the current snapshot through the persister, if any.
func (s *Store) Flush() error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(s.Snapshot()); err != nil {
		return interrors.FromError(err, "E402")
	}
	return nil
}
