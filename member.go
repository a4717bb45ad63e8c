package promised

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Member is a map from key to a lazily computed value. The getter runs the
// first time a key is read and its result is kept until the key is deleted
// or evicted. Extra arguments for the getter are bound by closure:
//
//	adults := promised.NewMember(func(parent *Node) ([]*Node, error) {
//		return childrenWithAttribute(parent, "adult")
//	})
//
// A Member is not safe for concurrent use.
type Member[K comparable, V any] struct {
	data    map[K]*entry[V]
	evictor evictor[K]
	getter  func(K) (V, error)
	cfg     memberConfig[K, V]
	stats   counters

	// keys whose getter is running
	loading map[K]struct{}
}

type memberConfig[K comparable, V any] struct {
	capacity int
	policy   Policy
	onEvict  func(K, V)
	onHit    func(K, V)
	onMiss   func(K)
}

// MemberOption configures a Member.
type MemberOption[K comparable, V any] func(*memberConfig[K, V])

// WithCapacity bounds the number of entries. Zero, the default, means
// unbounded.
func WithCapacity[K comparable, V any](n int) MemberOption[K, V] {
	return func(c *memberConfig[K, V]) {
		if n >= 0 {
			c.capacity = n
		}
	}
}

// WithPolicy sets the eviction policy used once the capacity is reached.
func WithPolicy[K comparable, V any](p Policy) MemberOption[K, V] {
	return func(c *memberConfig[K, V]) {
		c.policy = p
	}
}

// OnEvict sets a callback invoked when an entry is evicted.
func OnEvict[K comparable, V any](fn func(K, V)) MemberOption[K, V] {
	return func(c *memberConfig[K, V]) {
		c.onEvict = fn
	}
}

// OnHit sets a callback invoked when Get finds a cached value.
func OnHit[K comparable, V any](fn func(K, V)) MemberOption[K, V] {
	return func(c *memberConfig[K, V]) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked when Get has to run the getter.
func OnMiss[K comparable, V any](fn func(K)) MemberOption[K, V] {
	return func(c *memberConfig[K, V]) {
		c.onMiss = fn
	}
}

// NewMember creates a Member that computes missing values with getter.
func NewMember[K comparable, V any](getter func(K) (V, error), opts ...MemberOption[K, V]) *Member[K, V] {
	cfg := memberConfig[K, V]{policy: LRU}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Member[K, V]{
		data:    make(map[K]*entry[V]),
		evictor: newEvictor[K](cfg.policy),
		getter:  getter,
		cfg:     cfg,
		loading: make(map[K]struct{}),
	}
}

// Get returns the value for key, computing and caching it on first access.
// A getter error is returned and nothing is cached.
func (m *Member[K, V]) Get(key K) (V, error) {
	var zero V

	if ent, ok := m.data[key]; ok {
		m.evictor.onAccess(key)
		m.stats.hit()
		if m.cfg.onHit != nil {
			m.cfg.onHit(key, ent.value)
		}
		return ent.value, nil
	}

	m.stats.miss()
	if m.cfg.onMiss != nil {
		m.cfg.onMiss(key)
	}

	if m.getter == nil {
		return zero, fmt.Errorf("%w: member key %v", ErrNoKeeper, key)
	}
	if _, ok := m.loading[key]; ok {
		return zero, fmt.Errorf("%w: member key %v", ErrCycle, key)
	}

	m.loading[key] = struct{}{}
	v, err := m.getter(key)
	delete(m.loading, key)
	if err != nil {
		return zero, fmt.Errorf("promised: member key %v: %w", key, err)
	}

	m.stats.produce()
	m.set(key, v)
	return v, nil
}

// Peek returns the cached value for key without running the getter.
func (m *Member[K, V]) Peek(key K) (V, bool) {
	ent, ok := m.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	return ent.value, true
}

// Set caches value for key, replacing any computed value.
func (m *Member[K, V]) Set(key K, value V) {
	m.set(key, value)
}

func (m *Member[K, V]) set(key K, value V) {
	if ent, ok := m.data[key]; ok {
		ent.value = value
		m.evictor.onInsert(key)
		return
	}

	m.data[key] = &entry[V]{value: value}
	m.evictor.onInsert(key)
	m.evictIfNeeded()
}

func (m *Member[K, V]) evictIfNeeded() {
	if m.cfg.capacity == 0 {
		return
	}
	for len(m.data) > m.cfg.capacity {
		key, ok := m.evictor.evict()
		if !ok {
			return
		}
		ent, ok := m.data[key]
		if !ok {
			continue
		}
		delete(m.data, key)
		m.stats.evict()
		if m.cfg.onEvict != nil {
			m.cfg.onEvict(key, ent.value)
		}
	}
}

// Delete removes key. The next Get recomputes it. It reports whether the
// key was present.
func (m *Member[K, V]) Delete(key K) bool {
	if _, ok := m.data[key]; !ok {
		return false
	}
	delete(m.data, key)
	m.evictor.remove(key)
	m.stats.invalidate()
	return true
}

// Has reports whether a value is cached for key.
func (m *Member[K, V]) Has(key K) bool {
	_, ok := m.data[key]
	return ok
}

// Len returns the number of cached entries.
func (m *Member[K, V]) Len() int {
	return len(m.data)
}

// Keys returns the cached keys in no particular order.
func (m *Member[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(m.data))
}

// Values returns the cached values in no particular order.
func (m *Member[K, V]) Values() []V {
	values := make([]V, 0, len(m.data))
	for _, ent := range m.data {
		values = append(values, ent.value)
	}
	return values
}

// All iterates over the cached entries in no particular order. It does not
// run the getter.
func (m *Member[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, ent := range m.data {
			if !yield(k, ent.value) {
				return
			}
		}
	}
}

// Clear removes every cached entry.
func (m *Member[K, V]) Clear() {
	m.stats.invalidations.Add(int64(len(m.data)))
	m.data = make(map[K]*entry[V])
	m.evictor = newEvictor[K](m.cfg.policy)
}

// Stats returns a snapshot of the member's statistics.
func (m *Member[K, V]) Stats() Snapshot {
	return m.stats.snapshot()
}

func (m *Member[K, V]) String() string {
	values := make(map[K]V, len(m.data))
	for k, ent := range m.data {
		values[k] = ent.value
	}
	return fmt.Sprint(values)
}
