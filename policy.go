package promised

import "container/list"

// Policy decides which Member entry is dropped when the capacity is
// reached.
type Policy int

const (
	// LRU evicts the least recently used entry.
	LRU Policy = iota
	// LFU evicts the least frequently used entry, the least recent one
	// among equals.
	LFU
	// FIFO evicts the entry cached first.
	FIFO
)

func (p Policy) String() string {
	switch p {
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// evictor tracks eviction order for Member keys.
type evictor[K comparable] interface {
	onAccess(key K)
	onInsert(key K)
	evict() (K, bool)
	remove(key K)
}

// Compile-time interface assertions.
var (
	_ evictor[string] = (*queueEvictor[string])(nil)
	_ evictor[string] = (*lfuEvictor[string])(nil)
)

// queueEvictor evicts from the back of a list. With touch set, reads and
// rewrites move a key to the front (LRU); otherwise insertion order is
// kept (FIFO).
type queueEvictor[K comparable] struct {
	order *list.List
	items map[K]*list.Element
	touch bool
}

func newQueueEvictor[K comparable](touch bool) *queueEvictor[K] {
	return &queueEvictor[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
		touch: touch,
	}
}

func (e *queueEvictor[K]) onAccess(key K) {
	if !e.touch {
		return
	}
	if elem, ok := e.items[key]; ok {
		e.order.MoveToFront(elem)
	}
}

func (e *queueEvictor[K]) onInsert(key K) {
	if _, ok := e.items[key]; ok {
		e.onAccess(key)
		return
	}
	e.items[key] = e.order.PushFront(key)
}

func (e *queueEvictor[K]) evict() (K, bool) {
	elem := e.order.Back()
	if elem == nil {
		var zero K
		return zero, false
	}
	key := e.order.Remove(elem).(K)
	delete(e.items, key)
	return key, true
}

func (e *queueEvictor[K]) remove(key K) {
	if elem, ok := e.items[key]; ok {
		e.order.Remove(elem)
		delete(e.items, key)
	}
}

// lfuEvictor keeps one recency list per access count.
type lfuEvictor[K comparable] struct {
	buckets map[int64]*list.List
	items   map[K]*lfuItem[K]
	minFreq int64
}

type lfuItem[K comparable] struct {
	freq int64
	elem *list.Element
}

func newLFUEvictor[K comparable]() *lfuEvictor[K] {
	return &lfuEvictor[K]{
		buckets: make(map[int64]*list.List),
		items:   make(map[K]*lfuItem[K]),
	}
}

func (e *lfuEvictor[K]) push(key K, freq int64) *list.Element {
	bucket, ok := e.buckets[freq]
	if !ok {
		bucket = list.New()
		e.buckets[freq] = bucket
	}
	return bucket.PushFront(key)
}

// unbucket removes item from its bucket and reports whether the bucket
// became empty.
func (e *lfuEvictor[K]) unbucket(item *lfuItem[K]) bool {
	bucket := e.buckets[item.freq]
	bucket.Remove(item.elem)
	if bucket.Len() > 0 {
		return false
	}
	delete(e.buckets, item.freq)
	return true
}

func (e *lfuEvictor[K]) onAccess(key K) {
	item, ok := e.items[key]
	if !ok {
		return
	}
	if e.unbucket(item) && e.minFreq == item.freq {
		e.minFreq++
	}
	item.freq++
	item.elem = e.push(key, item.freq)
}

func (e *lfuEvictor[K]) onInsert(key K) {
	if _, ok := e.items[key]; ok {
		e.onAccess(key)
		return
	}
	e.items[key] = &lfuItem[K]{freq: 1, elem: e.push(key, 1)}
	e.minFreq = 1
}

func (e *lfuEvictor[K]) evict() (K, bool) {
	var zero K
	if len(e.items) == 0 {
		return zero, false
	}

	bucket, ok := e.buckets[e.minFreq]
	if !ok {
		// minFreq is stale after a remove; find the real minimum.
		for freq, b := range e.buckets {
			if !ok || freq < e.minFreq {
				e.minFreq, bucket, ok = freq, b, true
			}
		}
	}

	key := bucket.Back().Value.(K)
	e.unbucket(e.items[key])
	delete(e.items, key)
	return key, true
}

func (e *lfuEvictor[K]) remove(key K) {
	item, ok := e.items[key]
	if !ok {
		return
	}
	e.unbucket(item)
	delete(e.items, key)
}

func newEvictor[K comparable](p Policy) evictor[K] {
	switch p {
	case LFU:
		return newLFUEvictor[K]()
	case FIFO:
		return newQueueEvictor[K](false)
	default:
		return newQueueEvictor[K](true)
	}
}
