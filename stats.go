package promised

import "sync/atomic"

// counters holds the statistics of an Object or a Member. Callers read them
// through Snapshot.
type counters struct {
	hits          atomic.Int64
	misses        atomic.Int64
	productions   atomic.Int64
	invalidations atomic.Int64
	evictions     atomic.Int64
}

func (s *counters) hit()        { s.hits.Add(1) }
func (s *counters) miss()       { s.misses.Add(1) }
func (s *counters) produce()    { s.productions.Add(1) }
func (s *counters) invalidate() { s.invalidations.Add(1) }
func (s *counters) evict()      { s.evictions.Add(1) }

// Snapshot is a point-in-time copy of an Object's or a Member's statistics.
type Snapshot struct {
	// Hits counts reads served from a present value.
	Hits int64
	// Misses counts reads that found the value absent.
	Misses int64
	// Productions counts successful keeper or getter runs.
	Productions int64
	// Invalidations counts present values cleared by deletion, Clear, or a
	// cascade.
	Invalidations int64
	// Evictions counts entries a Member dropped to stay within capacity.
	Evictions int64
}

// HitRate returns the hit rate as a value between 0 and 1.
// Returns 0 if there have been no reads.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s *counters) snapshot() Snapshot {
	return Snapshot{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Productions:   s.productions.Load(),
		Invalidations: s.invalidations.Load(),
		Evictions:     s.evictions.Load(),
	}
}
