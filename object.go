package promised

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-set/v3"
)

// Host is implemented by any type that embeds Object.
type Host interface {
	promisedObject() *Object
}

// Object holds the slot values of one host instance. Embed it in a struct
// and use pointers to that struct as the host type of a Property:
//
//	type Square struct {
//		promised.Object
//	}
//
// The zero value is ready to use. An Object must not be copied after first
// use, and is not safe for concurrent use.
type Object struct {
	cells  map[*slot]*cell
	remote map[*slot]*set.Set[chainEdge] // chain edges owned by other objects
	cfg    *objectConfig
	stats  counters
}

func (o *Object) promisedObject() *Object {
	return o
}

type objectConfig struct {
	logger       hclog.Logger
	onProduce    func(name string)
	onInvalidate func(name string)
}

var nullLogger = hclog.NewNullLogger()

// ObjectOption configures an Object.
type ObjectOption func(*objectConfig)

// WithLogger sets the logger used to trace productions and cascades.
func WithLogger(l hclog.Logger) ObjectOption {
	return func(c *objectConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnProduce sets a callback invoked after a keeper produces a slot.
func OnProduce(fn func(name string)) ObjectOption {
	return func(c *objectConfig) {
		c.onProduce = fn
	}
}

// OnInvalidate sets a callback invoked when a present slot is cleared.
func OnInvalidate(fn func(name string)) ObjectOption {
	return func(c *objectConfig) {
		c.onInvalidate = fn
	}
}

// Configure applies opts to the object. Later calls override earlier ones
// option by option.
func (o *Object) Configure(opts ...ObjectOption) {
	if o.cfg == nil {
		o.cfg = &objectConfig{logger: nullLogger}
	}
	for _, opt := range opts {
		opt(o.cfg)
	}
}

func (o *Object) log() hclog.Logger {
	if o.cfg == nil {
		return nullLogger
	}
	return o.cfg.logger
}

// Stats returns a snapshot of the object's slot statistics.
func (o *Object) Stats() Snapshot {
	return o.stats.snapshot()
}

// Len returns the number of present slots.
func (o *Object) Len() int {
	n := 0
	for _, c := range o.cells {
		if c.present {
			n++
		}
	}
	return n
}

// Reset clears every present slot, cascading to dependents on this and
// other objects.
func (o *Object) Reset() {
	present := make([]*slot, 0, len(o.cells))
	for s, c := range o.cells {
		if c.present {
			present = append(present, s)
		}
	}
	for _, s := range present {
		o.cascade(s, false)
	}
}

func (o *Object) cell(s *slot) *cell {
	if o.cells == nil {
		o.cells = make(map[*slot]*cell)
	}
	c, ok := o.cells[s]
	if !ok {
		c = &cell{}
		o.cells[s] = c
	}
	return c
}

func (o *Object) lookup(s *slot) (any, bool) {
	c, ok := o.cells[s]
	if !ok || !c.present {
		return nil, false
	}
	return c.value, true
}

// store replaces the value of s, moving chain edges from the old value to
// the new one.
func (o *Object) store(s *slot, v any) {
	c := o.cell(s)
	if c.present {
		o.unlink(s, c.value)
	}
	c.value = v
	c.present = true
	o.link(s, v)
}

// clear removes the value of s. It reports whether a value was present.
func (o *Object) clear(s *slot) bool {
	c, ok := o.cells[s]
	if !ok || !c.present {
		return false
	}
	o.unlink(s, c.value)
	c.value = nil
	c.present = false

	o.stats.invalidate()
	o.log().Trace("invalidated slot", "slot", s.name)
	if o.cfg != nil && o.cfg.onInvalidate != nil {
		o.cfg.onInvalidate(s.name)
	}
	return true
}

func (o *Object) produced(s *slot) {
	o.stats.produce()
	o.log().Trace("produced slot", "slot", s.name)
	if o.cfg != nil && o.cfg.onProduce != nil {
		o.cfg.onProduce(s.name)
	}
}
