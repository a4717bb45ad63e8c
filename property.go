package promised

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// Slot is implemented by every Property whose host type is H. It lets
// dependency declarations and Warm mix properties of different value types.
type Slot[H any] interface {
	descriptor() *slot
	produce(h H) error
}

// Property is a lazily produced, cached value attached to instances of H.
// A Property is a descriptor: create it once and use it with every
// instance.
type Property[H Host, T any] struct {
	slot   *slot
	keeper func(H) (T, error)
	cfg    config[H, T]
}

// Compile-time interface assertion.
var _ Slot[*Object] = (*Property[*Object, int])(nil)

// New creates a plain property. Its keeper runs on the first Get of each
// instance. Set and Delete fail unless a setter or deleter is configured,
// and neither clears dependents unless WithLinkOnSet or WithLinkOnDelete is
// given.
func New[H Host, T any](name string, keeper func(H) (T, error), opts ...Option[H, T]) *Property[H, T] {
	return newProperty(name, keeper, config[H, T]{}, opts)
}

// Linked creates a property whose Set stores the value and whose Delete
// clears it, both clearing every dependent.
func Linked[H Host, T any](name string, keeper func(H) (T, error), opts ...Option[H, T]) *Property[H, T] {
	return newProperty(name, keeper, config[H, T]{
		storeOnSet:    true,
		clearOnDelete: true,
		linkOnSet:     true,
		linkOnDelete:  true,
	}, opts)
}

func newProperty[H Host, T any](name string, keeper func(H) (T, error), cfg config[H, T], opts []Option[H, T]) *Property[H, T] {
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Property[H, T]{
		slot:   &slot{name: name},
		keeper: keeper,
		cfg:    cfg,
	}
}

// Name returns the property name.
func (p *Property[H, T]) Name() string {
	return p.slot.name
}

// Doc returns the description set with WithDoc.
func (p *Property[H, T]) Doc() string {
	return p.cfg.doc
}

func (p *Property[H, T]) String() string {
	return fmt.Sprintf("<promised slot %s>", p.slot.name)
}

func (p *Property[H, T]) descriptor() *slot {
	return p.slot
}

func (p *Property[H, T]) produce(h H) error {
	_, err := p.Get(h)
	return err
}

// Get returns the cached value, running the keeper first if the slot is
// absent. A keeper error leaves the slot absent.
func (p *Property[H, T]) Get(h H) (T, error) {
	var zero T
	o := h.promisedObject()

	if v, ok := o.lookup(p.slot); ok {
		o.stats.hit()
		t, _ := v.(T)
		return t, nil
	}
	o.stats.miss()

	if p.keeper == nil && p.cfg.filler == nil {
		return zero, fmt.Errorf("%w: %s", ErrNoKeeper, p.slot.name)
	}

	c := o.cell(p.slot)
	if c.producing {
		return zero, fmt.Errorf("%w: %s", ErrCycle, p.slot.name)
	}
	c.producing = true
	defer func() { c.producing = false }()

	if p.cfg.filler != nil {
		if err := p.cfg.filler(h); err != nil {
			return zero, fmt.Errorf("promised: keep %s: %w", p.slot.name, err)
		}
		v, ok := o.lookup(p.slot)
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrBrokenPromise, p.slot.name)
		}
		o.produced(p.slot)
		t, _ := v.(T)
		return t, nil
	}

	v, err := p.keeper(h)
	if err != nil {
		return zero, fmt.Errorf("promised: keep %s: %w", p.slot.name, err)
	}
	o.store(p.slot, v)
	o.produced(p.slot)
	return v, nil
}

// Peek returns the cached value without producing it.
func (p *Property[H, T]) Peek(h H) (T, bool) {
	v, ok := h.promisedObject().lookup(p.slot)
	if !ok {
		var zero T
		return zero, false
	}
	t, _ := v.(T)
	return t, true
}

// Has reports whether the slot is present.
func (p *Property[H, T]) Has(h H) bool {
	_, ok := h.promisedObject().lookup(p.slot)
	return ok
}

// Set writes v through the setter. Unless the property is non-linking on
// set, every dependent is cleared first; the slot itself is never cleared
// by its own cascade.
func (p *Property[H, T]) Set(h H, v T) error {
	if !p.cfg.writable() {
		return fmt.Errorf("%w: %s", ErrNoSetter, p.slot.name)
	}
	if p.cfg.setter != nil {
		var err error
		if v, err = p.cfg.setter(h, v); err != nil {
			return fmt.Errorf("promised: set %s: %w", p.slot.name, err)
		}
	}

	o := h.promisedObject()
	if p.cfg.linkOnSet {
		o.cascade(p.slot, true)
	}
	o.store(p.slot, v)
	return nil
}

// Delete clears the slot after running the deleter. Unless the property is
// non-linking on delete, every dependent is cleared too. Deleting an absent
// slot is not an error.
func (p *Property[H, T]) Delete(h H) error {
	if !p.cfg.deletable() {
		return fmt.Errorf("%w: %s", ErrNoDeleter, p.slot.name)
	}

	o := h.promisedObject()
	if p.cfg.deleter != nil {
		if v, ok := p.Peek(h); ok {
			if err := p.cfg.deleter(h, v); err != nil {
				return fmt.Errorf("promised: delete %s: %w", p.slot.name, err)
			}
		}
	}

	if p.cfg.linkOnDelete {
		o.cascade(p.slot, false)
	} else {
		o.clear(p.slot)
	}
	return nil
}

// Store writes v without running the setter or clearing dependents. Chain
// edges follow the new value. Keepers and fillers use it to populate
// sibling slots.
func (p *Property[H, T]) Store(h H, v T) {
	h.promisedObject().store(p.slot, v)
}

// Invalidate clears the slot and every dependent, regardless of the
// setter and deleter configuration.
func (p *Property[H, T]) Invalidate(h H) {
	h.promisedObject().cascade(p.slot, false)
}

// Links declares that clearing p on an instance clears each of dsts on the
// same instance.
func (p *Property[H, T]) Links(dsts ...Slot[H]) *Property[H, T] {
	for _, d := range dsts {
		p.slot.dependents = append(p.slot.dependents, d.descriptor())
	}
	return p
}

// Chain declares that dsts depend on attr of whatever object p currently
// holds. The edges move with p's value: producing, setting, storing or
// clearing p detaches them from the old value and attaches them to the new
// one. dsts also become direct dependents of p.
//
// Chain panics if T is not a Host. Declare chains before any instance
// holds a value for p.
func (p *Property[H, T]) Chain(attr Slot[T], dsts ...Slot[H]) *Property[H, T] {
	if t := reflect.TypeFor[T](); !t.Implements(hostType) {
		panic(fmt.Sprintf("promised: chain on %s: %s does not embed promised.Object", p.slot.name, t))
	}

	c := chain{attr: attr.descriptor()}
	for _, d := range dsts {
		c.dependents = append(c.dependents, d.descriptor())
	}
	p.slot.chains = append(p.slot.chains, c)
	p.slot.dependents = append(p.slot.dependents, c.dependents...)
	return p
}

// External declares that clearing src on an instance clears dst on the
// object held by via on that instance. The object is looked up when the
// cascade runs; if via is absent nothing is cleared through this edge.
func External[H Host, U Host, S any](src *Property[H, S], via *Property[H, U], dst Slot[U]) {
	src.slot.externals = append(src.slot.externals, external{
		via:    via.slot,
		target: dst.descriptor(),
	})
}

// Warm produces every slot in slots on h. It does not stop at the first
// failure; all keeper errors are returned together.
func Warm[H Host](h H, slots ...Slot[H]) error {
	var errs *multierror.Error
	for _, s := range slots {
		if err := s.produce(h); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
