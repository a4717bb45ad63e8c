package promised

import (
	"reflect"

	"github.com/hashicorp/go-set/v3"
)

// slot is the type-erased descriptor behind a Property. It carries the
// static dependency edges shared by every instance of the host type.
type slot struct {
	name       string
	dependents []*slot
	externals  []external
	chains     []chain
}

// external points from a slot to a slot on the object held by via.
type external struct {
	via    *slot
	target *slot
}

// chain makes dependents on the owner depend on attr of the owner's value.
type chain struct {
	attr       *slot
	dependents []*slot
}

// slotRef identifies one slot on one object.
type slotRef struct {
	obj *Object
	s   *slot
}

// chainEdge is a chain edge attached to a held object. via is the owner's
// slot that holds the object; two via slots holding the same object each
// own their edge.
type chainEdge struct {
	via *slot
	dep slotRef
}

var hostType = reflect.TypeFor[Host]()

// objectOf returns the Object behind v when v is a non-nil Host.
func objectOf(v any) (*Object, bool) {
	h, ok := v.(Host)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return h.promisedObject(), true
}

// edges appends every slot that must be cleared along with s on o.
func (o *Object) edges(s *slot, out []slotRef) []slotRef {
	for _, d := range s.dependents {
		out = append(out, slotRef{obj: o, s: d})
	}
	for _, e := range s.externals {
		v, ok := o.lookup(e.via)
		if !ok {
			continue
		}
		if target, ok := objectOf(v); ok {
			out = append(out, slotRef{obj: target, s: e.target})
		}
	}
	if refs, ok := o.remote[s]; ok {
		for _, e := range refs.Slice() {
			out = append(out, e.dep)
		}
	}
	return out
}

// cascade clears s on o and everything that depends on it. When keep is
// true s itself survives and only its dependents are cleared. Each slot is
// visited at most once so cycles terminate.
//
// The whole graph is walked before anything is cleared, so external and
// chain edges resolve against the values held when the cascade started.
func (o *Object) cascade(s *slot, keep bool) int {
	origin := slotRef{obj: o, s: s}
	visited := set.New[slotRef](8)
	stack := []slotRef{origin}
	var order []slotRef

	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visited.Insert(ref) {
			continue
		}
		stack = ref.obj.edges(ref.s, stack)

		if keep && ref == origin {
			continue
		}
		order = append(order, ref)
	}

	cleared := 0
	for _, ref := range order {
		if ref.obj.clear(ref.s) {
			cleared++
		}
	}

	o.log().Trace("cascade finished", "origin", s.name, "visited", visited.Size(), "cleared", cleared)
	return cleared
}

// link attaches s's chain edges, owned by o, to the object held in v.
func (o *Object) link(s *slot, v any) {
	if len(s.chains) == 0 {
		return
	}
	target, ok := objectOf(v)
	if !ok {
		return
	}
	for _, c := range s.chains {
		for _, d := range c.dependents {
			target.attach(c.attr, chainEdge{via: s, dep: slotRef{obj: o, s: d}})
		}
	}
}

// unlink removes s's chain edges, owned by o, from the object held in v.
func (o *Object) unlink(s *slot, v any) {
	if len(s.chains) == 0 {
		return
	}
	target, ok := objectOf(v)
	if !ok {
		return
	}
	for _, c := range s.chains {
		for _, d := range c.dependents {
			target.detach(c.attr, chainEdge{via: s, dep: slotRef{obj: o, s: d}})
		}
	}
}

func (o *Object) attach(attr *slot, ref chainEdge) {
	if o.remote == nil {
		o.remote = make(map[*slot]*set.Set[chainEdge])
	}
	refs, ok := o.remote[attr]
	if !ok {
		refs = set.New[chainEdge](1)
		o.remote[attr] = refs
	}
	refs.Insert(ref)
}

func (o *Object) detach(attr *slot, ref chainEdge) {
	refs, ok := o.remote[attr]
	if !ok {
		return
	}
	refs.Remove(ref)
	if refs.Empty() {
		delete(o.remote, attr)
	}
}
