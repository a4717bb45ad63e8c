package promised

type config[H Host, T any] struct {
	doc     string
	filler  func(H) error
	setter  func(H, T) (T, error)
	deleter func(H, T) error

	storeOnSet    bool
	clearOnDelete bool
	linkOnSet     bool
	linkOnDelete  bool
}

func (c *config[H, T]) writable() bool {
	return c.storeOnSet || c.setter != nil
}

func (c *config[H, T]) deletable() bool {
	return c.clearOnDelete || c.deleter != nil
}

// Option configures a Property.
type Option[H Host, T any] func(*config[H, T])

// WithDoc attaches a description to the property.
func WithDoc[H Host, T any](doc string) Option[H, T] {
	return func(c *config[H, T]) {
		c.doc = doc
	}
}

// WithFiller sets a keeper that stores the slot itself, through Store,
// instead of returning the value. One filler may populate several sibling
// slots at once.
func WithFiller[H Host, T any](fn func(H) error) Option[H, T] {
	return func(c *config[H, T]) {
		c.filler = fn
	}
}

// WithSetter sets a function that validates or transforms values passed to
// Set. The returned value is stored. A setter does not change whether Set
// clears dependents; pass WithoutLinkOnSet for a non-linking write.
func WithSetter[H Host, T any](fn func(H, T) (T, error)) Option[H, T] {
	return func(c *config[H, T]) {
		c.setter = fn
	}
}

// WithDeleter sets a function called with the present value before Delete
// clears it. An error aborts the delete.
func WithDeleter[H Host, T any](fn func(H, T) error) Option[H, T] {
	return func(c *config[H, T]) {
		c.deleter = fn
	}
}

// WithLinkOnSet makes Set clear the property's dependents.
func WithLinkOnSet[H Host, T any]() Option[H, T] {
	return func(c *config[H, T]) {
		c.linkOnSet = true
	}
}

// WithoutLinkOnSet makes Set a non-linking write: dependents keep their
// cached values.
func WithoutLinkOnSet[H Host, T any]() Option[H, T] {
	return func(c *config[H, T]) {
		c.linkOnSet = false
	}
}

// WithLinkOnDelete makes Delete clear the property's dependents.
func WithLinkOnDelete[H Host, T any]() Option[H, T] {
	return func(c *config[H, T]) {
		c.linkOnDelete = true
	}
}

// WithoutLinkOnDelete makes Delete clear only the property itself.
func WithoutLinkOnDelete[H Host, T any]() Option[H, T] {
	return func(c *config[H, T]) {
		c.linkOnDelete = false
	}
}
