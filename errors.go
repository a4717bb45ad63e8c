package promised

import "errors"

var (
	// ErrNoKeeper is returned when an absent slot is read and the property
	// has no keeper to produce it.
	ErrNoKeeper = errors.New("promised: keeper not set")

	// ErrBrokenPromise is returned when a filler returns without storing a
	// value in the slot it was asked to produce.
	ErrBrokenPromise = errors.New("promised: keeper did not populate slot")

	// ErrNoSetter is returned by Set on a property that has no setter.
	ErrNoSetter = errors.New("promised: property does not have a setter")

	// ErrNoDeleter is returned by Delete on a property that has no deleter.
	ErrNoDeleter = errors.New("promised: property does not have a deleter")

	// ErrCycle is returned when producing a value requires the value itself.
	ErrCycle = errors.New("promised: keeper depends on its own slot")
)
