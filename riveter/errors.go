package riveter

import "errors"

var (
	// ErrNilEntity is returned when an operation receives a nil entity.
	ErrNilEntity = errors.New("nil entity")
	// ErrInvalidParent is returned by inherits/extend for a nil parent.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrInvalidChild is returned when a child template is neither an entity
	// nor a mapping, or its constructor slot is not callable.
	ErrInvalidChild = errors.New("invalid child")
	// ErrInvalidDonor is returned for nil donors, non-callable hooks and
	// non-mapping mixin payloads.
	ErrInvalidDonor = errors.New("invalid donor")
	// ErrNotAttached is returned when calling a capability an entity lacks.
	ErrNotAttached = errors.New("capability not attached")
)
