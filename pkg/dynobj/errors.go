package dynobj

import "errors"

// Property operation errors. These are ordinary results returned to the
// caller; the object is left unchanged when one is returned.
var (
	ErrKeyNotFound      = errors.New("property not found")
	ErrKeyAlreadyExists = errors.New("property already exists")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrGuardDenied      = errors.New("denied by guard")
	ErrUnknownEvent     = errors.New("unknown guard event")
	ErrValueOwned       = errors.New("value already belongs to a property")
)

// Contract violations. These are raised with panic, wrapped with the object
// id, and signal a bug at the call site.
var (
	ErrUndefinedProperty = errors.New("undefined property")
	ErrBorrowConflict    = errors.New("object is already acquired")
	ErrUplinkMissing     = errors.New("object was not created by a handle")
	ErrUplinkDangling    = errors.New("owning handle of object was released")
	ErrAccessReleased    = errors.New("access window is released")
	ErrHandleReleased    = errors.New("handle is released")
	ErrHandleInvalid     = errors.New("handle was not created by New, Clone or CreateFrom")
	ErrObjectReleased    = errors.New("object was torn down by its last release")
)

// Config validation errors.
var (
	ErrCapacityInvalid = errors.New("capacity must not be negative")
	ErrLogLevelUnknown = errors.New("unknown log level")
)
