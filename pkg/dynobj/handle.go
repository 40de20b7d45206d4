package dynobj

import (
	"fmt"
	"weak"
)

// shared is the reference-counted state behind every handle to one object.
// Open access windows count as references, so an object is never torn down
// while someone is using it.
type shared[K comparable] struct {
	obj      *Object[K]
	refs     int
	borrowed bool
}

func (s *shared[K]) retain() {
	s.refs++
}

// drop releases one reference and tears the object down on the last one.
func (s *shared[K]) drop() {
	s.refs--
	if s.refs == 0 {
		s.obj.teardown()
	}
}

// Handle is a counted reference to a shared Object. Clone and CreateFrom
// add references to the same object; Release drops one. The object is
// emptied, and its uplink becomes dangling, when the last reference is
// released.
//
// Access to the object goes through Acquire, which opens an exclusive
// window. Only one window may be open per object at a time, across all of
// its handles.
//
// The zero Handle refers to no object; Acquire and Clone panic on it with
// ErrHandleInvalid.
type Handle[K comparable] struct {
	s        *shared[K]
	released bool
}

// New returns a handle to a new, empty object.
func New[K comparable]() *Handle[K] {
	return adopt(NewObject[K]())
}

// NewWithConfig is New with an object built from cfg.
// Returns a Config validation error if cfg is not well-formed.
func NewWithConfig[K comparable](cfg Config) (*Handle[K], error) {
	o, err := NewObjectWithConfig[K](cfg)
	if err != nil {
		return nil, err
	}
	return adopt(o), nil
}

// adopt wraps a fresh object in shared state and points its uplink there.
func adopt[K comparable](o *Object[K]) *Handle[K] {
	s := &shared[K]{obj: o, refs: 1}
	o.setUplink(weak.Make(s))
	return &Handle[K]{s: s}
}

// CreateFrom returns a new handle to the object o, which must have been
// created through New. It does not require an open access window, so it
// may be called with the object reached from Acquire.
//
// CreateFrom panics with ErrUplinkMissing if o was never owned by a handle,
// and with ErrUplinkDangling if every handle to o has been released.
func CreateFrom[K comparable](o *Object[K]) *Handle[K] {
	if o == nil {
		panic(fmt.Errorf("%w: nil object", ErrUplinkMissing))
	}
	if !o.linked {
		o.fatal(fmt.Errorf("%w: %s", ErrUplinkMissing, o.id))
	}
	s := o.uplink.Value()
	if s == nil || s.refs == 0 {
		o.fatal(fmt.Errorf("%w: %s", ErrUplinkDangling, o.id))
	}
	s.retain()
	return &Handle[K]{s: s}
}

// Clone returns another handle to the same object. No data is copied.
func (h *Handle[K]) Clone() *Handle[K] {
	h.mustLive()
	h.s.retain()
	return &Handle[K]{s: h.s}
}

// Acquire opens an exclusive access window on the object. The window stays
// open until Release is called on the returned Access.
//
// Acquire panics with ErrBorrowConflict if a window is already open on the
// same object through this or any other handle. It never waits.
func (h *Handle[K]) Acquire() *Access[K] {
	h.mustLive()
	s := h.s
	if s.borrowed {
		s.obj.fatal(fmt.Errorf("%w: %s", ErrBorrowConflict, s.obj.id))
	}
	s.borrowed = true
	s.retain()
	return &Access[K]{s: s, obj: s.obj}
}

// With runs fn inside an access window and closes the window when fn
// returns, including on panic. It returns the error from fn.
func (h *Handle[K]) With(fn func(o *Object[K]) error) error {
	a := h.Acquire()
	defer a.Release()
	return fn(a.Object())
}

// Borrowed reports whether an access window is open on the object.
func (h *Handle[K]) Borrowed() bool {
	return h.s != nil && !h.released && h.s.borrowed
}

// Refs returns the number of live references to the object, counting open
// access windows. It returns 0 for a released or zero handle.
func (h *Handle[K]) Refs() int {
	if h.s == nil || h.released {
		return 0
	}
	return h.s.refs
}

// Release drops this handle's reference. Releasing the last reference
// empties the object. Release is idempotent; any other use of a released
// handle panics with ErrHandleReleased.
func (h *Handle[K]) Release() {
	if h.s == nil || h.released {
		return
	}
	h.released = true
	h.s.drop()
}

func (h *Handle[K]) mustLive() {
	if h.s == nil {
		panic(ErrHandleInvalid)
	}
	if h.released {
		h.s.obj.fatal(fmt.Errorf("%w: %s", ErrHandleReleased, h.s.obj.id))
	}
}

// Access is an open access window on an object, returned by Acquire.
type Access[K comparable] struct {
	s   *shared[K]
	obj *Object[K]
}

// Object returns the object behind the window. It panics with
// ErrAccessReleased once the window has been released.
func (a *Access[K]) Object() *Object[K] {
	if a.obj == nil {
		panic(ErrAccessReleased)
	}
	if a.s == nil {
		a.obj.fatal(fmt.Errorf("%w: %s", ErrAccessReleased, a.obj.id))
	}
	return a.obj
}

// Release closes the window. It is idempotent.
func (a *Access[K]) Release() {
	if a.s == nil {
		return
	}
	s := a.s
	a.s = nil
	s.borrowed = false
	s.drop()
}
