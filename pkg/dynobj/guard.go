package dynobj

import "fmt"

// Event identifies the property lifecycle step a guard is consulted for.
type Event int

// Guard events. Access gates reads through AccessProperty; AccessMut gates
// AccessPropertyMut.
const (
	EventCreate Event = iota
	EventSet
	EventRemove
	EventAccess
	EventAccessMut

	numEvents
)

var eventNames = [numEvents]string{
	EventCreate:    "create",
	EventSet:       "set",
	EventRemove:    "remove",
	EventAccess:    "access",
	EventAccessMut: "access_mut",
}

func (e Event) String() string {
	if !e.valid() {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

func (e Event) valid() bool {
	return e >= 0 && e < numEvents
}

// Guard decides whether an operation on key may proceed. A guard receives
// the object itself and may inspect or change other properties before
// answering; returning false vetoes the operation.
type Guard[K comparable] interface {
	Allow(o *Object[K], key K) bool
}

// GuardFunc adapts an ordinary function to the Guard interface.
type GuardFunc[K comparable] func(o *Object[K], key K) bool

// Allow calls f(o, key).
func (f GuardFunc[K]) Allow(o *Object[K], key K) bool {
	return f(o, key)
}

// Registry holds one ordered guard list per event.
type Registry[K comparable] struct {
	lists [numEvents][]Guard[K]
}

// Add appends g to the list for event.
// Returns ErrUnknownEvent if event is not one of the Event constants.
func (r *Registry[K]) Add(event Event, g Guard[K]) error {
	if !event.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	if g == nil {
		return nil
	}
	r.lists[event] = append(r.lists[event], g)
	return nil
}

// Len returns the number of guards registered for event.
func (r *Registry[K]) Len(event Event) int {
	if !event.valid() {
		return 0
	}
	return len(r.lists[event])
}

// Clear drops every guard registered for event.
func (r *Registry[K]) Clear(event Event) {
	if event.valid() {
		r.lists[event] = nil
	}
}

// check evaluates the guards for event in registration order and stops at
// the first one that denies. An empty list allows.
func (r *Registry[K]) check(o *Object[K], event Event, key K) bool {
	// A guard that registers another guard must not affect this round.
	guards := r.lists[event]
	for _, g := range guards {
		if !g.Allow(o, key) {
			return false
		}
	}
	return true
}

func (r *Registry[K]) reset() {
	for i := range r.lists {
		r.lists[i] = nil
	}
}
