package dynobj

import (
	"errors"
	"fmt"
	"os"
	"weak"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/dynobj/internal/logging"
)

// Object is a runtime-extensible set of properties keyed by K. Each
// property holds one Value. Operations that change or expose a property
// run the guards registered for that event first.
//
// An Object obtained through a Handle is shared with every other handle to
// the same object; see Handle for the access discipline.
type Object[K comparable] struct {
	id     uuid.UUID
	props  map[K]*Value
	guards Registry[K]
	log    zerolog.Logger

	// uplink refers back to the shared state owning this object. It does
	// not keep that state alive.
	uplink weak.Pointer[shared[K]]
	linked bool

	// dead is set when the last owning handle is released.
	dead bool
}

// NewObject returns an empty object with no owning handle. Such an object
// is usable directly, but CreateFrom panics on it.
func NewObject[K comparable]() *Object[K] {
	return newObject[K](DefaultConfig(), zerolog.Nop())
}

// NewObjectWithConfig returns an empty object configured by cfg. A non-empty
// cfg.LogLevel enables logging to stderr.
// Returns a Config validation error if cfg is not well-formed.
func NewObjectWithConfig[K comparable](cfg Config) (*Object[K], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newObject[K](cfg, logging.New(cfg.LogLevel, os.Stderr)), nil
}

func newObject[K comparable](cfg Config, logger zerolog.Logger) *Object[K] {
	o := &Object[K]{
		id:    generateID(),
		props: make(map[K]*Value, cfg.Capacity),
	}
	o.SetLogger(logger)
	return o
}

// generateID returns a UUID v7, falling back to v4 if v7 generation fails.
func generateID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ID returns the identifier of the object. It appears in log lines and in
// the messages of contract-violation panics.
func (o *Object[K]) ID() uuid.UUID {
	return o.id
}

// SetLogger replaces the object's logger. The object id is added as a field.
func (o *Object[K]) SetLogger(l zerolog.Logger) {
	o.log = l.With().Str("object", o.id.String()).Logger()
}

// Guards returns the guard registry of the object.
func (o *Object[K]) Guards() *Registry[K] {
	return &o.guards
}

// AddGuard registers g for event. Guards run in registration order.
// Returns ErrUnknownEvent if event is not one of the Event constants.
func (o *Object[K]) AddGuard(event Event, g Guard[K]) error {
	o.mustLive()
	return o.guards.Add(event, g)
}

// CreateProperty adds a property holding value. The cell is claimed by the
// property and cannot be stored again; a nil value creates a property whose
// typed reads all fail.
// Returns ErrGuardDenied if a create guard vetoes, ErrKeyAlreadyExists if
// the key is present, ErrValueOwned if value is already stored elsewhere.
func (o *Object[K]) CreateProperty(key K, value *Value) error {
	o.mustLive()
	if !o.guards.check(o, EventCreate, key) {
		return o.denied(EventCreate, key)
	}
	if _, ok := o.props[key]; ok {
		return fmt.Errorf("%w: %v", ErrKeyAlreadyExists, key)
	}
	cell, ok := claim(value)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValueOwned, key)
	}
	if o.props == nil {
		o.props = make(map[K]*Value)
	}
	o.props[key] = cell
	return nil
}

// SetProperty replaces the value of an existing property. The new value
// need not have the same type as the old one. SetProperty never creates a
// property. Cells previously returned by AccessProperty observe the change.
// value is claimed like in CreateProperty.
// Returns ErrGuardDenied if a set guard vetoes, ErrKeyNotFound if the key
// is absent, ErrValueOwned if value is already stored elsewhere.
func (o *Object[K]) SetProperty(key K, value *Value) error {
	o.mustLive()
	if !o.guards.check(o, EventSet, key) {
		return o.denied(EventSet, key)
	}
	cell, ok := o.props[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	if value == cell {
		return nil
	}
	next, ok := claim(value)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValueOwned, key)
	}
	cell.replace(next)
	return nil
}

// RemoveProperty deletes a property.
// Returns ErrGuardDenied if a remove guard vetoes, ErrKeyNotFound if the
// key is absent.
func (o *Object[K]) RemoveProperty(key K) error {
	o.mustLive()
	if !o.guards.check(o, EventRemove, key) {
		return o.denied(EventRemove, key)
	}
	if _, ok := o.props[key]; !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	delete(o.props, key)
	return nil
}

// ExistsProperty reports whether key is present. Guards are not consulted.
func (o *Object[K]) ExistsProperty(key K) bool {
	_, ok := o.props[key]
	return ok
}

// AccessProperty returns the cell of a property for reading, after the
// access guards allow it.
// Returns ErrGuardDenied if an access guard vetoes, ErrKeyNotFound if the
// key is absent.
func (o *Object[K]) AccessProperty(key K) (*Value, error) {
	return o.access(EventAccess, key)
}

// AccessPropertyMut is AccessProperty for callers that intend to write
// through the cell with ReadMut. It runs the access_mut guards instead.
func (o *Object[K]) AccessPropertyMut(key K) (*Value, error) {
	o.mustLive()
	return o.access(EventAccessMut, key)
}

func (o *Object[K]) access(event Event, key K) (*Value, error) {
	if !o.guards.check(o, event, key) {
		return nil, o.denied(event, key)
	}
	cell, ok := o.props[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return cell, nil
}

// At is AccessProperty for call sites that know the key exists. It panics
// with ErrUndefinedProperty if the key is absent, and with the guard error
// if an access guard vetoes.
func (o *Object[K]) At(key K) *Value {
	cell, err := o.AccessProperty(key)
	if errors.Is(err, ErrKeyNotFound) {
		o.fatal(fmt.Errorf("%w: %v in object %s", ErrUndefinedProperty, key, o.id))
	}
	if err != nil {
		o.fatal(err)
	}
	return cell
}

// Len returns the number of properties.
func (o *Object[K]) Len() int {
	return len(o.props)
}

// Keys returns the property keys in no particular order.
func (o *Object[K]) Keys() []K {
	keys := make([]K, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	return keys
}

// Get reads a property as a T through the access guards.
// Returns ErrTypeMismatch if the property does not hold exactly a T, and
// the errors of AccessProperty otherwise.
func Get[T any, K comparable](o *Object[K], key K) (T, error) {
	var zero T
	cell, err := o.AccessProperty(key)
	if err != nil {
		return zero, err
	}
	v, ok := Read[T](cell)
	if !ok {
		return zero, fmt.Errorf("%w: %v holds %v", ErrTypeMismatch, key, cell.Type())
	}
	return v, nil
}

// Put sets key to v, creating the property first if it does not exist.
// The create or set guards apply accordingly.
func Put[T any, K comparable](o *Object[K], key K, v T) error {
	if o.ExistsProperty(key) {
		return o.SetProperty(key, Wrap(v))
	}
	return o.CreateProperty(key, Wrap(v))
}

// setUplink records the shared state that owns o. It is called once, when
// a handle is built around o.
func (o *Object[K]) setUplink(p weak.Pointer[shared[K]]) {
	if o.linked {
		return
	}
	o.uplink = p
	o.linked = true
}

// teardown empties the object once its last owner is gone. Later
// mutations panic with ErrObjectReleased.
func (o *Object[K]) teardown() {
	clear(o.props)
	o.guards.reset()
	o.dead = true
	o.log.Debug().Msg("object released")
}

func (o *Object[K]) mustLive() {
	if o.dead {
		o.fatal(fmt.Errorf("%w: %s", ErrObjectReleased, o.id))
	}
}

func (o *Object[K]) denied(event Event, key K) error {
	o.log.Debug().Str("event", event.String()).Interface("key", key).Msg("guard denied")
	return fmt.Errorf("%w: %s %v", ErrGuardDenied, event, key)
}

// fatal logs err and panics with it.
func (o *Object[K]) fatal(err error) {
	o.log.Error().Err(err).Msg("contract violation")
	panic(err)
}
