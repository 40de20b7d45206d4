package dynobj

import (
	"fmt"
	"reflect"
)

// Value holds exactly one value of an arbitrary type together with the
// type it was wrapped as. Typed reads succeed only for that exact type;
// there is no conversion between related types (int and int64 are
// distinct, and so are an interface type and its implementations).
type Value struct {
	ptr any          // *T pointing at the stored value
	typ reflect.Type // T, recorded for diagnostics

	// owned is set once the cell has been handed to an object. A cell
	// belongs to at most one property.
	owned bool
}

// Wrap stores v in a new Value, recording T as its type identity.
func Wrap[T any](v T) *Value {
	p := new(T)
	*p = v
	return &Value{ptr: p, typ: reflect.TypeFor[T]()}
}

// Read returns a copy of the stored value if the cell holds exactly a T.
// The second result is false on a type mismatch or a nil cell.
func Read[T any](c *Value) (T, bool) {
	p, ok := ReadMut[T](c)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// ReadMut returns a pointer to the stored value if the cell holds exactly a
// T. Writes through the pointer change the cell contents.
func ReadMut[T any](c *Value) (*T, bool) {
	if c == nil {
		return nil, false
	}
	// The assertion on *T is an exact type match.
	p, ok := c.ptr.(*T)
	return p, ok
}

// Holds reports whether the cell holds exactly a T.
func Holds[T any](c *Value) bool {
	_, ok := ReadMut[T](c)
	return ok
}

// Type returns the type the value was wrapped as.
func (c *Value) Type() reflect.Type {
	if c == nil {
		return nil
	}
	return c.typ
}

// Any returns the stored value as an interface. The dynamic type of the
// result is the concrete type, which differs from Type when the value was
// wrapped as an interface type.
func (c *Value) Any() any {
	if c == nil || c.ptr == nil {
		return nil
	}
	return reflect.ValueOf(c.ptr).Elem().Interface()
}

// Owned reports whether the cell has been stored in an object by
// CreateProperty or SetProperty.
func (c *Value) Owned() bool {
	return c != nil && c.owned
}

// claim marks c as stored. A nil cell becomes a fresh empty one.
func claim(c *Value) (*Value, bool) {
	if c == nil {
		c = &Value{}
	}
	if c.owned {
		return nil, false
	}
	c.owned = true
	return c, true
}

// replace moves the contents of other into c. other is claimed beforehand,
// so nothing else can reach the moved contents through it.
func (c *Value) replace(other *Value) {
	c.ptr = other.ptr
	c.typ = other.typ
}

func (c *Value) String() string {
	if c == nil || c.typ == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%v (%s)", c.Any(), c.typ)
}
