// Package dynobj provides a dynamic property object for code that needs an
// open record in an otherwise statically typed program: plugin data bags,
// loosely-typed configuration, scripting bridges.
//
// An Object maps keys to type-erased Value cells. Every create, set, remove,
// and access consults an ordered list of guards that may veto the operation.
// Objects are shared through reference-counted Handles; a Handle grants
// exclusive access to its Object through Acquire, and a second Acquire while
// the first window is open is a programming error that panics.
//
//	h := dynobj.New[string]()
//	defer h.Release()
//
//	_ = h.With(func(o *dynobj.Object[string]) error {
//		return o.CreateProperty("count", dynobj.Wrap(1))
//	})
//
// Data outcomes (missing key, duplicate key, type mismatch, guard denial)
// are returned as errors. Contract violations (overlapping access windows,
// reconstructing a handle from an object no handle owns, indexing a missing
// key) panic with an error value that wraps one of the sentinels below.
//
// Objects are not safe for use from multiple goroutines.
package dynobj
