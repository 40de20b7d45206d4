package dynobj

import (
	"errors"
	"testing"
)

// requirePanicsWith runs fn and fails the test unless it panics with an
// error that wraps target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with error value, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("expected panic wrapping %v, got %v", target, err)
		}
	}()
	fn()
}
