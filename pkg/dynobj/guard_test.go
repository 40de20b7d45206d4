package dynobj

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allow[K comparable](calls *[]string, name string) GuardFunc[K] {
	return func(*Object[K], K) bool {
		*calls = append(*calls, name)
		return true
	}
}

func deny[K comparable](calls *[]string, name string) GuardFunc[K] {
	return func(*Object[K], K) bool {
		*calls = append(*calls, name)
		return false
	}
}

func TestRegistryOrderAndShortCircuit(t *testing.T) {
	tests := []struct {
		name      string
		guards    func(calls *[]string) []Guard[string]
		wantAllow bool
		wantCalls []string
	}{
		{
			name:      "empty list allows",
			guards:    func(*[]string) []Guard[string] { return nil },
			wantAllow: true,
			wantCalls: nil,
		},
		{
			name: "all allow runs every guard in order",
			guards: func(c *[]string) []Guard[string] {
				return []Guard[string]{allow[string](c, "a"), allow[string](c, "b"), allow[string](c, "c")}
			},
			wantAllow: true,
			wantCalls: []string{"a", "b", "c"},
		},
		{
			name: "first denial stops evaluation",
			guards: func(c *[]string) []Guard[string] {
				return []Guard[string]{allow[string](c, "a"), deny[string](c, "b"), allow[string](c, "c")}
			},
			wantAllow: false,
			wantCalls: []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			o := NewObject[string]()
			for _, g := range tt.guards(&calls) {
				require.NoError(t, o.AddGuard(EventSet, g))
			}

			got := o.guards.check(o, EventSet, "k")

			assert.Equal(t, tt.wantAllow, got)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRegistryListsAreIndependent(t *testing.T) {
	var calls []string
	o := NewObject[string]()
	require.NoError(t, o.AddGuard(EventRemove, deny[string](&calls, "remove")))

	require.NoError(t, o.CreateProperty("k", Wrap(1)))
	require.NoError(t, o.SetProperty("k", Wrap(2)))
	_, err := o.AccessProperty("k")
	require.NoError(t, err)

	assert.Empty(t, calls)
	assert.Equal(t, 1, o.Guards().Len(EventRemove))
	assert.Equal(t, 0, o.Guards().Len(EventCreate))
}

func TestRegistryUnknownEvent(t *testing.T) {
	o := NewObject[string]()
	err := o.AddGuard(Event(42), GuardFunc[string](func(*Object[string], string) bool { return true }))
	assert.True(t, errors.Is(err, ErrUnknownEvent))

	err = o.AddGuard(Event(-1), nil)
	assert.True(t, errors.Is(err, ErrUnknownEvent))
	assert.Equal(t, 0, o.Guards().Len(Event(42)))
}

func TestRegistryClear(t *testing.T) {
	var calls []string
	o := NewObject[string]()
	require.NoError(t, o.AddGuard(EventCreate, deny[string](&calls, "create")))
	require.Error(t, o.CreateProperty("k", Wrap(1)))

	o.Guards().Clear(EventCreate)

	assert.NoError(t, o.CreateProperty("k", Wrap(1)))
	assert.Equal(t, []string{"create"}, calls)
}

func TestRegistryGuardAddedDuringCheckWaits(t *testing.T) {
	var calls []string
	o := NewObject[string]()
	require.NoError(t, o.AddGuard(EventCreate, GuardFunc[string](func(o *Object[string], _ string) bool {
		_ = o.AddGuard(EventCreate, deny[string](&calls, "late"))
		return true
	})))

	require.NoError(t, o.CreateProperty("first", Wrap(1)))
	assert.Empty(t, calls, "guard added mid-check must not run in the same check")

	err := o.CreateProperty("second", Wrap(2))
	assert.True(t, errors.Is(err, ErrGuardDenied))
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{EventCreate, "create"},
		{EventSet, "set"},
		{EventRemove, "remove"},
		{EventAccess, "access"},
		{EventAccessMut, "access_mut"},
		{Event(9), "event(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.String())
		})
	}
}
