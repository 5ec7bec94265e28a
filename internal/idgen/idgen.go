package idgen

import "github.com/google/uuid"

// New returns a new globally unique identifier as string. It is implemented
// as a thin wrapper so tests can stub it.

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// Short returns a compact identifier suitable for throwaway probe names,
// where a full UUID only adds noise to directory listings.
func Short() string {
	id := NewFunc()
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
