package store

import (
	"context"
	"errors"
)

// Row holds one record as opaque column/value pairs. Values are kept as
// strings so that every backend (in-memory maps, Redis hashes) represents a
// record the same way; the single owner of a numeric column converts it at
// the edge.
type Row map[string]string

// Filter selects rows by exact column/value equality. A conditional update is
// expressed by including the expected current value in the filter: when the
// filter no longer matches, Update reports zero affected rows.
type Filter map[string]string

// Common, reusable store errors. Sentinel variables let callers detect
// conditions via errors.Is instead of brittle string comparisons.
var (
	// ErrNotFound is returned by Get when no row matches the filter.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned by Insert when a row with the same unique key
	// already exists. Concurrent duplicate creates must surface this error so
	// that callers can fall back to reading the winner's row.
	ErrDuplicate = errors.New("store: duplicate key")

	// ErrUnknownTable is returned when the table was never declared.
	ErrUnknownTable = errors.New("store: unknown table")
)

// Service is the persistence collaborator: an abstract store keyed by table
// and filter. Implementations must make Insert atomic with respect to the
// table's unique key and Update atomic with respect to its filter match, so
// that optimistic read-increment-write loops are safe across processes.
type Service interface {
	// Get returns the first row matching filter, or ErrNotFound.
	Get(ctx context.Context, table string, filter Filter) (Row, error)

	// Insert adds a row, returning ErrDuplicate when the table's unique key
	// is already taken.
	Insert(ctx context.Context, table string, row Row) error

	// Update applies patch to every row matching filter and returns the
	// number of rows affected.
	Update(ctx context.Context, table string, patch Row, filter Filter) (int, error)
}

// Clone returns a shallow copy so that callers can mutate the result without
// aliasing the stored row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Matches reports whether the row satisfies every equality in the filter.
func (r Row) Matches(filter Filter) bool {
	for k, want := range filter {
		if r[k] != want {
			return false
		}
	}
	return true
}
