// Package memory provides an in-process store.Service backed by mutex-guarded
// maps. It is the default backend for single-node deployments and the test
// double everywhere else; the locking gives it the same Insert/Update
// atomicity the contract demands from durable backends.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/viant/docket/service/store"
)

// Service is a map-backed store.Service. Rows are kept per table, keyed by
// the table's declared unique key columns.
type Service struct {
	mu     sync.RWMutex
	keys   map[string][]string
	tables map[string]map[string]store.Row
}

// Ensure Service implements store.Service
var _ store.Service = (*Service)(nil)

// New creates a memory store with the default schema.
func New() *Service {
	return NewWithKeys(store.UniqueKeys())
}

// NewWithKeys creates a memory store with the supplied table -> unique key
// column declarations.
func NewWithKeys(keys map[string][]string) *Service {
	tables := make(map[string]map[string]store.Row, len(keys))
	for table := range keys {
		tables[table] = make(map[string]store.Row)
	}
	return &Service{keys: keys, tables: tables}
}

// Get returns the first row matching filter.
func (s *Service) Get(_ context.Context, table string, filter store.Filter) (store.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, store.ErrUnknownTable
	}
	for _, row := range rows {
		if row.Matches(filter) {
			return row.Clone(), nil
		}
	}
	return nil, store.ErrNotFound
}

// Insert adds a row, failing with store.ErrDuplicate when the unique key is
// already present.
func (s *Service) Insert(_ context.Context, table string, row store.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return store.ErrUnknownTable
	}
	key := s.rowKey(table, row)
	if _, exists := rows[key]; exists {
		return store.ErrDuplicate
	}
	rows[key] = row.Clone()
	return nil
}

// Update applies patch to every row matching filter and reports how many rows
// changed. With the expected current value included in the filter this is the
// compare-and-set primitive the sequence allocator relies on.
func (s *Service) Update(_ context.Context, table string, patch store.Row, filter store.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return 0, store.ErrUnknownTable
	}
	affected := 0
	for key, row := range rows {
		if !row.Matches(filter) {
			continue
		}
		updated := row.Clone()
		for k, v := range patch {
			updated[k] = v
		}
		rows[key] = updated
		affected++
	}
	return affected, nil
}

func (s *Service) rowKey(table string, row store.Row) string {
	columns := s.keys[table]
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, row[column])
	}
	return strings.Join(parts, "\x00")
}
