// Package redis provides a store.Service backed by Redis hashes, for
// deployments where several service instances allocate from the same
// counters. One hash per row, keys namespaced as docket:{table}:{unique key};
// duplicate-insert detection rides on HSETNX and conditional updates on an
// optimistic WATCH transaction, so no instance ever holds a lock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/viant/docket/service/store"
)

const (
	keyPrefix = "docket"

	// guardField marks a hash as fully written; HSETNX on this field is the
	// atomic claim that makes concurrent duplicate inserts detectable.
	guardField = "_guard"
)

// Service implements store.Service on top of a Redis client.
type Service struct {
	rdb  *redis.Client
	keys map[string][]string
}

// Ensure Service implements store.Service
var _ store.Service = (*Service)(nil)

// New creates a Redis-backed store with the default schema.
func New(opts *redis.Options) *Service {
	return &Service{rdb: redis.NewClient(opts), keys: store.UniqueKeys()}
}

// Close releases the underlying Redis connection.
func (s *Service) Close() error {
	return s.rdb.Close()
}

// Ping verifies connectivity. Useful for health checks.
func (s *Service) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Get returns the row addressed by the filter's unique key columns, or
// store.ErrNotFound. Non-key filter columns are checked against the stored
// row after the read.
func (s *Service) Get(ctx context.Context, table string, filter store.Filter) (store.Row, error) {
	key, err := s.rowKey(table, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", key, err)
	}
	if len(data) == 0 {
		return nil, store.ErrNotFound
	}
	row := fromHash(data)
	if !row.Matches(filter) {
		return nil, store.ErrNotFound
	}
	return row, nil
}

// insertScript claims the unique key and writes the row columns in one
// atomic step, so a crash can never leave a claimed-but-empty hash behind. A
// hash holding only the guard field is treated as absent and completed, which
// lets an insert recover rows a pre-atomic writer abandoned mid-write.
var insertScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], '1') == 0 and redis.call('HLEN', KEYS[1]) > 1 then
  return 0
end
for i = 2, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return 1
`)

// Insert claims the row's unique key and writes its columns atomically. A
// losing concurrent writer gets store.ErrDuplicate.
func (s *Service) Insert(ctx context.Context, table string, row store.Row) error {
	key, err := s.rowKey(table, store.Filter(row))
	if err != nil {
		return err
	}
	args := make([]interface{}, 0, 2*len(row)+1)
	args = append(args, guardField)
	for column, value := range row {
		args = append(args, column, value)
	}
	claimed, err := insertScript.Run(ctx, s.rdb, []string{key}, args...).Int()
	if err != nil {
		return fmt.Errorf("failed to insert %v: %w", key, err)
	}
	if claimed == 0 {
		return store.ErrDuplicate
	}
	return nil
}

// Update patches the row addressed by the filter inside a WATCH transaction.
// When the watched row changes mid-flight, or the filter's conditional
// columns no longer match, it reports zero affected rows; the caller's retry
// loop owns what happens next.
func (s *Service) Update(ctx context.Context, table string, patch store.Row, filter store.Filter) (int, error) {
	key, err := s.rowKey(table, filter)
	if err != nil {
		return 0, err
	}
	affected := 0
	txn := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 || !fromHash(data).Matches(filter) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, toHash(patch))
			return nil
		})
		if err == nil {
			affected = 1
		}
		return err
	}
	if err := s.rdb.Watch(ctx, txn, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return 0, nil // watched row changed; report a plain CAS miss
		}
		return 0, fmt.Errorf("failed to update %v: %w", key, err)
	}
	return affected, nil
}

// rowKey builds docket:{table}:{v1}:{v2...} from the table's declared unique
// key columns; every column must be present in the supplied values.
func (s *Service) rowKey(table string, values store.Filter) (string, error) {
	columns, ok := s.keys[table]
	if !ok {
		return "", store.ErrUnknownTable
	}
	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, keyPrefix, table)
	for _, column := range columns {
		value, ok := values[column]
		if !ok {
			return "", fmt.Errorf("filter for table %v must include key column %v", table, column)
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, ":"), nil
}

func toHash(row store.Row) map[string]string {
	return map[string]string(row)
}

func fromHash(data map[string]string) store.Row {
	row := make(store.Row, len(data))
	for k, v := range data {
		if k == guardField {
			continue
		}
		row[k] = v
	}
	return row
}
