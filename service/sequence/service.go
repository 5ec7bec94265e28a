// Package sequence allocates unique, monotonically increasing integers per
// (scope, year) without in-process locks. Correctness under concurrent
// callers – including callers in other service instances – relies entirely on
// the store's duplicate-insert and conditional-update semantics.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/docket/internal/retry"
	"github.com/viant/docket/service/store"
	"github.com/viant/docket/tracing"
)

// ScopeGlobal is the shared allocation domain used when no tenant scope
// applies.
const ScopeGlobal = "global"

// Counter row columns.
const (
	columnScope = "scope"
	columnYear  = "year"
	columnNext  = "next_value"
)

// errConflict marks a lost race with a concurrent allocator; the whole
// read-increment-write procedure is retried from scratch.
var errConflict = errors.New("sequence: lost race to concurrent writer")

// AllocationError reports an exhausted retry budget. It is transient: the
// caller may safely retry the whole request.
type AllocationError struct {
	Scope    string
	Year     int
	Attempts int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("failed to allocate sequence for %v/%v after %v attempts", e.Scope, e.Year, e.Attempts)
}

// IsExhausted reports whether err is an exhausted-allocation error.
func IsExhausted(err error) bool {
	var allocErr *AllocationError
	return errors.As(err, &allocErr)
}

// Service issues sequence values from per-(scope, year) counter rows.
type Service struct {
	store   store.Service
	initial int
	policy  retry.Policy
}

// New creates an allocator. initial is the deployment-era offset applied only
// when a counter row is first created, never when advancing an existing one.
func New(storeService store.Service, initial int, policy retry.Policy) *Service {
	if initial <= 0 {
		initial = 1
	}
	return &Service{store: storeService, initial: initial, policy: policy}
}

// Allocate returns the next sequence value for the scope and year. Values
// returned to concurrent callers are unique and gap-free in allocation order.
func (s *Service) Allocate(ctx context.Context, scope string, year int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "sequence.Allocate")
	span.WithAttributes(map[string]string{"scope": scope, "year": strconv.Itoa(year)})

	var allocated int
	attempts, err := retry.Do(ctx, s.policy,
		func(err error) bool { return errors.Is(err, errConflict) },
		func() error {
			value, err := s.tryAllocate(ctx, scope, year)
			if err != nil {
				return err
			}
			allocated = value
			return nil
		})
	span.WithAttribute("attempts", strconv.Itoa(attempts))
	if errors.Is(err, errConflict) {
		err = &AllocationError{Scope: scope, Year: year, Attempts: attempts}
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

// tryAllocate performs one read-increment-write pass.
func (s *Service) tryAllocate(ctx context.Context, scope string, year int) (int, error) {
	filter := store.Filter{columnScope: scope, columnYear: strconv.Itoa(year)}

	row, err := s.store.Get(ctx, store.TableCounters, filter)
	if errors.Is(err, store.ErrNotFound) {
		// Lazy counter creation: claim the row with the initial offset
		// already advanced past the value we hand out.
		created := store.Row{
			columnScope: scope,
			columnYear:  strconv.Itoa(year),
			columnNext:  strconv.Itoa(s.initial + 1),
		}
		insertErr := s.store.Insert(ctx, store.TableCounters, created)
		if insertErr == nil {
			return s.initial, nil
		}
		if errors.Is(insertErr, store.ErrDuplicate) {
			// A concurrent caller created the row first; re-read and advance.
			return 0, errConflict
		}
		return 0, fmt.Errorf("failed to create counter %v/%v: %w", scope, year, insertErr)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %v/%v: %w", scope, year, err)
	}

	current, err := strconv.Atoi(row[columnNext])
	if err != nil {
		return 0, fmt.Errorf("counter %v/%v holds malformed value %q: %w", scope, year, row[columnNext], err)
	}

	// Conditional advance: the expected current value rides in the filter so
	// a racing writer makes the update a no-op instead of a double-issue.
	conditional := store.Filter{
		columnScope: scope,
		columnYear:  strconv.Itoa(year),
		columnNext:  strconv.Itoa(current),
	}
	patch := store.Row{columnNext: strconv.Itoa(current + 1)}
	affected, err := s.store.Update(ctx, store.TableCounters, patch, conditional)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %v/%v: %w", scope, year, err)
	}
	if affected == 0 {
		return 0, errConflict
	}
	return current, nil
}
