// Package identifier formats public work-order identifiers and verifies them
// against the durable record set before handing them out. The sequence
// counter is only a hint: partial failures and legacy manual inserts can put
// the two out of sync, so every candidate is checked against work_orders and
// a taken candidate sends the loop back to the allocator.
package identifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/docket/internal/clock"
	"github.com/viant/docket/service/sequence"
	"github.com/viant/docket/service/store"
	"github.com/viant/docket/tracing"
)

// DefaultPrefix is the identifier prefix used when a tenant has no custom
// prefix configured.
const DefaultPrefix = "02"

// settingPrefix is the settings-table row name holding a tenant's custom
// prefix.
const settingPrefix = "prefix"

// Service issues verified identifier strings.
type Service struct {
	store     store.Service
	allocator *sequence.Service
	prefix    string
	attempts  int
}

// New creates a formatter. defaultPrefix falls back to DefaultPrefix when
// empty; attempts bounds the allocate-then-verify loop.
func New(storeService store.Service, allocator *sequence.Service, defaultPrefix string, attempts int) *Service {
	if defaultPrefix == "" {
		defaultPrefix = DefaultPrefix
	}
	if attempts <= 0 {
		attempts = 20
	}
	return &Service{store: storeService, allocator: allocator, prefix: defaultPrefix, attempts: attempts}
}

// Format builds the public identifier string: {prefix}-{year}-{sequence
// zero-padded to 4 digits}.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Next allocates and verifies an identifier for the scope in the current
// calendar year.
func (s *Service) Next(ctx context.Context, scope string) (string, error) {
	return s.NextForYear(ctx, scope, clock.Now().Year())
}

// NextForYear allocates a sequence value, formats the identifier and accepts
// it only once no durable record occupies the exact string. On collision it
// loops back to the allocator for the next value, within the same bounded
// budget.
func (s *Service) NextForYear(ctx context.Context, scope string, year int) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "identifier.Next")
	span.WithAttribute("scope", scope)

	prefix, err := s.prefixFor(ctx, scope)
	if err != nil {
		tracing.EndSpan(span, err)
		return "", err
	}
	var id string
	for attempt := 0; attempt < s.attempts; attempt++ {
		var seq int
		if seq, err = s.allocator.Allocate(ctx, scope, year); err != nil {
			tracing.EndSpan(span, err)
			return "", err
		}
		candidate := Format(prefix, year, seq)
		var taken bool
		if taken, err = s.taken(ctx, candidate); err != nil {
			tracing.EndSpan(span, err)
			return "", err
		}
		if !taken {
			id = candidate
			break
		}
	}
	if id == "" {
		err = &sequence.AllocationError{Scope: scope, Year: year, Attempts: s.attempts}
	} else {
		span.WithAttribute("identifier", id)
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return "", err
	}
	return id, nil
}

// taken reports whether a durable work-order record already uses the exact
// identifier string.
func (s *Service) taken(ctx context.Context, id string) (bool, error) {
	_, err := s.store.Get(ctx, store.TableWorkOrders, store.Filter{"identifier": id})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify identifier %v: %w", id, err)
	}
	return true, nil
}

// prefixFor returns the tenant's configured prefix, or the default when no
// override row exists. Any other store failure is surfaced: minting an
// identifier under the wrong prefix is worse than failing the request.
func (s *Service) prefixFor(ctx context.Context, scope string) (string, error) {
	row, err := s.store.Get(ctx, store.TableSettings, store.Filter{"scope": scope, "name": settingPrefix})
	if errors.Is(err, store.ErrNotFound) {
		return s.prefix, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read prefix for scope %v: %w", scope, err)
	}
	if row["value"] == "" {
		return s.prefix, nil
	}
	return row["value"], nil
}
