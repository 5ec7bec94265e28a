package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/docket/service/store"
)

func TestService_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	svc := New()

	err := svc.Insert(ctx, store.TableCounters, store.Row{"scope": "tenant-7", "year": "2025", "next_value": "2"})
	assert.Nil(t, err)

	row, err := svc.Get(ctx, store.TableCounters, store.Filter{"scope": "tenant-7", "year": "2025"})
	assert.Nil(t, err)
	assert.EqualValues(t, "2", row["next_value"])

	// Same unique key must be rejected
	err = svc.Insert(ctx, store.TableCounters, store.Row{"scope": "tenant-7", "year": "2025", "next_value": "9"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// Different year is a different row
	err = svc.Insert(ctx, store.TableCounters, store.Row{"scope": "tenant-7", "year": "2024", "next_value": "5"})
	assert.Nil(t, err)

	_, err = svc.Get(ctx, store.TableCounters, store.Filter{"scope": "tenant-9", "year": "2025"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	svc := New()

	err := svc.Insert(ctx, store.TableCounters, store.Row{"scope": "global", "year": "2025", "next_value": "4"})
	assert.Nil(t, err)

	// Matching expected value advances the counter
	affected, err := svc.Update(ctx, store.TableCounters,
		store.Row{"next_value": "5"},
		store.Filter{"scope": "global", "year": "2025", "next_value": "4"})
	assert.Nil(t, err)
	assert.EqualValues(t, 1, affected)

	// Stale expected value is a no-op, the compare-and-set miss
	affected, err = svc.Update(ctx, store.TableCounters,
		store.Row{"next_value": "6"},
		store.Filter{"scope": "global", "year": "2025", "next_value": "4"})
	assert.Nil(t, err)
	assert.EqualValues(t, 0, affected)

	row, err := svc.Get(ctx, store.TableCounters, store.Filter{"scope": "global", "year": "2025"})
	assert.Nil(t, err)
	assert.EqualValues(t, "5", row["next_value"])
}

func TestService_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc := New()

	_ = svc.Insert(ctx, store.TableSettings, store.Row{"scope": "global", "name": "artifact_root", "value": "/srv/reports"})
	row, err := svc.Get(ctx, store.TableSettings, store.Filter{"scope": "global", "name": "artifact_root"})
	assert.Nil(t, err)
	row["value"] = "mutated"

	again, err := svc.Get(ctx, store.TableSettings, store.Filter{"scope": "global", "name": "artifact_root"})
	assert.Nil(t, err)
	assert.EqualValues(t, "/srv/reports", again["value"])
}

func TestService_UnknownTable(t *testing.T) {
	ctx := context.Background()
	svc := New()
	_, err := svc.Get(ctx, "no_such_table", store.Filter{})
	assert.ErrorIs(t, err, store.ErrUnknownTable)
}
