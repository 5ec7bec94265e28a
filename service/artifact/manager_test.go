package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/docket/internal/clock"
	"github.com/viant/docket/internal/retry"
	"github.com/viant/docket/service/location"
	"github.com/viant/docket/service/store/memory"
)

func silenceSleep(t *testing.T) {
	previous := clock.SleepFunc
	clock.SleepFunc = func(time.Duration) {}
	t.Cleanup(func() { clock.SleepFunc = previous })
}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, Initial: time.Millisecond, Multiplier: 2, Max: time.Millisecond * 10}
}

func newTestManager(t *testing.T, base string) *Manager {
	silenceSleep(t)
	t.Setenv(location.EnvArtifactRoot, "")
	storeService := memory.New()
	validator := location.NewValidator()
	locator := location.NewLocator(storeService, validator, nil, "", base)
	require.Nil(t, locator.SetLocation(context.Background(), location.ScopeGlobal, base))
	return NewManager(locator, validator, []string{"Density", "Concrete"}, testPolicy(), testPolicy())
}

func TestManager_Ensure(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	manager := newTestManager(t, base)

	ensured, err := manager.Ensure(ctx, "tenant-7", "02-2025-0001")
	require.Nil(t, err)
	assert.Empty(t, ensured.Warnings)
	assert.True(t, ensured.Base.IsUserConfigured)

	for _, folder := range []string{"Density", "Concrete", UploadedFolder} {
		info, err := os.Stat(filepath.Join(base, "02-2025-0001", folder))
		require.Nil(t, err, folder)
		assert.True(t, info.IsDir())
	}

	// No probe leftovers
	entries, err := os.ReadDir(base)
	require.Nil(t, err)
	assert.EqualValues(t, 1, len(entries))
}

// TestManager_EnsureIdempotent verifies that a duplicate or retried request
// succeeds and leaves previously created sibling files alone.
func TestManager_EnsureIdempotent(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	manager := newTestManager(t, base)

	_, err := manager.Ensure(ctx, "tenant-7", "02-2025-0001")
	require.Nil(t, err)

	sibling := filepath.Join(base, "02-2025-0001", "Density", "02-2025-0001_Density_01_Field_20250101.pdf")
	require.Nil(t, os.WriteFile(sibling, []byte("report"), 0644))

	ensured, err := manager.Ensure(ctx, "tenant-7", "02-2025-0001")
	require.Nil(t, err)
	assert.Empty(t, ensured.Warnings)

	data, err := os.ReadFile(sibling)
	require.Nil(t, err)
	assert.EqualValues(t, "report", string(data))
}

func TestManager_SanitizesIdentifier(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	manager := newTestManager(t, base)

	_, err := manager.Ensure(ctx, "tenant-7", `02/2025:0001`)
	require.Nil(t, err)

	info, err := os.Stat(filepath.Join(base, "02_2025_0001"))
	require.Nil(t, err)
	assert.True(t, info.IsDir())
}

func TestManager_FailsOnUnusableBase(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "locked")
	require.Nil(t, os.Mkdir(base, 0555))
	manager := newTestManager(t, base)

	_, err := manager.Ensure(ctx, "tenant-7", "02-2025-0001")
	require.NotNil(t, err)
	var baseErr *BaseError
	assert.ErrorAs(t, err, &baseErr)
}

func TestSanitize(t *testing.T) {
	assert.EqualValues(t, "02-2025-0001", Sanitize("02-2025-0001"))
	assert.EqualValues(t, "a_b_c", Sanitize(`a/b\c`))
	assert.EqualValues(t, "x_y", Sanitize("x:y"))
	assert.EqualValues(t, "trimmed", Sanitize("  trimmed "))
}

func TestIsSynced(t *testing.T) {
	assert.True(t, IsSynced("s3://reports/artifacts"))
	assert.True(t, IsSynced("gs://reports"))
	assert.True(t, IsSynced(`/home/user/Dropbox/Reports`))
	assert.True(t, IsSynced(`C:\Users\office\OneDrive\Reports`))
	assert.False(t, IsSynced("/srv/reports"))
	assert.False(t, IsSynced("file:///srv/reports"))
}
