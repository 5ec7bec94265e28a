package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/docket/service/location"
	"github.com/viant/docket/service/store/memory"
)

func newTestNamer(t *testing.T, base string) *Namer {
	t.Setenv(location.EnvArtifactRoot, "")
	storeService := memory.New()
	validator := location.NewValidator()
	locator := location.NewLocator(storeService, validator, nil, "", base)
	require.Nil(t, locator.SetLocation(context.Background(), location.ScopeGlobal, base))
	return NewNamer(locator)
}

func seedFiles(t *testing.T, folder string, names ...string) {
	require.Nil(t, os.MkdirAll(folder, 0755))
	for _, name := range names {
		require.Nil(t, os.WriteFile(filepath.Join(folder, name), []byte("pdf"), 0644))
	}
}

func TestNamer_EmptyCategoryStartsAtOne(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	fieldDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Density", fieldDate, false)
	require.Nil(t, err)
	assert.EqualValues(t, "02-2025-0001_Density_01_Field_20250101.pdf", name.Filename)
	assert.EqualValues(t, 1, name.Sequence)
	assert.False(t, name.IsRevision)
}

func TestNamer_SequenceAdvances(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	folder := filepath.Join(base, "02-2025-0001", "Density")
	seedFiles(t, folder,
		"02-2025-0001_Density_01_Field_20250101.pdf",
		"02-2025-0001_Density_02_Field_20250105.pdf",
		// Revision files are excluded from the sequence scan
		"02-2025-0001_Density_02_Field_20250105_REV1.pdf",
		// Foreign files are ignored
		"notes.txt",
	)

	fieldDate := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Density", fieldDate, false)
	require.Nil(t, err)
	assert.EqualValues(t, 3, name.Sequence)
	assert.EqualValues(t, "02-2025-0001_Density_03_Field_20250109.pdf", name.Filename)
	assert.False(t, name.IsRevision)
}

// TestNamer_Regeneration covers the revision ladder: a category folder with
// the original and REV1 yields REV2 on the next regeneration.
func TestNamer_Regeneration(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	folder := filepath.Join(base, "02-2025-0001", "Density")
	seedFiles(t, folder,
		"02-2025-0001_Density_01_Field_20250101.pdf",
		"02-2025-0001_Density_01_Field_20250101_REV1.pdf",
	)

	fieldDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Density", fieldDate, true)
	require.Nil(t, err)
	assert.EqualValues(t, 1, name.Sequence)
	assert.True(t, name.IsRevision)
	assert.EqualValues(t, 2, name.Revision)
	assert.EqualValues(t, "02-2025-0001_Density_01_Field_20250101_REV2.pdf", name.Filename)
}

// TestNamer_CollisionForcesRevision: even without the explicit regeneration
// flag, an existing file with the exact non-revision name is never
// overwritten.
func TestNamer_CollisionForcesRevision(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	folder := filepath.Join(base, "02-2025-0001", "Density")
	seedFiles(t, folder, "02-2025-0001_Density_01_Field_20250101.pdf")

	// Regenerating against the existing original yields the first revision
	fieldDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Density", fieldDate, true)
	require.Nil(t, err)
	assert.True(t, name.IsRevision)
	assert.EqualValues(t, 1, name.Revision)
}

// TestNamer_RegenerationDifferentDateAdvancesSequence: a regeneration
// request whose field date has no file at the latest sequence gets a fresh
// sequence number, never a second file sharing the sequence of a different
// date.
func TestNamer_RegenerationDifferentDateAdvancesSequence(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	folder := filepath.Join(base, "02-2025-0001", "Density")
	seedFiles(t, folder, "02-2025-0001_Density_01_Field_20250101.pdf")

	fieldDate := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Density", fieldDate, true)
	require.Nil(t, err)
	assert.EqualValues(t, 2, name.Sequence)
	assert.False(t, name.IsRevision)
	assert.EqualValues(t, "02-2025-0001_Density_02_Field_20250214.pdf", name.Filename)
}

func TestNamer_NewCategoryIndependentSequence(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	namer := newTestNamer(t, base)
	seedFiles(t, filepath.Join(base, "02-2025-0001", "Density"),
		"02-2025-0001_Density_01_Field_20250101.pdf")

	fieldDate := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	name, err := namer.NextName(ctx, "tenant-7", "02-2025-0001", "Concrete", fieldDate, false)
	require.Nil(t, err)
	assert.EqualValues(t, 1, name.Sequence)
	assert.EqualValues(t, "02-2025-0001_Concrete_01_Field_20250201.pdf", name.Filename)
}
