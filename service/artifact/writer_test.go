package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()
	writer := NewWriter()
	base := t.TempDir()

	target := filepath.Join(base, "02-2025-0001", "Density", "02-2025-0001_Density_01_Field_20250101.pdf")
	err := writer.Write(ctx, []byte("%PDF-1.4"), target)
	require.Nil(t, err)

	data, err := os.ReadFile(target)
	require.Nil(t, err)
	assert.EqualValues(t, "%PDF-1.4", string(data))
}

// TestWriter_CreatesParents: a retried request may write before the folder
// tree was ensured; missing parents are created defensively.
func TestWriter_CreatesParents(t *testing.T) {
	ctx := context.Background()
	writer := NewWriter()
	base := t.TempDir()

	target := filepath.Join(base, "deep", "nested", "folder", "report.pdf")
	require.Nil(t, writer.Write(ctx, []byte("pdf"), target))

	info, err := os.Stat(filepath.Dir(target))
	require.Nil(t, err)
	assert.True(t, info.IsDir())
}

func TestWriter_FailureKeepsBytesWithCaller(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	ctx := context.Background()
	writer := NewWriter()
	base := t.TempDir()
	locked := filepath.Join(base, "locked")
	require.Nil(t, os.Mkdir(locked, 0555))

	data := []byte("generated content")
	err := writer.Write(ctx, data, filepath.Join(locked, "report.pdf"))
	assert.NotNil(t, err)
	// The buffer is untouched; the facade reports "generated but not filed"
	assert.EqualValues(t, "generated content", string(data))
}
