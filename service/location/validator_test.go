package location

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	validator := NewValidator()
	tmp := t.TempDir()

	filePath := filepath.Join(tmp, "report.pdf")
	require.Nil(t, os.WriteFile(filePath, []byte("x"), 0644))

	testCases := []struct {
		name     string
		path     string
		valid    bool
		writable bool
		code     Code
	}{
		{
			name: "empty path",
			path: "",
			code: CodeEmpty,
		},
		{
			name: "whitespace only",
			path: "   ",
			code: CodeEmpty,
		},
		{
			name:     "existing writable folder",
			path:     tmp,
			valid:    true,
			writable: true,
		},
		{
			name: "missing folder with existing parent",
			path: filepath.Join(tmp, "missing"),
			code: CodeCreateFolder,
		},
		{
			name: "missing folder and parent",
			path: filepath.Join(tmp, "no", "such", "folder"),
			code: CodeNotFound,
		},
		{
			name: "file instead of folder",
			path: filePath,
			code: CodeNotDirectory,
		},
		{
			name: "illegal characters",
			path: filepath.Join(tmp, `bad|name?`),
			code: CodeIllegalChars,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := validator.Validate(ctx, tc.path)
			assert.EqualValues(t, tc.valid, result.Valid)
			assert.EqualValues(t, tc.writable, result.Writable)
			assert.EqualValues(t, tc.code, result.Code)
			if !tc.valid {
				assert.NotEmpty(t, result.Detail)
			}
		})
	}
}

func TestValidator_ForeignPlatformFastFail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("drive paths are native on windows")
	}
	validator := NewValidator()

	result := validator.Validate(context.Background(), `C:\Reports\2025`)
	assert.False(t, result.Valid)
	assert.EqualValues(t, CodeForeignPlatform, result.Code)
	assert.Contains(t, result.Detail, "Windows")
}

func TestValidator_NotWritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	validator := NewValidator()
	tmp := t.TempDir()
	locked := filepath.Join(tmp, "locked")
	require.Nil(t, os.Mkdir(locked, 0555))

	result := validator.Validate(context.Background(), locked)
	assert.True(t, result.Valid)
	assert.False(t, result.Writable)
	assert.EqualValues(t, CodeNotWritable, result.Code)
}

// TestValidator_RoundTrip verifies that a path reported valid-and-writable
// actually permits a write-then-delete.
func TestValidator_RoundTrip(t *testing.T) {
	validator := NewValidator()
	tmp := t.TempDir()

	result := validator.Validate(context.Background(), tmp)
	require.True(t, result.Valid)
	require.True(t, result.Writable)

	target := filepath.Join(tmp, "probe.txt")
	require.Nil(t, os.WriteFile(target, []byte("ok"), 0644))
	require.Nil(t, os.Remove(target))
}
