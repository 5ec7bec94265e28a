package docket

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Nil(t, config.Validate())
	assert.EqualValues(t, 20, config.Sequence.MaxAttempts)
	assert.EqualValues(t, 1, config.Sequence.Initial)
	assert.NotEmpty(t, config.Artifact.Categories)
}

func TestConfig_Validate(t *testing.T) {
	config := DefaultConfig()
	config.Sequence.MaxAttempts = 0
	assert.NotNil(t, config.Validate())

	config = DefaultConfig()
	config.Artifact.VerifyAttempts = 0
	assert.NotNil(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	yamlText := `
identifier:
  prefix: TX
sequence:
  initial: 1000
  maxAttempts: 10
artifact:
  categories:
    - Density
    - Soils
  verifyAttempts: 3
  verifySyncedAttempts: 8
`
	path := filepath.Join(t.TempDir(), "docket.yaml")
	require.Nil(t, os.WriteFile(path, []byte(yamlText), 0644))

	config, err := LoadConfig(context.Background(), path)
	require.Nil(t, err)
	assert.EqualValues(t, "TX", config.Identifier.Prefix)
	assert.EqualValues(t, 1000, config.Sequence.Initial)
	assert.EqualValues(t, 10, config.Sequence.MaxAttempts)
	assert.EqualValues(t, []string{"Density", "Soils"}, config.Artifact.Categories)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotNil(t, err)
}
