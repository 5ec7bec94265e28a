package docket

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/docket/internal/retry"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON or YAML. The zero-value is useful, all nested
// fields inherit their package defaults.
type Config struct {
	Identifier IdentifierConfig `json:"identifier" yaml:"identifier"`
	Sequence   SequenceConfig   `json:"sequence" yaml:"sequence"`
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
	Artifact   ArtifactConfig   `json:"artifact" yaml:"artifact"`
}

// IdentifierConfig controls identifier formatting.
type IdentifierConfig struct {
	// Prefix is the default identifier prefix; tenants may override it with
	// a settings row.
	Prefix string `json:"prefix" yaml:"prefix"`
}

// SequenceConfig controls counter allocation.
type SequenceConfig struct {
	// Initial is the deployment-era offset applied when a counter row is
	// first created, so new identifiers never collide with historically
	// seeded records.
	Initial int `json:"initial" yaml:"initial"`

	// MaxAttempts bounds the allocate/verify retry loop.
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// StorageConfig controls base-location resolution.
type StorageConfig struct {
	// EnvVar names the environment variable consulted when no configured
	// location resolves.
	EnvVar string `json:"envVar" yaml:"envVar"`

	// DefaultRoot overrides the hard-coded fallback root.
	DefaultRoot string `json:"defaultRoot" yaml:"defaultRoot"`
}

// ArtifactConfig controls folder creation and verification.
type ArtifactConfig struct {
	// Categories lists the report categories that get a subfolder per work
	// order, next to the uploaded-documents folder.
	Categories []string `json:"categories" yaml:"categories"`

	// VerifyAttempts bounds the folder-visibility wait on ordinary storage.
	VerifyAttempts int `json:"verifyAttempts" yaml:"verifyAttempts"`

	// VerifySyncedAttempts bounds the longer wait applied to cloud-synced
	// storage.
	VerifySyncedAttempts int `json:"verifySyncedAttempts" yaml:"verifySyncedAttempts"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Identifier: IdentifierConfig{Prefix: ""},
		Sequence:   SequenceConfig{Initial: 1, MaxAttempts: 20},
		Storage:    StorageConfig{},
		Artifact: ArtifactConfig{
			Categories:           []string{"Density", "Concrete", "Soils", "Asphalt"},
			VerifyAttempts:       5,
			VerifySyncedAttempts: 12,
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Sequence.MaxAttempts <= 0 {
		return fmt.Errorf("sequence.maxAttempts must be > 0")
	}
	if c.Sequence.Initial < 0 {
		return fmt.Errorf("sequence.initial must be >= 0")
	}
	if c.Artifact.VerifyAttempts <= 0 || c.Artifact.VerifySyncedAttempts <= 0 {
		return fmt.Errorf("artifact verify attempts must be > 0")
	}
	return nil
}

// LoadConfig reads a YAML configuration from the supplied afs URL (file
// path, s3://, gs://, ...).
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// allocationPolicy derives the allocator's retry policy.
func (c *Config) allocationPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = c.Sequence.MaxAttempts
	return policy
}

// verifyPolicy derives the folder-visibility wait for ordinary storage.
func (c *Config) verifyPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Artifact.VerifyAttempts,
		Initial:     100 * time.Millisecond,
		Multiplier:  1.5,
		Max:         time.Second,
	}
}

// verifySyncedPolicy derives the longer wait for cloud-synced storage.
func (c *Config) verifySyncedPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Artifact.VerifySyncedAttempts,
		Initial:     250 * time.Millisecond,
		Multiplier:  1.5,
		Max:         3 * time.Second,
	}
}
