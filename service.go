package docket

import (
	"context"
	"time"

	"github.com/viant/docket/service/artifact"
	"github.com/viant/docket/service/identifier"
	"github.com/viant/docket/service/location"
	"github.com/viant/docket/service/sequence"
	"github.com/viant/docket/service/store"
	"github.com/viant/docket/service/store/memory"
)

// Service is the embedding facade wiring the identifier and artifact
// services together.
type Service struct {
	config    *Config
	store     store.Service
	legacy    location.LegacyResolver
	validator *location.Validator
	locator   *location.Locator
	sequencer *sequence.Service
	formatter *identifier.Service
	manager   *artifact.Manager
	namer     *artifact.Namer
	writer    *artifact.Writer
}

// New creates a Service with the supplied options.
func New(options ...Option) *Service {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	s.init()
	return s
}

func (s *Service) init() {
	if s.store == nil {
		s.store = memory.New()
	}
	policy := s.config.allocationPolicy()
	s.validator = location.NewValidator()
	s.locator = location.NewLocator(s.store, s.validator, s.legacy,
		s.config.Storage.EnvVar, s.config.Storage.DefaultRoot)
	s.sequencer = sequence.New(s.store, s.config.Sequence.Initial, policy)
	s.formatter = identifier.New(s.store, s.sequencer,
		s.config.Identifier.Prefix, s.config.Sequence.MaxAttempts)
	s.manager = artifact.NewManager(s.locator, s.validator,
		s.config.Artifact.Categories, s.config.verifyPolicy(), s.config.verifySyncedPolicy())
	s.namer = artifact.NewNamer(s.locator)
	s.writer = artifact.NewWriter()
}

// AllocateIdentifier allocates and verifies the next work-order identifier
// for the scope; an empty scope allocates from the shared global domain.
func (s *Service) AllocateIdentifier(ctx context.Context, scope string) (string, error) {
	if scope == "" {
		scope = sequence.ScopeGlobal
	}
	return s.formatter.Next(ctx, scope)
}

// EnsureDirectory creates and verifies the folder tree for a work-order
// identifier under the tenant's effective base location.
func (s *Service) EnsureDirectory(ctx context.Context, tenant, id string) (*artifact.Ensured, error) {
	return s.manager.Ensure(ctx, tenant, id)
}

// NextArtifactName computes the filename for the next artifact in the
// category, with a revision suffix when regenerating.
func (s *Service) NextArtifactName(ctx context.Context, tenant, id, category string, fieldDate time.Time, regenerate bool) (*artifact.Name, error) {
	return s.namer.NextName(ctx, tenant, id, category, fieldDate, regenerate)
}

// Filed reports the outcome of persisting an artifact. Persistence failure
// never invalidates the generated bytes: Stored is false and Warning carries
// the reason, but the content stays with the caller.
type Filed struct {
	Path    string
	Stored  bool
	Warning string
}

// WriteArtifact persists the artifact bytes at targetURL. A failed write
// degrades to "generated but not filed" rather than an error.
func (s *Service) WriteArtifact(ctx context.Context, data []byte, targetURL string) Filed {
	if err := s.writer.Write(ctx, data, targetURL); err != nil {
		return Filed{Path: targetURL, Warning: err.Error()}
	}
	return Filed{Path: targetURL, Stored: true}
}

// ValidatePath checks a candidate storage path on behalf of a configuration
// UI (test-before-save).
func (s *Service) ValidatePath(ctx context.Context, candidate string) location.Result {
	return s.validator.Validate(ctx, candidate)
}

// ResolveEffectivePath reports which base location the tenant currently
// resolves to and whether it was user-configured.
func (s *Service) ResolveEffectivePath(ctx context.Context, tenant string) location.Base {
	return s.locator.Resolve(ctx, tenant)
}

// SetLocation stores a scope's artifact root; use location.ScopeGlobal for
// the shared fallback.
func (s *Service) SetLocation(ctx context.Context, scope, path string) error {
	return s.locator.SetLocation(ctx, scope, path)
}

// Location returns a scope's configured artifact root, empty when unset.
func (s *Service) Location(ctx context.Context, scope string) string {
	return s.locator.Location(ctx, scope)
}

// Categories returns the configured report categories.
func (s *Service) Categories() []string {
	return append([]string{}, s.config.Artifact.Categories...)
}
