package docket

import (
	"github.com/viant/docket/service/location"
	"github.com/viant/docket/service/store"
)

// Option customises the Service facade.
type Option func(s *Service)

// WithConfig sets the configuration; nil falls back to DefaultConfig.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithStore sets the persistence collaborator. Without this option an
// in-process memory store is used, which is only safe for a single instance.
func WithStore(storeService store.Service) Option {
	return func(s *Service) { s.store = storeService }
}

// WithLegacyResolver wires the deployment-era external service consulted
// between the configured locations and the environment default.
func WithLegacyResolver(resolver location.LegacyResolver) Option {
	return func(s *Service) { s.legacy = resolver }
}

// WithCategories overrides the report categories that get per-work-order
// subfolders.
func WithCategories(categories ...string) Option {
	return func(s *Service) { s.config.Artifact.Categories = categories }
}
