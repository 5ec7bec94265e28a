package location

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/docket/service/store"
)

// ScopeGlobal is the settings scope shared by all tenants.
const ScopeGlobal = "global"

// SettingArtifactRoot is the settings-table row name holding a configured
// artifact root.
const SettingArtifactRoot = "artifact_root"

// EnvArtifactRoot is the environment variable consulted when no configured
// location resolves.
const EnvArtifactRoot = "DOCKET_ARTIFACT_ROOT"

// logf is the package logging hook; tests silence it.
var logf = log.Printf

// LegacyResolver supplies the artifact root kept by the deployment-era
// external service. Optional; wired through an option on the facade.
type LegacyResolver interface {
	ArtifactRoot(ctx context.Context, tenant string) (string, error)
}

// Base is the resolved artifact root.
type Base struct {
	Path             string
	IsUserConfigured bool
	Source           string
}

// Locator resolves the effective artifact root through the fallback cascade:
// tenant setting, global setting, legacy service, environment variable,
// hard-coded default. Invalid or blank tiers are skipped with a log line;
// the default guarantees resolution always succeeds.
type Locator struct {
	store     store.Service
	validator *Validator
	legacy    LegacyResolver
	envVar    string
	fallback  string
}

// NewLocator creates a locator. envVar and fallback default to
// EnvArtifactRoot and DefaultRoot() when empty.
func NewLocator(storeService store.Service, validator *Validator, legacy LegacyResolver, envVar, fallback string) *Locator {
	if envVar == "" {
		envVar = EnvArtifactRoot
	}
	if fallback == "" {
		fallback = DefaultRoot()
	}
	return &Locator{store: storeService, validator: validator, legacy: legacy, envVar: envVar, fallback: fallback}
}

// Resolve returns the effective base for the tenant. It never fails: each
// unusable tier falls through to the next and the hard-coded default closes
// the cascade.
func (l *Locator) Resolve(ctx context.Context, tenant string) Base {
	if tenant != "" && tenant != ScopeGlobal {
		if path, ok := l.usable(ctx, "tenant", l.setting(ctx, tenant)); ok {
			return Base{Path: path, IsUserConfigured: true, Source: "tenant"}
		}
	}
	if path, ok := l.usable(ctx, "global", l.setting(ctx, ScopeGlobal)); ok {
		return Base{Path: path, IsUserConfigured: true, Source: "global"}
	}
	if l.legacy != nil {
		candidate, err := l.legacy.ArtifactRoot(ctx, tenant)
		if err != nil {
			logf("location: legacy resolver failed: %v", err)
		} else if path, ok := l.usable(ctx, "legacy", candidate); ok {
			return Base{Path: path, IsUserConfigured: true, Source: "legacy"}
		}
	}
	if path, ok := l.usable(ctx, "env", os.Getenv(l.envVar)); ok {
		return Base{Path: path, Source: "env"}
	}
	return Base{Path: l.fallback, Source: "default"}
}

// usable validates one tier's candidate; a blank candidate behaves exactly
// like "not configured" and falls through silently.
func (l *Locator) usable(ctx context.Context, tier, candidate string) (string, bool) {
	path := strings.TrimSpace(candidate)
	if path == "" {
		return "", false
	}
	result := l.validator.Validate(ctx, path)
	if !result.Valid || !result.Writable {
		logf("location: skipping %v path %q: %v", tier, path, result.Detail)
		return "", false
	}
	return path, true
}

// setting reads the configured artifact root for a scope; missing rows read
// as empty.
func (l *Locator) setting(ctx context.Context, scope string) string {
	row, err := l.store.Get(ctx, store.TableSettings,
		store.Filter{"scope": scope, "name": SettingArtifactRoot})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logf("location: failed to read %v setting: %v", scope, err)
		}
		return ""
	}
	return row["value"]
}

// SetLocation stores a scope's artifact root (test-before-save flows call
// Validate first). An empty path clears the setting back to "not configured".
func (l *Locator) SetLocation(ctx context.Context, scope, path string) error {
	filter := store.Filter{"scope": scope, "name": SettingArtifactRoot}
	patch := store.Row{"value": path}
	affected, err := l.store.Update(ctx, store.TableSettings, patch, filter)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	row := store.Row{"scope": scope, "name": SettingArtifactRoot, "value": path}
	if err = l.store.Insert(ctx, store.TableSettings, row); errors.Is(err, store.ErrDuplicate) {
		_, err = l.store.Update(ctx, store.TableSettings, patch, filter)
	}
	return err
}

// Location returns a scope's configured artifact root, empty when unset.
func (l *Locator) Location(ctx context.Context, scope string) string {
	return l.setting(ctx, scope)
}

// DefaultRoot returns the hard-coded artifact root used when nothing else is
// configured.
func DefaultRoot() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Docket", "Artifacts")
	}
	return filepath.Join(os.TempDir(), "docket-artifacts")
}
