package artifact

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/docket/internal/idgen"
	"github.com/viant/docket/internal/retry"
	"github.com/viant/docket/service/location"
	"github.com/viant/docket/tracing"
)

// CreateError reports that the operating system refused folder creation
// outright. It is not retried further.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create folder %v: %v", e.Path, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// BaseError reports that the resolved base location itself failed
// validation; the whole ensure operation fails on it.
type BaseError struct {
	Base   location.Base
	Detail string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("base location %v is unusable: %v", e.Base.Path, e.Detail)
}

// Ensured is the outcome of ensuring a work order's folder tree.
type Ensured struct {
	Path     string
	Base     location.Base
	Warnings []Warning
}

// Manager creates and verifies the folder tree for a work-order identifier.
// It is stateless: every call resolves the base and re-checks the filesystem.
type Manager struct {
	fs           afs.Service
	locator      *location.Locator
	validator    *location.Validator
	categories   []string
	verify       retry.Policy
	verifySynced retry.Policy
}

// NewManager creates a directory manager. verify bounds the
// eventually-visible wait on ordinary storage; verifySynced is the longer
// schedule applied when the base is recognized as cloud-synced.
func NewManager(locator *location.Locator, validator *location.Validator, categories []string, verify, verifySynced retry.Policy) *Manager {
	return &Manager{
		fs:           afs.New(),
		locator:      locator,
		validator:    validator,
		categories:   categories,
		verify:       verify,
		verifySynced: verifySynced,
	}
}

// Ensure makes sure the identifier's folder and its category subfolders
// exist under the tenant's effective base. Creation is recursive and
// idempotent, so duplicate or retried requests for the same identifier are
// safe even when tenants share the global base.
func (m *Manager) Ensure(ctx context.Context, tenant, identifier string) (*Ensured, error) {
	ctx, span := tracing.StartSpan(ctx, "artifact.Ensure")
	span.WithAttributes(map[string]string{"tenant": tenant, "identifier": identifier})
	ensured, err := m.ensure(ctx, tenant, identifier)
	tracing.EndSpan(span, err)
	return ensured, err
}

func (m *Manager) ensure(ctx context.Context, tenant, identifier string) (*Ensured, error) {
	base := m.locator.Resolve(ctx, tenant)

	// The default tiers may point at a folder nobody created yet; bring the
	// base itself into existence before judging it.
	if !base.IsUserConfigured {
		if exists, _ := m.fs.Exists(ctx, base.Path); !exists {
			if err := m.fs.Create(ctx, base.Path, file.DefaultDirOsMode, true); err != nil {
				return nil, &CreateError{Path: base.Path, Err: err}
			}
		}
	}
	if result := m.validator.Validate(ctx, base.Path); !result.Valid || !result.Writable {
		return nil, &BaseError{Base: base, Detail: result.Detail}
	}

	// A writable-bit check misses permission problems some synced mounts
	// only reveal on a real create, so probe with a throwaway folder first.
	probe := url.Join(base.Path, ".docket-probe-"+idgen.Short())
	if err := m.fs.Create(ctx, probe, file.DefaultDirOsMode, true); err != nil {
		return nil, &CreateError{Path: probe, Err: fmt.Errorf("folder creation probe failed: %w", err)}
	}
	_ = m.fs.Delete(ctx, probe)

	policy := m.verify
	if IsSynced(base.Path) {
		policy = m.verifySynced
	}

	ensured := &Ensured{Base: base, Path: url.Join(base.Path, Sanitize(identifier))}
	if warning, err := m.createVerified(ctx, ensured.Path, policy); err != nil {
		return nil, err
	} else if warning != nil {
		ensured.Warnings = append(ensured.Warnings, *warning)
	}

	// Category subfolders get the light treatment: same create, one-shot
	// verification attempt instead of the full wait schedule.
	light := policy
	light.MaxAttempts = 1
	for _, category := range append(append([]string{}, m.categories...), UploadedFolder) {
		sub := url.Join(ensured.Path, Sanitize(category))
		if warning, err := m.createVerified(ctx, sub, light); err != nil {
			return nil, err
		} else if warning != nil {
			ensured.Warnings = append(ensured.Warnings, *warning)
		}
	}

	// Real write-then-delete inside the identifier folder; failure is a
	// warning, not a failure, because the folders themselves are in place.
	probeFile := url.Join(ensured.Path, ".docket-write-test-"+idgen.Short())
	if err := m.fs.Upload(ctx, probeFile, file.DefaultFileOsMode, strings.NewReader("ok")); err != nil {
		ensured.Warnings = append(ensured.Warnings, Warning{
			Code:   WarnProbeWrite,
			Detail: fmt.Sprintf("test write in %v failed: %v", ensured.Path, err),
		})
	} else {
		_ = m.fs.Delete(ctx, probeFile)
	}
	return ensured, nil
}

// createVerified creates one folder and waits for it to become visible. A
// create call that errors while the folder never appears is fatal; a create
// that succeeded but whose verification timed out is reported as a warning,
// since slow-syncing storage commonly lags behind its own writes.
func (m *Manager) createVerified(ctx context.Context, folder string, policy retry.Policy) (*Warning, error) {
	createErr := m.fs.Create(ctx, folder, file.DefaultDirOsMode, true)

	visible, err := retry.WaitTrue(ctx, policy, func() (bool, error) {
		exists, existsErr := m.fs.Exists(ctx, folder)
		if existsErr != nil {
			return false, nil // transient probe failure, keep polling
		}
		return exists, nil
	})
	if err != nil {
		return nil, err
	}
	if visible {
		return nil, nil
	}
	if createErr != nil {
		return nil, &CreateError{Path: folder, Err: createErr}
	}
	return &Warning{
		Code:   WarnVerifyTimeout,
		Detail: fmt.Sprintf("created %v but it did not become visible within the wait budget", folder),
	}, nil
}
