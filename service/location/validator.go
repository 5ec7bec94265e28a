// Package location owns the storage-location concerns: defensive validation
// of user-configured paths and resolution of the effective artifact root
// through the configured fallback cascade. Paths may live on cloud-synced
// media where existence and writability lag behind filesystem calls, so
// validation stays conservative and failure messages stay actionable.
package location

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/viant/afs"
)

// Code classifies a validation outcome so that a configuration UI can react
// specifically instead of parsing messages.
type Code string

const (
	CodeOK              Code = ""
	CodeEmpty           Code = "empty"
	CodeForeignPlatform Code = "foreign_platform"
	CodeIllegalChars    Code = "illegal_characters"
	CodeCreateFolder    Code = "create_folder"
	CodeNotFound        Code = "not_found"
	CodeNotDirectory    Code = "not_directory"
	CodeNotWritable     Code = "not_writable"
	CodeProbeFailed     Code = "probe_failed"
)

// Result is the structured outcome of validating a candidate path. Validation
// problems are results, never errors raised past this layer.
type Result struct {
	Valid    bool
	Writable bool
	Code     Code
	Detail   string
}

func invalid(code Code, format string, args ...interface{}) Result {
	return Result{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Validator checks whether a candidate artifact root exists, is a directory
// and is writable.
type Validator struct {
	fs afs.Service
}

// NewValidator creates a path validator.
func NewValidator() *Validator {
	return &Validator{fs: afs.New()}
}

// Validate runs the full check sequence against candidate. Scheme URLs
// (s3://, gs://, ...) skip the local-platform checks; their reachability is
// probed through afs directly.
func (v *Validator) Validate(ctx context.Context, candidate string) Result {
	path := strings.TrimSpace(candidate)
	if path == "" {
		return invalid(CodeEmpty, "path is empty")
	}

	if isSchemeURL(path) {
		return v.validateRemote(ctx, path)
	}

	// Fail fast on paths written for a different operating environment
	// instead of timing out on filesystem calls that can never succeed.
	if hasDriveLetter(path) && runtime.GOOS != "windows" {
		return invalid(CodeForeignPlatform,
			"%q is a Windows drive path but this server runs %v; configure a path that exists on this server", path, runtime.GOOS)
	}
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") {
		return invalid(CodeForeignPlatform,
			"%q is a POSIX path but this server runs Windows; configure a drive path instead", path)
	}

	if ch, ok := illegalChar(path); ok {
		return invalid(CodeIllegalChars, "path contains character %q which is not allowed in folder names", ch)
	}

	exists, err := v.fs.Exists(ctx, path)
	if err != nil {
		return invalid(CodeProbeFailed, "failed to check %v: %v", path, err)
	}
	if !exists {
		parent := filepath.Dir(path)
		if parentExists, _ := v.fs.Exists(ctx, parent); parentExists {
			return invalid(CodeCreateFolder,
				"folder %q does not exist yet; create it first, then save this setting", path)
		}
		return invalid(CodeNotFound, "path %q does not exist", path)
	}

	object, err := v.fs.Object(ctx, path)
	if err != nil {
		return invalid(CodeProbeFailed, "failed to inspect %v: %v", path, err)
	}
	if !object.IsDir() {
		return invalid(CodeNotDirectory, "%q is a file, not a folder", path)
	}

	if !canWrite(path) {
		// Valid location, but artifacts cannot be filed there.
		return Result{Valid: true, Code: CodeNotWritable,
			Detail: fmt.Sprintf("folder %q exists but is not writable by this service", path)}
	}
	return Result{Valid: true, Writable: true}
}

// validateRemote checks a scheme URL through afs only; write permission is
// established later by the directory manager's create/remove probe.
func (v *Validator) validateRemote(ctx context.Context, url string) Result {
	exists, err := v.fs.Exists(ctx, url)
	if err != nil {
		return invalid(CodeProbeFailed, "failed to reach %v: %v", url, err)
	}
	if !exists {
		return invalid(CodeNotFound, "location %q does not exist", url)
	}
	return Result{Valid: true, Writable: true}
}

// hasDriveLetter reports whether the path starts with a Windows drive prefix
// such as C:\ or D:/.
func hasDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isSchemeURL reports whether the path is an afs URL rather than a local
// path; a Windows drive prefix is not a scheme.
func isSchemeURL(path string) bool {
	return strings.Contains(path, "://")
}

// illegalChar returns the first character that no supported filesystem
// convention accepts in folder names, ignoring a recognized drive prefix.
func illegalChar(path string) (rune, bool) {
	rest := path
	if hasDriveLetter(path) {
		rest = path[2:]
	}
	for _, r := range rest {
		if r < 0x20 || strings.ContainsRune(`<>:"|?*`, r) {
			return r, true
		}
	}
	return 0, false
}
