// Package artifact manages the on-disk layout of generated report artifacts:
// one folder per work-order identifier, one subfolder per report category,
// files named by the convention in the filename sub-package. Every operation
// re-derives truth from the filesystem; nothing caches an "exists" belief,
// because cloud-synced media can change underneath the process at any time.
package artifact

import "strings"

// UploadedFolder holds reference documents uploaded for a work order, next to
// the per-category report folders.
const UploadedFolder = "Uploaded"

// Warning codes reported by Ensure. Verification timeouts and probe-write
// failures are kept distinct so that a sync delay cannot mask a genuine
// permission problem.
const (
	WarnVerifyTimeout = "verify_timeout"
	WarnProbeWrite    = "probe_write"
)

// Warning is a non-fatal problem observed while ensuring a folder tree.
type Warning struct {
	Code   string
	Detail string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Detail
}

// Sanitize turns an identifier or category label into a filesystem-safe
// folder name, replacing characters any supported filesystem rejects with an
// underscore.
func Sanitize(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range strings.TrimSpace(name) {
		if r < 0x20 || strings.ContainsRune(`<>:"|?*/\`, r) {
			sb.WriteByte('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// syncedMarkers are path fragments that identify storage watched by a
// background sync agent.
var syncedMarkers = []string{"dropbox", "onedrive", "google drive", "googledrive"}

// IsSynced reports whether the base is cloud-synced storage, where folder
// operations may not be immediately visible to subsequent reads. Non-file
// schemes (s3://, gs://) always count as synced.
func IsSynced(base string) bool {
	if i := strings.Index(base, "://"); i >= 0 && base[:i] != "file" {
		return true
	}
	lower := strings.ToLower(base)
	for _, marker := range syncedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
