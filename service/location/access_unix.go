//go:build !windows

package location

import "golang.org/x/sys/unix"

// canWrite probes write permission without performing an actual write.
func canWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
