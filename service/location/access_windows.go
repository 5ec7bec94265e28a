//go:build windows

package location

import "os"

// canWrite approximates a write-permission probe from file attributes; on
// Windows the read-only attribute is the only signal available without an
// actual write, which the directory manager performs later anyway.
func canWrite(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 != 0
}
