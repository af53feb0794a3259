package platform

import (
	"os"

	"github.com/pingcap/errors"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if IsWindows() {
		return nil
	}
	return os.Chmod(path, mode)
}

// IsOwnerOnly reports whether path grants no permissions to group or others.
// Always true on Windows.
func IsOwnerOnly(path string) (bool, error) {
	if IsWindows() {
		return true, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Annotatef(err, "stat %s", path)
	}
	return info.Mode().Perm()&0077 == 0, nil
}
