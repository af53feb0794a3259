package platform

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pingcap/errors"
)

// Permission constants shared by every provisioned file.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// IsWindows returns true if the current OS is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// BinaryName returns the name npm gives a local bin shim on this platform.
// On Windows the shim is a batch file, e.g. "codex.cmd".
func BinaryName(name string) string {
	if IsWindows() {
		return name + ".cmd"
	}
	return name
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers never mistake a permission problem for absence.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Annotatef(err, "stat %s", path)
}

// WriteFileSecure creates the parent directory of path if needed, writes data
// and narrows the mode to perm. An existing file is truncated.
func WriteFileSecure(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return errors.Annotatef(err, "creating directory %s", dir)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return errors.Annotatef(err, "writing %s", path)
	}
	// WriteFile keeps the old mode of an existing file.
	if err := Chmod(path, perm); err != nil {
		return errors.Annotatef(err, "setting permissions on %s", path)
	}
	return nil
}

// CopyFile copies src to dst byte for byte and sets perm on dst. The
// destination directory is created if missing. The new content is written to
// a temporary file at perm and renamed over dst, so dst is never partially
// written or readable at its old mode. When dst already is src (same inode,
// e.g. through a symlinked home) only the mode is applied. Returns the number
// of bytes copied.
func CopyFile(src, dst string, perm os.FileMode) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Annotatef(err, "opening %s", src)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return 0, errors.Annotatef(err, "stat %s", src)
	}
	if info.IsDir() {
		return 0, errors.Errorf("%s is a directory", src)
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		if err := Chmod(dst, perm); err != nil {
			return 0, errors.Annotatef(err, "setting permissions on %s", dst)
		}
		return info.Size(), nil
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return 0, errors.Annotatef(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return 0, errors.Annotatef(err, "creating temporary file in %s", dir)
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmpPath)

	if err := Chmod(tmpPath, perm); err != nil {
		tmp.Close()
		return 0, errors.Annotatef(err, "setting permissions on %s", tmpPath)
	}
	n, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		return n, errors.Annotatef(err, "copying %s to %s", src, dst)
	}
	if err := tmp.Close(); err != nil {
		return n, errors.Annotatef(err, "closing %s", tmpPath)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return n, errors.Annotatef(err, "replacing %s", dst)
	}
	return n, nil
}
