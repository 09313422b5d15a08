//go:build linux || darwin || freebsd

package browser

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// filesystemSize returns the size in bytes of the filesystem holding path
func filesystemSize(path string) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, errors.Wrapf(err, "cannot statfs %s", path)
	}
	return int64(st.Bsize) * int64(st.Blocks), nil
}
