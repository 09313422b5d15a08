//go:build !linux && !darwin && !freebsd

package browser

import "github.com/pkg/errors"

func filesystemSize(path string) (int64, error) {
	return 0, errors.Errorf("filesystem size of %s not supported on this platform", path)
}
