package browser

import (
	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/vpath"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when nothing exists at a virtual path
	ErrNotFound = archive.ErrNotFound
	// ErrForbidden is returned when a virtual path escapes the root
	ErrForbidden = vpath.ErrForbidden
	// ErrIsDirectory is returned when file content is asked of a directory
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotDirectory is returned when directory stats are asked of
	// anything but a real directory
	ErrNotDirectory = errors.New("not a directory")
)
