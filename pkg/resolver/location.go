package resolver

import (
	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/vpath"
)

// Kind tags what a virtual path denotes
type Kind int

const (
	// NotFound means nothing exists at the path
	NotFound Kind = iota
	// RealFile is a regular file of the real filesystem
	RealFile
	// RealDirectory is a directory of the real filesystem
	RealDirectory
	// ArchiveDirectory is a directory inside an archive, explicit or implied
	ArchiveDirectory
	// ArchiveFile is a file entry inside an archive
	ArchiveFile
)

func (k Kind) String() string {
	switch k {
	case RealFile:
		return "real-file"
	case RealDirectory:
		return "real-directory"
	case ArchiveDirectory:
		return "archive-directory"
	case ArchiveFile:
		return "archive-file"
	default:
		return "not-found"
	}
}

// IsDir reports whether the location can be listed
func (k Kind) IsDir() bool {
	return k == RealDirectory || k == ArchiveDirectory
}

// InArchive reports whether the location lies behind an archive boundary
func (k Kind) InArchive() bool {
	return k == ArchiveDirectory || k == ArchiveFile
}

// Location is the outcome of resolving one virtual path. It owns the
// archive chain opened during resolution and must be closed.
type Location struct {
	Kind Kind
	// VirtualPath is the normalized path that was resolved.
	VirtualPath vpath.Path
	// RealPath is the filesystem path of a real file or directory, or of
	// the outermost archive file.
	RealPath string
	// BoundaryPath is the virtual path of the outermost archive file.
	BoundaryPath vpath.Path
	// Chain is the innermost archive link.
	Chain *archive.Link
	// InternalPath is relative to the innermost container, without
	// leading or trailing separator.
	InternalPath string
	// SizeHint is the size in bytes of a file, negative when unknown.
	SizeHint int64
}

// Container returns the innermost opened container, nil for real locations
func (l *Location) Container() archive.Container {
	if l == nil || l.Chain == nil {
		return nil
	}
	return l.Chain.Container
}

// ReadOnly reports whether the content at the location cannot be written
func (l *Location) ReadOnly() bool {
	return l.Kind.InArchive()
}

// Close releases every container of the archive chain
func (l *Location) Close() error {
	if l == nil || l.Chain == nil {
		return nil
	}
	return l.Chain.Close()
}
