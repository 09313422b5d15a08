package archive

import (
	"context"

	"github.com/rs/zerolog"
)

// Container is an opened archive exposing its entry table
type Container interface {
	// Kind returns the archive format of the container.
	Kind() Kind
	// Entries returns the entry table in archive order.
	Entries(ctx context.Context) ([]Entry, error)
	// Lookup returns the entry named name, if any.
	Lookup(ctx context.Context, name string) (Entry, bool, error)
	// ReadEntry returns the bytes of a single file entry. It returns
	// ErrNotFound if the entry does not exist or is a directory.
	ReadEntry(ctx context.Context, name string) ([]byte, error)
	// Close releases resources held by the container.
	Close() error
}

// OpenOpts holds options shared by container implementations
type OpenOpts struct {
	// MaxEntrySize bounds the bytes read into memory for one entry.
	// Zero or negative disables the ceiling.
	MaxEntrySize int64
	// Tool lists and extracts tar archives.
	Tool TarTool
	// Logger receives debug output.
	Logger zerolog.Logger
}

// Link is one element of an archive chain. The outermost link has no
// parent and its Path is a real filesystem path; nested links carry the
// entry name inside their parent container. A link owns its container.
type Link struct {
	Path      string
	Kind      Kind
	Parent    *Link
	Container Container
}

// Depth returns the number of links from the outermost archive to l
func (l *Link) Depth() int {
	n := 0
	for cur := l; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}

// Outermost returns the link of the real archive file
func (l *Link) Outermost() *Link {
	cur := l
	for cur != nil && cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Close closes the container of l and of all its parents
func (l *Link) Close() error {
	var first error
	for cur := l; cur != nil; cur = cur.Parent {
		if cur.Container == nil {
			continue
		}
		if err := cur.Container.Close(); err != nil && first == nil {
			first = err
		}
		cur.Container = nil
	}
	return first
}
