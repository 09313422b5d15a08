package archive

import (
	"context"

	"github.com/pkg/errors"
)

// TarTool lists and extracts tar archives. Tar has no random access entry
// table, so every call streams the archive from the start.
type TarTool interface {
	// List returns the entry table of the archive.
	List(ctx context.Context, filename string, kind Kind) ([]Entry, error)
	// Extract returns the bytes of exactly one entry. It returns
	// ErrNotFound when the archive has no such entry.
	Extract(ctx context.Context, filename string, kind Kind, name string) ([]byte, error)
}

type tarContainer struct {
	filename string
	kind     Kind
	tool     TarTool
	entries  []Entry
	listed   bool
}

// OpenTar returns a container over the tar or tar.gz archive at filename.
// The entry table is listed lazily, at most once per container.
func OpenTar(filename string, kind Kind, opts OpenOpts) (Container, error) {
	if kind != Tar && kind != TarGz {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s is not a tarball", filename)
	}
	if opts.Tool == nil {
		return nil, errors.Wrap(ErrExternalTool, "no tar tool configured")
	}
	return &tarContainer{
		filename: filename,
		kind:     kind,
		tool:     opts.Tool,
	}, nil
}

func (c *tarContainer) Kind() Kind {
	return c.kind
}

func (c *tarContainer) Entries(ctx context.Context) ([]Entry, error) {
	if c.listed {
		return c.entries, nil
	}
	entries, err := c.tool.List(ctx, c.filename, c.kind)
	if err != nil {
		return nil, err
	}
	c.entries, c.listed = entries, true
	return c.entries, nil
}

func (c *tarContainer) Lookup(ctx context.Context, name string) (Entry, bool, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := Find(entries, name)
	return e, ok, nil
}

// ReadEntry extracts name without listing the table. When the table has
// already been listed the name is resolved to its verbatim form first,
// otherwise a miss is retried once with the "./" member prefix.
func (c *tarContainer) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	name = NormalizeName(name)
	if c.listed {
		e, ok := Find(c.entries, name)
		if !ok || e.IsDir {
			return nil, errors.Wrapf(ErrNotFound, "tar entry %s", name)
		}
		target := name
		if e.raw != "" {
			target = e.raw
		}
		return c.tool.Extract(ctx, c.filename, c.kind, target)
	}
	data, err := c.tool.Extract(ctx, c.filename, c.kind, name)
	if errors.Is(err, ErrNotFound) {
		if dotted, derr := c.tool.Extract(ctx, c.filename, c.kind, "./"+name); derr == nil {
			return dotted, nil
		}
	}
	return data, err
}

func (c *tarContainer) Close() error {
	return nil
}
