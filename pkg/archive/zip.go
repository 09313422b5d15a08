package archive

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

type readerAtSeeker interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

type zipContainer struct {
	src     readerAtSeeker
	closer  io.Closer
	entries []Entry
	index   map[string]int
	opts    OpenOpts
}

// OpenZipFile opens the zip archive at filename and loads its entry table
func OpenZipFile(ctx context.Context, filename string, opts OpenOpts) (Container, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "zip %s", filename)
		}
		return nil, errors.Wrapf(err, "cannot open zip %s", filename)
	}
	c, err := newZip(ctx, f, f, opts)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "zip %s", filename)
	}
	return c, nil
}

// OpenZipBytes opens an in-memory zip archive, typically an entry read
// from a parent container.
func OpenZipBytes(ctx context.Context, data []byte, opts OpenOpts) (Container, error) {
	return newZip(ctx, bytes.NewReader(data), nil, opts)
}

func newZip(ctx context.Context, src readerAtSeeker, closer io.Closer, opts OpenOpts) (*zipContainer, error) {
	c := &zipContainer{
		src:    src,
		closer: closer,
		index:  make(map[string]int),
		opts:   opts,
	}
	err := archives.Zip{}.Extract(ctx, src, func(_ context.Context, f archives.FileInfo) error {
		name := NormalizeName(f.NameInArchive)
		if name == "" {
			return nil
		}
		if _, ok := c.index[name]; ok {
			return nil
		}
		e := Entry{
			Name:     name,
			IsDir:    f.IsDir(),
			Size:     f.Size(),
			Modified: f.ModTime(),
			raw:      f.NameInArchive,
		}
		if e.IsDir {
			e.Size = 0
		}
		c.index[name] = len(c.entries)
		c.entries = append(c.entries, e)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot read zip entry table: %v", err)
	}
	opts.Logger.Trace().Msgf("Zip entry table loaded with %d entries", len(c.entries))
	return c, nil
}

func (c *zipContainer) Kind() Kind {
	return Zip
}

func (c *zipContainer) Entries(_ context.Context) ([]Entry, error) {
	return c.entries, nil
}

func (c *zipContainer) Lookup(_ context.Context, name string) (Entry, bool, error) {
	i, ok := c.index[NormalizeName(name)]
	if !ok {
		return Entry{}, false, nil
	}
	return c.entries[i], true, nil
}

func (c *zipContainer) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	name = NormalizeName(name)
	e, ok, _ := c.Lookup(ctx, name)
	if !ok || e.IsDir {
		return nil, errors.Wrapf(ErrNotFound, "zip entry %s", name)
	}
	if limit := c.opts.MaxEntrySize; limit > 0 && e.Size > limit {
		return nil, errors.Wrapf(ErrEntryTooLarge, "zip entry %s is %d bytes", name, e.Size)
	}

	var data []byte
	err := archives.Zip{}.Extract(ctx, c.src, func(ctx context.Context, f archives.FileInfo) error {
		if f.IsDir() || NormalizeName(f.NameInArchive) != name {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = readAll(ctx, r, c.opts.MaxEntrySize); err != nil {
			return err
		}
		return errStop
	})
	switch {
	case errors.Is(err, errStop):
		c.opts.Logger.Trace().Msgf("Read zip entry %s (%d bytes)", name, len(data))
		return data, nil
	case err == nil:
		return nil, errors.Wrapf(ErrNotFound, "zip entry %s", name)
	case errors.Is(err, ErrEntryTooLarge), ctx.Err() != nil:
		return nil, err
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot read zip entry %s: %v", name, err)
	}
}

func (c *zipContainer) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
