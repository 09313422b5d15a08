package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NativeTar reads tar and tar.gz archives in-process. Unlike ExecTar its
// listing carries sizes and modification times.
type NativeTar struct {
	// MaxOutput bounds the bytes read for one entry. Zero disables it.
	MaxOutput int64
	// Logger receives debug output.
	Logger zerolog.Logger
}

// List walks every header of the archive
func (t NativeTar) List(ctx context.Context, filename string, kind Kind) ([]Entry, error) {
	var entries []Entry
	err := t.walk(ctx, filename, func(_ context.Context, f archives.FileInfo) error {
		name := NormalizeName(f.NameInArchive)
		if name == "" {
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
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Extract reads the first file entry matching name
func (t NativeTar) Extract(ctx context.Context, filename string, kind Kind, name string) ([]byte, error) {
	name = NormalizeName(name)
	var data []byte
	err := t.walk(ctx, filename, func(ctx context.Context, f archives.FileInfo) error {
		if f.IsDir() || NormalizeName(f.NameInArchive) != name {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = readAll(ctx, r, t.MaxOutput); err != nil {
			return err
		}
		return errStop
	})
	switch {
	case errors.Is(err, errStop):
		return data, nil
	case err == nil:
		return nil, errors.Wrapf(ErrNotFound, "tar entry %s", name)
	default:
		return nil, err
	}
}

func (t NativeTar) walk(ctx context.Context, filename string, handleFile archives.FileHandler) error {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "tar %s", filename)
		}
		return errors.Wrapf(err, "cannot open tar %s", filename)
	}
	defer f.Close()

	format, input, err := archives.Identify(ctx, filepath.Base(filename), f)
	if err != nil {
		return errors.Wrapf(ErrUnsupportedFormat, "%s: %v", filename, err)
	}
	t.Logger.Debug().Msgf("Archive format %s detected", format.Extension())

	if _, ok := format.(archives.Zip); ok {
		return errors.Wrapf(ErrUnsupportedFormat, "%s is a zip archive", filename)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		// .gz is a special case, as it is a compressed tarball
		if format.Extension() != ".gz" {
			return errors.Wrapf(ErrUnsupportedFormat, "%s: format %s", filename, format.Extension())
		}
		var rc io.ReadCloser
		if rc, err = (archives.Gz{}).OpenReader(input); err != nil {
			return errors.Wrapf(ErrUnsupportedFormat, "%s: %v", filename, err)
		}
		defer rc.Close()
		extractor, input = archives.Tar{}, rc
	}

	err = extractor.Extract(ctx, input, handleFile)
	switch {
	case err == nil, errors.Is(err, errStop), errors.Is(err, ErrEntryTooLarge):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%s: %v", filename, err)
	}
}
