// Package resolver classifies virtual paths that may cross any number of
// archive boundaries.
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/vpath"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options holds resolver options
type Options struct {
	// Root is the directory every virtual path is relative to
	Root string
	// Tool lists and extracts tar archives
	Tool archive.TarTool
	// MaxEntrySize bounds nested archive bytes read into memory
	MaxEntrySize int64
	// Logger receives debug output
	Logger zerolog.Logger
}

// Resolver walks virtual paths. It keeps no state between calls: every
// resolution opens its own containers.
type Resolver struct {
	root   string
	opts   Options
	logger zerolog.Logger
}

// New creates a resolver rooted at opts.Root
func New(opts Options) (*Resolver, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid root %q", opts.Root)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot stat root %q", root)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("root %q is not a directory", root)
	}
	return &Resolver{
		root:   root,
		opts:   opts,
		logger: opts.Logger.With().Str("root", root).Logger(),
	}, nil
}

// Root returns the absolute root directory
func (r *Resolver) Root() string {
	return r.root
}

// Resolve parses and resolves raw. A missing path yields a NotFound
// location and no error.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Location, error) {
	p, err := vpath.Parse(raw)
	if err != nil {
		return nil, err
	}
	return r.ResolvePath(ctx, p)
}

// ResolvePath resolves an already parsed virtual path
func (r *Resolver) ResolvePath(ctx context.Context, p vpath.Path) (*Location, error) {
	loc := &Location{VirtualPath: p, SizeHint: -1}

	// the first existing regular file with an archive suffix is the boundary
	for i := range p {
		realPath := p[:i+1].Real(r.root)
		fi, err := os.Stat(realPath)
		if err != nil {
			if isAbsent(err) {
				break
			}
			return nil, errors.Wrapf(err, "cannot stat %s", realPath)
		}
		if fi.IsDir() {
			continue
		}
		kind := archive.KindOf(p[i])
		if !fi.Mode().IsRegular() || kind == archive.Unknown {
			break
		}
		if err := vpath.Confine(r.root, realPath); err != nil {
			return nil, err
		}
		loc.RealPath = realPath
		loc.BoundaryPath = p[:i+1]
		return r.resolveArchive(ctx, loc, kind, p[i+1:])
	}

	return r.resolveReal(loc)
}

func (r *Resolver) resolveReal(loc *Location) (*Location, error) {
	realPath := loc.VirtualPath.Real(r.root)
	fi, err := os.Stat(realPath)
	if err != nil {
		if isAbsent(err) {
			return loc, nil
		}
		return nil, errors.Wrapf(err, "cannot stat %s", realPath)
	}
	if err := vpath.Confine(r.root, realPath); err != nil {
		return nil, err
	}
	loc.RealPath = realPath
	if fi.IsDir() {
		loc.Kind = RealDirectory
	} else {
		loc.Kind = RealFile
		loc.SizeHint = fi.Size()
	}
	return loc, nil
}

func (r *Resolver) resolveArchive(ctx context.Context, loc *Location, kind archive.Kind, rest []string) (*Location, error) {
	logger := r.logger.With().Str("archive", loc.BoundaryPath.String()).Logger()
	logger.Debug().Msgf("Archive boundary found (%s)", kind)

	if kind == archive.Zip {
		c, err := archive.OpenZipFile(ctx, loc.RealPath, r.openOpts(logger))
		if err != nil {
			return r.fail(loc, err)
		}
		loc.Chain = &archive.Link{Path: loc.RealPath, Kind: kind, Container: c}
		return r.walkZip(ctx, loc, rest, logger)
	}

	c, err := archive.OpenTar(loc.RealPath, kind, r.openOpts(logger))
	if err != nil {
		return r.fail(loc, err)
	}
	loc.Chain = &archive.Link{Path: loc.RealPath, Kind: kind, Container: c}

	// a zip inside the tarball is extracted once and browsed as a zip
	for i, seg := range rest {
		if !archive.IsZipName(seg) {
			continue
		}
		name := strings.Join(rest[:i+1], "/")
		if err := r.descend(ctx, loc, name, logger); err != nil {
			if r.isTarDir(ctx, c, name) {
				logger.Debug().Msgf("%s is a directory", name)
				continue
			}
			return r.fail(loc, err)
		}
		return r.walkZip(ctx, loc, rest[i+1:], logger)
	}

	internal := strings.Join(rest, "/")
	if internal == "" {
		loc.Kind = ArchiveDirectory
		return loc, nil
	}
	entries, err := c.Entries(ctx)
	if err != nil {
		return r.fail(loc, err)
	}
	return r.classify(loc, entries, internal)
}

// isTarDir reports whether name is a directory of the tarball, either
// explicitly or implied by the entries below it.
func (r *Resolver) isTarDir(ctx context.Context, c archive.Container, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	entries, err := c.Entries(ctx)
	if err != nil {
		return false
	}
	if e, ok := archive.Find(entries, name); ok {
		return e.IsDir
	}
	return archive.HasChildren(entries, name)
}

// walkZip descends into every nested zip named along rest, then classifies
// what remains of the path inside the innermost container.
func (r *Resolver) walkZip(ctx context.Context, loc *Location, rest []string, logger zerolog.Logger) (*Location, error) {
	base := 0
	for i, seg := range rest {
		if !archive.IsZipName(seg) {
			continue
		}
		name := strings.Join(rest[base:i+1], "/")
		e, ok, err := loc.Container().Lookup(ctx, name)
		if err != nil {
			return r.fail(loc, err)
		}
		if !ok || e.IsDir {
			continue
		}
		if err := r.descend(ctx, loc, name, logger); err != nil {
			return r.fail(loc, err)
		}
		base = i + 1
	}

	internal := strings.Join(rest[base:], "/")
	if internal == "" {
		loc.Kind = ArchiveDirectory
		return loc, nil
	}
	entries, err := loc.Container().Entries(ctx)
	if err != nil {
		return r.fail(loc, err)
	}
	return r.classify(loc, entries, internal)
}

// descend reads the zip entry name from the innermost container and makes
// it the new innermost link of the chain.
func (r *Resolver) descend(ctx context.Context, loc *Location, name string, logger zerolog.Logger) error {
	data, err := loc.Container().ReadEntry(ctx, name)
	if err != nil {
		return err
	}
	c, err := archive.OpenZipBytes(ctx, data, r.openOpts(logger))
	if err != nil {
		return errors.Wrapf(err, "nested zip %s", name)
	}
	loc.Chain = &archive.Link{Path: name, Kind: archive.Zip, Parent: loc.Chain, Container: c}
	logger.Debug().Msgf("Entered nested zip %s (depth %d)", name, loc.Chain.Depth())
	return nil
}

func (r *Resolver) classify(loc *Location, entries []archive.Entry, internal string) (*Location, error) {
	loc.InternalPath = internal
	if e, ok := archive.Find(entries, internal); ok {
		if e.IsDir || archive.IsZipName(e.Name) {
			loc.Kind = ArchiveDirectory
		} else {
			loc.Kind = ArchiveFile
			loc.SizeHint = e.Size
		}
		return loc, nil
	}
	if archive.HasChildren(entries, internal) {
		loc.Kind = ArchiveDirectory
		return loc, nil
	}
	return r.notFound(loc), nil
}

// fail releases the chain. Absence is reported as a NotFound location,
// everything else is surfaced.
func (r *Resolver) fail(loc *Location, err error) (*Location, error) {
	if errors.Is(err, archive.ErrNotFound) {
		r.logger.Debug().Err(err).Str("path", loc.VirtualPath.String()).Msg("Archive entry not found")
		return r.notFound(loc), nil
	}
	_ = loc.Close()
	return nil, err
}

func (r *Resolver) notFound(loc *Location) *Location {
	_ = loc.Close()
	return &Location{
		Kind:        NotFound,
		VirtualPath: loc.VirtualPath,
		SizeHint:    -1,
	}
}

func (r *Resolver) openOpts(logger zerolog.Logger) archive.OpenOpts {
	return archive.OpenOpts{
		MaxEntrySize: r.opts.MaxEntrySize,
		Tool:         r.opts.Tool,
		Logger:       logger,
	}
}

func isAbsent(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}
