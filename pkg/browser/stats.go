package browser

import (
	"context"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RootFolderKey is the limits key of the root directory
const RootFolderKey = "root"

// DirectoryStats sums a real directory tree
type DirectoryStats struct {
	Size    int64 `json:"size"`
	Files   int64 `json:"files"`
	Folders int64 `json:"folders"`
}

func (s *DirectoryStats) add(o DirectoryStats) {
	s.Size += o.Size
	s.Files += o.Files
	s.Folders += o.Folders
}

// QuotaStats reports directory stats against a quota
type QuotaStats struct {
	DirectoryStats
	// LimitGB is the configured limit, zero when none applies.
	LimitGB    float64 `json:"limitGb"`
	TotalBytes int64   `json:"totalBytes"`
	Percent    float64 `json:"percent"`
}

// GetDirectoryStats returns the stats of the real directory at
// virtualPath measured against its quota
func (b *Browser) GetDirectoryStats(ctx context.Context, virtualPath string) (*QuotaStats, error) {
	loc, err := b.res.Resolve(ctx, virtualPath)
	if err != nil {
		return nil, err
	}
	defer loc.Close()

	switch loc.Kind {
	case resolver.RealDirectory:
		return b.quota(ctx, loc)
	case resolver.NotFound:
		return nil, errors.Wrapf(ErrNotFound, "%s", virtualPath)
	default:
		return nil, errors.Wrapf(ErrNotDirectory, "%s", virtualPath)
	}
}

// Stats recursively sums sizes, files and folders below dir. Immediate
// subdirectories are walked concurrently.
func (b *Browser) Stats(ctx context.Context, dir string) (DirectoryStats, error) {
	var stats DirectoryStats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return stats, errors.Wrapf(err, "cannot read directory %s", dir)
	}

	var subdirs []string
	for _, d := range dirents {
		if d.IsDir() {
			stats.Folders++
			subdirs = append(subdirs, filepath.Join(dir, d.Name()))
			continue
		}
		stats.Files++
		stats.Size += fileSize(filepath.Join(dir, d.Name()), d)
	}

	results := make([]DirectoryStats, len(subdirs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.StatsWorkers)
	for i, sub := range subdirs {
		eg.Go(func() error {
			s, err := walkStats(ctx, sub)
			results[i] = s
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return DirectoryStats{}, err
	}
	for _, s := range results {
		stats.add(s)
	}
	return stats, nil
}

// walkStats sums everything below root, root excluded. Unreadable
// entries are skipped.
func walkStats(ctx context.Context, root string) (DirectoryStats, error) {
	var stats DirectoryStats
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || p == root {
			return nil
		}
		if d.IsDir() {
			stats.Folders++
			return nil
		}
		stats.Files++
		stats.Size += fileSize(p, d)
		return nil
	})
	return stats, err
}

// fileSize follows symlinks and counts unreadable files as empty
func fileSize(p string, d fs.DirEntry) int64 {
	if d.Type()&fs.ModeSymlink != 0 {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return fi.Size()
		}
		return 0
	}
	fi, err := d.Info()
	if err != nil {
		return 0
	}
	return fi.Size()
}

func (b *Browser) quota(ctx context.Context, loc *resolver.Location) (*QuotaStats, error) {
	stats, err := b.Stats(ctx, loc.RealPath)
	if err != nil {
		return nil, err
	}

	key := loc.VirtualPath.String()
	if key == "" {
		key = RootFolderKey
	}

	q := &QuotaStats{DirectoryStats: stats, TotalBytes: b.opts.DefaultQuota}
	if limit, ok := b.opts.Limits.Lookup(key); ok {
		q.LimitGB = limit
		q.TotalBytes = int64(limit * gib)
	} else if total, err := filesystemSize(b.res.Root()); err == nil && total > 0 {
		q.TotalBytes = total
	} else if err != nil {
		b.logger.Debug().Err(err).Msg("Filesystem size unavailable, using default quota")
	}
	q.Percent = percentOf(stats.Size, q.TotalBytes)
	return q, nil
}

func percentOf(size, total int64) float64 {
	if total <= 0 {
		return 100
	}
	p := math.Min(100, float64(size)/float64(total)*100)
	return math.Round(p*100) / 100
}
