// Package browser lists and reads virtual paths resolved across archive
// boundaries, and decorates the results with favorites, icons and quota.
package browser

import (
	"context"
	"slices"
	"time"

	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/crazy-max/unfold/pkg/vpath"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultMediaURL prefixes the escaped virtual path of media references
const DefaultMediaURL = "/api/media?path="

// DefaultQuota is the quota total when neither a limit nor the
// filesystem size is known
const DefaultQuota int64 = 10 * gib

// Favorites returns the favorite virtual paths of a user
type Favorites interface {
	Lookup(user string) []string
}

// Icons returns the icon token of a virtual path
type Icons interface {
	Lookup(virtualPath string) (string, bool)
}

// Limits returns the quota limit in GiB of a folder key
type Limits interface {
	Lookup(folderKey string) (float64, bool)
}

// Options holds browser options
type Options struct {
	Favorites Favorites
	Icons     Icons
	Limits    Limits
	// MediaURL prefixes media references of real files.
	MediaURL string
	// StatsWorkers bounds the subdirectories walked concurrently.
	StatsWorkers int
	// DefaultQuota is the quota total in bytes used as last resort.
	DefaultQuota int64
	Logger       zerolog.Logger
	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

// Browser serves listings and contents of virtual paths
type Browser struct {
	res    *resolver.Resolver
	opts   Options
	logger zerolog.Logger
}

// New creates a browser over res
func New(res *resolver.Resolver, opts Options) *Browser {
	if opts.Favorites == nil {
		opts.Favorites = noFavorites{}
	}
	if opts.Icons == nil {
		opts.Icons = noIcons{}
	}
	if opts.Limits == nil {
		opts.Limits = noLimits{}
	}
	if opts.MediaURL == "" {
		opts.MediaURL = DefaultMediaURL
	}
	if opts.StatsWorkers <= 0 {
		opts.StatsWorkers = 4
	}
	if opts.DefaultQuota <= 0 {
		opts.DefaultQuota = DefaultQuota
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Browser{
		res:    res,
		opts:   opts,
		logger: opts.Logger,
	}
}

// GetEntry returns the content of the file at virtualPath, or a directory
// descriptor. Descriptors of real directories carry their stats.
func (b *Browser) GetEntry(ctx context.Context, virtualPath, user string) (*Content, error) {
	loc, err := b.res.Resolve(ctx, virtualPath)
	if err != nil {
		return nil, err
	}
	defer loc.Close()

	var content *Content
	switch loc.Kind {
	case resolver.NotFound:
		return nil, errors.Wrapf(ErrNotFound, "%s", virtualPath)
	case resolver.RealDirectory:
		stats, err := b.quota(ctx, loc)
		if err != nil {
			return nil, err
		}
		content = &Content{IsDirectory: true, Kind: ContentNone, Stats: stats}
	case resolver.ArchiveDirectory:
		content = &Content{IsDirectory: true, Kind: ContentNone, ReadOnly: true}
	default:
		if content, err = b.Read(ctx, loc); err != nil {
			return nil, err
		}
	}

	key := loc.VirtualPath.String()
	content.IsFavorite = slices.Contains(b.opts.Favorites.Lookup(user), key)
	content.Icon, _ = b.opts.Icons.Lookup(key)
	return content, nil
}

// ListDirectory returns a page of the immediate children of virtualPath.
// Only ErrForbidden is surfaced: any other failure, a missing path or a
// file yields an empty listing.
func (b *Browser) ListDirectory(ctx context.Context, virtualPath string, req ListRequest) ([]EntryMetadata, error) {
	logger := b.logger.With().Str("path", virtualPath).Logger()

	loc, err := b.res.Resolve(ctx, virtualPath)
	if err != nil {
		if errors.Is(err, vpath.ErrForbidden) {
			return nil, err
		}
		logger.Warn().Err(err).Msg("Cannot resolve directory")
		return []EntryMetadata{}, nil
	}
	defer loc.Close()

	items := b.List(ctx, loc, req)
	b.decorate(items, req.User)
	return items, nil
}

// List returns a page of the immediate children of a resolved directory
// location. It never fails: errors are logged and yield an empty listing.
func (b *Browser) List(ctx context.Context, loc *resolver.Location, req ListRequest) []EntryMetadata {
	logger := b.logger.With().Str("path", loc.VirtualPath.String()).Logger()
	switch loc.Kind {
	case resolver.RealDirectory:
		return b.listReal(loc, req, logger)
	case resolver.ArchiveDirectory:
		return b.listArchive(ctx, loc, req.Page, logger)
	default:
		return []EntryMetadata{}
	}
}

// decorate flags favorites of user and attaches icons
func (b *Browser) decorate(items []EntryMetadata, user string) {
	favorites := b.opts.Favorites.Lookup(user)
	for i := range items {
		items[i].IsFavorite = slices.Contains(favorites, items[i].Path)
		items[i].Icon, _ = b.opts.Icons.Lookup(items[i].Path)
	}
}

type noFavorites struct{}

func (noFavorites) Lookup(string) []string { return nil }

type noIcons struct{}

func (noIcons) Lookup(string) (string, bool) { return "", false }

type noLimits struct{}

func (noLimits) Lookup(string) (float64, bool) { return 0, false }
