package browser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/crazy-max/unfold/pkg/vpath"
)

const (
	// SearchLimit caps the results of a search
	SearchLimit = 100
	// RecentWindow is how far back recent files go
	RecentWindow = 7 * 24 * time.Hour

	trashFolder   = "Trash"
	generalFolder = "General"
)

// Search returns real entries whose name contains query, case
// insensitively, in walk order. Dotfiles and the trash are skipped.
func (b *Browser) Search(ctx context.Context, query string) ([]EntryMetadata, error) {
	items := []EntryMetadata{}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}
	err := b.walkReal(ctx, func(p vpath.Path, fi os.FileInfo) bool {
		if strings.Contains(strings.ToLower(p.Base()), query) {
			items = append(items, realEntry(p, fi, p[0]))
		}
		return len(items) < SearchLimit
	})
	return items, err
}

// Recent returns a page of the real entries modified within the recent
// window, newest first. Top-level folders are left out.
func (b *Browser) Recent(ctx context.Context, user string, page Page) ([]EntryMetadata, error) {
	since := b.opts.Now().Add(-RecentWindow)
	items := []EntryMetadata{}
	err := b.walkReal(ctx, func(p vpath.Path, fi os.FileInfo) bool {
		if !fi.ModTime().After(since) || (fi.IsDir() && len(p) == 1) {
			return true
		}
		owner := OwnerMe
		if len(p) > 1 && p[0] != generalFolder {
			owner = p[0]
		}
		items = append(items, realEntry(p, fi, owner))
		return true
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(x, y EntryMetadata) int {
		return y.Modified.Compare(x.Modified)
	})
	items = paginate(items, page)
	b.decorate(items, user)
	return items, nil
}

// Favorites returns a page of the favorites of user that still exist.
// Favorites inside archives are resolved like any other path.
func (b *Browser) Favorites(ctx context.Context, user string, page Page) ([]EntryMetadata, error) {
	items := []EntryMetadata{}
	for _, fav := range b.opts.Favorites.Lookup(user) {
		item, ok := b.favorite(ctx, fav)
		if ok {
			items = append(items, item)
		}
	}
	items = paginate(items, page)
	for i := range items {
		items[i].IsFavorite = true
		items[i].Icon, _ = b.opts.Icons.Lookup(items[i].Path)
	}
	return items, nil
}

func (b *Browser) favorite(ctx context.Context, fav string) (EntryMetadata, bool) {
	logger := b.logger.With().Str("favorite", fav).Logger()

	loc, err := b.res.Resolve(ctx, fav)
	if err != nil {
		logger.Debug().Err(err).Msg("Skipping unresolvable favorite")
		return EntryMetadata{}, false
	}
	defer loc.Close()

	switch loc.Kind {
	case resolver.RealFile, resolver.RealDirectory:
		if loc.VirtualPath.IsRoot() {
			return EntryMetadata{}, false
		}
		fi, err := os.Stat(loc.RealPath)
		if err != nil {
			return EntryMetadata{}, false
		}
		owner := loc.VirtualPath[0]
		if owner == generalFolder {
			owner = OwnerMe
		}
		return realEntry(loc.VirtualPath, fi, owner), true
	case resolver.ArchiveFile, resolver.ArchiveDirectory:
		e, ok, err := loc.Container().Lookup(ctx, loc.InternalPath)
		if err != nil || !ok {
			e.Size = loc.SizeHint
		}
		return archiveEntry(loc.VirtualPath, e, loc.Kind.IsDir(), b.opts.Now()), true
	default:
		return EntryMetadata{}, false
	}
}

// walkReal visits every real entry below the root, following symlinked
// files but not symlinked directories. fn returns false to stop the walk.
func (b *Browser) walkReal(ctx context.Context, fn func(p vpath.Path, fi os.FileInfo) bool) error {
	root := b.res.Root()
	err := filepath.WalkDir(root, func(fullPath string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if fullPath == root {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") || d.Name() == trashFolder {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err != nil {
			return nil
		}
		fi, err := os.Stat(fullPath)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, fullPath)
		if err != nil {
			return nil
		}
		if !fn(vpath.Path(strings.Split(filepath.ToSlash(rel), "/")), fi) {
			return fs.SkipAll
		}
		return nil
	})
	return err
}
