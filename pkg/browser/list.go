package browser

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/crazy-max/unfold/pkg/vpath"
	"github.com/rs/zerolog"
)

const (
	// OwnerArchive is the owner of every entry found inside an archive
	OwnerArchive = "Archive"
	// OwnerMe is the owner of real entries when no user is known
	OwnerMe = "Me"

	typeFolder         = "folder"
	containedExtSample = 10
)

// SortOrder orders real listings by modification time
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ListRequest holds the options of a directory listing
type ListRequest struct {
	Page Page
	// User is the requesting user, used for ownership and favorites.
	User string
	// Filter and Sort apply to real directories only.
	Filter Filter
	Sort   SortOrder
}

// EntryMetadata describes one child of a listed directory
type EntryMetadata struct {
	Name                string    `json:"name"`
	Path                string    `json:"path"`
	IsDirectory         bool      `json:"isDirectory"`
	IsArchive           bool      `json:"isArchive"`
	IsFavorite          bool      `json:"isFavorite"`
	Icon                string    `json:"icon"`
	Size                string    `json:"size"`
	Bytes               int64     `json:"bytes"`
	Modified            time.Time `json:"modified"`
	Owner               string    `json:"owner"`
	Type                string    `json:"type"`
	ContainedExtensions []string  `json:"containedExtensions,omitempty"`
}

func (b *Browser) listReal(loc *resolver.Location, req ListRequest, logger zerolog.Logger) []EntryMetadata {
	dirents, err := os.ReadDir(loc.RealPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot read directory")
		return []EntryMetadata{}
	}

	owner := req.User
	if owner == "" {
		owner = OwnerMe
	}

	items := make([]EntryMetadata, 0, len(dirents))
	for _, d := range dirents {
		fullPath := filepath.Join(loc.RealPath, d.Name())
		fi, err := os.Stat(fullPath)
		if err != nil {
			logger.Debug().Err(err).Str("name", d.Name()).Msg("Skipping unreadable entry")
			continue
		}
		item := realEntry(loc.VirtualPath.Join(d.Name()), fi, owner)
		if fi.IsDir() {
			item.ContainedExtensions = containedExtensions(fullPath)
		}
		if req.Filter.match(item) {
			items = append(items, item)
		}
	}

	slices.SortStableFunc(items, func(x, y EntryMetadata) int {
		c := x.Modified.Compare(y.Modified)
		if c == 0 {
			c = strings.Compare(x.Name, y.Name)
		}
		if req.Sort == SortAsc {
			return c
		}
		return -c
	})
	return paginate(items, req.Page)
}

func (b *Browser) listArchive(ctx context.Context, loc *resolver.Location, page Page, logger zerolog.Logger) []EntryMetadata {
	entries, err := loc.Container().Entries(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot list archive")
		return []EntryMetadata{}
	}

	prefix := ""
	if loc.InternalPath != "" {
		prefix = loc.InternalPath + "/"
	}
	now := b.opts.Now()

	var items []EntryMetadata
	seen := make(map[string]int)
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		rel := strings.TrimPrefix(e.Name, prefix)
		if rel == "" {
			continue
		}
		name, _, nested := strings.Cut(rel, "/")
		isDir := nested || e.IsDir || archive.IsZipName(name)
		if i, ok := seen[name]; ok {
			if isDir && !items[i].IsDirectory {
				items[i].IsDirectory, items[i].Type = true, typeFolder
				items[i].Size, items[i].Bytes = "", 0
			}
			continue
		}
		seen[name] = len(items)
		items = append(items, archiveEntry(loc.VirtualPath.Join(name), e, isDir, now))
	}
	if items == nil {
		return []EntryMetadata{}
	}
	return paginate(items, page)
}

func realEntry(p vpath.Path, fi os.FileInfo, owner string) EntryMetadata {
	name := p.Base()
	isZip := archive.IsZipName(name)
	item := EntryMetadata{
		Name:        name,
		Path:        p.String(),
		IsDirectory: fi.IsDir() || isZip,
		IsArchive:   !fi.IsDir() && archive.KindOf(name) != archive.Unknown,
		Modified:    fi.ModTime(),
		Owner:       owner,
		Type:        extension(name),
	}
	if item.IsDirectory {
		item.Type = typeFolder
	}
	if !fi.IsDir() {
		item.Size = FormatSize(fi.Size())
		item.Bytes = fi.Size()
	}
	return item
}

func archiveEntry(p vpath.Path, e archive.Entry, isDir bool, now time.Time) EntryMetadata {
	name := p.Base()
	item := EntryMetadata{
		Name:        name,
		Path:        p.String(),
		IsDirectory: isDir,
		IsArchive:   archive.IsZipName(name),
		Modified:    e.Modified,
		Owner:       OwnerArchive,
		Type:        typeFolder,
	}
	if item.Modified.IsZero() {
		item.Modified = now
	}
	if !isDir {
		item.Type = extension(name)
		if e.Size >= 0 {
			item.Size = FormatSize(e.Size)
			item.Bytes = e.Size
		}
	}
	return item
}

// containedExtensions samples the first directory entries of dir and
// returns the distinct extensions of its files
func containedExtensions(dir string) []string {
	f, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer f.Close()
	dirents, err := f.ReadDir(containedExtSample)
	if err != nil && len(dirents) == 0 {
		return nil
	}
	var exts []string
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		if ext := extension(d.Name()); ext != "" && !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	return exts
}
