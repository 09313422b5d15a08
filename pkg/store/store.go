// Package store reads the JSON documents that decorate listings:
// favorites, icons and folder limits. Documents are read fresh on every
// lookup and never written.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	FavoritesFile = "favorites.json"
	IconsFile     = "icons.json"
	LimitsFile    = "limits.json"
)

// load decodes the document at filename into v. A missing file leaves v
// untouched.
func load(filename string, v any) error {
	b, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "cannot read %s", filename)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "cannot decode %s", filename)
	}
	return nil
}

type document struct {
	filename string
	logger   zerolog.Logger
}

func newDocument(dir, name string, logger zerolog.Logger) document {
	filename := filepath.Join(dir, name)
	return document{
		filename: filename,
		logger:   logger.With().Str("store", filename).Logger(),
	}
}

func (d document) load(v any) bool {
	if err := load(d.filename, v); err != nil {
		d.logger.Warn().Err(err).Msg("Store unreadable, treated as empty")
		return false
	}
	return true
}

// Favorites maps user names to their favorite virtual paths
type Favorites struct {
	document
}

// NewFavorites returns the favorites store of the data directory dir
func NewFavorites(dir string, logger zerolog.Logger) *Favorites {
	return &Favorites{document: newDocument(dir, FavoritesFile, logger)}
}

// Lookup returns the favorite virtual paths of user in stored order
func (s *Favorites) Lookup(user string) []string {
	var m map[string][]string
	if !s.load(&m) {
		return nil
	}
	return m[user]
}

// Icons maps virtual paths to icon tokens
type Icons struct {
	document
}

// NewIcons returns the icons store of the data directory dir
func NewIcons(dir string, logger zerolog.Logger) *Icons {
	return &Icons{document: newDocument(dir, IconsFile, logger)}
}

// Lookup returns the icon token of virtualPath
func (s *Icons) Lookup(virtualPath string) (string, bool) {
	var m map[string]string
	if !s.load(&m) {
		return "", false
	}
	icon, ok := m[virtualPath]
	return icon, ok && icon != ""
}

// Limits maps folder keys to quota limits in GiB
type Limits struct {
	document
}

// NewLimits returns the limits store of the data directory dir
func NewLimits(dir string, logger zerolog.Logger) *Limits {
	return &Limits{document: newDocument(dir, LimitsFile, logger)}
}

// Lookup returns the limit of folderKey in GiB. Zero and negative limits
// count as unset.
func (s *Limits) Lookup(folderKey string) (float64, bool) {
	var m map[string]float64
	if !s.load(&m) {
		return 0, false
	}
	limit, ok := m[folderKey]
	return limit, ok && limit > 0
}
