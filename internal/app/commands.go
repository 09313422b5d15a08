package app

import (
	"io"

	"github.com/crazy-max/unfold/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// List prints a page of the children of a virtual path
func (c *Unfold) List(path string, req browser.ListRequest) error {
	items, err := c.browser.ListDirectory(c.ctx, path, req)
	if err != nil {
		return errors.Wrapf(err, "cannot list %q", path)
	}
	log.Debug().Str("path", path).Int("count", len(items)).Msg("Listed")
	return c.print(items)
}

// Cat prints the content of a virtual path. With raw set the bytes of a
// file are written as is.
func (c *Unfold) Cat(path, user string, raw bool) error {
	if raw {
		rc, _, err := c.browser.Open(c.ctx, path)
		if err != nil {
			return errors.Wrapf(err, "cannot open %q", path)
		}
		defer rc.Close()
		if _, err := io.Copy(c.out, rc); err != nil {
			return errors.Wrapf(err, "cannot read %q", path)
		}
		return nil
	}
	content, err := c.browser.GetEntry(c.ctx, path, user)
	if err != nil {
		return errors.Wrapf(err, "cannot get %q", path)
	}
	return c.print(content)
}

// Stat prints the stats and quota of a real directory
func (c *Unfold) Stat(path string) error {
	stats, err := c.browser.GetDirectoryStats(c.ctx, path)
	if err != nil {
		return errors.Wrapf(err, "cannot stat %q", path)
	}
	return c.print(stats)
}

// Search prints the real entries whose name contains query
func (c *Unfold) Search(query string) error {
	items, err := c.browser.Search(c.ctx, query)
	if err != nil {
		return errors.Wrapf(err, "cannot search %q", query)
	}
	return c.print(items)
}

// Recent prints a page of recently modified entries
func (c *Unfold) Recent(user string, page browser.Page) error {
	items, err := c.browser.Recent(c.ctx, user, page)
	if err != nil {
		return errors.Wrap(err, "cannot list recent entries")
	}
	return c.print(items)
}

// Favorites prints a page of the favorites of user
func (c *Unfold) Favorites(user string, page browser.Page) error {
	items, err := c.browser.Favorites(c.ctx, user, page)
	if err != nil {
		return errors.Wrap(err, "cannot list favorites")
	}
	return c.print(items)
}
