package main

import (
	"time"

	"github.com/crazy-max/unfold/internal/app"
	"github.com/crazy-max/unfold/pkg/browser"
	"github.com/crazy-max/unfold/pkg/config"
)

// Cli is the command line of unfold
type Cli struct {
	config.Cli

	Ls        LsCmd        `kong:"cmd,name=ls,help='List the children of a virtual path.'"`
	Cat       CatCmd       `kong:"cmd,name=cat,help='Print the content of a virtual path.'"`
	Stat      StatCmd      `kong:"cmd,name=stat,help='Print size, file and folder counts of a directory against its quota.'"`
	Search    SearchCmd    `kong:"cmd,name=search,help='Find entries whose name contains a string.'"`
	Recent    RecentCmd    `kong:"cmd,name=recent,help='List entries modified during the last 7 days.'"`
	Favorites FavoritesCmd `kong:"cmd,name=favorites,help='List the favorites of a user.'"`
}

type PageFlags struct {
	Page  int `kong:"name=page,default=1,help='Page number.'"`
	Limit int `kong:"name=limit,default=50,help='Entries per page, 0 for all.'"`
}

func (f PageFlags) window() browser.Page {
	return browser.PageOf(f.Page, f.Limit)
}

type LsCmd struct {
	PageFlags
	Path  string    `kong:"arg,optional,name=path,help='Virtual path. (eg. Docs/bundle.zip/a)'"`
	User  string    `kong:"name=user,env=UNFOLD_USER,help='Requesting user.'"`
	Types []string  `kong:"name=type,enum='doc,img,audio,video,logs,sheet,pres,archive,other',help='Only list entries of these categories.'"`
	From  time.Time `kong:"name=from,format='2006-01-02',help='Only list entries modified on or after this day. (eg. 2024-03-01)'"`
	To    time.Time `kong:"name=to,format='2006-01-02',help='Only list entries modified on or before this day.'"`
	Sort  string    `kong:"name=sort,enum='desc,asc',default=desc,help='Modification time order.'"`
}

func (c *LsCmd) Run(u *app.Unfold) error {
	return u.List(c.Path, browser.ListRequest{
		Page: c.window(),
		User: c.User,
		Filter: browser.Filter{
			Types:    c.Types,
			DateFrom: c.From,
			DateTo:   c.To,
		},
		Sort: browser.SortOrder(c.Sort),
	})
}

type CatCmd struct {
	Path string `kong:"arg,required,name=path,help='Virtual path. (eg. Docs/src.tar.gz/d/e.txt)'"`
	User string `kong:"name=user,env=UNFOLD_USER,help='Requesting user.'"`
	Raw  bool   `kong:"name=raw,default=false,help='Write the file bytes instead of a JSON descriptor.'"`
}

func (c *CatCmd) Run(u *app.Unfold) error {
	return u.Cat(c.Path, c.User, c.Raw)
}

type StatCmd struct {
	Path string `kong:"arg,optional,name=path,help='Virtual path of a real directory.'"`
}

func (c *StatCmd) Run(u *app.Unfold) error {
	return u.Stat(c.Path)
}

type SearchCmd struct {
	Query string `kong:"arg,required,name=query,help='Case insensitive part of the name.'"`
}

func (c *SearchCmd) Run(u *app.Unfold) error {
	return u.Search(c.Query)
}

type RecentCmd struct {
	PageFlags
	User string `kong:"name=user,env=UNFOLD_USER,help='Requesting user.'"`
}

func (c *RecentCmd) Run(u *app.Unfold) error {
	return u.Recent(c.User, c.window())
}

type FavoritesCmd struct {
	PageFlags
	User string `kong:"name=user,env=UNFOLD_USER,required,help='User whose favorites are listed.'"`
}

func (c *FavoritesCmd) Run(u *app.Unfold) error {
	return u.Favorites(c.User, c.window())
}
