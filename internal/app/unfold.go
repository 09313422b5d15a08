package app

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/browser"
	"github.com/crazy-max/unfold/pkg/config"
	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/crazy-max/unfold/pkg/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	TarBackendExec   = "exec"
	TarBackendNative = "native"
)

// Unfold represents an active unfold object
type Unfold struct {
	ctx     context.Context
	cancel  context.CancelFunc
	meta    config.Meta
	cli     config.Cli
	out     io.Writer
	browser *browser.Browser
}

// New creates new unfold instance
func New(meta config.Meta, cli config.Cli) (*Unfold, error) {
	datadir, err := dataDir(cli.DataDir)
	if err != nil {
		return nil, err
	}
	cli.DataDir = datadir

	logger := log.With().Str("root", cli.Root).Logger()

	var tool archive.TarTool
	switch cli.TarBackend {
	case TarBackendNative:
		tool = archive.NativeTar{
			MaxOutput: cli.MaxExtractSize,
			Logger:    logger,
		}
	case TarBackendExec, "":
		tool = archive.ExecTar{
			Binary:    cli.TarBin,
			Timeout:   cli.TarTimeout,
			MaxOutput: cli.MaxExtractSize,
			Logger:    logger,
		}
	default:
		return nil, errors.Errorf("unknown tar backend %q", cli.TarBackend)
	}

	res, err := resolver.New(resolver.Options{
		Root:         cli.Root,
		Tool:         tool,
		MaxEntrySize: cli.MaxExtractSize,
		Logger:       logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot create resolver")
	}
	logger.Debug().Str("datadir", cli.DataDir).Str("tar", cli.TarBackend).Msg("Resolver ready")

	ctx, cancel := context.WithCancel(context.Background())
	return &Unfold{
		ctx:    ctx,
		cancel: cancel,
		meta:   meta,
		cli:    cli,
		out:    os.Stdout,
		browser: browser.New(res, browser.Options{
			Favorites:    store.NewFavorites(cli.DataDir, logger),
			Icons:        store.NewIcons(cli.DataDir, logger),
			Limits:       store.NewLimits(cli.DataDir, logger),
			MediaURL:     cli.MediaURL,
			StatsWorkers: cli.StatsWorkers,
			Logger:       logger,
		}),
	}, nil
}

// dataDir returns the folder of the favorites, icons and limits documents
func dataDir(dir string) (string, error) {
	if len(dir) > 0 {
		return dir, nil
	}
	datadir := os.Getenv("XDG_DATA_HOME")
	if len(datadir) == 0 {
		home := os.Getenv("HOME")
		if len(home) == 0 {
			return "", errors.New("neither XDG_DATA_HOME nor HOME was set non-empty")
		}
		datadir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(datadir, "unfold"), nil
}

// Browser returns the browser serving commands
func (c *Unfold) Browser() *browser.Browser {
	return c.browser
}

// SetOutput redirects command output, stdout by default
func (c *Unfold) SetOutput(w io.Writer) {
	c.out = w
}

// Close closes unfold. Running commands are canceled.
func (c *Unfold) Close() {
	c.cancel()
}

func (c *Unfold) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), "cannot write output")
}
