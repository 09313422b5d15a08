package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/crazy-max/unfold/internal/app"
	"github.com/crazy-max/unfold/internal/logging"
	"github.com/crazy-max/unfold/pkg/config"
	"github.com/rs/zerolog/log"
)

var (
	unfold  *app.Unfold
	cli     Cli
	version = "dev"
	meta    = config.Meta{
		ID:     "unfold",
		Name:   "Unfold",
		Desc:   "Browse folders and the zip and tar archives inside them without extracting",
		URL:    "https://github.com/crazy-max/unfold",
		Author: "CrazyMax",
	}
)

func main() {
	var err error
	runtime.GOMAXPROCS(runtime.NumCPU())

	meta.Version = version
	meta.UserAgent = fmt.Sprintf("%s/%s go/%s %s", meta.ID, meta.Version, runtime.Version()[2:], strings.Title(runtime.GOOS)) //nolint:staticcheck // ignoring "SA1019: strings.Title is deprecated", as for our use we don't need full unicode support

	kctx := kong.Parse(&cli,
		kong.Name(meta.ID),
		kong.Description(fmt.Sprintf("%s. More info: %s", meta.Desc, meta.URL)),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	// Logging
	if err = logging.Configure(cli.Cli); err != nil {
		log.Fatal().Err(err).Msg("cannot configure logging")
	}

	// Init
	if unfold, err = app.New(meta, cli.Cli); err != nil {
		log.Fatal().Err(err).Msg("cannot initialize unfold")
	}

	// Handle os signals
	channel := make(chan os.Signal, 1)
	signal.Notify(channel, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-channel
		unfold.Close()
		log.Warn().Msgf("caught signal %v", sig)
		os.Exit(0)
	}()

	// Run
	if err = kctx.Run(unfold); err != nil {
		log.Fatal().Stack().Err(err).Send()
	}
}
