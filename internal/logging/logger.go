package logging

import (
	"io"
	"os"
	"time"

	"github.com/crazy-max/unfold/pkg/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/sirupsen/logrus"
)

// Configure installs the global zerolog logger and bridges logrus into it.
// Logs go to stderr, stdout carries command output.
func Configure(cli config.Cli) error {
	return configure(cli, os.Stderr)
}

func configure(cli config.Cli, out io.Writer) error {
	level, err := zerolog.ParseLevel(cli.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "unknown log level %q", cli.LogLevel)
	}
	bridged, err := logrus.ParseLevel(cli.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "unknown log level %q", cli.LogLevel)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(level)
	log.Logger = newLogger(cli, out)

	logrus.SetLevel(bridged)
	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(new(LogrusFormatter))
	return nil
}

// newLogger writes JSON records or, by default, human readable lines
// honoring NO_COLOR (https://no-color.org/).
func newLogger(cli config.Cli, out io.Writer) zerolog.Logger {
	w := out
	if !cli.LogJSON {
		_, noColor := os.LookupEnv("NO_COLOR")
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor || cli.LogNoColor,
			TimeFormat: time.RFC1123,
		}
	}
	ctx := zerolog.New(w).With().Timestamp()
	if cli.LogCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
