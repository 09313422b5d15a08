package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

var logrusLevels = map[logrus.Level]zerolog.Level{
	logrus.PanicLevel: zerolog.ErrorLevel,
	logrus.FatalLevel: zerolog.ErrorLevel,
	logrus.ErrorLevel: zerolog.ErrorLevel,
	logrus.WarnLevel:  zerolog.WarnLevel,
	logrus.InfoLevel:  zerolog.InfoLevel,
	logrus.DebugLevel: zerolog.DebugLevel,
	logrus.TraceLevel: zerolog.TraceLevel,
}

// LogrusFormatter routes logrus entries of dependencies to the global
// zerolog logger. Panic and fatal exits stay with logrus.
type LogrusFormatter struct{}

// Format writes entry through zerolog and returns nothing for logrus to
// print itself
func (f *LogrusFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level, ok := logrusLevels[entry.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	log.WithLevel(level).Fields(map[string]any(entry.Data)).Msg(entry.Message)
	return nil, nil
}
