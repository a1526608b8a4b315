package internal

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return l
}

// Logger returns the shared process logger.
func Logger() *logrus.Logger {
	return logger
}

// SetLogLevel applies a logrus level name ("debug", "info", ...).
// Unknown names leave the level unchanged.
func SetLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logger.Warnf("unknown log level %q, keeping %s", name, logger.GetLevel())
		return
	}
	logger.SetLevel(level)
}

func Logf(format string, args ...any) {
	logger.Infof(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
