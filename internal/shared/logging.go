package shared

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger from config and
// returns it so callers can attach fields.
func InitLogger(format, level string) *logrus.Logger {
	l := logrus.StandardLogger()

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}
	return l
}
