// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger from the configured level and format.
// Unknown levels fall back to info; any format other than "json" means text.
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}
	return log
}
