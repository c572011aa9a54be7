// Package logs builds owner-tagged logrus loggers.
package logs

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var level = logrus.InfoLevel

// formatter prefixes every message with the owning component.
type formatter struct {
	owner string
	lf    logrus.Formatter
}

// Format satisfies logrus.Formatter.
func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Message = fmt.Sprintf("[%s] %s", f.owner, entry.Message)
	return f.lf.Format(entry)
}

// NewLogger returns a logger whose lines are tagged with owner.
func NewLogger(owner string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	return logger
}

// SetLevel parses name and applies it to loggers created afterwards.
func SetLevel(name string) error {
	parsed, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	level = parsed
	return nil
}
