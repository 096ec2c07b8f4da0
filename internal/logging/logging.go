// Package logging provides component-tagged logrus entries for agsess.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var root = newRootLogger()

func newRootLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	if os.Getenv("AGSESS_DEBUG") != "" {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// NewLogger returns a logger entry tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	return root.WithField("component", component)
}

// SetVerbose raises the global log level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		root.SetLevel(logrus.DebugLevel)
	}
}
