// Package runlog provides the structured, per-stage logging the router
// emits while it works: one entry per pipeline stage (the cli logs loading
// inputs, routing, and writing results), each carrying the
// fields a reader would want when diagnosing a run after the fact. The
// original router instead printed "="-padded banner lines directly to
// stdout; this package keeps that same one-line-per-stage cadence but
// routes it through a structured logger so a caller can redirect, filter,
// or machine-parse it.
package runlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger with the router's fixed field vocabulary.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger that writes text-formatted entries to stderr at Info
// level, matching the verbosity of the original's per-stage banner prints.
func New() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{Logger: l}
}

// Stage logs the start of a named pipeline stage (e.g. "global_routing",
// "local_routing", "write_output").
func (l *Logger) Stage(stage string) *logrus.Entry {
	return l.WithField("stage", stage)
}

// NetGroup logs an event scoped to a single net group within a stage.
func (l *Logger) NetGroup(stage, netGroup string) *logrus.Entry {
	return l.WithFields(logrus.Fields{"stage": stage, "net_group": netGroup})
}

// Counts logs an event scoped to a stage along with a count of items
// processed (nets routed, bundles scheduled, areas used).
func (l *Logger) Counts(stage string, count int) *logrus.Entry {
	return l.WithFields(logrus.Fields{"stage": stage, "count": count})
}
