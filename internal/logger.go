package internal

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with module-tagged helpers so every line identifies the
// module that emitted it.
type Logger struct {
	log *logrus.Logger
}

func NewLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return Logger{log: l}
}

// SetVerbosity raises the log level for -v runs.
func (l Logger) SetVerbosity(verbosity int) {
	if verbosity > 0 {
		l.log.SetLevel(logrus.DebugLevel)
	}
}

func (l Logger) InfoM(msg string, module string) {
	l.log.WithField("module", module).Info(msg)
}

func (l Logger) DebugM(msg string, module string) {
	l.log.WithField("module", module).Debug(msg)
}

func (l Logger) WarnM(msg string, module string) {
	l.log.WithField("module", module).Warn(msg)
}

func (l Logger) ErrorM(msg string, module string) {
	l.log.WithField("module", module).Error(msg)
}

// SuccessM is InfoM with the message rendered green, used for end-of-step
// summaries.
func (l Logger) SuccessM(msg string, module string) {
	l.log.WithField("module", module).Info(color.GreenString(msg))
}

func (l Logger) FatalM(msg string, module string) {
	l.log.WithField("module", module).Fatal(msg)
}
