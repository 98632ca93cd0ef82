package extensibility

import (
	"log"

	"github.com/comalice/holdrepeat"
)

// LoggingSink wraps a Sink and logs every signal before delegating.
type LoggingSink struct {
	inner  holdrepeat.Sink
	name   string
	logger *log.Logger
}

// NewLoggingSink creates a LoggingSink for the named action. A nil logger
// uses the standard logger.
func NewLoggingSink(name string, inner holdrepeat.Sink, logger *log.Logger) *LoggingSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingSink{inner: inner, name: name, logger: logger}
}

func (s *LoggingSink) Started() {
	s.logger.Printf("LOG: %s started", s.name)
	s.inner.Started()
}

func (s *LoggingSink) PerformedAndStayStarted() {
	s.logger.Printf("LOG: %s performed", s.name)
	s.inner.PerformedAndStayStarted()
}

func (s *LoggingSink) Canceled() {
	s.logger.Printf("LOG: %s canceled", s.name)
	s.inner.Canceled()
}

// LoggingWrapper adapts NewLoggingSink to core.WithSinkWrapper.
func LoggingWrapper(logger *log.Logger) func(string, holdrepeat.Sink) holdrepeat.Sink {
	return func(name string, inner holdrepeat.Sink) holdrepeat.Sink {
		return NewLoggingSink(name, inner, logger)
	}
}
