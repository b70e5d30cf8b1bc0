package notify

import (
	applog "spendly/internal/log"
)

// LogSink routes notifications and navigation requests to the structured
// log. It is the default sink for headless runs where no presentation layer
// is attached.
type LogSink struct {
	logger *applog.Logger
}

func NewLogSink(logger *applog.Logger) *LogSink {
	return &LogSink{logger: logger.WithComponent("notify")}
}

func (s *LogSink) Notify(n Notification) {
	switch n.Level {
	case LevelError:
		s.logger.Error(n.Message, "level", string(n.Level))
	case LevelWarning:
		s.logger.Warn(n.Message, "level", string(n.Level))
	default:
		s.logger.Info(n.Message, "level", string(n.Level))
	}
}

func (s *LogSink) NavigateTo(route Route) {
	s.logger.Info("navigation requested", "route", string(route))
}
