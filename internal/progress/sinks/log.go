// Package sinks provides progress.Sink implementations.
package sinks

import (
	"go.uber.org/zap"

	"github.com/webmapper-go/webmapper/internal/progress"
)

// LogSink emits one structured log line per progress event. Visits are
// logged at info level, fetch errors at warn level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume implements progress.Sink.
func (s *LogSink) Consume(evt progress.Event) {
	fields := []zap.Field{
		zap.String("run_id", evt.RunID.String()),
		zap.String("url", evt.URL),
		zap.Int("depth", evt.Depth),
	}
	switch evt.Stage {
	case progress.StageFetchError:
		fields = append(fields, zap.String("error", evt.Note))
		s.logger.Warn("fetch failed", fields...)
	default:
		s.logger.Info("visiting page", fields...)
	}
}
