package observability

import (
	"os"

	"github.com/rs/zerolog"
)

// ZerologSink forwards pipeline events to a zerolog logger.
type ZerologSink struct {
	log zerolog.Logger
}

// NewZerologSink wraps an existing logger.
func NewZerologSink(log zerolog.Logger) *ZerologSink {
	return &ZerologSink{log: log}
}

// NewConsoleSink builds a sink writing human-readable output to stderr,
// for CLI use.
func NewConsoleSink(level zerolog.Level) *ZerologSink {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return &ZerologSink{log: log}
}

func (s *ZerologSink) Event(name string, fields map[string]any) {
	s.log.Info().Fields(fields).Msg(name)
}
