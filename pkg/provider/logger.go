package provider

import "github.com/rs/zerolog"

// Logger is the logging capability the SDK writes to.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warning(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// NopLogger discards everything. It is the default when no logger is supplied.
type NopLogger struct{}

func (NopLogger) Info(string, map[string]any)    {}
func (NopLogger) Warning(string, map[string]any) {}
func (NopLogger) Error(string, map[string]any)   {}

// ZerologLogger forwards SDK log lines to a zerolog.Logger.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Info(msg string, fields map[string]any) {
	z.l.Info().Fields(fields).Msg(msg)
}

func (z *ZerologLogger) Warning(msg string, fields map[string]any) {
	z.l.Warn().Fields(fields).Msg(msg)
}

func (z *ZerologLogger) Error(msg string, fields map[string]any) {
	z.l.Error().Fields(fields).Msg(msg)
}
