package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the fire-and-forget logging port consumed by use cases.
// Implementations never return errors and never block business logic.
type Logger interface {
	Debug(msg string)
	Info(msg string, fields map[string]interface{})
	Error(msg string, err error)
}

// Init configures the global zerolog logger for the given environment.
func Init(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

type zerologLogger struct {
	l zerolog.Logger
}

// New returns a Logger backed by the global zerolog logger.
func New() Logger {
	return &zerologLogger{l: log.Logger}
}

// NewNop returns a Logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zerologLogger{l: zerolog.Nop()}
}

func (z *zerologLogger) Debug(msg string) {
	z.l.Debug().Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields map[string]interface{}) {
	z.l.Info().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Error(msg string, err error) {
	z.l.Error().Err(err).Msg(msg)
}
