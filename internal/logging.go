package internal

import (
	"io"

	"github.com/rs/zerolog"
)

// logger is the package-wide diagnostic sink. Silent by default so that
// importing reactor never produces uninvited output; a host attaches one
// via SetLogger.
var logger = zerolog.New(io.Discard)

// SetLogger replaces the diagnostic logger used for recipe failures,
// lifecycle misuse, and cancellation-token firing.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the currently configured diagnostic logger.
func Logger() zerolog.Logger {
	return logger
}

func logRecipeFailure(cellID uint64, err error) {
	logger.Error().Uint64("cell", cellID).Err(err).Msg("recipe failed")
}

func logLifecycleMisuse(op string, err error) {
	logger.Warn().Str("op", op).Err(err).Msg("lifecycle misuse")
}

func logCancellation(kind string, id uint64) {
	logger.Debug().Str("kind", kind).Uint64("id", id).Msg("cancellation token fired")
}
