package reactor

import (
	"github.com/fenwick-rx/reactor/internal"
	"github.com/rs/zerolog"
)

// SetLogger replaces the diagnostic logger used for recipe failures,
// lifecycle misuse, and cancellation-token firing. Silent (io.Discard) by
// default, so importing reactor never produces uninvited output.
func SetLogger(l zerolog.Logger) {
	internal.SetLogger(l)
}
