package lsbmark

import "log/slog"

type Option func(*Steg) error

// WithLogger sends diagnostic messages to logger.
// Embedding and extraction results do not depend on it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Steg) error {
		s.logger = logger
		return nil
	}
}

// WithStrictLength controls how Extract treats a length header that is not
// a multiple of 8 bits. Embed never writes one, so such a header means the
// image is corrupt or was not produced by this package.
//
// When strict (the default), Extract fails with ErrMalformedPayloadLength.
// Otherwise the trailing bits are packed into a final byte whose missing
// high bits are zero.
func WithStrictLength(strict bool) Option {
	return func(s *Steg) error {
		s.strict = strict
		return nil
	}
}
