package lsbmark

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/yyyoichi/lsbmark/internal/stego"
)

var (
	// ErrCapacityExceeded is returned by Embed when the message and its
	// 32-bit length header do not fit the image's usable LSBs.
	ErrCapacityExceeded = stego.ErrCapacityExceeded

	// ErrBufferTooSmallForHeader is returned by Extract for buffers
	// shorter than MinHeaderBytes.
	ErrBufferTooSmallForHeader = stego.ErrBufferTooSmallForHeader

	// ErrImpliedLengthExceedsCapacity is returned by Extract when the
	// decoded length header points past the end of the image, which
	// usually means the image carries no message.
	ErrImpliedLengthExceedsCapacity = stego.ErrImpliedLengthExceedsCapacity

	// ErrUnexpectedExhaustion means the buffer ran out despite a passing
	// capacity check. It indicates a bug.
	ErrUnexpectedExhaustion = stego.ErrUnexpectedExhaustion

	// ErrMalformedPayloadLength is returned in strict mode when the
	// decoded length is not a whole number of bytes.
	ErrMalformedPayloadLength = stego.ErrMalformedPayloadLength

	// ErrUTF8Decode is returned by Extract when the payload is not valid text.
	ErrUTF8Decode = errors.New("extracted bytes are not valid UTF-8")
)

// Embed hides message in the RGBA8 buffer buf with default options.
// This is a convenience function that creates a Steg instance and calls its Embed method.
func Embed(buf []byte, message string) error {
	s, _ := New()
	return s.Embed(buf, message)
}

// Extract recovers a message from the RGBA8 buffer buf with default options.
// This is a convenience function that creates a Steg instance and calls its Extract method.
func Extract(buf []byte) (string, error) {
	s, _ := New()
	return s.Extract(buf)
}

type Steg struct {
	logger *slog.Logger
	strict bool
}

// New initializes a Steg. By default it logs nothing and rejects
// length headers that are not a whole number of bytes.
func New(opts ...Option) (*Steg, error) {
	s := new(Steg)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Embed hides message in buf, modifying it in place.
//
// Layout:
//  1. A 32-bit header holding the message length in bits, LSB first.
//  2. The message bytes, each LSB first.
//
// Every bit replaces bit 0 of the next R, G or B byte; alpha bytes and the
// upper 7 bits of every byte are preserved. buf is assumed to be RGBA8,
// 4 bytes per pixel; a trailing partial pixel is ignored.
//
// Returns ErrCapacityExceeded, leaving buf untouched, when the message does not fit.
func (s *Steg) Embed(buf []byte, message string) error {
	return stego.Embed(buf, []byte(message), s.logger)
}

// Extract reads a message hidden by Embed. buf is not modified.
// A zero length header yields "" and no error.
func (s *Steg) Extract(buf []byte) (string, error) {
	b, err := s.ExtractBytes(buf)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		err := fmt.Errorf("%w: invalid sequence at byte offset %d of %d", ErrUTF8Decode, invalidOffset(b), len(b))
		s.logger.Error("extraction failed", "error", err)
		return "", err
	}
	return string(b), nil
}

// ExtractBytes is Extract without UTF-8 validation.
func (s *Steg) ExtractBytes(buf []byte) ([]byte, error) {
	return stego.Extract(buf, s.strict, s.logger)
}

func (s *Steg) init(opts ...Option) error {
	s.strict = true
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
