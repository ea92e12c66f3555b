package stego

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/yyyoichi/lsbmark/internal/bitconv"
	"github.com/yyyoichi/lsbmark/internal/channel"
)

var (
	ErrCapacityExceeded             = errors.New("message exceeds image capacity")
	ErrBufferTooSmallForHeader      = errors.New("image too small for length header")
	ErrImpliedLengthExceedsCapacity = errors.New("length header exceeds image capacity")
	ErrUnexpectedExhaustion         = errors.New("ran out of image data unexpectedly")
	ErrMalformedPayloadLength       = errors.New("payload length is not a whole number of bytes")
)

// Capacity returns how many bits can be hidden in a buffer of n bytes.
func Capacity(n int) int {
	return channel.Usable(n)
}

// MinHeaderBytes is the smallest buffer that can carry the length header.
func MinHeaderBytes() int {
	pixels := (bitconv.HeaderBits + 2) / 3
	return pixels * channel.PixelSize
}

// Enable checks that payloadLen bytes plus the header fit in a buffer of n bytes.
func Enable(n int, payloadLen int) error {
	// uint64 keeps the sums exact where int is 32 bits wide
	var (
		payloadBits  = uint64(payloadLen) * 8
		requiredBits = bitconv.HeaderBits + payloadBits
		available    = uint64(Capacity(n))
	)
	if payloadBits > math.MaxUint32 {
		return fmt.Errorf("%w: payload %d bits does not fit a %d-bit header", ErrCapacityExceeded, payloadBits, bitconv.HeaderBits)
	}
	if requiredBits > available {
		return fmt.Errorf("%w: required bits %d, available LSBs in RGB channels %d", ErrCapacityExceeded, requiredBits, available)
	}
	return nil
}

// Embed writes payload, behind its length header, into bit 0 of every
// non-alpha byte of buf. buf is left untouched when the capacity check fails.
func Embed(buf []byte, payload []byte, logger *slog.Logger) error {
	if err := Enable(len(buf), len(payload)); err != nil {
		logger.Error("embedding rejected", "error", err)
		return err
	}
	logger.Info("embedding message",
		"bytes", len(payload),
		"bits", len(payload)*8)
	logger.Debug("image data",
		"bytes", len(buf),
		"available_bits", Capacity(len(buf)))

	var (
		stream = bitconv.NewStream(payload)
		cursor = channel.NewCursor(len(buf))
	)
	for at := range stream.Len() {
		idx, ok := cursor.Next()
		if !ok {
			err := fmt.Errorf("%w: wrote %d of %d bits", ErrUnexpectedExhaustion, at, stream.Len())
			logger.Error("embedding failed", "error", err)
			return err
		}
		buf[idx] = channel.SetBit(buf[idx], 0, stream.Bit(at))
	}
	logger.Info("embedding successful")
	return nil
}

// Extract reads the length header and the payload it announces from buf.
// A zero header yields an empty payload. When strict is false a payload
// length that is not a multiple of 8 is accepted and its last byte is
// zero-filled; otherwise it fails with ErrMalformedPayloadLength.
func Extract(buf []byte, strict bool, logger *slog.Logger) ([]byte, error) {
	logger.Info("starting extraction", "bytes", len(buf))

	if need := MinHeaderBytes(); len(buf) < need {
		err := fmt.Errorf("%w: %d bytes cannot hold %d bits of length information, need %d",
			ErrBufferTooSmallForHeader, len(buf), bitconv.HeaderBits, need)
		logger.Error("extraction rejected", "error", err)
		return nil, err
	}

	cursor := channel.NewCursor(len(buf))
	header, err := read(buf, cursor, bitconv.HeaderBits)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		return nil, err
	}
	payloadBits := bitconv.Uint32(header)
	logger.Debug("extracted raw message length", "bits", payloadBits)

	if payloadBits == 0 {
		logger.Info("extracted length is 0, no message found or message is empty")
		return []byte{}, nil
	}
	var (
		total     = bitconv.HeaderBits + uint64(payloadBits)
		available = uint64(Capacity(len(buf)))
	)
	if total > available {
		err := fmt.Errorf("%w: extracted length %d bits plus %d header bits implies %d bits, image has %d available LSBs in RGB",
			ErrImpliedLengthExceedsCapacity, payloadBits, bitconv.HeaderBits, total, available)
		logger.Error("extraction rejected", "error", err)
		return nil, err
	}
	if payloadBits%8 != 0 {
		if strict {
			err := fmt.Errorf("%w: %d bits", ErrMalformedPayloadLength, payloadBits)
			logger.Error("extraction rejected", "error", err)
			return nil, err
		}
		logger.Warn("extracted bit count is not a multiple of 8, last byte is zero-filled", "bits", payloadBits)
	}
	logger.Debug("expecting message body", "bytes", (payloadBits+7)/8)

	// payloadBits <= available here, so it fits an int
	bits, err := read(buf, cursor, int(payloadBits))
	if err != nil {
		logger.Error("extraction failed", "error", err)
		return nil, err
	}
	return bitconv.PackLSB(bits), nil
}

// read collects bit 0 of the next n usable bytes.
func read(buf []byte, cursor *channel.Cursor, n int) ([]byte, error) {
	bits := make([]byte, n)
	for i := range bits {
		idx, ok := cursor.Next()
		if !ok {
			return nil, fmt.Errorf("%w: expected %d bits, stopped short at index %d", ErrUnexpectedExhaustion, n, idx)
		}
		bits[i] = channel.GetBit(buf[idx], 0)
	}
	return bits, nil
}
