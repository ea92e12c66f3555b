package lsbmark

import (
	"github.com/yyyoichi/lsbmark/internal/bitconv"
	"github.com/yyyoichi/lsbmark/internal/stego"
)

// HeaderBits is the size of the length prefix stored ahead of every message.
const HeaderBits = bitconv.HeaderBits

// Capacity returns the number of bits a buffer of bufLen bytes can hide:
// three per complete 4-byte pixel.
func Capacity(bufLen int) int {
	return stego.Capacity(bufLen)
}

// MinHeaderBytes returns the smallest buffer Extract accepts.
func MinHeaderBytes() int {
	return stego.MinHeaderBytes()
}

// MaxMessageBytes returns the longest message, in bytes, that fits in a
// buffer of bufLen bytes.
func MaxMessageBytes(bufLen int) int {
	n := (Capacity(bufLen) - HeaderBits) / 8
	if n < 0 {
		return 0
	}
	return n
}
