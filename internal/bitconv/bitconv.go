package bitconv

import (
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/lsbmark/internal/channel"
)

// HeaderBits is the width of the length prefix, in bits.
const HeaderBits = 32

// Stream is the bit sequence written into the LSB plane:
// a 32-bit payload length (in bits) followed by the payload,
// every value least-significant bit first.
type Stream struct {
	reader *bitstream.BitReader[uint64]
	bits   int
}

// NewStream serializes payload behind its length header.
// The caller guarantees len(payload)*8 fits in 32 bits.
func NewStream(payload []byte) *Stream {
	w := bitstream.NewBitWriter[uint64](0, 0)
	size := uint32(len(payload) * 8)
	for i := range HeaderBits {
		w.WriteBool((size>>i)&1 == 1)
	}
	for _, b := range payload {
		for i := range uint(8) {
			w.WriteBool(channel.GetBit(b, i) == 1)
		}
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return &Stream{reader: reader, bits: w.Bits()}
}

// Len returns the number of bits in the stream.
func (s *Stream) Len() int {
	return s.bits
}

// Bit returns the bit at position at as 0 or 1.
func (s *Stream) Bit(at int) byte {
	if v, _ := s.reader.ReadBitAt(at); v {
		return 1
	}
	return 0
}

// Uint32 rebuilds an LSB-first value from up to 32 bits.
func Uint32(bits []byte) uint32 {
	var v uint32
	for i, b := range bits {
		v |= uint32(b&1) << i
	}
	return v
}

// PackLSB groups bits into bytes, LSB first.
// A trailing group shorter than 8 bits still produces a byte,
// its missing high bits left zero.
func PackLSB(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		out[i/8] |= (b & 1) << (i % 8)
	}
	return out
}
