package channel

// GetBit returns bit n of b, where 0 is the least-significant bit.
func GetBit(b byte, n uint) byte {
	return (b >> n) & 1
}

// SetBit returns b with bit n replaced by the low bit of v.
func SetBit(b byte, n uint, v byte) byte {
	return (b &^ (1 << n)) | ((v & 1) << n)
}
