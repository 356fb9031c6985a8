package wire

import "encoding/binary"

const (
	// HeaderSize is the number of bytes in front of the payload.
	HeaderSize = 1 + 8 + 4

	offSequence = 0
	offLength   = 1
	offChecksum = 9
)

// ByteOrder is the byte order of the header and of all scalars. Both ends of a
// connection must agree on it.
var ByteOrder = binary.NativeEndian

// Checksum computes the wrapping sum of (payload[i] + i).
// Any single changed byte changes the result.
func Checksum(payload []byte) uint32 {
	var cs uint32
	for i, b := range payload {
		cs += uint32(b) + uint32(i)
	}
	return cs
}

func putHeader(dst []byte, seq uint8, length uint64, checksum uint32) {
	dst[offSequence] = seq
	ByteOrder.PutUint64(dst[offLength:offChecksum], length)
	ByteOrder.PutUint32(dst[offChecksum:HeaderSize], checksum)
}

func parseHeader(src []byte) (seq uint8, length uint64, checksum uint32) {
	return src[offSequence], ByteOrder.Uint64(src[offLength:offChecksum]), ByteOrder.Uint32(src[offChecksum:HeaderSize])
}
