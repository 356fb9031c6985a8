package base

import (
	"encoding/binary"
	"io"
	"net"

	"github.com/cockroachdb/errors"
)

const frameHeaderSize = 20

// ErrFrameTooLarge is returned when a frame exceeds the configured message size.
var ErrFrameTooLarge = errors.New("transport: frame too large")

// writeFrame writes a frame to the connection with the format:
// - 8 bytes: interfaceID (uint64, big endian)
// - 8 bytes: requestID (uint64, big endian)
// - 4 bytes: data length (uint32, big endian)
// - N bytes: data payload (header and payload of a ByteBuffer)
func writeFrame(conn net.Conn, interfaceID uint64, requestID uint64, data []byte) error {
	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint64(header[:8], interfaceID)
	binary.BigEndian.PutUint64(header[8:16], requestID)
	binary.BigEndian.PutUint32(header[16:20], uint32(len(data)))

	b := net.Buffers{header, data}
	_, err := b.WriteTo(conn)
	return err
}

// readFrame reads a frame from the connection using the provided buffer
// If the buffer is too small, it will allocate a new temporary buffer for the data.
// Frames larger than maxSize are rejected with ErrFrameTooLarge, the
// connection is unusable afterwards.
func readFrame(conn net.Conn, buf []byte, maxSize int) (uint64, uint64, []byte, error) {
	if len(buf) < frameHeaderSize {
		buf = make([]byte, frameHeaderSize)
	}

	// Read header
	if _, err := io.ReadFull(conn, buf[:frameHeaderSize]); err != nil {
		return 0, 0, nil, err
	}

	interfaceID := binary.BigEndian.Uint64(buf[:8])
	requestID := binary.BigEndian.Uint64(buf[8:16])
	contentLength := int(binary.BigEndian.Uint32(buf[16:20]))

	if maxSize > 0 && contentLength > maxSize {
		return interfaceID, requestID, nil, errors.Wrapf(ErrFrameTooLarge, "%d bytes, limit %d", contentLength, maxSize)
	}

	if contentLength == 0 {
		return interfaceID, requestID, []byte{}, nil
	}

	if len(buf) < contentLength {
		buf = make([]byte, contentLength)
	}

	// Read data
	if _, err := io.ReadFull(conn, buf[:contentLength]); err != nil {
		return 0, 0, nil, err
	}

	return interfaceID, requestID, buf[:contentLength], nil
}
