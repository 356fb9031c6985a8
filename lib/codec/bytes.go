package codec

import (
	"math"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	String Strategy[string]    = stringStrategy{}
	Bytes  Strategy[[]byte]    = bytesStrategy{}
	UUID   Strategy[uuid.UUID] = uuidStrategy{}
)

// --------------------------------------------------------------------------
// Length-prefixed strings and byte slices
// --------------------------------------------------------------------------

type stringStrategy struct{}

func (stringStrategy) Write(buf *wire.ByteBuffer, v string) error {
	if err := writeLength(buf, len(v)); err != nil {
		return err
	}
	dst, err := buf.Reserve(len(v))
	if err != nil {
		return err
	}
	copy(dst, v)
	return nil
}

func (stringStrategy) Read(buf *wire.ByteBuffer) (string, error) {
	n, err := readLength(buf)
	if err != nil {
		return "", err
	}
	raw, err := buf.ReadRaw(n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type bytesStrategy struct{}

func (bytesStrategy) Write(buf *wire.ByteBuffer, v []byte) error {
	if err := writeLength(buf, len(v)); err != nil {
		return err
	}
	return buf.WriteRaw(v)
}

// Read returns nil for an empty byte slice.
func (bytesStrategy) Read(buf *wire.ByteBuffer) ([]byte, error) {
	n, err := readLength(buf)
	if err != nil || n == 0 {
		return nil, err
	}
	return buf.ReadRaw(n)
}

// --------------------------------------------------------------------------
// UUID
// --------------------------------------------------------------------------

type uuidStrategy struct{}

func (uuidStrategy) Write(buf *wire.ByteBuffer, v uuid.UUID) error {
	return buf.WriteRaw(v[:])
}

func (uuidStrategy) Read(buf *wire.ByteBuffer) (uuid.UUID, error) {
	var id uuid.UUID
	if err := buf.ReadInto(id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func writeLength(buf *wire.ByteBuffer, n int) error {
	if uint64(n) > math.MaxUint32 {
		return errors.Wrapf(ErrSequenceTooLong, "length %d does not fit the uint32 prefix", n)
	}
	return Uint32.Write(buf, uint32(n))
}

// readLength reads a length prefix and checks it against the remaining payload,
// so that a corrupted prefix cannot trigger a huge allocation.
func readLength(buf *wire.ByteBuffer) (int, error) {
	n, err := Uint32.Read(buf)
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(buf.Remaining()) {
		return 0, errors.Wrapf(wire.ErrBufferUnderrun, "length prefix %d exceeds %d remaining bytes", n, buf.Remaining())
	}
	return int(n), nil
}
