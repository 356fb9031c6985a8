package wire

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// MaxGrowableCapacity bounds the payload of a growable buffer.
const MaxGrowableCapacity = math.MaxInt32

// State is the lifecycle state of a ByteBuffer.
type State uint8

const (
	StateEmpty     State = iota // nothing written, nothing to read
	StateWriting                // payload is being appended
	StateFinalized              // header is sealed, ready to send or read
	StateReading                // payload is being consumed
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateWriting:
		return "writing"
	case StateFinalized:
		return "finalized"
	case StateReading:
		return "reading"
	default:
		return "unknown"
	}
}

// ByteBuffer is a header plus payload region with a cursor.
// The zero value is not usable, create buffers with New, NewGrowable or Wrap.
type ByteBuffer struct {
	// data holds header and payload, len(data) is the allocated size
	data []byte
	// cursor is the read or write position relative to the payload start
	cursor int
	// size is the declared payload size
	size     int
	growable bool
	state    State
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// New creates a fixed-size buffer with room for capacity payload bytes.
// The storage is zero-initialised. Writes beyond capacity fail with ErrCapacityExceeded.
func New(capacity int) *ByteBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &ByteBuffer{
		data: make([]byte, HeaderSize+capacity),
	}
}

// NewGrowable creates a buffer that reallocates on demand.
// Existing bytes are preserved on growth.
func NewGrowable(initial int) *ByteBuffer {
	b := New(initial)
	b.growable = true
	return b
}

// Wrap borrows a received region (header followed by payload) without copying.
// The header is validated against the region: a declared payload size larger
// than the region fails with ErrIntegrity. The returned buffer is Finalized
// and has a fixed capacity equal to the payload part of raw.
func Wrap(raw []byte) (*ByteBuffer, error) {
	if len(raw) < HeaderSize {
		return nil, errors.Wrapf(ErrIntegrity, "region of %d bytes is shorter than the header", len(raw))
	}
	_, length, _ := parseHeader(raw)
	if length > uint64(len(raw)-HeaderSize) {
		return nil, errors.Wrapf(ErrIntegrity, "declared payload of %d bytes exceeds region of %d bytes", length, len(raw)-HeaderSize)
	}
	return &ByteBuffer{
		data:  raw,
		size:  int(length),
		state: StateFinalized,
	}, nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Capacity returns the number of payload bytes that fit without growing.
func (b *ByteBuffer) Capacity() int { return len(b.data) - HeaderSize }

// Len returns the declared payload size.
func (b *ByteBuffer) Len() int { return b.size }

// Cursor returns the current position relative to the start of the payload.
func (b *ByteBuffer) Cursor() int { return b.cursor }

// Remaining returns the number of payload bytes left to read.
func (b *ByteBuffer) Remaining() int { return b.size - b.cursor }

// State returns the lifecycle state.
func (b *ByteBuffer) State() State { return b.state }

// Growable reports whether the buffer reallocates on demand.
func (b *ByteBuffer) Growable() bool { return b.growable }

// Sequence returns the sequence byte of the header.
func (b *ByteBuffer) Sequence() uint8 { return b.data[offSequence] }

// Checksum returns the checksum stored in the header.
func (b *ByteBuffer) Checksum() uint32 { return ByteOrder.Uint32(b.data[offChecksum:HeaderSize]) }

// Payload returns the declared payload. The slice aliases the buffer.
func (b *ByteBuffer) Payload() []byte { return b.data[HeaderSize : HeaderSize+b.size] }

// Bytes returns header and payload of a finalized buffer, ready to be handed
// to a transport. The slice aliases the buffer.
func (b *ByteBuffer) Bytes() ([]byte, error) {
	if b.state != StateFinalized && b.state != StateReading {
		return nil, errors.Wrapf(ErrInvalidState, "bytes requested in state %s", b.state)
	}
	return b.data[:HeaderSize+b.size], nil
}

// SetSequence stores the sequence byte. It is only allowed before Finalize.
func (b *ByteBuffer) SetSequence(seq uint8) error {
	if b.state != StateEmpty && b.state != StateWriting {
		return errors.Wrapf(ErrInvalidState, "set sequence in state %s", b.state)
	}
	b.data[offSequence] = seq
	return nil
}

// --------------------------------------------------------------------------
// Write / Read
// --------------------------------------------------------------------------

// WriteRaw appends p at the cursor. The write is all or nothing: on failure
// neither cursor nor declared size change.
func (b *ByteBuffer) WriteRaw(p []byte) error {
	if b.state != StateEmpty && b.state != StateWriting {
		return errors.Wrapf(ErrInvalidState, "write in state %s", b.state)
	}
	if err := b.ensure(len(p)); err != nil {
		return err
	}
	copy(b.data[HeaderSize+b.cursor:], p)
	b.cursor += len(p)
	b.size = b.cursor
	b.state = StateWriting
	return nil
}

// Reserve appends n zero bytes and returns them for in-place encoding.
// The returned slice is only valid until the next write.
func (b *ByteBuffer) Reserve(n int) ([]byte, error) {
	if b.state != StateEmpty && b.state != StateWriting {
		return nil, errors.Wrapf(ErrInvalidState, "write in state %s", b.state)
	}
	if err := b.ensure(n); err != nil {
		return nil, err
	}
	start := HeaderSize + b.cursor
	dst := b.data[start : start+n]
	clear(dst)
	b.cursor += n
	b.size = b.cursor
	b.state = StateWriting
	return dst, nil
}

// ReadInto copies len(dst) bytes from the cursor into dst.
// On failure the cursor is unchanged.
func (b *ByteBuffer) ReadInto(dst []byte) error {
	src, err := b.next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// ReadRaw copies n bytes from the cursor into a new slice.
// On failure the cursor is unchanged.
func (b *ByteBuffer) ReadRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrBufferUnderrun, "negative read of %d bytes", n)
	}
	src, err := b.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, src)
	return out, nil
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

// Rewind moves the cursor back to the start of the payload.
// The declared size is kept, a finalized buffer can be read again.
func (b *ByteBuffer) Rewind() error {
	switch b.state {
	case StateWriting:
		return errors.Wrapf(ErrInvalidState, "rewind in state %s, finalize first", b.state)
	case StateReading:
		b.state = StateFinalized
	}
	b.cursor = 0
	return nil
}

// Clear resets the buffer for a new message. Cursor, declared size, sequence
// and checksum are zeroed. Clearing twice is the same as clearing once.
func (b *ByteBuffer) Clear() {
	b.cursor = 0
	b.size = 0
	putHeader(b.data, 0, 0, 0)
	b.state = StateEmpty
}

// Finalize stores payload length and checksum in the header and rewinds the
// cursor. Finalizing an already finalized buffer recomputes the header.
func (b *ByteBuffer) Finalize() error {
	if b.state == StateReading {
		return errors.Wrapf(ErrInvalidState, "finalize in state %s", b.state)
	}
	putHeader(b.data, b.Sequence(), uint64(b.size), Checksum(b.Payload()))
	b.cursor = 0
	b.state = StateFinalized
	return nil
}

// VerifyChecksum recomputes the checksum of the declared payload and compares
// it with the stored one.
func (b *ByteBuffer) VerifyChecksum() error {
	if b.state == StateEmpty || b.state == StateWriting {
		return errors.Wrapf(ErrInvalidState, "verify in state %s", b.state)
	}
	if stored, actual := b.Checksum(), Checksum(b.Payload()); stored != actual {
		return errors.Wrapf(ErrIntegrity, "checksum mismatch: stored %#08x, computed %#08x", stored, actual)
	}
	return nil
}

// String returns a short description, used in log messages.
func (b *ByteBuffer) String() string {
	return fmt.Sprintf("ByteBuffer{seq=%d state=%s size=%d cursor=%d cap=%d}",
		b.Sequence(), b.state, b.size, b.cursor, b.Capacity())
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// ensure makes room for n more payload bytes, growing the storage if allowed.
func (b *ByteBuffer) ensure(n int) error {
	free := b.Capacity() - b.cursor
	if n <= free {
		return nil
	}
	need := b.cursor + n
	if !b.growable || need > MaxGrowableCapacity {
		return errors.Wrapf(ErrCapacityExceeded, "write of %d bytes, %d of %d bytes free", n, free, b.Capacity())
	}
	newCap := max(2*b.Capacity(), need, 64)
	if newCap > MaxGrowableCapacity {
		newCap = MaxGrowableCapacity
	}
	data := make([]byte, HeaderSize+newCap)
	copy(data, b.data[:HeaderSize+b.size])
	b.data = data
	return nil
}

// next returns the next n payload bytes and advances the cursor.
func (b *ByteBuffer) next(n int) ([]byte, error) {
	if b.state == StateWriting {
		return nil, errors.Wrapf(ErrInvalidState, "read in state %s", b.state)
	}
	if n > b.size-b.cursor {
		return nil, errors.Wrapf(ErrBufferUnderrun, "read of %d bytes, %d remaining", n, b.size-b.cursor)
	}
	start := HeaderSize + b.cursor
	b.cursor += n
	if b.state == StateFinalized && n > 0 {
		b.state = StateReading
	}
	return b.data[start : start+n], nil
}
