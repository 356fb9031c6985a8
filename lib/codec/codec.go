package codec

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
)

// --------------------------------------------------------------------------
// Field Writer / Reader
// --------------------------------------------------------------------------

// Writer writes consecutive fields into a buffer and remembers the first error.
// Once an error occurred all further Put calls are no-ops.
type Writer struct {
	buf *wire.ByteBuffer
	err error
}

// NewWriter creates a Writer for buf.
func NewWriter(buf *wire.ByteBuffer) *Writer {
	return &Writer{buf: buf}
}

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Put writes v with strategy s.
func Put[T any](w *Writer, s Strategy[T], v T) {
	if w.err != nil {
		return
	}
	w.err = s.Write(w.buf, v)
}

// PutNested writes a nested composite.
func PutNested(w *Writer, v Serializable) {
	if w.err != nil {
		return
	}
	w.err = v.Serialize(w.buf)
}

// Reader reads consecutive fields from a buffer and remembers the first error.
type Reader struct {
	buf *wire.ByteBuffer
	err error
}

// NewReader creates a Reader for buf.
func NewReader(buf *wire.ByteBuffer) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// Get reads a value with strategy s into dst. dst is left untouched on error.
func Get[T any](r *Reader, s Strategy[T], dst *T) {
	if r.err != nil {
		return
	}
	v, err := s.Read(r.buf)
	if err != nil {
		r.err = err
		return
	}
	*dst = v
}

// GetNested reads a nested composite into dst.
func GetNested(r *Reader, dst Serializable) {
	if r.err != nil {
		return
	}
	r.err = dst.Deserialize(r.buf)
}

// --------------------------------------------------------------------------
// Top-level Encode / Decode
// --------------------------------------------------------------------------

// Encode writes v into an empty buffer, stores seq in the header and finalizes.
func Encode(buf *wire.ByteBuffer, seq uint8, v Serializable) error {
	if err := buf.SetSequence(seq); err != nil {
		return err
	}
	if err := v.Serialize(buf); err != nil {
		return errors.Wrapf(err, "encode %T", v)
	}
	return buf.Finalize()
}

// Decode verifies the checksum of a finalized or received buffer, rewinds it
// and reads a fresh value. On any error nil is returned, never a partially
// constructed value.
func Decode[T any, P Pointer[T]](buf *wire.ByteBuffer) (P, error) {
	if err := buf.VerifyChecksum(); err != nil {
		return nil, err
	}
	if err := buf.Rewind(); err != nil {
		return nil, err
	}
	v := P(new(T))
	if err := v.Deserialize(buf); err != nil {
		return nil, errors.Wrapf(err, "decode %T", v)
	}
	return v, nil
}

// Marshal encodes v into a new growable buffer and returns header and payload.
func Marshal(seq uint8, v Serializable) ([]byte, error) {
	buf := wire.NewGrowable(256)
	if err := Encode(buf, seq, v); err != nil {
		return nil, err
	}
	return buf.Bytes()
}

// Unmarshal wraps raw and decodes a fresh value from it.
func Unmarshal[T any, P Pointer[T]](raw []byte) (P, error) {
	buf, err := wire.Wrap(raw)
	if err != nil {
		return nil, err
	}
	return Decode[T, P](buf)
}
