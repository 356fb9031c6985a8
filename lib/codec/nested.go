package codec

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
)

// Pointer constrains P to be a pointer to T that implements Serializable.
type Pointer[T any] interface {
	*T
	Serializable
}

// Nested returns the strategy for a value-held composite. The bytes are exactly
// those produced by the Serialize method of *T, no framing is added.
func Nested[T any, P Pointer[T]]() Strategy[T] {
	return nestedStrategy[T, P]{}
}

// Shared returns the strategy for a pointer-held composite. It is wire-identical
// to Nested. Reading always allocates a new value owned exclusively by the
// caller, writing a nil pointer fails with ErrNilValue.
func Shared[T any, P Pointer[T]]() Strategy[P] {
	return sharedStrategy[T, P]{}
}

type nestedStrategy[T any, P Pointer[T]] struct{}

func (nestedStrategy[T, P]) Write(buf *wire.ByteBuffer, v T) error {
	return P(&v).Serialize(buf)
}

func (nestedStrategy[T, P]) Read(buf *wire.ByteBuffer) (T, error) {
	var v T
	if err := P(&v).Deserialize(buf); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

type sharedStrategy[T any, P Pointer[T]] struct{}

func (sharedStrategy[T, P]) Write(buf *wire.ByteBuffer, v P) error {
	if v == nil {
		var zero T
		return errors.Wrapf(ErrNilValue, "shared %T", zero)
	}
	return v.Serialize(buf)
}

func (sharedStrategy[T, P]) Read(buf *wire.ByteBuffer) (P, error) {
	v := P(new(T))
	if err := v.Deserialize(buf); err != nil {
		return nil, err
	}
	return v, nil
}

// Optional returns the strategy for a pointer-held composite that may be nil.
// A bool presence flag precedes the composite, a nil pointer is written as the
// flag alone.
func Optional[T any, P Pointer[T]]() Strategy[P] {
	return optionalStrategy[T, P]{}
}

type optionalStrategy[T any, P Pointer[T]] struct{}

func (optionalStrategy[T, P]) Write(buf *wire.ByteBuffer, v P) error {
	if err := Bool.Write(buf, v != nil); err != nil || v == nil {
		return err
	}
	return v.Serialize(buf)
}

func (optionalStrategy[T, P]) Read(buf *wire.ByteBuffer) (P, error) {
	present, err := Bool.Read(buf)
	if err != nil || !present {
		return nil, err
	}
	return sharedStrategy[T, P]{}.Read(buf)
}
