package codec

import (
	"math"
	"unsafe"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

// Int is the set of fixed-width integer types, including named types based on them.
type Int interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	Bool    Strategy[bool]    = boolStrategy{}
	Int8    Strategy[int8]    = Integer[int8]()
	Uint8   Strategy[uint8]   = Integer[uint8]()
	Int16   Strategy[int16]   = Integer[int16]()
	Uint16  Strategy[uint16]  = Integer[uint16]()
	Int32   Strategy[int32]   = Integer[int32]()
	Uint32  Strategy[uint32]  = Integer[uint32]()
	Int64   Strategy[int64]   = Integer[int64]()
	Uint64  Strategy[uint64]  = Integer[uint64]()
	Float32 Strategy[float32] = float32Strategy{}
	Float64 Strategy[float64] = float64Strategy{}
)

// Integer returns the strategy for a fixed-width integer type. It is mostly
// used for named enumeration types, e.g. Integer[PipeKind]().
func Integer[T Int]() Strategy[T] {
	var zero T
	return intStrategy[T]{size: int(unsafe.Sizeof(zero))}
}

// --------------------------------------------------------------------------
// Integers
// --------------------------------------------------------------------------

type intStrategy[T Int] struct {
	size int
}

func (s intStrategy[T]) Write(buf *wire.ByteBuffer, v T) error {
	dst, err := buf.Reserve(s.size)
	if err != nil {
		return err
	}
	switch s.size {
	case 1:
		dst[0] = uint8(v)
	case 2:
		wire.ByteOrder.PutUint16(dst, uint16(v))
	case 4:
		wire.ByteOrder.PutUint32(dst, uint32(v))
	default:
		wire.ByteOrder.PutUint64(dst, uint64(v))
	}
	return nil
}

func (s intStrategy[T]) Read(buf *wire.ByteBuffer) (T, error) {
	var tmp [8]byte
	if err := buf.ReadInto(tmp[:s.size]); err != nil {
		return 0, err
	}
	switch s.size {
	case 1:
		return T(tmp[0]), nil
	case 2:
		return T(wire.ByteOrder.Uint16(tmp[:])), nil
	case 4:
		return T(wire.ByteOrder.Uint32(tmp[:])), nil
	default:
		return T(wire.ByteOrder.Uint64(tmp[:])), nil
	}
}

// --------------------------------------------------------------------------
// Bool and floating point
// --------------------------------------------------------------------------

type boolStrategy struct{}

func (boolStrategy) Write(buf *wire.ByteBuffer, v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return Uint8.Write(buf, b)
}

func (boolStrategy) Read(buf *wire.ByteBuffer) (bool, error) {
	b, err := Uint8.Read(buf)
	return b != 0, err
}

type float32Strategy struct{}

func (float32Strategy) Write(buf *wire.ByteBuffer, v float32) error {
	return Uint32.Write(buf, math.Float32bits(v))
}

func (float32Strategy) Read(buf *wire.ByteBuffer) (float32, error) {
	bits, err := Uint32.Read(buf)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

type float64Strategy struct{}

func (float64Strategy) Write(buf *wire.ByteBuffer, v float64) error {
	return Uint64.Write(buf, math.Float64bits(v))
}

func (float64Strategy) Read(buf *wire.ByteBuffer) (float64, error) {
	bits, err := Uint64.Read(buf)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
