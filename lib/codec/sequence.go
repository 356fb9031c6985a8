package codec

import (
	"math"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
)

// Unbounded disables the count check of SliceOf.
const Unbounded = 0

// SliceOf returns the strategy for a sequence of elements written with elem.
//
// Wire format: count (uint32) followed by count elements. If maxCount is not
// Unbounded, writing or reading more than maxCount elements fails with
// ErrSequenceTooLong before any element is touched. A zero count decodes to a
// nil slice.
func SliceOf[T any](elem Strategy[T], maxCount uint32) Strategy[[]T] {
	return sliceStrategy[T]{elem: elem, maxCount: maxCount}
}

type sliceStrategy[T any] struct {
	elem     Strategy[T]
	maxCount uint32
}

func (s sliceStrategy[T]) Write(buf *wire.ByteBuffer, v []T) error {
	if err := s.check(uint64(len(v))); err != nil {
		return err
	}
	if err := Uint32.Write(buf, uint32(len(v))); err != nil {
		return err
	}
	for i := range v {
		if err := s.elem.Write(buf, v[i]); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

func (s sliceStrategy[T]) Read(buf *wire.ByteBuffer) ([]T, error) {
	count, err := Uint32.Read(buf)
	if err != nil {
		return nil, err
	}
	if err := s.check(uint64(count)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	// capped so that a corrupted count cannot force a huge allocation
	out := make([]T, 0, min(int(count), buf.Remaining()))
	for i := uint32(0); i < count; i++ {
		v, err := s.elem.Read(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d of %d", i, count)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s sliceStrategy[T]) check(n uint64) error {
	if n > math.MaxUint32 {
		return errors.Wrapf(ErrSequenceTooLong, "%d elements do not fit the uint32 count", n)
	}
	if s.maxCount != Unbounded && n > uint64(s.maxCount) {
		return errors.Wrapf(ErrSequenceTooLong, "%d elements, at most %d allowed", n, s.maxCount)
	}
	return nil
}
