package codec

import (
	"reflect"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
)

// Poly returns the strategy for interface-held values of a family.
//
// Wire format: TypeTag (int32) followed by the payload of the concrete variant.
// A nil value is written as NullTag without payload and decodes to nil.
// Decoding an unregistered tag fails with ErrUnknownType after consuming only
// the tag.
func Poly[T Polymorphic](family *Family[T]) Strategy[T] {
	return polyStrategy[T]{family: family}
}

var tagStrategy = Integer[TypeTag]()

type polyStrategy[T Polymorphic] struct {
	family *Family[T]
}

func (s polyStrategy[T]) Write(buf *wire.ByteBuffer, v T) error {
	if !s.family.Sealed() {
		return errors.Wrapf(ErrFamilyOpen, "family %s", s.family.Name())
	}
	if isNil(v) {
		return tagStrategy.Write(buf, NullTag)
	}
	tag := v.TypeTag()
	if !s.family.Has(tag) {
		return errors.Wrapf(ErrUnknownType, "family %s, tag %d of %T", s.family.Name(), tag, v)
	}
	if err := tagStrategy.Write(buf, tag); err != nil {
		return err
	}
	return v.Serialize(buf)
}

func (s polyStrategy[T]) Read(buf *wire.ByteBuffer) (T, error) {
	var zero T
	tag, err := tagStrategy.Read(buf)
	if err != nil {
		return zero, err
	}
	if tag == NullTag {
		return zero, nil
	}
	return s.family.Create(tag, buf)
}

// isNil reports whether an interface-held value is nil or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
