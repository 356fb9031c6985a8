package codec

import (
	"slices"
	"sync/atomic"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("codec")

// Factory reads the payload of one concrete variant from buf and returns a
// fresh value. The type tag has already been consumed.
type Factory[T Polymorphic] func(buf *wire.ByteBuffer) (T, error)

// FactoryOf builds a Factory from a constructor of empty values.
func FactoryOf[T Polymorphic](newFn func() T) Factory[T] {
	return func(buf *wire.ByteBuffer) (T, error) {
		v := newFn()
		if err := v.Deserialize(buf); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Family is the factory registry of one polymorphic hierarchy, keyed by TypeTag.
//
// Registration happens during bootstrap. After Seal the family is read-only and
// lookups are safe from any goroutine.
type Family[T Polymorphic] struct {
	name      string
	factories *xsync.MapOf[TypeTag, Factory[T]]
	sealed    atomic.Bool
}

// NewFamily creates an empty, unsealed family.
func NewFamily[T Polymorphic](name string) *Family[T] {
	return &Family[T]{
		name:      name,
		factories: xsync.NewMapOf[TypeTag, Factory[T]](),
	}
}

// Name returns the name of the family, used in errors and logs.
func (f *Family[T]) Name() string { return f.name }

// Register adds the factory for tag. Registering a tag twice fails with
// ErrDuplicateRegistration, registering after Seal fails with ErrFamilySealed.
func (f *Family[T]) Register(tag TypeTag, factory Factory[T]) error {
	if f.sealed.Load() {
		return errors.Wrapf(ErrFamilySealed, "family %s, tag %d", f.name, tag)
	}
	if tag == NullTag {
		return errors.Newf("codec: tag %d is reserved for null in family %s", NullTag, f.name)
	}
	if factory == nil {
		return errors.Newf("codec: nil factory for tag %d in family %s", tag, f.name)
	}
	if _, loaded := f.factories.LoadOrStore(tag, factory); loaded {
		return errors.Wrapf(ErrDuplicateRegistration, "family %s, tag %d", f.name, tag)
	}
	Logger.Debugf("registered tag %d in family %s", tag, f.name)
	return nil
}

// Seal ends the registration phase.
func (f *Family[T]) Seal() {
	if !f.sealed.Swap(true) {
		Logger.Debugf("sealed family %s with %d variants", f.name, f.factories.Size())
	}
}

// Sealed reports whether Seal has been called.
func (f *Family[T]) Sealed() bool { return f.sealed.Load() }

// Has reports whether a factory is registered for tag.
func (f *Family[T]) Has(tag TypeTag) bool {
	_, ok := f.factories.Load(tag)
	return ok
}

// Tags returns the registered tags in ascending order.
func (f *Family[T]) Tags() []TypeTag {
	tags := make([]TypeTag, 0, f.factories.Size())
	f.factories.Range(func(tag TypeTag, _ Factory[T]) bool {
		tags = append(tags, tag)
		return true
	})
	slices.Sort(tags)
	return tags
}

// Create reads the payload for tag from buf using the registered factory.
func (f *Family[T]) Create(tag TypeTag, buf *wire.ByteBuffer) (T, error) {
	var zero T
	if !f.sealed.Load() {
		return zero, errors.Wrapf(ErrFamilyOpen, "family %s", f.name)
	}
	factory, ok := f.factories.Load(tag)
	if !ok {
		return zero, errors.Wrapf(ErrUnknownType, "family %s, tag %d", f.name, tag)
	}
	return factory(buf)
}
