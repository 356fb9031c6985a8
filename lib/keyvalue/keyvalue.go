package keyvalue

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/value"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfRange is returned when a value lies outside [Min, Max].
	ErrOutOfRange = errors.New("keyvalue: value out of range")
	// ErrReadOnly is returned when writing a read-only entry.
	ErrReadOnly = errors.New("keyvalue: entry is read-only")
)

// KeyValues is the family of KeyValue variants. It is filled and sealed by
// RegisterKeyValues during bootstrap.
var KeyValues = codec.NewFamily[KeyValue]("key-value")

var (
	// Strategy encodes a single, possibly nil, key-value.
	Strategy = codec.Poly(KeyValues)
	// ListStrategy encodes a list of key-values.
	ListStrategy = codec.SliceOf(Strategy, 1<<16)
)

// KeyValue is a typed configuration entry.
type KeyValue interface {
	codec.Polymorphic
	// Info returns the type-independent part of the entry.
	Info() Info
	// Any returns the current value boxed in an interface.
	Any() any
	// Text renders the current value using the precision hint.
	Text() string
	// Validate checks that the current value lies within [Min, Max].
	Validate() error
	// SetText parses text and stores it if it lies within [Min, Max].
	SetText(text string) error
	// CopyValueFrom takes the value of other, which must hold the same type.
	CopyValueFrom(other KeyValue) error
	// Reset restores the default value.
	Reset()
}

// Info holds the fields every variant shares.
type Info struct {
	Key       string
	Type      value.Type
	Handle    int32
	Precision int32
	ReadOnly  bool
}

// Entry is the KeyValue variant for value type T.
type Entry[T value.Scalar] struct {
	Key       string
	Handle    int32
	ReadOnly  bool
	Value     T
	Min       T
	Max       T
	Default   T
	// Precision is the number of decimals shown for floating point values
	Precision int32
}

// ShortestPrecision renders floating point values in the shortest form that
// reads back to the same value.
const ShortestPrecision int32 = -1

// New creates an entry whose value is the default.
func New[T value.Scalar](key string, def, lo, hi T) *Entry[T] {
	return &Entry[T]{
		Key:       key,
		Value:     def,
		Min:       lo,
		Max:       hi,
		Default:   def,
		Precision: ShortestPrecision,
	}
}

// Parse creates an entry of type t from text. lo and hi may be empty, the
// range is unrestricted then.
func Parse(t value.Type, key, def, lo, hi string) (KeyValue, error) {
	switch t {
	case value.TBool:
		return parseEntry[bool](key, def, lo, hi)
	case value.TChar:
		return parseEntry[int8](key, def, lo, hi)
	case value.TByte:
		return parseEntry[uint8](key, def, lo, hi)
	case value.TInt:
		return parseEntry[int32](key, def, lo, hi)
	case value.TUInt:
		return parseEntry[uint32](key, def, lo, hi)
	case value.TFloat:
		return parseEntry[float32](key, def, lo, hi)
	case value.TDouble:
		return parseEntry[float64](key, def, lo, hi)
	case value.TString:
		return parseEntry[string](key, def, lo, hi)
	default:
		return nil, errors.Wrapf(value.ErrUnknownValueType, "type %d", int32(t))
	}
}

func parseEntry[T value.Scalar](key, def, lo, hi string) (KeyValue, error) {
	e := &Entry[T]{Key: key, Precision: ShortestPrecision}
	var err error
	if e.Default, err = value.Parse[T](def); err != nil {
		return nil, err
	}
	if lo == "" && hi == "" {
		// hi < lo leaves the range unrestricted
		lo, hi = "1", "0"
	}
	if e.Min, err = value.Parse[T](lo); err != nil {
		return nil, err
	}
	if e.Max, err = value.Parse[T](hi); err != nil {
		return nil, err
	}
	e.Value = e.Default
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see KeyValue)
// --------------------------------------------------------------------------

func (e *Entry[T]) TypeTag() codec.TypeTag { return value.TypeOf[T]().Tag() }

func (e *Entry[T]) Info() Info {
	return Info{
		Key:       e.Key,
		Type:      value.TypeOf[T](),
		Handle:    e.Handle,
		Precision: e.Precision,
		ReadOnly:  e.ReadOnly,
	}
}

func (e *Entry[T]) Any() any { return e.Value }

func (e *Entry[T]) Text() string { return value.Format(e.Value, int(e.Precision)) }

func (e *Entry[T]) Validate() error {
	if !value.InRange(e.Value, e.Min, e.Max) {
		return errors.Wrapf(ErrOutOfRange, "%s: %s not in [%s, %s]", e.Key,
			e.Text(), value.Format(e.Min, int(e.Precision)), value.Format(e.Max, int(e.Precision)))
	}
	return nil
}

func (e *Entry[T]) SetText(text string) error {
	v, err := value.Parse[T](text)
	if err != nil {
		return err
	}
	return e.set(v)
}

func (e *Entry[T]) CopyValueFrom(other KeyValue) error {
	v, ok := other.Any().(T)
	if !ok {
		return errors.Wrapf(codec.ErrTypeMismatch, "%s is %s, got %s", e.Key, value.TypeOf[T](), other.Info().Type)
	}
	return e.set(v)
}

func (e *Entry[T]) Reset() { e.Value = e.Default }

func (e *Entry[T]) String() string {
	return fmt.Sprintf("%s(%s)=%s", e.Key, value.TypeOf[T](), e.Text())
}

func (e *Entry[T]) Serialize(buf *wire.ByteBuffer) error {
	s := value.StrategyFor[T]()
	w := codec.NewWriter(buf)
	codec.Put(w, codec.String, e.Key)
	codec.Put(w, codec.Int32, e.Handle)
	codec.Put(w, codec.Bool, e.ReadOnly)
	codec.Put(w, s, e.Value)
	codec.Put(w, s, e.Min)
	codec.Put(w, s, e.Max)
	codec.Put(w, s, e.Default)
	codec.Put(w, codec.Int32, e.Precision)
	return w.Err()
}

func (e *Entry[T]) Deserialize(buf *wire.ByteBuffer) error {
	s := value.StrategyFor[T]()
	r := codec.NewReader(buf)
	codec.Get(r, codec.String, &e.Key)
	codec.Get(r, codec.Int32, &e.Handle)
	codec.Get(r, codec.Bool, &e.ReadOnly)
	codec.Get(r, s, &e.Value)
	codec.Get(r, s, &e.Min)
	codec.Get(r, s, &e.Max)
	codec.Get(r, s, &e.Default)
	codec.Get(r, codec.Int32, &e.Precision)
	return r.Err()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (e *Entry[T]) set(v T) error {
	if !value.InRange(v, e.Min, e.Max) {
		return errors.Wrapf(ErrOutOfRange, "%s: %s not in [%s, %s]", e.Key,
			value.Format(v, int(e.Precision)), value.Format(e.Min, int(e.Precision)), value.Format(e.Max, int(e.Precision)))
	}
	e.Value = v
	return nil
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// RegisterKeyValues registers the eight key-value variants in f.
func RegisterKeyValues(f *codec.Family[KeyValue]) error {
	for _, register := range []func(*codec.Family[KeyValue]) error{
		registerEntry[bool],
		registerEntry[int8],
		registerEntry[uint8],
		registerEntry[int32],
		registerEntry[uint32],
		registerEntry[float32],
		registerEntry[float64],
		registerEntry[string],
	} {
		if err := register(f); err != nil {
			return err
		}
	}
	return nil
}

func registerEntry[T value.Scalar](f *codec.Family[KeyValue]) error {
	return f.Register(value.TypeOf[T]().Tag(), codec.FactoryOf(func() KeyValue {
		return &Entry[T]{}
	}))
}
