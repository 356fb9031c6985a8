package graph

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/value"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Parameters is the family of FilterParameter variants. It is filled and
// sealed by RegisterParameters during bootstrap.
var Parameters = codec.NewFamily[FilterParameter]("filter-parameter")

var (
	parameterStrategy     = codec.Poly(Parameters)
	parameterListStrategy = codec.SliceOf(parameterStrategy, MaxElements)
	valueTypeStrategy     = codec.Integer[value.Type]()
)

// FilterParameter is a typed, named configuration value of a filter.
// The concrete variants are *Parameter[T] for the eight value types.
type FilterParameter interface {
	codec.Polymorphic
	// Info returns the type-independent part of the parameter.
	Info() ParameterBase
	// Any returns the value boxed in an interface.
	Any() any
	// SetText parses text into the value.
	SetText(text string) error
	// CopyValueFrom takes the value of other, which must hold the same type.
	CopyValueFrom(other FilterParameter) error
	// Text renders the value.
	Text() string
}

// ParameterBase holds the fields every parameter variant shares.
type ParameterBase struct {
	ParameterID   uuid.UUID
	Name          string
	Type          value.Type
	InstanceID    uuid.UUID
	VariantTypeID uuid.UUID
}

// Parameter is the FilterParameter variant for value type T.
type Parameter[T value.Scalar] struct {
	ParameterBase
	Value T
}

// NewParameter creates a parameter with a fresh parameter id.
func NewParameter[T value.Scalar](name string, v T) *Parameter[T] {
	return &Parameter[T]{
		ParameterBase: ParameterBase{
			ParameterID: uuid.New(),
			Name:        name,
			Type:        value.TypeOf[T](),
		},
		Value: v,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see FilterParameter)
// --------------------------------------------------------------------------

func (p *Parameter[T]) TypeTag() codec.TypeTag { return value.TypeOf[T]().Tag() }

func (p *Parameter[T]) Info() ParameterBase {
	info := p.ParameterBase
	info.Type = value.TypeOf[T]()
	return info
}

func (p *Parameter[T]) Any() any { return p.Value }

func (p *Parameter[T]) Text() string { return value.Format(p.Value, -1) }

func (p *Parameter[T]) SetText(text string) error {
	v, err := value.Parse[T](text)
	if err != nil {
		return err
	}
	p.Value = v
	return nil
}

func (p *Parameter[T]) CopyValueFrom(other FilterParameter) error {
	v, ok := other.Any().(T)
	if !ok {
		return errors.Wrapf(codec.ErrTypeMismatch, "parameter %s is %s, got %s",
			p.Name, value.TypeOf[T](), other.Info().Type)
	}
	p.Value = v
	return nil
}

func (p *Parameter[T]) String() string {
	return fmt.Sprintf("%s(%s)=%s", p.Name, value.TypeOf[T](), p.Text())
}

// Serialize writes the value first, then the shared fields. The declared type
// must match T, so the decoded parameter equals p.
func (p *Parameter[T]) Serialize(buf *wire.ByteBuffer) error {
	if p.Type != value.TypeOf[T]() {
		return errors.Wrapf(codec.ErrTypeMismatch, "parameter %s of type %s declares type %s",
			p.Name, value.TypeOf[T](), p.Type)
	}
	w := codec.NewWriter(buf)
	codec.Put(w, value.StrategyFor[T](), p.Value)
	codec.Put(w, valueTypeStrategy, value.TypeOf[T]())
	codec.Put(w, codec.UUID, p.ParameterID)
	codec.Put(w, codec.String, p.Name)
	codec.Put(w, codec.UUID, p.InstanceID)
	codec.Put(w, codec.UUID, p.VariantTypeID)
	return w.Err()
}

func (p *Parameter[T]) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, value.StrategyFor[T](), &p.Value)
	codec.Get(r, valueTypeStrategy, &p.Type)
	codec.Get(r, codec.UUID, &p.ParameterID)
	codec.Get(r, codec.String, &p.Name)
	codec.Get(r, codec.UUID, &p.InstanceID)
	codec.Get(r, codec.UUID, &p.VariantTypeID)
	if err := r.Err(); err != nil {
		return err
	}
	if p.Type != value.TypeOf[T]() {
		return errors.Wrapf(codec.ErrTypeMismatch, "parameter %s tagged %s declares type %s",
			p.Name, value.TypeOf[T](), p.Type)
	}
	return nil
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// RegisterParameters registers the eight parameter variants in f.
func RegisterParameters(f *codec.Family[FilterParameter]) error {
	for _, register := range []func(*codec.Family[FilterParameter]) error{
		registerParameter[bool],
		registerParameter[int8],
		registerParameter[uint8],
		registerParameter[int32],
		registerParameter[uint32],
		registerParameter[float32],
		registerParameter[float64],
		registerParameter[string],
	} {
		if err := register(f); err != nil {
			return err
		}
	}
	return nil
}

func registerParameter[T value.Scalar](f *codec.Family[FilterParameter]) error {
	return f.Register(value.TypeOf[T]().Tag(), codec.FactoryOf(func() FilterParameter {
		return &Parameter[T]{}
	}))
}

// NewParameterOfType creates an empty parameter variant for t.
func NewParameterOfType(t value.Type, name string) (FilterParameter, error) {
	var p FilterParameter
	switch t {
	case value.TBool:
		p = NewParameter(name, false)
	case value.TChar:
		p = NewParameter(name, int8(0))
	case value.TByte:
		p = NewParameter(name, uint8(0))
	case value.TInt:
		p = NewParameter(name, int32(0))
	case value.TUInt:
		p = NewParameter(name, uint32(0))
	case value.TFloat:
		p = NewParameter(name, float32(0))
	case value.TDouble:
		p = NewParameter(name, float64(0))
	case value.TString:
		p = NewParameter(name, "")
	default:
		return nil, errors.Wrapf(value.ErrUnknownValueType, "type %d", int32(t))
	}
	return p, nil
}
