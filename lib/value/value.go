package value

import (
	"strconv"
	"strings"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/cockroachdb/errors"
)

// Type enumerates the scalar value types.
type Type int32

const (
	TBool   Type = iota // bool
	TChar               // int8
	TByte               // uint8
	TInt                // int32
	TUInt               // uint32
	TFloat              // float32
	TDouble             // float64
	TString             // string
)

// Types lists all value types in tag order.
var Types = []Type{TBool, TChar, TByte, TInt, TUInt, TFloat, TDouble, TString}

// ErrUnknownValueType is returned when parsing an unknown type name.
var ErrUnknownValueType = errors.New("value: unknown value type")

// Scalar is the set of Go types that back a value Type.
type Scalar interface {
	bool | int8 | uint8 | int32 | uint32 | float32 | float64 | string
}

// Tag returns the type tag used for variants holding this type.
func (t Type) Tag() codec.TypeTag { return codec.TypeTag(t) }

// Valid reports whether t is one of the eight value types.
func (t Type) Valid() bool { return t >= TBool && t <= TString }

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case TBool:
		return "bool"
	case TChar:
		return "char"
	case TByte:
		return "byte"
	case TInt:
		return "int"
	case TUInt:
		return "uint"
	case TFloat:
		return "float"
	case TDouble:
		return "double"
	case TString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseType converts a type name as printed by String back to a Type.
func ParseType(name string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownValueType, "%q", name)
}

// TypeOf returns the value Type backing T.
func TypeOf[T Scalar]() Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TBool
	case int8:
		return TChar
	case uint8:
		return TByte
	case int32:
		return TInt
	case uint32:
		return TUInt
	case float32:
		return TFloat
	case float64:
		return TDouble
	default:
		return TString
	}
}

// StrategyFor returns the codec strategy for T.
func StrategyFor[T Scalar]() codec.Strategy[T] {
	var s any
	switch TypeOf[T]() {
	case TBool:
		s = codec.Bool
	case TChar:
		s = codec.Int8
	case TByte:
		s = codec.Uint8
	case TInt:
		s = codec.Int32
	case TUInt:
		s = codec.Uint32
	case TFloat:
		s = codec.Float32
	case TDouble:
		s = codec.Float64
	default:
		s = codec.String
	}
	return s.(codec.Strategy[T])
}

// Less orders two values. Booleans order false before true.
func Less[T Scalar](a, b T) bool {
	switch x := any(a).(type) {
	case bool:
		return !x && any(b).(bool)
	case int8:
		return x < any(b).(int8)
	case uint8:
		return x < any(b).(uint8)
	case int32:
		return x < any(b).(int32)
	case uint32:
		return x < any(b).(uint32)
	case float32:
		return x < any(b).(float32)
	case float64:
		return x < any(b).(float64)
	default:
		return any(a).(string) < any(b).(string)
	}
}

// InRange reports whether lo <= v <= hi. Bool and string values as well as an
// empty range (hi < lo) are never restricted.
func InRange[T Scalar](v, lo, hi T) bool {
	switch TypeOf[T]() {
	case TBool, TString:
		return true
	}
	if Less(hi, lo) {
		return true
	}
	return !Less(v, lo) && !Less(hi, v)
}

// Parse converts text into a value of T.
func Parse[T Scalar](text string) (T, error) {
	var zero T
	var v any
	var err error
	switch TypeOf[T]() {
	case TBool:
		v, err = strconv.ParseBool(text)
	case TChar:
		var n int64
		n, err = strconv.ParseInt(text, 10, 8)
		v = int8(n)
	case TByte:
		var n uint64
		n, err = strconv.ParseUint(text, 10, 8)
		v = uint8(n)
	case TInt:
		var n int64
		n, err = strconv.ParseInt(text, 10, 32)
		v = int32(n)
	case TUInt:
		var n uint64
		n, err = strconv.ParseUint(text, 10, 32)
		v = uint32(n)
	case TFloat:
		var f float64
		f, err = strconv.ParseFloat(text, 32)
		v = float32(f)
	case TDouble:
		v, err = strconv.ParseFloat(text, 64)
	default:
		v = text
	}
	if err != nil {
		return zero, errors.Wrapf(err, "parse %q as %s", text, TypeOf[T]())
	}
	return v.(T), nil
}

// Format renders v as text, with precision digits after the decimal point for
// floating point values. A negative precision selects the shortest exact form.
func Format[T Scalar](v T, precision int) string {
	switch x := any(v).(type) {
	case bool:
		return strconv.FormatBool(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', precision, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', precision, 64)
	default:
		return any(v).(string)
	}
}
