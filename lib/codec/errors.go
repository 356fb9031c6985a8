package codec

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownType is returned when a type tag has no registered factory.
	ErrUnknownType = errors.New("codec: unknown type tag")
	// ErrDuplicateRegistration is returned when a type tag is registered twice in a family.
	ErrDuplicateRegistration = errors.New("codec: duplicate registration")
	// ErrFamilySealed is returned when registering into a sealed family.
	ErrFamilySealed = errors.New("codec: family is sealed")
	// ErrFamilyOpen is returned when a family is used for encoding or decoding before it is sealed.
	ErrFamilyOpen = errors.New("codec: family is not sealed")
	// ErrSequenceTooLong is returned when a sequence count exceeds the configured maximum.
	ErrSequenceTooLong = errors.New("codec: sequence too long")
	// ErrNilValue is returned when a nil pointer is written with a strategy that has no null encoding.
	ErrNilValue = errors.New("codec: nil value")
	// ErrTypeMismatch is returned when decoded type information contradicts the type tag.
	ErrTypeMismatch = errors.New("codec: type mismatch")
)
