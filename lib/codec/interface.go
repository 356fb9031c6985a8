package codec

import "github.com/IEcheandia/scanmaster-sub023/lib/wire"

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// TypeTag identifies the concrete variant of a polymorphic value on the wire.
type TypeTag int32

// NullTag is written in place of an absent polymorphic value.
const NullTag TypeTag = -1

// Serializable is implemented by every composite type that can be written to
// and read from a ByteBuffer.
//
// Serialize writes the fields in a fixed order. Deserialize reads them back in
// the same order into the receiver. If Deserialize fails the receiver may be
// partially overwritten and must be discarded by the caller.
type Serializable interface {
	Serialize(buf *wire.ByteBuffer) error
	Deserialize(buf *wire.ByteBuffer) error
}

// Polymorphic is a Serializable that is part of a family and carries a type tag.
type Polymorphic interface {
	Serializable
	// TypeTag returns the tag under which the concrete type is registered.
	TypeTag() TypeTag
}

// Strategy writes and reads values of type T.
// Implementations are stateless and safe for concurrent use.
type Strategy[T any] interface {
	// Write appends v to buf.
	Write(buf *wire.ByteBuffer, v T) error
	// Read consumes a value from buf. On error the zero value is returned.
	Read(buf *wire.ByteBuffer) (T, error)
}
