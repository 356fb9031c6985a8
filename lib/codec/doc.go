// Package codec turns typed values into bytes of a wire.ByteBuffer and back.
//
// Every field of a message is written with an explicitly chosen Strategy. A
// strategy is a value, it is never inferred from the Go type at runtime:
//
//   - Scalar strategies (Bool, Int8 ... Uint64, Float32, Float64, Integer[T])
//     write fixed-width values in wire.ByteOrder.
//   - String and Bytes write a uint32 length followed by the raw bytes. Embedded
//     NUL bytes are preserved.
//   - UUID writes the 16 raw bytes of a uuid.UUID.
//   - Nested delegates to the Serialize/Deserialize methods of a value type
//     without adding any framing.
//   - Shared does the same for pointer-held values. Decoding always produces a
//     fresh value, sharing between pointers is not preserved across the wire.
//   - Poly writes a TypeTag followed by the payload of a polymorphic value and
//     resolves the concrete type through a Family on decode. The tag NullTag
//     stands for an absent value.
//   - SliceOf writes an element count followed by the elements, with an
//     optional upper bound on the count.
//
// A Family is the factory registry of one polymorphic hierarchy. It is filled
// during a single-threaded bootstrap and sealed afterwards. Once sealed it is
// read-only and may be used by any number of goroutines.
//
// Usage:
//
//	func (c *Component) Serialize(buf *wire.ByteBuffer) error {
//		w := codec.NewWriter(buf)
//		codec.Put(w, codec.UUID, c.ID)
//		codec.Put(w, codec.String, c.Filename)
//		return w.Err()
//	}
package codec
