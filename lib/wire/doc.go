// Package wire provides the ByteBuffer, the single-owner byte region that every
// message of the system is marshalled into and out of.
//
// A ByteBuffer consists of a fixed-size header followed by the payload:
//
//	+----------+----------------+-------------+------------------+
//	| sequence | payload length |  checksum   |     payload      |
//	|  uint8   |     uint64     |   uint32    | length bytes ... |
//	+----------+----------------+-------------+------------------+
//
// The header is written in host byte order. Sender and receiver are required to
// share the same endianness, no conversion is performed.
//
// The checksum is the wrapping 32 bit sum of (payload[i] + i) over all payload
// bytes. It is computed by Finalize and checked by VerifyChecksum.
//
// Lifecycle:
//
//	Empty --WriteRaw--> Writing --Finalize--> Finalized --ReadRaw--> Reading
//	  ^                                                                 |
//	  +---------------------------- Clear ------------------------------+
//
// Rewind returns the cursor to the start of the payload and keeps the declared
// payload size, so a finalized or received buffer can be read any number of times.
//
// Thread Safety:
//
//	A ByteBuffer is owned by exactly one goroutine at a time. Ownership may be
//	handed over (e.g. from a transport reader to a worker), but concurrent use
//	is not supported.
package wire
