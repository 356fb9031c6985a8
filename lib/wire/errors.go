package wire

import "github.com/cockroachdb/errors"

var (
	// ErrCapacityExceeded is returned when a write does not fit into a fixed-size buffer.
	ErrCapacityExceeded = errors.New("wire: capacity exceeded")
	// ErrBufferUnderrun is returned when a read requests more bytes than the declared payload holds.
	ErrBufferUnderrun = errors.New("wire: buffer underrun")
	// ErrIntegrity is returned when the stored checksum or header does not match the payload.
	ErrIntegrity = errors.New("wire: integrity check failed")
	// ErrInvalidState is returned when an operation is not allowed in the current buffer state.
	ErrInvalidState = errors.New("wire: invalid buffer state")
)
