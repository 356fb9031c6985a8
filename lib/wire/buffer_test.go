package wire

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFinalizeRead(t *testing.T) {
	buf := New(32)
	require.NoError(t, buf.SetSequence(7))
	require.NoError(t, buf.WriteRaw([]byte("hello")))
	require.NoError(t, buf.WriteRaw([]byte{0, 1, 2}))
	assert.Equal(t, StateWriting, buf.State())
	assert.Equal(t, 8, buf.Len())

	require.NoError(t, buf.Finalize())
	assert.Equal(t, StateFinalized, buf.State())
	require.NoError(t, buf.VerifyChecksum())

	got, err := buf.ReadRaw(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
	assert.Equal(t, StateReading, buf.State())

	rest, err := buf.ReadRaw(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, rest)
	assert.Equal(t, 0, buf.Remaining())
	assert.Equal(t, uint8(7), buf.Sequence())
}

func TestCapacityBoundary(t *testing.T) {
	const n = 16

	t.Run("ExactlyCapacity", func(t *testing.T) {
		buf := New(n)
		require.NoError(t, buf.WriteRaw(make([]byte, n)))
		assert.Equal(t, n, buf.Len())
	})

	t.Run("OneBeyondCapacity", func(t *testing.T) {
		buf := New(n)
		require.NoError(t, buf.WriteRaw(make([]byte, n-3)))
		err := buf.WriteRaw(make([]byte, 4))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCapacityExceeded))
		// no partial write
		assert.Equal(t, n-3, buf.Len())
		assert.Equal(t, n-3, buf.Cursor())
	})

	t.Run("GrowableKeepsContent", func(t *testing.T) {
		buf := NewGrowable(2)
		require.NoError(t, buf.WriteRaw([]byte{1, 2}))
		require.NoError(t, buf.WriteRaw([]byte{3, 4, 5, 6, 7, 8, 9}))
		require.NoError(t, buf.Finalize())
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, buf.Payload())
		assert.GreaterOrEqual(t, buf.Capacity(), 9)
	})
}

func TestUnderrunLeavesCursor(t *testing.T) {
	buf := New(8)
	require.NoError(t, buf.WriteRaw([]byte{1, 2, 3}))
	require.NoError(t, buf.Finalize())

	_, err := buf.ReadRaw(2)
	require.NoError(t, err)

	_, err = buf.ReadRaw(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBufferUnderrun))
	assert.Equal(t, 2, buf.Cursor())
}

func TestClearIsIdempotent(t *testing.T) {
	buf := New(8)
	require.NoError(t, buf.SetSequence(3))
	require.NoError(t, buf.WriteRaw([]byte{9, 9, 9}))
	require.NoError(t, buf.Finalize())

	buf.Clear()
	first := append([]byte(nil), buf.data...)
	firstState := buf.State()

	buf.Clear()
	assert.Equal(t, first, buf.data)
	assert.Equal(t, firstState, buf.State())
	assert.Equal(t, StateEmpty, buf.State())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 0, buf.Cursor())
	assert.Equal(t, uint8(0), buf.Sequence())
}

func TestRewindKeepsSize(t *testing.T) {
	buf := New(8)
	require.NoError(t, buf.WriteRaw([]byte{4, 5, 6}))
	require.NoError(t, buf.Finalize())

	for i := 0; i < 3; i++ {
		got, err := buf.ReadRaw(3)
		require.NoError(t, err)
		assert.Equal(t, []byte{4, 5, 6}, got)
		require.NoError(t, buf.Rewind())
		assert.Equal(t, 3, buf.Len())
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name string
		prep func(b *ByteBuffer)
		op   func(b *ByteBuffer) error
	}{
		{
			name: "WriteAfterFinalize",
			prep: func(b *ByteBuffer) { _ = b.WriteRaw([]byte{1}); _ = b.Finalize() },
			op:   func(b *ByteBuffer) error { return b.WriteRaw([]byte{2}) },
		},
		{
			name: "WriteWhileReading",
			prep: func(b *ByteBuffer) { _ = b.WriteRaw([]byte{1, 2}); _ = b.Finalize(); _, _ = b.ReadRaw(1) },
			op:   func(b *ByteBuffer) error { return b.WriteRaw([]byte{2}) },
		},
		{
			name: "ReadWhileWriting",
			prep: func(b *ByteBuffer) { _ = b.WriteRaw([]byte{1}) },
			op:   func(b *ByteBuffer) error { _, err := b.ReadRaw(1); return err },
		},
		{
			name: "RewindWhileWriting",
			prep: func(b *ByteBuffer) { _ = b.WriteRaw([]byte{1}) },
			op:   func(b *ByteBuffer) error { return b.Rewind() },
		},
		{
			name: "SequenceAfterFinalize",
			prep: func(b *ByteBuffer) { _ = b.Finalize() },
			op:   func(b *ByteBuffer) error { return b.SetSequence(1) },
		},
		{
			name: "BytesWhileWriting",
			prep: func(b *ByteBuffer) { _ = b.WriteRaw([]byte{1}) },
			op:   func(b *ByteBuffer) error { _, err := b.Bytes(); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := New(8)
			tt.prep(buf)
			err := tt.op(buf)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)
		})
	}

	t.Run("ClearAllowsWritingAgain", func(t *testing.T) {
		buf := New(8)
		require.NoError(t, buf.WriteRaw([]byte{1}))
		require.NoError(t, buf.Finalize())
		buf.Clear()
		require.NoError(t, buf.WriteRaw([]byte{2}))
	})
}

func TestChecksumDetectsSingleByteFlip(t *testing.T) {
	buf := New(64)
	payload := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, buf.WriteRaw(payload))
	require.NoError(t, buf.Finalize())
	raw, err := buf.Bytes()
	require.NoError(t, err)

	for i := 0; i < len(payload); i++ {
		tampered := append([]byte(nil), raw...)
		tampered[HeaderSize+i] ^= 0x01

		recv, err := Wrap(tampered)
		require.NoError(t, err)
		err = recv.VerifyChecksum()
		require.Error(t, err, "flip at %d not detected", i)
		assert.True(t, errors.Is(err, ErrIntegrity))
	}
}

func TestChecksumValue(t *testing.T) {
	// (1+0) + (2+1) + (3+2)
	assert.Equal(t, uint32(9), Checksum([]byte{1, 2, 3}))
	assert.Equal(t, uint32(0), Checksum(nil))
}

func TestWrap(t *testing.T) {
	src := New(16)
	require.NoError(t, src.SetSequence(42))
	require.NoError(t, src.WriteRaw([]byte{10, 20, 30}))
	require.NoError(t, src.Finalize())
	raw, err := src.Bytes()
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		recv, err := Wrap(raw)
		require.NoError(t, err)
		require.NoError(t, recv.VerifyChecksum())
		assert.Equal(t, uint8(42), recv.Sequence())
		assert.Equal(t, 3, recv.Len())
		got, err := recv.ReadRaw(3)
		require.NoError(t, err)
		assert.Equal(t, []byte{10, 20, 30}, got)
	})

	t.Run("ShortRegion", func(t *testing.T) {
		_, err := Wrap(raw[:HeaderSize-1])
		assert.True(t, errors.Is(err, ErrIntegrity))
	})

	t.Run("TruncatedPayload", func(t *testing.T) {
		_, err := Wrap(raw[:HeaderSize+2])
		assert.True(t, errors.Is(err, ErrIntegrity))
	})
}

func TestZeroLengthMessage(t *testing.T) {
	buf := New(0)
	require.NoError(t, buf.Finalize())
	require.NoError(t, buf.VerifyChecksum())
	raw, err := buf.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, HeaderSize)
}
