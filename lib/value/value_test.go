package value

import (
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TBool, TypeOf[bool]())
	assert.Equal(t, TChar, TypeOf[int8]())
	assert.Equal(t, TByte, TypeOf[uint8]())
	assert.Equal(t, TInt, TypeOf[int32]())
	assert.Equal(t, TUInt, TypeOf[uint32]())
	assert.Equal(t, TFloat, TypeOf[float32]())
	assert.Equal(t, TDouble, TypeOf[float64]())
	assert.Equal(t, TString, TypeOf[string]())
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("long")
	assert.ErrorIs(t, err, ErrUnknownValueType)
}

func TestStrategyFor(t *testing.T) {
	buf := wire.NewGrowable(16)
	require.NoError(t, StrategyFor[int32]().Write(buf, 42))
	require.NoError(t, StrategyFor[string]().Write(buf, "x"))
	require.NoError(t, buf.Finalize())

	i, err := StrategyFor[int32]().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)
	s, err := StrategyFor[string]().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange[int32](5, 0, 10))
	assert.True(t, InRange[int32](0, 0, 10))
	assert.True(t, InRange[int32](10, 0, 10))
	assert.False(t, InRange[int32](11, 0, 10))
	assert.False(t, InRange[float64](-0.5, 0, 1))
	assert.True(t, InRange[uint8](200, 5, 1), "empty range is unrestricted")
	assert.True(t, InRange(true, false, false))
	assert.True(t, InRange("zzz", "a", "b"))
}

func TestParseAndFormat(t *testing.T) {
	i, err := Parse[int32]("-12")
	require.NoError(t, err)
	assert.Equal(t, int32(-12), i)

	_, err = Parse[int8]("300")
	assert.Error(t, err)

	f, err := Parse[float64]("2.5")
	require.NoError(t, err)
	assert.Equal(t, "2.50", Format(f, 2))

	b, err := Parse[bool]("true")
	require.NoError(t, err)
	assert.Equal(t, "true", Format(b, 0))

	assert.Equal(t, "255", Format(uint8(255), 0))
}
