package serve

import (
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceEntries(t *testing.T) {
	entries, err := parseDeviceEntries("ExposureTime=double:1.5:0.01:100; SerialNumber=string:SN-001;")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ExposureTime", entries[0].Info().Key)
	assert.Equal(t, 1.5, entries[0].Any())
	assert.ErrorIs(t, entries[0].SetText("200"), keyvalue.ErrOutOfRange)

	assert.Equal(t, "SerialNumber", entries[1].Info().Key)
	assert.Equal(t, "SN-001", entries[1].Any())

	entries, err = parseDeviceEntries("CalibrationURL=string:http://calib.local:8080/grid;Gain=byte:7")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://calib.local:8080/grid", entries[0].Any())
	assert.Equal(t, uint8(7), entries[1].Any())

	entries, err = parseDeviceEntries("")
	require.NoError(t, err)
	assert.Empty(t, entries)

	for _, bad := range []string{
		"NoType",
		"=int:1",
		"Gain=int",
		"Gain=int:1:0",
		"Gain=complex:1",
		"Gain=int:300:0:255:7",
		"Gain=byte:300",
	} {
		_, err := parseDeviceEntries(bad)
		assert.Error(t, err, bad)
	}
}
