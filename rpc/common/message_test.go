package common

import (
	"os"
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	bootstrap.MustBootstrap()
	os.Exit(m.Run())
}

func roundTrip(t *testing.T, m *Message) *Message {
	t.Helper()
	buf, err := EncodeMessage(m)
	require.NoError(t, err)
	assert.Equal(t, uint8(m.Kind), buf.Sequence())

	raw, err := buf.Bytes()
	require.NoError(t, err)
	received, err := wire.Wrap(raw)
	require.NoError(t, err)

	got, err := DecodeMessage(received)
	require.NoError(t, err)
	return got
}

func TestMessageRoundTrip(t *testing.T) {
	g := &graph.Graph{
		ID: uuid.New(),
		Filters: []graph.Filter{{
			ID:         uuid.New(),
			Name:       "seam",
			Parameters: []graph.FilterParameter{graph.NewParameter("width", 1.5)},
		}},
	}
	kv := keyvalue.New[int32]("ExposureTime", 100, 1, 1000)
	frame := &overlay.Frame{
		ImageNumber: 12,
		Layers:      []overlay.Layer{{Name: "a", Shapes: []overlay.Shape{&overlay.Cross{X: 1, Y: 2, Radius: 3}}}},
	}
	containers := []graph.FilterParametersContainer{{
		FilterID:   g.Filters[0].ID,
		Parameters: []graph.FilterParameter{graph.NewParameter("width", 2.0)},
	}}

	tests := []struct {
		name string
		msg  *Message
	}{
		{"graph put", NewGraphPutRequest(g)},
		{"graph get request", NewGraphGetRequest(g.ID)},
		{"graph get response", NewGraphGetResponse(g, true, nil)},
		{"graph get not found", NewGraphGetResponse(nil, false, nil)},
		{"graph list", NewGraphListResponse([]uuid.UUID{uuid.New(), uuid.New()}, nil)},
		{"graph list empty", NewGraphListRequest()},
		{"graph delete", NewGraphDeleteRequest(g.ID)},
		{"graph set parameters", NewGraphSetParametersRequest(g.ID, containers)},
		{"kv set", NewKVSetRequest(kv)},
		{"kv get request", NewKVGetRequest("ExposureTime")},
		{"kv get response", NewKVGetResponse(kv, true, nil)},
		{"kv list", NewKVListResponse([]keyvalue.KeyValue{kv, keyvalue.New("Name", "x", "", "")}, nil)},
		{"overlay publish", NewOverlayPublishRequest(frame)},
		{"overlay latest", NewOverlayLatestResponse(frame, true, nil)},
		{"overlay latest empty", NewOverlayLatestRequest()},
		{"success", NewSuccessResponse(nil)},
		{"error", NewErrorResponse("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, roundTrip(t, tt.msg))
		})
	}
}

func TestMessageFailure(t *testing.T) {
	assert.NoError(t, NewSuccessResponse(nil).Failure())

	resp := roundTrip(t, NewSuccessResponse(errors.New("disk full")))
	assert.Equal(t, KindError, resp.Kind)
	var remote *RemoteError
	require.True(t, errors.As(resp.Failure(), &remote))
	assert.Equal(t, "disk full", remote.Msg)

	resp = roundTrip(t, NewKVGetResponse(nil, false, errors.New("bad key")))
	assert.Equal(t, KindKVGet, resp.Kind)
	assert.Error(t, resp.Failure())
}

func TestDecodeMessageUnknownKind(t *testing.T) {
	buf := wire.NewGrowable(8)
	require.NoError(t, buf.SetSequence(200))
	require.NoError(t, buf.Finalize())

	_, err := DecodeMessage(buf)
	assert.True(t, errors.Is(err, ErrUnknownMessageKind))
}

func TestDecodeMessageCorrupted(t *testing.T) {
	buf, err := EncodeMessage(NewKVGetRequest("ExposureTime"))
	require.NoError(t, err)
	raw, err := buf.Bytes()
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	received, err := wire.Wrap(raw)
	require.NoError(t, err)
	_, err = DecodeMessage(received)
	assert.True(t, errors.Is(err, wire.ErrIntegrity))
}

func TestParseInterfaces(t *testing.T) {
	got, err := ParseInterfaces("1=graph, 2=device,3=overlay")
	require.NoError(t, err)
	assert.Equal(t, []ServerInterface{
		{ID: 1, Type: InterfaceGraph},
		{ID: 2, Type: InterfaceDevice},
		{ID: 3, Type: InterfaceOverlay},
	}, got)

	for _, bad := range []string{"", "1", "x=graph", "1=lock", "1=graph,1=device"} {
		_, err := ParseInterfaces(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "INFO"} {
		_, err := ParseLogLevel(lvl)
		assert.NoError(t, err, lvl)
	}
	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
