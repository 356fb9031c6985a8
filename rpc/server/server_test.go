package server

import (
	"os"
	"testing"

	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/store/lstore"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/google/uuid"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	bootstrap.MustBootstrap()
	os.Exit(m.Run())
}

// nopTransport is never started, requests are passed to Handle directly.
type nopTransport struct{}

func (nopTransport) RegisterHandler(transport.ServerHandleFunc) {}
func (nopTransport) Listen(common.ServerConfig) error          { return nil }
func (nopTransport) Close() error                              { return nil }

type panicAdapter struct{}

func (panicAdapter) Type() common.InterfaceType             { return common.InterfaceGraph }
func (panicAdapter) Handle(*common.Message) *common.Message { panic("boom") }

func newServer(t *testing.T) *RPCServer {
	t.Helper()
	s := NewRPCServer(common.ServerConfig{
		Interfaces: []common.ServerInterface{
			{ID: 1, Type: common.InterfaceGraph},
			{ID: 2, Type: common.InterfaceDevice},
			{ID: 3, Type: common.InterfaceOverlay},
		},
	}, nopTransport{})
	require.NoError(t, s.init())
	return s
}

func call(t *testing.T, s *RPCServer, interfaceID uint64, req *common.Message) *common.Message {
	t.Helper()
	buf, err := common.EncodeMessage(req)
	require.NoError(t, err)
	resp := s.Handle(interfaceID, buf)
	require.NotNil(t, resp)
	msg, err := common.DecodeMessage(resp)
	require.NoError(t, err)
	return msg
}

func TestHandleGraph(t *testing.T) {
	s := newServer(t)
	g := &graph.Graph{ID: uuid.New(), PathComponents: "/opt"}

	resp := call(t, s, 1, common.NewGraphPutRequest(g))
	assert.Equal(t, common.KindSuccess, resp.Kind)

	resp = call(t, s, 1, common.NewGraphGetRequest(g.ID))
	require.NoError(t, resp.Failure())
	assert.True(t, resp.Ok)
	assert.Equal(t, g, resp.Graph)

	resp = call(t, s, 1, common.NewGraphSetParametersRequest(uuid.New(), nil))
	assert.Equal(t, common.KindError, resp.Kind)
}

func TestHandleErrors(t *testing.T) {
	s := newServer(t)

	t.Run("unknown interface", func(t *testing.T) {
		resp := call(t, s, 42, common.NewGraphListRequest())
		assert.Equal(t, common.KindError, resp.Kind)
		assert.Contains(t, resp.Err, "interface 42")
	})

	t.Run("wrong adapter", func(t *testing.T) {
		resp := call(t, s, 3, common.NewGraphListRequest())
		assert.Equal(t, common.KindError, resp.Kind)
	})

	t.Run("corrupted request", func(t *testing.T) {
		buf, err := common.EncodeMessage(common.NewKVGetRequest("ExposureTime"))
		require.NoError(t, err)
		raw, err := buf.Bytes()
		require.NoError(t, err)
		raw[wire.HeaderSize] ^= 0x01

		received, err := wire.Wrap(raw)
		require.NoError(t, err)
		msg, err := common.DecodeMessage(s.Handle(2, received))
		require.NoError(t, err)
		assert.Equal(t, common.KindError, msg.Kind)
	})

	t.Run("unknown kind", func(t *testing.T) {
		buf := wire.NewGrowable(4)
		require.NoError(t, buf.SetSequence(250))
		require.NoError(t, buf.Finalize())
		msg, err := common.DecodeMessage(s.Handle(1, buf))
		require.NoError(t, err)
		assert.Equal(t, common.KindError, msg.Kind)
	})

	t.Run("adapter panic", func(t *testing.T) {
		s.Bind(7, panicAdapter{})
		resp := call(t, s, 7, common.NewGraphListRequest())
		assert.Equal(t, common.KindError, resp.Kind)

		// the server keeps working
		resp = call(t, s, 1, common.NewGraphListRequest())
		assert.Equal(t, common.KindGraphList, resp.Kind)
	})
}

func TestHandleTimers(t *testing.T) {
	s := newServer(t)
	for range 3 {
		call(t, s, 3, common.NewOverlayLatestRequest())
	}
	timer, ok := s.Timers().Get("rpc." + common.KindOverlayLatest.String()).(gometrics.Timer)
	require.True(t, ok)
	assert.Equal(t, int64(3), timer.Count())
}

func TestInitRejectsEmptyConfig(t *testing.T) {
	s := NewRPCServer(common.ServerConfig{}, nopTransport{})
	assert.Error(t, s.init())
}

func TestAdaptersWithoutStore(t *testing.T) {
	device, err := lstore.NewLocalDeviceStore()
	require.NoError(t, err)
	for _, a := range []IRPCServerAdapter{
		NewGraphServerAdapter(nil),
		NewDeviceServerAdapter(nil),
		NewOverlayServerAdapter(nil),
	} {
		assert.Equal(t, common.KindError, a.Handle(common.NewKVListRequest()).Kind)
	}
	assert.Equal(t, common.KindKVList, NewDeviceServerAdapter(device).Handle(common.NewKVListRequest()).Kind)
}
