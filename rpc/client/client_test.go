package client

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/store/lstore"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/server"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport/http"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport/tcp"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	bootstrap.MustBootstrap()
	os.Exit(m.Run())
}

type addrTransport interface {
	transport.IRPCServerTransport
	Addr() net.Addr
}

// startServer serves graph (1), device (2) and overlay (3) interfaces and
// returns the listen address.
func startServer(t *testing.T, srvTransport transport.IRPCServerTransport) string {
	t.Helper()
	device, err := lstore.NewLocalDeviceStore(
		keyvalue.New[int32]("ExposureTime", 100, 1, 1000),
		&keyvalue.Entry[string]{Key: "SerialNumber", Value: "SM-0001", ReadOnly: true},
	)
	require.NoError(t, err)

	s := server.NewRPCServer(common.ServerConfig{
		Interfaces: []common.ServerInterface{
			{ID: 1, Type: common.InterfaceGraph},
			{ID: 3, Type: common.InterfaceOverlay},
		},
		TimeoutSecond: 5,
		Transport:     common.ServerTransportConfig{Endpoint: "127.0.0.1:0", WorkersPerConn: 4},
	}, srvTransport)
	s.Bind(2, server.NewDeviceServerAdapter(device))

	done := make(chan error, 1)
	go func() { done <- s.Serve() }()

	at := srvTransport.(addrTransport)
	require.Eventually(t, func() bool { return at.Addr() != nil }, 5*time.Second, 5*time.Millisecond)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
		assert.NoError(t, <-done)
	})
	return at.Addr().String()
}

func clientConfig(endpoint string) common.ClientConfig {
	return common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoints: []string{endpoint}, RetryCount: 2},
	}
}

func testGraph() *graph.Graph {
	comp := graph.Component{ID: uuid.New(), Filename: "libSeam.so"}
	src := graph.Filter{
		ID: uuid.New(), Name: "camera", Component: comp.ID,
		OutPipes: []graph.OutPipe{{Name: "image", ContentType: "ImageFrame"}},
	}
	sink := graph.Filter{
		ID: uuid.New(), Name: "seam", Component: comp.ID,
		InPipes:    []graph.InPipe{{Sender: src.ID, Name: "image"}},
		Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(42))},
	}
	return &graph.Graph{ID: uuid.New(), Components: []graph.Component{comp}, Filters: []graph.Filter{src, sink}}
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestGraphClient(t *testing.T) {
	addr := startServer(t, tcp.NewTCPServerTransport())
	graphs, err := NewRPCGraphStore(1, clientConfig(addr), tcp.NewTCPClientTransport())
	require.NoError(t, err)

	g := testGraph()
	require.NoError(t, graphs.PutGraph(g))

	got, ok, err := graphs.GetGraph(g.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, g, got)

	_, ok, err = graphs.GetGraph(uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := graphs.ListGraphs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{g.ID}, ids)

	update := []graph.FilterParametersContainer{{
		FilterID:   g.Filters[1].ID,
		Parameters: []graph.FilterParameter{graph.NewParameter("threshold", int32(7))},
	}}
	require.NoError(t, graphs.SetParameters(g.ID, update))
	got, _, err = graphs.GetGraph(g.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(7), got.Filters[1].Parameters[0].Any())

	// type mismatch is reported by the server
	bad := []graph.FilterParametersContainer{{
		FilterID:   g.Filters[1].ID,
		Parameters: []graph.FilterParameter{graph.NewParameter("threshold", "high")},
	}}
	err = graphs.SetParameters(g.ID, bad)
	var remote *common.RemoteError
	assert.True(t, errors.As(err, &remote))

	require.NoError(t, graphs.DeleteGraph(g.ID))
	ids, err = graphs.ListGraphs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeviceClient(t *testing.T) {
	addr := startServer(t, tcp.NewTCPServerTransport())
	device, err := NewRPCDeviceStore(2, clientConfig(addr), tcp.NewTCPClientTransport())
	require.NoError(t, err)

	require.NoError(t, device.SetKeyValue(keyvalue.New[int32]("ExposureTime", 250, 0, 0)))
	kv, ok, err := device.GetKeyValue("ExposureTime")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(250), kv.Any())
	assert.Equal(t, int32(1), kv.(*keyvalue.Entry[int32]).Min)

	assert.Error(t, device.SetKeyValue(keyvalue.New[int32]("ExposureTime", 5000, 0, 0)))
	assert.Error(t, device.SetKeyValue(keyvalue.New[string]("SerialNumber", "x", "", "")))

	_, ok, err = device.GetKeyValue("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	kvs, err := device.ListKeyValues()
	require.NoError(t, err)
	require.Len(t, kvs, 2)
	assert.Equal(t, "ExposureTime", kvs[0].Info().Key)
	assert.Equal(t, "SerialNumber", kvs[1].Info().Key)
}

func TestOverlayClientOverHttp(t *testing.T) {
	addr := startServer(t, http.NewHttpServerTransport())
	overlays, err := NewRPCOverlayStore(3, clientConfig("http://"+addr), http.NewHttpClientTransport())
	require.NoError(t, err)

	_, ok, err := overlays.LatestOverlay()
	require.NoError(t, err)
	assert.False(t, ok)

	frame := &overlay.Frame{
		ImageNumber: 9,
		Layers: []overlay.Layer{{
			Name: "seam",
			Shapes: []overlay.Shape{
				&overlay.Line{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: overlay.Green},
				&overlay.Text{Text: "ok", Box: overlay.Rect{Width: 20, Height: 10}, Color: overlay.White},
			},
		}},
	}
	require.NoError(t, overlays.PublishOverlay(frame))

	got, ok, err := overlays.LatestOverlay()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, frame, got)
}

func TestUnknownInterface(t *testing.T) {
	addr := startServer(t, tcp.NewTCPServerTransport())
	graphs, err := NewRPCGraphStore(99, clientConfig(addr), tcp.NewTCPClientTransport())
	require.NoError(t, err)

	_, err = graphs.ListGraphs()
	var remote *common.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, common.KindError, remote.Kind)
}

func TestWrongInterfaceType(t *testing.T) {
	addr := startServer(t, tcp.NewTCPServerTransport())
	// graph requests sent to the device interface
	graphs, err := NewRPCGraphStore(2, clientConfig(addr), tcp.NewTCPClientTransport())
	require.NoError(t, err)

	_, err = graphs.ListGraphs()
	assert.Error(t, err)
}
