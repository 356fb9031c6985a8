package base

import (
	"net"
	"testing"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// --------------------------------------------------------------------------
// Test Connectors
// --------------------------------------------------------------------------

type testServerConnector struct{}

func (testServerConnector) GetName() string { return "test" }

func (testServerConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	return net.Listen("tcp", config.Transport.Endpoint)
}

func (testServerConnector) UpgradeConnection(net.Conn, common.ServerConfig) error { return nil }

type testClientConnector struct{}

func (testClientConnector) GetName() string { return "test" }

func (testClientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (testClientConnector) UpgradeConnection(net.Conn, common.ClientConfig) error { return nil }

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// echoHandler answers with the request payload and the interface id as sequence.
func echoHandler(interfaceID uint64, req *wire.ByteBuffer) *wire.ByteBuffer {
	resp := wire.NewGrowable(req.Len())
	if err := resp.SetSequence(uint8(interfaceID)); err != nil {
		return nil
	}
	if err := resp.WriteRaw(req.Payload()); err != nil {
		return nil
	}
	if err := resp.Finalize(); err != nil {
		return nil
	}
	return resp
}

func startServer(t *testing.T, config common.ServerConfig, handler func(uint64, *wire.ByteBuffer) *wire.ByteBuffer) string {
	t.Helper()
	if config.Transport.Endpoint == "" {
		config.Transport.Endpoint = "127.0.0.1:0"
	}
	srv := NewBaseServerTransport(testServerConnector{}).(*serverTransport)
	srv.RegisterHandler(handler)

	done := make(chan error, 1)
	go func() { done <- srv.Listen(config) }()
	require.Eventually(t, func() bool { return srv.Addr() != nil }, 5*time.Second, 5*time.Millisecond)

	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return srv.Addr().String()
}

func connectClient(t *testing.T, config common.ClientConfig) *clientTransport {
	t.Helper()
	c := NewBaseClientTransport(testClientConnector{}).(*clientTransport)
	require.NoError(t, c.Connect(config))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func request(t *testing.T, seq uint8, payload string) *wire.ByteBuffer {
	t.Helper()
	buf := wire.NewGrowable(len(payload))
	require.NoError(t, buf.SetSequence(seq))
	require.NoError(t, buf.WriteRaw([]byte(payload)))
	require.NoError(t, buf.Finalize())
	return buf
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestSendReceive(t *testing.T) {
	addr := startServer(t, common.ServerConfig{TimeoutSecond: 5}, echoHandler)
	c := connectClient(t, common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoints: []string{addr}, ConnectionsPerEndpoint: 2},
	})

	resp, err := c.Send(7, request(t, 1, "hello"))
	require.NoError(t, err)
	require.NoError(t, resp.VerifyChecksum())
	assert.Equal(t, uint8(7), resp.Sequence())
	assert.Equal(t, []byte("hello"), resp.Payload())
}

func TestSendConcurrent(t *testing.T) {
	addr := startServer(t, common.ServerConfig{
		TimeoutSecond: 5,
		Transport:     common.ServerTransportConfig{WorkersPerConn: 4, BufferSize: 16},
	}, echoHandler)
	c := connectClient(t, common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoints: []string{addr}, ConnectionsPerEndpoint: 3},
	})

	requests := make([]*wire.ByteBuffer, 64)
	for i := range requests {
		requests[i] = request(t, 0, string(make([]byte, i*100)))
	}

	var eg errgroup.Group
	for i := range requests {
		eg.Go(func() error {
			payload := string(make([]byte, i*100))
			resp, err := c.Send(uint64(i), requests[i])
			if err != nil {
				return err
			}
			if resp.Sequence() != uint8(i) || string(resp.Payload()) != payload {
				return errors.Newf("response %d mismatch", i)
			}
			return resp.VerifyChecksum()
		})
	}
	require.NoError(t, eg.Wait())
}

func TestInvalidFrameIsAnsweredWithError(t *testing.T) {
	addr := startServer(t, common.ServerConfig{}, echoHandler)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	// shorter than a ByteBuffer header
	require.NoError(t, writeFrame(conn, 1, 42, []byte{1, 2, 3}))
	_, requestID, data, err := readFrame(conn, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), requestID)

	buf, err := wire.Wrap(data)
	require.NoError(t, err)
	msg, err := common.DecodeMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, common.KindError, msg.Kind)
	assert.Error(t, msg.Failure())
}

func TestHandlerWithoutResponse(t *testing.T) {
	addr := startServer(t, common.ServerConfig{}, func(uint64, *wire.ByteBuffer) *wire.ByteBuffer { return nil })
	c := connectClient(t, common.ClientConfig{Transport: common.ClientTransportConfig{Endpoints: []string{addr}}})

	resp, err := c.Send(1, request(t, 1, "x"))
	require.NoError(t, err)
	msg, err := common.DecodeMessage(resp)
	require.NoError(t, err)
	assert.Equal(t, common.KindError, msg.Kind)
}

func TestFrameTooLarge(t *testing.T) {
	addr := startServer(t, common.ServerConfig{
		Transport: common.ServerTransportConfig{MaxMessageSize: 64},
	}, echoHandler)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	raw, err := request(t, 1, string(make([]byte, 100))).Bytes()
	require.NoError(t, err)
	require.NoError(t, writeFrame(conn, 1, 1, raw))

	// the server drops the connection
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, _, err = readFrame(conn, nil, 0)
	assert.Error(t, err)
}

func TestSendTimeout(t *testing.T) {
	slow := func(id uint64, req *wire.ByteBuffer) *wire.ByteBuffer {
		time.Sleep(1500 * time.Millisecond)
		return echoHandler(id, req)
	}
	addr := startServer(t, common.ServerConfig{}, slow)
	c := connectClient(t, common.ClientConfig{
		TimeoutSecond: 1,
		Transport:     common.ClientTransportConfig{Endpoints: []string{addr}, RetryCount: 1},
	})

	_, err := c.Send(1, request(t, 1, "x"))
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestSendRequiresFinalizedBuffer(t *testing.T) {
	addr := startServer(t, common.ServerConfig{}, echoHandler)
	c := connectClient(t, common.ClientConfig{Transport: common.ClientTransportConfig{Endpoints: []string{addr}}})

	_, err := c.Send(1, wire.New(8))
	assert.True(t, errors.Is(err, wire.ErrInvalidState))
}

func TestConnectErrors(t *testing.T) {
	c := NewBaseClientTransport(testClientConnector{})
	assert.Error(t, c.Connect(common.ClientConfig{}))

	// reserve a port and close it again
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	err = c.Connect(common.ClientConfig{Transport: common.ClientTransportConfig{Endpoints: []string{addr}}})
	assert.True(t, errors.Is(err, ErrNoConnection))
}

func TestSendAfterClose(t *testing.T) {
	addr := startServer(t, common.ServerConfig{}, echoHandler)
	c := connectClient(t, common.ClientConfig{Transport: common.ClientTransportConfig{Endpoints: []string{addr}}})
	require.NoError(t, c.Close())

	_, err := c.Send(1, request(t, 1, "x"))
	assert.True(t, errors.Is(err, ErrNoConnection))
}
