package http

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(interfaceID uint64, req *wire.ByteBuffer) *wire.ByteBuffer {
	resp := wire.NewGrowable(req.Len())
	_ = resp.SetSequence(uint8(interfaceID))
	_ = resp.WriteRaw(req.Payload())
	_ = resp.Finalize()
	return resp
}

func startServer(t *testing.T, config common.ServerConfig) string {
	t.Helper()
	config.Transport.Endpoint = "127.0.0.1:0"
	srv := NewHttpServerTransport().(*httpServerTransport)
	srv.RegisterHandler(echoHandler)

	done := make(chan error, 1)
	go func() { done <- srv.Listen(config) }()
	require.Eventually(t, func() bool { return srv.Addr() != nil }, 5*time.Second, 5*time.Millisecond)

	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		assert.NoError(t, <-done)
	})
	return "http://" + srv.Addr().String()
}

func request(t *testing.T, payload []byte) *wire.ByteBuffer {
	t.Helper()
	buf := wire.NewGrowable(len(payload))
	require.NoError(t, buf.WriteRaw(payload))
	require.NoError(t, buf.Finalize())
	return buf
}

func TestHttpSendReceive(t *testing.T) {
	url := startServer(t, common.ServerConfig{TimeoutSecond: 5})

	c := NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoints: []string{url}},
	}))
	defer c.Close()

	resp, err := c.Send(3, request(t, []byte("overlay")))
	require.NoError(t, err)
	require.NoError(t, resp.VerifyChecksum())
	assert.Equal(t, uint8(3), resp.Sequence())
	assert.Equal(t, []byte("overlay"), resp.Payload())
}

func TestHttpInvalidRequests(t *testing.T) {
	url := startServer(t, common.ServerConfig{
		Transport: common.ServerTransportConfig{MaxMessageSize: 32},
	})

	resp, err := http.Post(url+"/abc", contentType, bytes.NewReader(nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(url+"/1", contentType, bytes.NewReader(make([]byte, 64)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	// a body that is no ByteBuffer is answered with an error message
	raw := request(t, nil)
	b, err := raw.Bytes()
	require.NoError(t, err)
	resp, err = http.Post(url+"/1", contentType, bytes.NewReader(b[:5]))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHttpConnectErrors(t *testing.T) {
	c := NewHttpClientTransport()
	assert.Error(t, c.Connect(common.ClientConfig{}))
	assert.Error(t, c.Connect(common.ClientConfig{Transport: common.ClientTransportConfig{Endpoints: []string{"localhost"}}}))

	_, err := NewHttpClientTransport().Send(1, request(t, nil))
	assert.Error(t, err)
}
