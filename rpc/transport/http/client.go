package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport/base"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
)

// NewHttpClientTransport creates a new HTTP client transport
func NewHttpClientTransport() transport.IRPCClientTransport {
	return &httpClientTransport{
		metrics: base.NewMetrics("client", "http"),
	}
}

type httpClientTransport struct {
	serverURLs []*url.URL
	client     *http.Client
	counter    atomic.Uint32
	config     common.ClientConfig
	metrics    *base.Metrics
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	if len(config.Transport.Endpoints) == 0 {
		return errors.New("no endpoints provided")
	}

	parsedURLs := make([]*url.URL, len(config.Transport.Endpoints))
	for i, server := range config.Transport.Endpoints {
		parsedURL, err := url.Parse(server)
		if err != nil {
			return errors.Wrapf(err, "invalid endpoint %q", server)
		}
		if parsedURL.Scheme == "" || parsedURL.Host == "" {
			return errors.Newf("invalid endpoint %q, expected http://host:port", server)
		}
		parsedURLs[i] = parsedURL
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	t.client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: max(config.Transport.ConnectionsPerEndpoint, 10),
			IdleConnTimeout:     90 * time.Second,
		},
	}
	t.serverURLs = parsedURLs
	t.config = config
	t.counter.Store(0)
	return nil
}

func (t *httpClientTransport) Send(interfaceID uint64, req *wire.ByteBuffer) (*wire.ByteBuffer, error) {
	if t.client == nil {
		return nil, errors.New("http transport not initialized")
	}
	data, err := req.Bytes()
	if err != nil {
		return nil, err
	}

	attempts := max(t.config.Transport.RetryCount, 1)
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 0

	var resp []byte
	op := func() error {
		start := time.Now()
		r, err := t.post(interfaceID, data)
		if err != nil {
			t.metrics.Error()
			return err
		}
		t.metrics.Request(start, len(r), len(data))
		resp = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		t.metrics.Retry()
		Logger.Debugf("Request failed: %v, retrying in %s", err, wait)
	}
	if err := backoff.RetryNotify(op, backoff.WithMaxRetries(bo, uint64(attempts-1)), notify); err != nil {
		return nil, err
	}
	return wire.Wrap(resp)
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	t.client = nil
	t.serverURLs = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// post sends one request to the next server, selected via round-robin.
func (t *httpClientTransport) post(interfaceID uint64, data []byte) ([]byte, error) {
	idx := t.counter.Add(1) % uint32(len(t.serverURLs))
	requestURL := t.serverURLs[idx].JoinPath(fmt.Sprintf("%d", interfaceID))

	httpResponse, err := t.client.Post(requestURL.String(), contentType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if httpResponse.StatusCode != http.StatusOK {
		err := errors.Newf("http error: %s", httpResponse.Status)
		// client errors are not retried
		if httpResponse.StatusCode >= 400 && httpResponse.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	limit := int64(t.config.Transport.MaxFrameSize())
	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, backoff.Permanent(errors.Newf("response exceeds %d bytes", limit))
	}
	return body, nil
}
