package base

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("transport")

var (
	// ErrNoConnection is returned when no connection to any endpoint is available.
	ErrNoConnection = errors.New("transport: no active connections available")
	// ErrTimeout is returned when no response arrived in time.
	ErrTimeout = errors.New("transport: request timed out")
	// ErrConnectionClosed is returned for requests on a closed connection.
	ErrConnectionClosed = errors.New("transport: connection is closed")
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// responseResult contains the result of a request
type responseResult struct {
	data []byte
	err  error
}

// clientConnection represents a single net connection
type clientConnection struct {
	conn         net.Conn
	endpoint     string
	stopCh       chan struct{} // Close signal for the reader goroutine
	requestChans *xsync.MapOf[uint64, chan responseResult]
	connMu       sync.Mutex // Protects the connection itself
	parent       *clientTransport
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector     IClientConnector
	config        common.ClientConfig
	metrics       *Metrics
	connections   []*clientConnection
	connectionsMu sync.RWMutex
	nextConnIndex atomic.Uint64 // Round Robin
	nextRequestID atomic.Uint64 // unique request IDs
	stopping      atomic.Bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
		metrics:   NewMetrics("client", connector.GetName()),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if len(config.Transport.Endpoints) == 0 {
		return errors.New("no endpoints provided")
	}

	// Close all existing connections
	t.closeConnections()

	t.config = config
	t.stopping.Store(false)

	connectionsPerEP := max(config.Transport.ConnectionsPerEndpoint, 1)
	connections := make([]*clientConnection, 0, len(config.Transport.Endpoints)*connectionsPerEP)

	for _, endpoint := range config.Transport.Endpoints {
		for i := 0; i < connectionsPerEP; i++ {
			clientConn := &clientConnection{
				endpoint:     endpoint,
				stopCh:       make(chan struct{}),
				requestChans: xsync.NewMapOf[uint64, chan responseResult](),
				parent:       t,
			}

			if err := clientConn.reconnect(); err != nil {
				Logger.Warningf("Failed to connect to %s (connection %d/%d): %v", endpoint, i+1, connectionsPerEP, err)
				continue
			}

			connections = append(connections, clientConn)
			Logger.Debugf("Connected to %s (connection %d/%d)", endpoint, i+1, connectionsPerEP)

			go clientConn.readResponses()
		}
	}

	if len(connections) == 0 {
		return errors.Wrapf(ErrNoConnection, "failed to connect to any of %v", config.Transport.Endpoints)
	}

	t.connectionsMu.Lock()
	t.connections = connections
	t.connectionsMu.Unlock()

	Logger.Infof("Connected to %d out of %d connections to %d endpoints using %s transport",
		len(connections), len(config.Transport.Endpoints)*connectionsPerEP, len(config.Transport.Endpoints), t.connector.GetName())

	return nil
}

func (t *clientTransport) Send(interfaceID uint64, req *wire.ByteBuffer) (*wire.ByteBuffer, error) {
	data, err := req.Bytes()
	if err != nil {
		return nil, err
	}

	// We always try at least once
	attempts := max(t.config.Transport.RetryCount, 1)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.RandomizationFactor = 0.1
	bo.MaxElapsedTime = 0

	attempt := 0
	var resp []byte
	op := func() error {
		attempt++
		conn := t.getNextConnection()
		if conn == nil {
			return backoff.Permanent(ErrNoConnection)
		}
		start := time.Now()
		r, err := conn.send(interfaceID, t.nextRequestID.Add(1), data)
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
		Logger.Debugf("Request attempt %d/%d failed: %v, retrying in %s", attempt, attempts, err, wait)
	}

	if err := backoff.RetryNotify(op, backoff.WithMaxRetries(bo, uint64(attempts-1)), notify); err != nil {
		return nil, errors.Wrapf(err, "failed to send request after %d attempts", attempt)
	}
	return wire.Wrap(resp)
}

func (t *clientTransport) Close() error {
	t.stopping.Store(true)
	t.closeConnections()
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// getNextConnection selects the next connection via Round Robin
func (t *clientTransport) getNextConnection() *clientConnection {
	t.connectionsMu.RLock()
	defer t.connectionsMu.RUnlock()

	if len(t.connections) == 0 {
		return nil
	}
	if len(t.connections) == 1 {
		return t.connections[0]
	}
	return t.connections[t.nextConnIndex.Add(1)%uint64(len(t.connections))]
}

// closeConnections closes all active connections
func (t *clientTransport) closeConnections() {
	t.connectionsMu.Lock()
	defer t.connectionsMu.Unlock()

	for _, c := range t.connections {
		close(c.stopCh)
		c.connMu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.connMu.Unlock()
	}
	t.connections = nil
}

// send writes one request frame and waits for the matching response.
func (c *clientConnection) send(interfaceID, requestID uint64, data []byte) ([]byte, error) {
	respCh := make(chan responseResult, 1)
	c.requestChans.Store(requestID, respCh)
	defer c.requestChans.Delete(requestID)

	timeout := time.Duration(c.parent.config.TimeoutSecond) * time.Second

	c.connMu.Lock()
	if c.conn == nil {
		c.connMu.Unlock()
		return nil, ErrConnectionClosed
	}
	if timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	err := writeFrame(c.conn, interfaceID, requestID, data)
	c.connMu.Unlock()
	if err != nil {
		return nil, err
	}

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case result := <-respCh:
		return result.data, result.err
	case <-timeoutCh:
		return nil, errors.Wrapf(ErrTimeout, "request %d after %s", requestID, timeout)
	case <-c.stopCh:
		return nil, ErrConnectionClosed
	}
}

// readResponses reads responses in a loop and distributes them to waiting requests
func (c *clientConnection) readResponses() {
	maxSize := c.parent.config.Transport.MaxFrameSize()
	for {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()
		if conn == nil {
			return
		}

		interfaceID, requestID, data, err := readFrame(conn, nil, maxSize)
		if err != nil {
			select {
			case <-c.stopCh:
				return
			default:
			}

			// The stream is broken, fail all pending requests and reconnect
			Logger.Warningf("Error reading response from %s: %v", c.endpoint, err)
			c.failPending(errors.Wrap(err, "error reading response"))
			if err := c.reconnect(); err != nil {
				Logger.Errorf("Failed to reconnect to %s: %v", c.endpoint, err)
				return
			}
			continue
		}

		respCh, found := c.requestChans.Load(requestID)
		if !found {
			Logger.Warningf("Received response for unknown request ID %d with interface ID %d", requestID, interfaceID)
			continue
		}
		respCh <- responseResult{data: data}
	}
}

func (c *clientConnection) failPending(err error) {
	c.requestChans.Range(func(requestID uint64, respCh chan responseResult) bool {
		select {
		case respCh <- responseResult{err: err}:
		default:
		}
		return true
	})
}

// reconnect establishes or restores a connection to the endpoint
func (c *clientConnection) reconnect() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.parent.stopping.Load() {
		return ErrConnectionClosed
	}

	conn, err := c.parent.connector.Connect(c.endpoint)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", c.endpoint)
	}

	if err := c.parent.connector.UpgradeConnection(conn, c.parent.config); err != nil {
		conn.Close()
		return errors.Wrapf(err, "failed to upgrade connection to %s", c.endpoint)
	}

	c.conn = conn
	return nil
}
