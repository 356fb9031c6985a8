package base

import (
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultBufferSize is the size of the pooled receive buffers if none is configured.
const DefaultBufferSize = 64 * 1024

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	metrics    *Metrics
	bufferPool *sync.Pool

	listenerMu sync.Mutex
	listener   net.Listener
	closed     atomic.Bool
	conns      *xsync.MapOf[net.Conn, struct{}]
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with per-connection worker pool
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
		metrics:   NewMetrics("server", connector.GetName()),
		conns:     xsync.NewMapOf[net.Conn, struct{}](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return errors.New("no handler registered")
	}
	t.config = config

	bufferSize := config.Transport.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	t.bufferPool = &sync.Pool{
		New: func() interface{} {
			return make([]byte, bufferSize)
		},
	}

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return errors.Wrap(err, "failed to create listener")
	}
	t.listenerMu.Lock()
	t.listener = listener
	t.listenerMu.Unlock()
	if t.closed.Load() {
		return listener.Close()
	}

	Logger.Infof("Starting %s server on %s with %d workers per connection",
		t.connector.GetName(), config.Transport.Endpoint, t.workersPerConn())

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				Logger.Infof("Stopped %s server on %s", t.connector.GetName(), config.Transport.Endpoint)
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		// Handle the connection in a goroutine
		t.conns.Store(conn, struct{}{})
		go t.handleConnection(conn)
	}
}

// Addr returns the address the transport listens on, nil before Listen.
func (t *serverTransport) Addr() net.Addr {
	t.listenerMu.Lock()
	defer t.listenerMu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Close() error {
	t.closed.Store(true)

	t.listenerMu.Lock()
	listener := t.listener
	t.listenerMu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}
	t.conns.Range(func(conn net.Conn, _ struct{}) bool {
		_ = conn.Close()
		return true
	})
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (t *serverTransport) workersPerConn() int {
	// minimum one worker per connection
	return max(t.config.Transport.WorkersPerConn, 1)
}

// handleConnection handles incoming requests for one connection
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer func() {
		t.conns.Delete(conn)
		conn.Close()
	}()

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	maxSize := t.config.Transport.MaxFrameSize()

	// The buffered channel acts as a counting semaphore
	workerSemaphore := make(chan struct{}, t.workersPerConn())

	var wg sync.WaitGroup

	// Protects writes to the connection
	var connMutex sync.Mutex

	// Handler function that processes requests in worker goroutines
	handleResponse := func(interfaceID, requestID uint64, data []byte) {
		defer func() {
			<-workerSemaphore
			wg.Done()
		}()

		start := time.Now()
		resp := t.process(interfaceID, data)
		Logger.Debugf("Processed request for interface %d with requestID %d took %s", interfaceID, requestID, time.Since(start))

		connMutex.Lock()
		defer connMutex.Unlock()

		if timeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set write deadline: %v", err)
				return
			}
		}

		// Write the response with the same requestID
		if err := writeFrame(conn, interfaceID, requestID, resp); err != nil {
			t.metrics.Error()
			Logger.Errorf("Failed to write response: %v", err)
			return
		}
		t.metrics.Request(start, len(data), len(resp))
	}

	handleRequest := func() error {
		// Get a buffer from the pool
		buf := t.bufferPool.Get().([]byte)

		interfaceID, requestID, data, err := readFrame(conn, buf, maxSize)
		if err != nil {
			t.bufferPool.Put(buf)
			return err
		}

		// Acquire a slot in the semaphore (blocks if the worker limit is reached)
		workerSemaphore <- struct{}{}
		wg.Add(1)

		go func() {
			defer t.bufferPool.Put(buf)
			handleResponse(interfaceID, requestID, data)
		}()

		return nil
	}

	for {
		err := handleRequest()

		// Case EOF: Connection closed by client
		if err == io.EOF {
			Logger.Debugf("Connection closed by client %s", conn.RemoteAddr())
			break
		}

		if err != nil {
			if !t.closed.Load() {
				t.metrics.Error()
				Logger.Errorf("Error handling request: %v", err)
			}
			break
		}
	}

	// Wait for all workers to finish before closing the connection
	wg.Wait()
}

// process wraps the received bytes and calls the handler. Transport level
// failures are answered with an error message.
func (t *serverTransport) process(interfaceID uint64, data []byte) []byte {
	req, err := wire.Wrap(data)
	if err != nil {
		t.metrics.Error()
		return ErrorResponse(err)
	}
	return ResponseBytes(t.handler(interfaceID, req))
}

// ErrorResponse encodes err as an error message. It is used by all server
// transports when a request never reaches the handler.
func ErrorResponse(err error) []byte {
	buf, encErr := common.EncodeMessage(common.NewErrorResponse(err.Error()))
	if encErr != nil {
		Logger.Errorf("Failed to encode error response: %v", encErr)
		return nil
	}
	raw, _ := buf.Bytes()
	return raw
}

// ResponseBytes returns the bytes of a finalized response buffer or an
// encoded error message if the buffer is unusable.
func ResponseBytes(resp *wire.ByteBuffer) []byte {
	if resp == nil {
		return ErrorResponse(errors.New("handler returned no response"))
	}
	raw, err := resp.Bytes()
	if err != nil {
		return ErrorResponse(errors.Wrap(err, "invalid response buffer"))
	}
	return raw
}
