package http

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport/base"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport")

const contentType = "application/octet-stream"

// NewHttpServerTransport creates a new HTTP server transport
func NewHttpServerTransport() transport.IRPCServerTransport {
	return &httpServerTransport{
		metrics: base.NewMetrics("server", "http"),
	}
}

type httpServerTransport struct {
	handler  transport.ServerHandleFunc
	config   common.ServerConfig
	metrics  *base.Metrics
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return errors.New("no handler registered")
	}
	t.config = config

	mux := http.NewServeMux()
	if t.config.LogLevel == "debug" {
		mux.HandleFunc("POST /{interfaceId}", loggerMiddleware(t.handleRequest))
	} else {
		mux.HandleFunc("POST /{interfaceId}", t.handleRequest)
	}

	listener, err := net.Listen("tcp", config.Transport.Endpoint)
	if err != nil {
		return errors.Wrap(err, "failed to create listener")
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	t.mu.Lock()
	t.server = server
	t.listener = listener
	t.mu.Unlock()

	Logger.Infof("Starting HTTP server on %s", listener.Addr())

	err = server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the address the transport listens on, nil before Listen.
func (t *httpServerTransport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *httpServerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.server == nil {
		return nil
	}
	return t.server.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleRequest handles incoming HTTP requests and writes the response to the writer
func (t *httpServerTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	interfaceID, err := strconv.ParseUint(r.PathValue("interfaceId"), 10, 64)
	if err != nil {
		t.metrics.Error()
		http.Error(w, "Invalid interfaceId", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(t.config.Transport.MaxFrameSize())))
	defer r.Body.Close()
	if err != nil {
		t.metrics.Error()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	var resp []byte
	if req, err := wire.Wrap(body); err != nil {
		t.metrics.Error()
		resp = base.ErrorResponse(err)
	} else {
		resp = base.ResponseBytes(t.handler(interfaceID, req))
	}

	w.Header().Set("Content-Type", contentType)
	if _, err = w.Write(resp); err != nil {
		t.metrics.Error()
		Logger.Errorf("Failed to write response: %v", err)
		return
	}
	t.metrics.Request(start, len(body), len(resp))
}

// --------------------------------------------------------------------------
// Middleware (logging)
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		Logger.Debugf("%s %s => %d took %s", r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	}
}
