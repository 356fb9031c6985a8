package server

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/IEcheandia/scanmaster-sub023/lib/bootstrap"
	"github.com/IEcheandia/scanmaster-sub023/lib/store/lstore"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	vm "github.com/VictoriaMetrics/metrics"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	gometrics "github.com/rcrowley/go-metrics"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config and a transport as parameters. The interfaces of the
// config are backed by local stores, additional adapters can be bound with
// Bind before Serve is called.
//
// Usage:
//
//	s := server.NewRPCServer(*config, tcp.NewTCPServerTransport())
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(config common.ServerConfig, transport transport.IRPCServerTransport) *RPCServer {
	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return &RPCServer{
		config:     config,
		transport:  transport,
		interfaces: xsync.NewMapOf[uint64, IRPCServerAdapter](),
		timers:     gometrics.NewRegistry(),
	}
}

// RPCServer routes the requests of a transport to the adapters of its interfaces.
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	interfaces *xsync.MapOf[uint64, IRPCServerAdapter]
	timers     gometrics.Registry

	metricsMu     sync.Mutex
	metricsServer *http.Server
}

// Bind serves adapter under the interface id. An existing binding is replaced.
func (s *RPCServer) Bind(interfaceID uint64, adapter IRPCServerAdapter) {
	s.interfaces.Store(interfaceID, adapter)
	Logger.Infof("bound %s interface to id %d", adapter.Type(), interfaceID)
}

// Serve starts the RPC server
// This function will also initialize the interfaces and start the transport layer.
// It blocks until Close is called.
func (s *RPCServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	if s.config.MetricsEndpoint != "" {
		if err := s.serveMetrics(); err != nil {
			return err
		}
	}
	return s.transport.Listen(s.config)
}

// Close stops the transport and the metrics endpoint.
func (s *RPCServer) Close() error {
	s.metricsMu.Lock()
	if s.metricsServer != nil {
		_ = s.metricsServer.Close()
	}
	s.metricsMu.Unlock()
	return s.transport.Close()
}

// Handle processes one request buffer. It is registered as the handler of the
// transport and never fails: every error is answered with an error message.
func (s *RPCServer) Handle(interfaceID uint64, req *wire.ByteBuffer) (resp *wire.ByteBuffer) {
	start := time.Now()
	kind := common.MessageKind(req.Sequence())
	defer func() {
		gometrics.GetOrRegisterTimer("rpc."+kind.String(), s.timers).UpdateSince(start)
	}()

	respMsg := s.dispatch(interfaceID, req)

	buf, err := common.EncodeMessage(respMsg)
	if err != nil {
		Logger.Errorf("failed to encode %s response: %v", respMsg.Kind, err)
		buf, err = common.EncodeMessage(common.NewErrorResponse(fmt.Sprintf("failed to encode response: %s", err)))
		if err != nil {
			return nil
		}
	}
	return buf
}

// Timers returns the registry holding one timer per message kind.
func (s *RPCServer) Timers() gometrics.Registry {
	return s.timers
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *RPCServer) init() error {
	if err := bootstrap.Bootstrap(); err != nil {
		return errors.Wrap(err, "bootstrap")
	}

	for _, i := range s.config.Interfaces {
		if _, ok := s.interfaces.Load(i.ID); ok {
			continue
		}
		switch i.Type {
		case common.InterfaceGraph:
			s.Bind(i.ID, NewGraphServerAdapter(lstore.NewLocalGraphStore()))
		case common.InterfaceDevice:
			device, err := lstore.NewLocalDeviceStore()
			if err != nil {
				return err
			}
			s.Bind(i.ID, NewDeviceServerAdapter(device))
		case common.InterfaceOverlay:
			s.Bind(i.ID, NewOverlayServerAdapter(lstore.NewLocalOverlayStore()))
		default:
			return errors.Newf("invalid interface type: %s", i.Type)
		}
	}

	if s.interfaces.Size() == 0 {
		return errors.New("no interfaces configured")
	}

	s.transport.RegisterHandler(s.Handle)
	Logger.Infof("server setup completed successfully")
	return nil
}

// dispatch decodes the request and hands it to the adapter of the interface.
func (s *RPCServer) dispatch(interfaceID uint64, req *wire.ByteBuffer) (resp *common.Message) {
	adapter, ok := s.interfaces.Load(interfaceID)
	if !ok {
		return common.NewErrorResponse(fmt.Sprintf("interface %d not found", interfaceID))
	}

	msg, err := common.DecodeMessage(req)
	if err != nil {
		Logger.Warningf("failed to decode request for interface %d: %v", interfaceID, err)
		return common.NewErrorResponse(fmt.Sprintf("failed to decode request: %s", err))
	}

	defer func() {
		if r := recover(); r != nil {
			Logger.Errorf("panic while handling %s on interface %d: %v", msg.Kind, interfaceID, r)
			resp = common.NewErrorResponse(fmt.Sprintf("internal error handling %s", msg.Kind))
		}
	}()
	return adapter.Handle(msg)
}

// serveMetrics exposes the prometheus metrics and the per kind timers.
func (s *RPCServer) serveMetrics() error {
	listener, err := net.Listen("tcp", s.config.MetricsEndpoint)
	if err != nil {
		return errors.Wrap(err, "failed to create metrics listener")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		vm.WritePrometheus(w, true)
	})
	mux.HandleFunc("GET /debug/timers", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		gometrics.WriteJSONOnce(s.timers, w)
	})

	server := &http.Server{Handler: mux}
	s.metricsMu.Lock()
	s.metricsServer = server
	s.metricsMu.Unlock()

	Logger.Infof("Serving metrics on %s", listener.Addr())
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("metrics server stopped: %v", err)
		}
	}()
	return nil
}
