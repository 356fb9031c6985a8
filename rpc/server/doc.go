// Package server implements the RPC server. It routes the requests of a
// transport to adapters, each of which serves one store under an interface id.
//
// The package focuses on:
//   - Server-side RPC request handling for graph, device and overlay stores
//   - Adapter pattern to decouple application logic from RPC mechanisms
//   - Never failing request handling: every problem becomes an error response
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server adapters,
//     with the Handle method that processes a decoded request.
//
//   - NewGraphServerAdapter, NewDeviceServerAdapter, NewOverlayServerAdapter:
//     Adapters translating requests to calls of the store interfaces.
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transport. The configured interfaces are backed by local stores.
//
// Request Handling:
//
//	The sequence byte of a request selects the message kind. The server looks
//	up the adapter of the interface, verifies and decodes the request, calls
//	the adapter and encodes the response with the same kind. Unknown
//	interfaces, corrupted buffers, unknown type tags and adapter panics all
//	produce an error response, the server keeps running.
//
// Metrics:
//
//	Every request updates a timer per message kind (rcrowley/go-metrics).
//	If MetricsEndpoint is set, the VictoriaMetrics transport counters are
//	served on /metrics and the timers as JSON on /debug/timers.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Interfaces: []common.ServerInterface{
//	    {ID: 1, Type: common.InterfaceGraph},
//	    {ID: 2, Type: common.InterfaceDevice},
//	    {ID: 3, Type: common.InterfaceOverlay},
//	  },
//	  Transport:     common.ServerTransportConfig{Endpoint: "0.0.0.0:8080"},
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	}
//
//	s := server.NewRPCServer(config, tcp.NewTCPServerTransport())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent requests
//	across multiple connections. Each request is processed independently.
//	Serve is not thread-safe and should be called only once.
package server
