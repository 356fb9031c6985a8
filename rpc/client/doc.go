// Package client implements RPC clients for the stores of a server. It
// provides implementations of store.IGraphStore, store.IDeviceStore and
// store.IOverlayStore that communicate with a remote server via RPC.
//
// The package focuses on:
//   - Transparent RPC access to the stores
//   - Integration with the transport layer and the message protocol
//   - Error handling and conversion of error responses
//
// Key Components:
//
//   - NewRPCGraphStore: Creates a client implementing store.IGraphStore.
//
//   - NewRPCDeviceStore: Creates a client implementing store.IDeviceStore.
//
//   - NewRPCOverlayStore: Creates a client implementing store.IOverlayStore.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  TimeoutSecond: 5,
//	  Transport: common.ClientTransportConfig{
//	    Endpoints:  []string{"localhost:8080"},
//	    RetryCount: 3,
//	  },
//	}
//
//	graphs, _ := client.NewRPCGraphStore(1, config, tcp.NewTCPClientTransport())
//	ids, _ := graphs.ListGraphs()
//
// Every store client connects its own transport. Errors reported by the
// server are returned as *common.RemoteError.
//
// Thread Safety:
//
//	All client implementations are thread-safe and can be used concurrently from
//	multiple goroutines without additional synchronization.
package client
