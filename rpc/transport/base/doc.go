// Package base provides a foundation for stream based transport layers,
// implementing core functionality for RPC communication independent of the
// specific network protocol (TCP, Unix sockets). It serves as a base layer
// that is extended with protocol-specific connectors.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - Performance optimization through connection pooling and buffer reuse
//   - Frame-based message protocol with interfaceID and requestID tracking
//   - Automatic request routing and response correlation
//   - Robust error handling with retries and reconnection logic
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - clientTransport: Core client implementation that manages multiple connections
//     with round-robin load balancing. Failed requests are retried with an
//     exponential backoff (cenkalti/backoff).
//
//   - serverTransport: Core server implementation that accepts connections and
//     routes requests to the registered handler.
//
//   - Metrics: Request, error, retry and byte counters plus a latency histogram
//     per transport side, exported through VictoriaMetrics.
//
// Frame Format:
//
//	| interfaceID uint64 | requestID uint64 | length uint32 | ByteBuffer (header + payload) |
//
// All frame header fields are big endian. The ByteBuffer is transmitted as is,
// in the byte order of the sender.
//
// Performance Optimizations:
//
//   - Buffer Pooling: The server uses a sync.Pool to reuse receive buffers.
//     Requests are wrapped without copying, the buffer returns to the pool
//     after the response is written.
//
//   - Asynchronous Processing: The client sends requests and correlates responses
//     asynchronously using unique request IDs, enabling higher throughput.
//
//   - Frame Batching: The transport uses net.Buffers to reduce syscalls when
//     writing frames, combining header and payload into a single write operation.
//
// Thread Safety:
//
//	All public methods are thread-safe. The client transport uses atomic operations
//	and mutexes to ensure concurrent access safety, while the server creates a
//	dedicated goroutine for each connection and bounds the workers per connection.
package base
