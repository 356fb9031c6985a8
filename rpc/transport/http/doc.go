// Package http implements an HTTP-based transport layer for RPC communication.
// It provides concrete implementations of the transport interfaces defined in
// the parent package, enabling communication between clients and servers over
// plain HTTP.
//
// The package focuses on:
//   - Client-side HTTP transport for sending RPC requests to servers
//   - Server-side HTTP transport for receiving and handling RPC requests
//   - Round-robin load balancing across multiple server endpoints
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. Every request is a
//     POST of the finalized ByteBuffer to /{interfaceId}. Failed requests are
//     retried with an exponential backoff, client errors (4xx) are not.
//
//   - httpServerTransport: Implements IRPCServerTransport, setting up an HTTP
//     server that routes incoming requests to the handler based on the
//     interface ID specified in the URL path. Bodies larger than the
//     configured message size are rejected with 413.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter when selecting endpoints.
package http
