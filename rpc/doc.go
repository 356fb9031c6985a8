// Package rpc provides the remote access layer for the scanmaster stores. It
// carries graph, device and overlay messages between clients and a server
// using the binary wire format of lib/wire and lib/codec.
//
// The package is organized into several subpackages:
//
//   - common: The Message protocol with its message kinds, configuration
//     structures and logging.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets, HTTP). Transports move finalized byte buffers and do
//     not look into the payload.
//
//   - client: RPC client implementations of the graph, device and overlay store
//     interfaces, allowing applications to use remote stores transparently.
//
//   - server: RPC server components that decode incoming requests and dispatch
//     them to the adapter bound to the requested interface.
package rpc
