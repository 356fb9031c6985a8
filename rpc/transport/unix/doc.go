// Package unix implements a transport layer for the RPC system using Unix
// domain sockets. It is meant for processes running on the same machine, for
// example a device driver process publishing overlays to a local server.
//
// This package extends the base transport layer with Unix socket-specific connectors
// while inheriting all core functionality like connection pooling, request routing,
// and error handling from the base package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners and accepts connections.
//     An existing socket file at the endpoint path is removed first.
//
// Since both sides run on the same host, the native byte order of the
// ByteBuffer matches on both ends.
package unix
