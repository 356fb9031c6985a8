// Package tcp implements the TCP socket based transport of the RPC system. It
// provides concrete implementations of the base package's connector
// interfaces.
//
// This package builds on the base package's transport functionality, inheriting its
// connection pooling, buffer reuse and request routing. See the base package
// documentation for the frame format and the underlying transport mechanisms.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both sides apply the SocketConf and TCPConf options of their configuration
// (no delay, buffer sizes, keep-alive, linger) to every connection.
package tcp
