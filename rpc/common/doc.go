// Package common provides the data structures and utilities shared by the
// RPC server, the clients and the transports.
//
// The package focuses on:
//   - Message protocol definition for client server communication
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with the dragonboat logger facade
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication. Which fields
//     are used depends on the kind of the message. Includes factory methods
//     for creating the request and response messages of every operation.
//
//   - MessageKind: Enumeration of all supported operations. The kind is not
//     part of the payload, it is stored in the one byte sequence field of the
//     buffer header, so the receiver knows what to decode before it touches
//     the payload.
//
//   - ServerConfig: Configuration of a server node: the interfaces it serves,
//     the transport settings and logging.
//
//   - ClientConfig: Configuration for client components, controlling
//     endpoints, timeouts and retry behavior.
//
//   - Logger: Custom logging implementation that plugs into the dragonboat
//     logger facade and provides consistent formatting across the application.
//
// Wire Format:
//
//	header:  seq = MessageKind | payloadLen | checksum
//	payload: Ok bool | Err string | fields of the kind
package common
