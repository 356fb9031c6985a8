// Package store defines the storage interfaces of the system: graphs, device
// key-values and overlay frames.
//
// The package focuses on:
//   - A unified interface per concern (IGraphStore, IDeviceStore, IOverlayStore)
//   - Interchangeable implementations: local in-memory stores (lstore) and RPC
//     clients (rpc/client) that forward every call to a remote server
//
// Key Components:
//
//   - IGraphStore: Processing graphs keyed by their id, plus the parameter
//     update operation that changes filter parameters of a stored graph.
//
//   - IDeviceStore: Typed key-values of a device. Every write is checked
//     against the range of the entry.
//
//   - IOverlayStore: The latest overlay frame of a device.
//
// Ownership:
//
//	Implementations never share values with their callers. Graphs and frames
//	are kept in their encoded form and decoded on every read, so a caller may
//	modify a returned value freely.
package store
