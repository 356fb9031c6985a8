// Package lstore implements the store interfaces in memory on a single node.
//
// Implementation Details:
//
//   - Encoded Storage: Graphs and overlay frames are stored as finalized
//     ByteBuffer bytes in an xsync.MapOf. A write encodes the value once, a
//     read decodes a fresh copy. This removes any aliasing between callers
//     and keeps the memory footprint close to the wire size.
//
//   - Key-Values: Device entries are stored decoded, guarded by a mutex per
//     store, because every write has to check the range of the existing entry.
//
// Thread Safety:
//
//	All operations are thread-safe.
//
// Usage Example:
//
//	graphs := lstore.NewLocalGraphStore()
//	if err := graphs.PutGraph(g); err != nil {
//		return err
//	}
//	g2, ok, err := graphs.GetGraph(g.ID)
package lstore
