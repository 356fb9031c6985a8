package common

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrUnknownMessageKind is returned for a sequence byte that names no message kind.
var ErrUnknownMessageKind = errors.New("rpc: unknown message kind")

// --------------------------------------------------------------------------
// Message Kind Definition
// --------------------------------------------------------------------------

// MessageKind selects the task of a message. It is stored in the one byte
// sequence field of the buffer header, so there can be at most 256 kinds.
type MessageKind uint8

const (
	// General message kinds

	KindUnknown MessageKind = iota
	KindSuccess             // Indicates a successful operation without a body
	KindError               // Indicates an error occurred

	// IGraphStore operations

	KindGraphPut           // Store a graph
	KindGraphGet           // Get a graph by id
	KindGraphList          // List all graph ids
	KindGraphDelete        // Delete a graph
	KindGraphSetParameters // Update filter parameters of a graph

	// IDeviceStore operations

	KindKVSet  // Set a key-value
	KindKVGet  // Get a key-value by key
	KindKVList // List all key-values

	// IOverlayStore operations

	KindOverlayPublish // Publish an overlay frame
	KindOverlayLatest  // Get the latest overlay frame

	kindCount
)

// Valid reports whether k is a known kind.
func (k MessageKind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// String returns the string representation of a MessageKind.
func (k MessageKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindGraphPut:
		return "graph.put"
	case KindGraphGet:
		return "graph.get"
	case KindGraphList:
		return "graph.list"
	case KindGraphDelete:
		return "graph.delete"
	case KindGraphSetParameters:
		return "graph.setParameters"
	case KindKVSet:
		return "kv.set"
	case KindKVGet:
		return "kv.get"
	case KindKVList:
		return "kv.list"
	case KindOverlayPublish:
		return "overlay.publish"
	case KindOverlayLatest:
		return "overlay.latest"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// --------------------------------------------------------------------------
// Remote Errors
// --------------------------------------------------------------------------

// RemoteError is an error reported by the server in a response.
type RemoteError struct {
	Kind MessageKind
	Msg  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Kind, e.Msg)
}
