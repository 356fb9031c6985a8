package store

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// IGraphStore holds processing graphs.
// Values passed in and returned are never shared with the store: every Put
// stores a copy and every Get returns a fresh, exclusively owned graph.
type IGraphStore interface {
	// PutGraph inserts or replaces the graph with g.ID.
	PutGraph(g *graph.Graph) (err error)
	// GetGraph returns the graph with the given id. The boolean reports whether it was found.
	GetGraph(id uuid.UUID) (g *graph.Graph, loaded bool, err error)
	// ListGraphs returns the ids of all stored graphs in ascending order.
	ListGraphs() (ids []uuid.UUID, err error)
	// DeleteGraph removes a graph. Deleting an unknown graph is not an error.
	DeleteGraph(id uuid.UUID) (err error)
	// SetParameters applies parameter updates to the filters of a stored graph.
	// Either all updates are applied or none.
	SetParameters(graphID uuid.UUID, containers []graph.FilterParametersContainer) (err error)
}

// IDeviceStore holds the key-values of one device.
type IDeviceStore interface {
	// SetKeyValue updates the value of an existing key, or inserts kv if the key
	// is unknown. Values outside [Min, Max] and writes to read-only keys are rejected.
	SetKeyValue(kv keyvalue.KeyValue) (err error)
	// GetKeyValue returns the entry for key. The boolean reports whether it was found.
	GetKeyValue(key string) (kv keyvalue.KeyValue, loaded bool, err error)
	// ListKeyValues returns all entries sorted by key.
	ListKeyValues() (kvs []keyvalue.KeyValue, err error)
}

// IOverlayStore keeps the most recent overlay frame.
type IOverlayStore interface {
	// PublishOverlay replaces the current frame if f is not older than it.
	PublishOverlay(f *overlay.Frame) (err error)
	// LatestOverlay returns the current frame. The boolean reports whether one was published.
	LatestOverlay() (f *overlay.Frame, loaded bool, err error)
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrGraphNotFound is returned when an operation references an unknown graph.
	ErrGraphNotFound = errors.New("store: graph not found")
	// ErrStaleFrame is returned when an overlay frame is older than the current one.
	ErrStaleFrame = errors.New("store: stale overlay frame")
)
