package graph

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	componentListStrategy = codec.SliceOf(codec.Nested[Component](), MaxElements)
	filterListStrategy    = codec.SliceOf(codec.Nested[Filter](), MaxElements)

	// ContainerListStrategy encodes parameter updates for several filters.
	ContainerListStrategy = codec.SliceOf(codec.Nested[FilterParametersContainer](), MaxElements)
)

// Graph is a complete processing graph.
type Graph struct {
	ID             uuid.UUID
	PathComponents string
	Components     []Component
	Filters        []Filter
}

func (g *Graph) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.UUID, g.ID)
	codec.Put(w, codec.String, g.PathComponents)
	codec.Put(w, componentListStrategy, g.Components)
	codec.Put(w, filterListStrategy, g.Filters)
	return w.Err()
}

func (g *Graph) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.UUID, &g.ID)
	codec.Get(r, codec.String, &g.PathComponents)
	codec.Get(r, componentListStrategy, &g.Components)
	codec.Get(r, filterListStrategy, &g.Filters)
	return r.Err()
}

// Filter returns the filter with the given id.
func (g *Graph) Filter(id uuid.UUID) (*Filter, bool) {
	for i := range g.Filters {
		if g.Filters[i].ID == id {
			return &g.Filters[i], true
		}
	}
	return nil, false
}

// Component returns the component with the given id.
func (g *Graph) Component(id uuid.UUID) (*Component, bool) {
	for i := range g.Components {
		if g.Components[i].ID == id {
			return &g.Components[i], true
		}
	}
	return nil, false
}

// DuplicateFilterIDs returns every filter id that occurs more than once.
func (g *Graph) DuplicateFilterIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]int, len(g.Filters))
	var dups []uuid.UUID
	for _, f := range g.Filters {
		seen[f.ID]++
		if seen[f.ID] == 2 {
			dups = append(dups, f.ID)
		}
	}
	return dups
}

// UnknownSenders returns the in pipes whose sender is not a filter of the graph.
func (g *Graph) UnknownSenders() []InPipe {
	var unknown []InPipe
	for _, f := range g.Filters {
		for _, p := range f.InPipes {
			if _, ok := g.Filter(p.Sender); !ok {
				unknown = append(unknown, p)
			}
		}
	}
	return unknown
}

// ApplyParameters applies the parameter updates of all containers. All
// containers are checked before any value is changed.
func (g *Graph) ApplyParameters(containers []FilterParametersContainer) error {
	targets := make([][]FilterParameter, len(containers))
	for i, c := range containers {
		f, ok := g.Filter(c.FilterID)
		if !ok {
			return errors.Wrapf(ErrFilterNotFound, "filter %s", c.FilterID)
		}
		resolved, err := f.resolve(c.Parameters)
		if err != nil {
			return err
		}
		targets[i] = resolved
	}
	for i, c := range containers {
		if err := copyValues(targets[i], c.Parameters); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy made by a serialization round trip.
func (g *Graph) Clone() (*Graph, error) {
	raw, err := codec.Marshal(0, g)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal[Graph](raw)
}
