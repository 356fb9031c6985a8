package lstore

import (
	"bytes"
	"slices"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("store")

type graphStoreImpl struct {
	graphs *xsync.MapOf[uuid.UUID, []byte]
}

// NewLocalGraphStore creates an empty in-memory graph store.
func NewLocalGraphStore() store.IGraphStore {
	return &graphStoreImpl{
		graphs: xsync.NewMapOf[uuid.UUID, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *graphStoreImpl) PutGraph(g *graph.Graph) error {
	if g == nil {
		return errors.Wrap(codec.ErrNilValue, "put graph")
	}
	raw, err := codec.Marshal(0, g)
	if err != nil {
		return err
	}
	s.graphs.Store(g.ID, raw)
	Logger.Debugf("stored graph %s (%d bytes, %d filters)", g.ID, len(raw), len(g.Filters))
	return nil
}

func (s *graphStoreImpl) GetGraph(id uuid.UUID) (*graph.Graph, bool, error) {
	raw, ok := s.graphs.Load(id)
	if !ok {
		return nil, false, nil
	}
	g, err := codec.Unmarshal[graph.Graph](raw)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

func (s *graphStoreImpl) ListGraphs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, s.graphs.Size())
	s.graphs.Range(func(id uuid.UUID, _ []byte) bool {
		ids = append(ids, id)
		return true
	})
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids, nil
}

func (s *graphStoreImpl) DeleteGraph(id uuid.UUID) error {
	s.graphs.Delete(id)
	return nil
}

func (s *graphStoreImpl) SetParameters(graphID uuid.UUID, containers []graph.FilterParametersContainer) error {
	var err error
	// the update runs under the bucket lock of the entry, puts and deletes of
	// the same graph wait for it
	s.graphs.Compute(graphID, func(old []byte, loaded bool) ([]byte, bool) {
		if !loaded {
			err = errors.Wrapf(store.ErrGraphNotFound, "graph %s", graphID)
			return nil, true
		}
		var updated []byte
		if updated, err = applyParameters(old, containers); err != nil {
			return old, false
		}
		return updated, false
	})
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// applyParameters decodes raw, applies the updates and encodes the result.
func applyParameters(raw []byte, containers []graph.FilterParametersContainer) ([]byte, error) {
	g, err := codec.Unmarshal[graph.Graph](raw)
	if err != nil {
		return nil, err
	}
	if err := g.ApplyParameters(containers); err != nil {
		return nil, err
	}
	return codec.Marshal(0, g)
}
