package client

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/google/uuid"
)

// NewRPCGraphStore creates a graph store forwarding all calls to the graph
// interface with the given id. The transport is connected with config.
func NewRPCGraphStore(
	interfaceID uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (store.IGraphStore, error) {
	adapter, err := newClientAdapter(interfaceID, config, transport)
	if err != nil {
		return nil, err
	}
	return &rpcGraphStore{adapter}, nil
}

type rpcGraphStore struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the store package in interface.go)
// --------------------------------------------------------------------------

func (c *rpcGraphStore) PutGraph(g *graph.Graph) error {
	if g == nil {
		return codec.ErrNilValue
	}
	_, err := c.invoke(common.NewGraphPutRequest(g))
	return err
}

func (c *rpcGraphStore) GetGraph(id uuid.UUID) (*graph.Graph, bool, error) {
	resp, err := c.invoke(common.NewGraphGetRequest(id))
	if err != nil {
		return nil, false, err
	}
	return resp.Graph, resp.Ok, nil
}

func (c *rpcGraphStore) ListGraphs() ([]uuid.UUID, error) {
	resp, err := c.invoke(common.NewGraphListRequest())
	if err != nil {
		return nil, err
	}
	return resp.IDs, nil
}

func (c *rpcGraphStore) DeleteGraph(id uuid.UUID) error {
	_, err := c.invoke(common.NewGraphDeleteRequest(id))
	return err
}

func (c *rpcGraphStore) SetParameters(graphID uuid.UUID, containers []graph.FilterParametersContainer) error {
	_, err := c.invoke(common.NewGraphSetParametersRequest(graphID, containers))
	return err
}
