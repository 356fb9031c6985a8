package server

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
)

// NewGraphServerAdapter creates an adapter translating requests to store.IGraphStore calls.
func NewGraphServerAdapter(s store.IGraphStore) IRPCServerAdapter {
	return &graphServerAdapterImpl{store: s}
}

type graphServerAdapterImpl struct {
	store store.IGraphStore
}

func (adapter *graphServerAdapterImpl) Type() common.InterfaceType { return common.InterfaceGraph }

func (adapter *graphServerAdapterImpl) Handle(req *common.Message) *common.Message {
	if adapter.store == nil {
		return common.NewErrorResponse("handler: store is nil")
	}

	switch req.Kind {
	case common.KindGraphPut:
		if req.Graph == nil {
			return common.NewSuccessResponse(codec.ErrNilValue)
		}
		return common.NewSuccessResponse(adapter.store.PutGraph(req.Graph))
	case common.KindGraphGet:
		g, ok, err := adapter.store.GetGraph(req.ID)
		return common.NewGraphGetResponse(g, ok, err)
	case common.KindGraphList:
		ids, err := adapter.store.ListGraphs()
		return common.NewGraphListResponse(ids, err)
	case common.KindGraphDelete:
		return common.NewSuccessResponse(adapter.store.DeleteGraph(req.ID))
	case common.KindGraphSetParameters:
		return common.NewSuccessResponse(adapter.store.SetParameters(req.ID, req.Containers))
	default:
		return common.NewErrorResponse(fmt.Sprintf("graph adapter: unsupported message kind %s", req.Kind))
	}
}
