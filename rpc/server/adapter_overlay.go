package server

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
)

// NewOverlayServerAdapter creates an adapter translating requests to store.IOverlayStore calls.
func NewOverlayServerAdapter(s store.IOverlayStore) IRPCServerAdapter {
	return &overlayServerAdapterImpl{store: s}
}

type overlayServerAdapterImpl struct {
	store store.IOverlayStore
}

func (adapter *overlayServerAdapterImpl) Type() common.InterfaceType { return common.InterfaceOverlay }

func (adapter *overlayServerAdapterImpl) Handle(req *common.Message) *common.Message {
	if adapter.store == nil {
		return common.NewErrorResponse("handler: store is nil")
	}

	switch req.Kind {
	case common.KindOverlayPublish:
		if req.Frame == nil {
			return common.NewSuccessResponse(codec.ErrNilValue)
		}
		return common.NewSuccessResponse(adapter.store.PublishOverlay(req.Frame))
	case common.KindOverlayLatest:
		f, ok, err := adapter.store.LatestOverlay()
		return common.NewOverlayLatestResponse(f, ok, err)
	default:
		return common.NewErrorResponse(fmt.Sprintf("overlay adapter: unsupported message kind %s", req.Kind))
	}
}
