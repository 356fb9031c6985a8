package server

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
)

// NewDeviceServerAdapter creates an adapter translating requests to store.IDeviceStore calls.
func NewDeviceServerAdapter(s store.IDeviceStore) IRPCServerAdapter {
	return &deviceServerAdapterImpl{store: s}
}

type deviceServerAdapterImpl struct {
	store store.IDeviceStore
}

func (adapter *deviceServerAdapterImpl) Type() common.InterfaceType { return common.InterfaceDevice }

func (adapter *deviceServerAdapterImpl) Handle(req *common.Message) *common.Message {
	if adapter.store == nil {
		return common.NewErrorResponse("handler: store is nil")
	}

	switch req.Kind {
	case common.KindKVSet:
		if req.KeyValue == nil {
			return common.NewSuccessResponse(codec.ErrNilValue)
		}
		return common.NewSuccessResponse(adapter.store.SetKeyValue(req.KeyValue))
	case common.KindKVGet:
		kv, ok, err := adapter.store.GetKeyValue(req.Key)
		return common.NewKVGetResponse(kv, ok, err)
	case common.KindKVList:
		kvs, err := adapter.store.ListKeyValues()
		return common.NewKVListResponse(kvs, err)
	default:
		return common.NewErrorResponse(fmt.Sprintf("device adapter: unsupported message kind %s", req.Kind))
	}
}
