package client

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
)

// NewRPCDeviceStore creates a device store forwarding all calls to the device
// interface with the given id. The transport is connected with config.
func NewRPCDeviceStore(
	interfaceID uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (store.IDeviceStore, error) {
	adapter, err := newClientAdapter(interfaceID, config, transport)
	if err != nil {
		return nil, err
	}
	return &rpcDeviceStore{adapter}, nil
}

type rpcDeviceStore struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the store package in interface.go)
// --------------------------------------------------------------------------

func (c *rpcDeviceStore) SetKeyValue(kv keyvalue.KeyValue) error {
	if kv == nil {
		return codec.ErrNilValue
	}
	_, err := c.invoke(common.NewKVSetRequest(kv))
	return err
}

func (c *rpcDeviceStore) GetKeyValue(key string) (keyvalue.KeyValue, bool, error) {
	resp, err := c.invoke(common.NewKVGetRequest(key))
	if err != nil {
		return nil, false, err
	}
	return resp.KeyValue, resp.Ok, nil
}

func (c *rpcDeviceStore) ListKeyValues() ([]keyvalue.KeyValue, error) {
	resp, err := c.invoke(common.NewKVListRequest())
	if err != nil {
		return nil, err
	}
	return resp.KeyValues, nil
}
