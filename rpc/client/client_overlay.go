package client

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/store"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
)

// NewRPCOverlayStore creates an overlay store forwarding all calls to the
// overlay interface with the given id. The transport is connected with config.
func NewRPCOverlayStore(
	interfaceID uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (store.IOverlayStore, error) {
	adapter, err := newClientAdapter(interfaceID, config, transport)
	if err != nil {
		return nil, err
	}
	return &rpcOverlayStore{adapter}, nil
}

type rpcOverlayStore struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the store package in interface.go)
// --------------------------------------------------------------------------

func (c *rpcOverlayStore) PublishOverlay(f *overlay.Frame) error {
	if f == nil {
		return codec.ErrNilValue
	}
	_, err := c.invoke(common.NewOverlayPublishRequest(f))
	return err
}

func (c *rpcOverlayStore) LatestOverlay() (*overlay.Frame, bool, error) {
	resp, err := c.invoke(common.NewOverlayLatestRequest())
	if err != nil {
		return nil, false, err
	}
	return resp.Frame, resp.Ok, nil
}
