package client

import (
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
	"github.com/IEcheandia/scanmaster-sub023/rpc/transport"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")

	// ErrUnexpectedResponse is returned when the kind of a response does not match the request.
	ErrUnexpectedResponse = errors.New("rpc: unexpected response")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
// Used by the store clients with composition pattern
type rpcClientAdapter struct {
	interfaceID uint64
	config      common.ClientConfig
	transport   transport.IRPCClientTransport
}

// newClientAdapter connects the transport and returns the shared client state.
func newClientAdapter(interfaceID uint64, config common.ClientConfig, t transport.IRPCClientTransport) (rpcClientAdapter, error) {
	if err := t.Connect(config); err != nil {
		return rpcClientAdapter{}, err
	}
	return rpcClientAdapter{
		interfaceID: interfaceID,
		config:      config,
		transport:   t,
	}, nil
}

// invoke sends a request and returns the decoded response.
// It returns the remote error if the response carries one and checks that the
// kind of the response is the expected one. Requests without a response body
// are answered with KindSuccess.
func (a *rpcClientAdapter) invoke(req *common.Message) (*common.Message, error) {
	reqBuf, err := common.EncodeMessage(req)
	if err != nil {
		return nil, err
	}

	respBuf, err := a.transport.Send(a.interfaceID, reqBuf)
	if err != nil {
		return nil, err
	}

	resp, err := common.DecodeMessage(respBuf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s response", req.Kind)
	}

	if err := resp.Failure(); err != nil {
		return nil, err
	}

	if resp.Kind != req.Kind && resp.Kind != common.KindSuccess {
		return nil, errors.Wrapf(ErrUnexpectedResponse, "got %s, expected %s", resp.Kind, req.Kind)
	}
	Logger.Debugf("%s on interface %d: %d bytes sent, %d received", req.Kind, a.interfaceID, reqBuf.Len(), respBuf.Len())
	return resp, nil
}
