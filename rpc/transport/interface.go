package transport

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/IEcheandia/scanmaster-sub023/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the interface id and the received buffer and returns the finalized
// response buffer. The request buffer is only valid during the call.
type ServerHandleFunc func(interfaceID uint64, req *wire.ByteBuffer) (resp *wire.ByteBuffer)

// IRPCServerTransport is the interface for the RPC transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and blocks until Close is called
	Listen(config common.ServerConfig) error
	// Close stops accepting requests. Listen returns nil afterwards.
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a finalized request to the interface and returns the received response
	Send(interfaceID uint64, req *wire.ByteBuffer) (resp *wire.ByteBuffer, err error)
	// Close closes the transport connection
	Close() error
}
