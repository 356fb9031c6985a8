package common

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// InterfaceType names the store served by an interface of the server.
type InterfaceType string

const (
	InterfaceGraph   InterfaceType = "graph"
	InterfaceDevice  InterfaceType = "device"
	InterfaceOverlay InterfaceType = "overlay"
)

// ServerInterface binds an interface id used in the transport frames to a store.
type ServerInterface struct {
	// ID of the interface
	ID uint64
	// Type of the store served under the id
	Type InterfaceType
}

// SocketConf holds socket options shared by all stream transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific socket options.
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ServerTransportConfig configures the server side transport.
type ServerTransportConfig struct {
	Endpoint       string
	WorkersPerConn int
	// BufferSize is the size of the pooled receive buffers
	BufferSize int
	// MaxMessageSize limits the size of a single frame, 0 means DefaultMaxMessageSize
	MaxMessageSize int
	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters of a server.
type ServerConfig struct {
	Interfaces    []ServerInterface
	TimeoutSecond int64
	Transport     ServerTransportConfig

	// MetricsEndpoint serves the prometheus metrics if not empty
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// DefaultMaxMessageSize is used when no message size limit is configured.
const DefaultMaxMessageSize = 64 << 20

// MaxFrameSize returns the effective frame size limit.
func (c *ServerTransportConfig) MaxFrameSize() int {
	if c.MaxMessageSize <= 0 {
		return DefaultMaxMessageSize
	}
	return c.MaxMessageSize
}

// ParseInterfaces parses a list like "1=graph,2=device,3=overlay".
func ParseInterfaces(s string) ([]ServerInterface, error) {
	var out []ServerInterface
	seen := make(map[uint64]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idStr, typ, ok := strings.Cut(part, "=")
		if !ok {
			return nil, errors.Newf("invalid interface %q, expected <id>=<type>", part)
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid interface id %q", idStr)
		}
		t := InterfaceType(strings.TrimSpace(typ))
		switch t {
		case InterfaceGraph, InterfaceDevice, InterfaceOverlay:
		default:
			return nil, errors.Newf("invalid interface type %q, must be one of graph, device, overlay", typ)
		}
		if seen[id] {
			return nil, errors.Newf("duplicate interface id %d", id)
		}
		seen[id] = true
		out = append(out, ServerInterface{ID: id, Type: t})
	}
	if len(out) == 0 {
		return nil, errors.New("no interfaces configured")
	}
	return out, nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Workers Per Conn", strconv.Itoa(c.Transport.WorkersPerConn))
	addField("Max Message Size", fmt.Sprintf("%d bytes", c.Transport.MaxFrameSize()))
	if c.MetricsEndpoint != "" {
		addField("Metrics", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Interfaces, sorted for consistent output
	addSection("Interfaces")
	interfaces := slices.Clone(c.Interfaces)
	slices.SortFunc(interfaces, func(a, b ServerInterface) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, i := range interfaces {
		addField(strconv.FormatUint(i.ID, 10), string(i.Type))
	}
	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConfig configures the client side transport.
type ClientTransportConfig struct {
	Endpoints              []string
	RetryCount             int
	ConnectionsPerEndpoint int
	MaxMessageSize         int
	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters of a client.
type ClientConfig struct {
	TimeoutSecond int
	Transport     ClientTransportConfig
}

// MaxFrameSize returns the effective frame size limit.
func (c *ClientTransportConfig) MaxFrameSize() int {
	if c.MaxMessageSize <= 0 {
		return DefaultMaxMessageSize
	}
	return c.MaxMessageSize
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Transport.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
