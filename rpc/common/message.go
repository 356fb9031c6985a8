package common

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/graph"
	"github.com/IEcheandia/scanmaster-sub023/lib/keyvalue"
	"github.com/IEcheandia/scanmaster-sub023/lib/overlay"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// The kind is carried in the sequence byte of the buffer header, the payload
// starts with the status fields followed by the fields of the kind.
type Message struct {
	// Kind of message, stored in the header
	Kind MessageKind

	// Response only fields
	Ok  bool   // Used for: GraphGet, KVGet, OverlayLatest responses (found)
	Err string // Empty if no error, otherwise contains the error message

	// General fields
	ID         uuid.UUID                         // Used for: GraphPut, GraphGet, GraphDelete, GraphSetParameters
	Key        string                            // Used for: KVSet, KVGet
	Graph      *graph.Graph                      // Used for: GraphPut (request), GraphGet (response)
	IDs        []uuid.UUID                       // Used for: GraphList (response)
	Containers []graph.FilterParametersContainer // Used for: GraphSetParameters (request)
	KeyValue   keyvalue.KeyValue                 // Used for: KVSet (request), KVGet (response)
	KeyValues  []keyvalue.KeyValue               // Used for: KVList (response)
	Frame      *overlay.Frame                    // Used for: OverlayPublish (request), OverlayLatest (response)
}

var (
	optionalGraph = codec.Optional[graph.Graph]()
	optionalFrame = codec.Optional[overlay.Frame]()
	idList        = codec.SliceOf(codec.UUID, codec.Unbounded)
)

func (m *Message) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.Bool, m.Ok)
	codec.Put(w, codec.String, m.Err)

	switch m.Kind {
	case KindGraphPut, KindGraphGet:
		codec.Put(w, codec.UUID, m.ID)
		codec.Put(w, optionalGraph, m.Graph)
	case KindGraphDelete:
		codec.Put(w, codec.UUID, m.ID)
	case KindGraphList:
		codec.Put(w, idList, m.IDs)
	case KindGraphSetParameters:
		codec.Put(w, codec.UUID, m.ID)
		codec.Put(w, graph.ContainerListStrategy, m.Containers)
	case KindKVSet, KindKVGet:
		codec.Put(w, codec.String, m.Key)
		codec.Put(w, keyvalue.Strategy, m.KeyValue)
	case KindKVList:
		codec.Put(w, keyvalue.ListStrategy, m.KeyValues)
	case KindOverlayPublish, KindOverlayLatest:
		codec.Put(w, optionalFrame, m.Frame)
	case KindSuccess, KindError:
		// status only
	default:
		return errors.Wrapf(ErrUnknownMessageKind, "serialize %s", m.Kind)
	}
	return w.Err()
}

func (m *Message) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.Bool, &m.Ok)
	codec.Get(r, codec.String, &m.Err)

	switch m.Kind {
	case KindGraphPut, KindGraphGet:
		codec.Get(r, codec.UUID, &m.ID)
		codec.Get(r, optionalGraph, &m.Graph)
	case KindGraphDelete:
		codec.Get(r, codec.UUID, &m.ID)
	case KindGraphList:
		codec.Get(r, idList, &m.IDs)
	case KindGraphSetParameters:
		codec.Get(r, codec.UUID, &m.ID)
		codec.Get(r, graph.ContainerListStrategy, &m.Containers)
	case KindKVSet, KindKVGet:
		codec.Get(r, codec.String, &m.Key)
		codec.Get(r, keyvalue.Strategy, &m.KeyValue)
	case KindKVList:
		codec.Get(r, keyvalue.ListStrategy, &m.KeyValues)
	case KindOverlayPublish, KindOverlayLatest:
		codec.Get(r, optionalFrame, &m.Frame)
	case KindSuccess, KindError:
	default:
		return errors.Wrapf(ErrUnknownMessageKind, "deserialize %s", m.Kind)
	}
	return r.Err()
}

// Failure returns the error carried by a response, or nil.
func (m *Message) Failure() error {
	if m.Kind == KindError || m.Err != "" {
		return &RemoteError{Kind: m.Kind, Msg: m.Err}
	}
	return nil
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// EncodeMessage encodes m into a new growable buffer. The message kind is
// stored as the sequence byte of the header.
func EncodeMessage(m *Message) (*wire.ByteBuffer, error) {
	buf := wire.NewGrowable(256)
	if err := codec.Encode(buf, uint8(m.Kind), m); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeMessage verifies buf and decodes the message selected by its sequence byte.
func DecodeMessage(buf *wire.ByteBuffer) (*Message, error) {
	kind := MessageKind(buf.Sequence())
	if !kind.Valid() {
		return nil, errors.Wrapf(ErrUnknownMessageKind, "kind %d", uint8(kind))
	}
	if err := buf.VerifyChecksum(); err != nil {
		return nil, err
	}
	if err := buf.Rewind(); err != nil {
		return nil, err
	}
	m := &Message{Kind: kind}
	if err := m.Deserialize(buf); err != nil {
		return nil, errors.Wrapf(err, "decode %s message", kind)
	}
	return m, nil
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewGraphPutRequest creates a new GraphPut request
func NewGraphPutRequest(g *graph.Graph) *Message {
	return &Message{Kind: KindGraphPut, ID: g.ID, Graph: g}
}

// NewGraphGetRequest creates a new GraphGet request
func NewGraphGetRequest(id uuid.UUID) *Message {
	return &Message{Kind: KindGraphGet, ID: id}
}

// NewGraphGetResponse creates a new GraphGet response
func NewGraphGetResponse(g *graph.Graph, ok bool, err error) *Message {
	msg := &Message{Kind: KindGraphGet, Ok: ok, Graph: g}
	if g != nil {
		msg.ID = g.ID
	}
	return withErr(msg, err)
}

// NewGraphListRequest creates a new GraphList request
func NewGraphListRequest() *Message {
	return &Message{Kind: KindGraphList}
}

// NewGraphListResponse creates a new GraphList response
func NewGraphListResponse(ids []uuid.UUID, err error) *Message {
	return withErr(&Message{Kind: KindGraphList, IDs: ids}, err)
}

// NewGraphDeleteRequest creates a new GraphDelete request
func NewGraphDeleteRequest(id uuid.UUID) *Message {
	return &Message{Kind: KindGraphDelete, ID: id}
}

// NewGraphSetParametersRequest creates a new GraphSetParameters request
func NewGraphSetParametersRequest(graphID uuid.UUID, containers []graph.FilterParametersContainer) *Message {
	return &Message{Kind: KindGraphSetParameters, ID: graphID, Containers: containers}
}

// NewKVSetRequest creates a new KVSet request
func NewKVSetRequest(kv keyvalue.KeyValue) *Message {
	return &Message{Kind: KindKVSet, Key: kv.Info().Key, KeyValue: kv}
}

// NewKVGetRequest creates a new KVGet request
func NewKVGetRequest(key string) *Message {
	return &Message{Kind: KindKVGet, Key: key}
}

// NewKVGetResponse creates a new KVGet response
func NewKVGetResponse(kv keyvalue.KeyValue, ok bool, err error) *Message {
	msg := &Message{Kind: KindKVGet, Ok: ok, KeyValue: kv}
	if kv != nil {
		msg.Key = kv.Info().Key
	}
	return withErr(msg, err)
}

// NewKVListRequest creates a new KVList request
func NewKVListRequest() *Message {
	return &Message{Kind: KindKVList}
}

// NewKVListResponse creates a new KVList response
func NewKVListResponse(kvs []keyvalue.KeyValue, err error) *Message {
	return withErr(&Message{Kind: KindKVList, KeyValues: kvs}, err)
}

// NewOverlayPublishRequest creates a new OverlayPublish request
func NewOverlayPublishRequest(f *overlay.Frame) *Message {
	return &Message{Kind: KindOverlayPublish, Frame: f}
}

// NewOverlayLatestRequest creates a new OverlayLatest request
func NewOverlayLatestRequest() *Message {
	return &Message{Kind: KindOverlayLatest}
}

// NewOverlayLatestResponse creates a new OverlayLatest response
func NewOverlayLatestResponse(f *overlay.Frame, ok bool, err error) *Message {
	return withErr(&Message{Kind: KindOverlayLatest, Ok: ok, Frame: f}, err)
}

// NewSuccessResponse creates a response without a body. A non-nil error turns
// it into an error response.
func NewSuccessResponse(err error) *Message {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return &Message{Kind: KindSuccess, Ok: true}
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{Kind: KindError, Err: err}
}

func withErr(msg *Message, err error) *Message {
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}
