package graph

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/google/uuid"
)

// PipeKind selects how an out pipe delivers data to its receivers.
type PipeKind int32

const (
	PipeSynchronous PipeKind = iota
	PipeAsynchronous
)

// String returns the string representation of a PipeKind.
func (k PipeKind) String() string {
	switch k {
	case PipeSynchronous:
		return "sync"
	case PipeAsynchronous:
		return "async"
	default:
		return "unknown"
	}
}

var pipeKind = codec.Integer[PipeKind]()

// InPipe connects a filter input to the out pipe Name of filter Sender.
type InPipe struct {
	Sender uuid.UUID
	Name   string
	Group  int32
	Tag    string
}

func (p *InPipe) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.UUID, p.Sender)
	codec.Put(w, codec.String, p.Name)
	codec.Put(w, codec.Int32, p.Group)
	codec.Put(w, codec.String, p.Tag)
	return w.Err()
}

func (p *InPipe) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.UUID, &p.Sender)
	codec.Get(r, codec.String, &p.Name)
	codec.Get(r, codec.Int32, &p.Group)
	codec.Get(r, codec.String, &p.Tag)
	return r.Err()
}

// OutPipe is a named output of a filter.
type OutPipe struct {
	Name        string
	ContentType string
	Kind        PipeKind
	Tag         string
}

func (p *OutPipe) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.String, p.Name)
	codec.Put(w, codec.String, p.ContentType)
	codec.Put(w, pipeKind, p.Kind)
	codec.Put(w, codec.String, p.Tag)
	return w.Err()
}

func (p *OutPipe) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.String, &p.Name)
	codec.Get(r, codec.String, &p.ContentType)
	codec.Get(r, pipeKind, &p.Kind)
	codec.Get(r, codec.String, &p.Tag)
	return r.Err()
}
