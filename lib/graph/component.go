package graph

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/google/uuid"
)

// MaxElements bounds every list of the graph model on decode.
const MaxElements = 1 << 16

// Component is a loadable library that provides filter implementations.
type Component struct {
	ID       uuid.UUID
	Filename string
}

func (c *Component) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.UUID, c.ID)
	codec.Put(w, codec.String, c.Filename)
	return w.Err()
}

func (c *Component) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.UUID, &c.ID)
	codec.Get(r, codec.String, &c.Filename)
	return r.Err()
}
