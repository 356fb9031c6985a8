package overlay

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

var (
	// ShapeListStrategy encodes a list of shapes, nil entries included.
	ShapeListStrategy = codec.SliceOf(ShapeStrategy, MaxShapes)
	layerListStrategy = codec.SliceOf(codec.Nested[Layer](), 256)
)

// Layer is a named group of shapes that can be shown or hidden together.
type Layer struct {
	Name   string
	Shapes []Shape
}

func (l *Layer) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.String, l.Name)
	codec.Put(w, ShapeListStrategy, l.Shapes)
	return w.Err()
}

func (l *Layer) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.String, &l.Name)
	codec.Get(r, ShapeListStrategy, &l.Shapes)
	return r.Err()
}

// Frame holds the overlay layers of one inspected image.
type Frame struct {
	ImageNumber uint32
	Layers      []Layer
}

func (f *Frame) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.Uint32, f.ImageNumber)
	codec.Put(w, layerListStrategy, f.Layers)
	return w.Err()
}

func (f *Frame) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.Uint32, &f.ImageNumber)
	codec.Get(r, layerListStrategy, &f.Layers)
	return r.Err()
}

// Layer returns the layer with the given name.
func (f *Frame) Layer(name string) (*Layer, bool) {
	for i := range f.Layers {
		if f.Layers[i].Name == name {
			return &f.Layers[i], true
		}
	}
	return nil, false
}

// ShapeCount returns the number of non-nil shapes over all layers.
func (f *Frame) ShapeCount() int {
	n := 0
	for _, l := range f.Layers {
		for _, s := range l.Shapes {
			if s != nil {
				n++
			}
		}
	}
	return n
}
