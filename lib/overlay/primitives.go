package overlay

import (
	"fmt"

	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Red    = Color{R: 255, A: 255}
	Green  = Color{G: 255, A: 255}
	Blue   = Color{B: 255, A: 255}
	Yellow = Color{R: 255, G: 255, A: 255}
	White  = Color{R: 255, G: 255, B: 255, A: 255}
)

func (c *Color) Serialize(buf *wire.ByteBuffer) error {
	return buf.WriteRaw([]byte{c.R, c.G, c.B, c.A})
}

func (c *Color) Deserialize(buf *wire.ByteBuffer) error {
	var rgba [4]byte
	if err := buf.ReadInto(rgba[:]); err != nil {
		return err
	}
	c.R, c.G, c.B, c.A = rgba[0], rgba[1], rgba[2], rgba[3]
	return nil
}

// String returns the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Rect is an axis aligned rectangle in image coordinates.
type Rect struct {
	X, Y, Width, Height int32
}

func (r *Rect) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.Int32, r.X)
	codec.Put(w, codec.Int32, r.Y)
	codec.Put(w, codec.Int32, r.Width)
	codec.Put(w, codec.Int32, r.Height)
	return w.Err()
}

func (r *Rect) Deserialize(buf *wire.ByteBuffer) error {
	rd := codec.NewReader(buf)
	codec.Get(rd, codec.Int32, &r.X)
	codec.Get(rd, codec.Int32, &r.Y)
	codec.Get(rd, codec.Int32, &r.Width)
	codec.Get(rd, codec.Int32, &r.Height)
	return rd.Err()
}

// Font describes how Text shapes are rendered.
type Font struct {
	Size   int32
	Bold   bool
	Italic bool
	Family string
}

func (f *Font) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.Int32, f.Size)
	codec.Put(w, codec.Bool, f.Bold)
	codec.Put(w, codec.Bool, f.Italic)
	codec.Put(w, codec.String, f.Family)
	return w.Err()
}

func (f *Font) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.Int32, &f.Size)
	codec.Get(r, codec.Bool, &f.Bold)
	codec.Get(r, codec.Bool, &f.Italic)
	codec.Get(r, codec.String, &f.Family)
	return r.Err()
}
