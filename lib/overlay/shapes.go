package overlay

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

var (
	linesStrategy  = codec.SliceOf(codec.String, 1024)
	valuesStrategy = codec.SliceOf(codec.Int32, codec.Unbounded)
)

// --------------------------------------------------------------------------
// Point
// --------------------------------------------------------------------------

// Point marks a single pixel.
type Point struct {
	X, Y  int32
	Color Color
}

func (s *Point) TypeTag() codec.TypeTag { return codec.TypeTag(KindPoint) }
func (s *Point) Kind() Kind             { return KindPoint }
func (s *Point) Bounds() Rect           { return Rect{X: s.X, Y: s.Y, Width: 1, Height: 1} }

func (s *Point) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X, s.Y)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *Point) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X, &s.Y)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

// --------------------------------------------------------------------------
// Line
// --------------------------------------------------------------------------

// Line connects two points.
type Line struct {
	X1, Y1, X2, Y2 int32
	Color          Color
}

func (s *Line) TypeTag() codec.TypeTag { return codec.TypeTag(KindLine) }
func (s *Line) Kind() Kind             { return KindLine }
func (s *Line) Bounds() Rect {
	return Rect{X: min(s.X1, s.X2), Y: min(s.Y1, s.Y2), Width: abs(s.X2-s.X1) + 1, Height: abs(s.Y2-s.Y1) + 1}
}

func (s *Line) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X1, s.Y1)
	putPosition(w, s.X2, s.Y2)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *Line) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X1, &s.Y1)
	getPosition(r, &s.X2, &s.Y2)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

// --------------------------------------------------------------------------
// Cross
// --------------------------------------------------------------------------

// Cross is an upright cross centered on a point.
type Cross struct {
	X, Y   int32
	Radius int32
	Color  Color
}

func (s *Cross) TypeTag() codec.TypeTag { return codec.TypeTag(KindCross) }
func (s *Cross) Kind() Kind             { return KindCross }
func (s *Cross) Bounds() Rect {
	return Rect{X: s.X - s.Radius, Y: s.Y - s.Radius, Width: 2*s.Radius + 1, Height: 2*s.Radius + 1}
}

func (s *Cross) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X, s.Y)
	codec.Put(w, codec.Int32, s.Radius)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *Cross) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X, &s.Y)
	codec.Get(r, codec.Int32, &s.Radius)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

// --------------------------------------------------------------------------
// Rectangle
// --------------------------------------------------------------------------

// Rectangle is an outlined or filled rectangle.
type Rectangle struct {
	Rect   Rect
	Filled bool
	Color  Color
}

func (s *Rectangle) TypeTag() codec.TypeTag { return codec.TypeTag(KindRectangle) }
func (s *Rectangle) Kind() Kind             { return KindRectangle }
func (s *Rectangle) Bounds() Rect           { return s.Rect }

func (s *Rectangle) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.PutNested(w, &s.Rect)
	codec.Put(w, codec.Bool, s.Filled)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *Rectangle) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.GetNested(r, &s.Rect)
	codec.Get(r, codec.Bool, &s.Filled)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

// --------------------------------------------------------------------------
// Text
// --------------------------------------------------------------------------

// Text is a string drawn into a box.
type Text struct {
	Text  string
	Font  Font
	Box   Rect
	Color Color
	// Title marks the text as a heading of an info box.
	Title bool
}

func (s *Text) TypeTag() codec.TypeTag { return codec.TypeTag(KindText) }
func (s *Text) Kind() Kind             { return KindText }
func (s *Text) Bounds() Rect           { return s.Box }

func (s *Text) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.String, s.Text)
	codec.PutNested(w, &s.Font)
	codec.PutNested(w, &s.Box)
	codec.PutNested(w, &s.Color)
	codec.Put(w, codec.Bool, s.Title)
	return w.Err()
}

func (s *Text) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.String, &s.Text)
	codec.GetNested(r, &s.Font)
	codec.GetNested(r, &s.Box)
	codec.GetNested(r, &s.Color)
	codec.Get(r, codec.Bool, &s.Title)
	return r.Err()
}

// --------------------------------------------------------------------------
// Circle
// --------------------------------------------------------------------------

// Circle is an outlined circle.
type Circle struct {
	X, Y   int32
	Radius int32
	Color  Color
}

func (s *Circle) TypeTag() codec.TypeTag { return codec.TypeTag(KindCircle) }
func (s *Circle) Kind() Kind             { return KindCircle }
func (s *Circle) Bounds() Rect {
	return Rect{X: s.X - s.Radius, Y: s.Y - s.Radius, Width: 2*s.Radius + 1, Height: 2*s.Radius + 1}
}

func (s *Circle) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X, s.Y)
	codec.Put(w, codec.Int32, s.Radius)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *Circle) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X, &s.Y)
	codec.Get(r, codec.Int32, &s.Radius)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

// --------------------------------------------------------------------------
// InfoBox
// --------------------------------------------------------------------------

// InfoBox is a clickable region that carries descriptive lines, e.g. the
// result of one inspection step.
type InfoBox struct {
	BoxType int32
	ID      int32
	Box     Rect
	Lines   []string
}

func (s *InfoBox) TypeTag() codec.TypeTag { return codec.TypeTag(KindInfoBox) }
func (s *InfoBox) Kind() Kind             { return KindInfoBox }
func (s *InfoBox) Bounds() Rect           { return s.Box }

func (s *InfoBox) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.Int32, s.BoxType)
	codec.Put(w, codec.Int32, s.ID)
	codec.PutNested(w, &s.Box)
	codec.Put(w, linesStrategy, s.Lines)
	return w.Err()
}

func (s *InfoBox) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.Int32, &s.BoxType)
	codec.Get(r, codec.Int32, &s.ID)
	codec.GetNested(r, &s.Box)
	codec.Get(r, linesStrategy, &s.Lines)
	return r.Err()
}

// --------------------------------------------------------------------------
// Image
// --------------------------------------------------------------------------

// Image is a gray value bitmap placed at a position.
type Image struct {
	X, Y   int32
	Width  uint32
	Height uint32
	Pixels []byte
	Title  string
}

func (s *Image) TypeTag() codec.TypeTag { return codec.TypeTag(KindImage) }
func (s *Image) Kind() Kind             { return KindImage }
func (s *Image) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: int32(s.Width), Height: int32(s.Height)}
}

func (s *Image) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X, s.Y)
	codec.Put(w, codec.Uint32, s.Width)
	codec.Put(w, codec.Uint32, s.Height)
	codec.Put(w, codec.Bytes, s.Pixels)
	codec.Put(w, codec.String, s.Title)
	return w.Err()
}

func (s *Image) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X, &s.Y)
	codec.Get(r, codec.Uint32, &s.Width)
	codec.Get(r, codec.Uint32, &s.Height)
	codec.Get(r, codec.Bytes, &s.Pixels)
	codec.Get(r, codec.String, &s.Title)
	return r.Err()
}

// --------------------------------------------------------------------------
// PointList
// --------------------------------------------------------------------------

// PointList is a curve of y values at consecutive x positions starting at X, Y.
type PointList struct {
	X, Y   int32
	Values []int32
	Color  Color
}

func (s *PointList) TypeTag() codec.TypeTag { return codec.TypeTag(KindPointList) }
func (s *PointList) Kind() Kind             { return KindPointList }
func (s *PointList) Bounds() Rect {
	if len(s.Values) == 0 {
		return Rect{X: s.X, Y: s.Y}
	}
	lo, hi := s.Values[0], s.Values[0]
	for _, v := range s.Values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return Rect{X: s.X, Y: s.Y + lo, Width: int32(len(s.Values)), Height: hi - lo + 1}
}

func (s *PointList) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	putPosition(w, s.X, s.Y)
	codec.Put(w, valuesStrategy, s.Values)
	codec.PutNested(w, &s.Color)
	return w.Err()
}

func (s *PointList) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	getPosition(r, &s.X, &s.Y)
	codec.Get(r, valuesStrategy, &s.Values)
	codec.GetNested(r, &s.Color)
	return r.Err()
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
