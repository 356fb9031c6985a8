package overlay

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
)

// Kind identifies a shape variant on the wire.
type Kind int32

const (
	KindPoint Kind = iota
	KindLine
	KindCross
	KindRectangle
	KindText
	KindCircle
	KindInfoBox
	KindImage
	KindPointList
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCross:
		return "cross"
	case KindRectangle:
		return "rectangle"
	case KindText:
		return "text"
	case KindCircle:
		return "circle"
	case KindInfoBox:
		return "infobox"
	case KindImage:
		return "image"
	case KindPointList:
		return "pointlist"
	default:
		return "unknown"
	}
}

// Shapes is the family of Shape variants. It is filled and sealed by
// RegisterShapes during bootstrap.
var Shapes = codec.NewFamily[Shape]("overlay-shape")

// ShapeStrategy encodes a single, possibly nil, shape.
var ShapeStrategy = codec.Poly(Shapes)

// MaxShapes bounds the shape list of a layer on decode.
const MaxShapes = 1 << 20

// Shape is a drawing primitive.
type Shape interface {
	codec.Polymorphic
	// Kind returns the variant of the shape.
	Kind() Kind
	// Bounds returns the bounding box in image coordinates.
	Bounds() Rect
}

// RegisterShapes registers the nine shape kinds in f.
func RegisterShapes(f *codec.Family[Shape]) error {
	factories := map[Kind]func() Shape{
		KindPoint:     func() Shape { return &Point{} },
		KindLine:      func() Shape { return &Line{} },
		KindCross:     func() Shape { return &Cross{} },
		KindRectangle: func() Shape { return &Rectangle{} },
		KindText:      func() Shape { return &Text{} },
		KindCircle:    func() Shape { return &Circle{} },
		KindInfoBox:   func() Shape { return &InfoBox{} },
		KindImage:     func() Shape { return &Image{} },
		KindPointList: func() Shape { return &PointList{} },
	}
	for kind := KindPoint; kind <= KindPointList; kind++ {
		if err := f.Register(codec.TypeTag(kind), codec.FactoryOf(factories[kind])); err != nil {
			return err
		}
	}
	return nil
}

func putPosition(w *codec.Writer, x, y int32) {
	codec.Put(w, codec.Int32, x)
	codec.Put(w, codec.Int32, y)
}

func getPosition(r *codec.Reader, x, y *int32) {
	codec.Get(r, codec.Int32, x)
	codec.Get(r, codec.Int32, y)
}
