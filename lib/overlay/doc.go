// Package overlay contains the drawing primitives that are sent alongside an
// inspected image to be painted on top of it.
//
// Shape is a polymorphic family with nine kinds: Point, Line, Cross, Rectangle,
// Text, Circle, InfoBox, Image and PointList. Shapes are grouped into named
// Layers, and the layers of one image form a Frame.
//
// Lists of shapes may contain nil entries, which are kept on the wire as a
// null tag and decode to nil again.
package overlay
