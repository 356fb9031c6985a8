// Package value defines the eight scalar value types shared by the polymorphic
// families of filter parameters and device key-values.
//
// The numeric value of a Type is used as the codec.TypeTag of the matching
// variant in both families, so a parameter holding an int and a key-value
// holding an int carry the same tag on the wire.
package value
