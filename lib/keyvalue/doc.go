// Package keyvalue contains the typed configuration entries exposed by devices.
//
// A KeyValue is a polymorphic family with one variant per scalar value type.
// Each entry carries its current value together with the allowed minimum and
// maximum, a default and a precision hint that tells a user interface how many
// decimals to show for floating point values.
package keyvalue
