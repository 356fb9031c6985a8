// Package graph contains the serializable model of a processing graph.
//
// A Graph references the Components (shared libraries) that provide filter
// implementations and the Filters instantiated from them. Filters are wired
// through InPipes, which name the sending filter, and OutPipes, which declare
// the produced content. Every filter carries a list of polymorphic
// FilterParameters, one concrete variant per scalar value type.
//
// The model is a plain data container, topology is not validated during
// serialization. Builders may use Graph.DuplicateFilterIDs and
// Graph.UnknownSenders to check what they produced.
//
// Wire layout (all lists are count-prefixed sequences):
//
//	Graph           = ID | PathComponents | []Component | []Filter
//	Component       = ID | Filename
//	Filter          = ID | Name | Component | []InPipe | []OutPipe | []FilterParameter
//	InPipe          = Sender | Name | Group | Tag
//	OutPipe         = Name | ContentType | Kind | Tag
//	FilterParameter = TypeTag | Value | Type | ParameterID | Name | InstanceID | VariantTypeID
package graph
