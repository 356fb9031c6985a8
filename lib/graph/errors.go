package graph

import "github.com/cockroachdb/errors"

var (
	// ErrFilterNotFound is returned when a filter id is not part of the graph.
	ErrFilterNotFound = errors.New("graph: filter not found")
	// ErrParameterNotFound is returned when a parameter is not part of the filter.
	ErrParameterNotFound = errors.New("graph: parameter not found")
)
