package graph

import (
	"github.com/IEcheandia/scanmaster-sub023/lib/codec"
	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	inPipeListStrategy  = codec.SliceOf(codec.Nested[InPipe](), MaxElements)
	outPipeListStrategy = codec.SliceOf(codec.Nested[OutPipe](), MaxElements)
)

// Filter is one instance of a filter implementation inside a graph.
type Filter struct {
	ID         uuid.UUID
	Name       string
	Component  uuid.UUID
	InPipes    []InPipe
	OutPipes   []OutPipe
	Parameters []FilterParameter
}

func (f *Filter) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.UUID, f.ID)
	codec.Put(w, codec.String, f.Name)
	codec.Put(w, codec.UUID, f.Component)
	codec.Put(w, inPipeListStrategy, f.InPipes)
	codec.Put(w, outPipeListStrategy, f.OutPipes)
	codec.Put(w, parameterListStrategy, f.Parameters)
	return w.Err()
}

func (f *Filter) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.UUID, &f.ID)
	codec.Get(r, codec.String, &f.Name)
	codec.Get(r, codec.UUID, &f.Component)
	codec.Get(r, inPipeListStrategy, &f.InPipes)
	codec.Get(r, outPipeListStrategy, &f.OutPipes)
	codec.Get(r, parameterListStrategy, &f.Parameters)
	return r.Err()
}

// Parameter returns the parameter with the given id. If no parameter has that
// id, the first parameter with the given name is returned.
func (f *Filter) Parameter(id uuid.UUID, name string) (FilterParameter, bool) {
	var byName FilterParameter
	for _, p := range f.Parameters {
		if p == nil {
			continue
		}
		info := p.Info()
		if id != uuid.Nil && info.ParameterID == id {
			return p, true
		}
		if byName == nil && info.Name == name {
			byName = p
		}
	}
	return byName, byName != nil
}

// ApplyParameters copies the values of params onto the matching parameters of f.
// Nothing is changed if any parameter is unknown or of a different type.
func (f *Filter) ApplyParameters(params []FilterParameter) error {
	targets, err := f.resolve(params)
	if err != nil {
		return err
	}
	return copyValues(targets, params)
}

// resolve finds the target parameter of every update.
func (f *Filter) resolve(params []FilterParameter) ([]FilterParameter, error) {
	targets := make([]FilterParameter, len(params))
	for i, p := range params {
		if p == nil {
			return nil, errors.Wrapf(codec.ErrNilValue, "parameter %d for filter %s", i, f.ID)
		}
		info := p.Info()
		target, ok := f.Parameter(info.ParameterID, info.Name)
		if !ok {
			return nil, errors.Wrapf(ErrParameterNotFound, "filter %s, parameter %s (%s)", f.ID, info.Name, info.ParameterID)
		}
		if target.TypeTag() != p.TypeTag() {
			return nil, errors.Wrapf(codec.ErrTypeMismatch, "filter %s, parameter %s is %s, got %s",
				f.ID, info.Name, target.Info().Type, info.Type)
		}
		targets[i] = target
	}
	return targets, nil
}

func copyValues(targets, params []FilterParameter) error {
	for i, target := range targets {
		if err := target.CopyValueFrom(params[i]); err != nil {
			return err
		}
	}
	return nil
}

// FilterParametersContainer carries new parameter values for one filter.
type FilterParametersContainer struct {
	FilterID   uuid.UUID
	Parameters []FilterParameter
}

func (c *FilterParametersContainer) Serialize(buf *wire.ByteBuffer) error {
	w := codec.NewWriter(buf)
	codec.Put(w, codec.UUID, c.FilterID)
	codec.Put(w, parameterListStrategy, c.Parameters)
	return w.Err()
}

func (c *FilterParametersContainer) Deserialize(buf *wire.ByteBuffer) error {
	r := codec.NewReader(buf)
	codec.Get(r, codec.UUID, &c.FilterID)
	codec.Get(r, parameterListStrategy, &c.Parameters)
	return r.Err()
}
