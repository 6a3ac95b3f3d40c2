// Package featuresource provides the road feature stream consumed by the graph import.
// A Source is opened once per pass, iterated and closed again.
package featuresource

import (
	"context"

	"github.com/paulmach/orb"
)

// Feature. one road record: a line geometry, a stable way id and named attributes.
type Feature interface {
	GetID() (int64, error)
	GetGeometry() orb.Geometry
	GetAttribute(name string) (any, bool)
}

// Filter decides whether a feature takes part in the import.
type Filter func(f Feature) bool

// AcceptAll is the default Filter.
func AcceptAll(Feature) bool {
	return true
}

type Iterator interface {
	Next() bool
	Feature() Feature
	Err() error
	Close() error
}

type Source interface {
	Open(ctx context.Context) error
	// Features iterates table. filtered out features are never returned by the iterator.
	Features(ctx context.Context, table string, filter Filter) (Iterator, error)
	Close() error
}

// Lines decomposes the feature geometry into ordered coordinate sequences.
// a LineString gives one line, a MultiLineString one per member, everything else none.
func Lines(f Feature) []orb.LineString {
	if f == nil {
		return nil
	}
	switch g := f.GetGeometry().(type) {
	case orb.LineString:
		if len(g) == 0 {
			return nil
		}
		return []orb.LineString{g}
	case orb.MultiLineString:
		lines := make([]orb.LineString, 0, len(g))
		for _, ls := range g {
			if len(ls) == 0 {
				continue
			}
			lines = append(lines, ls)
		}
		return lines
	default:
		return nil
	}
}

// Record is a plain Feature value.
type Record struct {
	ID         int64
	Geometry   orb.Geometry
	Attributes map[string]any
}

func NewRecord(id int64, geometry orb.Geometry, attributes map[string]any) *Record {
	if attributes == nil {
		attributes = make(map[string]any)
	}
	return &Record{
		ID:         id,
		Geometry:   geometry,
		Attributes: attributes,
	}
}

func (r *Record) GetID() (int64, error) {
	return r.ID, nil
}

func (r *Record) GetGeometry() orb.Geometry {
	return r.Geometry
}

func (r *Record) GetAttribute(name string) (any, bool) {
	val, ok := r.Attributes[name]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// sliceIterator walks an in-memory feature slice.
type sliceIterator struct {
	ctx      context.Context
	features []Feature
	filter   Filter
	pos      int
	current  Feature
	err      error
	closed   bool
}

func newSliceIterator(ctx context.Context, features []Feature, filter Filter) *sliceIterator {
	if filter == nil {
		filter = AcceptAll
	}
	return &sliceIterator{
		ctx:      ctx,
		features: features,
		filter:   filter,
	}
}

func (it *sliceIterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}
	for it.pos < len(it.features) {
		if err := it.ctx.Err(); err != nil {
			it.err = err
			return false
		}
		f := it.features[it.pos]
		it.pos++
		if !it.filter(f) {
			continue
		}
		it.current = f
		return true
	}
	it.current = nil
	return false
}

func (it *sliceIterator) Feature() Feature {
	return it.current
}

func (it *sliceIterator) Err() error {
	return it.err
}

func (it *sliceIterator) Close() error {
	it.closed = true
	it.current = nil
	return nil
}
