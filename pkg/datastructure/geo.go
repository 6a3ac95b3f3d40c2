package datastructure

import (
	"fmt"
	"math"
)

// BoundingBox in degree.
type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

// NewEmptyBoundingBox. Extend with the first point makes it a point box.
func NewEmptyBoundingBox() *BoundingBox {
	return &BoundingBox{
		minLat: math.Inf(1),
		minLon: math.Inf(1),
		maxLat: math.Inf(-1),
		maxLon: math.Inf(-1),
	}
}

func (b *BoundingBox) Extend(lat, lon float64) {
	b.minLat = math.Min(b.minLat, lat)
	b.minLon = math.Min(b.minLon, lon)
	b.maxLat = math.Max(b.maxLat, lat)
	b.maxLon = math.Max(b.maxLon, lon)
}

func (b *BoundingBox) IsEmpty() bool {
	return b.minLat > b.maxLat
}

func (b *BoundingBox) GetMinCoord() (float64, float64) {
	return b.minLat, b.minLon
}

func (b *BoundingBox) GetMaxCoord() (float64, float64) {
	return b.maxLat, b.maxLon
}

// EdgeBoundingBox covers the tower nodes and the pillars of an edge.
func (gs *GraphStorage) EdgeBoundingBox(e *EdgeHandle) (*BoundingBox, error) {
	bb := NewEmptyBoundingBox()
	for _, node := range []Index{e.GetFrom(), e.GetTo()} {
		lat, lon, ok := gs.GetNodePosition(node)
		if !ok {
			return nil, fmt.Errorf("edge %d: node %d: %w", e.GetID(), node, ErrNodeWithoutPosition)
		}
		bb.Extend(lat, lon)
	}
	pillars, err := e.GetGeometry()
	if err != nil {
		return nil, err
	}
	for _, p := range pillars {
		bb.Extend(p.GetLat(), p.GetLon())
	}
	return bb, nil
}
