package graphreader

import (
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
)

// CoordState. 0 unknown, -2 pillar, >= 1 tower node id.
// wider than datastructure.Index so every node id stays positive.
type CoordState int64

const (
	UNKNOWN_COORD CoordState = 0
	PILLAR_COORD  CoordState = -2
)

func nodeState(id datastructure.Index) CoordState {
	return CoordState(id)
}

func (s CoordState) IsNode() bool {
	return s > 0
}

func (s CoordState) IsPillar() bool {
	return s == PILLAR_COORD
}

func (s CoordState) NodeID() datastructure.Index {
	if !s.IsNode() {
		return 0
	}
	return datastructure.Index(s)
}

// CoordinateClassifier maps every quantized coordinate seen in the import to its state.
// the coordinate is quantized on construction so the map key is already jitter free.
type CoordinateClassifier struct {
	states map[datastructure.Coordinate]CoordState
}

func NewCoordinateClassifier(capacityHint int) *CoordinateClassifier {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &CoordinateClassifier{
		states: make(map[datastructure.Coordinate]CoordState, capacityHint),
	}
}

// Get returns UNKNOWN_COORD for a coordinate never put.
func (c *CoordinateClassifier) Get(coord datastructure.Coordinate) CoordState {
	return c.states[coord]
}

func (c *CoordinateClassifier) Put(coord datastructure.Coordinate, state CoordState) {
	c.states[coord] = state
}

func (c *CoordinateClassifier) Len() int {
	return len(c.states)
}

// Clear drops the map. the classifier can not be used afterwards until it is refilled.
func (c *CoordinateClassifier) Clear() {
	c.states = make(map[datastructure.Coordinate]CoordState)
}
