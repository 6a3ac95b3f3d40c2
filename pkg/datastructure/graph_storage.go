package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg/util"
	"github.com/twpayne/go-polyline"
)

var (
	ErrNegativeCapacity    = errors.New("graph storage capacity must not be negative")
	ErrNodeWithoutPosition = errors.New("node has no position")
)

// pillars are quantized to 6 decimals, the default polyline scale (1e5) would lose a digit.
var pillarCodec = polyline.Codec{Dim: 2, Scale: 1e6}

// GraphStorage. in-memory graph store filled by the import: tower node positions, directed edges with
// their pillar geometry and flags, and the turn restrictions handed over by the encoder.
type GraphStorage struct {
	nodeLat   []float64
	nodeLon   []float64
	nodeSet   []bool
	nodeCount int

	edges []*EdgeHandle

	/*
		32 bit -> 32 boolean flag for roundabout

		idx in flag array = floor(edgeID/32)
		idx in flag = edgeID % 32
	*/
	roundaboutFlag []Index

	tagStringIDMap  util.IDMap
	streetDirection map[int64][2]bool // way id -> [forward,backward]

	turnRestrictions []TurnRelation
}

func NewGraphStorage() *GraphStorage {
	gs := &GraphStorage{
		streetDirection:  make(map[int64][2]bool),
		tagStringIDMap:   util.NewIdMap(),
		roundaboutFlag:   make([]Index, 0),
		edges:            make([]*EdgeHandle, 0),
		turnRestrictions: make([]TurnRelation, 0),
	}
	gs.tagStringIDMap.GetID("") // unnamed edges point to id 0
	return gs
}

// Create resets the storage and reserves room for capacityHint nodes and edges.
func (gs *GraphStorage) Create(capacityHint int) error {
	if capacityHint < 0 {
		return fmt.Errorf("create graph storage with capacity %d: %w", capacityHint, ErrNegativeCapacity)
	}
	// node ids start at 1, slot 0 stays empty
	gs.nodeLat = make([]float64, 1, capacityHint+1)
	gs.nodeLon = make([]float64, 1, capacityHint+1)
	gs.nodeSet = make([]bool, 1, capacityHint+1)
	gs.nodeCount = 0
	gs.edges = make([]*EdgeHandle, 0, capacityHint)
	gs.roundaboutFlag = make([]Index, 0, capacityHint/32+1)
	gs.streetDirection = make(map[int64][2]bool)
	gs.tagStringIDMap = util.NewIdMap()
	gs.tagStringIDMap.GetID("")
	gs.turnRestrictions = make([]TurnRelation, 0)
	return nil
}

func (gs *GraphStorage) ensureNode(nodeID Index) {
	if int(nodeID) < len(gs.nodeLat) {
		return
	}
	grow := int(nodeID) - len(gs.nodeLat) + 1
	gs.nodeLat = append(gs.nodeLat, make([]float64, grow)...)
	gs.nodeLon = append(gs.nodeLon, make([]float64, grow)...)
	gs.nodeSet = append(gs.nodeSet, make([]bool, grow)...)
}

func (gs *GraphStorage) SetNodePosition(nodeID Index, lat, lon float64) {
	gs.ensureNode(nodeID)
	if !gs.nodeSet[nodeID] {
		gs.nodeCount++
	}
	gs.nodeLat[nodeID] = lat
	gs.nodeLon[nodeID] = lon
	gs.nodeSet[nodeID] = true
}

// GetNodePosition returns lat, lon of a tower node.
func (gs *GraphStorage) GetNodePosition(nodeID Index) (float64, float64, bool) {
	if int(nodeID) >= len(gs.nodeLat) || !gs.nodeSet[nodeID] {
		return 0, 0, false
	}
	return gs.nodeLat[nodeID], gs.nodeLon[nodeID], true
}

func (gs *GraphStorage) NumberOfNodes() int {
	return gs.nodeCount
}

func (gs *GraphStorage) NumberOfEdges() int {
	return len(gs.edges)
}

func (gs *GraphStorage) CreateDirectedEdge(from, to Index) *EdgeHandle {
	e := &EdgeHandle{
		id:      Index(len(gs.edges)),
		from:    from,
		to:      to,
		storage: gs,
	}
	gs.edges = append(gs.edges, e)
	return e
}

func (gs *GraphStorage) GetEdge(edgeID Index) (*EdgeHandle, bool) {
	if int(edgeID) >= len(gs.edges) {
		return nil, false
	}
	return gs.edges[edgeID], true
}

// ForEdges calls fn for every edge in creation order.
func (gs *GraphStorage) ForEdges(fn func(e *EdgeHandle)) {
	for _, e := range gs.edges {
		fn(e)
	}
}

func (gs *GraphStorage) SetRoundabout(edgeID Index, isRoundabout bool) {
	index := int(math.Floor(float64(edgeID) / 32))
	if len(gs.roundaboutFlag) <= index {
		gs.roundaboutFlag = append(gs.roundaboutFlag, make([]Index, index-len(gs.roundaboutFlag)+1)...)
	}
	if isRoundabout {
		gs.roundaboutFlag[index] |= 1 << (edgeID % 32)
	} else {
		gs.roundaboutFlag[index] &^= 1 << (edgeID % 32)
	}
}

func (gs *GraphStorage) IsRoundabout(edgeID Index) bool {
	index := int(math.Floor(float64(edgeID) / 32))
	if index >= len(gs.roundaboutFlag) {
		return false
	}
	return (gs.roundaboutFlag[index] & (1 << (edgeID % 32))) != 0
}

func (gs *GraphStorage) SetStreetDirection(wayID int64, forward, backward bool) {
	gs.streetDirection[wayID] = [2]bool{forward, backward}
}

func (gs *GraphStorage) GetStreetDirection(wayID int64) [2]bool {
	return gs.streetDirection[wayID]
}

func (gs *GraphStorage) AddTurnRestriction(rel TurnRelation) {
	gs.turnRestrictions = append(gs.turnRestrictions, rel)
}

func (gs *GraphStorage) GetTurnRestrictions() []TurnRelation {
	return gs.turnRestrictions
}
