package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
)

// EdgeFlags. attributes derived by the encoder for one directed edge.
type EdgeFlags struct {
	Forward   bool
	Backward  bool
	Speed     float64 // km/h
	RoadClass pkg.OsmHighwayType
}

// IsEmpty is true when the edge can not be traversed in any direction.
func (f EdgeFlags) IsEmpty() bool {
	return !f.Forward && !f.Backward
}

// EdgeHandle. a directed edge created in the GraphStorage.
type EdgeHandle struct {
	id       Index
	from     Index
	to       Index
	length   float64 // meter
	flags    EdgeFlags
	geometry []byte // encoded pillar polyline, lat/lon order
	nameID   int

	storage *GraphStorage
}

func (e *EdgeHandle) GetID() Index {
	return e.id
}

func (e *EdgeHandle) GetFrom() Index {
	return e.from
}

func (e *EdgeHandle) GetTo() Index {
	return e.to
}

func (e *EdgeHandle) SetLength(length float64) {
	e.length = length
}

func (e *EdgeHandle) GetLength() float64 {
	return e.length
}

func (e *EdgeHandle) SetDerivedAttributes(flags EdgeFlags) {
	e.flags = flags
}

func (e *EdgeHandle) GetFlags() EdgeFlags {
	return e.flags
}

// SetGeometry stores the pillar nodes between from and to. elevation is not kept.
func (e *EdgeHandle) SetGeometry(pillars []Coordinate) {
	if len(pillars) == 0 {
		e.geometry = nil
		return
	}
	coords := make([][]float64, len(pillars))
	for i, p := range pillars {
		coords[i] = []float64{p.GetLat(), p.GetLon()}
	}
	e.geometry = pillarCodec.EncodeCoords(nil, coords)
}

func (e *EdgeHandle) GetGeometry() ([]Coordinate, error) {
	if len(e.geometry) == 0 {
		return []Coordinate{}, nil
	}
	coords, _, err := pillarCodec.DecodeCoords(e.geometry)
	if err != nil {
		return nil, fmt.Errorf("decode geometry of edge %d: %w", e.id, err)
	}
	pillars := make([]Coordinate, len(coords))
	for i, c := range coords {
		pillars[i] = NewCoordinate(c[1], c[0])
	}
	return pillars, nil
}

// GetEncodedGeometry returns the pillars as an encoded polyline (precision 6).
func (e *EdgeHandle) GetEncodedGeometry() string {
	return string(e.geometry)
}

func (e *EdgeHandle) SetName(name string) {
	e.nameID = e.storage.tagStringIDMap.GetID(name)
}

func (e *EdgeHandle) GetName() string {
	return e.storage.tagStringIDMap.GetStr(e.nameID)
}

func (e *EdgeHandle) SetRoundabout(isRoundabout bool) {
	e.storage.SetRoundabout(e.id, isRoundabout)
}

func (e *EdgeHandle) IsRoundabout() bool {
	return e.storage.IsRoundabout(e.id)
}
