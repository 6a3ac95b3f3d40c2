package datastructure

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
)

// Index. node id / edge id inside the graph store.
type Index uint32

var coordScale = math.Pow(10, pkg.COORD_PRECISION)

// Coordinate is a vertex quantized to pkg.COORD_PRECISION decimal places.
// ordinates are kept as fixed point integers so two coordinates that only differ by
// floating noise are equal and hash the same when used as a map key.
// x is longitude, y is latitude.
type Coordinate struct {
	x    int64
	y    int64
	z    int64
	hasZ bool
}

func quantize(v float64) int64 {
	return int64(math.Round(v * coordScale))
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		x: quantize(lon),
		y: quantize(lat),
	}
}

// NewCoordinate3D. z = NaN means the vertex has no elevation.
func NewCoordinate3D(lon, lat, z float64) Coordinate {
	c := NewCoordinate(lon, lat)
	if !math.IsNaN(z) {
		c.z = quantize(z)
		c.hasZ = true
	}
	return c
}

func (c Coordinate) GetLon() float64 {
	return float64(c.x) / coordScale
}

func (c Coordinate) GetLat() float64 {
	return float64(c.y) / coordScale
}

// GetZ returns NaN when the coordinate is 2D.
func (c Coordinate) GetZ() float64 {
	if !c.hasZ {
		return math.NaN()
	}
	return float64(c.z) / coordScale
}

func (c Coordinate) HasZ() bool {
	return c.hasZ
}

func (c Coordinate) String() string {
	lon := strconv.FormatFloat(c.GetLon(), 'f', pkg.COORD_PRECISION, 64)
	lat := strconv.FormatFloat(c.GetLat(), 'f', pkg.COORD_PRECISION, 64)
	if c.hasZ {
		return fmt.Sprintf("(%s %s %s)", lon, lat, strconv.FormatFloat(c.GetZ(), 'f', pkg.COORD_PRECISION, 64))
	}
	return fmt.Sprintf("(%s %s)", lon, lat)
}
