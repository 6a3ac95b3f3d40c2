package graphreader

import (
	"math"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/geo"
	"go.uber.org/zap"
)

// DistanceEstimator sums the great circle length of an edge polyline in meter.
type DistanceEstimator struct {
	logger *zap.Logger
	stats  *Stats
	dist   func(latOne, longOne, latTwo, longTwo float64) float64
}

func NewDistanceEstimator(logger *zap.Logger, stats *Stats) *DistanceEstimator {
	return &DistanceEstimator{
		logger: logger,
		stats:  stats,
		dist:   geo.GreatCircleDistance,
	}
}

// Estimate returns the length of start -> pillars -> end. lengths below pkg.MIN_EDGE_DISTANCE are
// clamped to it and a NaN length becomes pkg.NAN_EDGE_DISTANCE.
func (d *DistanceEstimator) Estimate(start datastructure.Coordinate, pillars []datastructure.Coordinate,
	end datastructure.Coordinate) float64 {
	distance := 0.0
	prev := start
	for _, p := range pillars {
		distance += d.dist(prev.GetLat(), prev.GetLon(), p.GetLat(), p.GetLon())
		prev = p
	}
	distance += d.dist(prev.GetLat(), prev.GetLon(), end.GetLat(), end.GetLon())

	if math.IsNaN(distance) {
		d.logger.Warn("edge distance is not a number",
			zap.Stringer("start", start), zap.Stringer("end", end), zap.Int("pillars", len(pillars)))
		d.stats.nanDistanceEdges.Inc()
		return pkg.NAN_EDGE_DISTANCE
	}
	if distance < pkg.MIN_EDGE_DISTANCE {
		d.stats.zeroDistanceEdges.Inc()
		return pkg.MIN_EDGE_DISTANCE
	}
	return distance
}
