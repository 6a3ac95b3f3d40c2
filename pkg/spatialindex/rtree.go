package spatialindex

import (
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const maxSearchResults = 20

type Rtree struct {
	tr                *rtree.RTreeG[EdgeEntry]
	store             *datastructure.GraphStorage
	boundingBoxRadius float64 // km
	log               *zap.Logger
	size              int
}

// EdgeEntry. one created edge with the way it was cut from.
type EdgeEntry struct {
	edgeID datastructure.Index
	wayID  int64
}

func (ee EdgeEntry) GetEdgeID() datastructure.Index {
	return ee.edgeID
}

func (ee EdgeEntry) GetWayID() int64 {
	return ee.wayID
}

func newEdgeEntry(edgeID datastructure.Index, wayID int64) EdgeEntry {
	return EdgeEntry{
		edgeID: edgeID,
		wayID:  wayID,
	}
}

// NewRtree. each leaf gets the bounding box of the edge grown by boundingBoxRadius (in km).
func NewRtree(store *datastructure.GraphStorage, boundingBoxRadius float64, log *zap.Logger) *Rtree {
	var tr rtree.RTreeG[EdgeEntry]
	return &Rtree{
		tr:                &tr,
		store:             store,
		boundingBoxRadius: boundingBoxRadius,
		log:               log,
	}
}

// EdgeAdded indexes an edge right after the graph reader created it.
func (rt *Rtree) EdgeAdded(way *datastructure.ReaderWay, edge *datastructure.EdgeHandle) {
	bb, err := rt.store.EdgeBoundingBox(edge)
	if err != nil {
		rt.log.Warn("edge not indexed", zap.Uint32("edge_id", uint32(edge.GetID())), zap.Error(err))
		return
	}
	minLat, minLon := bb.GetMinCoord()
	maxLat, maxLon := bb.GetMaxCoord()

	lowerLat, lowerLon := geo.GetDestinationPoint(minLat, minLon, 225, rt.boundingBoxRadius)
	upperLat, upperLon := geo.GetDestinationPoint(maxLat, maxLon, 45, rt.boundingBoxRadius)

	rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		newEdgeEntry(edge.GetID(), way.GetID()))
	rt.size++
}

func (rt *Rtree) Len() int {
	return rt.size
}

// SearchWithinRadius search for all edges within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []EdgeEntry {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]EdgeEntry, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data EdgeEntry) bool {
			results = append(results, data)
			if len(results) >= maxSearchResults {
				return false
			}
			return true
		})
	return results
}
