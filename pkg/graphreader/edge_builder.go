package graphreader

import (
	"context"
	"fmt"
	"strings"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
	"go.uber.org/zap"
)

// buildEdges. second pass: every line is cut into edges at its tower nodes.
func (r *Reader) buildEdges(ctx context.Context) error {
	edges := 0
	err := r.scan(ctx, "build edges", func(f featuresource.Feature) error {
		lines := featuresource.Lines(f)
		if len(lines) == 0 {
			return nil
		}
		wayID, err := f.GetID()
		if err != nil {
			r.logger.Warn("skipping feature without way id", zap.Error(err))
			return nil
		}
		for _, line := range lines {
			edges += r.splitLine(f, wayID, quantizeLine(line), edges)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Sugar().Infof("number of edges: %d", r.store.NumberOfEdges())
	return nil
}

// splitLine returns the number of edges created for the line.
func (r *Reader) splitLine(f featuresource.Feature, wayID int64, coords []datastructure.Coordinate, counted int) int {
	if len(coords) < 2 {
		return 0
	}
	start := coords[0]
	if !r.classifier.Get(start).IsNode() {
		r.logger.Warn("line does not start at a tower node", zap.Int64("way_id", wayID), zap.Stringer("start", start))
		return 0
	}

	n := 0
	prev := start
	pillars := make([]datastructure.Coordinate, 0, len(coords))
	for _, c := range coords[1:] {
		// consecutive repeat, after quantization
		if c == prev {
			continue
		}
		prev = c

		if !r.classifier.Get(c).IsNode() {
			pillars = append(pillars, c)
			continue
		}

		if r.addEdge(f, wayID, start, pillars, c) {
			n++
			if (counted+n)%pkg.EDGE_LOG_INTERVAL == 0 {
				r.logger.Sugar().Infof("%d (edges)", counted+n)
			}
		}
		start = c
		pillars = make([]datastructure.Coordinate, 0, len(coords))
	}
	return n
}

// addEdge creates the edge start -> end when the encoder accepts the way. returns false when it was rejected.
func (r *Reader) addEdge(f featuresource.Feature, wayID int64, start datastructure.Coordinate,
	pillars []datastructure.Coordinate, end datastructure.Coordinate) bool {
	from := r.classifier.Get(start).NodeID()
	to := r.classifier.Get(end).NodeID()

	distance := r.distance.Estimate(start, pillars, end)
	center := datastructure.NewCoordinate(
		0.5*(start.GetLon()+end.GetLon()),
		0.5*(start.GetLat()+end.GetLat()),
	)
	way := r.newReaderWay(f, wayID, distance, center)

	accepted, acceptCtx := r.encoder.AcceptWay(way)
	if !accepted {
		r.stats.edgesRejected.Inc()
		return false
	}
	flags, ok := r.encoder.HandleWayTags(way, acceptCtx)
	if !ok || flags.IsEmpty() {
		r.stats.edgesRejected.Inc()
		return false
	}

	edge := r.store.CreateDirectedEdge(from, to)
	edge.SetLength(distance)
	edge.SetDerivedAttributes(flags)
	edge.SetGeometry(pillars)
	r.encoder.ApplyWayTags(way, edge)

	if endpoints, ok := r.wayEndpoints[wayID]; ok {
		endpoints.to = to
	} else {
		r.wayEndpoints[wayID] = &wayEndpoints{from: from, to: to}
	}
	r.edgeWayID[edge.GetID()] = wayID

	for _, handler := range r.edgeAddedHandlers {
		handler(way, edge)
	}
	return true
}

// newReaderWay derives the tags the encoder works with from the feature attributes.
func (r *Reader) newReaderWay(f featuresource.Feature, wayID int64, distance float64,
	center datastructure.Coordinate) *datastructure.ReaderWay {
	way := datastructure.NewReaderWay(wayID)
	way.SetTag("estimated_distance", distance)
	way.SetTag("estimated_center", center)

	if val, ok := f.GetAttribute("fclass"); ok {
		way.SetTag("highway", fmt.Sprint(val))
	}

	if val, ok := f.GetAttribute("maxspeed"); ok {
		maxSpeed := strings.TrimSpace(fmt.Sprint(val))
		if maxSpeed != "" && maxSpeed != "0" {
			way.SetTag("maxspeed", maxSpeed)
		}
	}

	for _, tag := range r.cfg.TagsToCopy {
		if val, ok := f.GetAttribute(tag); ok {
			way.SetTag(tag, val)
		}
	}

	if val, ok := f.GetAttribute("oneway"); ok {
		way.SetTag("oneway", normalizeOneway(fmt.Sprint(val)))
	}
	return way
}

// normalizeOneway maps the Geofabrik coding (F forward, T backward, B both) to the osm values.
func normalizeOneway(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "f", "yes":
		return "yes"
	case "t", "-1":
		return "-1"
	default:
		return "no"
	}
}
