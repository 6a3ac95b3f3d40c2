package graphreader

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
)

/*
detectJunctions. first pass over the features.

a vertex becomes a tower node when it is the first or last vertex of a line, or when it was
already seen as a vertex of another line. every other vertex is a pillar node for now, it is
promoted later if another line passes through it. the final node set does not depend on the
order of the features, only the ids do.
*/
func (r *Reader) detectJunctions(ctx context.Context) error {
	vertices := 0
	err := r.scan(ctx, "detect junctions", func(f featuresource.Feature) error {
		for _, line := range featuresource.Lines(f) {
			vertices += r.classifyLine(quantizeLine(line), vertices)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if r.nextNodeID == pkg.FIRST_NODE_ID {
		return fmt.Errorf("%w in table %q", ErrNoNodesFound, r.cfg.Table)
	}
	r.logger.Sugar().Infof("number of junction points: %d", r.NumberOfNodes())
	return nil
}

// classifyLine returns the number of vertices classified. counted is the running total, used for progress logs.
func (r *Reader) classifyLine(coords []datastructure.Coordinate, counted int) int {
	// an interior vertex repeated inside one line (bad geometry, roundabouts) stays a pillar
	seen := make(map[datastructure.Coordinate]struct{}, len(coords))
	last := len(coords) - 1
	n := 0
	for i, c := range coords {
		state := r.classifier.Get(c)
		if state.IsNode() {
			continue
		}

		endpoint := i == 0 || i == last
		if _, ok := seen[c]; ok && !endpoint {
			continue
		}
		seen[c] = struct{}{}

		if endpoint || state.IsPillar() {
			r.promote(c)
		} else {
			r.classifier.Put(c, PILLAR_COORD)
		}

		n++
		if (counted+n)%pkg.JUNCTION_LOG_INTERVAL == 0 {
			r.logger.Sugar().Infof("%d (junctions), junction map: %d", counted+n, r.classifier.Len())
		}
	}
	return n
}

// promote assigns the next node id to c and stores the tower position.
func (r *Reader) promote(c datastructure.Coordinate) datastructure.Index {
	id := r.nextNodeID
	r.nextNodeID++
	r.classifier.Put(c, nodeState(id))
	r.store.SetNodePosition(id, c.GetLat(), c.GetLon())
	return id
}
