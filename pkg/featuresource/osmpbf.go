package featuresource

import (
	"context"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// OSMPBFSource exposes the highway ways of an OSM PBF extract as road features with
// Geofabrik style attributes (fclass, maxspeed, oneway, name, ...), and every restriction
// relation as a geometry-less feature carrying restriction / restriction_to.
type OSMPBFSource struct {
	path       string
	procs      int
	acceptWay  func(tags osm.Tags) bool
	file       *os.File
	nodeCoords map[osm.NodeID]orb.Point
}

func NewOSMPBFSource(path string, procs int) *OSMPBFSource {
	if procs <= 0 {
		procs = 1
	}
	return &OSMPBFSource{
		path:      path,
		procs:     procs,
		acceptWay: isHighway,
	}
}

func isHighway(tags osm.Tags) bool {
	return tags.Find("highway") != "" || tags.Find("junction") != ""
}

// Open loads the coordinates of every node referenced by an accepted way.
func (s *OSMPBFSource) Open(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		return errors.Wrapf(err, "open osm pbf %s", s.path)
	}
	s.file = f

	referenced := make(map[osm.NodeID]struct{})
	scanner := osmpbf.New(ctx, f, s.procs)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || !s.acceptWay(way.Tags) {
			continue
		}
		for _, wn := range way.Nodes {
			referenced[wn.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		s.Close()
		return errors.Wrap(err, "scan osm ways")
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		s.Close()
		return errors.Wrap(err, "seek osm pbf")
	}

	s.nodeCoords = make(map[osm.NodeID]orb.Point, len(referenced))
	scanner = osmpbf.New(ctx, f, s.procs)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[node.ID]; needed {
			s.nodeCoords[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		s.Close()
		return errors.Wrap(err, "scan osm nodes")
	}
	scanner.Close()
	return nil
}

// Features streams the ways and restriction relations. the pbf has a single table so the
// table name is not used.
func (s *OSMPBFSource) Features(ctx context.Context, table string, filter Filter) (Iterator, error) {
	if s.file == nil {
		return nil, ErrSourceNotOpen
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "seek osm pbf for table %q", table)
	}
	if filter == nil {
		filter = AcceptAll
	}
	scanner := osmpbf.New(ctx, s.file, s.procs)
	scanner.SkipNodes = true
	return &pbfIterator{
		source:  s,
		scanner: scanner,
		filter:  filter,
	}, nil
}

func (s *OSMPBFSource) Close() error {
	s.nodeCoords = nil
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return errors.Wrap(err, "close osm pbf")
	}
	return nil
}

// wayGeometry. nodes without a coordinate (outside the extract) cut the way into several lines.
func (s *OSMPBFSource) wayGeometry(way *osm.Way) orb.Geometry {
	lines := make(orb.MultiLineString, 0, 1)
	current := make(orb.LineString, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		p, ok := s.nodeCoords[wn.ID]
		if !ok {
			if len(current) > 1 {
				lines = append(lines, current)
			}
			current = make(orb.LineString, 0, len(way.Nodes))
			continue
		}
		current = append(current, p)
	}
	if len(current) > 1 {
		lines = append(lines, current)
	}
	if len(lines) == 1 {
		return lines[0]
	}
	return lines
}

func wayAttributes(way *osm.Way) map[string]any {
	attrs := make(map[string]any, len(way.Tags)+1)
	for _, tag := range way.Tags {
		attrs[tag.Key] = tag.Value
	}
	attrs["fclass"] = way.Tags.Find("highway")
	attrs["osm_id"] = int64(way.ID)
	return attrs
}

// restrictionFeature. nil when the relation is not a way-to-way restriction.
func restrictionFeature(rel *osm.Relation) *Record {
	restriction := rel.Tags.Find("restriction")
	if restriction == "" {
		restriction = rel.Tags.Find("restriction:motorcar")
	}
	if restriction == "" {
		return nil
	}
	var from, to int64
	for _, m := range rel.Members {
		if m.Type != osm.TypeWay {
			continue
		}
		switch m.Role {
		case "from":
			from = m.Ref
		case "to":
			to = m.Ref
		}
	}
	if from == 0 || to == 0 {
		return nil
	}
	return NewRecord(from, nil, map[string]any{
		"restriction":    restriction,
		"restriction_to": to,
	})
}

type pbfIterator struct {
	source  *OSMPBFSource
	scanner *osmpbf.Scanner
	filter  Filter
	current Feature
	closed  bool
}

func (it *pbfIterator) Next() bool {
	if it.closed {
		return false
	}
	for it.scanner.Scan() {
		var f Feature
		switch o := it.scanner.Object().(type) {
		case *osm.Way:
			if len(o.Nodes) < 2 || !it.source.acceptWay(o.Tags) {
				continue
			}
			f = NewRecord(int64(o.ID), it.source.wayGeometry(o), wayAttributes(o))
		case *osm.Relation:
			rec := restrictionFeature(o)
			if rec == nil {
				continue
			}
			f = rec
		default:
			continue
		}
		if !it.filter(f) {
			continue
		}
		it.current = f
		return true
	}
	it.current = nil
	return false
}

func (it *pbfIterator) Feature() Feature {
	return it.current
}

func (it *pbfIterator) Err() error {
	if err := it.scanner.Err(); err != nil {
		return errors.Wrap(err, "scan osm pbf")
	}
	return nil
}

func (it *pbfIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.scanner.Close()
}
