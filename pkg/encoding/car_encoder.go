// Package encoding turns the derived way record of a road feature into car edge flags.
package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"go.uber.org/zap"
)

const (
	// VEHICLE_TYPE is stored on every turn relation applied by the car encoder.
	VEHICLE_TYPE = "motorcar"

	mphToKmh   = 1.60934
	knotsToKmh = 1.852
)

var (
	ErrInvalidTurnRelation = errors.New("invalid turn relation")
)

// AcceptContext tells HandleWayTags why the way was accepted.
type AcceptContext uint8

const (
	WAY_REJECTED AcceptContext = iota
	WAY_ACCEPTED
	JUNCTION_ACCEPTED // no highway class, accepted for its junction tag
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"tertiary":         {},
		"tertiary_link":    {},
		"road":             {},
		"track":            {},
		"unclassified":     {},
		"undefined":        {},
		"unknown":          {},
		"living_street":    {},
		"private":          {},
		"motorroad":        {},
	}
)

// CarEncoder derives car access, speed and road class of an edge.
type CarEncoder struct {
	logger      *zap.Logger
	store       *datastructure.GraphStorage
	useMaxSpeed bool
}

func NewCarEncoder(store *datastructure.GraphStorage, logger *zap.Logger, useMaxSpeed bool) *CarEncoder {
	return &CarEncoder{
		logger:      logger,
		store:       store,
		useMaxSpeed: useMaxSpeed,
	}
}

// AcceptWay accepts car roads, and ways without a class that are part of a junction.
func (c *CarEncoder) AcceptWay(way *datastructure.ReaderWay) (bool, AcceptContext) {
	highway := way.GetTagString("highway")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true, WAY_ACCEPTED
		}
		return false, WAY_REJECTED
	}
	if way.GetTagString("junction") != "" {
		return true, JUNCTION_ACCEPTED
	}
	return false, WAY_REJECTED
}

// HandleWayTags returns empty flags when the way is not open to cars in any direction.
func (c *CarEncoder) HandleWayTags(way *datastructure.ReaderWay, accept AcceptContext) (datastructure.EdgeFlags, bool) {
	if accept == WAY_REJECTED {
		return datastructure.EdgeFlags{}, false
	}
	if isRestricted(way.GetTagString("access")) || isRestricted(way.GetTagString("motor_vehicle")) {
		return datastructure.EdgeFlags{}, false
	}

	highway := way.GetTagString("highway")
	forward, backward := getDirection(way)
	flags := datastructure.EdgeFlags{
		Forward:   forward,
		Backward:  backward,
		Speed:     c.getSpeed(way, highway),
		RoadClass: pkg.GetHighwayType(highway),
	}
	if flags.IsEmpty() {
		return flags, false
	}
	return flags, true
}

// ApplyWayTags copies the street name and the roundabout flag onto the edge and
// remembers the travel direction of the way.
func (c *CarEncoder) ApplyWayTags(way *datastructure.ReaderWay, edge *datastructure.EdgeHandle) {
	if name := way.GetTagString("name"); name != "" {
		edge.SetName(name)
	}
	if isRoundabout(way) {
		edge.SetRoundabout(true)
	}
	flags := edge.GetFlags()
	c.store.SetStreetDirection(way.GetID(), flags.Forward, flags.Backward)
}

// HandleTurnRelation stores a resolved restriction in the graph store.
func (c *CarEncoder) HandleTurnRelation(rel datastructure.TurnRelation) error {
	if rel.FromWayID <= 0 || rel.ToWayID <= 0 || rel.ViaNode < pkg.FIRST_NODE_ID {
		return fmt.Errorf("%w: %s", ErrInvalidTurnRelation, rel)
	}
	if rel.Restriction == datastructure.UNSUPPORTED {
		return fmt.Errorf("%w: unsupported restriction %s", ErrInvalidTurnRelation, rel)
	}
	rel.VehicleTypeRestricted = VEHICLE_TYPE
	c.store.AddTurnRestriction(rel)
	c.logger.Debug("turn restriction applied", zap.Stringer("relation", rel))
	return nil
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" || value == "private" {
		return true
	}
	return false
}

func isRoundabout(way *datastructure.ReaderWay) bool {
	return way.GetTagString("junction") == "roundabout"
}

// getDirection returns {forward, backward}. oneway is already normalised to yes / -1 / no.
func getDirection(way *datastructure.ReaderWay) (bool, bool) {
	switch way.GetTagString("oneway") {
	case "yes":
		return true, false
	case "-1":
		return false, true
	case "no":
		return true, true
	}
	// implied oneway
	highway := way.GetTagString("highway")
	if highway == "motorway" || highway == "motorway_link" || isRoundabout(way) {
		return true, false
	}
	return true, true
}

func (c *CarEncoder) getSpeed(way *datastructure.ReaderWay, highway string) float64 {
	if c.useMaxSpeed {
		if maxSpeed, ok := parseMaxSpeed(way.GetTagString("maxspeed")); ok {
			return maxSpeed * pkg.NERF_MAXSPEED
		}
	}
	if speed := roadTypeSpeed(highway); speed > 0 {
		return speed
	}
	return pkg.DEFAULT_SPEED
}

// parseMaxSpeed converts an osm maxspeed value to km/h. values without unit are km/h.
func parseMaxSpeed(value string) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = mphToKmh
		value = strings.TrimSuffix(value, "mph")
	case strings.HasSuffix(value, "knots"):
		factor = knotsToKmh
		value = strings.TrimSuffix(value, "knots")
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || speed <= 0 {
		return 0, false
	}
	return speed * factor, true
}

// roadTypeSpeed. default car speed in km/h per highway class, 0 when unknown.
func roadTypeSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 95
	case "trunk":
		return 85
	case "primary":
		return 75
	case "secondary":
		return 65
	case "tertiary":
		return 50
	case "unclassified":
		return 50
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 90
	case "trunk_link":
		return 80
	case "primary_link":
		return 70
	case "secondary_link":
		return 60
	case "tertiary_link":
		return 50
	case "living_street":
		return 20
	case "road":
		return 20
	case "track":
		return 15
	case "motorroad":
		return 90
	default:
		return 0
	}
}
