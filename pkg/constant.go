package pkg

const (
	// FIRST_NODE_ID is the id handed to the first promoted junction.
	FIRST_NODE_ID = 1

	// COORD_PRECISION is the number of decimal places kept when quantizing ordinates.
	COORD_PRECISION = 6

	// MIN_EDGE_DISTANCE in meter. shorter edges are clamped to it.
	MIN_EDGE_DISTANCE = 0.0001
	// NAN_EDGE_DISTANCE in meter, used when the accumulated distance is not a number.
	NAN_EDGE_DISTANCE = 1.0

	DEFAULT_CLASSIFIER_CAPACITY = 10_000_000
	DEFAULT_STORE_CAPACITY      = 1000

	JUNCTION_LOG_INTERVAL = 100_000
	EDGE_LOG_INTERVAL     = 1_000_000

	// speed used when neither maxspeed nor the road class gives one, km/h
	DEFAULT_SPEED = 30.0
	NERF_MAXSPEED = 0.9
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

func (h OsmHighwayType) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "residential", "service",
		"unclassified", "motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link",
		"living_street", "road", "track", "motorroad", "unknown"}[h]
}
