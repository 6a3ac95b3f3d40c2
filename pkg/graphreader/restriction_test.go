package graphreader

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/encoding"
	"github.com/lintang-b-s/navigatorx-geoimport/pkg/featuresource"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restrictedRoad(id int64, line orb.LineString, restriction string, to any) *featuresource.Record {
	return featuresource.NewRecord(id, line, map[string]any{
		"fclass":         "residential",
		"restriction":    restriction,
		"restriction_to": to,
	})
}

func TestResolveRestrictionNo(t *testing.T) {
	src := memorySource(
		restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "No", int64(2)),
		road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
	)
	r, gs := newTestReader(t, src)
	require.NoError(t, r.ReadGraph(context.Background()))

	w1, _ := gs.GetEdge(0)
	restrictions := gs.GetTurnRestrictions()
	require.Len(t, restrictions, 1)
	assert.Equal(t, datastructure.TurnRelation{
		FromWayID:             1,
		ViaNode:               w1.GetTo(),
		ToWayID:               2,
		Restriction:           datastructure.NOT,
		VehicleTypeRestricted: encoding.VEHICLE_TYPE,
	}, restrictions[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Stats().restrictionsApplied))
}

func TestResolveRestrictionUsesWayEndpoints(t *testing.T) {
	// way 1 is split in two edges, its endpoints are the first start and the last end
	src := memorySource(
		restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}, {0, 2}}, "no_left_turn", "3"),
		road(2, "residential", orb.LineString{{-1, 1}, {0, 1}}),
		road(3, "residential", orb.LineString{{1, 3}, {0, 2}}),
	)
	r, gs := newTestReader(t, src)
	require.NoError(t, r.ReadGraph(context.Background()))

	var lastOfWay1 *datastructure.EdgeHandle
	gs.ForEdges(func(e *datastructure.EdgeHandle) {
		if wayID, _ := r.WayIDOfEdge(e.GetID()); wayID == 1 {
			lastOfWay1 = e
		}
	})
	require.NotNil(t, lastOfWay1)

	restrictions := gs.GetTurnRestrictions()
	require.Len(t, restrictions, 1)
	assert.Equal(t, datastructure.NO_LEFT_TURN, restrictions[0].Restriction)
	assert.Equal(t, lastOfWay1.GetTo(), restrictions[0].ViaNode)
	assert.Equal(t, int64(3), restrictions[0].ToWayID)
}

func TestResolveRestrictionSkipped(t *testing.T) {
	testCases := []struct {
		name            string
		features        []featuresource.Feature
		wantUnsupported float64
		wantMissing     float64
		wantUnresolved  float64
	}{
		{
			name: "unsupported value",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "give_way", int64(2)),
				road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
			},
			wantUnsupported: 1,
		},
		{
			name: "target way without edges",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "no", int64(99)),
				road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
			},
			wantMissing: 1,
		},
		{
			name: "target way rejected by the encoder",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "no", int64(2)),
				road(2, "footway", orb.LineString{{0, 1}, {0, 2}}),
			},
			wantMissing: 1,
		},
		{
			name: "ways without a shared node",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "no_u_turn", int64(2)),
				road(2, "residential", orb.LineString{{5, 5}, {5, 6}}),
			},
			wantUnresolved: 1,
		},
		{
			name: "non positive target id",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "no", int64(-2)),
				road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
			},
		},
		{
			name: "target id is not a number",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, "no", "way two"),
				road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
			},
		},
		{
			name: "empty restriction",
			features: []featuresource.Feature{
				restrictedRoad(1, orb.LineString{{0, 0}, {0, 1}}, " ", int64(2)),
				road(2, "residential", orb.LineString{{0, 1}, {0, 2}}),
			},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			r, gs := newTestReader(t, memorySource(tt.features...))
			require.NoError(t, r.ReadGraph(context.Background()))

			assert.Empty(t, gs.GetTurnRestrictions())
			stats := r.Stats()
			assert.Equal(t, tt.wantUnsupported, testutil.ToFloat64(stats.restrictionsUnsupported))
			assert.Equal(t, tt.wantMissing, testutil.ToFloat64(stats.restrictionsMissingWay))
			assert.Equal(t, tt.wantUnresolved, testutil.ToFloat64(stats.restrictionsUnresolved))
			assert.Equal(t, 0.0, testutil.ToFloat64(stats.restrictionsApplied))
		})
	}
}

func TestResolveRestrictionGeometryLessFeature(t *testing.T) {
	// restriction rows without geometry, as produced from osm relations
	src := memorySource(
		road(11, "residential", orb.LineString{{0, 0}, {0, 1}}),
		road(12, "residential", orb.LineString{{0, 0}, {1, 0}}),
		featuresource.NewRecord(11, nil, map[string]any{"restriction": "only_right_turn", "restriction_to": int64(12)}),
	)
	r, gs := newTestReader(t, src)
	require.NoError(t, r.ReadGraph(context.Background()))

	first, _ := gs.GetEdge(0)
	restrictions := gs.GetTurnRestrictions()
	require.Len(t, restrictions, 1)
	assert.Equal(t, datastructure.ONLY_RIGHT_TURN, restrictions[0].Restriction)
	assert.Equal(t, first.GetFrom(), restrictions[0].ViaNode)
}
