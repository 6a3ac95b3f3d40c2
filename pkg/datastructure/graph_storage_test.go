package datastructure

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-geoimport/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphStorageNodes(t *testing.T) {
	gs := NewGraphStorage()
	require.NoError(t, gs.Create(4))

	gs.SetNodePosition(1, 54.42792, 19.88905)
	gs.SetNodePosition(7, 54.43032, 19.892)
	gs.SetNodePosition(7, 54.43032, 19.892)

	assert.Equal(t, 2, gs.NumberOfNodes())

	lat, lon, ok := gs.GetNodePosition(7)
	require.True(t, ok)
	assert.Equal(t, 54.43032, lat)
	assert.Equal(t, 19.892, lon)

	_, _, ok = gs.GetNodePosition(3)
	assert.False(t, ok)
	_, _, ok = gs.GetNodePosition(100)
	assert.False(t, ok)

	assert.ErrorIs(t, gs.Create(-1), ErrNegativeCapacity)
}

func TestGraphStorageEdges(t *testing.T) {
	gs := NewGraphStorage()
	require.NoError(t, gs.Create(0))

	e := gs.CreateDirectedEdge(1, 2)
	e.SetLength(12.5)
	e.SetDerivedAttributes(EdgeFlags{Forward: true, Speed: 50, RoadClass: pkg.PRIMARY})
	e.SetGeometry([]Coordinate{
		NewCoordinate(110.827352, -7.550248),
		NewCoordinate(110.827999, -7.551001),
	})
	e.SetName("Jalan Slamet Riyadi")
	e.SetRoundabout(true)

	other := gs.CreateDirectedEdge(2, 3)

	assert.Equal(t, 2, gs.NumberOfEdges())
	got, ok := gs.GetEdge(0)
	require.True(t, ok)
	assert.Equal(t, Index(1), got.GetFrom())
	assert.Equal(t, Index(2), got.GetTo())
	assert.Equal(t, 12.5, got.GetLength())
	assert.False(t, got.GetFlags().IsEmpty())
	assert.Equal(t, "Jalan Slamet Riyadi", got.GetName())
	assert.True(t, got.IsRoundabout())
	assert.False(t, other.IsRoundabout())
	assert.Equal(t, "", other.GetName())

	pillars, err := got.GetGeometry()
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{
		NewCoordinate(110.827352, -7.550248),
		NewCoordinate(110.827999, -7.551001),
	}, pillars)

	empty, err := other.GetGeometry()
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, ok = gs.GetEdge(5)
	assert.False(t, ok)

	visited := 0
	gs.ForEdges(func(e *EdgeHandle) {
		assert.Equal(t, Index(visited), e.GetID())
		visited++
	})
	assert.Equal(t, 2, visited)
}

func TestEdgeBoundingBox(t *testing.T) {
	gs := NewGraphStorage()
	require.NoError(t, gs.Create(4))
	gs.SetNodePosition(1, -7.550, 110.827)
	gs.SetNodePosition(2, -7.552, 110.828)

	e := gs.CreateDirectedEdge(1, 2)
	e.SetGeometry([]Coordinate{NewCoordinate(110.830, -7.549)})

	bb, err := gs.EdgeBoundingBox(e)
	require.NoError(t, err)
	assert.False(t, bb.IsEmpty())
	minLat, minLon := bb.GetMinCoord()
	maxLat, maxLon := bb.GetMaxCoord()
	assert.InDelta(t, -7.552, minLat, 1e-6)
	assert.InDelta(t, 110.827, minLon, 1e-6)
	assert.InDelta(t, -7.549, maxLat, 1e-6)
	assert.InDelta(t, 110.830, maxLon, 1e-6)

	orphan := gs.CreateDirectedEdge(2, 3)
	_, err = gs.EdgeBoundingBox(orphan)
	assert.ErrorIs(t, err, ErrNodeWithoutPosition)

	assert.True(t, NewEmptyBoundingBox().IsEmpty())
	assert.Equal(t, "primary", pkg.PRIMARY.String())
}

func TestRoundaboutBitset(t *testing.T) {
	gs := NewGraphStorage()
	gs.SetRoundabout(70, true)
	gs.SetRoundabout(3, true)
	assert.True(t, gs.IsRoundabout(70))
	assert.True(t, gs.IsRoundabout(3))
	assert.False(t, gs.IsRoundabout(69))
	assert.False(t, gs.IsRoundabout(1000))

	gs.SetRoundabout(70, false)
	assert.False(t, gs.IsRoundabout(70))
}

func TestGetRestrictionType(t *testing.T) {
	testCases := []struct {
		value string
		want  TurnRestrictionType
	}{
		{"no", NOT},
		{"NO", NOT},
		{"no_left_turn", NO_LEFT_TURN},
		{"only_straight_on", ONLY_STRAIGHT_ON},
		{"no_entry", NO_ENTRY},
		{"give_way", UNSUPPORTED},
		{"", UNSUPPORTED},
	}
	for _, tt := range testCases {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRestrictionType(tt.value))
		})
	}
	assert.True(t, ONLY_LEFT_TURN.IsOnly())
	assert.False(t, NOT.IsOnly())
}

func TestReaderWayTags(t *testing.T) {
	w := NewReaderWay(42)
	w.SetTag("highway", "primary")
	w.SetTag("estimated_distance", 12.5)

	assert.Equal(t, int64(42), w.GetID())
	assert.Equal(t, "primary", w.GetTagString("highway"))
	assert.Equal(t, "12.5", w.GetTagString("estimated_distance"))
	assert.Equal(t, "", w.GetTagString("maxspeed"))
	assert.True(t, w.HasTag("highway"))
	assert.False(t, w.HasTag("oneway"))
}
