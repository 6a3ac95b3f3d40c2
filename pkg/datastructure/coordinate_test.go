package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateQuantization(t *testing.T) {
	testCases := []struct {
		name      string
		a         Coordinate
		b         Coordinate
		wantEqual bool
	}{
		{
			name:      "floating noise below precision collapses",
			a:         NewCoordinate(20.000000, 10.000000),
			b:         NewCoordinate(20.0000004, 10.0000004),
			wantEqual: true,
		},
		{
			name:      "noise on the other side of the grid point",
			a:         NewCoordinate(110.827352, -7.550248),
			b:         NewCoordinate(110.82735199999, -7.55024800001),
			wantEqual: true,
		},
		{
			name:      "one micro degree apart",
			a:         NewCoordinate(20.000000, 10.000000),
			b:         NewCoordinate(20.000001, 10.000000),
			wantEqual: false,
		},
		{
			name:      "2d and 3d are different vertices",
			a:         NewCoordinate(1, 1),
			b:         NewCoordinate3D(1, 1, 5),
			wantEqual: false,
		},
		{
			name:      "nan elevation is 2d",
			a:         NewCoordinate(1, 1),
			b:         NewCoordinate3D(1, 1, math.NaN()),
			wantEqual: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantEqual, tt.a == tt.b)

			set := map[Coordinate]int{tt.a: 1}
			_, found := set[tt.b]
			assert.Equal(t, tt.wantEqual, found)
		})
	}
}

func TestCoordinateAccessors(t *testing.T) {
	c := NewCoordinate3D(19.8890512, 54.4279249, 12.5)
	assert.Equal(t, 19.889051, c.GetLon())
	assert.Equal(t, 54.427925, c.GetLat())
	assert.True(t, c.HasZ())
	assert.Equal(t, 12.5, c.GetZ())
	assert.Equal(t, "(19.889051 54.427925 12.500000)", c.String())

	flat := NewCoordinate(1, 2)
	assert.True(t, math.IsNaN(flat.GetZ()))
	assert.Equal(t, "(1.000000 2.000000)", flat.String())
}
