package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	testCases := []struct {
		name    string
		val     any
		want    int64
		wantErr bool
	}{
		{name: "int64", val: int64(42), want: 42},
		{name: "int", val: 7, want: 7},
		{name: "float without fraction", val: float64(123456789), want: 123456789},
		{name: "float with fraction", val: 1.5, wantErr: true},
		{name: "numeric string", val: " 987 ", want: 987},
		{name: "garbage string", val: "abc", wantErr: true},
		{name: "nil", val: nil, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt64(tt.val)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"name", "ref", "lanes"}, SplitCommaList("name, ref,,lanes "))
	assert.Empty(t, SplitCommaList(""))
}

func TestIDMap(t *testing.T) {
	m := NewIdMap()
	a := m.GetID("Jalan Malioboro")
	b := m.GetID("Jalan Slamet Riyadi")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, m.GetID("Jalan Malioboro"))
	assert.Equal(t, "Jalan Slamet Riyadi", m.GetStr(b))
	assert.Equal(t, "", m.GetStr(99))
	assert.Equal(t, 2, m.Len())
}

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("boom")
	err := WrapErrorf(orig, ErrConfig, "reading %s", "config.yaml")

	assert.ErrorIs(t, err, orig)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ErrConfig, e.Code())
	assert.Equal(t, "reading config.yaml: boom", err.Error())
}

func TestValidateStruct(t *testing.T) {
	type cfg struct {
		File string `validate:"required"`
		Cap  int    `validate:"gte=0"`
	}

	assert.NoError(t, ValidateStruct(cfg{File: "roads", Cap: 1}))

	err := ValidateStruct(cfg{Cap: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File is a required field")
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ErrConfig, e.Code())
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 12.35, RoundFloat(12.3456, 2))
	assert.Equal(t, 12.0, RoundFloat(12.3456, 0))
}

func TestStopConcurrentOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, StopConcurrentOperation(ctx))
	cancel()
	assert.True(t, StopConcurrentOperation(ctx))
}
