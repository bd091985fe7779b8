package ua

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualFloats(t *testing.T) {
	assert.True(t, Equal(math.NaN(), math.NaN()))
	assert.True(t, Equal(float32(math.NaN()), float32(math.NaN())))
	assert.False(t, Equal(math.NaN(), 1.0))
	assert.True(t, Equal([]float64{1, math.NaN()}, []float64{1, math.NaN()}))
	assert.False(t, Equal([]float64{1, 2}, []float64{1, 3}))
	assert.False(t, Equal([]float64{1}, []float64{1, 2}))
}

func TestEqualTimes(t *testing.T) {
	utc := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	shifted := utc.In(time.FixedZone("X", 3600))
	assert.True(t, Equal(utc, shifted))
	assert.True(t, Equal([]time.Time{utc}, []time.Time{shifted}))
	assert.False(t, Equal(utc, utc.Add(time.Nanosecond)))
}

func TestEqualMatrix(t *testing.T) {
	a, err := NewMatrix([]float64{1, math.NaN(), 3, 4}, []int32{2, 2})
	require.NoError(t, err)
	b, err := NewMatrix([]float64{1, math.NaN(), 3, 4}, []int32{2, 2})
	require.NoError(t, err)
	assert.True(t, Equal(a, b))

	c, err := NewMatrix([]float64{1, math.NaN(), 3, 4}, []int32{4, 1, 1})
	require.NoError(t, err)
	assert.False(t, Equal(a, c))
}

func TestEqualExtensionObject(t *testing.T) {
	id := NewExpandedNodeID(NewNodeIDNumeric(0, 886))
	a := ExtensionObject{TypeID: id, Body: &Range{Low: 1, High: 2}}
	b := ExtensionObject{TypeID: id, Body: &Range{Low: 1, High: 2}}
	assert.True(t, Equal(a, b))

	b.Body = &Range{Low: 1, High: 3}
	assert.False(t, Equal(a, b))

	b = ExtensionObject{TypeID: NewExpandedNodeID(NewNodeIDNumeric(0, 887)), Body: &Range{Low: 1, High: 2}}
	assert.False(t, Equal(a, b))
}

func TestEqualDataValue(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a := DataValue{Value: []float64{math.NaN()}, StatusCode: BadDataLost, SourceTimestamp: ts}
	b := DataValue{Value: []float64{math.NaN()}, StatusCode: BadDataLost, SourceTimestamp: ts.In(time.FixedZone("X", -3600))}
	assert.True(t, Equal(a, b))

	b.StatusCode = Good
	assert.False(t, Equal(a, b))
}

func TestEqualMixedKinds(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, int32(0)))
	assert.False(t, Equal(int32(1), int64(1)))
	assert.True(t, Equal([]Variant{int32(1), "a"}, []Variant{int32(1), "a"}))
	assert.False(t, Equal([]Variant{int32(1)}, []Variant{uint32(1)}))
}
