package ua

import (
	"math"
	"reflect"
	"time"
)

// Equal reports whether two Variant values hold the same logical value.
// It differs from reflect.DeepEqual where Go equality is too strict for
// wire round-trips: time.Time compares by instant regardless of
// location, and NaN compares equal to NaN.
func Equal(a, b Variant) bool {
	switch a2 := a.(type) {
	case nil:
		return b == nil
	case float32:
		b2, ok := b.(float32)
		if !ok {
			return false
		}
		if math.IsNaN(float64(a2)) {
			return math.IsNaN(float64(b2))
		}
		return a2 == b2
	case float64:
		b2, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(a2) {
			return math.IsNaN(b2)
		}
		return a2 == b2
	case time.Time:
		b2, ok := b.(time.Time)
		return ok && a2.Equal(b2)
	case []float32:
		b2, ok := b.([]float32)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return Equal(a2[i], b2[i]) })
	case []float64:
		b2, ok := b.([]float64)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return Equal(a2[i], b2[i]) })
	case []time.Time:
		b2, ok := b.([]time.Time)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return a2[i].Equal(b2[i]) })
	case []Variant:
		b2, ok := b.([]Variant)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return Equal(a2[i], b2[i]) })
	case Matrix:
		b2, ok := b.(Matrix)
		return ok && reflect.DeepEqual(a2.Dimensions, b2.Dimensions) && Equal(a2.Elements, b2.Elements)
	case ExtensionObject:
		b2, ok := b.(ExtensionObject)
		return ok && a2.TypeID == b2.TypeID && Equal(a2.Body, b2.Body)
	case []ExtensionObject:
		b2, ok := b.([]ExtensionObject)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return Equal(a2[i], b2[i]) })
	case DataValue:
		b2, ok := b.(DataValue)
		return ok && equalDataValue(a2, b2)
	case []DataValue:
		b2, ok := b.([]DataValue)
		return ok && equalSlice(len(a2), len(b2), func(i int) bool { return equalDataValue(a2[i], b2[i]) })
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalSlice(n, m int, eq func(i int) bool) bool {
	if n != m {
		return false
	}
	for i := 0; i < n; i++ {
		if !eq(i) {
			return false
		}
	}
	return true
}

func equalDataValue(a, b DataValue) bool {
	return Equal(a.Value, b.Value) &&
		a.StatusCode == b.StatusCode &&
		a.SourceTimestamp.Equal(b.SourceTimestamp) &&
		a.SourcePicoseconds == b.SourcePicoseconds &&
		a.ServerTimestamp.Equal(b.ServerTimestamp) &&
		a.ServerPicoseconds == b.ServerPicoseconds
}
