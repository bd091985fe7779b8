package ua

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONInt64Quoted(t *testing.T) {
	ec := NewEncodingContext()
	b, err := Encode(makeTestEvent(), ec, FormatJSON)
	require.NoError(t, err)
	// 9007199254740993 is not representable as a float64, so lossless
	// variants must carry it as a string
	assert.Contains(t, string(b), `"Count":"9007199254740993"`)
}

func TestJSONCompactShortNames(t *testing.T) {
	ec := NewEncodingContext()
	b, err := Encode(makeTestEvent(), ec, FormatJSON, WithJSONVariant(JSONCompact))
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, `{"ti":`), "envelope should use the short TypeId spelling: %s", s[:40])
	assert.Contains(t, s, `,"b":{`)
	assert.NotContains(t, s, `"TypeId"`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	assertEventEqual(t, makeTestEvent(), got.(*testEvent))
}

func TestJSONNaNVariant(t *testing.T) {
	ec := NewEncodingContext()
	ev := makeTestEvent()
	ev.Value = math.NaN()
	b, err := Encode(ev, ec, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"NaN"`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	f, ok := got.(*testEvent).Value.(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))
}

func TestJSONVerboseStatusSymbol(t *testing.T) {
	ec := NewEncodingContext()
	b, err := Encode(makeTestEvent(), ec, FormatJSON, WithJSONVariant(JSONVerbose))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Symbol":"BadDataLost"`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	assertEventEqual(t, makeTestEvent(), got.(*testEvent))
}

func TestJSONNonReversibleShape(t *testing.T) {
	ec := NewEncodingContext()
	b, err := Encode(makeTestEvent(), ec, FormatJSON, WithJSONVariant(JSONNonReversible))
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"Count":9007199254740993`)
	assert.Contains(t, s, `"Display":"Pressure"`)
	assert.Contains(t, s, `"Symbol":"BadDataLost"`)
}

func TestJSONDefaultSuppression(t *testing.T) {
	ec := NewEncodingContext()
	ev := &testEvent{Message: "x"}

	b, err := Encode(ev, ec, FormatJSON)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"Message":"x"`)
	assert.NotContains(t, s, `"Severity"`)
	assert.NotContains(t, s, `"Count"`)
	assert.NotContains(t, s, `"When"`)

	b, err = Encode(ev, ec, FormatJSON, IncludeDefaultValues(), IncludeDefaultNumberValues())
	require.NoError(t, err)
	s = string(b)
	assert.Contains(t, s, `"Severity":0`)
	assert.Contains(t, s, `"Count":"0"`)
	assert.Contains(t, s, `"When":"0001-01-01T00:00:00Z"`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "x", got.(*testEvent).Message)
	assert.True(t, got.(*testEvent).When.IsZero())
}

func TestJSONDateTimeSentinels(t *testing.T) {
	ec := NewEncodingContext()
	ev := makeTestEvent()
	ev.When = time.Date(9999, 12, 31, 23, 59, 59, 999999900, time.UTC)
	b, err := Encode(ev, ec, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"When":"9999-12-31T23:59:59Z"`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 9999, got.(*testEvent).When.Year())
}

func TestJSONOpaqueBodyPreserved(t *testing.T) {
	ec := NewEncodingContext()
	ev := makeTestEvent()
	ev.Value = ExtensionObject{
		TypeID: NewExpandedNodeID(NewNodeIDNumeric(0, 59994)),
		Body:   JSONElement(`{"Custom":1}`),
	}
	b, err := Encode(ev, ec, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(b), `{"Custom":1}`)

	got, err := Decode(b, ec, FormatJSON)
	require.NoError(t, err)
	eo, ok := got.(*testEvent).Value.(ExtensionObject)
	require.True(t, ok)
	assert.Equal(t, ev.Value.(ExtensionObject).TypeID, eo.TypeID)
	assert.Equal(t, JSONElement(`{"Custom":1}`), eo.Body)

	again, err := Encode(got, ec, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(again), `{"Custom":1}`)
}

func TestJSONUnknownTopLevelType(t *testing.T) {
	ec := NewEncodingContext()
	_, err := Decode([]byte(`{"TypeId":{"Id":59993},"Body":{}}`), ec, FormatJSON)
	assert.ErrorIs(t, err, BadDataTypeIDUnknown)
}

func TestJSONNumberRangeChecked(t *testing.T) {
	ec := NewEncodingContext()

	// Severity is a UInt16; an oversized literal must fail, not wrap
	_, err := Decode([]byte(`{"TypeId":{"Id":62543},"Body":{"Severity":70000}}`), ec, FormatJSON)
	assert.ErrorIs(t, err, BadDecodingError)

	// an out-of-range discriminator must not alias a valid variant type
	_, err = Decode([]byte(`{"TypeId":{"Id":62543},"Body":{"Value":{"Type":261,"Body":7}}}`), ec, FormatJSON)
	assert.ErrorIs(t, err, BadDecodingError)

	_, err = jsonToInt(float64(128), 8)
	assert.ErrorIs(t, err, BadDecodingError)
	n, err := jsonToInt(float64(-128), 8)
	assert.NoError(t, err)
	assert.Equal(t, int64(-128), n)

	_, err = jsonToUint(float64(256), 8)
	assert.ErrorIs(t, err, BadDecodingError)
	u, err := jsonToUint(float64(255), 8)
	assert.NoError(t, err)
	assert.Equal(t, uint64(255), u)
}

func TestJSONByteStringLimit(t *testing.T) {
	ec := NewEncodingContext()
	limits := DefaultEncodingLimits()
	limits.MaxByteStringLength = 4
	ec.SetLimits(limits)

	dec := NewJSONDecoder(map[string]interface{}{"Payload": "AQIDBAUGBwg="}, ec)
	var bs ByteString
	assert.ErrorIs(t, dec.ReadByteString("Payload", &bs), BadEncodingLimitsExceeded)
}

func TestJSONMalformedInput(t *testing.T) {
	ec := NewEncodingContext()
	_, err := Decode([]byte(`{"TypeId"`), ec, FormatJSON)
	assert.ErrorIs(t, err, BadDecodingError)
}
