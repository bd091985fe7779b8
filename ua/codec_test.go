package ua

import (
	"bytes"
	"strings"
	"testing"
	"time"

	uuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEvent exercises every field kind the codecs carry. It is
// registered under private ids so it can travel through the public
// Encode/Decode entry points.
type testEvent struct {
	Message   string
	Severity  uint16
	Count     int64
	Ratio     float64
	When      time.Time
	SessionID uuid.UUID
	Payload   ByteString
	Source    NodeID
	Target    ExpandedNodeID
	Status    StatusCode
	Browse    QualifiedName
	Display   LocalizedText
	Value     Variant
	Sample    DataValue
	Diag      DiagnosticInfo
	Tags      []string
	Readings  []float64
}

func (m *testEvent) EncodeTo(enc Encoder) error {
	if err := enc.WriteString("Message", m.Message); err != nil {
		return err
	}
	if err := enc.WriteUInt16("Severity", m.Severity); err != nil {
		return err
	}
	if err := enc.WriteInt64("Count", m.Count); err != nil {
		return err
	}
	if err := enc.WriteDouble("Ratio", m.Ratio); err != nil {
		return err
	}
	if err := enc.WriteDateTime("When", m.When); err != nil {
		return err
	}
	if err := enc.WriteGUID("SessionId", m.SessionID); err != nil {
		return err
	}
	if err := enc.WriteByteString("Payload", m.Payload); err != nil {
		return err
	}
	if err := enc.WriteNodeID("Source", m.Source); err != nil {
		return err
	}
	if err := enc.WriteExpandedNodeID("Target", m.Target); err != nil {
		return err
	}
	if err := enc.WriteStatusCode("Status", m.Status); err != nil {
		return err
	}
	if err := enc.WriteQualifiedName("Browse", m.Browse); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("Display", m.Display); err != nil {
		return err
	}
	if err := enc.WriteVariant("Value", m.Value); err != nil {
		return err
	}
	if err := enc.WriteDataValue("Sample", m.Sample); err != nil {
		return err
	}
	if err := enc.WriteDiagnosticInfo("Diag", m.Diag); err != nil {
		return err
	}
	if err := enc.WriteStringArray("Tags", m.Tags); err != nil {
		return err
	}
	return enc.WriteDoubleArray("Readings", m.Readings)
}

func (m *testEvent) DecodeFrom(dec Decoder) error {
	if err := dec.ReadString("Message", &m.Message); err != nil {
		return err
	}
	if err := dec.ReadUInt16("Severity", &m.Severity); err != nil {
		return err
	}
	if err := dec.ReadInt64("Count", &m.Count); err != nil {
		return err
	}
	if err := dec.ReadDouble("Ratio", &m.Ratio); err != nil {
		return err
	}
	if err := dec.ReadDateTime("When", &m.When); err != nil {
		return err
	}
	if err := dec.ReadGUID("SessionId", &m.SessionID); err != nil {
		return err
	}
	if err := dec.ReadByteString("Payload", &m.Payload); err != nil {
		return err
	}
	if err := dec.ReadNodeID("Source", &m.Source); err != nil {
		return err
	}
	if err := dec.ReadExpandedNodeID("Target", &m.Target); err != nil {
		return err
	}
	if err := dec.ReadStatusCode("Status", &m.Status); err != nil {
		return err
	}
	if err := dec.ReadQualifiedName("Browse", &m.Browse); err != nil {
		return err
	}
	if err := dec.ReadLocalizedText("Display", &m.Display); err != nil {
		return err
	}
	if err := dec.ReadVariant("Value", &m.Value); err != nil {
		return err
	}
	if err := dec.ReadDataValue("Sample", &m.Sample); err != nil {
		return err
	}
	if err := dec.ReadDiagnosticInfo("Diag", &m.Diag); err != nil {
		return err
	}
	if err := dec.ReadStringArray("Tags", &m.Tags); err != nil {
		return err
	}
	return dec.ReadDoubleArray("Readings", &m.Readings)
}

func init() {
	RegisterEncodeable(TypeRegistration{
		Name:     "TestEvent",
		New:      func() Encodeable { return new(testEvent) },
		BinaryID: NewExpandedNodeID(NewNodeIDNumeric(0, 62541)),
		XMLID:    NewExpandedNodeID(NewNodeIDNumeric(0, 62542)),
		JSONID:   NewExpandedNodeID(NewNodeIDNumeric(0, 62543)),
	})
}

func makeTestEvent() *testEvent {
	symbolic := int32(11)
	locale := int32(2)
	text := int32(7)
	info := "value held over from the previous scan"
	innerCode := BadDataLost
	innerSym := int32(3)
	inner := DiagnosticInfo{SymbolicID: &innerSym}
	return &testEvent{
		Message:   "pump pressure drift",
		Severity:  350,
		Count:     9007199254740993,
		Ratio:     2.5,
		When:      time.Date(2023, 11, 5, 8, 30, 15, 500000000, time.UTC),
		SessionID: uuid.MustParse("72962b91-fa75-4ae6-8d28-b404dc7daf63"),
		Payload:   ByteString("\x01\x02\x03"),
		Source:    NewNodeIDString(2, "Demo.Static.Scalar"),
		Target:    ExpandedNodeID{NamespaceURI: "http://example.com/instruments", NodeID: NewNodeIDNumeric(0, 42)},
		Status:    BadDataLost,
		Browse:    NewQualifiedName(2, "Pressure"),
		Display:   LocalizedText{Text: "Pressure", Locale: "en"},
		Value:     []int32{2, 4, 8},
		Sample: DataValue{
			Value:           uint32(12345678),
			StatusCode:      BadDataLost,
			SourceTimestamp: time.Date(2023, 11, 5, 8, 30, 15, 0, time.UTC),
			ServerTimestamp: time.Date(2023, 11, 5, 8, 30, 16, 0, time.UTC),
		},
		Diag: DiagnosticInfo{
			SymbolicID:          &symbolic,
			Locale:              &locale,
			LocalizedText:       &text,
			AdditionalInfo:      &info,
			InnerStatusCode:     &innerCode,
			InnerDiagnosticInfo: &inner,
		},
		Tags:     []string{"boiler", "loop-7"},
		Readings: []float64{1.5, -2.25, 0},
	}
}

func assertEventEqual(t *testing.T, want, got *testEvent) {
	t.Helper()
	assert.Equal(t, want.Message, got.Message)
	assert.Equal(t, want.Severity, got.Severity)
	assert.Equal(t, want.Count, got.Count)
	assert.Equal(t, want.Ratio, got.Ratio)
	assert.True(t, want.When.Equal(got.When), "When: want %v, got %v", want.When, got.When)
	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Payload, got.Payload)
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.Target, got.Target)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Browse, got.Browse)
	assert.Equal(t, want.Display, got.Display)
	assert.True(t, Equal(want.Value, got.Value), "Value: want %v, got %v", want.Value, got.Value)
	assert.True(t, Equal(want.Sample, got.Sample), "Sample: want %v, got %v", want.Sample, got.Sample)
	assert.Equal(t, want.Diag, got.Diag)
	assert.Equal(t, want.Tags, got.Tags)
	assert.Equal(t, want.Readings, got.Readings)
}

func TestRoundTripBinary(t *testing.T) {
	want := makeTestEvent()
	ec := NewEncodingContext()
	ec.AddNamespaceURI("http://example.com/app")

	b, err := Encode(want, ec, FormatBinary)
	require.NoError(t, err)

	got, err := Decode(b, NewEncodingContext(), FormatBinary)
	require.NoError(t, err)
	assertEventEqual(t, want, got.(*testEvent))
}

func TestRoundTripXML(t *testing.T) {
	want := makeTestEvent()
	ec := NewEncodingContext()
	ec.AddNamespaceURI("http://example.com/app")

	b, err := Encode(want, ec, FormatXML)
	require.NoError(t, err)

	got, err := Decode(b, NewEncodingContext(), FormatXML)
	require.NoError(t, err)
	assertEventEqual(t, want, got.(*testEvent))
}

func TestRoundTripJSON(t *testing.T) {
	for _, v := range []JSONVariant{JSONReversible, JSONCompact, JSONVerbose} {
		t.Run(v.String(), func(t *testing.T) {
			want := makeTestEvent()
			ec := NewEncodingContext()
			ec.AddNamespaceURI("http://example.com/app")

			b, err := Encode(want, ec, FormatJSON, WithJSONVariant(v))
			require.NoError(t, err)

			got, err := Decode(b, NewEncodingContext(), FormatJSON)
			require.NoError(t, err)
			assertEventEqual(t, want, got.(*testEvent))
		})
	}
}

func TestReencodeBinaryIdentical(t *testing.T) {
	want := makeTestEvent()
	ec := NewEncodingContext()
	ec.AddNamespaceURI("http://example.com/app")

	b1, err := Encode(want, ec, FormatBinary)
	require.NoError(t, err)

	got, err := Decode(b1, NewEncodingContext(), FormatBinary)
	require.NoError(t, err)

	b2, err := Encode(got.(*testEvent), ec, FormatBinary)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(b1, b2), "re-encode differs")
}

func TestRegisteredCatalogRoundTrip(t *testing.T) {
	msgs := []Encodeable{
		&Range{Low: -40, High: 85},
		&EUInformation{
			NamespaceURI: "http://www.opcfoundation.org/UA/units/un/cefact",
			UnitID:       4408652,
			DisplayName:  LocalizedText{Text: "°C"},
			Description:  LocalizedText{Text: "degree Celsius"},
		},
		&Argument{
			Name:            "SetPoint",
			DataType:        NewNodeIDNumeric(0, 11),
			ValueRank:       -1,
			ArrayDimensions: []uint32{3},
			Description:     LocalizedText{Text: "target value"},
		},
	}
	for _, format := range []Format{FormatBinary, FormatXML, FormatJSON} {
		for _, want := range msgs {
			b, err := Encode(want, NewEncodingContext(), format)
			require.NoError(t, err, "%s", format)
			got, err := Decode(b, NewEncodingContext(), format)
			require.NoError(t, err, "%s", format)
			assert.Equal(t, want, got, "%s", format)
		}
	}
}

func TestDecodeExpectedType(t *testing.T) {
	b, err := Encode(&Range{Low: 1, High: 2}, NewEncodingContext(), FormatBinary)
	require.NoError(t, err)

	_, err = Decode(b, NewEncodingContext(), FormatBinary, WithExpectedType("Range"))
	assert.NoError(t, err)

	_, err = Decode(b, NewEncodingContext(), FormatBinary, WithExpectedType("EUInformation"))
	assert.ErrorIs(t, err, BadDecodingError)
}

func TestDecodeUnknownTypeID(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, NewEncodingContext())
	require.NoError(t, enc.WriteNodeID("TypeId", NewNodeIDNumeric(0, 59997)))

	_, err := Decode(buf.Bytes(), NewEncodingContext(), FormatBinary)
	assert.ErrorIs(t, err, BadDataTypeIDUnknown)
}

func TestJSONVariantOptionRejectedElsewhere(t *testing.T) {
	msg := &Range{Low: 1, High: 2}
	_, err := Encode(msg, NewEncodingContext(), FormatBinary, WithJSONVariant(JSONCompact))
	assert.ErrorIs(t, err, BadNotSupported)
	_, err = Encode(msg, NewEncodingContext(), FormatXML, WithJSONVariant(JSONCompact))
	assert.ErrorIs(t, err, BadNotSupported)
}

func TestNonReversibleIsEncodeOnly(t *testing.T) {
	want := makeTestEvent()
	ec := NewEncodingContext()
	b, err := Encode(want, ec, FormatJSON, WithJSONVariant(JSONNonReversible))
	require.NoError(t, err)

	s := string(b)
	assert.False(t, strings.Contains(s, `"TypeId"`), "display rendering must not carry the envelope: %s", s)

	_, err = Decode(b, NewEncodingContext(), FormatJSON)
	assert.Error(t, err)
}
