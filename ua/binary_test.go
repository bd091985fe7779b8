package ua

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	uuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeBytes(t *testing.T, ec *EncodingContext, write func(enc *BinaryEncoder) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, ec)
	require.NoError(t, write(enc))
	return buf.Bytes()
}

func TestBinaryNodeIDForms(t *testing.T) {
	ec := NewEncodingContext()
	cases := []struct {
		name string
		id   NodeID
		want []byte
	}{
		{"two byte", NewNodeIDNumeric(0, 255), []byte{0x00, 0xFF}},
		{"four byte", NewNodeIDNumeric(1, 1025), []byte{0x01, 0x01, 0x01, 0x04}},
		{"numeric", NewNodeIDNumeric(2, 70000), []byte{0x02, 0x02, 0x00, 0x70, 0x11, 0x01, 0x00}},
		{"string", NewNodeIDString(2, "abc"), []byte{0x03, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'}},
		{"opaque", NewNodeIDOpaque(1, ByteString("\x01\x02")), []byte{0x05, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0x02}},
		{"null", nil, []byte{0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
				return enc.WriteNodeID("", tc.id)
			})
			assert.Equal(t, tc.want, b)

			dec := NewBinaryDecoder(bytes.NewReader(b), ec)
			var got NodeID
			require.NoError(t, dec.ReadNodeID("", &got))
			if tc.id == nil {
				assert.Equal(t, NewNodeIDNumeric(0, 0), got)
			} else {
				assert.Equal(t, tc.id, got)
			}
		})
	}
}

func TestBinaryNodeIDGUIDByteOrder(t *testing.T) {
	ec := NewEncodingContext()
	id := uuid.MustParse("72962B91-FA75-4AE6-8D28-B404DC7DAF63")
	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteGUID("", id)
	})
	// the first three groups are little-endian, the rest is verbatim
	want := []byte{
		0x91, 0x2B, 0x96, 0x72, 0x75, 0xFA, 0xE6, 0x4A,
		0x8D, 0x28, 0xB4, 0x04, 0xDC, 0x7D, 0xAF, 0x63,
	}
	assert.Equal(t, want, b)

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got uuid.UUID
	require.NoError(t, dec.ReadGUID("", &got))
	assert.Equal(t, id, got)
}

func TestBinaryExpandedNodeIDNamespaceURI(t *testing.T) {
	ec := NewEncodingContext()
	id := ExpandedNodeID{
		NamespaceURI: "http://example.com/alarms",
		NodeID:       NewNodeIDNumeric(3, 5),
	}
	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteExpandedNodeID("", id)
	})
	// the URI flag forces the namespace index to zero, so the two byte
	// form applies even though the node id carried index 3
	require.Equal(t, byte(0x80), b[0])
	require.Equal(t, byte(0x05), b[1])

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got ExpandedNodeID
	require.NoError(t, dec.ReadExpandedNodeID("", &got))
	assert.Equal(t, "http://example.com/alarms", got.NamespaceURI)
	assert.Equal(t, NewNodeIDNumeric(0, 5), got.NodeID)
	assert.Equal(t, uint32(0), got.ServerIndex)
}

func TestBinaryLocalizedTextMask(t *testing.T) {
	ec := NewEncodingContext()
	cases := []struct {
		name string
		lt   LocalizedText
		want []byte
	}{
		{"empty", LocalizedText{}, []byte{0x00}},
		{"locale only", LocalizedText{Locale: "en"}, []byte{0x01, 0x02, 0x00, 0x00, 0x00, 'e', 'n'}},
		{"text only", LocalizedText{Text: "hi"}, []byte{0x02, 0x02, 0x00, 0x00, 0x00, 'h', 'i'}},
		{"both", LocalizedText{Text: "hi", Locale: "en"}, []byte{0x03, 0x02, 0x00, 0x00, 0x00, 'e', 'n', 0x02, 0x00, 0x00, 0x00, 'h', 'i'}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
				return enc.WriteLocalizedText("", tc.lt)
			})
			assert.Equal(t, tc.want, b)

			dec := NewBinaryDecoder(bytes.NewReader(b), ec)
			var got LocalizedText
			require.NoError(t, dec.ReadLocalizedText("", &got))
			assert.Equal(t, tc.lt, got)
		})
	}
}

func TestBinaryDataValueMask(t *testing.T) {
	ec := NewEncodingContext()
	dv := DataValue{
		Value:           uint32(42),
		StatusCode:      BadDataLost,
		SourceTimestamp: time.Date(2023, 11, 5, 8, 30, 15, 0, time.UTC),
	}
	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteDataValue("", dv)
	})
	require.Equal(t, byte(0x07), b[0])
	require.Equal(t, VariantTypeUInt32, b[1])

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got DataValue
	require.NoError(t, dec.ReadDataValue("", &got))
	assert.Equal(t, dv.Value, got.Value)
	assert.Equal(t, dv.StatusCode, got.StatusCode)
	assert.True(t, got.SourceTimestamp.Equal(dv.SourceTimestamp))
	assert.True(t, got.ServerTimestamp.IsZero())
}

func TestBinaryDateTimeClamps(t *testing.T) {
	ec := NewEncodingContext()

	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteDateTime("", time.Time{})
	})
	assert.Equal(t, make([]byte, 8), b)

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got time.Time
	require.NoError(t, dec.ReadDateTime("", &got))
	assert.Equal(t, time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC), got)

	b = encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteDateTime("", time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	})
	var sentinel [8]byte
	binary.LittleEndian.PutUint64(sentinel[:], uint64(1)<<63-1)
	assert.Equal(t, sentinel[:], b)

	dec = NewBinaryDecoder(bytes.NewReader(b), ec)
	require.NoError(t, dec.ReadDateTime("", &got))
	assert.Equal(t, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC), got)
}

func TestBinaryDiagnosticInfoDepth(t *testing.T) {
	ec := NewEncodingContext()
	sym := int32(7)
	info := DiagnosticInfo{SymbolicID: &sym}
	for i := 0; i < 4; i++ {
		inner := info
		info = DiagnosticInfo{SymbolicID: &sym, InnerDiagnosticInfo: &inner}
	}
	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteDiagnosticInfo("", info)
	})

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got DiagnosticInfo
	require.NoError(t, dec.ReadDiagnosticInfo("", &got))
	assert.Equal(t, info, got)

	limited := NewEncodingContext()
	limits := DefaultEncodingLimits()
	limits.MaxRecursionDepth = 4
	limited.SetLimits(limits)
	dec = NewBinaryDecoder(bytes.NewReader(b), limited)
	assert.ErrorIs(t, dec.ReadDiagnosticInfo("", &got), BadEncodingLimitsExceeded)
}

func TestBinaryStringLimit(t *testing.T) {
	ec := NewEncodingContext()
	limits := DefaultEncodingLimits()
	limits.MaxStringLength = 10
	ec.SetLimits(limits)

	// a declared length of 2000 with no payload behind it must be
	// rejected before any allocation is attempted
	wire := []byte{0xD0, 0x07, 0x00, 0x00}
	dec := NewBinaryDecoder(bytes.NewReader(wire), ec)
	var s string
	assert.ErrorIs(t, dec.ReadString("", &s), BadEncodingLimitsExceeded)
}

func TestBinaryByteStringLimit(t *testing.T) {
	ec := NewEncodingContext()
	limits := DefaultEncodingLimits()
	limits.MaxByteStringLength = 10
	ec.SetLimits(limits)

	wire := []byte{0xD0, 0x07, 0x00, 0x00} // declares 2000 bytes
	dec := NewBinaryDecoder(bytes.NewReader(wire), ec)
	var bs ByteString
	assert.ErrorIs(t, dec.ReadByteString("", &bs), BadEncodingLimitsExceeded)
}

func TestBinaryArrayLimit(t *testing.T) {
	ec := NewEncodingContext()
	wire := []byte{0x40, 0x42, 0x0F, 0x00} // 1e6 elements, default cap is 65536
	dec := NewBinaryDecoder(bytes.NewReader(wire), ec)
	var v []int32
	assert.ErrorIs(t, dec.ReadInt32Array("", &v), BadEncodingLimitsExceeded)
}

func TestBinaryMatrixVariant(t *testing.T) {
	ec := NewEncodingContext()
	m, err := NewMatrix([]int32{1, 2, 3, 4, 5, 6}, []int32{2, 3})
	require.NoError(t, err)

	b := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteVariant("", m)
	})
	require.Equal(t, VariantTypeInt32|0xC0, b[0])

	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var got Variant
	require.NoError(t, dec.ReadVariant("", &got))
	assert.Equal(t, Variant(m), got)
}

func TestBinaryMatrixInvalid(t *testing.T) {
	_, err := NewMatrix([]int32{1, 2, 3}, []int32{4})
	assert.ErrorIs(t, err, BadInvalidArgument)

	_, err = NewMatrix([]int32{1, 2, 3}, []int32{2, 2})
	assert.ErrorIs(t, err, BadInvalidArgument)

	// a hand-built Matrix that skipped validation fails on encode
	bad := Matrix{Elements: []int32{1, 2, 3}, Dimensions: []int32{2, 2}}
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, NewEncodingContext())
	assert.ErrorIs(t, enc.WriteVariant("", bad), BadEncodingError)
}

func TestBinaryVariantBadBytes(t *testing.T) {
	ec := NewEncodingContext()
	cases := []struct {
		name string
		wire []byte
	}{
		{"type out of range", []byte{26}},
		{"dimensions without array bit", []byte{VariantTypeInt32 | 0x40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dec := NewBinaryDecoder(bytes.NewReader(tc.wire), ec)
			var v Variant
			assert.ErrorIs(t, dec.ReadVariant("", &v), BadDecodingError)
		})
	}
}

func TestBinaryUnknownExtensionObjectPreserved(t *testing.T) {
	ec := NewEncodingContext()
	wire := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		if err := enc.WriteNodeID("", NewNodeIDNumeric(0, 59996)); err != nil {
			return err
		}
		if err := enc.WriteByte("", 0x01); err != nil {
			return err
		}
		return enc.WriteByteString("", ByteString("\xDE\xAD\xBE\xEF"))
	})

	dec := NewBinaryDecoder(bytes.NewReader(wire), ec)
	var eo ExtensionObject
	require.NoError(t, dec.ReadExtensionObject("", &eo))
	assert.Equal(t, ByteString("\xDE\xAD\xBE\xEF"), eo.Body)

	again := encodeBytes(t, ec, func(enc *BinaryEncoder) error {
		return enc.WriteExtensionObject("", eo)
	})
	assert.Equal(t, wire, again)
}

func TestBinaryJSONBodyRejected(t *testing.T) {
	eo := ExtensionObject{
		TypeID: NewExpandedNodeID(NewNodeIDNumeric(0, 59995)),
		Body:   JSONElement(`{"a":1}`),
	}
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, NewEncodingContext())
	assert.ErrorIs(t, enc.WriteExtensionObject("", eo), BadEncodingError)
}
