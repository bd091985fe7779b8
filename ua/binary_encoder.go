package ua

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/djherbis/buffer"
	uuid "github.com/google/uuid"
)

// BinaryEncoder encodes the UA Binary protocol. An encoder is bound to
// one stream and is not safe for concurrent use; distinct encoders on
// distinct streams run fully in parallel.
type BinaryEncoder struct {
	w  io.Writer
	ec *EncodingContext
	bs [8]byte
}

// NewBinaryEncoder returns a new encoder that writes to an io.Writer.
// When w implements buffer.BufferAt, extension object body lengths are
// back-patched in place instead of staged through a scratch buffer.
func NewBinaryEncoder(w io.Writer, ec *EncodingContext) *BinaryEncoder {
	return &BinaryEncoder{w, ec, [8]byte{}}
}

var _ Encoder = (*BinaryEncoder)(nil)

// WriteBoolean writes a boolean.
func (enc *BinaryEncoder) WriteBoolean(name string, value bool) error {
	if value {
		enc.bs[0] = 1
	} else {
		enc.bs[0] = 0
	}
	if _, err := enc.w.Write(enc.bs[:1]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteSByte writes a sbyte.
func (enc *BinaryEncoder) WriteSByte(name string, value int8) error {
	enc.bs[0] = byte(value)
	if _, err := enc.w.Write(enc.bs[:1]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteByte writes a byte.
func (enc *BinaryEncoder) WriteByte(name string, value byte) error {
	enc.bs[0] = value
	if _, err := enc.w.Write(enc.bs[:1]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteInt16 writes an int16.
func (enc *BinaryEncoder) WriteInt16(name string, value int16) error {
	binary.LittleEndian.PutUint16(enc.bs[:2], uint16(value))
	if _, err := enc.w.Write(enc.bs[:2]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteUInt16 writes a uint16.
func (enc *BinaryEncoder) WriteUInt16(name string, value uint16) error {
	binary.LittleEndian.PutUint16(enc.bs[:2], value)
	if _, err := enc.w.Write(enc.bs[:2]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteInt32 writes an int32.
func (enc *BinaryEncoder) WriteInt32(name string, value int32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], uint32(value))
	if _, err := enc.w.Write(enc.bs[:4]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteUInt32 writes a uint32.
func (enc *BinaryEncoder) WriteUInt32(name string, value uint32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], value)
	if _, err := enc.w.Write(enc.bs[:4]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteInt64 writes an int64.
func (enc *BinaryEncoder) WriteInt64(name string, value int64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], uint64(value))
	if _, err := enc.w.Write(enc.bs[:8]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteUInt64 writes a uint64.
func (enc *BinaryEncoder) WriteUInt64(name string, value uint64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], value)
	if _, err := enc.w.Write(enc.bs[:8]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteFloat writes a float32.
func (enc *BinaryEncoder) WriteFloat(name string, value float32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], math.Float32bits(value))
	if _, err := enc.w.Write(enc.bs[:4]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteDouble writes a float64.
func (enc *BinaryEncoder) WriteDouble(name string, value float64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], math.Float64bits(value))
	if _, err := enc.w.Write(enc.bs[:8]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteString writes a length-prefixed string; empty writes the null
// length -1.
func (enc *BinaryEncoder) WriteString(name string, value string) error {
	if len(value) == 0 {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	if _, err := io.WriteString(enc.w, value); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteDateTime writes a date/time as 100 ns ticks since 1601-01-01 UTC.
// Times before the epoch clamp to the minimum tick, times beyond the
// representable maximum clamp to the end-of-time sentinel.
func (enc *BinaryEncoder) WriteDateTime(name string, value time.Time) error {
	ticks := (value.Unix()+11644473600)*10000000 + int64(value.Nanosecond())/100
	if ticks < 0 {
		ticks = 0
	}
	if ticks >= 2650467743990000000 {
		ticks = math.MaxInt64
	}
	if err := enc.WriteInt64(name, ticks); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteGUID writes a UUID. The first three groups are little-endian.
func (enc *BinaryEncoder) WriteGUID(name string, value uuid.UUID) error {
	enc.bs[0] = value[3]
	enc.bs[1] = value[2]
	enc.bs[2] = value[1]
	enc.bs[3] = value[0]
	enc.bs[4] = value[5]
	enc.bs[5] = value[4]
	enc.bs[6] = value[7]
	enc.bs[7] = value[6]
	if _, err := enc.w.Write(enc.bs[:8]); err != nil {
		return BadEncodingError
	}
	if _, err := enc.w.Write(value[8:]); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteByteString writes a ByteString.
func (enc *BinaryEncoder) WriteByteString(name string, value ByteString) error {
	if len(value) == 0 {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	if _, err := io.WriteString(enc.w, string(value)); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteXMLElement writes an XMLElement.
func (enc *BinaryEncoder) WriteXMLElement(name string, value XMLElement) error {
	return enc.WriteString(name, string(value))
}

// WriteNodeID writes a NodeID, choosing the most compact of the four
// sub-encodings the value fits in.
func (enc *BinaryEncoder) WriteNodeID(name string, value NodeID) error {
	switch value2 := value.(type) {
	case NodeIDNumeric:
		switch {
		case value2.ID <= 255 && value2.NamespaceIndex == 0:
			if err := enc.WriteByte(name, 0x00); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteByte(name, byte(value2.ID)); err != nil {
				return BadEncodingError
			}
		case value2.ID <= 65535 && value2.NamespaceIndex <= 255:
			if err := enc.WriteByte(name, 0x01); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteByte(name, byte(value2.NamespaceIndex)); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt16(name, uint16(value2.ID)); err != nil {
				return BadEncodingError
			}
		default:
			if err := enc.WriteByte(name, 0x02); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt16(name, value2.NamespaceIndex); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt32(name, value2.ID); err != nil {
				return BadEncodingError
			}
		}
	case NodeIDString:
		if err := enc.WriteByte(name, 0x03); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, value2.NamespaceIndex); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteString(name, value2.ID); err != nil {
			return BadEncodingError
		}
	case NodeIDGUID:
		if err := enc.WriteByte(name, 0x04); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, value2.NamespaceIndex); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteGUID(name, value2.ID); err != nil {
			return BadEncodingError
		}
	case NodeIDOpaque:
		if err := enc.WriteByte(name, 0x05); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, value2.NamespaceIndex); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByteString(name, value2.ID); err != nil {
			return BadEncodingError
		}
	default:
		// null node id, 2-byte form with id 0
		if err := enc.WriteUInt16(name, 0); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteExpandedNodeID writes an ExpandedNodeID. The namespace URI and
// server index flags ride on the sub-encoding byte.
func (enc *BinaryEncoder) WriteExpandedNodeID(name string, value ExpandedNodeID) error {
	var b byte
	if value.ServerIndex > 0 {
		b |= 0x40
	}
	if len(value.NamespaceURI) > 0 {
		b |= 0x80
	}
	ns := namespaceIndexOf(value.NodeID)
	if (b & 0x80) != 0 {
		ns = 0
	}
	switch value2 := value.NodeID.(type) {
	case NodeIDNumeric:
		switch {
		case value2.ID <= 255 && ns == 0:
			if err := enc.WriteByte(name, 0x00|b); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteByte(name, byte(value2.ID)); err != nil {
				return BadEncodingError
			}
		case value2.ID <= 65535 && ns <= 255:
			if err := enc.WriteByte(name, 0x01|b); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteByte(name, byte(ns)); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt16(name, uint16(value2.ID)); err != nil {
				return BadEncodingError
			}
		default:
			if err := enc.WriteByte(name, 0x02|b); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt16(name, ns); err != nil {
				return BadEncodingError
			}
			if err := enc.WriteUInt32(name, value2.ID); err != nil {
				return BadEncodingError
			}
		}
	case NodeIDString:
		if err := enc.WriteByte(name, 0x03|b); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, ns); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteString(name, value2.ID); err != nil {
			return BadEncodingError
		}
	case NodeIDGUID:
		if err := enc.WriteByte(name, 0x04|b); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, ns); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteGUID(name, value2.ID); err != nil {
			return BadEncodingError
		}
	case NodeIDOpaque:
		if err := enc.WriteByte(name, 0x05|b); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteUInt16(name, ns); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByteString(name, value2.ID); err != nil {
			return BadEncodingError
		}
	default:
		if err := enc.WriteByte(name, 0x00|b); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByte(name, 0); err != nil {
			return BadEncodingError
		}
	}
	if (b & 0x80) != 0 {
		if err := enc.WriteString(name, value.NamespaceURI); err != nil {
			return BadEncodingError
		}
	}
	if (b & 0x40) != 0 {
		if err := enc.WriteUInt32(name, value.ServerIndex); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteStatusCode writes a StatusCode.
func (enc *BinaryEncoder) WriteStatusCode(name string, value StatusCode) error {
	return enc.WriteUInt32(name, uint32(value))
}

// WriteQualifiedName writes a QualifiedName.
func (enc *BinaryEncoder) WriteQualifiedName(name string, value QualifiedName) error {
	if err := enc.WriteUInt16(name, value.NamespaceIndex); err != nil {
		return BadEncodingError
	}
	return enc.WriteString(name, value.Name)
}

// WriteLocalizedText writes a LocalizedText. A presence mask selects
// the locale and text fields.
func (enc *BinaryEncoder) WriteLocalizedText(name string, value LocalizedText) error {
	var b byte
	if value.Locale != "" {
		b |= 1
	}
	if value.Text != "" {
		b |= 2
	}
	if err := enc.WriteByte(name, b); err != nil {
		return BadEncodingError
	}
	if (b & 1) != 0 {
		if err := enc.WriteString(name, value.Locale); err != nil {
			return BadEncodingError
		}
	}
	if (b & 2) != 0 {
		if err := enc.WriteString(name, value.Text); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteExtensionObject writes an ExtensionObject. A decoded body is
// encoded through its registration; an opaque ByteString or XMLElement
// body is replayed verbatim, so unknown types re-encode byte-identical.
func (enc *BinaryEncoder) WriteExtensionObject(name string, value ExtensionObject) error {
	switch body := value.Body.(type) {
	case nil:
		if err := enc.WriteNodeID(name, ToNodeID(value.TypeID, enc.ec.NamespaceURIs())); err != nil {
			return BadEncodingError
		}
		return enc.WriteByte(name, 0x00)
	case ByteString:
		if err := enc.WriteNodeID(name, ToNodeID(value.TypeID, enc.ec.NamespaceURIs())); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByte(name, 0x01); err != nil {
			return BadEncodingError
		}
		return enc.WriteByteString(name, body)
	case XMLElement:
		if err := enc.WriteNodeID(name, ToNodeID(value.TypeID, enc.ec.NamespaceURIs())); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByte(name, 0x02); err != nil {
			return BadEncodingError
		}
		return enc.WriteXMLElement(name, body)
	case Encodeable:
		id, ok := FindEncodingIDForType(FormatBinary, body)
		if !ok {
			return BadEncodingError
		}
		if err := enc.WriteNodeID(name, ToNodeID(id, enc.ec.NamespaceURIs())); err != nil {
			return BadEncodingError
		}
		if err := enc.WriteByte(name, 0x01); err != nil {
			return BadEncodingError
		}
		return enc.writeEncodeableBody(id, body)
	default:
		// a JSONElement or foreign body cannot be expressed in binary
		return BadEncodingError
	}
}

// writeEncodeableBody writes the length-prefixed body of a registered
// structured type, inside the namespace scope of its encoding id.
func (enc *BinaryEncoder) writeEncodeableBody(id ExpandedNodeID, body Encodeable) error {
	nsURI := id.NamespaceURI
	if nsURI == "" {
		if u, ok := enc.ec.NamespaceURI(namespaceIndexOf(id.NodeID)); ok {
			nsURI = u
		}
	}
	enc.ec.PushNamespace(nsURI)
	defer enc.ec.PopNamespace()

	// cast writer to BufferAt to back-patch the length in place
	if buf, ok := enc.w.(buffer.BufferAt); ok {
		mark := buf.Len() // where the length goes
		bs := make([]byte, 4)
		if _, err := buf.Write(bs); err != nil {
			return BadEncodingError
		}
		start := buf.Len()
		if err := body.EncodeTo(enc); err != nil {
			return err
		}
		end := buf.Len()
		binary.LittleEndian.PutUint32(bs, uint32(end-start))
		if _, err := buf.WriteAt(bs, mark); err != nil {
			return BadEncodingError
		}
		return nil
	}

	// fall back to staging the body in a pooled scratch buffer
	scratch := *(bytesPool.Get().(*[]byte))
	defer bytesPool.Put(&scratch)
	w := NewWriter(scratch)
	enc2 := NewBinaryEncoder(w, enc.ec)
	if err := body.EncodeTo(enc2); err != nil {
		return err
	}
	return enc.WriteByteArray("", w.Bytes())
}

// WriteDataValue writes a DataValue. The presence mask is inferred from
// which fields differ from their defaults.
func (enc *BinaryEncoder) WriteDataValue(name string, value DataValue) error {
	var b byte
	if value.Value != nil {
		b |= 1
	}
	if value.StatusCode != 0 {
		b |= 2
	}
	if !value.SourceTimestamp.IsZero() {
		b |= 4
	}
	if !value.ServerTimestamp.IsZero() {
		b |= 8
	}
	if value.SourcePicoseconds != 0 {
		b |= 16
	}
	if value.ServerPicoseconds != 0 {
		b |= 32
	}
	if err := enc.WriteByte(name, b); err != nil {
		return err
	}
	if (b & 1) != 0 {
		if err := enc.WriteVariant(name, value.Value); err != nil {
			return err
		}
	}
	if (b & 2) != 0 {
		if err := enc.WriteUInt32(name, uint32(value.StatusCode)); err != nil {
			return BadEncodingError
		}
	}
	if (b & 4) != 0 {
		if err := enc.WriteDateTime(name, value.SourceTimestamp); err != nil {
			return BadEncodingError
		}
	}
	if (b & 16) != 0 {
		if err := enc.WriteUInt16(name, value.SourcePicoseconds); err != nil {
			return BadEncodingError
		}
	}
	if (b & 8) != 0 {
		if err := enc.WriteDateTime(name, value.ServerTimestamp); err != nil {
			return BadEncodingError
		}
	}
	if (b & 32) != 0 {
		if err := enc.WriteUInt16(name, value.ServerPicoseconds); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteVariant writes a Variant. The encoding byte carries the element
// type, bit 0x80 for an array and bit 0x40 for attached dimensions.
func (enc *BinaryEncoder) WriteVariant(name string, value Variant) error {
	switch v1 := value.(type) {
	case nil:
		return enc.WriteByte(name, 0)
	case Matrix:
		if !v1.valid() {
			return BadEncodingError
		}
		t, _ := builtInTypeOf(v1.Elements)
		if t == VariantTypeNull {
			return BadEncodingError
		}
		if err := enc.WriteByte(name, t|0xC0); err != nil {
			return BadEncodingError
		}
		if err := enc.writeVariantElements(name, v1.Elements); err != nil {
			return err
		}
		return enc.WriteInt32Array(name, v1.Dimensions)
	case ExtensionObject:
		if err := enc.WriteByte(name, VariantTypeExtensionObject); err != nil {
			return BadEncodingError
		}
		return enc.WriteExtensionObject(name, v1)
	}
	t, isArray := builtInTypeOf(value)
	if t == VariantTypeNull {
		// wrap a registered struct in an ExtensionObject
		if body, ok := value.(Encodeable); ok {
			if err := enc.WriteByte(name, VariantTypeExtensionObject); err != nil {
				return BadEncodingError
			}
			return enc.WriteExtensionObject(name, NewExtensionObject(body))
		}
		return BadEncodingError
	}
	if isArray {
		if err := enc.WriteByte(name, t|0x80); err != nil {
			return BadEncodingError
		}
		return enc.writeVariantElements(name, value)
	}
	if err := enc.WriteByte(name, t); err != nil {
		return BadEncodingError
	}
	return enc.writeVariantScalar(name, value)
}

func (enc *BinaryEncoder) writeVariantScalar(name string, value Variant) error {
	switch v1 := value.(type) {
	case bool:
		return enc.WriteBoolean(name, v1)
	case int8:
		return enc.WriteSByte(name, v1)
	case uint8:
		return enc.WriteByte(name, v1)
	case int16:
		return enc.WriteInt16(name, v1)
	case uint16:
		return enc.WriteUInt16(name, v1)
	case int32:
		return enc.WriteInt32(name, v1)
	case uint32:
		return enc.WriteUInt32(name, v1)
	case int64:
		return enc.WriteInt64(name, v1)
	case uint64:
		return enc.WriteUInt64(name, v1)
	case float32:
		return enc.WriteFloat(name, v1)
	case float64:
		return enc.WriteDouble(name, v1)
	case string:
		return enc.WriteString(name, v1)
	case time.Time:
		return enc.WriteDateTime(name, v1)
	case uuid.UUID:
		return enc.WriteGUID(name, v1)
	case ByteString:
		return enc.WriteByteString(name, v1)
	case XMLElement:
		return enc.WriteXMLElement(name, v1)
	case NodeID:
		return enc.WriteNodeID(name, v1)
	case ExpandedNodeID:
		return enc.WriteExpandedNodeID(name, v1)
	case StatusCode:
		return enc.WriteStatusCode(name, v1)
	case QualifiedName:
		return enc.WriteQualifiedName(name, v1)
	case LocalizedText:
		return enc.WriteLocalizedText(name, v1)
	case DataValue:
		return enc.WriteDataValue(name, v1)
	case DiagnosticInfo:
		return enc.WriteDiagnosticInfo(name, v1)
	default:
		return BadEncodingError
	}
}

func (enc *BinaryEncoder) writeVariantElements(name string, value Variant) error {
	switch v1 := value.(type) {
	case []bool:
		return enc.WriteBooleanArray(name, v1)
	case []int8:
		return enc.WriteSByteArray(name, v1)
	case []byte:
		return enc.WriteByteArray(name, v1)
	case []int16:
		return enc.WriteInt16Array(name, v1)
	case []uint16:
		return enc.WriteUInt16Array(name, v1)
	case []int32:
		return enc.WriteInt32Array(name, v1)
	case []uint32:
		return enc.WriteUInt32Array(name, v1)
	case []int64:
		return enc.WriteInt64Array(name, v1)
	case []uint64:
		return enc.WriteUInt64Array(name, v1)
	case []float32:
		return enc.WriteFloatArray(name, v1)
	case []float64:
		return enc.WriteDoubleArray(name, v1)
	case []string:
		return enc.WriteStringArray(name, v1)
	case []time.Time:
		return enc.WriteDateTimeArray(name, v1)
	case []uuid.UUID:
		return enc.WriteGUIDArray(name, v1)
	case []ByteString:
		return enc.WriteByteStringArray(name, v1)
	case []XMLElement:
		return enc.WriteXMLElementArray(name, v1)
	case []NodeID:
		return enc.WriteNodeIDArray(name, v1)
	case []ExpandedNodeID:
		return enc.WriteExpandedNodeIDArray(name, v1)
	case []StatusCode:
		return enc.WriteStatusCodeArray(name, v1)
	case []QualifiedName:
		return enc.WriteQualifiedNameArray(name, v1)
	case []LocalizedText:
		return enc.WriteLocalizedTextArray(name, v1)
	case []ExtensionObject:
		return enc.WriteExtensionObjectArray(name, v1)
	case []DataValue:
		return enc.WriteDataValueArray(name, v1)
	case []Variant:
		return enc.WriteVariantArray(name, v1)
	case []DiagnosticInfo:
		return enc.WriteDiagnosticInfoArray(name, v1)
	default:
		return BadEncodingError
	}
}

// WriteDiagnosticInfo writes a DiagnosticInfo as a presence mask
// followed by only the present fields, recursing on the inner link.
func (enc *BinaryEncoder) WriteDiagnosticInfo(name string, value DiagnosticInfo) error {
	var b byte
	if value.SymbolicID != nil {
		b |= 1
	}
	if value.NamespaceURI != nil {
		b |= 2
	}
	if value.LocalizedText != nil {
		b |= 4
	}
	if value.Locale != nil {
		b |= 8
	}
	if value.AdditionalInfo != nil {
		b |= 16
	}
	if value.InnerStatusCode != nil {
		b |= 32
	}
	if value.InnerDiagnosticInfo != nil {
		b |= 64
	}
	if err := enc.WriteByte(name, b); err != nil {
		return err
	}
	if (b & 1) != 0 {
		if err := enc.WriteInt32(name, *value.SymbolicID); err != nil {
			return err
		}
	}
	if (b & 2) != 0 {
		if err := enc.WriteInt32(name, *value.NamespaceURI); err != nil {
			return err
		}
	}
	if (b & 8) != 0 {
		if err := enc.WriteInt32(name, *value.Locale); err != nil {
			return err
		}
	}
	if (b & 4) != 0 {
		if err := enc.WriteInt32(name, *value.LocalizedText); err != nil {
			return err
		}
	}
	if (b & 16) != 0 {
		if err := enc.WriteString(name, *value.AdditionalInfo); err != nil {
			return err
		}
	}
	if (b & 32) != 0 {
		if err := enc.WriteStatusCode(name, *value.InnerStatusCode); err != nil {
			return err
		}
	}
	if (b & 64) != 0 {
		if err := enc.WriteDiagnosticInfo(name, *value.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	return nil
}

// WriteBooleanArray writes a bool array.
func (enc *BinaryEncoder) WriteBooleanArray(name string, value []bool) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteBoolean(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteSByteArray writes an int8 array.
func (enc *BinaryEncoder) WriteSByteArray(name string, value []int8) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteSByte(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteByteArray writes a byte array.
func (enc *BinaryEncoder) WriteByteArray(name string, value []byte) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	if _, err := enc.w.Write(value); err != nil {
		return BadEncodingError
	}
	return nil
}

// WriteInt16Array writes an int16 array.
func (enc *BinaryEncoder) WriteInt16Array(name string, value []int16) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteInt16(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteUInt16Array writes a uint16 array.
func (enc *BinaryEncoder) WriteUInt16Array(name string, value []uint16) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteUInt16(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteInt32Array writes an int32 array.
func (enc *BinaryEncoder) WriteInt32Array(name string, value []int32) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteInt32(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteUInt32Array writes a uint32 array.
func (enc *BinaryEncoder) WriteUInt32Array(name string, value []uint32) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteUInt32(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteInt64Array writes an int64 array.
func (enc *BinaryEncoder) WriteInt64Array(name string, value []int64) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteInt64(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteUInt64Array writes a uint64 array.
func (enc *BinaryEncoder) WriteUInt64Array(name string, value []uint64) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteUInt64(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteFloatArray writes a float32 array.
func (enc *BinaryEncoder) WriteFloatArray(name string, value []float32) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteFloat(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteDoubleArray writes a float64 array.
func (enc *BinaryEncoder) WriteDoubleArray(name string, value []float64) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteDouble(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteStringArray writes a string array.
func (enc *BinaryEncoder) WriteStringArray(name string, value []string) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteString(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteDateTimeArray writes a time.Time array.
func (enc *BinaryEncoder) WriteDateTimeArray(name string, value []time.Time) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteDateTime(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteGUIDArray writes a UUID array.
func (enc *BinaryEncoder) WriteGUIDArray(name string, value []uuid.UUID) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteGUID(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteByteStringArray writes a ByteString array.
func (enc *BinaryEncoder) WriteByteStringArray(name string, value []ByteString) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteByteString(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteXMLElementArray writes an XMLElement array.
func (enc *BinaryEncoder) WriteXMLElementArray(name string, value []XMLElement) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteXMLElement(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteNodeIDArray writes a NodeID array.
func (enc *BinaryEncoder) WriteNodeIDArray(name string, value []NodeID) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteNodeID(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteExpandedNodeIDArray writes an ExpandedNodeID array.
func (enc *BinaryEncoder) WriteExpandedNodeIDArray(name string, value []ExpandedNodeID) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteExpandedNodeID(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteStatusCodeArray writes a StatusCode array.
func (enc *BinaryEncoder) WriteStatusCodeArray(name string, value []StatusCode) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteStatusCode(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteQualifiedNameArray writes a QualifiedName array.
func (enc *BinaryEncoder) WriteQualifiedNameArray(name string, value []QualifiedName) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteQualifiedName(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteLocalizedTextArray writes a LocalizedText array.
func (enc *BinaryEncoder) WriteLocalizedTextArray(name string, value []LocalizedText) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteLocalizedText(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteExtensionObjectArray writes an ExtensionObject array.
func (enc *BinaryEncoder) WriteExtensionObjectArray(name string, value []ExtensionObject) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteExtensionObject(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteDataValueArray writes a DataValue array.
func (enc *BinaryEncoder) WriteDataValueArray(name string, value []DataValue) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteDataValue(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteVariantArray writes a Variant array.
func (enc *BinaryEncoder) WriteVariantArray(name string, value []Variant) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteVariant(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}

// WriteDiagnosticInfoArray writes a DiagnosticInfo array.
func (enc *BinaryEncoder) WriteDiagnosticInfoArray(name string, value []DiagnosticInfo) error {
	if value == nil {
		return enc.WriteInt32(name, -1)
	}
	if err := enc.WriteInt32(name, int32(len(value))); err != nil {
		return BadEncodingError
	}
	for i := range value {
		if err := enc.WriteDiagnosticInfo(name, value[i]); err != nil {
			return BadEncodingError
		}
	}
	return nil
}
