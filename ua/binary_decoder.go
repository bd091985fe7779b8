package ua

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"time"

	uuid "github.com/google/uuid"
)

// BinaryDecoder decodes the UA Binary protocol. A decoder is bound to
// one stream and is not safe for concurrent use.
//
// Every length read from the wire is checked against the context's
// EncodingLimits before any allocation, so a hostile length prefix
// cannot drive an oversized allocation. Nested Variant, ExtensionObject
// and DiagnosticInfo reads count against MaxRecursionDepth.
type BinaryDecoder struct {
	r     io.Reader
	ec    *EncodingContext
	depth uint32
	bs    [8]byte
}

// NewBinaryDecoder returns a new decoder that reads from an io.Reader.
func NewBinaryDecoder(r io.Reader, ec *EncodingContext) *BinaryDecoder {
	return &BinaryDecoder{r: r, ec: ec}
}

var _ Decoder = (*BinaryDecoder)(nil)

func (dec *BinaryDecoder) enter() error {
	dec.depth++
	if dec.depth > dec.ec.Limits().MaxRecursionDepth {
		return BadEncodingLimitsExceeded
	}
	return nil
}

func (dec *BinaryDecoder) leave() { dec.depth-- }

func (dec *BinaryDecoder) checkStringLen(n int32) error {
	if max := dec.ec.Limits().MaxStringLength; max > 0 && uint32(n) > max {
		return BadEncodingLimitsExceeded
	}
	return nil
}

func (dec *BinaryDecoder) checkByteStringLen(n int32) error {
	if max := dec.ec.Limits().MaxByteStringLength; max > 0 && uint32(n) > max {
		return BadEncodingLimitsExceeded
	}
	return nil
}

func (dec *BinaryDecoder) checkArrayLen(n int32) error {
	if max := dec.ec.Limits().MaxArrayLength; max > 0 && uint32(n) > max {
		return BadEncodingLimitsExceeded
	}
	return nil
}

// ReadBoolean reads a boolean.
func (dec *BinaryDecoder) ReadBoolean(name string, value *bool) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:1]); err != nil {
		return BadDecodingError
	}
	*value = dec.bs[0] != 0
	return nil
}

// ReadSByte reads a sbyte.
func (dec *BinaryDecoder) ReadSByte(name string, value *int8) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:1]); err != nil {
		return BadDecodingError
	}
	*value = int8(dec.bs[0])
	return nil
}

// ReadByte reads a byte.
func (dec *BinaryDecoder) ReadByte(name string, value *byte) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:1]); err != nil {
		return BadDecodingError
	}
	*value = dec.bs[0]
	return nil
}

// ReadInt16 reads an int16.
func (dec *BinaryDecoder) ReadInt16(name string, value *int16) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:2]); err != nil {
		return BadDecodingError
	}
	*value = int16(binary.LittleEndian.Uint16(dec.bs[:2]))
	return nil
}

// ReadUInt16 reads a uint16.
func (dec *BinaryDecoder) ReadUInt16(name string, value *uint16) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:2]); err != nil {
		return BadDecodingError
	}
	*value = binary.LittleEndian.Uint16(dec.bs[:2])
	return nil
}

// ReadInt32 reads an int32.
func (dec *BinaryDecoder) ReadInt32(name string, value *int32) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:4]); err != nil {
		return BadDecodingError
	}
	*value = int32(binary.LittleEndian.Uint32(dec.bs[:4]))
	return nil
}

// ReadUInt32 reads a uint32.
func (dec *BinaryDecoder) ReadUInt32(name string, value *uint32) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:4]); err != nil {
		return BadDecodingError
	}
	*value = binary.LittleEndian.Uint32(dec.bs[:4])
	return nil
}

// ReadInt64 reads an int64.
func (dec *BinaryDecoder) ReadInt64(name string, value *int64) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:8]); err != nil {
		return BadDecodingError
	}
	*value = int64(binary.LittleEndian.Uint64(dec.bs[:8]))
	return nil
}

// ReadUInt64 reads a uint64.
func (dec *BinaryDecoder) ReadUInt64(name string, value *uint64) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:8]); err != nil {
		return BadDecodingError
	}
	*value = binary.LittleEndian.Uint64(dec.bs[:8])
	return nil
}

// ReadFloat reads a float32.
func (dec *BinaryDecoder) ReadFloat(name string, value *float32) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:4]); err != nil {
		return BadDecodingError
	}
	*value = math.Float32frombits(binary.LittleEndian.Uint32(dec.bs[:4]))
	return nil
}

// ReadDouble reads a float64.
func (dec *BinaryDecoder) ReadDouble(name string, value *float64) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:8]); err != nil {
		return BadDecodingError
	}
	*value = math.Float64frombits(binary.LittleEndian.Uint64(dec.bs[:8]))
	return nil
}

// ReadString reads a length-prefixed string. A length of -1 reads as
// the empty string.
func (dec *BinaryDecoder) ReadString(name string, value *string) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = ""
		return nil
	}
	if err := dec.checkStringLen(n); err != nil {
		return err
	}
	bs := make([]byte, n)
	if _, err := io.ReadFull(dec.r, bs); err != nil {
		return BadDecodingError
	}
	*value = string(bs)
	return nil
}

// ReadDateTime reads a date/time from 100 ns ticks since 1601-01-01
// UTC. The end-of-time sentinel maps to the maximum representable
// time.Time.
func (dec *BinaryDecoder) ReadDateTime(name string, value *time.Time) error {
	var ticks int64
	if err := dec.ReadInt64(name, &ticks); err != nil {
		return BadDecodingError
	}
	if ticks < 0 {
		ticks = 0
	}
	if ticks == math.MaxInt64 {
		ticks = 2650467743990000000
	}
	*value = time.Unix(ticks/10000000-11644473600, (ticks%10000000)*100).UTC()
	return nil
}

// ReadGUID reads a UUID.
func (dec *BinaryDecoder) ReadGUID(name string, value *uuid.UUID) error {
	if _, err := io.ReadFull(dec.r, dec.bs[:8]); err != nil {
		return BadDecodingError
	}
	value[0] = dec.bs[3]
	value[1] = dec.bs[2]
	value[2] = dec.bs[1]
	value[3] = dec.bs[0]
	value[4] = dec.bs[5]
	value[5] = dec.bs[4]
	value[6] = dec.bs[7]
	value[7] = dec.bs[6]
	if _, err := io.ReadFull(dec.r, value[8:]); err != nil {
		return BadDecodingError
	}
	return nil
}

// ReadByteString reads a ByteString. A length of -1 reads as nil.
func (dec *BinaryDecoder) ReadByteString(name string, value *ByteString) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = ""
		return nil
	}
	if err := dec.checkByteStringLen(n); err != nil {
		return err
	}
	bs := make([]byte, n)
	if _, err := io.ReadFull(dec.r, bs); err != nil {
		return BadDecodingError
	}
	*value = ByteString(bs)
	return nil
}

// ReadXMLElement reads an XMLElement.
func (dec *BinaryDecoder) ReadXMLElement(name string, value *XMLElement) error {
	var s string
	if err := dec.ReadString(name, &s); err != nil {
		return err
	}
	*value = XMLElement(s)
	return nil
}

// ReadNodeID reads a NodeID in any of its sub-encodings.
func (dec *BinaryDecoder) ReadNodeID(name string, value *NodeID) error {
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	switch b & 0x0F {
	case 0x00:
		var id byte
		if err := dec.ReadByte(name, &id); err != nil {
			return BadDecodingError
		}
		*value = NewNodeIDNumeric(0, uint32(id))
	case 0x01:
		var ns byte
		var id uint16
		if err := dec.ReadByte(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadUInt16(name, &id); err != nil {
			return BadDecodingError
		}
		*value = NewNodeIDNumeric(uint16(ns), uint32(id))
	case 0x02:
		var ns uint16
		var id uint32
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadUInt32(name, &id); err != nil {
			return BadDecodingError
		}
		*value = NewNodeIDNumeric(ns, id)
	case 0x03:
		var ns uint16
		var id string
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadString(name, &id); err != nil {
			return err
		}
		*value = NewNodeIDString(ns, id)
	case 0x04:
		var ns uint16
		var id uuid.UUID
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadGUID(name, &id); err != nil {
			return BadDecodingError
		}
		*value = NewNodeIDGUID(ns, id)
	case 0x05:
		var ns uint16
		var id ByteString
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadByteString(name, &id); err != nil {
			return err
		}
		*value = NewNodeIDOpaque(ns, id)
	default:
		return BadDecodingError
	}
	return nil
}

// ReadExpandedNodeID reads an ExpandedNodeID.
func (dec *BinaryDecoder) ReadExpandedNodeID(name string, value *ExpandedNodeID) error {
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	var n NodeID
	switch b & 0x0F {
	case 0x00:
		var id byte
		if err := dec.ReadByte(name, &id); err != nil {
			return BadDecodingError
		}
		n = NewNodeIDNumeric(0, uint32(id))
	case 0x01:
		var ns byte
		var id uint16
		if err := dec.ReadByte(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadUInt16(name, &id); err != nil {
			return BadDecodingError
		}
		n = NewNodeIDNumeric(uint16(ns), uint32(id))
	case 0x02:
		var ns uint16
		var id uint32
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadUInt32(name, &id); err != nil {
			return BadDecodingError
		}
		n = NewNodeIDNumeric(ns, id)
	case 0x03:
		var ns uint16
		var id string
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadString(name, &id); err != nil {
			return err
		}
		n = NewNodeIDString(ns, id)
	case 0x04:
		var ns uint16
		var id uuid.UUID
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadGUID(name, &id); err != nil {
			return BadDecodingError
		}
		n = NewNodeIDGUID(ns, id)
	case 0x05:
		var ns uint16
		var id ByteString
		if err := dec.ReadUInt16(name, &ns); err != nil {
			return BadDecodingError
		}
		if err := dec.ReadByteString(name, &id); err != nil {
			return err
		}
		n = NewNodeIDOpaque(ns, id)
	default:
		return BadDecodingError
	}
	var nsURI string
	if (b & 0x80) != 0 {
		if err := dec.ReadString(name, &nsURI); err != nil {
			return err
		}
	}
	var svr uint32
	if (b & 0x40) != 0 {
		if err := dec.ReadUInt32(name, &svr); err != nil {
			return BadDecodingError
		}
	}
	*value = ExpandedNodeID{svr, nsURI, n}
	return nil
}

// ReadStatusCode reads a StatusCode.
func (dec *BinaryDecoder) ReadStatusCode(name string, value *StatusCode) error {
	var u uint32
	if err := dec.ReadUInt32(name, &u); err != nil {
		return BadDecodingError
	}
	*value = StatusCode(u)
	return nil
}

// ReadQualifiedName reads a QualifiedName.
func (dec *BinaryDecoder) ReadQualifiedName(name string, value *QualifiedName) error {
	var ns uint16
	var s string
	if err := dec.ReadUInt16(name, &ns); err != nil {
		return BadDecodingError
	}
	if err := dec.ReadString(name, &s); err != nil {
		return err
	}
	*value = QualifiedName{ns, s}
	return nil
}

// ReadLocalizedText reads a LocalizedText.
func (dec *BinaryDecoder) ReadLocalizedText(name string, value *LocalizedText) error {
	var b byte
	var locale, text string
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	if (b & 1) != 0 {
		if err := dec.ReadString(name, &locale); err != nil {
			return err
		}
	}
	if (b & 2) != 0 {
		if err := dec.ReadString(name, &text); err != nil {
			return err
		}
	}
	*value = LocalizedText{text, locale}
	return nil
}

// ReadExtensionObject reads an ExtensionObject. A body whose encoding
// id is registered decodes to the registered type; an unknown body is
// preserved as an opaque ByteString or XMLElement that re-encodes
// byte-identical.
func (dec *BinaryDecoder) ReadExtensionObject(name string, value *ExtensionObject) error {
	if err := dec.enter(); err != nil {
		return err
	}
	defer dec.leave()
	var nodeID NodeID
	if err := dec.ReadNodeID(name, &nodeID); err != nil {
		return err
	}
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	id := ToExpandedNodeID(nodeID, dec.ec.NamespaceURIs())
	switch b {
	case 0x00:
		*value = ExtensionObject{TypeID: id}
		return nil
	case 0x01:
		var body ByteString
		if err := dec.ReadByteString(name, &body); err != nil {
			return err
		}
		reg, ok := FindRegistrationForEncodingID(FormatBinary, id)
		if !ok {
			*value = ExtensionObject{TypeID: id, Body: body}
			return nil
		}
		nsURI := id.NamespaceURI
		if nsURI == "" {
			if u, ok2 := dec.ec.NamespaceURI(namespaceIndexOf(nodeID)); ok2 {
				nsURI = u
			}
		}
		dec.ec.PushNamespace(nsURI)
		defer dec.ec.PopNamespace()
		r := bytes.NewReader([]byte(body))
		dec2 := NewBinaryDecoder(r, dec.ec)
		dec2.depth = dec.depth
		msg := reg.New()
		if err := msg.DecodeFrom(dec2); err != nil {
			return err
		}
		if r.Len() != 0 {
			return BadDecodingError
		}
		*value = ExtensionObject{TypeID: id, Body: msg}
		return nil
	case 0x02:
		var body XMLElement
		if err := dec.ReadXMLElement(name, &body); err != nil {
			return err
		}
		*value = ExtensionObject{TypeID: id, Body: body}
		return nil
	default:
		return BadDecodingError
	}
}

// ReadDataValue reads a DataValue.
func (dec *BinaryDecoder) ReadDataValue(name string, value *DataValue) error {
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	var dv DataValue
	if (b & 1) != 0 {
		if err := dec.ReadVariant(name, &dv.Value); err != nil {
			return err
		}
	}
	if (b & 2) != 0 {
		if err := dec.ReadStatusCode(name, &dv.StatusCode); err != nil {
			return err
		}
	}
	if (b & 4) != 0 {
		if err := dec.ReadDateTime(name, &dv.SourceTimestamp); err != nil {
			return err
		}
	}
	if (b & 16) != 0 {
		if err := dec.ReadUInt16(name, &dv.SourcePicoseconds); err != nil {
			return err
		}
	}
	if (b & 8) != 0 {
		if err := dec.ReadDateTime(name, &dv.ServerTimestamp); err != nil {
			return err
		}
	}
	if (b & 32) != 0 {
		if err := dec.ReadUInt16(name, &dv.ServerPicoseconds); err != nil {
			return err
		}
	}
	*value = dv
	return nil
}

// ReadVariant reads a Variant.
func (dec *BinaryDecoder) ReadVariant(name string, value *Variant) error {
	if err := dec.enter(); err != nil {
		return err
	}
	defer dec.leave()
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	if b == 0 {
		*value = nil
		return nil
	}
	t := b & 0x3F
	if t == VariantTypeNull || t > VariantTypeDiagnosticInfo {
		return BadDecodingError
	}
	if (b & 0x80) == 0 {
		if (b & 0x40) != 0 {
			// dimensions without the array bit
			return BadDecodingError
		}
		return dec.readVariantScalar(name, t, value)
	}
	var elements Variant
	if err := dec.readVariantElements(name, t, &elements); err != nil {
		return err
	}
	if (b & 0x40) == 0 {
		*value = elements
		return nil
	}
	var dims []int32
	if err := dec.ReadInt32Array(name, &dims); err != nil {
		return err
	}
	m, err := NewMatrix(elements, dims)
	if err != nil {
		return BadDecodingError
	}
	*value = m
	return nil
}

func (dec *BinaryDecoder) readVariantScalar(name string, t byte, value *Variant) error {
	switch t {
	case VariantTypeBoolean:
		var v bool
		if err := dec.ReadBoolean(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeSByte:
		var v int8
		if err := dec.ReadSByte(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeByte:
		var v byte
		if err := dec.ReadByte(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt16:
		var v int16
		if err := dec.ReadInt16(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt16:
		var v uint16
		if err := dec.ReadUInt16(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt32:
		var v int32
		if err := dec.ReadInt32(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt32:
		var v uint32
		if err := dec.ReadUInt32(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt64:
		var v int64
		if err := dec.ReadInt64(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt64:
		var v uint64
		if err := dec.ReadUInt64(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeFloat:
		var v float32
		if err := dec.ReadFloat(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDouble:
		var v float64
		if err := dec.ReadDouble(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeString:
		var v string
		if err := dec.ReadString(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDateTime:
		var v time.Time
		if err := dec.ReadDateTime(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeGUID:
		var v uuid.UUID
		if err := dec.ReadGUID(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeByteString:
		var v ByteString
		if err := dec.ReadByteString(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeXMLElement:
		var v XMLElement
		if err := dec.ReadXMLElement(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeNodeID:
		var v NodeID
		if err := dec.ReadNodeID(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeExpandedNodeID:
		var v ExpandedNodeID
		if err := dec.ReadExpandedNodeID(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeStatusCode:
		var v StatusCode
		if err := dec.ReadStatusCode(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeQualifiedName:
		var v QualifiedName
		if err := dec.ReadQualifiedName(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeLocalizedText:
		var v LocalizedText
		if err := dec.ReadLocalizedText(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeExtensionObject:
		var v ExtensionObject
		if err := dec.ReadExtensionObject(name, &v); err != nil {
			return err
		}
		// a registered body surfaces directly in the variant
		if body, ok := v.Body.(Encodeable); ok {
			*value = body
		} else {
			*value = v
		}
	case VariantTypeDataValue:
		var v DataValue
		if err := dec.ReadDataValue(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeVariant:
		// a variant may not directly nest a scalar variant
		return BadDecodingError
	case VariantTypeDiagnosticInfo:
		var v DiagnosticInfo
		if err := dec.ReadDiagnosticInfo(name, &v); err != nil {
			return err
		}
		*value = v
	default:
		return BadDecodingError
	}
	return nil
}

func (dec *BinaryDecoder) readVariantElements(name string, t byte, value *Variant) error {
	switch t {
	case VariantTypeBoolean:
		var v []bool
		if err := dec.ReadBooleanArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeSByte:
		var v []int8
		if err := dec.ReadSByteArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeByte:
		var v []byte
		if err := dec.ReadByteArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt16:
		var v []int16
		if err := dec.ReadInt16Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt16:
		var v []uint16
		if err := dec.ReadUInt16Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt32:
		var v []int32
		if err := dec.ReadInt32Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt32:
		var v []uint32
		if err := dec.ReadUInt32Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeInt64:
		var v []int64
		if err := dec.ReadInt64Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeUInt64:
		var v []uint64
		if err := dec.ReadUInt64Array(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeFloat:
		var v []float32
		if err := dec.ReadFloatArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDouble:
		var v []float64
		if err := dec.ReadDoubleArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeString:
		var v []string
		if err := dec.ReadStringArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDateTime:
		var v []time.Time
		if err := dec.ReadDateTimeArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeGUID:
		var v []uuid.UUID
		if err := dec.ReadGUIDArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeByteString:
		var v []ByteString
		if err := dec.ReadByteStringArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeXMLElement:
		var v []XMLElement
		if err := dec.ReadXMLElementArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeNodeID:
		var v []NodeID
		if err := dec.ReadNodeIDArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeExpandedNodeID:
		var v []ExpandedNodeID
		if err := dec.ReadExpandedNodeIDArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeStatusCode:
		var v []StatusCode
		if err := dec.ReadStatusCodeArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeQualifiedName:
		var v []QualifiedName
		if err := dec.ReadQualifiedNameArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeLocalizedText:
		var v []LocalizedText
		if err := dec.ReadLocalizedTextArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeExtensionObject:
		var v []ExtensionObject
		if err := dec.ReadExtensionObjectArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDataValue:
		var v []DataValue
		if err := dec.ReadDataValueArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeVariant:
		var v []Variant
		if err := dec.ReadVariantArray(name, &v); err != nil {
			return err
		}
		*value = v
	case VariantTypeDiagnosticInfo:
		var v []DiagnosticInfo
		if err := dec.ReadDiagnosticInfoArray(name, &v); err != nil {
			return err
		}
		*value = v
	default:
		return BadDecodingError
	}
	return nil
}

// ReadDiagnosticInfo reads a DiagnosticInfo, recursing on the inner
// link. Recursion counts against MaxRecursionDepth.
func (dec *BinaryDecoder) ReadDiagnosticInfo(name string, value *DiagnosticInfo) error {
	if err := dec.enter(); err != nil {
		return err
	}
	defer dec.leave()
	var b byte
	if err := dec.ReadByte(name, &b); err != nil {
		return BadDecodingError
	}
	var di DiagnosticInfo
	if (b & 1) != 0 {
		var v int32
		if err := dec.ReadInt32(name, &v); err != nil {
			return err
		}
		di.SymbolicID = &v
	}
	if (b & 2) != 0 {
		var v int32
		if err := dec.ReadInt32(name, &v); err != nil {
			return err
		}
		di.NamespaceURI = &v
	}
	if (b & 8) != 0 {
		var v int32
		if err := dec.ReadInt32(name, &v); err != nil {
			return err
		}
		di.Locale = &v
	}
	if (b & 4) != 0 {
		var v int32
		if err := dec.ReadInt32(name, &v); err != nil {
			return err
		}
		di.LocalizedText = &v
	}
	if (b & 16) != 0 {
		var v string
		if err := dec.ReadString(name, &v); err != nil {
			return err
		}
		di.AdditionalInfo = &v
	}
	if (b & 32) != 0 {
		var v StatusCode
		if err := dec.ReadStatusCode(name, &v); err != nil {
			return err
		}
		di.InnerStatusCode = &v
	}
	if (b & 64) != 0 {
		var v DiagnosticInfo
		if err := dec.ReadDiagnosticInfo(name, &v); err != nil {
			return err
		}
		di.InnerDiagnosticInfo = &v
	}
	*value = di
	return nil
}

// ReadBooleanArray reads a bool array.
func (dec *BinaryDecoder) ReadBooleanArray(name string, value *[]bool) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]bool, n)
	for i := range vs {
		if err := dec.ReadBoolean(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadSByteArray reads an int8 array.
func (dec *BinaryDecoder) ReadSByteArray(name string, value *[]int8) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]int8, n)
	for i := range vs {
		if err := dec.ReadSByte(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadByteArray reads a byte array.
func (dec *BinaryDecoder) ReadByteArray(name string, value *[]byte) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]byte, n)
	if _, err := io.ReadFull(dec.r, vs); err != nil {
		return BadDecodingError
	}
	*value = vs
	return nil
}

// ReadInt16Array reads an int16 array.
func (dec *BinaryDecoder) ReadInt16Array(name string, value *[]int16) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]int16, n)
	for i := range vs {
		if err := dec.ReadInt16(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadUInt16Array reads a uint16 array.
func (dec *BinaryDecoder) ReadUInt16Array(name string, value *[]uint16) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]uint16, n)
	for i := range vs {
		if err := dec.ReadUInt16(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadInt32Array reads an int32 array.
func (dec *BinaryDecoder) ReadInt32Array(name string, value *[]int32) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]int32, n)
	for i := range vs {
		if err := dec.ReadInt32(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadUInt32Array reads a uint32 array.
func (dec *BinaryDecoder) ReadUInt32Array(name string, value *[]uint32) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]uint32, n)
	for i := range vs {
		if err := dec.ReadUInt32(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadInt64Array reads an int64 array.
func (dec *BinaryDecoder) ReadInt64Array(name string, value *[]int64) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]int64, n)
	for i := range vs {
		if err := dec.ReadInt64(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadUInt64Array reads a uint64 array.
func (dec *BinaryDecoder) ReadUInt64Array(name string, value *[]uint64) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]uint64, n)
	for i := range vs {
		if err := dec.ReadUInt64(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadFloatArray reads a float32 array.
func (dec *BinaryDecoder) ReadFloatArray(name string, value *[]float32) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]float32, n)
	for i := range vs {
		if err := dec.ReadFloat(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadDoubleArray reads a float64 array.
func (dec *BinaryDecoder) ReadDoubleArray(name string, value *[]float64) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]float64, n)
	for i := range vs {
		if err := dec.ReadDouble(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadStringArray reads a string array.
func (dec *BinaryDecoder) ReadStringArray(name string, value *[]string) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]string, n)
	for i := range vs {
		if err := dec.ReadString(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadDateTimeArray reads a time.Time array.
func (dec *BinaryDecoder) ReadDateTimeArray(name string, value *[]time.Time) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]time.Time, n)
	for i := range vs {
		if err := dec.ReadDateTime(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadGUIDArray reads a UUID array.
func (dec *BinaryDecoder) ReadGUIDArray(name string, value *[]uuid.UUID) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]uuid.UUID, n)
	for i := range vs {
		if err := dec.ReadGUID(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadByteStringArray reads a ByteString array.
func (dec *BinaryDecoder) ReadByteStringArray(name string, value *[]ByteString) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]ByteString, n)
	for i := range vs {
		if err := dec.ReadByteString(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadXMLElementArray reads an XMLElement array.
func (dec *BinaryDecoder) ReadXMLElementArray(name string, value *[]XMLElement) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]XMLElement, n)
	for i := range vs {
		if err := dec.ReadXMLElement(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadNodeIDArray reads a NodeID array.
func (dec *BinaryDecoder) ReadNodeIDArray(name string, value *[]NodeID) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]NodeID, n)
	for i := range vs {
		if err := dec.ReadNodeID(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadExpandedNodeIDArray reads an ExpandedNodeID array.
func (dec *BinaryDecoder) ReadExpandedNodeIDArray(name string, value *[]ExpandedNodeID) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]ExpandedNodeID, n)
	for i := range vs {
		if err := dec.ReadExpandedNodeID(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadStatusCodeArray reads a StatusCode array.
func (dec *BinaryDecoder) ReadStatusCodeArray(name string, value *[]StatusCode) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]StatusCode, n)
	for i := range vs {
		if err := dec.ReadStatusCode(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadQualifiedNameArray reads a QualifiedName array.
func (dec *BinaryDecoder) ReadQualifiedNameArray(name string, value *[]QualifiedName) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]QualifiedName, n)
	for i := range vs {
		if err := dec.ReadQualifiedName(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadLocalizedTextArray reads a LocalizedText array.
func (dec *BinaryDecoder) ReadLocalizedTextArray(name string, value *[]LocalizedText) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]LocalizedText, n)
	for i := range vs {
		if err := dec.ReadLocalizedText(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadExtensionObjectArray reads an ExtensionObject array.
func (dec *BinaryDecoder) ReadExtensionObjectArray(name string, value *[]ExtensionObject) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]ExtensionObject, n)
	for i := range vs {
		if err := dec.ReadExtensionObject(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadDataValueArray reads a DataValue array.
func (dec *BinaryDecoder) ReadDataValueArray(name string, value *[]DataValue) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]DataValue, n)
	for i := range vs {
		if err := dec.ReadDataValue(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadVariantArray reads a Variant array.
func (dec *BinaryDecoder) ReadVariantArray(name string, value *[]Variant) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]Variant, n)
	for i := range vs {
		if err := dec.ReadVariant(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}

// ReadDiagnosticInfoArray reads a DiagnosticInfo array.
func (dec *BinaryDecoder) ReadDiagnosticInfoArray(name string, value *[]DiagnosticInfo) error {
	var n int32
	if err := dec.ReadInt32(name, &n); err != nil {
		return BadDecodingError
	}
	if n < 0 {
		*value = nil
		return nil
	}
	if err := dec.checkArrayLen(n); err != nil {
		return err
	}
	vs := make([]DiagnosticInfo, n)
	for i := range vs {
		if err := dec.ReadDiagnosticInfo(name, &vs[i]); err != nil {
			return err
		}
	}
	*value = vs
	return nil
}
