package ua

import (
	"time"

	uuid "github.com/google/uuid"
)

// Encodeable is implemented by structured types that serialize
// themselves field by field through the active codec. Implementations
// are registered with RegisterEncodeable together with their per-format
// encoding ids, which enables polymorphic dispatch for ExtensionObject
// bodies and top-level messages.
type Encodeable interface {
	EncodeTo(enc Encoder) error
	DecodeFrom(dec Decoder) error
}

// Encoder is the operation set every wire format implements. The name
// identifies the field in named formats (XML element, JSON key) and is
// ignored by the binary codec.
type Encoder interface {
	WriteBoolean(name string, value bool) error
	WriteSByte(name string, value int8) error
	WriteByte(name string, value byte) error
	WriteInt16(name string, value int16) error
	WriteUInt16(name string, value uint16) error
	WriteInt32(name string, value int32) error
	WriteUInt32(name string, value uint32) error
	WriteInt64(name string, value int64) error
	WriteUInt64(name string, value uint64) error
	WriteFloat(name string, value float32) error
	WriteDouble(name string, value float64) error
	WriteString(name string, value string) error
	WriteDateTime(name string, value time.Time) error
	WriteGUID(name string, value uuid.UUID) error
	WriteByteString(name string, value ByteString) error
	WriteXMLElement(name string, value XMLElement) error
	WriteNodeID(name string, value NodeID) error
	WriteExpandedNodeID(name string, value ExpandedNodeID) error
	WriteStatusCode(name string, value StatusCode) error
	WriteQualifiedName(name string, value QualifiedName) error
	WriteLocalizedText(name string, value LocalizedText) error
	WriteExtensionObject(name string, value ExtensionObject) error
	WriteDataValue(name string, value DataValue) error
	WriteVariant(name string, value Variant) error
	WriteDiagnosticInfo(name string, value DiagnosticInfo) error

	WriteBooleanArray(name string, value []bool) error
	WriteSByteArray(name string, value []int8) error
	WriteByteArray(name string, value []byte) error
	WriteInt16Array(name string, value []int16) error
	WriteUInt16Array(name string, value []uint16) error
	WriteInt32Array(name string, value []int32) error
	WriteUInt32Array(name string, value []uint32) error
	WriteInt64Array(name string, value []int64) error
	WriteUInt64Array(name string, value []uint64) error
	WriteFloatArray(name string, value []float32) error
	WriteDoubleArray(name string, value []float64) error
	WriteStringArray(name string, value []string) error
	WriteDateTimeArray(name string, value []time.Time) error
	WriteGUIDArray(name string, value []uuid.UUID) error
	WriteByteStringArray(name string, value []ByteString) error
	WriteXMLElementArray(name string, value []XMLElement) error
	WriteNodeIDArray(name string, value []NodeID) error
	WriteExpandedNodeIDArray(name string, value []ExpandedNodeID) error
	WriteStatusCodeArray(name string, value []StatusCode) error
	WriteQualifiedNameArray(name string, value []QualifiedName) error
	WriteLocalizedTextArray(name string, value []LocalizedText) error
	WriteExtensionObjectArray(name string, value []ExtensionObject) error
	WriteDataValueArray(name string, value []DataValue) error
	WriteVariantArray(name string, value []Variant) error
	WriteDiagnosticInfoArray(name string, value []DiagnosticInfo) error
}

// Decoder mirrors Encoder with pointer out-params. A field absent from
// a named format leaves the out-param at its zero value; any structural
// failure returns BadDecodingError, a limits violation returns
// BadEncodingLimitsExceeded.
type Decoder interface {
	ReadBoolean(name string, value *bool) error
	ReadSByte(name string, value *int8) error
	ReadByte(name string, value *byte) error
	ReadInt16(name string, value *int16) error
	ReadUInt16(name string, value *uint16) error
	ReadInt32(name string, value *int32) error
	ReadUInt32(name string, value *uint32) error
	ReadInt64(name string, value *int64) error
	ReadUInt64(name string, value *uint64) error
	ReadFloat(name string, value *float32) error
	ReadDouble(name string, value *float64) error
	ReadString(name string, value *string) error
	ReadDateTime(name string, value *time.Time) error
	ReadGUID(name string, value *uuid.UUID) error
	ReadByteString(name string, value *ByteString) error
	ReadXMLElement(name string, value *XMLElement) error
	ReadNodeID(name string, value *NodeID) error
	ReadExpandedNodeID(name string, value *ExpandedNodeID) error
	ReadStatusCode(name string, value *StatusCode) error
	ReadQualifiedName(name string, value *QualifiedName) error
	ReadLocalizedText(name string, value *LocalizedText) error
	ReadExtensionObject(name string, value *ExtensionObject) error
	ReadDataValue(name string, value *DataValue) error
	ReadVariant(name string, value *Variant) error
	ReadDiagnosticInfo(name string, value *DiagnosticInfo) error

	ReadBooleanArray(name string, value *[]bool) error
	ReadSByteArray(name string, value *[]int8) error
	ReadByteArray(name string, value *[]byte) error
	ReadInt16Array(name string, value *[]int16) error
	ReadUInt16Array(name string, value *[]uint16) error
	ReadInt32Array(name string, value *[]int32) error
	ReadUInt32Array(name string, value *[]uint32) error
	ReadInt64Array(name string, value *[]int64) error
	ReadUInt64Array(name string, value *[]uint64) error
	ReadFloatArray(name string, value *[]float32) error
	ReadDoubleArray(name string, value *[]float64) error
	ReadStringArray(name string, value *[]string) error
	ReadDateTimeArray(name string, value *[]time.Time) error
	ReadGUIDArray(name string, value *[]uuid.UUID) error
	ReadByteStringArray(name string, value *[]ByteString) error
	ReadXMLElementArray(name string, value *[]XMLElement) error
	ReadNodeIDArray(name string, value *[]NodeID) error
	ReadExpandedNodeIDArray(name string, value *[]ExpandedNodeID) error
	ReadStatusCodeArray(name string, value *[]StatusCode) error
	ReadQualifiedNameArray(name string, value *[]QualifiedName) error
	ReadLocalizedTextArray(name string, value *[]LocalizedText) error
	ReadExtensionObjectArray(name string, value *[]ExtensionObject) error
	ReadDataValueArray(name string, value *[]DataValue) error
	ReadVariantArray(name string, value *[]Variant) error
	ReadDiagnosticInfoArray(name string, value *[]DiagnosticInfo) error
}
