package ua

import (
	"time"

	uuid "github.com/google/uuid"
)

// VariantTypes enumerate the built-in types of the OPC UA type system.
// VariantTypeNull is the sentinel for an empty Variant.
const (
	VariantTypeNull byte = iota
	VariantTypeBoolean
	VariantTypeSByte
	VariantTypeByte
	VariantTypeInt16
	VariantTypeUInt16
	VariantTypeInt32
	VariantTypeUInt32
	VariantTypeInt64
	VariantTypeUInt64
	VariantTypeFloat
	VariantTypeDouble
	VariantTypeString
	VariantTypeDateTime
	VariantTypeGUID
	VariantTypeByteString
	VariantTypeXMLElement
	VariantTypeNodeID
	VariantTypeExpandedNodeID
	VariantTypeStatusCode
	VariantTypeQualifiedName
	VariantTypeLocalizedText
	VariantTypeExtensionObject
	VariantTypeDataValue
	VariantTypeVariant
	VariantTypeDiagnosticInfo
)

// names of the built-in types, indexed by VariantType. Used by the XML
// codec for element names and by the Verbose JSON policy.
var variantTypeNames = [...]string{
	"Null", "Boolean", "SByte", "Byte", "Int16", "UInt16", "Int32",
	"UInt32", "Int64", "UInt64", "Float", "Double", "String", "DateTime",
	"Guid", "ByteString", "XmlElement", "NodeId", "ExpandedNodeId",
	"StatusCode", "QualifiedName", "LocalizedText", "ExtensionObject",
	"DataValue", "Variant", "DiagnosticInfo",
}

/*
Variant stores a single value or slice of the following types:

	bool, int8, uint8, int16, uint16, int32, uint32
	int64, uint64, float32, float64, string
	time.Time, uuid.UUID, ByteString, XMLElement
	NodeID, ExpandedNodeID, StatusCode, QualifiedName
	LocalizedText, ExtensionObject, DataValue, Variant

A multi-dimensional value is stored as a Matrix. Structs registered with
RegisterEncodeable are carried wrapped in an ExtensionObject.
*/
type Variant interface{}

// Matrix holds a multi-dimensional array as a flattened element slice
// (row-major) plus the ordered dimension sizes. A valid Matrix has at
// least two dimensions, all positive, whose product equals the number
// of flattened elements.
type Matrix struct {
	Elements   Variant
	Dimensions []int32
}

// NewMatrix constructs a Matrix from a flat element slice and dimension
// sizes, validating the element-count invariant. The elements argument
// must be a homogeneous slice of a built-in type, e.g. []int32.
func NewMatrix(elements Variant, dimensions []int32) (Matrix, error) {
	if len(dimensions) < 2 {
		return Matrix{}, BadInvalidArgument
	}
	n := int64(1)
	for _, d := range dimensions {
		if d <= 0 {
			return Matrix{}, BadInvalidArgument
		}
		n *= int64(d)
	}
	if n != int64(variantLen(elements)) {
		return Matrix{}, BadInvalidArgument
	}
	if t, isArray := builtInTypeOf(elements); t == VariantTypeNull || !isArray {
		return Matrix{}, BadInvalidArgument
	}
	return Matrix{elements, dimensions}, nil
}

// ElementCount returns the number of flattened elements.
func (m Matrix) ElementCount() int {
	return variantLen(m.Elements)
}

// valid reports whether the dimension product matches the element count.
// Encoders fail fast on an invalid Matrix; decoders never produce one.
func (m Matrix) valid() bool {
	if len(m.Dimensions) < 2 {
		return false
	}
	n := int64(1)
	for _, d := range m.Dimensions {
		if d <= 0 {
			return false
		}
		n *= int64(d)
	}
	return n == int64(variantLen(m.Elements))
}

// variantLen returns the length of the slice held by v, or 0.
func variantLen(v Variant) int {
	switch v2 := v.(type) {
	case []bool:
		return len(v2)
	case []int8:
		return len(v2)
	case []byte:
		return len(v2)
	case []int16:
		return len(v2)
	case []uint16:
		return len(v2)
	case []int32:
		return len(v2)
	case []uint32:
		return len(v2)
	case []int64:
		return len(v2)
	case []uint64:
		return len(v2)
	case []float32:
		return len(v2)
	case []float64:
		return len(v2)
	case []string:
		return len(v2)
	case []time.Time:
		return len(v2)
	case []uuid.UUID:
		return len(v2)
	case []ByteString:
		return len(v2)
	case []XMLElement:
		return len(v2)
	case []NodeID:
		return len(v2)
	case []ExpandedNodeID:
		return len(v2)
	case []StatusCode:
		return len(v2)
	case []QualifiedName:
		return len(v2)
	case []LocalizedText:
		return len(v2)
	case []ExtensionObject:
		return len(v2)
	case []DataValue:
		return len(v2)
	case []Variant:
		return len(v2)
	case []DiagnosticInfo:
		return len(v2)
	default:
		return 0
	}
}

// variantIndex returns element i of the slice held by v, or nil.
func variantIndex(v Variant, i int) Variant {
	switch v2 := v.(type) {
	case []bool:
		return v2[i]
	case []int8:
		return v2[i]
	case []byte:
		return v2[i]
	case []int16:
		return v2[i]
	case []uint16:
		return v2[i]
	case []int32:
		return v2[i]
	case []uint32:
		return v2[i]
	case []int64:
		return v2[i]
	case []uint64:
		return v2[i]
	case []float32:
		return v2[i]
	case []float64:
		return v2[i]
	case []string:
		return v2[i]
	case []time.Time:
		return v2[i]
	case []uuid.UUID:
		return v2[i]
	case []ByteString:
		return v2[i]
	case []XMLElement:
		return v2[i]
	case []NodeID:
		return v2[i]
	case []ExpandedNodeID:
		return v2[i]
	case []StatusCode:
		return v2[i]
	case []QualifiedName:
		return v2[i]
	case []LocalizedText:
		return v2[i]
	case []ExtensionObject:
		return v2[i]
	case []DataValue:
		return v2[i]
	case []Variant:
		return v2[i]
	case []DiagnosticInfo:
		return v2[i]
	default:
		return nil
	}
}

// builtInTypeOf returns the VariantType tag for the value held by v and
// whether v is a slice of that type. A Matrix reports the element type
// with isArray true. Unknown types report VariantTypeNull; encoders
// treat those as ExtensionObject candidates.
func builtInTypeOf(v Variant) (t byte, isArray bool) {
	switch v.(type) {
	case nil:
		return VariantTypeNull, false
	case bool:
		return VariantTypeBoolean, false
	case int8:
		return VariantTypeSByte, false
	case uint8:
		return VariantTypeByte, false
	case int16:
		return VariantTypeInt16, false
	case uint16:
		return VariantTypeUInt16, false
	case int32:
		return VariantTypeInt32, false
	case uint32:
		return VariantTypeUInt32, false
	case int64:
		return VariantTypeInt64, false
	case uint64:
		return VariantTypeUInt64, false
	case float32:
		return VariantTypeFloat, false
	case float64:
		return VariantTypeDouble, false
	case string:
		return VariantTypeString, false
	case time.Time:
		return VariantTypeDateTime, false
	case uuid.UUID:
		return VariantTypeGUID, false
	case ByteString:
		return VariantTypeByteString, false
	case XMLElement:
		return VariantTypeXMLElement, false
	case NodeID:
		return VariantTypeNodeID, false
	case ExpandedNodeID:
		return VariantTypeExpandedNodeID, false
	case StatusCode:
		return VariantTypeStatusCode, false
	case QualifiedName:
		return VariantTypeQualifiedName, false
	case LocalizedText:
		return VariantTypeLocalizedText, false
	case ExtensionObject:
		return VariantTypeExtensionObject, false
	case DataValue:
		return VariantTypeDataValue, false
	case DiagnosticInfo:
		return VariantTypeDiagnosticInfo, false
	case []bool:
		return VariantTypeBoolean, true
	case []int8:
		return VariantTypeSByte, true
	case []byte:
		return VariantTypeByte, true
	case []int16:
		return VariantTypeInt16, true
	case []uint16:
		return VariantTypeUInt16, true
	case []int32:
		return VariantTypeInt32, true
	case []uint32:
		return VariantTypeUInt32, true
	case []int64:
		return VariantTypeInt64, true
	case []uint64:
		return VariantTypeUInt64, true
	case []float32:
		return VariantTypeFloat, true
	case []float64:
		return VariantTypeDouble, true
	case []string:
		return VariantTypeString, true
	case []time.Time:
		return VariantTypeDateTime, true
	case []uuid.UUID:
		return VariantTypeGUID, true
	case []ByteString:
		return VariantTypeByteString, true
	case []XMLElement:
		return VariantTypeXMLElement, true
	case []NodeID:
		return VariantTypeNodeID, true
	case []ExpandedNodeID:
		return VariantTypeExpandedNodeID, true
	case []StatusCode:
		return VariantTypeStatusCode, true
	case []QualifiedName:
		return VariantTypeQualifiedName, true
	case []LocalizedText:
		return VariantTypeLocalizedText, true
	case []ExtensionObject:
		return VariantTypeExtensionObject, true
	case []DataValue:
		return VariantTypeDataValue, true
	case []Variant:
		return VariantTypeVariant, true
	case []DiagnosticInfo:
		return VariantTypeDiagnosticInfo, true
	case Matrix:
		m := v.(Matrix)
		t, _ := builtInTypeOf(m.Elements)
		return t, true
	default:
		return VariantTypeNull, false
	}
}
