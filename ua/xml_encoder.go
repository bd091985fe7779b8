package ua

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"time"

	uuid "github.com/google/uuid"
)

// xmlNamespaceURI is the schema namespace of the UA XML encoding.
const xmlNamespaceURI = "http://opcfoundation.org/UA/2008/02/Types.xsd"

// XMLEncoder encodes the UA XML representation: one named element per
// field, ListOf wrappers for arrays, a single reversible semantic.
type XMLEncoder struct {
	buf *bytes.Buffer
	ec  *EncodingContext
}

// NewXMLEncoder returns a new encoder writing elements to buf.
func NewXMLEncoder(buf *bytes.Buffer, ec *EncodingContext) *XMLEncoder {
	return &XMLEncoder{buf, ec}
}

var _ Encoder = (*XMLEncoder)(nil)

func (enc *XMLEncoder) open(name string) {
	enc.buf.WriteByte('<')
	enc.buf.WriteString(name)
	enc.buf.WriteByte('>')
}

func (enc *XMLEncoder) close(name string) {
	enc.buf.WriteString("</")
	enc.buf.WriteString(name)
	enc.buf.WriteByte('>')
}

func (enc *XMLEncoder) text(s string) {
	for _, r := range s {
		switch r {
		case '<':
			enc.buf.WriteString("&lt;")
		case '>':
			enc.buf.WriteString("&gt;")
		case '&':
			enc.buf.WriteString("&amp;")
		case '"':
			enc.buf.WriteString("&quot;")
		default:
			enc.buf.WriteRune(r)
		}
	}
}

func (enc *XMLEncoder) element(name, text string) {
	enc.open(name)
	enc.text(text)
	enc.close(name)
}

func xmlFloatText(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}

func xmlDateTimeText(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.9999999Z07:00")
}

// WriteBoolean writes a boolean element.
func (enc *XMLEncoder) WriteBoolean(name string, value bool) error {
	enc.element(name, strconv.FormatBool(value))
	return nil
}

func (enc *XMLEncoder) WriteSByte(name string, value int8) error {
	enc.element(name, strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteByte(name string, value byte) error {
	enc.element(name, strconv.FormatUint(uint64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteInt16(name string, value int16) error {
	enc.element(name, strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteUInt16(name string, value uint16) error {
	enc.element(name, strconv.FormatUint(uint64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteInt32(name string, value int32) error {
	enc.element(name, strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteUInt32(name string, value uint32) error {
	enc.element(name, strconv.FormatUint(uint64(value), 10))
	return nil
}

func (enc *XMLEncoder) WriteInt64(name string, value int64) error {
	enc.element(name, strconv.FormatInt(value, 10))
	return nil
}

func (enc *XMLEncoder) WriteUInt64(name string, value uint64) error {
	enc.element(name, strconv.FormatUint(value, 10))
	return nil
}

func (enc *XMLEncoder) WriteFloat(name string, value float32) error {
	enc.element(name, xmlFloatText(float64(value), 32))
	return nil
}

func (enc *XMLEncoder) WriteDouble(name string, value float64) error {
	enc.element(name, xmlFloatText(value, 64))
	return nil
}

func (enc *XMLEncoder) WriteString(name string, value string) error {
	enc.element(name, value)
	return nil
}

func (enc *XMLEncoder) WriteDateTime(name string, value time.Time) error {
	enc.element(name, xmlDateTimeText(value))
	return nil
}

// WriteGUID writes a Guid element; the value rides in a String child.
func (enc *XMLEncoder) WriteGUID(name string, value uuid.UUID) error {
	enc.open(name)
	enc.element("String", value.String())
	enc.close(name)
	return nil
}

func (enc *XMLEncoder) WriteByteString(name string, value ByteString) error {
	enc.element(name, base64.StdEncoding.EncodeToString([]byte(value)))
	return nil
}

// WriteXMLElement writes the fragment verbatim inside the field element.
func (enc *XMLEncoder) WriteXMLElement(name string, value XMLElement) error {
	enc.open(name)
	enc.buf.WriteString(string(value))
	enc.close(name)
	return nil
}

// WriteNodeID writes a NodeId element; the Identifier child carries the
// display form, e.g. "ns=2;s=Demo".
func (enc *XMLEncoder) WriteNodeID(name string, value NodeID) error {
	enc.open(name)
	enc.element("Identifier", nodeIDToString(value))
	enc.close(name)
	return nil
}

func (enc *XMLEncoder) WriteExpandedNodeID(name string, value ExpandedNodeID) error {
	enc.open(name)
	enc.element("Identifier", value.String())
	enc.close(name)
	return nil
}

// WriteStatusCode writes a StatusCode element with its numeric Code.
func (enc *XMLEncoder) WriteStatusCode(name string, value StatusCode) error {
	enc.open(name)
	enc.element("Code", strconv.FormatUint(uint64(value), 10))
	enc.close(name)
	return nil
}

func (enc *XMLEncoder) WriteQualifiedName(name string, value QualifiedName) error {
	enc.open(name)
	enc.element("NamespaceIndex", strconv.FormatUint(uint64(value.NamespaceIndex), 10))
	enc.element("Name", value.Name)
	enc.close(name)
	return nil
}

func (enc *XMLEncoder) WriteLocalizedText(name string, value LocalizedText) error {
	enc.open(name)
	if value.Locale != "" {
		enc.element("Locale", value.Locale)
	}
	if value.Text != "" {
		enc.element("Text", value.Text)
	}
	enc.close(name)
	return nil
}

// WriteExtensionObject writes an ExtensionObject element. A decoded body
// nests the registered type's own element under Body; an opaque XML body
// is replayed verbatim.
func (enc *XMLEncoder) WriteExtensionObject(name string, value ExtensionObject) error {
	switch body := value.Body.(type) {
	case nil:
		enc.open(name)
		enc.open("TypeId")
		enc.element("Identifier", value.TypeID.String())
		enc.close("TypeId")
		enc.close(name)
		return nil
	case XMLElement:
		enc.open(name)
		enc.open("TypeId")
		enc.element("Identifier", value.TypeID.String())
		enc.close("TypeId")
		enc.open("Body")
		enc.buf.WriteString(string(body))
		enc.close("Body")
		enc.close(name)
		return nil
	case Encodeable:
		reg, ok := FindRegistrationForType(body)
		if !ok {
			return BadEncodingError
		}
		id := reg.XMLID
		if id.IsNil() {
			return BadEncodingError
		}
		enc.open(name)
		enc.open("TypeId")
		enc.element("Identifier", id.String())
		enc.close("TypeId")
		enc.open("Body")
		enc.open(reg.Name)
		nsURI := id.NamespaceURI
		if nsURI == "" {
			if u, ok2 := enc.ec.NamespaceURI(namespaceIndexOf(id.NodeID)); ok2 {
				nsURI = u
			}
		}
		enc.ec.PushNamespace(nsURI)
		err := body.EncodeTo(enc)
		enc.ec.PopNamespace()
		if err != nil {
			return err
		}
		enc.close(reg.Name)
		enc.close("Body")
		enc.close(name)
		return nil
	default:
		// a binary or JSON opaque body cannot be expressed in XML
		return BadEncodingError
	}
}

func (enc *XMLEncoder) WriteDataValue(name string, value DataValue) error {
	enc.open(name)
	if value.Value != nil {
		if err := enc.WriteVariant("Value", value.Value); err != nil {
			return err
		}
	}
	if value.StatusCode != 0 {
		if err := enc.WriteStatusCode("StatusCode", value.StatusCode); err != nil {
			return err
		}
	}
	if !value.SourceTimestamp.IsZero() {
		if err := enc.WriteDateTime("SourceTimestamp", value.SourceTimestamp); err != nil {
			return err
		}
	}
	if value.SourcePicoseconds != 0 {
		if err := enc.WriteUInt16("SourcePicoseconds", value.SourcePicoseconds); err != nil {
			return err
		}
	}
	if !value.ServerTimestamp.IsZero() {
		if err := enc.WriteDateTime("ServerTimestamp", value.ServerTimestamp); err != nil {
			return err
		}
	}
	if value.ServerPicoseconds != 0 {
		if err := enc.WriteUInt16("ServerPicoseconds", value.ServerPicoseconds); err != nil {
			return err
		}
	}
	enc.close(name)
	return nil
}

// WriteVariant writes a Variant element holding one child named for the
// built-in type, a ListOf child for an array, or a Matrix child.
func (enc *XMLEncoder) WriteVariant(name string, value Variant) error {
	enc.open(name)
	defer enc.close(name)
	switch v1 := value.(type) {
	case nil:
		return nil
	case Matrix:
		if !v1.valid() {
			return BadEncodingError
		}
		t, _ := builtInTypeOf(v1.Elements)
		if t == VariantTypeNull {
			return BadEncodingError
		}
		enc.open("Matrix")
		if err := enc.WriteInt32Array("Dimensions", v1.Dimensions); err != nil {
			return err
		}
		if err := enc.writeVariantElements("Elements", t, v1.Elements); err != nil {
			return err
		}
		enc.close("Matrix")
		return nil
	case ExtensionObject:
		return enc.WriteExtensionObject("ExtensionObject", v1)
	}
	t, isArray := builtInTypeOf(value)
	if t == VariantTypeNull {
		if body, ok := value.(Encodeable); ok {
			return enc.WriteExtensionObject("ExtensionObject", NewExtensionObject(body))
		}
		return BadEncodingError
	}
	if isArray {
		return enc.writeVariantElements("ListOf"+variantTypeNames[t], t, value)
	}
	return enc.writeVariantScalar(variantTypeNames[t], value)
}

func (enc *XMLEncoder) writeVariantScalar(name string, value Variant) error {
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

func (enc *XMLEncoder) writeVariantElements(name string, t byte, value Variant) error {
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

func (enc *XMLEncoder) WriteDiagnosticInfo(name string, value DiagnosticInfo) error {
	enc.open(name)
	if value.SymbolicID != nil {
		if err := enc.WriteInt32("SymbolicId", *value.SymbolicID); err != nil {
			return err
		}
	}
	if value.NamespaceURI != nil {
		if err := enc.WriteInt32("NamespaceUri", *value.NamespaceURI); err != nil {
			return err
		}
	}
	if value.Locale != nil {
		if err := enc.WriteInt32("Locale", *value.Locale); err != nil {
			return err
		}
	}
	if value.LocalizedText != nil {
		if err := enc.WriteInt32("LocalizedText", *value.LocalizedText); err != nil {
			return err
		}
	}
	if value.AdditionalInfo != nil {
		if err := enc.WriteString("AdditionalInfo", *value.AdditionalInfo); err != nil {
			return err
		}
	}
	if value.InnerStatusCode != nil {
		if err := enc.WriteStatusCode("InnerStatusCode", *value.InnerStatusCode); err != nil {
			return err
		}
	}
	if value.InnerDiagnosticInfo != nil {
		if err := enc.WriteDiagnosticInfo("InnerDiagnosticInfo", *value.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	enc.close(name)
	return nil
}

// writeList writes the field wrapper and one item element per entry. A
// nil slice omits the field so nil and empty stay distinguishable.
func (enc *XMLEncoder) writeList(name string, n int, isNil bool, item func(i int) error) error {
	if isNil {
		return nil
	}
	enc.open(name)
	for i := 0; i < n; i++ {
		if err := item(i); err != nil {
			return err
		}
	}
	enc.close(name)
	return nil
}

func (enc *XMLEncoder) WriteBooleanArray(name string, value []bool) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteBoolean("Boolean", value[i])
	})
}

func (enc *XMLEncoder) WriteSByteArray(name string, value []int8) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteSByte("SByte", value[i])
	})
}

func (enc *XMLEncoder) WriteByteArray(name string, value []byte) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteByte("Byte", value[i])
	})
}

func (enc *XMLEncoder) WriteInt16Array(name string, value []int16) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteInt16("Int16", value[i])
	})
}

func (enc *XMLEncoder) WriteUInt16Array(name string, value []uint16) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteUInt16("UInt16", value[i])
	})
}

func (enc *XMLEncoder) WriteInt32Array(name string, value []int32) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteInt32("Int32", value[i])
	})
}

func (enc *XMLEncoder) WriteUInt32Array(name string, value []uint32) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteUInt32("UInt32", value[i])
	})
}

func (enc *XMLEncoder) WriteInt64Array(name string, value []int64) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteInt64("Int64", value[i])
	})
}

func (enc *XMLEncoder) WriteUInt64Array(name string, value []uint64) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteUInt64("UInt64", value[i])
	})
}

func (enc *XMLEncoder) WriteFloatArray(name string, value []float32) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteFloat("Float", value[i])
	})
}

func (enc *XMLEncoder) WriteDoubleArray(name string, value []float64) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteDouble("Double", value[i])
	})
}

func (enc *XMLEncoder) WriteStringArray(name string, value []string) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteString("String", value[i])
	})
}

func (enc *XMLEncoder) WriteDateTimeArray(name string, value []time.Time) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteDateTime("DateTime", value[i])
	})
}

func (enc *XMLEncoder) WriteGUIDArray(name string, value []uuid.UUID) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteGUID("Guid", value[i])
	})
}

func (enc *XMLEncoder) WriteByteStringArray(name string, value []ByteString) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteByteString("ByteString", value[i])
	})
}

func (enc *XMLEncoder) WriteXMLElementArray(name string, value []XMLElement) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteXMLElement("XmlElement", value[i])
	})
}

func (enc *XMLEncoder) WriteNodeIDArray(name string, value []NodeID) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteNodeID("NodeId", value[i])
	})
}

func (enc *XMLEncoder) WriteExpandedNodeIDArray(name string, value []ExpandedNodeID) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteExpandedNodeID("ExpandedNodeId", value[i])
	})
}

func (enc *XMLEncoder) WriteStatusCodeArray(name string, value []StatusCode) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteStatusCode("StatusCode", value[i])
	})
}

func (enc *XMLEncoder) WriteQualifiedNameArray(name string, value []QualifiedName) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteQualifiedName("QualifiedName", value[i])
	})
}

func (enc *XMLEncoder) WriteLocalizedTextArray(name string, value []LocalizedText) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteLocalizedText("LocalizedText", value[i])
	})
}

func (enc *XMLEncoder) WriteExtensionObjectArray(name string, value []ExtensionObject) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteExtensionObject("ExtensionObject", value[i])
	})
}

func (enc *XMLEncoder) WriteDataValueArray(name string, value []DataValue) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteDataValue("DataValue", value[i])
	})
}

func (enc *XMLEncoder) WriteVariantArray(name string, value []Variant) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteVariant("Variant", value[i])
	})
}

func (enc *XMLEncoder) WriteDiagnosticInfoArray(name string, value []DiagnosticInfo) error {
	return enc.writeList(name, len(value), value == nil, func(i int) error {
		return enc.WriteDiagnosticInfo("DiagnosticInfo", value[i])
	})
}

// encodeXMLMessage frames a registered message as a root element named
// by its registration, carrying the schema namespace.
func encodeXMLMessage(msg Encodeable, ec *EncodingContext) ([]byte, error) {
	reg, ok := FindRegistrationForType(msg)
	if !ok || reg.XMLID.IsNil() {
		return nil, BadEncodingError
	}
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.WriteString(reg.Name)
	buf.WriteString(` xmlns="`)
	buf.WriteString(xmlNamespaceURI)
	buf.WriteString(`">`)
	enc := NewXMLEncoder(&buf, ec)
	if err := msg.EncodeTo(enc); err != nil {
		return nil, err
	}
	buf.WriteString("</")
	buf.WriteString(reg.Name)
	buf.WriteByte('>')
	return buf.Bytes(), nil
}
