package ua

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	uuid "github.com/google/uuid"
)

// jsonPolicy drives the one JSON engine. The four public variants are
// presets over these flags.
type jsonPolicy struct {
	tagAmbiguous          bool // wrap variant bodies with a Type discriminator
	displayStrings        bool // render display forms instead of lossless ones
	shortNames            bool // emit the shortened structural field names
	verboseExtras         bool // add human-readable extras (status symbols)
	includeDefaults       bool
	includeNumberDefaults bool
}

func jsonPolicyFor(o encodeOptions) jsonPolicy {
	p := jsonPolicy{
		tagAmbiguous:          true,
		includeDefaults:       o.includeDefaults,
		includeNumberDefaults: o.includeNumberDefaults,
	}
	switch o.jsonVariant {
	case JSONNonReversible:
		p.tagAmbiguous = false
		p.displayStrings = true
	case JSONCompact:
		p.shortNames = true
	case JSONVerbose:
		p.verboseExtras = true
	}
	return p
}

// jsonShortNames maps the structural field names to their compact
// spellings. Decoders accept either spelling regardless of variant.
var jsonShortNames = map[string]string{
	"Type": "t", "Body": "b", "Dimensions": "d",
	"Id": "i", "IdType": "it", "Namespace": "n", "ServerUri": "su",
	"Name": "n", "Uri": "u", "Locale": "l", "Text": "t",
	"TypeId": "ti", "Encoding": "e",
	"Value": "v", "Status": "s",
	"SourceTimestamp": "st", "SourcePicoseconds": "sp",
	"ServerTimestamp": "svt", "ServerPicoseconds": "svp",
	"Code": "c", "Symbol": "sy",
	"SymbolicId": "si", "NamespaceUri": "nu", "LocalizedText": "lt",
	"AdditionalInfo": "ai", "InnerStatusCode": "isc", "InnerDiagnosticInfo": "idi",
}

const (
	jsonMinDateTime = "0001-01-01T00:00:00Z"
	jsonMaxDateTime = "9999-12-31T23:59:59Z"
)

// JSONEncoder encodes the UA JSON representation under one of the four
// variant policies.
type JSONEncoder struct {
	buf    *bytes.Buffer
	ec     *EncodingContext
	policy jsonPolicy
	comma  []bool
}

// NewJSONEncoder returns a new encoder writing to buf under the policy.
func NewJSONEncoder(buf *bytes.Buffer, ec *EncodingContext, policy jsonPolicy) *JSONEncoder {
	return &JSONEncoder{buf: buf, ec: ec, policy: policy}
}

var _ Encoder = (*JSONEncoder)(nil)

func (enc *JSONEncoder) beginObject() {
	enc.buf.WriteByte('{')
	enc.comma = append(enc.comma, false)
}

func (enc *JSONEncoder) endObject() {
	enc.buf.WriteByte('}')
	enc.comma = enc.comma[:len(enc.comma)-1]
}

// field opens a named member in the current object scope, applying the
// compact name mapping when the policy asks for it.
func (enc *JSONEncoder) field(name string) {
	if len(enc.comma) > 0 {
		if enc.comma[len(enc.comma)-1] {
			enc.buf.WriteByte(',')
		}
		enc.comma[len(enc.comma)-1] = true
	}
	if enc.policy.shortNames {
		if s, ok := jsonShortNames[name]; ok {
			name = s
		}
	}
	enc.buf.WriteByte('"')
	enc.buf.WriteString(name)
	enc.buf.WriteString(`":`)
}

func (enc *JSONEncoder) stringValue(s string) {
	b, _ := json.Marshal(s)
	enc.buf.Write(b)
}

func jsonFloatText(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return `"NaN"`
	case math.IsInf(f, 1):
		return `"Infinity"`
	case math.IsInf(f, -1):
		return `"-Infinity"`
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}

func jsonDateTimeText(t time.Time) string {
	if t.IsZero() {
		return jsonMinDateTime
	}
	if t.Year() >= 9999 {
		return jsonMaxDateTime
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (enc *JSONEncoder) WriteBoolean(name string, value bool) error {
	if !value && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatBool(value))
	return nil
}

func (enc *JSONEncoder) WriteSByte(name string, value int8) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *JSONEncoder) WriteByte(name string, value byte) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatUint(uint64(value), 10))
	return nil
}

func (enc *JSONEncoder) WriteInt16(name string, value int16) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *JSONEncoder) WriteUInt16(name string, value uint16) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatUint(uint64(value), 10))
	return nil
}

func (enc *JSONEncoder) WriteInt32(name string, value int32) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatInt(int64(value), 10))
	return nil
}

func (enc *JSONEncoder) WriteUInt32(name string, value uint32) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(strconv.FormatUint(uint64(value), 10))
	return nil
}

// WriteInt64 writes an int64. Lossless variants quote 64-bit integers so
// JavaScript consumers cannot silently round them.
func (enc *JSONEncoder) WriteInt64(name string, value int64) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.writeInt64Value(value)
	return nil
}

func (enc *JSONEncoder) writeInt64Value(value int64) {
	if enc.policy.displayStrings {
		enc.buf.WriteString(strconv.FormatInt(value, 10))
		return
	}
	enc.buf.WriteByte('"')
	enc.buf.WriteString(strconv.FormatInt(value, 10))
	enc.buf.WriteByte('"')
}

func (enc *JSONEncoder) WriteUInt64(name string, value uint64) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.writeUInt64Value(value)
	return nil
}

func (enc *JSONEncoder) writeUInt64Value(value uint64) {
	if enc.policy.displayStrings {
		enc.buf.WriteString(strconv.FormatUint(value, 10))
		return
	}
	enc.buf.WriteByte('"')
	enc.buf.WriteString(strconv.FormatUint(value, 10))
	enc.buf.WriteByte('"')
}

func (enc *JSONEncoder) WriteFloat(name string, value float32) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(jsonFloatText(float64(value), 32))
	return nil
}

func (enc *JSONEncoder) WriteDouble(name string, value float64) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.buf.WriteString(jsonFloatText(value, 64))
	return nil
}

func (enc *JSONEncoder) WriteString(name string, value string) error {
	if value == "" && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.stringValue(value)
	return nil
}

func (enc *JSONEncoder) WriteDateTime(name string, value time.Time) error {
	if value.IsZero() && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.stringValue(jsonDateTimeText(value))
	return nil
}

func (enc *JSONEncoder) WriteGUID(name string, value uuid.UUID) error {
	if value == (uuid.UUID{}) && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.stringValue(value.String())
	return nil
}

func (enc *JSONEncoder) WriteByteString(name string, value ByteString) error {
	if len(value) == 0 && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.stringValue(base64.StdEncoding.EncodeToString([]byte(value)))
	return nil
}

func (enc *JSONEncoder) WriteXMLElement(name string, value XMLElement) error {
	if value == "" && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.stringValue(string(value))
	return nil
}

func (enc *JSONEncoder) WriteNodeID(name string, value NodeID) error {
	if value == nil && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.writeNodeIDValue(value)
	return nil
}

// writeNodeIDValue writes {Id, IdType, Namespace}. IdType is omitted for
// a numeric id; the namespace renders as an index in lossless variants
// and as a URI in display rendering when the table resolves it.
func (enc *JSONEncoder) writeNodeIDValue(value NodeID) {
	if value == nil {
		enc.buf.WriteString("null")
		return
	}
	enc.beginObject()
	switch v := value.(type) {
	case NodeIDNumeric:
		enc.field("Id")
		enc.buf.WriteString(strconv.FormatUint(uint64(v.ID), 10))
	case NodeIDString:
		enc.field("IdType")
		enc.buf.WriteByte('1')
		enc.field("Id")
		enc.stringValue(v.ID)
	case NodeIDGUID:
		enc.field("IdType")
		enc.buf.WriteByte('2')
		enc.field("Id")
		enc.stringValue(v.ID.String())
	case NodeIDOpaque:
		enc.field("IdType")
		enc.buf.WriteByte('3')
		enc.field("Id")
		enc.stringValue(base64.StdEncoding.EncodeToString([]byte(v.ID)))
	}
	if ns := namespaceIndexOf(value); ns != 0 {
		enc.field("Namespace")
		if enc.policy.displayStrings {
			if uri, ok := enc.ec.NamespaceURI(ns); ok && uri != "" {
				enc.stringValue(uri)
			} else {
				enc.buf.WriteString(strconv.FormatUint(uint64(ns), 10))
			}
		} else {
			enc.buf.WriteString(strconv.FormatUint(uint64(ns), 10))
		}
	}
	enc.endObject()
}

func (enc *JSONEncoder) WriteExpandedNodeID(name string, value ExpandedNodeID) error {
	if value.IsNil() && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.writeExpandedNodeIDValue(value)
	return nil
}

func (enc *JSONEncoder) writeExpandedNodeIDValue(value ExpandedNodeID) {
	if value.IsNil() {
		enc.buf.WriteString("null")
		return
	}
	enc.beginObject()
	switch v := value.NodeID.(type) {
	case NodeIDNumeric:
		enc.field("Id")
		enc.buf.WriteString(strconv.FormatUint(uint64(v.ID), 10))
	case NodeIDString:
		enc.field("IdType")
		enc.buf.WriteByte('1')
		enc.field("Id")
		enc.stringValue(v.ID)
	case NodeIDGUID:
		enc.field("IdType")
		enc.buf.WriteByte('2')
		enc.field("Id")
		enc.stringValue(v.ID.String())
	case NodeIDOpaque:
		enc.field("IdType")
		enc.buf.WriteByte('3')
		enc.field("Id")
		enc.stringValue(base64.StdEncoding.EncodeToString([]byte(v.ID)))
	}
	if value.NamespaceURI != "" {
		enc.field("Namespace")
		enc.stringValue(value.NamespaceURI)
	} else if ns := namespaceIndexOf(value.NodeID); ns != 0 {
		enc.field("Namespace")
		enc.buf.WriteString(strconv.FormatUint(uint64(ns), 10))
	}
	if value.ServerIndex != 0 {
		enc.field("ServerUri")
		if enc.policy.displayStrings {
			if uri, ok := enc.ec.ServerURI(value.ServerIndex); ok && uri != "" {
				enc.stringValue(uri)
			} else {
				enc.buf.WriteString(strconv.FormatUint(uint64(value.ServerIndex), 10))
			}
		} else {
			enc.buf.WriteString(strconv.FormatUint(uint64(value.ServerIndex), 10))
		}
	}
	enc.endObject()
}

func (enc *JSONEncoder) WriteStatusCode(name string, value StatusCode) error {
	if value == 0 && !enc.policy.includeNumberDefaults {
		return nil
	}
	enc.field(name)
	enc.writeStatusCodeValue(value)
	return nil
}

// writeStatusCodeValue writes the numeric code, or {Code, Symbol} when
// the policy asks for the human-readable rendering.
func (enc *JSONEncoder) writeStatusCodeValue(value StatusCode) {
	if !enc.policy.verboseExtras && !enc.policy.displayStrings {
		enc.buf.WriteString(strconv.FormatUint(uint64(value), 10))
		return
	}
	enc.beginObject()
	enc.field("Code")
	enc.buf.WriteString(strconv.FormatUint(uint64(value), 10))
	if sym := value.Symbol(); sym != "" {
		enc.field("Symbol")
		enc.stringValue(sym)
	}
	enc.endObject()
}

func (enc *JSONEncoder) WriteQualifiedName(name string, value QualifiedName) error {
	if value == (QualifiedName{}) && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.writeQualifiedNameValue(value)
	return nil
}

func (enc *JSONEncoder) writeQualifiedNameValue(value QualifiedName) {
	enc.beginObject()
	if value.Name != "" {
		enc.field("Name")
		enc.stringValue(value.Name)
	}
	if value.NamespaceIndex != 0 {
		enc.field("Uri")
		if enc.policy.displayStrings {
			if uri, ok := enc.ec.NamespaceURI(value.NamespaceIndex); ok && uri != "" {
				enc.stringValue(uri)
			} else {
				enc.buf.WriteString(strconv.FormatUint(uint64(value.NamespaceIndex), 10))
			}
		} else {
			enc.buf.WriteString(strconv.FormatUint(uint64(value.NamespaceIndex), 10))
		}
	}
	enc.endObject()
}

func (enc *JSONEncoder) WriteLocalizedText(name string, value LocalizedText) error {
	if value == (LocalizedText{}) && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	enc.writeLocalizedTextValue(value)
	return nil
}

func (enc *JSONEncoder) writeLocalizedTextValue(value LocalizedText) {
	if enc.policy.displayStrings {
		enc.stringValue(value.Text)
		return
	}
	enc.beginObject()
	if value.Locale != "" {
		enc.field("Locale")
		enc.stringValue(value.Locale)
	}
	if value.Text != "" {
		enc.field("Text")
		enc.stringValue(value.Text)
	}
	enc.endObject()
}

func (enc *JSONEncoder) WriteExtensionObject(name string, value ExtensionObject) error {
	if value.IsNil() && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	return enc.writeExtensionObjectValue(value)
}

// writeExtensionObjectValue writes {TypeId, Encoding, Body}. A decoded
// body nests as an object without an Encoding member; opaque bodies use
// Encoding 1 (binary, base64) or 2 (XML); an opaque JSON fragment is
// inlined verbatim. Display rendering emits the body alone.
func (enc *JSONEncoder) writeExtensionObjectValue(value ExtensionObject) error {
	if value.IsNil() {
		enc.buf.WriteString("null")
		return nil
	}
	switch body := value.Body.(type) {
	case nil:
		enc.beginObject()
		enc.field("TypeId")
		enc.writeExpandedNodeIDValue(value.TypeID)
		enc.endObject()
		return nil
	case ByteString:
		if enc.policy.displayStrings {
			enc.stringValue(base64.StdEncoding.EncodeToString([]byte(body)))
			return nil
		}
		enc.beginObject()
		enc.field("TypeId")
		enc.writeExpandedNodeIDValue(value.TypeID)
		enc.field("Encoding")
		enc.buf.WriteByte('1')
		enc.field("Body")
		enc.stringValue(base64.StdEncoding.EncodeToString([]byte(body)))
		enc.endObject()
		return nil
	case XMLElement:
		if enc.policy.displayStrings {
			enc.stringValue(string(body))
			return nil
		}
		enc.beginObject()
		enc.field("TypeId")
		enc.writeExpandedNodeIDValue(value.TypeID)
		enc.field("Encoding")
		enc.buf.WriteByte('2')
		enc.field("Body")
		enc.stringValue(string(body))
		enc.endObject()
		return nil
	case JSONElement:
		if enc.policy.displayStrings {
			enc.buf.WriteString(string(body))
			return nil
		}
		enc.beginObject()
		enc.field("TypeId")
		enc.writeExpandedNodeIDValue(value.TypeID)
		enc.field("Body")
		enc.buf.WriteString(string(body))
		enc.endObject()
		return nil
	case Encodeable:
		id, ok := FindEncodingIDForType(FormatJSON, body)
		if !ok {
			return BadEncodingError
		}
		if enc.policy.displayStrings {
			return enc.writeEncodeableBodyValue(id, body)
		}
		enc.beginObject()
		enc.field("TypeId")
		enc.writeExpandedNodeIDValue(id)
		enc.field("Body")
		if err := enc.writeEncodeableBodyValue(id, body); err != nil {
			return err
		}
		enc.endObject()
		return nil
	default:
		return BadEncodingError
	}
}

func (enc *JSONEncoder) writeEncodeableBodyValue(id ExpandedNodeID, body Encodeable) error {
	nsURI := id.NamespaceURI
	if nsURI == "" {
		if u, ok := enc.ec.NamespaceURI(namespaceIndexOf(id.NodeID)); ok {
			nsURI = u
		}
	}
	enc.ec.PushNamespace(nsURI)
	defer enc.ec.PopNamespace()
	enc.beginObject()
	if err := body.EncodeTo(enc); err != nil {
		return err
	}
	enc.endObject()
	return nil
}

func (enc *JSONEncoder) WriteDataValue(name string, value DataValue) error {
	// field-wise zero check; the Value interface may hold a slice, so
	// the struct is not comparable as a whole
	zero := value.Value == nil && value.StatusCode == 0 &&
		value.SourceTimestamp.IsZero() && value.SourcePicoseconds == 0 &&
		value.ServerTimestamp.IsZero() && value.ServerPicoseconds == 0
	if zero && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	return enc.writeDataValueValue(value)
}

func (enc *JSONEncoder) writeDataValueValue(value DataValue) error {
	enc.beginObject()
	if value.Value != nil {
		enc.field("Value")
		if err := enc.writeVariantValue(value.Value); err != nil {
			return err
		}
	}
	if value.StatusCode != 0 {
		enc.field("Status")
		enc.writeStatusCodeValue(value.StatusCode)
	}
	if !value.SourceTimestamp.IsZero() {
		enc.field("SourceTimestamp")
		enc.stringValue(jsonDateTimeText(value.SourceTimestamp))
	}
	if value.SourcePicoseconds != 0 {
		enc.field("SourcePicoseconds")
		enc.buf.WriteString(strconv.FormatUint(uint64(value.SourcePicoseconds), 10))
	}
	if !value.ServerTimestamp.IsZero() {
		enc.field("ServerTimestamp")
		enc.stringValue(jsonDateTimeText(value.ServerTimestamp))
	}
	if value.ServerPicoseconds != 0 {
		enc.field("ServerPicoseconds")
		enc.buf.WriteString(strconv.FormatUint(uint64(value.ServerPicoseconds), 10))
	}
	enc.endObject()
	return nil
}

func (enc *JSONEncoder) WriteVariant(name string, value Variant) error {
	if value == nil && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	return enc.writeVariantValue(value)
}

// writeVariantValue writes {Type, Body, Dimensions} in lossless
// variants, or the bare body in display rendering.
func (enc *JSONEncoder) writeVariantValue(value Variant) error {
	if value == nil {
		enc.buf.WriteString("null")
		return nil
	}
	if m, ok := value.(Matrix); ok {
		if !m.valid() {
			return BadEncodingError
		}
		t, _ := builtInTypeOf(m.Elements)
		if t == VariantTypeNull {
			return BadEncodingError
		}
		if !enc.policy.tagAmbiguous {
			return enc.writeVariantElementsValue(t, m.Elements)
		}
		enc.beginObject()
		enc.field("Type")
		enc.buf.WriteString(strconv.FormatUint(uint64(t), 10))
		enc.field("Body")
		if err := enc.writeVariantElementsValue(t, m.Elements); err != nil {
			return err
		}
		enc.field("Dimensions")
		enc.buf.WriteByte('[')
		for i, d := range m.Dimensions {
			if i > 0 {
				enc.buf.WriteByte(',')
			}
			enc.buf.WriteString(strconv.FormatInt(int64(d), 10))
		}
		enc.buf.WriteByte(']')
		enc.endObject()
		return nil
	}
	t, isArray := builtInTypeOf(value)
	if t == VariantTypeNull {
		if body, ok := value.(Encodeable); ok {
			value = NewExtensionObject(body)
			t = VariantTypeExtensionObject
		} else {
			return BadEncodingError
		}
	}
	if !enc.policy.tagAmbiguous {
		if isArray {
			return enc.writeVariantElementsValue(t, value)
		}
		return enc.writeVariantScalarValue(value)
	}
	enc.beginObject()
	enc.field("Type")
	enc.buf.WriteString(strconv.FormatUint(uint64(t), 10))
	enc.field("Body")
	var err error
	if isArray {
		err = enc.writeVariantElementsValue(t, value)
	} else {
		err = enc.writeVariantScalarValue(value)
	}
	if err != nil {
		return err
	}
	enc.endObject()
	return nil
}

func (enc *JSONEncoder) writeVariantScalarValue(value Variant) error {
	switch v := value.(type) {
	case bool:
		enc.buf.WriteString(strconv.FormatBool(v))
	case int8:
		enc.buf.WriteString(strconv.FormatInt(int64(v), 10))
	case uint8:
		enc.buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case int16:
		enc.buf.WriteString(strconv.FormatInt(int64(v), 10))
	case uint16:
		enc.buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case int32:
		enc.buf.WriteString(strconv.FormatInt(int64(v), 10))
	case uint32:
		enc.buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case int64:
		enc.writeInt64Value(v)
	case uint64:
		enc.writeUInt64Value(v)
	case float32:
		enc.buf.WriteString(jsonFloatText(float64(v), 32))
	case float64:
		enc.buf.WriteString(jsonFloatText(v, 64))
	case string:
		enc.stringValue(v)
	case time.Time:
		enc.stringValue(jsonDateTimeText(v))
	case uuid.UUID:
		enc.stringValue(v.String())
	case ByteString:
		enc.stringValue(base64.StdEncoding.EncodeToString([]byte(v)))
	case XMLElement:
		enc.stringValue(string(v))
	case NodeID:
		enc.writeNodeIDValue(v)
	case ExpandedNodeID:
		enc.writeExpandedNodeIDValue(v)
	case StatusCode:
		enc.writeStatusCodeValue(v)
	case QualifiedName:
		enc.writeQualifiedNameValue(v)
	case LocalizedText:
		enc.writeLocalizedTextValue(v)
	case ExtensionObject:
		return enc.writeExtensionObjectValue(v)
	case DataValue:
		return enc.writeDataValueValue(v)
	case DiagnosticInfo:
		return enc.writeDiagnosticInfoValue(v)
	default:
		return BadEncodingError
	}
	return nil
}

func (enc *JSONEncoder) writeVariantElementsValue(t byte, value Variant) error {
	enc.buf.WriteByte('[')
	n := variantLen(value)
	for i := 0; i < n; i++ {
		if i > 0 {
			enc.buf.WriteByte(',')
		}
		var err error
		if t == VariantTypeVariant {
			err = enc.writeVariantValue(variantIndex(value, i))
		} else {
			err = enc.writeVariantScalarValue(variantIndex(value, i))
		}
		if err != nil {
			return err
		}
	}
	enc.buf.WriteByte(']')
	return nil
}

func (enc *JSONEncoder) WriteDiagnosticInfo(name string, value DiagnosticInfo) error {
	if value.IsNil() && !enc.policy.includeDefaults {
		return nil
	}
	enc.field(name)
	return enc.writeDiagnosticInfoValue(value)
}

func (enc *JSONEncoder) writeDiagnosticInfoValue(value DiagnosticInfo) error {
	enc.beginObject()
	if value.SymbolicID != nil {
		enc.field("SymbolicId")
		enc.buf.WriteString(strconv.FormatInt(int64(*value.SymbolicID), 10))
	}
	if value.NamespaceURI != nil {
		enc.field("NamespaceUri")
		enc.buf.WriteString(strconv.FormatInt(int64(*value.NamespaceURI), 10))
	}
	if value.Locale != nil {
		enc.field("Locale")
		enc.buf.WriteString(strconv.FormatInt(int64(*value.Locale), 10))
	}
	if value.LocalizedText != nil {
		enc.field("LocalizedText")
		enc.buf.WriteString(strconv.FormatInt(int64(*value.LocalizedText), 10))
	}
	if value.AdditionalInfo != nil {
		enc.field("AdditionalInfo")
		enc.stringValue(*value.AdditionalInfo)
	}
	if value.InnerStatusCode != nil {
		enc.field("InnerStatusCode")
		enc.writeStatusCodeValue(*value.InnerStatusCode)
	}
	if value.InnerDiagnosticInfo != nil {
		enc.field("InnerDiagnosticInfo")
		if err := enc.writeDiagnosticInfoValue(*value.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	enc.endObject()
	return nil
}

// writeArray writes a field holding a JSON array. A nil slice is
// suppressed like other defaults.
func (enc *JSONEncoder) writeArray(name string, isNil bool, n int, item func(i int) error) error {
	if isNil {
		if !enc.policy.includeDefaults {
			return nil
		}
		enc.field(name)
		enc.buf.WriteString("null")
		return nil
	}
	enc.field(name)
	enc.buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			enc.buf.WriteByte(',')
		}
		if err := item(i); err != nil {
			return err
		}
	}
	enc.buf.WriteByte(']')
	return nil
}

func (enc *JSONEncoder) WriteBooleanArray(name string, value []bool) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatBool(value[i]))
		return nil
	})
}

func (enc *JSONEncoder) WriteSByteArray(name string, value []int8) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatInt(int64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteByteArray(name string, value []byte) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatUint(uint64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteInt16Array(name string, value []int16) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatInt(int64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteUInt16Array(name string, value []uint16) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatUint(uint64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteInt32Array(name string, value []int32) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatInt(int64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteUInt32Array(name string, value []uint32) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(strconv.FormatUint(uint64(value[i]), 10))
		return nil
	})
}

func (enc *JSONEncoder) WriteInt64Array(name string, value []int64) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeInt64Value(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteUInt64Array(name string, value []uint64) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeUInt64Value(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteFloatArray(name string, value []float32) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(jsonFloatText(float64(value[i]), 32))
		return nil
	})
}

func (enc *JSONEncoder) WriteDoubleArray(name string, value []float64) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.buf.WriteString(jsonFloatText(value[i], 64))
		return nil
	})
}

func (enc *JSONEncoder) WriteStringArray(name string, value []string) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.stringValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteDateTimeArray(name string, value []time.Time) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.stringValue(jsonDateTimeText(value[i]))
		return nil
	})
}

func (enc *JSONEncoder) WriteGUIDArray(name string, value []uuid.UUID) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.stringValue(value[i].String())
		return nil
	})
}

func (enc *JSONEncoder) WriteByteStringArray(name string, value []ByteString) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.stringValue(base64.StdEncoding.EncodeToString([]byte(value[i])))
		return nil
	})
}

func (enc *JSONEncoder) WriteXMLElementArray(name string, value []XMLElement) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.stringValue(string(value[i]))
		return nil
	})
}

func (enc *JSONEncoder) WriteNodeIDArray(name string, value []NodeID) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeNodeIDValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteExpandedNodeIDArray(name string, value []ExpandedNodeID) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeExpandedNodeIDValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteStatusCodeArray(name string, value []StatusCode) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeStatusCodeValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteQualifiedNameArray(name string, value []QualifiedName) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeQualifiedNameValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteLocalizedTextArray(name string, value []LocalizedText) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		enc.writeLocalizedTextValue(value[i])
		return nil
	})
}

func (enc *JSONEncoder) WriteExtensionObjectArray(name string, value []ExtensionObject) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		return enc.writeExtensionObjectValue(value[i])
	})
}

func (enc *JSONEncoder) WriteDataValueArray(name string, value []DataValue) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		return enc.writeDataValueValue(value[i])
	})
}

func (enc *JSONEncoder) WriteVariantArray(name string, value []Variant) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		return enc.writeVariantValue(value[i])
	})
}

func (enc *JSONEncoder) WriteDiagnosticInfoArray(name string, value []DiagnosticInfo) error {
	return enc.writeArray(name, value == nil, len(value), func(i int) error {
		return enc.writeDiagnosticInfoValue(value[i])
	})
}

// encodeJSONMessage frames a registered message as
// {"TypeId": ..., "Body": { fields }}. The display rendering emits the
// body object alone, which is why it cannot be decoded back.
func encodeJSONMessage(msg Encodeable, ec *EncodingContext, policy jsonPolicy) ([]byte, error) {
	id, ok := FindEncodingIDForType(FormatJSON, msg)
	if !ok {
		return nil, BadEncodingError
	}
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf, ec, policy)
	if policy.displayStrings {
		if err := enc.writeEncodeableBodyValue(id, msg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	enc.beginObject()
	enc.field("TypeId")
	enc.writeExpandedNodeIDValue(id)
	enc.field("Body")
	if err := enc.writeEncodeableBodyValue(id, msg); err != nil {
		return nil, err
	}
	enc.endObject()
	return buf.Bytes(), nil
}
