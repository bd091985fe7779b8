package ua

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	uuid "github.com/google/uuid"
)

// xmlNode is one element of the parsed tree: name, ordered children and
// accumulated character data. The decoder walks the tree by field name,
// which makes element order irrelevant and unknown elements skippable.
type xmlNode struct {
	name     string
	space    string
	children []*xmlNode
	text     string
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *xmlNode) trimmedText() string {
	return strings.TrimSpace(n.text)
}

// parseXMLTree parses a document into a tree, enforcing the limits as
// it goes so a hostile document cannot inflate memory first.
func parseXMLTree(b []byte, limits EncodingLimits) (*xmlNode, error) {
	d := xml.NewDecoder(bytes.NewReader(b))
	var root *xmlNode
	var stack []*xmlNode
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, BadDecodingError
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, space: t.Name.Space}
			if len(stack) == 0 {
				if root != nil {
					return nil, BadDecodingError
				}
				root = n
			} else {
				p := stack[len(stack)-1]
				p.children = append(p.children, n)
				if limits.MaxArrayLength > 0 && uint32(len(p.children)) > limits.MaxArrayLength {
					return nil, BadEncodingLimitsExceeded
				}
			}
			stack = append(stack, n)
			if limits.MaxRecursionDepth > 0 && uint32(len(stack)) > limits.MaxRecursionDepth {
				return nil, BadEncodingLimitsExceeded
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, BadDecodingError
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				n := stack[len(stack)-1]
				n.text += string(t)
				if limits.MaxStringLength > 0 && uint32(len(n.text)) > limits.MaxStringLength {
					return nil, BadEncodingLimitsExceeded
				}
			}
		}
	}
	if root == nil || len(stack) != 0 {
		return nil, BadDecodingError
	}
	return root, nil
}

// renderXMLNode re-renders a subtree's inner content, used to keep an
// unregistered ExtensionObject body opaque.
func renderXMLNode(n *xmlNode, buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(n.name)
	buf.WriteByte('>')
	if len(n.children) == 0 {
		xml.EscapeText(buf, []byte(n.text))
	}
	for _, c := range n.children {
		renderXMLNode(c, buf)
	}
	buf.WriteString("</")
	buf.WriteString(n.name)
	buf.WriteByte('>')
}

// XMLDecoder decodes the UA XML representation from a parsed element
// tree. A scope stack tracks the element the field reads resolve in; a
// field element absent from the scope leaves the out-param at its zero
// value, per the forward-compatibility rule.
type XMLDecoder struct {
	ec    *EncodingContext
	stack []*xmlNode
}

// NewXMLDecoder returns a decoder scoped to the given element.
func NewXMLDecoder(root *xmlNode, ec *EncodingContext) *XMLDecoder {
	return &XMLDecoder{ec, []*xmlNode{root}}
}

var _ Decoder = (*XMLDecoder)(nil)

func (dec *XMLDecoder) current() *xmlNode {
	return dec.stack[len(dec.stack)-1]
}

func (dec *XMLDecoder) push(n *xmlNode) { dec.stack = append(dec.stack, n) }
func (dec *XMLDecoder) pop()            { dec.stack = dec.stack[:len(dec.stack)-1] }

func xmlParseInt(s string, bits int) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, BadDecodingError
	}
	return v, nil
}

func xmlParseUint(s string, bits int) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, BadDecodingError
	}
	return v, nil
}

func xmlParseFloat(s string, bits int) (float64, error) {
	switch s {
	case "":
		return 0, nil
	case "NaN":
		return math.NaN(), nil
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, BadDecodingError
	}
	return v, nil
}

func xmlParseDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, BadDecodingError
	}
	return t.UTC(), nil
}

func (dec *XMLDecoder) ReadBoolean(name string, value *bool) error {
	n := dec.current().child(name)
	if n == nil {
		*value = false
		return nil
	}
	switch n.trimmedText() {
	case "", "false", "0":
		*value = false
	case "true", "1":
		*value = true
	default:
		return BadDecodingError
	}
	return nil
}

func (dec *XMLDecoder) ReadSByte(name string, value *int8) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseInt(n.trimmedText(), 8)
	if err != nil {
		return err
	}
	*value = int8(v)
	return nil
}

func (dec *XMLDecoder) ReadByte(name string, value *byte) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseUint(n.trimmedText(), 8)
	if err != nil {
		return err
	}
	*value = byte(v)
	return nil
}

func (dec *XMLDecoder) ReadInt16(name string, value *int16) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseInt(n.trimmedText(), 16)
	if err != nil {
		return err
	}
	*value = int16(v)
	return nil
}

func (dec *XMLDecoder) ReadUInt16(name string, value *uint16) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseUint(n.trimmedText(), 16)
	if err != nil {
		return err
	}
	*value = uint16(v)
	return nil
}

func (dec *XMLDecoder) ReadInt32(name string, value *int32) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseInt(n.trimmedText(), 32)
	if err != nil {
		return err
	}
	*value = int32(v)
	return nil
}

func (dec *XMLDecoder) ReadUInt32(name string, value *uint32) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseUint(n.trimmedText(), 32)
	if err != nil {
		return err
	}
	*value = uint32(v)
	return nil
}

func (dec *XMLDecoder) ReadInt64(name string, value *int64) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseInt(n.trimmedText(), 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (dec *XMLDecoder) ReadUInt64(name string, value *uint64) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseUint(n.trimmedText(), 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (dec *XMLDecoder) ReadFloat(name string, value *float32) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseFloat(n.trimmedText(), 32)
	if err != nil {
		return err
	}
	*value = float32(v)
	return nil
}

func (dec *XMLDecoder) ReadDouble(name string, value *float64) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	v, err := xmlParseFloat(n.trimmedText(), 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (dec *XMLDecoder) ReadString(name string, value *string) error {
	n := dec.current().child(name)
	if n == nil {
		*value = ""
		return nil
	}
	*value = n.text
	return nil
}

func (dec *XMLDecoder) ReadDateTime(name string, value *time.Time) error {
	n := dec.current().child(name)
	if n == nil {
		*value = time.Time{}
		return nil
	}
	t, err := xmlParseDateTime(n.trimmedText())
	if err != nil {
		return err
	}
	*value = t
	return nil
}

func (dec *XMLDecoder) ReadGUID(name string, value *uuid.UUID) error {
	n := dec.current().child(name)
	if n == nil {
		*value = uuid.UUID{}
		return nil
	}
	s := ""
	if c := n.child("String"); c != nil {
		s = c.trimmedText()
	}
	if s == "" {
		*value = uuid.UUID{}
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return BadDecodingError
	}
	*value = id
	return nil
}

func (dec *XMLDecoder) ReadByteString(name string, value *ByteString) error {
	n := dec.current().child(name)
	if n == nil {
		*value = ""
		return nil
	}
	s := n.trimmedText()
	if s == "" {
		*value = ""
		return nil
	}
	bs, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return BadDecodingError
	}
	if max := dec.ec.Limits().MaxByteStringLength; max > 0 && uint32(len(bs)) > max {
		return BadEncodingLimitsExceeded
	}
	*value = ByteString(bs)
	return nil
}

func (dec *XMLDecoder) ReadXMLElement(name string, value *XMLElement) error {
	n := dec.current().child(name)
	if n == nil {
		*value = ""
		return nil
	}
	if len(n.children) == 0 {
		*value = XMLElement(n.text)
		return nil
	}
	var buf bytes.Buffer
	for _, c := range n.children {
		renderXMLNode(c, &buf)
	}
	*value = XMLElement(buf.String())
	return nil
}

func (dec *XMLDecoder) ReadNodeID(name string, value *NodeID) error {
	n := dec.current().child(name)
	if n == nil {
		*value = nil
		return nil
	}
	return dec.readNodeIDNode(n, value)
}

func (dec *XMLDecoder) readNodeIDNode(n *xmlNode, value *NodeID) error {
	c := n.child("Identifier")
	if c == nil || c.trimmedText() == "" {
		*value = nil
		return nil
	}
	id := ParseNodeID(c.trimmedText())
	if id == nil {
		return BadDecodingError
	}
	*value = id
	return nil
}

func (dec *XMLDecoder) ReadExpandedNodeID(name string, value *ExpandedNodeID) error {
	n := dec.current().child(name)
	if n == nil {
		*value = NilExpandedNodeID
		return nil
	}
	return dec.readExpandedNodeIDNode(n, value)
}

func (dec *XMLDecoder) readExpandedNodeIDNode(n *xmlNode, value *ExpandedNodeID) error {
	c := n.child("Identifier")
	if c == nil || c.trimmedText() == "" {
		*value = NilExpandedNodeID
		return nil
	}
	id := ParseExpandedNodeID(c.trimmedText())
	if id.IsNil() {
		return BadDecodingError
	}
	*value = id
	return nil
}

func (dec *XMLDecoder) ReadStatusCode(name string, value *StatusCode) error {
	n := dec.current().child(name)
	if n == nil {
		*value = 0
		return nil
	}
	s := ""
	if c := n.child("Code"); c != nil {
		s = c.trimmedText()
	}
	v, err := xmlParseUint(s, 32)
	if err != nil {
		return err
	}
	*value = StatusCode(v)
	return nil
}

func (dec *XMLDecoder) ReadQualifiedName(name string, value *QualifiedName) error {
	n := dec.current().child(name)
	if n == nil {
		*value = QualifiedName{}
		return nil
	}
	return dec.readQualifiedNameNode(n, value)
}

func (dec *XMLDecoder) readQualifiedNameNode(n *xmlNode, value *QualifiedName) error {
	var ns uint64
	var err error
	if c := n.child("NamespaceIndex"); c != nil {
		if ns, err = xmlParseUint(c.trimmedText(), 16); err != nil {
			return err
		}
	}
	var s string
	if c := n.child("Name"); c != nil {
		s = c.text
	}
	*value = QualifiedName{uint16(ns), s}
	return nil
}

func (dec *XMLDecoder) ReadLocalizedText(name string, value *LocalizedText) error {
	n := dec.current().child(name)
	if n == nil {
		*value = LocalizedText{}
		return nil
	}
	return dec.readLocalizedTextNode(n, value)
}

func (dec *XMLDecoder) readLocalizedTextNode(n *xmlNode, value *LocalizedText) error {
	var lt LocalizedText
	if c := n.child("Locale"); c != nil {
		lt.Locale = c.text
	}
	if c := n.child("Text"); c != nil {
		lt.Text = c.text
	}
	*value = lt
	return nil
}

func (dec *XMLDecoder) ReadExtensionObject(name string, value *ExtensionObject) error {
	n := dec.current().child(name)
	if n == nil {
		*value = NilExtensionObject
		return nil
	}
	return dec.readExtensionObjectNode(n, value)
}

func (dec *XMLDecoder) readExtensionObjectNode(n *xmlNode, value *ExtensionObject) error {
	var id ExpandedNodeID
	if c := n.child("TypeId"); c != nil {
		if err := dec.readExpandedNodeIDNode(c, &id); err != nil {
			return err
		}
	}
	body := n.child("Body")
	if body == nil || (len(body.children) == 0 && body.trimmedText() == "") {
		*value = ExtensionObject{TypeID: id}
		return nil
	}
	if reg, ok := FindRegistrationForEncodingID(FormatXML, id); ok {
		inner := body.child(reg.Name)
		if inner == nil && len(body.children) == 1 {
			inner = body.children[0]
		}
		if inner == nil {
			return BadDecodingError
		}
		nsURI := id.NamespaceURI
		if nsURI == "" {
			if u, ok2 := dec.ec.NamespaceURI(namespaceIndexOf(id.NodeID)); ok2 {
				nsURI = u
			}
		}
		dec.ec.PushNamespace(nsURI)
		defer dec.ec.PopNamespace()
		dec.push(inner)
		defer dec.pop()
		msg := reg.New()
		if err := msg.DecodeFrom(dec); err != nil {
			return err
		}
		*value = ExtensionObject{TypeID: id, Body: msg}
		return nil
	}
	// unknown type: keep the body as raw XML
	var buf bytes.Buffer
	if len(body.children) == 0 {
		buf.WriteString(body.text)
	}
	for _, c := range body.children {
		renderXMLNode(c, &buf)
	}
	*value = ExtensionObject{TypeID: id, Body: XMLElement(buf.String())}
	return nil
}

func (dec *XMLDecoder) ReadDataValue(name string, value *DataValue) error {
	n := dec.current().child(name)
	if n == nil {
		*value = DataValue{}
		return nil
	}
	return dec.readDataValueNode(n, value)
}

func (dec *XMLDecoder) readDataValueNode(n *xmlNode, value *DataValue) error {
	dec.push(n)
	defer dec.pop()
	var dv DataValue
	if err := dec.ReadVariant("Value", &dv.Value); err != nil {
		return err
	}
	if err := dec.ReadStatusCode("StatusCode", &dv.StatusCode); err != nil {
		return err
	}
	if err := dec.ReadDateTime("SourceTimestamp", &dv.SourceTimestamp); err != nil {
		return err
	}
	if err := dec.ReadUInt16("SourcePicoseconds", &dv.SourcePicoseconds); err != nil {
		return err
	}
	if err := dec.ReadDateTime("ServerTimestamp", &dv.ServerTimestamp); err != nil {
		return err
	}
	if err := dec.ReadUInt16("ServerPicoseconds", &dv.ServerPicoseconds); err != nil {
		return err
	}
	*value = dv
	return nil
}

// ReadVariant reads a Variant element: one child named for a built-in
// type, a ListOf wrapper, or a Matrix. An empty element is the null
// variant.
func (dec *XMLDecoder) ReadVariant(name string, value *Variant) error {
	n := dec.current().child(name)
	if n == nil || len(n.children) == 0 {
		*value = nil
		return nil
	}
	inner := n.children[0]
	if inner.name == "Matrix" {
		return dec.readMatrixNode(inner, value)
	}
	if strings.HasPrefix(inner.name, "ListOf") {
		t, ok := variantTypeByName(strings.TrimPrefix(inner.name, "ListOf"))
		if !ok {
			return BadDecodingError
		}
		return dec.readVariantElementsNode(inner, t, value)
	}
	t, ok := variantTypeByName(inner.name)
	if !ok {
		return BadDecodingError
	}
	return dec.readVariantScalarNode(n, inner, t, value)
}

func variantTypeByName(name string) (byte, bool) {
	for i, n := range variantTypeNames {
		if n == name && i != 0 {
			return byte(i), true
		}
	}
	return VariantTypeNull, false
}

func (dec *XMLDecoder) readMatrixNode(n *xmlNode, value *Variant) error {
	dims := n.child("Dimensions")
	elems := n.child("Elements")
	if dims == nil || elems == nil {
		return BadDecodingError
	}
	var dimensions []int32
	for _, c := range dims.children {
		v, err := xmlParseInt(c.trimmedText(), 32)
		if err != nil {
			return err
		}
		dimensions = append(dimensions, int32(v))
	}
	var t byte
	if len(elems.children) > 0 {
		var ok bool
		if t, ok = variantTypeByName(elems.children[0].name); !ok {
			return BadDecodingError
		}
	} else {
		return BadDecodingError
	}
	var elements Variant
	if err := dec.readVariantElementsNode(elems, t, &elements); err != nil {
		return err
	}
	m, err := NewMatrix(elements, dimensions)
	if err != nil {
		return BadDecodingError
	}
	*value = m
	return nil
}

// readVariantScalarNode reads the scalar held by inner. Structured
// scalars resolve their fields against parent so the field reads find
// the single named child.
func (dec *XMLDecoder) readVariantScalarNode(parent, inner *xmlNode, t byte, value *Variant) error {
	dec.push(parent)
	defer dec.pop()
	name := inner.name
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

// readVariantElementsNode reads the items of a ListOf wrapper into a
// typed slice.
func (dec *XMLDecoder) readVariantElementsNode(list *xmlNode, t byte, value *Variant) error {
	dec.push(list)
	defer dec.pop()
	n := len(list.children)
	switch t {
	case VariantTypeBoolean:
		vs := make([]bool, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(bool))
		}
		*value = vs
	case VariantTypeSByte:
		vs := make([]int8, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(int8))
		}
		*value = vs
	case VariantTypeByte:
		vs := make([]byte, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(byte))
		}
		*value = vs
	case VariantTypeInt16:
		vs := make([]int16, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(int16))
		}
		*value = vs
	case VariantTypeUInt16:
		vs := make([]uint16, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(uint16))
		}
		*value = vs
	case VariantTypeInt32:
		vs := make([]int32, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(int32))
		}
		*value = vs
	case VariantTypeUInt32:
		vs := make([]uint32, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(uint32))
		}
		*value = vs
	case VariantTypeInt64:
		vs := make([]int64, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(int64))
		}
		*value = vs
	case VariantTypeUInt64:
		vs := make([]uint64, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(uint64))
		}
		*value = vs
	case VariantTypeFloat:
		vs := make([]float32, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(float32))
		}
		*value = vs
	case VariantTypeDouble:
		vs := make([]float64, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(float64))
		}
		*value = vs
	case VariantTypeString:
		vs := make([]string, 0, n)
		for _, c := range list.children {
			vs = append(vs, c.text)
		}
		*value = vs
	case VariantTypeDateTime:
		vs := make([]time.Time, 0, n)
		for _, c := range list.children {
			v, err := xmlParseDateTime(c.trimmedText())
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeGUID:
		vs := make([]uuid.UUID, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(uuid.UUID))
		}
		*value = vs
	case VariantTypeByteString:
		vs := make([]ByteString, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(ByteString))
		}
		*value = vs
	case VariantTypeXMLElement:
		vs := make([]XMLElement, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(XMLElement))
		}
		*value = vs
	case VariantTypeNodeID:
		vs := make([]NodeID, 0, n)
		for _, c := range list.children {
			var v NodeID
			if err := dec.readNodeIDNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeExpandedNodeID:
		vs := make([]ExpandedNodeID, 0, n)
		for _, c := range list.children {
			var v ExpandedNodeID
			if err := dec.readExpandedNodeIDNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeStatusCode:
		vs := make([]StatusCode, 0, n)
		for _, c := range list.children {
			var e Variant
			if err := dec.readVariantScalarNode(&xmlNode{name: list.name, children: []*xmlNode{c}}, c, t, &e); err != nil {
				return err
			}
			vs = append(vs, e.(StatusCode))
		}
		*value = vs
	case VariantTypeQualifiedName:
		vs := make([]QualifiedName, 0, n)
		for _, c := range list.children {
			var v QualifiedName
			if err := dec.readQualifiedNameNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeLocalizedText:
		vs := make([]LocalizedText, 0, n)
		for _, c := range list.children {
			var v LocalizedText
			if err := dec.readLocalizedTextNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeExtensionObject:
		vs := make([]ExtensionObject, 0, n)
		for _, c := range list.children {
			var v ExtensionObject
			if err := dec.readExtensionObjectNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeDataValue:
		vs := make([]DataValue, 0, n)
		for _, c := range list.children {
			var v DataValue
			if err := dec.readDataValueNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeVariant:
		vs := make([]Variant, 0, n)
		for _, c := range list.children {
			wrap := &xmlNode{name: "wrap", children: []*xmlNode{c}}
			dec.push(wrap)
			var v Variant
			err := dec.ReadVariant(c.name, &v)
			dec.pop()
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	case VariantTypeDiagnosticInfo:
		vs := make([]DiagnosticInfo, 0, n)
		for _, c := range list.children {
			var v DiagnosticInfo
			if err := dec.readDiagnosticInfoNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
	default:
		return BadDecodingError
	}
	return nil
}

func (dec *XMLDecoder) ReadDiagnosticInfo(name string, value *DiagnosticInfo) error {
	n := dec.current().child(name)
	if n == nil {
		*value = DiagnosticInfo{}
		return nil
	}
	return dec.readDiagnosticInfoNode(n, value)
}

func (dec *XMLDecoder) readDiagnosticInfoNode(n *xmlNode, value *DiagnosticInfo) error {
	dec.push(n)
	defer dec.pop()
	var di DiagnosticInfo
	if n.child("SymbolicId") != nil {
		var v int32
		if err := dec.ReadInt32("SymbolicId", &v); err != nil {
			return err
		}
		di.SymbolicID = &v
	}
	if n.child("NamespaceUri") != nil {
		var v int32
		if err := dec.ReadInt32("NamespaceUri", &v); err != nil {
			return err
		}
		di.NamespaceURI = &v
	}
	if n.child("Locale") != nil {
		var v int32
		if err := dec.ReadInt32("Locale", &v); err != nil {
			return err
		}
		di.Locale = &v
	}
	if n.child("LocalizedText") != nil {
		var v int32
		if err := dec.ReadInt32("LocalizedText", &v); err != nil {
			return err
		}
		di.LocalizedText = &v
	}
	if c := n.child("AdditionalInfo"); c != nil {
		s := c.text
		di.AdditionalInfo = &s
	}
	if n.child("InnerStatusCode") != nil {
		var v StatusCode
		if err := dec.ReadStatusCode("InnerStatusCode", &v); err != nil {
			return err
		}
		di.InnerStatusCode = &v
	}
	if c := n.child("InnerDiagnosticInfo"); c != nil {
		var v DiagnosticInfo
		if err := dec.readDiagnosticInfoNode(c, &v); err != nil {
			return err
		}
		di.InnerDiagnosticInfo = &v
	}
	*value = di
	return nil
}

// readList resolves the field wrapper and hands each item element to
// collect. An absent wrapper reads as a nil slice.
func (dec *XMLDecoder) readList(name string, collect func(items []*xmlNode) error) error {
	n := dec.current().child(name)
	if n == nil {
		return collect(nil)
	}
	return collect(n.children)
}

func (dec *XMLDecoder) ReadBooleanArray(name string, value *[]bool) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]bool, 0, len(items))
		for _, c := range items {
			switch c.trimmedText() {
			case "", "false", "0":
				vs = append(vs, false)
			case "true", "1":
				vs = append(vs, true)
			default:
				return BadDecodingError
			}
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadSByteArray(name string, value *[]int8) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]int8, 0, len(items))
		for _, c := range items {
			v, err := xmlParseInt(c.trimmedText(), 8)
			if err != nil {
				return err
			}
			vs = append(vs, int8(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadByteArray(name string, value *[]byte) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]byte, 0, len(items))
		for _, c := range items {
			v, err := xmlParseUint(c.trimmedText(), 8)
			if err != nil {
				return err
			}
			vs = append(vs, byte(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadInt16Array(name string, value *[]int16) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]int16, 0, len(items))
		for _, c := range items {
			v, err := xmlParseInt(c.trimmedText(), 16)
			if err != nil {
				return err
			}
			vs = append(vs, int16(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadUInt16Array(name string, value *[]uint16) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]uint16, 0, len(items))
		for _, c := range items {
			v, err := xmlParseUint(c.trimmedText(), 16)
			if err != nil {
				return err
			}
			vs = append(vs, uint16(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadInt32Array(name string, value *[]int32) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]int32, 0, len(items))
		for _, c := range items {
			v, err := xmlParseInt(c.trimmedText(), 32)
			if err != nil {
				return err
			}
			vs = append(vs, int32(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadUInt32Array(name string, value *[]uint32) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]uint32, 0, len(items))
		for _, c := range items {
			v, err := xmlParseUint(c.trimmedText(), 32)
			if err != nil {
				return err
			}
			vs = append(vs, uint32(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadInt64Array(name string, value *[]int64) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]int64, 0, len(items))
		for _, c := range items {
			v, err := xmlParseInt(c.trimmedText(), 64)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadUInt64Array(name string, value *[]uint64) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]uint64, 0, len(items))
		for _, c := range items {
			v, err := xmlParseUint(c.trimmedText(), 64)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadFloatArray(name string, value *[]float32) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]float32, 0, len(items))
		for _, c := range items {
			v, err := xmlParseFloat(c.trimmedText(), 32)
			if err != nil {
				return err
			}
			vs = append(vs, float32(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadDoubleArray(name string, value *[]float64) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]float64, 0, len(items))
		for _, c := range items {
			v, err := xmlParseFloat(c.trimmedText(), 64)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadStringArray(name string, value *[]string) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]string, 0, len(items))
		for _, c := range items {
			vs = append(vs, c.text)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadDateTimeArray(name string, value *[]time.Time) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]time.Time, 0, len(items))
		for _, c := range items {
			v, err := xmlParseDateTime(c.trimmedText())
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadGUIDArray(name string, value *[]uuid.UUID) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]uuid.UUID, 0, len(items))
		for _, c := range items {
			s := ""
			if cc := c.child("String"); cc != nil {
				s = cc.trimmedText()
			}
			var id uuid.UUID
			if s != "" {
				var err error
				if id, err = uuid.Parse(s); err != nil {
					return BadDecodingError
				}
			}
			vs = append(vs, id)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadByteStringArray(name string, value *[]ByteString) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]ByteString, 0, len(items))
		for _, c := range items {
			s := c.trimmedText()
			if s == "" {
				vs = append(vs, "")
				continue
			}
			bs, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return BadDecodingError
			}
			vs = append(vs, ByteString(bs))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadXMLElementArray(name string, value *[]XMLElement) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]XMLElement, 0, len(items))
		for _, c := range items {
			if len(c.children) == 0 {
				vs = append(vs, XMLElement(c.text))
				continue
			}
			var buf bytes.Buffer
			for _, cc := range c.children {
				renderXMLNode(cc, &buf)
			}
			vs = append(vs, XMLElement(buf.String()))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadNodeIDArray(name string, value *[]NodeID) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]NodeID, 0, len(items))
		for _, c := range items {
			var v NodeID
			if err := dec.readNodeIDNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadExpandedNodeIDArray(name string, value *[]ExpandedNodeID) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]ExpandedNodeID, 0, len(items))
		for _, c := range items {
			var v ExpandedNodeID
			if err := dec.readExpandedNodeIDNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadStatusCodeArray(name string, value *[]StatusCode) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]StatusCode, 0, len(items))
		for _, c := range items {
			s := ""
			if cc := c.child("Code"); cc != nil {
				s = cc.trimmedText()
			}
			v, err := xmlParseUint(s, 32)
			if err != nil {
				return err
			}
			vs = append(vs, StatusCode(v))
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadQualifiedNameArray(name string, value *[]QualifiedName) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]QualifiedName, 0, len(items))
		for _, c := range items {
			var v QualifiedName
			if err := dec.readQualifiedNameNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadLocalizedTextArray(name string, value *[]LocalizedText) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]LocalizedText, 0, len(items))
		for _, c := range items {
			var v LocalizedText
			if err := dec.readLocalizedTextNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadExtensionObjectArray(name string, value *[]ExtensionObject) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]ExtensionObject, 0, len(items))
		for _, c := range items {
			var v ExtensionObject
			if err := dec.readExtensionObjectNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadDataValueArray(name string, value *[]DataValue) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]DataValue, 0, len(items))
		for _, c := range items {
			var v DataValue
			if err := dec.readDataValueNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadVariantArray(name string, value *[]Variant) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]Variant, 0, len(items))
		for _, c := range items {
			wrap := &xmlNode{name: "wrap", children: []*xmlNode{c}}
			dec.push(wrap)
			var v Variant
			err := dec.ReadVariant(c.name, &v)
			dec.pop()
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

func (dec *XMLDecoder) ReadDiagnosticInfoArray(name string, value *[]DiagnosticInfo) error {
	return dec.readList(name, func(items []*xmlNode) error {
		if items == nil {
			*value = nil
			return nil
		}
		vs := make([]DiagnosticInfo, 0, len(items))
		for _, c := range items {
			var v DiagnosticInfo
			if err := dec.readDiagnosticInfoNode(c, &v); err != nil {
				return err
			}
			vs = append(vs, v)
		}
		*value = vs
		return nil
	})
}

// decodeXMLMessage parses the root envelope, resolves the registration
// by root element name and decodes the fields. A schema namespace
// mismatch on the root is malformed input; an unknown root name is an
// unknown type.
func decodeXMLMessage(b []byte, ec *EncodingContext) (Encodeable, *TypeRegistration, error) {
	root, err := parseXMLTree(b, ec.Limits())
	if err != nil {
		return nil, nil, err
	}
	if root.space != "" && root.space != xmlNamespaceURI {
		return nil, nil, BadDecodingError
	}
	reg, ok := FindRegistrationForName(root.name)
	if !ok {
		return nil, nil, BadDataTypeIDUnknown
	}
	msg := reg.New()
	dec := NewXMLDecoder(root, ec)
	if err := msg.DecodeFrom(dec); err != nil {
		return nil, nil, err
	}
	return msg, reg, nil
}
