package ua

import (
	"encoding/base64"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	uuid "github.com/google/uuid"
)

// JSONDecoder decodes the lossless JSON variants from a parsed object
// tree. Field lookups accept the long or the compact spelling, so one
// decoder covers Reversible, Compact and Verbose output. Display output
// has no TypeId envelope and cannot be decoded.
type JSONDecoder struct {
	ec    *EncodingContext
	stack []map[string]interface{}
	depth uint32
}

// NewJSONDecoder returns a decoder scoped to the given object.
func NewJSONDecoder(root map[string]interface{}, ec *EncodingContext) *JSONDecoder {
	return &JSONDecoder{ec: ec, stack: []map[string]interface{}{root}}
}

var _ Decoder = (*JSONDecoder)(nil)

func (dec *JSONDecoder) enter() error {
	dec.depth++
	if dec.depth > dec.ec.Limits().MaxRecursionDepth {
		return BadEncodingLimitsExceeded
	}
	return nil
}

func (dec *JSONDecoder) leave() { dec.depth-- }

func (dec *JSONDecoder) push(m map[string]interface{}) { dec.stack = append(dec.stack, m) }
func (dec *JSONDecoder) pop()                          { dec.stack = dec.stack[:len(dec.stack)-1] }

// lookup resolves a member by long name, falling back to the compact
// spelling.
func (dec *JSONDecoder) lookup(name string) (interface{}, bool) {
	m := dec.stack[len(dec.stack)-1]
	if v, ok := m[name]; ok {
		return v, true
	}
	if s, ok := jsonShortNames[name]; ok {
		if v, ok2 := m[s]; ok2 {
			return v, true
		}
	}
	return nil, false
}

func jsonMember(m map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	if s, ok := jsonShortNames[name]; ok {
		if v, ok2 := m[s]; ok2 {
			return v, true
		}
	}
	return nil, false
}

func jsonToInt(v interface{}, bits int) (int64, error) {
	switch v2 := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if v2 != math.Trunc(v2) {
			return 0, BadDecodingError
		}
		if bound := math.Ldexp(1, bits-1); v2 < -bound || v2 >= bound {
			return 0, BadDecodingError
		}
		return int64(v2), nil
	case string:
		n, err := strconv.ParseInt(v2, 10, bits)
		if err != nil {
			return 0, BadDecodingError
		}
		return n, nil
	default:
		return 0, BadDecodingError
	}
}

func jsonToUint(v interface{}, bits int) (uint64, error) {
	switch v2 := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if v2 < 0 || v2 != math.Trunc(v2) {
			return 0, BadDecodingError
		}
		if v2 >= math.Ldexp(1, bits) {
			return 0, BadDecodingError
		}
		return uint64(v2), nil
	case string:
		n, err := strconv.ParseUint(v2, 10, bits)
		if err != nil {
			return 0, BadDecodingError
		}
		return n, nil
	default:
		return 0, BadDecodingError
	}
}

func jsonToFloat(v interface{}) (float64, error) {
	switch v2 := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return v2, nil
	case string:
		switch v2 {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		f, err := strconv.ParseFloat(v2, 64)
		if err != nil {
			return 0, BadDecodingError
		}
		return f, nil
	default:
		return 0, BadDecodingError
	}
}

func (dec *JSONDecoder) toString(v interface{}) (string, error) {
	switch v2 := v.(type) {
	case nil:
		return "", nil
	case string:
		if max := dec.ec.Limits().MaxStringLength; max > 0 && uint32(len(v2)) > max {
			return "", BadEncodingLimitsExceeded
		}
		return v2, nil
	default:
		return "", BadDecodingError
	}
}

func jsonToDateTime(v interface{}) (time.Time, error) {
	s, ok := v.(string)
	if v == nil {
		return time.Time{}, nil
	}
	if !ok {
		return time.Time{}, BadDecodingError
	}
	if s == "" || s == jsonMinDateTime {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, BadDecodingError
	}
	return t.UTC(), nil
}

func (dec *JSONDecoder) toByteString(v interface{}) (ByteString, error) {
	switch v2 := v.(type) {
	case nil:
		return "", nil
	case string:
		bs, err := base64.StdEncoding.DecodeString(v2)
		if err != nil {
			return "", BadDecodingError
		}
		if max := dec.ec.Limits().MaxByteStringLength; max > 0 && uint32(len(bs)) > max {
			return "", BadEncodingLimitsExceeded
		}
		return ByteString(bs), nil
	default:
		return "", BadDecodingError
	}
}

// toNodeID converts {Id, IdType, Namespace}. A URI namespace resolves
// through the context table, extending it when unseen.
func (dec *JSONDecoder) toNodeID(v interface{}) (NodeID, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, BadDecodingError
	}
	var ns uint16
	if nsVal, ok := jsonMember(m, "Namespace"); ok {
		switch n2 := nsVal.(type) {
		case float64:
			u, err := jsonToUint(nsVal, 16)
			if err != nil {
				return nil, err
			}
			ns = uint16(u)
		case string:
			ns = dec.ec.AddNamespaceURI(n2)
		default:
			return nil, BadDecodingError
		}
	}
	idType := int64(0)
	if itVal, ok := jsonMember(m, "IdType"); ok {
		var err error
		if idType, err = jsonToInt(itVal, 8); err != nil {
			return nil, err
		}
	}
	idVal, _ := jsonMember(m, "Id")
	switch idType {
	case 0:
		id, err := jsonToUint(idVal, 32)
		if err != nil {
			return nil, err
		}
		return NewNodeIDNumeric(ns, uint32(id)), nil
	case 1:
		s, err := dec.toString(idVal)
		if err != nil {
			return nil, err
		}
		return NewNodeIDString(ns, s), nil
	case 2:
		s, err := dec.toString(idVal)
		if err != nil {
			return nil, err
		}
		g, err := uuid.Parse(s)
		if err != nil {
			return nil, BadDecodingError
		}
		return NewNodeIDGUID(ns, g), nil
	case 3:
		bs, err := dec.toByteString(idVal)
		if err != nil {
			return nil, err
		}
		return NewNodeIDOpaque(ns, bs), nil
	default:
		return nil, BadDecodingError
	}
}

func (dec *JSONDecoder) toExpandedNodeID(v interface{}) (ExpandedNodeID, error) {
	if v == nil {
		return NilExpandedNodeID, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return NilExpandedNodeID, BadDecodingError
	}
	var nsURI string
	inner := make(map[string]interface{}, len(m))
	for k, val := range m {
		inner[k] = val
	}
	if nsVal, ok := jsonMember(m, "Namespace"); ok {
		if s, isString := nsVal.(string); isString {
			nsURI = s
			delete(inner, "Namespace")
			delete(inner, "n")
		}
	}
	var svr uint32
	if svrVal, ok := jsonMember(m, "ServerUri"); ok {
		switch s2 := svrVal.(type) {
		case float64:
			u, err := jsonToUint(svrVal, 32)
			if err != nil {
				return NilExpandedNodeID, err
			}
			svr = uint32(u)
		case string:
			svr = dec.ec.AddServerURI(s2)
		default:
			return NilExpandedNodeID, BadDecodingError
		}
		delete(inner, "ServerUri")
		delete(inner, "su")
	}
	n, err := dec.toNodeID(inner)
	if err != nil {
		return NilExpandedNodeID, err
	}
	return ExpandedNodeID{svr, nsURI, n}, nil
}

func jsonToStatusCode(v interface{}) (StatusCode, error) {
	switch v2 := v.(type) {
	case nil:
		return 0, nil
	case float64:
		u, err := jsonToUint(v, 32)
		if err != nil {
			return 0, err
		}
		return StatusCode(u), nil
	case map[string]interface{}:
		code, _ := jsonMember(v2, "Code")
		u, err := jsonToUint(code, 32)
		if err != nil {
			return 0, err
		}
		return StatusCode(u), nil
	default:
		return 0, BadDecodingError
	}
}

func (dec *JSONDecoder) toQualifiedName(v interface{}) (QualifiedName, error) {
	if v == nil {
		return QualifiedName{}, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return QualifiedName{}, BadDecodingError
	}
	var qn QualifiedName
	if nameVal, ok := jsonMember(m, "Name"); ok {
		s, err := dec.toString(nameVal)
		if err != nil {
			return QualifiedName{}, err
		}
		qn.Name = s
	}
	if uriVal, ok := jsonMember(m, "Uri"); ok {
		switch u2 := uriVal.(type) {
		case float64:
			u, err := jsonToUint(uriVal, 16)
			if err != nil {
				return QualifiedName{}, err
			}
			qn.NamespaceIndex = uint16(u)
		case string:
			qn.NamespaceIndex = dec.ec.AddNamespaceURI(u2)
		default:
			return QualifiedName{}, BadDecodingError
		}
	}
	return qn, nil
}

func (dec *JSONDecoder) toLocalizedText(v interface{}) (LocalizedText, error) {
	switch v2 := v.(type) {
	case nil:
		return LocalizedText{}, nil
	case string:
		return LocalizedText{Text: v2}, nil
	case map[string]interface{}:
		var lt LocalizedText
		if lv, ok := jsonMember(v2, "Locale"); ok {
			s, err := dec.toString(lv)
			if err != nil {
				return LocalizedText{}, err
			}
			lt.Locale = s
		}
		if tv, ok := jsonMember(v2, "Text"); ok {
			s, err := dec.toString(tv)
			if err != nil {
				return LocalizedText{}, err
			}
			lt.Text = s
		}
		return lt, nil
	default:
		return LocalizedText{}, BadDecodingError
	}
}

// toExtensionObject converts {TypeId, Encoding, Body}. A registered
// type id decodes the body through its registration; an unknown id
// keeps the body opaque so it re-encodes with the same content.
func (dec *JSONDecoder) toExtensionObject(v interface{}) (ExtensionObject, error) {
	if err := dec.enter(); err != nil {
		return NilExtensionObject, err
	}
	defer dec.leave()
	if v == nil {
		return NilExtensionObject, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return NilExtensionObject, BadDecodingError
	}
	idVal, _ := jsonMember(m, "TypeId")
	id, err := dec.toExpandedNodeID(idVal)
	if err != nil {
		return NilExtensionObject, err
	}
	encoding := int64(0)
	if encVal, ok := jsonMember(m, "Encoding"); ok {
		if encoding, err = jsonToInt(encVal, 8); err != nil {
			return NilExtensionObject, err
		}
	}
	bodyVal, hasBody := jsonMember(m, "Body")
	if !hasBody || bodyVal == nil {
		return ExtensionObject{TypeID: id}, nil
	}
	switch encoding {
	case 1:
		bs, err := dec.toByteString(bodyVal)
		if err != nil {
			return NilExtensionObject, err
		}
		return ExtensionObject{TypeID: id, Body: bs}, nil
	case 2:
		s, err := dec.toString(bodyVal)
		if err != nil {
			return NilExtensionObject, err
		}
		return ExtensionObject{TypeID: id, Body: XMLElement(s)}, nil
	case 0:
		bodyMap, ok := bodyVal.(map[string]interface{})
		if !ok {
			return NilExtensionObject, BadDecodingError
		}
		if reg, found := FindRegistrationForEncodingID(FormatJSON, id); found {
			nsURI := id.NamespaceURI
			if nsURI == "" {
				if u, ok2 := dec.ec.NamespaceURI(namespaceIndexOf(id.NodeID)); ok2 {
					nsURI = u
				}
			}
			dec.ec.PushNamespace(nsURI)
			defer dec.ec.PopNamespace()
			dec.push(bodyMap)
			defer dec.pop()
			msg := reg.New()
			if err := msg.DecodeFrom(dec); err != nil {
				return NilExtensionObject, err
			}
			return ExtensionObject{TypeID: id, Body: msg}, nil
		}
		raw, err := json.Marshal(bodyMap)
		if err != nil {
			return NilExtensionObject, BadDecodingError
		}
		return ExtensionObject{TypeID: id, Body: JSONElement(raw)}, nil
	default:
		return NilExtensionObject, BadDecodingError
	}
}

func (dec *JSONDecoder) toDataValue(v interface{}) (DataValue, error) {
	if v == nil {
		return DataValue{}, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return DataValue{}, BadDecodingError
	}
	var dv DataValue
	var err error
	if val, ok := jsonMember(m, "Value"); ok {
		if dv.Value, err = dec.toVariant(val); err != nil {
			return DataValue{}, err
		}
	}
	if val, ok := jsonMember(m, "Status"); ok {
		if dv.StatusCode, err = jsonToStatusCode(val); err != nil {
			return DataValue{}, err
		}
	}
	if val, ok := jsonMember(m, "SourceTimestamp"); ok {
		if dv.SourceTimestamp, err = jsonToDateTime(val); err != nil {
			return DataValue{}, err
		}
	}
	if val, ok := jsonMember(m, "SourcePicoseconds"); ok {
		u, err := jsonToUint(val, 16)
		if err != nil {
			return DataValue{}, err
		}
		dv.SourcePicoseconds = uint16(u)
	}
	if val, ok := jsonMember(m, "ServerTimestamp"); ok {
		if dv.ServerTimestamp, err = jsonToDateTime(val); err != nil {
			return DataValue{}, err
		}
	}
	if val, ok := jsonMember(m, "ServerPicoseconds"); ok {
		u, err := jsonToUint(val, 16)
		if err != nil {
			return DataValue{}, err
		}
		dv.ServerPicoseconds = uint16(u)
	}
	return dv, nil
}

// toVariant converts {Type, Body, Dimensions}.
func (dec *JSONDecoder) toVariant(v interface{}) (Variant, error) {
	if err := dec.enter(); err != nil {
		return nil, err
	}
	defer dec.leave()
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, BadDecodingError
	}
	tVal, ok := jsonMember(m, "Type")
	if !ok {
		return nil, BadDecodingError
	}
	t64, err := jsonToInt(tVal, 8)
	if err != nil {
		return nil, err
	}
	t := byte(t64)
	if t == VariantTypeNull || t > VariantTypeDiagnosticInfo {
		return nil, BadDecodingError
	}
	bodyVal, _ := jsonMember(m, "Body")
	items, isArray := bodyVal.([]interface{})
	if !isArray {
		return dec.toVariantScalar(t, bodyVal)
	}
	if max := dec.ec.Limits().MaxArrayLength; max > 0 && uint32(len(items)) > max {
		return nil, BadEncodingLimitsExceeded
	}
	elements, err := dec.toVariantElements(t, items)
	if err != nil {
		return nil, err
	}
	dimsVal, hasDims := jsonMember(m, "Dimensions")
	if !hasDims || dimsVal == nil {
		return elements, nil
	}
	dimItems, ok := dimsVal.([]interface{})
	if !ok {
		return nil, BadDecodingError
	}
	dims := make([]int32, 0, len(dimItems))
	for _, d := range dimItems {
		n, err := jsonToInt(d, 32)
		if err != nil {
			return nil, err
		}
		dims = append(dims, int32(n))
	}
	mtx, err := NewMatrix(elements, dims)
	if err != nil {
		return nil, BadDecodingError
	}
	return mtx, nil
}

func (dec *JSONDecoder) toVariantScalar(t byte, v interface{}) (Variant, error) {
	switch t {
	case VariantTypeBoolean:
		b, ok := v.(bool)
		if v == nil {
			return false, nil
		}
		if !ok {
			return nil, BadDecodingError
		}
		return b, nil
	case VariantTypeSByte:
		n, err := jsonToInt(v, 8)
		return int8(n), err
	case VariantTypeByte:
		n, err := jsonToUint(v, 8)
		return byte(n), err
	case VariantTypeInt16:
		n, err := jsonToInt(v, 16)
		return int16(n), err
	case VariantTypeUInt16:
		n, err := jsonToUint(v, 16)
		return uint16(n), err
	case VariantTypeInt32:
		n, err := jsonToInt(v, 32)
		return int32(n), err
	case VariantTypeUInt32:
		n, err := jsonToUint(v, 32)
		return uint32(n), err
	case VariantTypeInt64:
		return jsonToInt(v, 64)
	case VariantTypeUInt64:
		return jsonToUint(v, 64)
	case VariantTypeFloat:
		f, err := jsonToFloat(v)
		return float32(f), err
	case VariantTypeDouble:
		return jsonToFloat(v)
	case VariantTypeString:
		return dec.toString(v)
	case VariantTypeDateTime:
		return jsonToDateTime(v)
	case VariantTypeGUID:
		s, err := dec.toString(v)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return uuid.UUID{}, nil
		}
		g, err := uuid.Parse(s)
		if err != nil {
			return nil, BadDecodingError
		}
		return g, nil
	case VariantTypeByteString:
		return dec.toByteString(v)
	case VariantTypeXMLElement:
		s, err := dec.toString(v)
		return XMLElement(s), err
	case VariantTypeNodeID:
		return dec.toNodeID(v)
	case VariantTypeExpandedNodeID:
		return dec.toExpandedNodeID(v)
	case VariantTypeStatusCode:
		return jsonToStatusCode(v)
	case VariantTypeQualifiedName:
		return dec.toQualifiedName(v)
	case VariantTypeLocalizedText:
		return dec.toLocalizedText(v)
	case VariantTypeExtensionObject:
		eo, err := dec.toExtensionObject(v)
		if err != nil {
			return nil, err
		}
		if body, ok := eo.Body.(Encodeable); ok {
			return body, nil
		}
		return eo, nil
	case VariantTypeDataValue:
		return dec.toDataValue(v)
	case VariantTypeVariant:
		return nil, BadDecodingError
	case VariantTypeDiagnosticInfo:
		return dec.toDiagnosticInfo(v)
	default:
		return nil, BadDecodingError
	}
}

func (dec *JSONDecoder) toVariantElements(t byte, items []interface{}) (Variant, error) {
	switch t {
	case VariantTypeBoolean:
		vs := make([]bool, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(bool))
		}
		return vs, nil
	case VariantTypeSByte:
		vs := make([]int8, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(int8))
		}
		return vs, nil
	case VariantTypeByte:
		vs := make([]byte, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(byte))
		}
		return vs, nil
	case VariantTypeInt16:
		vs := make([]int16, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(int16))
		}
		return vs, nil
	case VariantTypeUInt16:
		vs := make([]uint16, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(uint16))
		}
		return vs, nil
	case VariantTypeInt32:
		vs := make([]int32, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(int32))
		}
		return vs, nil
	case VariantTypeUInt32:
		vs := make([]uint32, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(uint32))
		}
		return vs, nil
	case VariantTypeInt64:
		vs := make([]int64, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(int64))
		}
		return vs, nil
	case VariantTypeUInt64:
		vs := make([]uint64, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(uint64))
		}
		return vs, nil
	case VariantTypeFloat:
		vs := make([]float32, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(float32))
		}
		return vs, nil
	case VariantTypeDouble:
		vs := make([]float64, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(float64))
		}
		return vs, nil
	case VariantTypeString:
		vs := make([]string, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(string))
		}
		return vs, nil
	case VariantTypeDateTime:
		vs := make([]time.Time, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(time.Time))
		}
		return vs, nil
	case VariantTypeGUID:
		vs := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(uuid.UUID))
		}
		return vs, nil
	case VariantTypeByteString:
		vs := make([]ByteString, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(ByteString))
		}
		return vs, nil
	case VariantTypeXMLElement:
		vs := make([]XMLElement, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariantScalar(t, it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e.(XMLElement))
		}
		return vs, nil
	case VariantTypeNodeID:
		vs := make([]NodeID, 0, len(items))
		for _, it := range items {
			e, err := dec.toNodeID(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeExpandedNodeID:
		vs := make([]ExpandedNodeID, 0, len(items))
		for _, it := range items {
			e, err := dec.toExpandedNodeID(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeStatusCode:
		vs := make([]StatusCode, 0, len(items))
		for _, it := range items {
			e, err := jsonToStatusCode(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeQualifiedName:
		vs := make([]QualifiedName, 0, len(items))
		for _, it := range items {
			e, err := dec.toQualifiedName(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeLocalizedText:
		vs := make([]LocalizedText, 0, len(items))
		for _, it := range items {
			e, err := dec.toLocalizedText(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeExtensionObject:
		vs := make([]ExtensionObject, 0, len(items))
		for _, it := range items {
			e, err := dec.toExtensionObject(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeDataValue:
		vs := make([]DataValue, 0, len(items))
		for _, it := range items {
			e, err := dec.toDataValue(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeVariant:
		vs := make([]Variant, 0, len(items))
		for _, it := range items {
			e, err := dec.toVariant(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	case VariantTypeDiagnosticInfo:
		vs := make([]DiagnosticInfo, 0, len(items))
		for _, it := range items {
			e, err := dec.toDiagnosticInfo(it)
			if err != nil {
				return nil, err
			}
			vs = append(vs, e)
		}
		return vs, nil
	default:
		return nil, BadDecodingError
	}
}

func (dec *JSONDecoder) toDiagnosticInfo(v interface{}) (DiagnosticInfo, error) {
	if err := dec.enter(); err != nil {
		return DiagnosticInfo{}, err
	}
	defer dec.leave()
	if v == nil {
		return DiagnosticInfo{}, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return DiagnosticInfo{}, BadDecodingError
	}
	var di DiagnosticInfo
	if val, ok := jsonMember(m, "SymbolicId"); ok {
		n, err := jsonToInt(val, 32)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		v2 := int32(n)
		di.SymbolicID = &v2
	}
	if val, ok := jsonMember(m, "NamespaceUri"); ok {
		n, err := jsonToInt(val, 32)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		v2 := int32(n)
		di.NamespaceURI = &v2
	}
	if val, ok := jsonMember(m, "Locale"); ok {
		n, err := jsonToInt(val, 32)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		v2 := int32(n)
		di.Locale = &v2
	}
	if val, ok := jsonMember(m, "LocalizedText"); ok {
		n, err := jsonToInt(val, 32)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		v2 := int32(n)
		di.LocalizedText = &v2
	}
	if val, ok := jsonMember(m, "AdditionalInfo"); ok {
		s, err := dec.toString(val)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		di.AdditionalInfo = &s
	}
	if val, ok := jsonMember(m, "InnerStatusCode"); ok {
		sc, err := jsonToStatusCode(val)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		di.InnerStatusCode = &sc
	}
	if val, ok := jsonMember(m, "InnerDiagnosticInfo"); ok {
		inner, err := dec.toDiagnosticInfo(val)
		if err != nil {
			return DiagnosticInfo{}, err
		}
		di.InnerDiagnosticInfo = &inner
	}
	return di, nil
}

func (dec *JSONDecoder) ReadBoolean(name string, value *bool) error {
	v, ok := dec.lookup(name)
	if !ok || v == nil {
		*value = false
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return BadDecodingError
	}
	*value = b
	return nil
}

func (dec *JSONDecoder) ReadSByte(name string, value *int8) error {
	v, _ := dec.lookup(name)
	n, err := jsonToInt(v, 8)
	if err != nil {
		return err
	}
	*value = int8(n)
	return nil
}

func (dec *JSONDecoder) ReadByte(name string, value *byte) error {
	v, _ := dec.lookup(name)
	n, err := jsonToUint(v, 8)
	if err != nil {
		return err
	}
	*value = byte(n)
	return nil
}

func (dec *JSONDecoder) ReadInt16(name string, value *int16) error {
	v, _ := dec.lookup(name)
	n, err := jsonToInt(v, 16)
	if err != nil {
		return err
	}
	*value = int16(n)
	return nil
}

func (dec *JSONDecoder) ReadUInt16(name string, value *uint16) error {
	v, _ := dec.lookup(name)
	n, err := jsonToUint(v, 16)
	if err != nil {
		return err
	}
	*value = uint16(n)
	return nil
}

func (dec *JSONDecoder) ReadInt32(name string, value *int32) error {
	v, _ := dec.lookup(name)
	n, err := jsonToInt(v, 32)
	if err != nil {
		return err
	}
	*value = int32(n)
	return nil
}

func (dec *JSONDecoder) ReadUInt32(name string, value *uint32) error {
	v, _ := dec.lookup(name)
	n, err := jsonToUint(v, 32)
	if err != nil {
		return err
	}
	*value = uint32(n)
	return nil
}

func (dec *JSONDecoder) ReadInt64(name string, value *int64) error {
	v, _ := dec.lookup(name)
	n, err := jsonToInt(v, 64)
	if err != nil {
		return err
	}
	*value = n
	return nil
}

func (dec *JSONDecoder) ReadUInt64(name string, value *uint64) error {
	v, _ := dec.lookup(name)
	n, err := jsonToUint(v, 64)
	if err != nil {
		return err
	}
	*value = n
	return nil
}

func (dec *JSONDecoder) ReadFloat(name string, value *float32) error {
	v, _ := dec.lookup(name)
	f, err := jsonToFloat(v)
	if err != nil {
		return err
	}
	*value = float32(f)
	return nil
}

func (dec *JSONDecoder) ReadDouble(name string, value *float64) error {
	v, _ := dec.lookup(name)
	f, err := jsonToFloat(v)
	if err != nil {
		return err
	}
	*value = f
	return nil
}

func (dec *JSONDecoder) ReadString(name string, value *string) error {
	v, _ := dec.lookup(name)
	s, err := dec.toString(v)
	if err != nil {
		return err
	}
	*value = s
	return nil
}

func (dec *JSONDecoder) ReadDateTime(name string, value *time.Time) error {
	v, _ := dec.lookup(name)
	t, err := jsonToDateTime(v)
	if err != nil {
		return err
	}
	*value = t
	return nil
}

func (dec *JSONDecoder) ReadGUID(name string, value *uuid.UUID) error {
	v, _ := dec.lookup(name)
	s, err := dec.toString(v)
	if err != nil {
		return err
	}
	if s == "" {
		*value = uuid.UUID{}
		return nil
	}
	g, err := uuid.Parse(s)
	if err != nil {
		return BadDecodingError
	}
	*value = g
	return nil
}

func (dec *JSONDecoder) ReadByteString(name string, value *ByteString) error {
	v, _ := dec.lookup(name)
	bs, err := dec.toByteString(v)
	if err != nil {
		return err
	}
	*value = bs
	return nil
}

func (dec *JSONDecoder) ReadXMLElement(name string, value *XMLElement) error {
	v, _ := dec.lookup(name)
	s, err := dec.toString(v)
	if err != nil {
		return err
	}
	*value = XMLElement(s)
	return nil
}

func (dec *JSONDecoder) ReadNodeID(name string, value *NodeID) error {
	v, _ := dec.lookup(name)
	n, err := dec.toNodeID(v)
	if err != nil {
		return err
	}
	*value = n
	return nil
}

func (dec *JSONDecoder) ReadExpandedNodeID(name string, value *ExpandedNodeID) error {
	v, _ := dec.lookup(name)
	n, err := dec.toExpandedNodeID(v)
	if err != nil {
		return err
	}
	*value = n
	return nil
}

func (dec *JSONDecoder) ReadStatusCode(name string, value *StatusCode) error {
	v, _ := dec.lookup(name)
	sc, err := jsonToStatusCode(v)
	if err != nil {
		return err
	}
	*value = sc
	return nil
}

func (dec *JSONDecoder) ReadQualifiedName(name string, value *QualifiedName) error {
	v, _ := dec.lookup(name)
	qn, err := dec.toQualifiedName(v)
	if err != nil {
		return err
	}
	*value = qn
	return nil
}

func (dec *JSONDecoder) ReadLocalizedText(name string, value *LocalizedText) error {
	v, _ := dec.lookup(name)
	lt, err := dec.toLocalizedText(v)
	if err != nil {
		return err
	}
	*value = lt
	return nil
}

func (dec *JSONDecoder) ReadExtensionObject(name string, value *ExtensionObject) error {
	v, _ := dec.lookup(name)
	eo, err := dec.toExtensionObject(v)
	if err != nil {
		return err
	}
	*value = eo
	return nil
}

func (dec *JSONDecoder) ReadDataValue(name string, value *DataValue) error {
	v, _ := dec.lookup(name)
	dv, err := dec.toDataValue(v)
	if err != nil {
		return err
	}
	*value = dv
	return nil
}

func (dec *JSONDecoder) ReadVariant(name string, value *Variant) error {
	v, _ := dec.lookup(name)
	vv, err := dec.toVariant(v)
	if err != nil {
		return err
	}
	*value = vv
	return nil
}

func (dec *JSONDecoder) ReadDiagnosticInfo(name string, value *DiagnosticInfo) error {
	v, _ := dec.lookup(name)
	di, err := dec.toDiagnosticInfo(v)
	if err != nil {
		return err
	}
	*value = di
	return nil
}

// readItems resolves a field holding a JSON array and enforces the
// array length limit. Absent or null reads as a nil slice.
func (dec *JSONDecoder) readItems(name string) ([]interface{}, error) {
	v, ok := dec.lookup(name)
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, BadDecodingError
	}
	if max := dec.ec.Limits().MaxArrayLength; max > 0 && uint32(len(items)) > max {
		return nil, BadEncodingLimitsExceeded
	}
	return items, nil
}

func (dec *JSONDecoder) ReadBooleanArray(name string, value *[]bool) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]bool, 0, len(items))
	for _, it := range items {
		b, ok := it.(bool)
		if !ok {
			return BadDecodingError
		}
		vs = append(vs, b)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadSByteArray(name string, value *[]int8) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]int8, 0, len(items))
	for _, it := range items {
		n, err := jsonToInt(it, 8)
		if err != nil {
			return err
		}
		vs = append(vs, int8(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadByteArray(name string, value *[]byte) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]byte, 0, len(items))
	for _, it := range items {
		n, err := jsonToUint(it, 8)
		if err != nil {
			return err
		}
		vs = append(vs, byte(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadInt16Array(name string, value *[]int16) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]int16, 0, len(items))
	for _, it := range items {
		n, err := jsonToInt(it, 16)
		if err != nil {
			return err
		}
		vs = append(vs, int16(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadUInt16Array(name string, value *[]uint16) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]uint16, 0, len(items))
	for _, it := range items {
		n, err := jsonToUint(it, 16)
		if err != nil {
			return err
		}
		vs = append(vs, uint16(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadInt32Array(name string, value *[]int32) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]int32, 0, len(items))
	for _, it := range items {
		n, err := jsonToInt(it, 32)
		if err != nil {
			return err
		}
		vs = append(vs, int32(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadUInt32Array(name string, value *[]uint32) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]uint32, 0, len(items))
	for _, it := range items {
		n, err := jsonToUint(it, 32)
		if err != nil {
			return err
		}
		vs = append(vs, uint32(n))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadInt64Array(name string, value *[]int64) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]int64, 0, len(items))
	for _, it := range items {
		n, err := jsonToInt(it, 64)
		if err != nil {
			return err
		}
		vs = append(vs, n)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadUInt64Array(name string, value *[]uint64) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]uint64, 0, len(items))
	for _, it := range items {
		n, err := jsonToUint(it, 64)
		if err != nil {
			return err
		}
		vs = append(vs, n)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadFloatArray(name string, value *[]float32) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]float32, 0, len(items))
	for _, it := range items {
		f, err := jsonToFloat(it)
		if err != nil {
			return err
		}
		vs = append(vs, float32(f))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadDoubleArray(name string, value *[]float64) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := jsonToFloat(it)
		if err != nil {
			return err
		}
		vs = append(vs, f)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadStringArray(name string, value *[]string) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]string, 0, len(items))
	for _, it := range items {
		s, err := dec.toString(it)
		if err != nil {
			return err
		}
		vs = append(vs, s)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadDateTimeArray(name string, value *[]time.Time) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]time.Time, 0, len(items))
	for _, it := range items {
		t, err := jsonToDateTime(it)
		if err != nil {
			return err
		}
		vs = append(vs, t)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadGUIDArray(name string, value *[]uuid.UUID) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		s, err := dec.toString(it)
		if err != nil {
			return err
		}
		var g uuid.UUID
		if s != "" {
			if g, err = uuid.Parse(s); err != nil {
				return BadDecodingError
			}
		}
		vs = append(vs, g)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadByteStringArray(name string, value *[]ByteString) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]ByteString, 0, len(items))
	for _, it := range items {
		bs, err := dec.toByteString(it)
		if err != nil {
			return err
		}
		vs = append(vs, bs)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadXMLElementArray(name string, value *[]XMLElement) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]XMLElement, 0, len(items))
	for _, it := range items {
		s, err := dec.toString(it)
		if err != nil {
			return err
		}
		vs = append(vs, XMLElement(s))
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadNodeIDArray(name string, value *[]NodeID) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]NodeID, 0, len(items))
	for _, it := range items {
		n, err := dec.toNodeID(it)
		if err != nil {
			return err
		}
		vs = append(vs, n)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadExpandedNodeIDArray(name string, value *[]ExpandedNodeID) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]ExpandedNodeID, 0, len(items))
	for _, it := range items {
		n, err := dec.toExpandedNodeID(it)
		if err != nil {
			return err
		}
		vs = append(vs, n)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadStatusCodeArray(name string, value *[]StatusCode) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]StatusCode, 0, len(items))
	for _, it := range items {
		sc, err := jsonToStatusCode(it)
		if err != nil {
			return err
		}
		vs = append(vs, sc)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadQualifiedNameArray(name string, value *[]QualifiedName) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]QualifiedName, 0, len(items))
	for _, it := range items {
		qn, err := dec.toQualifiedName(it)
		if err != nil {
			return err
		}
		vs = append(vs, qn)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadLocalizedTextArray(name string, value *[]LocalizedText) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]LocalizedText, 0, len(items))
	for _, it := range items {
		lt, err := dec.toLocalizedText(it)
		if err != nil {
			return err
		}
		vs = append(vs, lt)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadExtensionObjectArray(name string, value *[]ExtensionObject) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]ExtensionObject, 0, len(items))
	for _, it := range items {
		eo, err := dec.toExtensionObject(it)
		if err != nil {
			return err
		}
		vs = append(vs, eo)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadDataValueArray(name string, value *[]DataValue) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]DataValue, 0, len(items))
	for _, it := range items {
		dv, err := dec.toDataValue(it)
		if err != nil {
			return err
		}
		vs = append(vs, dv)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadVariantArray(name string, value *[]Variant) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]Variant, 0, len(items))
	for _, it := range items {
		v, err := dec.toVariant(it)
		if err != nil {
			return err
		}
		vs = append(vs, v)
	}
	*value = vs
	return nil
}

func (dec *JSONDecoder) ReadDiagnosticInfoArray(name string, value *[]DiagnosticInfo) error {
	items, err := dec.readItems(name)
	if err != nil || items == nil {
		*value = nil
		return err
	}
	vs := make([]DiagnosticInfo, 0, len(items))
	for _, it := range items {
		di, err := dec.toDiagnosticInfo(it)
		if err != nil {
			return err
		}
		vs = append(vs, di)
	}
	*value = vs
	return nil
}

// decodeJSONMessage parses the {"TypeId", "Body"} envelope and
// dispatches on the type id.
func decodeJSONMessage(b []byte, ec *EncodingContext) (Encodeable, *TypeRegistration, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(b, &root); err != nil {
		return nil, nil, BadDecodingError
	}
	dec := NewJSONDecoder(root, ec)
	idVal, ok := jsonMember(root, "TypeId")
	if !ok {
		return nil, nil, BadDecodingError
	}
	id, err := dec.toExpandedNodeID(idVal)
	if err != nil {
		return nil, nil, err
	}
	reg, found := FindRegistrationForEncodingID(FormatJSON, id)
	if !found {
		return nil, nil, BadDataTypeIDUnknown
	}
	bodyVal, ok := jsonMember(root, "Body")
	if !ok {
		return nil, nil, BadDecodingError
	}
	bodyMap, ok := bodyVal.(map[string]interface{})
	if !ok {
		return nil, nil, BadDecodingError
	}
	dec.push(bodyMap)
	msg := reg.New()
	if err := msg.DecodeFrom(dec); err != nil {
		return nil, nil, err
	}
	return msg, reg, nil
}
