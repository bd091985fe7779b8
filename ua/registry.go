package ua

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeRegistration describes a structured type to the codec: a
// constructor for the empty value and the three encoding ids under
// which the type appears on the wire. Name is the browse name used as
// the XML element name of the body.
type TypeRegistration struct {
	Name     string
	New      func() Encodeable
	BinaryID ExpandedNodeID
	XMLID    ExpandedNodeID
	JSONID   ExpandedNodeID
}

// EncodingID returns the registration's id for the given format.
func (r *TypeRegistration) EncodingID(format Format) ExpandedNodeID {
	switch format {
	case FormatXML:
		return r.XMLID
	case FormatJSON:
		return r.JSONID
	default:
		return r.BinaryID
	}
}

type encodingKey struct {
	format Format
	id     ExpandedNodeID
}

// The registry is populated once at process start and is read-only
// thereafter, so decoders on concurrent streams share it without
// locking.
var (
	encodingTypes sync.Map // map[encodingKey]*TypeRegistration
	encodingNames sync.Map // map[string]*TypeRegistration
	goTypes       sync.Map // map[reflect.Type]*TypeRegistration
)

// RegisterEncodeable registers a structured type and its encoding ids.
// Registering two types under one id, or one type twice, panics.
func RegisterEncodeable(reg TypeRegistration) {
	if reg.New == nil || reg.Name == "" {
		panic("ua: RegisterEncodeable: registration requires Name and New")
	}
	r := &reg
	typ := reflect.TypeOf(reg.New())
	if prev, dup := goTypes.LoadOrStore(typ, r); dup && prev != r {
		panic(fmt.Sprintf("ua: RegisterEncodeable: duplicate registration for %s", typ))
	}
	if prev, dup := encodingNames.LoadOrStore(reg.Name, r); dup && prev != r {
		panic(fmt.Sprintf("ua: RegisterEncodeable: duplicate registration for name %q", reg.Name))
	}
	for _, k := range []encodingKey{
		{FormatBinary, reg.BinaryID},
		{FormatXML, reg.XMLID},
		{FormatJSON, reg.JSONID},
	} {
		if k.id.IsNil() {
			continue
		}
		if prev, dup := encodingTypes.LoadOrStore(k, r); dup && prev != r {
			panic(fmt.Sprintf("ua: RegisterEncodeable: duplicate types for %q", k.id))
		}
	}
}

// FindRegistrationForEncodingID finds the registration given a format
// and the encoding id found in the wire data. A miss is not an error:
// decoders keep the payload opaque.
func FindRegistrationForEncodingID(format Format, id ExpandedNodeID) (*TypeRegistration, bool) {
	if val, ok := encodingTypes.Load(encodingKey{format, id}); ok {
		return val.(*TypeRegistration), true
	}
	return nil, false
}

// FindRegistrationForType finds the registration of a structured value.
func FindRegistrationForType(v Encodeable) (*TypeRegistration, bool) {
	if val, ok := goTypes.Load(reflect.TypeOf(v)); ok {
		return val.(*TypeRegistration), true
	}
	return nil, false
}

// FindRegistrationForName finds the registration by browse name. Used
// by the XML decoder to resolve body element names.
func FindRegistrationForName(name string) (*TypeRegistration, bool) {
	if val, ok := encodingNames.Load(name); ok {
		return val.(*TypeRegistration), true
	}
	return nil, false
}

// FindEncodingIDForType finds the encoding id of a structured value
// under the given format.
func FindEncodingIDForType(format Format, v Encodeable) (ExpandedNodeID, bool) {
	if r, ok := FindRegistrationForType(v); ok {
		id := r.EncodingID(format)
		return id, !id.IsNil()
	}
	return NilExpandedNodeID, false
}
