package ua

// JSONElement is an opaque JSON fragment stored as a string. It carries
// the body of an ExtensionObject whose type is not registered when the
// surrounding message was decoded from JSON.
type JSONElement string

// String returns the fragment as a string.
func (e JSONElement) String() string {
	return string(e)
}

// ExtensionObject carries an application-defined structured type by type
// id plus body, without the codec needing compile-time knowledge of the
// type. Body is one of:
//
//	nil         no body
//	Encodeable  a decoded structured object of a registered type
//	ByteString  an opaque binary-encoded body
//	XMLElement  an opaque XML-encoded body
//	JSONElement an opaque JSON-encoded body
//
// A body decoded with an unregistered type id is kept opaque, so it
// survives a decode/re-encode round trip byte for byte.
type ExtensionObject struct {
	TypeID ExpandedNodeID
	Body   interface{}
}

// NewExtensionObject wraps a registered structured object. The type id
// is resolved per wire format by the encoder at encode time.
func NewExtensionObject(body Encodeable) ExtensionObject {
	return ExtensionObject{Body: body}
}

// NilExtensionObject is the nil value.
var NilExtensionObject = ExtensionObject{}

// IsNil reports whether the ExtensionObject has neither type id nor body.
func (e ExtensionObject) IsNil() bool {
	return e.Body == nil && e.TypeID.IsNil()
}
