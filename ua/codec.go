package ua

import (
	"bytes"
	"io"

	"github.com/djherbis/buffer"
)

// Format selects a wire format.
type Format byte

const (
	// FormatBinary is the compact little-endian UA Binary encoding.
	FormatBinary Format = iota
	// FormatXML is the element-tree encoding of the UA XML schema.
	FormatXML
	// FormatJSON is the UA JSON encoding; see JSONVariant.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "Binary"
	case FormatXML:
		return "XML"
	case FormatJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// JSONVariant selects the field-selection/typing policy of the JSON
// codec. All four variants share one engine.
type JSONVariant byte

const (
	// JSONReversible tags every ambiguous value with a type
	// discriminator; lossless, the default.
	JSONReversible JSONVariant = iota
	// JSONNonReversible renders for human or JavaScript consumers;
	// lossy, encode-only.
	JSONNonReversible
	// JSONCompact is JSONReversible with shortened field names.
	JSONCompact
	// JSONVerbose is JSONReversible plus human-readable extras such as
	// symbolic status code names.
	JSONVerbose
)

func (v JSONVariant) String() string {
	switch v {
	case JSONReversible:
		return "Reversible"
	case JSONNonReversible:
		return "NonReversible"
	case JSONCompact:
		return "Compact"
	case JSONVerbose:
		return "Verbose"
	default:
		return "Unknown"
	}
}

type encodeOptions struct {
	jsonVariant           JSONVariant
	jsonVariantSet        bool
	includeDefaults       bool
	includeNumberDefaults bool
}

// EncodeOption adjusts a single Encode call.
type EncodeOption func(*encodeOptions)

// WithJSONVariant selects the JSON encoding policy. Passing it to a
// non-JSON Encode call fails with BadNotSupported.
func WithJSONVariant(v JSONVariant) EncodeOption {
	return func(o *encodeOptions) { o.jsonVariant = v; o.jsonVariantSet = true }
}

// IncludeDefaultValues emits non-numeric fields even when equal to
// their type's default. JSON only.
func IncludeDefaultValues() EncodeOption {
	return func(o *encodeOptions) { o.includeDefaults = true }
}

// IncludeDefaultNumberValues emits numeric fields even when zero.
// JSON only.
func IncludeDefaultNumberValues() EncodeOption {
	return func(o *encodeOptions) { o.includeNumberDefaults = true }
}

type decodeOptions struct {
	expectedType string
}

// DecodeOption adjusts a single Decode call.
type DecodeOption func(*decodeOptions)

// WithExpectedType fails the decode with BadDecodingError when the
// message's registered name differs from name.
func WithExpectedType(name string) DecodeOption {
	return func(o *decodeOptions) { o.expectedType = name }
}

// Encode serializes a registered structured message under the given
// wire format, framed with its encoding id so Decode can dispatch. The
// context supplies the namespace/server URI tables.
func Encode(msg Encodeable, ec *EncodingContext, format Format, opts ...EncodeOption) ([]byte, error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if msg == nil {
		return nil, BadEncodingError
	}
	switch format {
	case FormatBinary:
		if o.jsonVariantSet {
			return nil, BadNotSupported
		}
		return encodeBinaryMessage(msg, ec)
	case FormatXML:
		if o.jsonVariantSet {
			return nil, BadNotSupported
		}
		return encodeXMLMessage(msg, ec)
	case FormatJSON:
		return encodeJSONMessage(msg, ec, jsonPolicyFor(o))
	default:
		return nil, BadNotSupported
	}
}

// Decode deserializes a top-level message, dispatching on the encoding
// id found in the wire data. A limits violation fails the whole decode
// with BadEncodingLimitsExceeded; malformed data fails with
// BadDecodingError; an unregistered top-level id fails with
// BadDataTypeIDUnknown (only nested ExtensionObject bodies degrade to
// opaque preservation).
func Decode(b []byte, ec *EncodingContext, format Format, opts ...DecodeOption) (Encodeable, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	var (
		msg Encodeable
		reg *TypeRegistration
		err error
	)
	switch format {
	case FormatBinary:
		msg, reg, err = decodeBinaryMessage(b, ec)
	case FormatXML:
		msg, reg, err = decodeXMLMessage(b, ec)
	case FormatJSON:
		msg, reg, err = decodeJSONMessage(b, ec)
	default:
		return nil, BadNotSupported
	}
	if err != nil {
		return nil, err
	}
	if o.expectedType != "" && reg.Name != o.expectedType {
		return nil, BadDecodingError
	}
	return msg, nil
}

func encodeBinaryMessage(msg Encodeable, ec *EncodingContext) ([]byte, error) {
	id, ok := FindEncodingIDForType(FormatBinary, msg)
	if !ok {
		return nil, BadEncodingError
	}
	stream := buffer.NewPartitionAt(bufferPool)
	defer stream.Reset()
	enc := NewBinaryEncoder(stream, ec)
	if err := enc.WriteNodeID("TypeId", ToNodeID(id, ec.NamespaceURIs())); err != nil {
		return nil, err
	}
	if err := msg.EncodeTo(enc); err != nil {
		return nil, err
	}
	out := make([]byte, stream.Len())
	if _, err := io.ReadFull(stream, out); err != nil {
		return nil, BadEncodingError
	}
	return out, nil
}

func decodeBinaryMessage(b []byte, ec *EncodingContext) (Encodeable, *TypeRegistration, error) {
	dec := NewBinaryDecoder(bytes.NewReader(b), ec)
	var id NodeID
	if err := dec.ReadNodeID("TypeId", &id); err != nil {
		return nil, nil, err
	}
	reg, ok := FindRegistrationForEncodingID(FormatBinary, ToExpandedNodeID(id, ec.NamespaceURIs()))
	if !ok {
		return nil, nil, BadDataTypeIDUnknown
	}
	msg := reg.New()
	if err := msg.DecodeFrom(dec); err != nil {
		return nil, nil, err
	}
	return msg, reg, nil
}
