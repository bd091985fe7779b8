package ua

// EncodingLimits bound the resources a decoder will commit to a single
// message. A length or depth found on the wire beyond these ceilings
// aborts the whole decode with BadEncodingLimitsExceeded before any
// allocation of the offending size is attempted.
type EncodingLimits struct {
	// MaxStringLength is the maximum length in bytes of a decoded String.
	MaxStringLength uint32
	// MaxByteStringLength is the maximum length of a decoded ByteString.
	MaxByteStringLength uint32
	// MaxArrayLength is the maximum element count of a decoded array.
	MaxArrayLength uint32
	// MaxRecursionDepth is the maximum nesting of Variant, ExtensionObject
	// and DiagnosticInfo structures.
	MaxRecursionDepth uint32
}

// defaults match the server capability limits commonly advertised
// by OPC UA stacks.
const (
	defaultMaxStringLength     = 1048576
	defaultMaxByteStringLength = 1048576
	defaultMaxArrayLength      = 65536
	defaultMaxRecursionDepth   = 100
)

// DefaultEncodingLimits returns the limits applied when the caller does
// not supply any.
func DefaultEncodingLimits() EncodingLimits {
	return EncodingLimits{
		MaxStringLength:     defaultMaxStringLength,
		MaxByteStringLength: defaultMaxByteStringLength,
		MaxArrayLength:      defaultMaxArrayLength,
		MaxRecursionDepth:   defaultMaxRecursionDepth,
	}
}
