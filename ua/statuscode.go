package ua

import "fmt"

// StatusCode is the 32-bit result code defined by OPC UA Part 4. The two
// high bits carry the severity, the next bits the sub-code. StatusCode
// implements error so that codecs can return the code directly.
type StatusCode uint32

const (
	// Good - the operation completed successfully.
	Good StatusCode = 0x00000000
	// BadUnexpectedError - an unexpected error occurred.
	BadUnexpectedError StatusCode = 0x80010000
	// BadInternalError - an internal error occurred as a result of a programming or configuration error.
	BadInternalError StatusCode = 0x80020000
	// BadOutOfMemory - not enough memory to complete the operation.
	BadOutOfMemory StatusCode = 0x80030000
	// BadTimeout - the operation timed out.
	BadTimeout StatusCode = 0x800A0000
	// BadEncodingLimitsExceeded - the message contains a string/bytestring/array
	// length, or a nesting depth, that exceeds the limits set by the receiver.
	BadEncodingLimitsExceeded StatusCode = 0x80080000
	// BadDataTypeIDUnknown - the extension object cannot be processed because the data type id is not recognized.
	BadDataTypeIDUnknown StatusCode = 0x80110000
	// BadEncodingError - an error occurred while encoding.
	BadEncodingError StatusCode = 0x80380000
	// BadDecodingError - the wire data is malformed, truncated or inconsistent.
	BadDecodingError StatusCode = 0x80390000
	// BadNotSupported - the requested operation or format combination is not supported.
	BadNotSupported StatusCode = 0x803D0000
	// BadInvalidArgument - one or more arguments are invalid.
	BadInvalidArgument StatusCode = 0x80AB0000
	// BadDataLost - data is missing due to collection started/stopped/lost.
	BadDataLost StatusCode = 0x809D0000
	// BadNodeIDInvalid - the node id is not valid.
	BadNodeIDInvalid StatusCode = 0x80330000
	// BadServerHalted - the server has stopped and cannot process any requests.
	BadServerHalted StatusCode = 0x800E0000
)

const (
	// SeverityMask - .
	SeverityMask uint32 = 0xC0000000
	// SeverityGood - .
	SeverityGood uint32 = 0x00000000
	// SeverityUncertain - .
	SeverityUncertain uint32 = 0x40000000
	// SeverityBad - .
	SeverityBad uint32 = 0x80000000
	// SubCodeMask - .
	SubCodeMask uint32 = 0x0FFF0000
	// StructureChanged - .
	StructureChanged uint32 = 0x00008000
	// SemanticsChanged - .
	SemanticsChanged uint32 = 0x00004000
	// InfoTypeMask - .
	InfoTypeMask uint32 = 0x00000C00
	// InfoTypeDataValue - .
	InfoTypeDataValue uint32 = 0x00000400
	// Overflow - .
	Overflow uint32 = 0x00000080
)

var statusText = map[StatusCode]string{
	Good:                      "Good",
	BadUnexpectedError:        "BadUnexpectedError",
	BadInternalError:          "BadInternalError",
	BadOutOfMemory:            "BadOutOfMemory",
	BadTimeout:                "BadTimeout",
	BadEncodingLimitsExceeded: "BadEncodingLimitsExceeded",
	BadDataTypeIDUnknown:      "BadDataTypeIDUnknown",
	BadEncodingError:          "BadEncodingError",
	BadDecodingError:          "BadDecodingError",
	BadNotSupported:           "BadNotSupported",
	BadInvalidArgument:        "BadInvalidArgument",
	BadDataLost:               "BadDataLost",
	BadNodeIDInvalid:          "BadNodeIDInvalid",
	BadServerHalted:           "BadServerHalted",
}

// IsGood returns true if the StatusCode is good.
func (c StatusCode) IsGood() bool {
	return (uint32(c) & SeverityMask) == SeverityGood
}

// IsBad returns true if the StatusCode is bad.
func (c StatusCode) IsBad() bool {
	return (uint32(c) & SeverityMask) == SeverityBad
}

// IsUncertain returns true if the StatusCode is uncertain.
func (c StatusCode) IsUncertain() bool {
	return (uint32(c) & SeverityMask) == SeverityUncertain
}

// IsStructureChanged returns true if the structure is changed.
func (c StatusCode) IsStructureChanged() bool {
	return (uint32(c) & StructureChanged) == StructureChanged
}

// IsSemanticsChanged returns true if the semantics is changed.
func (c StatusCode) IsSemanticsChanged() bool {
	return (uint32(c) & SemanticsChanged) == SemanticsChanged
}

// IsOverflow returns true if the data value has exceeded the limits of the data type.
func (c StatusCode) IsOverflow() bool {
	return ((uint32(c) & InfoTypeMask) == InfoTypeDataValue) && ((uint32(c) & Overflow) == Overflow)
}

// Symbol returns the symbolic name of the StatusCode, or "" when unknown.
func (c StatusCode) Symbol() string {
	return statusText[c]
}

// Error implements the error interface.
func (c StatusCode) Error() string {
	if s, ok := statusText[c]; ok {
		return s
	}
	return fmt.Sprintf("StatusCode 0x%08X", uint32(c))
}

func (c StatusCode) String() string {
	return c.Error()
}
