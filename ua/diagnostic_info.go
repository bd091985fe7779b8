package ua

// DiagnosticInfo holds additional info regarding errors in service calls.
// The symbolic id, namespace, locale and localized text fields are
// indexes into the string table of the enclosing response header. The
// chain of InnerDiagnosticInfo links is finite; decoders bound its depth
// with the recursion ceiling of the encoding limits.
type DiagnosticInfo struct {
	SymbolicID          *int32          `json:",omitempty"`
	NamespaceURI        *int32          `json:",omitempty"`
	Locale              *int32          `json:",omitempty"`
	LocalizedText       *int32          `json:",omitempty"`
	AdditionalInfo      *string         `json:",omitempty"`
	InnerStatusCode     *StatusCode     `json:",omitempty"`
	InnerDiagnosticInfo *DiagnosticInfo `json:",omitempty"`
}

// IsNil reports whether no field of the DiagnosticInfo is set.
func (d DiagnosticInfo) IsNil() bool {
	return d.SymbolicID == nil && d.NamespaceURI == nil && d.Locale == nil &&
		d.LocalizedText == nil && d.AdditionalInfo == nil &&
		d.InnerStatusCode == nil && d.InnerDiagnosticInfo == nil
}
