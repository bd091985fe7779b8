package ua

// CoreNamespaceURI is the OPC UA core namespace, always at index 0.
const CoreNamespaceURI = "http://opcfoundation.org/UA/"

// EncodingContext supplies the message-scoped namespace and server URI
// tables plus the decoding limits to encoders and decoders. A context is
// owned by exactly one in-progress encode or decode; distinct operations
// use distinct contexts (or the same context sequentially).
//
// Index 0 of the namespace table is always the OPC UA core namespace;
// index 1 is reserved for the application's own namespace by convention.
type EncodingContext struct {
	namespaceURIs []string
	serverURIs    []string
	limits        EncodingLimits
	nsStack       []string
}

// NewEncodingContext constructs an EncodingContext with the two reserved
// namespace entries and default limits.
func NewEncodingContext() *EncodingContext {
	return &EncodingContext{
		namespaceURIs: []string{CoreNamespaceURI, ""},
		serverURIs:    []string{},
		limits:        DefaultEncodingLimits(),
	}
}

// SetApplicationNamespace sets the reserved entry at index 1.
func (ec *EncodingContext) SetApplicationNamespace(uri string) {
	ec.namespaceURIs[1] = uri
}

// SetLimits replaces the decoding limits for messages using this context.
func (ec *EncodingContext) SetLimits(limits EncodingLimits) {
	ec.limits = limits
}

// Limits returns the decoding limits of this context.
func (ec *EncodingContext) Limits() EncodingLimits {
	return ec.limits
}

// NamespaceURIs returns the namespace table. Callers must not mutate it.
func (ec *EncodingContext) NamespaceURIs() []string {
	return ec.namespaceURIs
}

// AddNamespaceURI returns the index of uri in the namespace table,
// appending it when absent.
func (ec *EncodingContext) AddNamespaceURI(uri string) uint16 {
	for i, u := range ec.namespaceURIs {
		if u == uri {
			return uint16(i)
		}
	}
	ec.namespaceURIs = append(ec.namespaceURIs, uri)
	return uint16(len(ec.namespaceURIs) - 1)
}

// NamespaceURI returns the URI at the given index.
func (ec *EncodingContext) NamespaceURI(index uint16) (string, bool) {
	if int(index) >= len(ec.namespaceURIs) {
		return "", false
	}
	return ec.namespaceURIs[index], true
}

// ServerURIs returns the server URI table. Callers must not mutate it.
func (ec *EncodingContext) ServerURIs() []string {
	return ec.serverURIs
}

// AddServerURI returns the index of uri in the server table, appending
// it when absent.
func (ec *EncodingContext) AddServerURI(uri string) uint32 {
	for i, u := range ec.serverURIs {
		if u == uri {
			return uint32(i)
		}
	}
	ec.serverURIs = append(ec.serverURIs, uri)
	return uint32(len(ec.serverURIs) - 1)
}

// ServerURI returns the URI at the given index.
func (ec *EncodingContext) ServerURI(index uint32) (string, bool) {
	if int(index) >= len(ec.serverURIs) {
		return "", false
	}
	return ec.serverURIs[index], true
}

// PushNamespace enters a namespace scope around the encode or decode of
// a nested structured type. Every push must be undone by exactly one
// PopNamespace; codecs pop via defer so the stack unwinds correctly on
// error paths.
func (ec *EncodingContext) PushNamespace(uri string) {
	ec.nsStack = append(ec.nsStack, uri)
}

// PopNamespace leaves the innermost namespace scope. An unbalanced pop
// is a programming error, never a consequence of wire data, and panics.
func (ec *EncodingContext) PopNamespace() {
	if len(ec.nsStack) == 0 {
		panic("ua: namespace stack underflow")
	}
	ec.nsStack = ec.nsStack[:len(ec.nsStack)-1]
}

// ActiveNamespace returns the URI of the innermost namespace scope, or
// the core namespace when no scope is active.
func (ec *EncodingContext) ActiveNamespace() string {
	if len(ec.nsStack) == 0 {
		return CoreNamespaceURI
	}
	return ec.nsStack[len(ec.nsStack)-1]
}
