package ua

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodingContextNamespaceTable(t *testing.T) {
	ec := NewEncodingContext()
	assert.Equal(t, []string{CoreNamespaceURI, ""}, ec.NamespaceURIs())

	idx := ec.AddNamespaceURI("http://example.com/plant")
	assert.Equal(t, uint16(2), idx)
	assert.Equal(t, idx, ec.AddNamespaceURI("http://example.com/plant"))
	assert.Equal(t, uint16(0), ec.AddNamespaceURI(CoreNamespaceURI))

	uri, ok := ec.NamespaceURI(2)
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/plant", uri)
	_, ok = ec.NamespaceURI(3)
	assert.False(t, ok)
}

func TestEncodingContextApplicationNamespace(t *testing.T) {
	ec := NewEncodingContext()
	ec.SetApplicationNamespace("http://example.com/app")
	uri, ok := ec.NamespaceURI(1)
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/app", uri)
	// the reserved slot is reused, not duplicated
	assert.Equal(t, uint16(1), ec.AddNamespaceURI("http://example.com/app"))
}

func TestEncodingContextServerTable(t *testing.T) {
	ec := NewEncodingContext()
	assert.Empty(t, ec.ServerURIs())
	assert.Equal(t, uint32(0), ec.AddServerURI("urn:server:a"))
	assert.Equal(t, uint32(1), ec.AddServerURI("urn:server:b"))
	assert.Equal(t, uint32(0), ec.AddServerURI("urn:server:a"))

	uri, ok := ec.ServerURI(1)
	assert.True(t, ok)
	assert.Equal(t, "urn:server:b", uri)
	_, ok = ec.ServerURI(2)
	assert.False(t, ok)
}

func TestEncodingContextNamespaceScopes(t *testing.T) {
	ec := NewEncodingContext()
	assert.Equal(t, CoreNamespaceURI, ec.ActiveNamespace())

	ec.PushNamespace("http://example.com/outer")
	ec.PushNamespace("http://example.com/inner")
	assert.Equal(t, "http://example.com/inner", ec.ActiveNamespace())
	ec.PopNamespace()
	assert.Equal(t, "http://example.com/outer", ec.ActiveNamespace())
	ec.PopNamespace()
	assert.Equal(t, CoreNamespaceURI, ec.ActiveNamespace())

	assert.Panics(t, func() { ec.PopNamespace() })
}

func TestEncodingContextLimits(t *testing.T) {
	ec := NewEncodingContext()
	assert.Equal(t, DefaultEncodingLimits(), ec.Limits())

	limits := EncodingLimits{MaxStringLength: 1, MaxByteStringLength: 2, MaxArrayLength: 3, MaxRecursionDepth: 4}
	ec.SetLimits(limits)
	assert.Equal(t, limits, ec.Limits())
}
