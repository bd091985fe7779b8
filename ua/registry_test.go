package ua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookups(t *testing.T) {
	reg, ok := FindRegistrationForName("Range")
	require.True(t, ok)
	assert.Equal(t, "Range", reg.Name)

	byID, ok := FindRegistrationForEncodingID(FormatBinary, NewExpandedNodeID(NewNodeIDNumeric(0, 886)))
	require.True(t, ok)
	assert.Same(t, reg, byID)

	byType, ok := FindRegistrationForType(&Range{})
	require.True(t, ok)
	assert.Same(t, reg, byType)

	id, ok := FindEncodingIDForType(FormatJSON, &Range{})
	require.True(t, ok)
	assert.Equal(t, NewExpandedNodeID(NewNodeIDNumeric(0, 15375)), id)

	_, ok = FindRegistrationForEncodingID(FormatXML, NewExpandedNodeID(NewNodeIDNumeric(0, 999999)))
	assert.False(t, ok)
	_, ok = FindRegistrationForName("NoSuchType")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		RegisterEncodeable(TypeRegistration{
			Name:     "AnotherRange",
			New:      func() Encodeable { return new(Range) },
			BinaryID: NewExpandedNodeID(NewNodeIDNumeric(0, 59990)),
		})
	})
	assert.Panics(t, func() {
		RegisterEncodeable(TypeRegistration{Name: "Incomplete"})
	})
}

func TestRegistrationEncodingID(t *testing.T) {
	reg, ok := FindRegistrationForName("EUInformation")
	require.True(t, ok)
	assert.Equal(t, NewExpandedNodeID(NewNodeIDNumeric(0, 889)), reg.EncodingID(FormatBinary))
	assert.Equal(t, NewExpandedNodeID(NewNodeIDNumeric(0, 888)), reg.EncodingID(FormatXML))
	assert.Equal(t, NewExpandedNodeID(NewNodeIDNumeric(0, 15376)), reg.EncodingID(FormatJSON))
}
