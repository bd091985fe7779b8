package ua

import (
	"testing"

	uuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseNodeID(t *testing.T) {
	assert.Equal(t, NodeID(NodeIDNumeric{0, 85}), ParseNodeID("i=85"))
	assert.Equal(t, NodeID(NodeIDString{2, "Demo.Static.Scalar.Float"}), ParseNodeID("ns=2;s=Demo.Static.Scalar.Float"))
	assert.Equal(t,
		NodeID(NodeIDGUID{2, uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c")}),
		ParseNodeID("ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c"))
	assert.Equal(t, NodeID(NodeIDOpaque{2, ByteString("abcd")}), ParseNodeID("ns=2;b=YWJjZA=="))

	assert.Nil(t, ParseNodeID("i=0"))
	assert.Nil(t, ParseNodeID("ns=2"))
	assert.Nil(t, ParseNodeID("x=1"))
	assert.Nil(t, ParseNodeID("ns=99999;i=1"))
}

func TestNodeIDString(t *testing.T) {
	assert.Equal(t, "i=85", NewNodeIDNumeric(0, 85).String())
	assert.Equal(t, "ns=2;s=Demo", NewNodeIDString(2, "Demo").String())
	assert.Equal(t, "b=YWJjZA==", NewNodeIDOpaque(0, ByteString("abcd")).String())
}

func TestParseExpandedNodeID(t *testing.T) {
	n := ParseExpandedNodeID("svr=1;nsu=http://example.com/;s=Demo")
	assert.Equal(t, uint32(1), n.ServerIndex)
	assert.Equal(t, "http://example.com/", n.NamespaceURI)
	assert.Equal(t, NodeID(NodeIDString{0, "Demo"}), n.NodeID)
	assert.Equal(t, "svr=1;nsu=http://example.com/;s=Demo", n.String())

	assert.True(t, ParseExpandedNodeID("svr=1").IsNil())
	assert.False(t, ParseExpandedNodeID("i=85").IsNil())
}

func TestNodeIDNamespaceTranslation(t *testing.T) {
	uris := []string{CoreNamespaceURI, "", "http://example.com/plant"}

	x := ToExpandedNodeID(NewNodeIDNumeric(2, 42), uris)
	assert.Equal(t, "http://example.com/plant", x.NamespaceURI)

	back := ToNodeID(x, uris)
	assert.Equal(t, NodeID(NodeIDNumeric{2, 42}), back)

	// a URI missing from the table cannot be expressed as an index
	assert.Nil(t, ToNodeID(ExpandedNodeID{NamespaceURI: "http://nowhere/", NodeID: NewNodeIDNumeric(0, 1)}, uris))

	// an index beyond the table stays an index
	y := ToExpandedNodeID(NewNodeIDNumeric(9, 42), uris)
	assert.Equal(t, "", y.NamespaceURI)
	assert.Equal(t, NodeID(NodeIDNumeric{9, 42}), y.NodeID)
}
