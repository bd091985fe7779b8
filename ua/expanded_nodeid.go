package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandedNodeID identifies a Node, optionally in a remote namespace or
// on a remote server. A non-empty NamespaceURI overrides the namespace
// index carried by the inner NodeID.
type ExpandedNodeID struct {
	ServerIndex  uint32
	NamespaceURI string
	NodeID       NodeID
}

// NewExpandedNodeID makes an ExpandedNodeID for a local node.
func NewExpandedNodeID(nodeID NodeID) ExpandedNodeID {
	return ExpandedNodeID{0, "", nodeID}
}

// NilExpandedNodeID is the nil value.
var NilExpandedNodeID = ExpandedNodeID{0, "", nil}

// IsNil reports whether the ExpandedNodeID identifies no node.
func (n ExpandedNodeID) IsNil() bool {
	return n.NodeID == nil && n.NamespaceURI == "" && n.ServerIndex == 0
}

// ParseExpandedNodeID returns an ExpandedNodeID from a string representation.
//   - ParseExpandedNodeID("i=85")
//   - ParseExpandedNodeID("nsu=http://www.unifiedautomation.com/DemoServer/;s=Demo.Static.Scalar.Float")
//   - ParseExpandedNodeID("svr=1;nsu=http://example.com/;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c")
func ParseExpandedNodeID(s string) ExpandedNodeID {
	var svr uint64
	var err error
	if strings.HasPrefix(s, "svr=") {
		pos := strings.Index(s, ";")
		if pos == -1 {
			return NilExpandedNodeID
		}
		svr, err = strconv.ParseUint(s[4:pos], 10, 32)
		if err != nil {
			return NilExpandedNodeID
		}
		s = s[pos+1:]
	}
	var nsu string
	if strings.HasPrefix(s, "nsu=") {
		pos := strings.Index(s, ";")
		if pos == -1 {
			return NilExpandedNodeID
		}
		nsu = s[4:pos]
		s = s[pos+1:]
	}
	return ExpandedNodeID{uint32(svr), nsu, ParseNodeID(s)}
}

// String returns a string representation, e.g. "nsu=http://www.unifiedautomation.com/DemoServer/;s=Demo"
func (n ExpandedNodeID) String() string {
	b := new(strings.Builder)
	if n.ServerIndex > 0 {
		fmt.Fprintf(b, "svr=%d;", n.ServerIndex)
	}
	if len(n.NamespaceURI) > 0 {
		fmt.Fprintf(b, "nsu=%s;", n.NamespaceURI)
	}
	b.WriteString(nodeIDToString(n.NodeID))
	return b.String()
}

func (n ExpandedNodeID) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ToNodeID converts an ExpandedNodeID to a NodeID by looking up the
// NamespaceURI and replacing it with the index. Returns nil when the
// URI is not present in the table.
func ToNodeID(n ExpandedNodeID, namespaceURIs []string) NodeID {
	if n.NamespaceURI == "" {
		return n.NodeID
	}
	for i, uri := range namespaceURIs {
		if uri == n.NamespaceURI {
			return withNamespaceIndex(n.NodeID, uint16(i))
		}
	}
	return nil
}
