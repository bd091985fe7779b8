package ua

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLUnknownElementSkipped(t *testing.T) {
	ec := NewEncodingContext()
	// a schema-evolved peer may emit members this build does not know
	doc := `<Range xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd">` +
		`<Low>1.5</Low><Bogus><Deep>x</Deep></Bogus><High>9.5</High></Range>`
	msg, err := Decode([]byte(doc), ec, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, &Range{Low: 1.5, High: 9.5}, msg)
}

func TestXMLWrongRootNamespace(t *testing.T) {
	ec := NewEncodingContext()
	doc := `<Range xmlns="http://example.com/NotTheSchema"><Low>1</Low><High>2</High></Range>`
	_, err := Decode([]byte(doc), ec, FormatXML)
	assert.ErrorIs(t, err, BadDecodingError)
}

func TestXMLUnknownRootName(t *testing.T) {
	ec := NewEncodingContext()
	doc := `<Mystery xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd"></Mystery>`
	_, err := Decode([]byte(doc), ec, FormatXML)
	assert.ErrorIs(t, err, BadDataTypeIDUnknown)
}

func TestXMLNilListOmitted(t *testing.T) {
	ec := NewEncodingContext()
	ev := makeTestEvent()
	ev.Tags = nil
	ev.Readings = nil
	b, err := Encode(ev, ec, FormatXML)
	require.NoError(t, err)
	s := string(b)
	assert.NotContains(t, s, "<Tags")
	assert.NotContains(t, s, "<Readings")

	ev.Tags = []string{}
	b, err = Encode(ev, ec, FormatXML)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<Tags></Tags>")
}

func TestXMLStructuralShapes(t *testing.T) {
	ec := NewEncodingContext()
	b, err := Encode(makeTestEvent(), ec, FormatXML)
	require.NoError(t, err)
	s := string(b)
	// status codes nest a Code element, node ids a display Identifier,
	// and variant arrays use the ListOf wrapper
	assert.Contains(t, s, "<StatusCode><Code>")
	assert.Contains(t, s, "<Identifier>")
	assert.Contains(t, s, "<ListOfInt32>")
	assert.Contains(t, s, "<Int32>2</Int32>")
}

func TestXMLByteStringListEmptyEntry(t *testing.T) {
	ec := NewEncodingContext()
	in := []ByteString{"\x01\x02\x03", "", "\x04"}

	var buf bytes.Buffer
	enc := NewXMLEncoder(&buf, ec)
	require.NoError(t, enc.WriteByteStringArray("Payloads", in))

	root, err := parseXMLTree([]byte("<Wrapper>"+buf.String()+"</Wrapper>"), ec.Limits())
	require.NoError(t, err)

	var got []ByteString
	require.NoError(t, NewXMLDecoder(root, ec).ReadByteStringArray("Payloads", &got))
	assert.Equal(t, in, got)
}

func TestXMLByteStringLimit(t *testing.T) {
	ec := NewEncodingContext()
	limits := DefaultEncodingLimits()
	limits.MaxByteStringLength = 4
	ec.SetLimits(limits)

	root, err := parseXMLTree([]byte(`<Wrapper><Payload>AQIDBAUGBwg=</Payload></Wrapper>`), ec.Limits())
	require.NoError(t, err)

	var bs ByteString
	assert.ErrorIs(t, NewXMLDecoder(root, ec).ReadByteString("Payload", &bs), BadEncodingLimitsExceeded)
}

func TestXMLMalformedDocument(t *testing.T) {
	ec := NewEncodingContext()
	_, err := Decode([]byte(`<Range xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd"><Low>`), ec, FormatXML)
	assert.ErrorIs(t, err, BadDecodingError)
}
