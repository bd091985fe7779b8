package ua

// Range defines a lower and upper bound for a value.
type Range struct {
	Low  float64
	High float64
}

func (r *Range) EncodeTo(enc Encoder) error {
	if err := enc.WriteDouble("Low", r.Low); err != nil {
		return err
	}
	return enc.WriteDouble("High", r.High)
}

func (r *Range) DecodeFrom(dec Decoder) error {
	if err := dec.ReadDouble("Low", &r.Low); err != nil {
		return err
	}
	return dec.ReadDouble("High", &r.High)
}

// EUInformation describes an engineering unit per UNECE Recommendation
// No. 20.
type EUInformation struct {
	NamespaceURI string
	UnitID       int32
	DisplayName  LocalizedText
	Description  LocalizedText
}

func (e *EUInformation) EncodeTo(enc Encoder) error {
	if err := enc.WriteString("NamespaceUri", e.NamespaceURI); err != nil {
		return err
	}
	if err := enc.WriteInt32("UnitId", e.UnitID); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("DisplayName", e.DisplayName); err != nil {
		return err
	}
	return enc.WriteLocalizedText("Description", e.Description)
}

func (e *EUInformation) DecodeFrom(dec Decoder) error {
	if err := dec.ReadString("NamespaceUri", &e.NamespaceURI); err != nil {
		return err
	}
	if err := dec.ReadInt32("UnitId", &e.UnitID); err != nil {
		return err
	}
	if err := dec.ReadLocalizedText("DisplayName", &e.DisplayName); err != nil {
		return err
	}
	return dec.ReadLocalizedText("Description", &e.Description)
}

// Argument describes a method input or output parameter.
type Argument struct {
	Name            string
	DataType        NodeID
	ValueRank       int32
	ArrayDimensions []uint32
	Description     LocalizedText
}

func (a *Argument) EncodeTo(enc Encoder) error {
	if err := enc.WriteString("Name", a.Name); err != nil {
		return err
	}
	if err := enc.WriteNodeID("DataType", a.DataType); err != nil {
		return err
	}
	if err := enc.WriteInt32("ValueRank", a.ValueRank); err != nil {
		return err
	}
	if err := enc.WriteUInt32Array("ArrayDimensions", a.ArrayDimensions); err != nil {
		return err
	}
	return enc.WriteLocalizedText("Description", a.Description)
}

func (a *Argument) DecodeFrom(dec Decoder) error {
	if err := dec.ReadString("Name", &a.Name); err != nil {
		return err
	}
	if err := dec.ReadNodeID("DataType", &a.DataType); err != nil {
		return err
	}
	if err := dec.ReadInt32("ValueRank", &a.ValueRank); err != nil {
		return err
	}
	if err := dec.ReadUInt32Array("ArrayDimensions", &a.ArrayDimensions); err != nil {
		return err
	}
	return dec.ReadLocalizedText("Description", &a.Description)
}

func init() {
	RegisterEncodeable(TypeRegistration{
		Name:     "Range",
		New:      func() Encodeable { return new(Range) },
		BinaryID: NewExpandedNodeID(NewNodeIDNumeric(0, 886)),
		XMLID:    NewExpandedNodeID(NewNodeIDNumeric(0, 885)),
		JSONID:   NewExpandedNodeID(NewNodeIDNumeric(0, 15375)),
	})
	RegisterEncodeable(TypeRegistration{
		Name:     "EUInformation",
		New:      func() Encodeable { return new(EUInformation) },
		BinaryID: NewExpandedNodeID(NewNodeIDNumeric(0, 889)),
		XMLID:    NewExpandedNodeID(NewNodeIDNumeric(0, 888)),
		JSONID:   NewExpandedNodeID(NewNodeIDNumeric(0, 15376)),
	})
	RegisterEncodeable(TypeRegistration{
		Name:     "Argument",
		New:      func() Encodeable { return new(Argument) },
		BinaryID: NewExpandedNodeID(NewNodeIDNumeric(0, 298)),
		XMLID:    NewExpandedNodeID(NewNodeIDNumeric(0, 297)),
		JSONID:   NewExpandedNodeID(NewNodeIDNumeric(0, 15081)),
	})
}
