package senml

// DefaultVersion is the SenML version implied when bver is not present.
// Normalized records never carry it explicitly.
const DefaultVersion = 10

// Record is one SenML record. Base fields (Base*) apply to this record and to
// every following record until another record sets the same base field.
//
// Plain fields treat their zero value as "not provided". Measurement slots are
// pointers so that a provided 0, false or "" still counts as a value.
type Record struct {
	Link        string   `json:"l,omitempty"`
	BaseName    string   `json:"bn,omitempty"`
	BaseTime    float64  `json:"bt,omitempty"`
	BaseUnit    string   `json:"bu,omitempty"`
	BaseVersion uint     `json:"bver,omitempty"`
	BaseValue   float64  `json:"bv,omitempty"`
	BaseSum     float64  `json:"bs,omitempty"`
	Name        string   `json:"n,omitempty"`
	Unit        string   `json:"u,omitempty"`
	Time        float64  `json:"t,omitempty"`
	UpdateTime  float64  `json:"ut,omitempty"`
	Value       *float64 `json:"v,omitempty"`
	StringValue *string  `json:"vs,omitempty"`
	DataValue   *string  `json:"vd,omitempty"`
	BoolValue   *bool    `json:"vb,omitempty"`
	Sum         *float64 `json:"s,omitempty"`
}

// Pack is an ordered list of records. Order matters: base fields are folded
// left to right.
type Pack struct {
	Records []Record
}

// clone returns a copy of r that shares no pointers with it.
func (r Record) clone() Record {
	c := r
	if r.Value != nil {
		v := *r.Value
		c.Value = &v
	}
	if r.StringValue != nil {
		v := *r.StringValue
		c.StringValue = &v
	}
	if r.DataValue != nil {
		v := *r.DataValue
		c.DataValue = &v
	}
	if r.BoolValue != nil {
		v := *r.BoolValue
		c.BoolValue = &v
	}
	if r.Sum != nil {
		v := *r.Sum
		c.Sum = &v
	}
	return c
}

// Format identifies a wire encoding.
type Format int

const (
	JSON Format = iota + 1
	XML
	CBOR
)

// Content types registered for SenML.
const (
	ContentTypeJSON = "application/senml+json"
	ContentTypeXML  = "application/senml+xml"
	ContentTypeCBOR = "application/senml+cbor"
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case XML:
		return "xml"
	case CBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ContentType returns the media type for f, or "" for unknown formats.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return ContentTypeJSON
	case XML:
		return ContentTypeXML
	case CBOR:
		return ContentTypeCBOR
	default:
		return ""
	}
}

// ParseFormat maps a short name ("json", "xml", "cbor") or a SenML content
// type to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "JSON", ContentTypeJSON:
		return JSON, nil
	case "xml", "XML", ContentTypeXML:
		return XML, nil
	case "cbor", "CBOR", ContentTypeCBOR:
		return CBOR, nil
	}
	return 0, newIssue(CodeUnsupportedFormat, "", -1, map[string]string{"format": s})
}

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// StrictKeys rejects records that repeat a key (for example two "v") or
	// spell a SenML key with different case (for example "V"). Without it such
	// case variants are ignored like any other unknown key.
	StrictKeys bool
	// MaxBytes rejects payloads larger than this many bytes. 0 disables the check.
	MaxBytes int64
}
