package senml

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// recordKeys lists the wire keys of a Record. Keys are case-sensitive: "V" is
// not "v".
var recordKeys = []string{"l", "bn", "bt", "bu", "bver", "bv", "bs", "n", "u", "t", "ut", "v", "vs", "vd", "vb", "s"}

// recordField returns the decode target for key inside r. Pointer slots are
// allocated on demand.
func recordField(r *Record, key string) any {
	switch key {
	case "l":
		return &r.Link
	case "bn":
		return &r.BaseName
	case "bt":
		return &r.BaseTime
	case "bu":
		return &r.BaseUnit
	case "bver":
		return &r.BaseVersion
	case "bv":
		return &r.BaseValue
	case "bs":
		return &r.BaseSum
	case "n":
		return &r.Name
	case "u":
		return &r.Unit
	case "t":
		return &r.Time
	case "ut":
		return &r.UpdateTime
	case "v":
		r.Value = new(float64)
		return r.Value
	case "vs":
		r.StringValue = new(string)
		return r.StringValue
	case "vd":
		r.DataValue = new(string)
		return r.DataValue
	case "vb":
		r.BoolValue = new(bool)
		return r.BoolValue
	case "s":
		r.Sum = new(float64)
		return r.Sum
	}
	return nil
}

// jsonCodec reads and writes a bare JSON array of records.
type jsonCodec struct{}

func (jsonCodec) Format() Format { return JSON }

func (jsonCodec) Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, parseIssue(err)
	}
	return b, nil
}

// Unmarshal matches keys exactly. Struct-tag decoding folds case, which would
// read "V" as "v"; keys that are not SenML keys verbatim are ignored.
func (jsonCodec) Unmarshal(data []byte) ([]Record, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, parseIssue(err)
	}
	if raw == nil {
		return nil, nil
	}
	records := make([]Record, len(raw))
	for i, obj := range raw {
		r := &records[i]
		for _, key := range recordKeys {
			v, ok := obj[key]
			if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				continue
			}
			if err := json.Unmarshal(v, recordField(r, key)); err != nil {
				it := parseIssue(err)
				at := RecordAt(i).Field(key)
				it.Path, it.Index = at.Pointer(), at.RecordIndex()
				return nil, it
			}
		}
	}
	return records, nil
}
