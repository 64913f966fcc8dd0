package senml

import (
	"strconv"
	"sync"
)

// Codec converts records to and from one wire format.
type Codec interface {
	Format() Format
	Marshal(records []Record) ([]byte, error)
	Unmarshal(data []byte) ([]Record, error)
}

// The JSON codec is built in and cannot be replaced or removed. The table
// holds extra formats and is meant to be filled once during program init.
var (
	codecsMu sync.RWMutex
	codecs   = map[Format]Codec{}
)

// RegisterCodec installs c for c.Format(), replacing any previous codec for
// that format. nil values and JSON codecs are ignored. Call it from init:
// the table is shared by every caller in the process.
func RegisterCodec(c Codec) {
	if c == nil || c.Format() == JSON {
		return
	}
	codecsMu.Lock()
	codecs[c.Format()] = c
	codecsMu.Unlock()
}

// UnregisterCodec removes the codec for f. Later Decode/Encode calls for f
// report unsupported_format. JSON cannot be removed.
func UnregisterCodec(f Format) {
	if f == JSON {
		return
	}
	codecsMu.Lock()
	delete(codecs, f)
	codecsMu.Unlock()
}

func lookupCodec(f Format) (Codec, error) {
	if f == JSON {
		return jsonCodec{}, nil
	}
	codecsMu.RLock()
	c, ok := codecs[f]
	codecsMu.RUnlock()
	if !ok {
		return nil, newIssue(CodeUnsupportedFormat, "", -1, map[string]string{"format": f.String()})
	}
	return c, nil
}

// Decode parses data in the given format and validates the resulting pack.
func Decode(data []byte, f Format) (Pack, error) {
	return DecodeWith(data, f, DecodeOpt{})
}

// DecodeWith is Decode with size and duplicate-key enforcement.
func DecodeWith(data []byte, f Format, opt DecodeOpt) (Pack, error) {
	p, err := Parse(data, f, opt)
	if err != nil {
		return Pack{}, err
	}
	if err := Validate(&p); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// Parse turns data into a Pack without validating it. Callers that want
// every violation rather than the first pair it with ValidateAll.
func Parse(data []byte, f Format, opt DecodeOpt) (Pack, error) {
	c, err := lookupCodec(f)
	if err != nil {
		return Pack{}, err
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Pack{}, newIssue(CodeTooBig, "/", -1, map[string]string{
			"max": strconv.FormatInt(opt.MaxBytes, 10),
			"got": strconv.Itoa(len(data)),
		})
	}
	records, err := c.Unmarshal(data)
	if err != nil {
		return Pack{}, err
	}
	if opt.StrictKeys && f == JSON {
		if err := firstKeyIssue(data); err != nil {
			return Pack{}, err
		}
	}
	return Pack{Records: records}, nil
}

// Encode serializes p.Records in the given format.
func Encode(p Pack, f Format) ([]byte, error) {
	c, err := lookupCodec(f)
	if err != nil {
		return nil, err
	}
	return c.Marshal(p.Records)
}
