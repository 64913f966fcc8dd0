package senml_test

import (
	"encoding/hex"
	"testing"

	senml "github.com/reoring/senml"
	"github.com/stretchr/testify/require"
)

const (
	value = 42.0
	sum   = 10.0
	boolV = true
)

// jsonEncodedHex is the reference JSON encoding of pack().
const jsonEncodedHex = "5b7b22626e223a22626173652d6e616d65222c226274223a3130302c226275223a22626173652d756e6974222c2262766572223a31312c226276223a33342c226273223a3130302c226e223a226e616d65222c2275223a22756e6974222c2274223a3135302c227574223a3330302c2276223a34322c2273223a31307d2c7b22626e223a22626173652d6e616d65222c226274223a3130302c226275223a22626173652d756e6974222c2262766572223a31312c226273223a3130302c226e223a226e616d652d31222c2275223a22756e6974222c2274223a3135302c227574223a3330302c227662223a747275652c2273223a31307d5d"

func fromHex(t *testing.T, h string) []byte {
	t.Helper()
	b, err := hex.DecodeString(h)
	require.NoError(t, err)
	return b
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func boolp(v bool) *bool     { return &v }

func pack() senml.Pack {
	return senml.Pack{Records: []senml.Record{
		{
			BaseName:    "base-name",
			BaseTime:    100,
			BaseUnit:    "base-unit",
			BaseVersion: 11,
			BaseValue:   34,
			BaseSum:     100,
			Name:        "name",
			Unit:        "unit",
			Time:        150,
			UpdateTime:  300,
			Value:       f64(value),
			Sum:         f64(sum),
		},
		{
			BaseName:    "base-name",
			BaseTime:    100,
			BaseUnit:    "base-unit",
			BaseVersion: 11,
			BaseSum:     100,
			Name:        "name-1",
			Unit:        "unit",
			Time:        150,
			UpdateTime:  300,
			BoolValue:   boolp(boolV),
			Sum:         f64(sum),
		},
	}}
}
