package senml_test

import (
	"errors"
	"testing"

	senml "github.com/reoring/senml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	emptyName := pack()
	emptyName.Records[0].BaseName = ""
	emptyName.Records[0].Name = ""

	invalidName := pack()
	invalidName.Records[0].BaseName = `\o/`

	invalidNameStart := pack()
	invalidNameStart.Records[0].BaseName = "/"

	multiValue := pack()
	multiValue.Records[0].BoolValue = boolp(boolV)

	noValue := pack()
	noValue.Records[0].Value = nil
	noValue.Records[0].BaseSum = 0
	noValue.Records[0].Sum = nil

	validVersion := pack()
	validVersion.Records[1].BaseVersion = 0

	multiVersion := pack()
	multiVersion.Records[1].BaseVersion = 3

	cases := []struct {
		desc string
		p    senml.Pack
		err  error
	}{
		{desc: "valid pack", p: pack(), err: nil},
		{desc: "empty name", p: emptyName, err: senml.ErrEmptyName},
		{desc: "invalid name", p: invalidName, err: senml.ErrBadChar},
		{desc: "invalid first char in name", p: invalidNameStart, err: senml.ErrBadChar},
		{desc: "multiple value fields", p: multiValue, err: senml.ErrTooManyValues},
		{desc: "no values", p: noValue, err: senml.ErrNoValues},
		{desc: "version omitted on later record", p: validVersion, err: nil},
		{desc: "multiple versions", p: multiVersion, err: senml.ErrVersionChange},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := senml.Validate(&tc.p)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidate_BackfillsVersion(t *testing.T) {
	p := pack()
	p.Records[1].BaseVersion = 0
	require.NoError(t, senml.Validate(&p))
	assert.Equal(t, uint(11), p.Records[1].BaseVersion)
}

func TestValidate_VersionAdoptedLate(t *testing.T) {
	p := senml.Pack{Records: []senml.Record{
		{Name: "a", Value: f64(1)},
		{Name: "b", BaseVersion: 5, Value: f64(2)},
		{Name: "c", Value: f64(3)},
	}}
	require.NoError(t, senml.Validate(&p))
	assert.Equal(t, uint(0), p.Records[0].BaseVersion)
	assert.Equal(t, uint(5), p.Records[2].BaseVersion)
}

func TestValidate_StopsAtFirstViolationMidPack(t *testing.T) {
	p := senml.Pack{Records: []senml.Record{
		{Name: "ok", Value: f64(1)},
		{Name: "-bad", Value: f64(1)},
		{Name: "", Value: f64(1)},
	}}
	err := senml.Validate(&p)
	require.Error(t, err)
	assert.ErrorIs(t, err, senml.ErrBadChar)

	var iss senml.Issue
	require.True(t, errors.As(err, &iss))
	assert.Equal(t, 1, iss.Index)
	assert.Equal(t, "/1/n", iss.Path)
}

func TestValidate_Names(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"urn:dev:ow:10e2073a01080063", true},
		{"a-b.c/d_e:f", true},
		{"Z9", true},
		{"/foo", false},
		{"-foo", false},
		{":foo", false},
		{".foo", false},
		{"_foo", false},
		{`\o/`, false},
		{"has space", false},
		{"temp°", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := senml.Pack{Records: []senml.Record{{Name: tc.name, Value: f64(1)}}}
			err := senml.Validate(&p)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, senml.ErrBadChar)
		})
	}
}

func TestValidate_BaseNameCarriesAcrossRecords(t *testing.T) {
	p := senml.Pack{Records: []senml.Record{
		{BaseName: "dev1/", Name: "temp", Value: f64(20)},
		{Value: f64(21)},
	}}
	assert.NoError(t, senml.Validate(&p))
}

func TestValidate_SumStandsInForValue(t *testing.T) {
	own := senml.Pack{Records: []senml.Record{{Name: "energy", Sum: f64(0)}}}
	assert.NoError(t, senml.Validate(&own))

	inherited := senml.Pack{Records: []senml.Record{
		{BaseName: "dev", BaseSum: 5, Name: "a", Value: f64(1)},
		{Name: "b"},
	}}
	assert.NoError(t, senml.Validate(&inherited))

	// A sum never makes room for a second value.
	two := senml.Pack{Records: []senml.Record{{Name: "x", Value: f64(1), StringValue: str("s"), Sum: f64(1)}}}
	assert.ErrorIs(t, senml.Validate(&two), senml.ErrTooManyValues)
}

func TestValidate_ZeroValuesArePresent(t *testing.T) {
	p := senml.Pack{Records: []senml.Record{
		{Name: "a", Value: f64(0)},
		{Name: "b", BoolValue: boolp(false)},
		{Name: "c", StringValue: str("")},
		{Name: "d", DataValue: str("")},
	}}
	assert.NoError(t, senml.Validate(&p))
}

func TestValidateAll_ReportsEachBadRecord(t *testing.T) {
	p := senml.Pack{Records: []senml.Record{
		{Name: "ok", Value: f64(1)},
		{Name: "_bad", Value: f64(1)},
		{Name: "none"},
		{Name: "two", Value: f64(1), BoolValue: boolp(true)},
		{Name: "fine", StringValue: str("x")},
	}}
	iss := senml.ValidateAll(&p)
	require.Len(t, iss, 3)
	assert.Equal(t, senml.CodeBadChar, iss[0].Code)
	assert.Equal(t, 1, iss[0].Index)
	assert.Equal(t, senml.CodeNoValues, iss[1].Code)
	assert.Equal(t, "/2", iss[1].Path)
	assert.Equal(t, senml.CodeTooManyValues, iss[2].Code)
	assert.Equal(t, 3, iss[2].Index)

	got, ok := senml.AsIssues(iss)
	require.True(t, ok)
	assert.Len(t, got, 3)
}

func TestValidateAll_ValidPack(t *testing.T) {
	p := pack()
	assert.Nil(t, senml.ValidateAll(&p))
}
