package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectJSONDuplicateKeysBytes_NoDup(t *testing.T) {
	js := []byte(`[{"n":"a","v":1},{"n":"b","v":2}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupWarn, -1)
	require.NoError(t, err)
	assert.Empty(t, iss)
}

func TestDetectJSONDuplicateKeysBytes_PathsPointAtRecordKey(t *testing.T) {
	js := []byte(`[{"n":"a","v":1},{"n":"b","v":2,"u":"x","v":3},{"bn":"c","bn":"d"}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "duplicate_key", iss[0].Code)
	assert.Equal(t, "/1/v", iss[0].Path)
	assert.Equal(t, "/2/bn", iss[1].Path)
}

func TestDetectJSONDuplicateKeysBytes_ErrorStopsAtFirst(t *testing.T) {
	js := []byte(`[{"v":1,"v":2},{"s":1,"s":2}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupError, -1)
	require.NoError(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/0/v", iss[0].Path)
}

func TestDetectJSONDuplicateKeysBytes_NestedValuesDoNotShiftIndexes(t *testing.T) {
	js := []byte(`[{"n":"a","x":{"k":[1,2,{"z":1}]},"v":1},{"n":"b","n":"c"}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/1/n", iss[0].Path)
}

func TestDetectJSONDuplicateKeysBytes_Truncated(t *testing.T) {
	js := []byte(`[{"v":1,"v":2},{"v":1,"v":2},{"v":1,"v":2}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupWarn, 2)
	require.NoError(t, err)
	require.Len(t, iss, 3)
	assert.Equal(t, "truncated", iss[2].Code)
}

func TestDetectJSONDuplicateKeysBytes_IgnoreAndDisabled(t *testing.T) {
	js := []byte(`[{"v":1,"v":2}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupIgnore, -1)
	require.NoError(t, err)
	assert.Nil(t, iss)

	iss, err = DetectJSONDuplicateKeysBytes(js, DupWarn, 0)
	require.NoError(t, err)
	assert.Empty(t, iss)
}

func TestDetectJSONDuplicateKeysBytes_EscapesPointer(t *testing.T) {
	js := []byte(`[{"a/b":1,"a/b":2}]`)
	iss, err := DetectJSONDuplicateKeysBytes(js, DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/0/a~1b", iss[0].Path)
}

func TestDetectJSONKeyIssuesBytes_CaseVariants(t *testing.T) {
	js := []byte(`[{"n":"a","V":1},{"n":"b","v":1,"Bn":"x","other":1}]`)
	iss, err := DetectJSONKeyIssuesBytes(js, KeyCheck{OnDuplicate: DupWarn, Known: []string{"n", "v", "bn"}, MaxIssues: -1})
	require.NoError(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "unknown_key", iss[0].Code)
	assert.Equal(t, "/0/V", iss[0].Path)
	assert.Equal(t, "/1/Bn", iss[1].Path)
}

func TestDetectJSONKeyIssuesBytes_ErrorStopsAtFirst(t *testing.T) {
	js := []byte(`[{"n":"a","v":1,"V":2,"v":3}]`)
	iss, err := DetectJSONKeyIssuesBytes(js, KeyCheck{OnDuplicate: DupError, Known: []string{"v"}, MaxIssues: -1})
	require.NoError(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/0/V", iss[0].Path)
}
