package senml

import (
	"strconv"
	"strings"

	eng "github.com/reoring/senml/internal/engine"
)

// DetectDuplicateKeys reports every key repeated inside one object of a JSON
// payload. maxIssues < 0 means unlimited; a positive limit appends a trailing
// "truncated" issue when reached.
func DetectDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	si, err := eng.DetectJSONDuplicateKeysBytes(data, eng.DupWarn, maxIssues)
	if err != nil {
		return nil, parseIssue(err)
	}
	return fromEngineIssues(si), nil
}

// firstKeyIssue returns the first repeated key or case-variant SenML key
// (for example "V" next to or instead of "v"), if any.
func firstKeyIssue(data []byte) error {
	si, err := eng.DetectJSONKeyIssuesBytes(data, eng.KeyCheck{OnDuplicate: eng.DupError, Known: recordKeys, MaxIssues: -1})
	if err != nil {
		return parseIssue(err)
	}
	if len(si) == 0 {
		return nil
	}
	return fromEngineIssues(si)[0]
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		it := newIssue(s.Code, s.Path, recordIndexOf(s.Path), map[string]string{"path": s.Path})
		if it.Message == s.Code {
			it.Message = s.Message
		}
		iss = append(iss, it)
	}
	return iss
}

// recordIndexOf extracts the leading array index from a pointer like /3/v.
func recordIndexOf(path string) int {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return -1
	}
	return n
}
