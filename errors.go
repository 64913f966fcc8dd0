package senml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/senml/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeVersionChange     = "version_change"
	CodeUnsupportedFormat = "unsupported_format"
	CodeEmptyName         = "empty_name"
	CodeTooManyValues     = "too_many_values"
	CodeNoValues          = "no_values"
	CodeBadChar           = "bad_char"
	// Codec-level failures
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeUnknownKey   = "unknown_key"
	CodeTooBig       = "too_big"
)

// Sentinels for errors.Is. Any Issue with the same Code matches.
var (
	ErrVersionChange     = Issue{Code: CodeVersionChange, Message: "version change", Index: -1}
	ErrUnsupportedFormat = Issue{Code: CodeUnsupportedFormat, Message: "unsupported format", Index: -1}
	ErrEmptyName         = Issue{Code: CodeEmptyName, Message: "empty name", Index: -1}
	ErrTooManyValues     = Issue{Code: CodeTooManyValues, Message: "more than one value in the record", Index: -1}
	ErrNoValues          = Issue{Code: CodeNoValues, Message: "no value or sum field found", Index: -1}
	ErrBadChar           = Issue{Code: CodeBadChar, Message: "invalid char", Index: -1}
	ErrParseError        = Issue{Code: CodeParseError, Message: "parse error", Index: -1}
	ErrDuplicateKey      = Issue{Code: CodeDuplicateKey, Message: "duplicate key", Index: -1}
	ErrUnknownKey        = Issue{Code: CodeUnknownKey, Message: "unknown key", Index: -1}
	ErrTooBig            = Issue{Code: CodeTooBig, Message: "payload too big", Index: -1}
)

// Issue represents a single validation or codec failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /2/n). Empty when not tied to the input.
	Code    string // One of the codes listed above.
	Message string
	Index   int   // Record index, -1 when not bound to a record.
	Cause   error // Optional: underlying error.
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Message + " at " + i.Path
}

// Is reports whether target is an Issue of the same kind.
func (i Issue) Is(target error) bool {
	var t Issue
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == i.Code
}

func (i Issue) Unwrap() error { return i.Cause }

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. bad_char at /0/n
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error. A single Issue is returned as a
// one-element collection.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var one Issue
	if errors.As(err, &one) {
		return Issues{one}, true
	}
	return nil, false
}

// newIssue builds an Issue with a localized message.
func newIssue(code, path string, index int, data map[string]string) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Index: index}
}

// parseIssue wraps a decoder failure.
func parseIssue(err error) Issue {
	it := newIssue(CodeParseError, "/", -1, nil)
	it.Cause = err
	return it
}
