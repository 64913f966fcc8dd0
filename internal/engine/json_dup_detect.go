package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// KeyCheck configures DetectJSONKeyIssuesBytes.
type KeyCheck struct {
	// OnDuplicate controls duplicate reporting. DupError stops at the first
	// issue of any kind.
	OnDuplicate DuplicateStrictness
	// Known lists case-sensitive keys. A key that equals one of them only
	// when case is ignored (for example "V" for "v") is reported as
	// unknown_key.
	Known []string
	// MaxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
	MaxIssues int
}

// DetectJSONKeyIssuesBytes reports duplicate keys and case-variant spellings
// of known keys in a JSON byte slice.
func DetectJSONKeyIssuesBytes(data []byte, opt KeyCheck) ([]SimpleIssue, error) {
	if opt.OnDuplicate == DupIgnore && len(opt.Known) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return detectJSONKeyIssues(dec, opt)
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// Paths are JSON Pointers to the repeated key (for example /3/v).
// If onDup is DupIgnore, no issues are produced. With DupError detection stops
// at the first duplicate. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectJSONKeyIssues(dec, KeyCheck{OnDuplicate: onDup, MaxIssues: maxIssues})
}

func detectJSONKeyIssues(dec *json.Decoder, opt KeyCheck) ([]SimpleIssue, error) {
	onDup, maxIssues := opt.OnDuplicate, opt.MaxIssues
	known := make(map[string]struct{}, len(opt.Known))
	folded := make(map[string]string, len(opt.Known))
	for _, k := range opt.Known {
		known[k] = struct{}{}
		folded[strings.ToLower(k)] = k
	}

	var issues []SimpleIssue
	var stack []dupFrame

	// full reports whether the issue limit has been reached.
	appendIssue := func(i SimpleIssue) bool {
		if maxIssues == 0 {
			return true
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			return true
		}
		return false
	}

	// valuePath returns the pointer of the value about to be read and advances
	// the parent frame past it.
	valuePath := func() string {
		n := len(stack)
		if n == 0 {
			return ""
		}
		top := &stack[n-1]
		switch top.kind {
		case kindArray:
			p := top.path + "/" + strconv.Itoa(top.nextIndex)
			top.nextIndex++
			return p
		default:
			top.expectingKey = true
			return top.path + "/" + escapeToken(top.pendingKey)
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return issues, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				p := valuePath()
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: p})
			case '[':
				p := valuePath()
				stack = append(stack, dupFrame{kind: kindArray, path: p})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					top.expectingKey = false
					top.pendingKey = v
					if want, ok := folded[strings.ToLower(v)]; ok {
						if _, exact := known[v]; !exact {
							full := appendIssue(SimpleIssue{
								Code:    "unknown_key",
								Path:    top.path + "/" + escapeToken(v),
								Message: "key '" + v + "' differs from '" + want + "' only in case",
							})
							if full || onDup == DupError {
								return issues, nil
							}
						}
					}
					if onDup == DupIgnore {
						continue
					}
					if _, ok := top.keys[v]; ok {
						full := appendIssue(SimpleIssue{
							Code:    "duplicate_key",
							Path:    top.path + "/" + escapeToken(v),
							Message: "key '" + v + "' duplicated",
						})
						if full || onDup == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					continue
				}
			}
			valuePath()
		default:
			valuePath()
		}
	}

	return issues, nil
}

// escapeToken escapes a key per RFC6901.
func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
