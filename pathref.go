package senml

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths into a pack in a chain-safe way.
type PathRef struct {
	parts []string
	index int
}

// Root returns the pointer to the whole pack.
func Root() PathRef { return PathRef{index: -1} }

// RecordAt returns the pointer to the i-th record.
func RecordAt(i int) PathRef { return Root().Index(i) }

// Index appends an array index. The first index also becomes the record index.
func (p PathRef) Index(i int) PathRef {
	out := PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i)), index: p.index}
	if out.index < 0 {
		out.index = i
	}
	return out
}

// Field appends an object key.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return PathRef{parts: append(append([]string{}, p.parts...), esc), index: p.index}
}

// Pointer renders the JSON Pointer.
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// RecordIndex returns the record the path points into, or -1.
func (p PathRef) RecordIndex() int { return p.index }
