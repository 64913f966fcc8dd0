package senml

// Validate checks the pack in a single left-to-right pass and returns the
// first violation as an Issue, or nil.
//
// Records that omit bver after an earlier record declared one get that version
// written back into p.Records.
func Validate(p *Pack) error {
	var v validator
	for i := range p.Records {
		if iss, ok := v.check(&p.Records[i], i); !ok {
			return iss
		}
	}
	return nil
}

// ValidateAll runs the same pass as Validate but keeps going after a bad
// record, reporting at most one issue per record. It returns nil for a valid
// pack.
func ValidateAll(p *Pack) Issues {
	var v validator
	var out Issues
	for i := range p.Records {
		if iss, ok := v.check(&p.Records[i], i); !ok {
			out = append(out, iss)
		}
	}
	return out
}

// validator carries the running base state of one pass.
type validator struct {
	bver  uint
	bname string
	bsum  float64
}

func (v *validator) check(r *Record, i int) (Issue, bool) {
	at := RecordAt(i)

	// All records in a pack share one version.
	if v.bver == 0 && r.BaseVersion != 0 {
		v.bver = r.BaseVersion
	}
	if v.bver != 0 && r.BaseVersion == 0 {
		r.BaseVersion = v.bver
	}
	if r.BaseVersion != v.bver {
		return IssueAt(at.Field("bver"), CodeVersionChange, nil), false
	}

	if r.BaseName != "" {
		v.bname = r.BaseName
	}
	if r.BaseSum != 0 {
		v.bsum = r.BaseSum
	}

	name := v.bname + r.Name
	if name == "" {
		return IssueAt(at.Field("n"), CodeEmptyName, nil), false
	}

	n := 0
	if r.Value != nil {
		n++
	}
	if r.BoolValue != nil {
		n++
	}
	if r.DataValue != nil {
		n++
	}
	if r.StringValue != nil {
		n++
	}
	if n > 1 {
		return IssueAt(at, CodeTooManyValues, nil), false
	}
	if r.Sum != nil || v.bsum != 0 {
		n++
	}
	if n < 1 {
		return IssueAt(at, CodeNoValues, nil), false
	}

	if !validName(name) {
		return IssueAt(at.Field("n"), CodeBadChar, map[string]string{"name": name}), false
	}
	return Issue{}, true
}

// validName reports whether name uses only [A-Za-z0-9-:./_] and does not
// start with a separator.
func validName(name string) bool {
	if name == "" || isSeparator(name[0]) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case isSeparator(c):
		default:
			return false
		}
	}
	return true
}

func isSeparator(c byte) bool {
	return c == '-' || c == ':' || c == '.' || c == '/' || c == '_'
}
