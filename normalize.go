package senml

// Normalize removes all the base values and expands records values with the base items.
// The base fields apply to the entries in the Record and also to all Records after
// it up to, but not including, the next Record that has that same base field.
//
// The pack is validated first and any error is returned unchanged. Records
// keep their input order; they are not sorted by resolved time.
func Normalize(p Pack) (Pack, error) {
	if err := Validate(&p); err != nil {
		return Pack{}, err
	}

	var bname, bunit string
	var btime, bsum float64

	records := make([]Record, 0, len(p.Records))
	for _, in := range p.Records {
		r := in.clone()
		if r.BaseTime != 0 {
			btime = r.BaseTime
		}
		if r.BaseSum != 0 {
			bsum = r.BaseSum
		}
		if r.BaseUnit != "" {
			bunit = r.BaseUnit
		}
		if r.BaseName != "" {
			bname = r.BaseName
		}

		r.Time += btime
		r.Name = bname + r.Name
		if r.Sum != nil && bsum != 0 {
			s := bsum + *r.Sum
			r.Sum = &s
		}
		if r.Unit == "" && bunit != "" {
			r.Unit = bunit
		}
		// bv is not sticky: it only shifts this record's own value.
		if r.Value != nil && r.BaseValue != 0 {
			v := r.BaseValue + *r.Value
			r.Value = &v
		}

		// Validate has already made the version uniform across records.
		if r.BaseVersion == DefaultVersion {
			r.BaseVersion = 0
		}

		r.BaseTime = 0
		r.BaseValue = 0
		r.BaseUnit = ""
		r.BaseName = ""
		r.BaseSum = 0

		records = append(records, r)
	}

	// TODO: sort records by resolved time once callers agree on tie ordering.
	return Pack{Records: records}, nil
}
