package matching

// Policy carries the tunable thresholds used by Match.
type Policy struct {
	// FuzzyThreshold is the minimum similarity for a non-exact entry to
	// become a candidate at all.
	FuzzyThreshold float64

	// NoYearFloor is the minimum similarity for a match when no year is
	// available to corroborate; exact matches bypass it.
	NoYearFloor float64

	// YearTolerance is the allowed distance between the parsed year and a
	// candidate's release year in the year-filtered branch.
	YearTolerance int

	// MaxCandidates bounds how many candidates a Result retains for
	// diagnostics.
	MaxCandidates int
}

// DefaultPolicy returns the standard matching thresholds.
func DefaultPolicy() Policy {
	return Policy{
		FuzzyThreshold: 0.8,
		NoYearFloor:    0.9,
		YearTolerance:  1,
		MaxCandidates:  5,
	}
}

func (p Policy) normalized() Policy {
	if p.FuzzyThreshold <= 0 {
		p.FuzzyThreshold = 0.8
	}
	if p.NoYearFloor <= 0 {
		p.NoYearFloor = 0.9
	}
	if p.YearTolerance <= 0 {
		p.YearTolerance = 1
	}
	if p.MaxCandidates <= 0 {
		p.MaxCandidates = 5
	}
	return p
}
