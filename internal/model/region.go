package model

// Region is an inclusive interval of a file together with the rules
// disabled throughout it.
type Region struct {
	Start    Location
	End      Location
	Disabled map[string]struct{}
}

// Contains reports whether loc falls inside the region.
func (r Region) Contains(loc Location) bool {
	return r.Start.Compare(loc) <= 0 && loc.Compare(r.End) <= 0
}

// IsDisabled reports whether ruleID is suppressed inside the region.
func (r Region) IsDisabled(ruleID string) bool {
	_, ok := r.Disabled[ruleID]

	return ok
}
