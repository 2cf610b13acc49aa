package domain

import (
	"sort"

	m "github.com/mouse-blink/lintel/internal/model"
)

// Regions partitions a file into consecutive inclusive intervals.
type Regions []m.Region

// BuildRegions sweeps the expanded commands in location order and emits
// the regions they delimit. knownIDs is what AllRules expands to.
//
// Events located before the start of the file are clamped to it and events
// sharing a location collapse into one boundary, so no region is empty.
func BuildRegions(commands []m.Command, knownIDs []string) Regions {
	var events []m.Command
	for _, cmd := range commands {
		events = append(events, Expand(cmd)...)
	}

	for i := range events {
		if events[i].Location().Less(m.StartOfFile) {
			events[i].Line = m.StartOfFile.Line
			events[i].Character = m.StartOfFile.Character
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Location().Less(events[j].Location()) })

	current := m.Region{Start: m.StartOfFile, Disabled: map[string]struct{}{}}

	var regions Regions

	for _, ev := range events {
		loc := ev.Location()
		if current.Start.Less(loc) {
			current.End = loc.Prev()
			regions = append(regions, current)
			current = m.Region{Start: loc, Disabled: copySet(current.Disabled)}
		}

		apply(current.Disabled, ev, knownIDs)
	}

	current.End = m.EndOfFile

	return append(regions, current)
}

func apply(disabled map[string]struct{}, ev m.Command, knownIDs []string) {
	for _, id := range ev.RuleIDs {
		ids := []string{id}
		if id == m.AllRules {
			ids = knownIDs
		}

		for _, target := range ids {
			if ev.Action == m.ActionDisable {
				disabled[target] = struct{}{}
			} else {
				delete(disabled, target)
			}
		}
	}
}

func copySet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}

	return out
}

// index returns the position of the region containing loc, or -1.
func (rs Regions) index(loc m.Location) int {
	i := sort.Search(len(rs), func(i int) bool { return loc.Compare(rs[i].End) <= 0 })
	if i < len(rs) && rs[i].Contains(loc) {
		return i
	}

	return -1
}

// IsDisabled reports whether ruleID is suppressed at loc.
func (rs Regions) IsDisabled(ruleID string, loc m.Location) bool {
	i := rs.index(loc)
	if i < 0 {
		return false
	}

	return rs[i].IsDisabled(ruleID)
}

// span returns the extent over which ruleID stays disabled starting at loc.
func (rs Regions) span(ruleID string, loc m.Location) (m.Location, m.Location, bool) {
	i := rs.index(loc)
	if i < 0 || !rs[i].IsDisabled(ruleID) {
		return m.Location{}, m.Location{}, false
	}

	start := rs[i].Start
	end := rs[i].End

	for j := i + 1; j < len(rs) && rs[j].IsDisabled(ruleID); j++ {
		end = rs[j].End
	}

	return start, end, true
}
