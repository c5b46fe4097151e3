package models

// Interval is a half-open time window [Start, End) measured in minutes from midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Empty reports whether the interval covers no time.
func (i Interval) Empty() bool {
	return i.End <= i.Start
}

// Overlaps reports whether i and o share any minute. Back-to-back windows
// (i.End == o.Start) and empty windows never overlap.
func (i Interval) Overlaps(o Interval) bool {
	if i.Empty() || o.Empty() {
		return false
	}
	return i.Start < o.End && o.Start < i.End
}

// Label renders the interval as "HH:MM-HH:MM".
func (i Interval) Label() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}
