package pipeline

import "time"

// ResolveTimezone loads an IANA timezone by name, defaulting to UTC for
// empty or unknown names. Matches the user timezone endpoint's contract:
// a user with no stored timezone sees UTC.
func ResolveTimezone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayFromUTC rebuilds a date-only value in the user's timezone. Dates that
// mean "a day" rather than "an instant" (due dates, discovery call dates)
// must not shift by a day near midnight boundaries, so instead of naive
// offset math we take the UTC calendar components and reconstruct local
// midnight from them. A value that is already local midnight in loc is
// returned unchanged; without that check a second application would move
// the day backwards for zones east of UTC.
func DayFromUTC(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	hour, min, sec := local.Clock()
	if hour == 0 && min == 0 && sec == 0 && local.Nanosecond() == 0 {
		return local
	}
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DayToUTC is the submission-side inverse of DayFromUTC: it stores the
// calendar day the user saw as UTC midnight, so the UTC date components
// always encode the intended day.
func DayToUTC(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
