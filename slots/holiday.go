package slots

import "time"

// NearestHoliday reports the absolute distance in days between date and
// the closest configured holiday, and whether one was found within a
// 10-day window. This mirrors the teacher's CheckNearbyHolidays, but
// against the static Rules.Holidays set rather than a fetched holiday
// list, and it never excludes a date by itself — H8 already does that
// exclusion in the constraint evaluator. It exists purely to let a
// ValidationReport surface "this game is within ten days of a holiday" as
// informational context.
func NearestHoliday(date time.Time, holidays map[string]struct{}) (days int, found bool) {
	best := -1
	for key := range holidays {
		h, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		d := int(date.Sub(h).Hours() / 24)
		if d < 0 {
			d = -d
		}
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 || best > 10 {
		return best, false
	}
	return best, true
}
