// Package slots generates the ordered universe of bookable TimeSlots and
// their grouping into TimeBlocks, given a set of facilities and a Rules
// bundle. It is the Go-native generalization of the teacher's
// calendar.go GenerateDates: instead of one weekday at a time, it walks
// every day in the season window and, for each facility, emits one slot
// per court per game-duration segment inside whichever window (weeknight
// or Saturday) applies to that day.
package slots

import (
	"sort"
	"time"

	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/rules"
)

// Generate returns every valid TimeSlot across all facilities for the
// season window described by r, sorted by (date, facility, court, start),
// per spec.md §4.2.
func Generate(facilities []domain.Facility, r rules.Rules) []domain.TimeSlot {
	var out []domain.TimeSlot
	for _, f := range facilities {
		out = append(out, generateForFacility(f, r)...)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.FacilityID != b.FacilityID {
			return a.FacilityID < b.FacilityID
		}
		if a.Court != b.Court {
			return a.Court < b.Court
		}
		return a.Start.Before(b.Start)
	})
	return out
}

// GenerateForDivision returns the subset of slots usable by a division,
// filtering out facilities that don't meet the division's requirements
// (e.g. short rims). This prefiltering is mandatory for the optimizer to
// search only a division's legal slot space rather than the whole
// facility universe (spec.md §4.2).
func GenerateForDivision(facilities []domain.Facility, r rules.Rules, d domain.Division) []domain.TimeSlot {
	eligible := make([]domain.Facility, 0, len(facilities))
	for _, f := range facilities {
		if f.EligibleForDivision(d) {
			eligible = append(eligible, f)
		}
	}
	return Generate(eligible, r)
}

func generateForFacility(f domain.Facility, r rules.Rules) []domain.TimeSlot {
	var out []domain.TimeSlot
	start := domain.NormalizeDate(r.SeasonStart)
	end := domain.NormalizeDate(r.SeasonEnd)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !f.IsAvailable(day, r.PlayOnSunday, r.Holidays) {
			continue
		}

		window, ok := windowFor(day, r)
		if !ok {
			continue
		}

		segments := segmentWindow(day, window, r.GameDuration())
		for court := 1; court <= f.CourtCount; court++ {
			for _, seg := range segments {
				out = append(out, domain.TimeSlot{
					FacilityID: f.ID,
					Court:      court,
					Date:       day,
					Start:      seg.start,
					End:        seg.end,
				})
			}
		}
	}
	return out
}

// windowFor selects the weeknight or Saturday window applicable to day.
// ok is always true: every day reaching it has a window (Sunday
// is already excluded earlier via IsAvailable when play_on_sunday is false).
func windowFor(day time.Time, r rules.Rules) (rules.Window, bool) {
	switch day.Weekday() {
	case time.Saturday:
		return r.SaturdayWindow, true
	case time.Sunday:
		// Only reachable when play_on_sunday is enabled; treat Sunday
		// like a Saturday for window purposes.
		return r.SaturdayWindow, true
	default:
		return r.WeeknightWindow, true
	}
}

type segment struct {
	start time.Time
	end   time.Time
}

// segmentWindow partitions a Window into consecutive game_duration_minutes
// segments anchored at midnight on day.
func segmentWindow(day time.Time, w rules.Window, duration time.Duration) []segment {
	if duration <= 0 {
		return nil
	}
	var segments []segment
	cursor := day.Add(w.Start)
	windowEnd := day.Add(w.End)
	for {
		segEnd := cursor.Add(duration)
		if segEnd.After(windowEnd) {
			break
		}
		segments = append(segments, segment{start: cursor, end: segEnd})
		cursor = segEnd
	}
	return segments
}

// Blocks groups consecutive same-(facility, court, date) slots into
// TimeBlocks, per spec.md §4.2.
func Blocks(slots []domain.TimeSlot) []domain.TimeBlock {
	var blocks []domain.TimeBlock
	var current *domain.TimeBlock

	for _, s := range slots {
		if current != nil &&
			current.FacilityID == s.FacilityID &&
			current.Court == s.Court &&
			current.Date.Equal(s.Date) &&
			len(current.Slots) > 0 &&
			current.Slots[len(current.Slots)-1].End.Equal(s.Start) {
			current.Slots = append(current.Slots, s)
			continue
		}
		if current != nil {
			blocks = append(blocks, *current)
		}
		current = &domain.TimeBlock{
			FacilityID: s.FacilityID,
			Court:      s.Court,
			Date:       s.Date,
			Slots:      []domain.TimeSlot{s},
		}
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}
