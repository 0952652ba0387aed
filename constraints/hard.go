package constraints

import (
	"time"

	"pubgames/leagueschedule/domain"
)

// HardConstraint checks a single candidate Game against the games already
// placed in s. It never inspects g.ID's own presence in s — callers run
// this before insertion (the optimizer, for admission) or while replaying
// a finished schedule one game at a time (Validate, for auditing).
type HardConstraint interface {
	Name() string
	Check(s *domain.Schedule, ctx Context, g domain.Game) (ok bool, reason string)
}

// HardConstraints returns the H1-H10 registry in spec.md order.
func HardConstraints() []HardConstraint {
	return []HardConstraint{
		noSharedSlot{base{"H1_no_shared_slot"}},
		noOverlapForTeam{base{"H2_no_overlap_for_team"}},
		frequencyCap{base{"H3_frequency_cap"}},
		maxDoubleheaders{base{"H4_max_doubleheaders"}},
		doubleheaderBreak{base{"H5_doubleheader_break"}},
		doNotPlay{base{"H6_do_not_play"}},
		facilityEligibility{base{"H7_facility_eligibility"}},
		noExcludedDate{base{"H8_no_excluded_date"}},
		noSameSchool{base{"H9_no_same_school"}},
		maxRematches{base{"H10_max_rematches"}},
	}
}

type noSharedSlot struct{ base }

func (noSharedSlot) Check(s *domain.Schedule, _ Context, g domain.Game) (bool, string) {
	if s.HasSlot(g.Slot) {
		return false, "slot already occupied"
	}
	return true, ""
}

type noOverlapForTeam struct{ base }

func (noOverlapForTeam) Check(s *domain.Schedule, _ Context, g domain.Game) (bool, string) {
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		for _, existing := range s.GamesByTeam(teamID) {
			// Any facility or court: a team cannot be in two places at once.
			if existing.Slot.Start.Before(g.Slot.End) && g.Slot.Start.Before(existing.Slot.End) {
				return false, "team already has an overlapping game"
			}
		}
	}
	return true, ""
}

type frequencyCap struct{ base }

func (frequencyCap) Check(s *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		games := s.GamesByTeam(teamID)
		in7 := 1 // counting g itself
		in14 := 1
		for _, existing := range games {
			days := daysBetween(existing.Slot.Date, g.Slot.Date)
			if days < 7 {
				in7++
			}
			if days < 14 {
				in14++
			}
		}
		if in7 > ctx.Rules.MaxGamesPer7Days {
			return false, "exceeds max games per 7 days"
		}
		if in14 > ctx.Rules.MaxGamesPer14Days {
			return false, "exceeds max games per 14 days"
		}
	}
	return true, ""
}

// daysBetween returns the absolute number of whole days between a and b.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a).Hours() / 24
	if d < 0 {
		d = -d
	}
	return int(d)
}

type maxDoubleheaders struct{ base }

func (maxDoubleheaders) Check(s *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		sameDay := s.GamesByDate(g.Slot.Date.Format("2006-01-02"))
		hasGameToday := false
		for _, existing := range sameDay {
			if existing.Involves(teamID) {
				hasGameToday = true
				break
			}
		}
		if !hasGameToday {
			continue
		}
		doubleheaders := countDoubleheaders(s, teamID)
		if doubleheaders+1 > ctx.Rules.MaxDoubleheadersPerSeason {
			return false, "exceeds max doubleheaders per season"
		}
	}
	return true, ""
}

func countDoubleheaders(s *domain.Schedule, teamID string) int {
	byDate := map[string]int{}
	for _, g := range s.GamesByTeam(teamID) {
		byDate[g.Slot.Date.Format("2006-01-02")]++
	}
	count := 0
	for _, n := range byDate {
		if n >= 2 {
			count++
		}
	}
	return count
}

type doubleheaderBreak struct{ base }

func (doubleheaderBreak) Check(s *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	minGap := ctx.Rules.DoubleheaderBreakMinutes
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		for _, existing := range s.GamesByDate(g.Slot.Date.Format("2006-01-02")) {
			if !existing.Involves(teamID) {
				continue
			}
			gap := g.Slot.Start.Sub(existing.Slot.End)
			if gap < 0 {
				gap = existing.Slot.Start.Sub(g.Slot.End)
			}
			if gap.Minutes() < float64(minGap) {
				return false, "doubleheader break too short"
			}
		}
	}
	return true, ""
}

type doNotPlay struct{ base }

func (doNotPlay) Check(_ *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	home, ok := ctx.Teams[g.HomeTeamID]
	if !ok {
		return true, ""
	}
	if home.IsDoNotPlay(g.AwayTeamID) {
		return false, "teams are on the do-not-play list"
	}
	return true, ""
}

type facilityEligibility struct{ base }

func (facilityEligibility) Check(_ *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	f, ok := ctx.Facilities[g.Slot.FacilityID]
	if !ok {
		return false, "unknown facility"
	}
	if !f.EligibleForDivision(g.Division) {
		return false, "facility not eligible for division"
	}
	return true, ""
}

type noExcludedDate struct{ base }

func (noExcludedDate) Check(_ *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	f, ok := ctx.Facilities[g.Slot.FacilityID]
	if !ok {
		return false, "unknown facility"
	}
	if !f.IsAvailable(g.Slot.Date, ctx.Rules.PlayOnSunday, ctx.Rules.Holidays) {
		return false, "date excluded at this facility"
	}
	return true, ""
}

type noSameSchool struct{ base }

func (noSameSchool) Check(_ *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	home, hok := ctx.Teams[g.HomeTeamID]
	away, aok := ctx.Teams[g.AwayTeamID]
	if !hok || !aok {
		return true, ""
	}
	if home.SchoolID == away.SchoolID {
		return false, "teams belong to the same school"
	}
	return true, ""
}

type maxRematches struct{ base }

func (maxRematches) Check(s *domain.Schedule, ctx Context, g domain.Game) (bool, string) {
	if s.RematchCount(g.HomeTeamID, g.AwayTeamID)+1 > ctx.Rules.MaxRematches {
		return false, "exceeds max rematches for this pair"
	}
	return true, ""
}
