package optimizer

import (
	"time"

	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
)

// neverRelaxed are the hard constraints spec.md §4.5 says no stage may
// ever relax: H1, H2, H7, H8, H9. They are re-checked here via the same
// registry the constraint evaluator uses elsewhere, so a change to one
// rule's definition never has to be kept in sync by hand in two places.
var neverRelaxed = map[string]bool{
	"H1_no_shared_slot":       true,
	"H2_no_overlap_for_team":  true,
	"H7_facility_eligibility": true,
	"H8_no_excluded_date":     true,
	"H9_no_same_school":       true,
}

// cleanTierOnly are the doubleheader rules (H4, H5), enforced only at the
// clean tier so that a game left with GameStatusClean has passed every
// hard rule.
var cleanTierOnly = map[string]bool{
	"H4_max_doubleheaders":  true,
	"H5_doubleheader_break": true,
}

// relaxedCheck is stage B's admission test: the structural H1/H2/H7/H8/H9
// rules always apply, the doubleheader rules H4/H5 apply at the clean
// tier only, while minimum rest-day gap, the rematch cap, and
// do_not_play enforcement flex according to tier, and the rolling
// frequency caps drop out entirely at the desperate-fill tier.
func relaxedCheck(s *domain.Schedule, ctx constraints.Context, g domain.Game, t tier) (bool, string) {
	for _, rule := range constraints.HardConstraints() {
		if !neverRelaxed[rule.Name()] && !(t.name == "clean" && cleanTierOnly[rule.Name()]) {
			continue
		}
		if ok, why := rule.Check(s, ctx, g); !ok {
			return false, why
		}
	}

	if t.minGapDays > 0 {
		for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
			for _, existing := range s.GamesByTeam(teamID) {
				days := daysBetweenDates(existing.Slot.Date, g.Slot.Date)
				if days != 0 && days < t.minGapDays {
					return false, "rest gap below tier minimum"
				}
			}
		}
	}

	maxRematch := ctx.Rules.MaxRematches
	if t.maxRematchOverride > 0 {
		maxRematch = t.maxRematchOverride
	}
	if s.RematchCount(g.HomeTeamID, g.AwayTeamID)+1 > maxRematch {
		return false, "exceeds rematch cap for this tier"
	}

	home, ok := ctx.Teams[g.HomeTeamID]
	if ok && home.IsDoNotPlay(g.AwayTeamID) {
		if !t.allowDoNotPlay {
			return false, "do_not_play pair"
		}
		// Falls through: permitted at this tier, caller is responsible
		// for recording the relaxation note on the resulting game.
	}

	if !t.dropFrequencyCaps {
		for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
			in7, in14 := 1, 1
			for _, existing := range s.GamesByTeam(teamID) {
				days := daysBetweenDates(existing.Slot.Date, g.Slot.Date)
				if days < 7 {
					in7++
				}
				if days < 14 {
					in14++
				}
			}
			if in7 > ctx.Rules.MaxGamesPer7Days || in14 > ctx.Rules.MaxGamesPer14Days {
				return false, "exceeds frequency cap for this tier"
			}
		}
	}

	return true, ""
}

// daysBetweenDates returns the absolute number of whole days between two
// normalized dates.
func daysBetweenDates(a, b time.Time) int {
	d := b.Sub(a).Hours() / 24
	if d < 0 {
		d = -d
	}
	return int(d)
}
