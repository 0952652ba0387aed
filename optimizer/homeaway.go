package optimizer

import (
	"math/rand"

	"pubgames/leagueschedule/domain"
)

// AssignHomeAway decides, for every game in schedule, which of its two
// teams is the home side, per spec.md §4.6. It rebuilds the schedule
// from scratch (same slots/divisions; ids are unchanged because they do
// not depend on which side is home) rather than editing games already
// held in Schedule and keeping every index consistent by hand.
func AssignHomeAway(schedule *domain.Schedule, teams map[string]domain.Team, rng *rand.Rand) *domain.Schedule {
	out := domain.NewSchedule()
	homeCount := map[string]int{}
	awayCount := map[string]int{}

	for _, g := range schedule.Games() {
		home, away := decideHome(g.HomeTeamID, g.AwayTeamID, g.Slot.FacilityID, teams, homeCount, awayCount, rng)
		reassigned := domain.NewGame(home, away, g.Division, g.Slot)
		reassigned.Status = g.Status
		reassigned.RelaxationNote = g.RelaxationNote
		reassigned.IsDoubleheader = g.IsDoubleheader
		out.AddGame(reassigned)
		homeCount[home]++
		awayCount[away]++
	}
	return out
}

// decideHome implements the three cases from spec.md §4.6: exactly one
// team hosting at its own facility wins home 90% of the time; both
// teams hosting at their own shared facility splits 60/40 favoring the
// higher tier (lower number); neither hosting falls back to whichever
// team is further from its running home/away target (fewer home games
// relative to games played so far).
func decideHome(teamAID, teamBID, facilityID string, teams map[string]domain.Team, homeCount, awayCount map[string]int, rng *rand.Rand) (home, away string) {
	a, b := teams[teamAID], teams[teamBID]
	aHosts := a.HomeFacilityID == facilityID
	bHosts := b.HomeFacilityID == facilityID

	switch {
	case aHosts && !bHosts:
		if rng.Float64() < 0.9 {
			return a.ID, b.ID
		}
		return b.ID, a.ID
	case bHosts && !aHosts:
		if rng.Float64() < 0.9 {
			return b.ID, a.ID
		}
		return a.ID, b.ID
	case aHosts && bHosts:
		favorA := a.Tier <= b.Tier
		if a.Tier == b.Tier {
			favorA = a.ID < b.ID
		}
		if rng.Float64() < 0.6 {
			if favorA {
				return a.ID, b.ID
			}
			return b.ID, a.ID
		}
		if favorA {
			return b.ID, a.ID
		}
		return a.ID, b.ID
	default:
		aBalance := homeCount[a.ID] - awayCount[a.ID]
		bBalance := homeCount[b.ID] - awayCount[b.ID]
		if aBalance == bBalance {
			if a.ID < b.ID {
				return a.ID, b.ID
			}
			return b.ID, a.ID
		}
		if aBalance < bBalance {
			return a.ID, b.ID
		}
		return b.ID, a.ID
	}
}
