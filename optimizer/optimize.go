package optimizer

import (
	"math/rand"

	"go.uber.org/zap"

	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/internal/enginelog"
	"pubgames/leagueschedule/planner"
	"pubgames/leagueschedule/rules"
	"pubgames/leagueschedule/slots"
)

// Result bundles the final schedule with the bookkeeping the root
// Generate entry point needs to build a ValidationReport: which teams
// never reached target, and by how many games.
type Result struct {
	Schedule   *domain.Schedule
	Shortfalls map[string]int
}

// Run executes the full two-stage optimizer plus home/away assignment
// described in spec.md §4.5-§4.6: plan school matchups, seed and anneal
// stage A, progressively fill via stage B's relaxation tiers, then
// assign home/away with the seeded PRNG.
func Run(teams map[string]domain.Team, schools map[string]domain.School, facilities map[string]domain.Facility, r rules.Rules, rng *rand.Rand) Result {
	log := enginelog.New("optimizer")

	facilityList := make([]domain.Facility, 0, len(facilities))
	for _, f := range facilities {
		facilityList = append(facilityList, f)
	}

	allSlots := slots.Generate(facilityList, r)
	blocks := slots.Blocks(allSlots)

	divisions := map[domain.Division]bool{}
	for _, t := range teams {
		divisions[t.Division] = true
	}
	slotsByDivision := make(map[domain.Division][]domain.TimeSlot, len(divisions))
	for div := range divisions {
		slotsByDivision[div] = slots.GenerateForDivision(facilityList, r, div)
	}

	ctx := constraints.Context{Teams: teams, Schools: schools, Facilities: facilities, Rules: r}

	matchups := planner.Plan(schools, teams, nil, r.PriorityWeights)

	log.Info("stage A starting", zap.Int("matchups", len(matchups)))
	stageA := RunStageA(matchups, blocks, facilities, ctx, r.CPTimeBudgetSeconds, rng)
	log.Info("stage A complete", zap.Int("unplaced", len(stageA.Unplaced)))

	log.Info("stage B starting", zap.Int("max_passes", r.GreedyMaxPasses))
	stageB := RunStageB(stageA, matchups, teams, slotsByDivision, ctx, r.TargetGamesPerTeam, r.GreedyMaxPasses, log)
	log.Info("stage B complete", zap.Int("shortfall_teams", len(stageB.Shortfalls)))

	final := AssignHomeAway(stageB.Schedule, teams, rng)
	log.Info("home/away assignment complete", zap.Int("games", final.Len()))

	return Result{Schedule: final, Shortfalls: stageB.Shortfalls}
}
