package optimizer

import (
	"sort"

	"go.uber.org/zap"

	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/internal/enginelog"
	"pubgames/leagueschedule/planner"
)

// tier describes one progressive-greedy relaxation level, per spec.md
// §4.5's pass table. A zero-value maxRematchOverride means "use
// ctx.Rules.MaxRematches unchanged."
type tier struct {
	name                string
	minGapDays          int
	maxRematchOverride  int
	allowDoNotPlay      bool
	dropFrequencyCaps   bool
	dropSoftConstraints bool
}

func tierForPass(pass int) tier {
	switch {
	case pass < 10:
		return tier{name: "clean", minGapDays: 2}
	case pass < 15:
		return tier{name: "relaxed_gap", minGapDays: 1, maxRematchOverride: 3}
	case pass < 20:
		return tier{name: "relaxed_rematch_and_dnp", minGapDays: 0, maxRematchOverride: 3, allowDoNotPlay: true}
	default:
		return tier{name: "desperate_fill", allowDoNotPlay: true, dropFrequencyCaps: true, dropSoftConstraints: true}
	}
}

// StageBResult is the final schedule handed back to the caller, plus a
// shortfall list for any team that never reached target_games_per_team.
type StageBResult struct {
	Schedule   *domain.Schedule
	Shortfalls map[string]int // team id -> games short of target
}

// RunStageB fills in stage A's unplaced matchups and any remaining
// per-team shortfall using a progressive greedy pass loop with
// explicit relaxation tiers (spec.md §4.5). It always runs, even when
// stage A placed everything cleanly — the first pass and the final
// desperate-fill sweep then act as a zero-change "verification mode"
// that unifies the post-run invariants regardless of which stage
// actually did the work.
func RunStageB(a StageAResult, matchups []planner.SchoolMatchup, teams map[string]domain.Team, slotsByDivision map[domain.Division][]domain.TimeSlot, ctx constraints.Context, targetGamesPerTeam, greedyMaxPasses int, log *enginelog.Logger) StageBResult {
	schedule := a.Schedule

	placePending(schedule, ctx, slotsByDivision, a.Unplaced, tierForPass(0))

	for pass := 0; pass < greedyMaxPasses; pass++ {
		t := tierForPass(pass)
		placedAny := fillShortfalls(schedule, ctx, teams, slotsByDivision, targetGamesPerTeam, t)
		log.Debug("greedy pass complete", zap.Int("pass", pass), zap.String("tier", t.name), zap.Bool("placedAny", placedAny))
		if !placedAny && allAtTarget(schedule, teams, targetGamesPerTeam) {
			break
		}
	}

	// Final desperate-fill sweep, unconditionally, regardless of how many
	// passes greedyMaxPasses allowed — spec.md §4.5 treats this as a
	// distinct final tier rather than part of the numbered pass budget.
	fillShortfalls(schedule, ctx, teams, slotsByDivision, targetGamesPerTeam, tierForPass(20))

	shortfalls := map[string]int{}
	for id := range teams {
		n := schedule.TeamCount(id)
		if n < targetGamesPerTeam {
			shortfalls[id] = targetGamesPerTeam - n
		}
	}
	if len(shortfalls) > 0 {
		log.Warn("stage B finished with shortfalls", zap.Int("teams_short", len(shortfalls)))
	}

	return StageBResult{Schedule: schedule, Shortfalls: shortfalls}
}

func placePending(schedule *domain.Schedule, ctx constraints.Context, slotsByDivision map[domain.Division][]domain.TimeSlot, pending []planner.SchoolMatchup, t tier) {
	for _, m := range pending {
		for _, mg := range m.Games {
			slot, ok := findOpenSlot(schedule, ctx, slotsByDivision, mg, t)
			if !ok {
				continue
			}
			g := domain.NewGame(mg.TeamAID, mg.TeamBID, mg.Division, slot)
			g.IsDoubleheader = schedule.PlayedOnDate(g.HomeTeamID, g.Slot.Date) || schedule.PlayedOnDate(g.AwayTeamID, g.Slot.Date)
			if t.name != "clean" {
				g.Status = domain.GameStatusRelaxed
				g.RelaxationNote = t.name
			}
			schedule.AddGame(g)
		}
	}
}

// fillShortfalls advances every team below target by exactly one game if
// a legal opponent and slot exist, processing teams in fewest-games-first
// order (ties by team id) as spec.md §4.5 prescribes. It returns whether
// it placed anything at all.
func fillShortfalls(schedule *domain.Schedule, ctx constraints.Context, teams map[string]domain.Team, slotsByDivision map[domain.Division][]domain.TimeSlot, target int, t tier) bool {
	ids := make([]string, 0, len(teams))
	for id := range teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := schedule.TeamCount(ids[i]), schedule.TeamCount(ids[j])
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})

	placedAny := false
	for _, id := range ids {
		if schedule.TeamCount(id) >= target {
			continue
		}
		team := teams[id]
		opponent, ok := bestOpponent(schedule, ctx, teams, team, t)
		if !ok {
			continue
		}
		mg := planner.MatchupGame{Division: team.Division, TeamAID: team.ID, TeamBID: opponent}
		slot, ok := findOpenSlot(schedule, ctx, slotsByDivision, mg, t)
		if !ok {
			continue
		}
		g := domain.NewGame(team.ID, opponent, team.Division, slot)
		g.IsDoubleheader = schedule.PlayedOnDate(g.HomeTeamID, g.Slot.Date) || schedule.PlayedOnDate(g.AwayTeamID, g.Slot.Date)
		if t.name != "clean" {
			g.Status = domain.GameStatusRelaxed
			g.RelaxationNote = t.name
			if t.name == "desperate_fill" {
				g.Status = domain.GameStatusDesperateFill
			}
		}
		schedule.AddGame(g)
		placedAny = true
	}
	return placedAny
}

// bestOpponent scans every other team in the same division, preferring
// the one with the fewest existing games against team (spreads
// rematches) and a shared cluster, skipping schools already disqualified
// by H9/H6 at this tier.
func bestOpponent(schedule *domain.Schedule, ctx constraints.Context, teams map[string]domain.Team, team domain.Team, t tier) (string, bool) {
	var candidates []string
	for id, other := range teams {
		if id == team.ID || other.Division != team.Division {
			continue
		}
		if other.SchoolID == team.SchoolID {
			continue
		}
		if !t.allowDoNotPlay && team.IsDoNotPlay(id) {
			continue
		}
		maxRematch := ctx.Rules.MaxRematches
		if t.maxRematchOverride > 0 {
			maxRematch = t.maxRematchOverride
		}
		if schedule.RematchCount(team.ID, id) >= maxRematch {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := teams[candidates[i]], teams[candidates[j]]
		ra, rb := schedule.RematchCount(team.ID, a.ID), schedule.RematchCount(team.ID, b.ID)
		if ra != rb {
			return ra < rb
		}
		sameClusterA := a.Cluster == team.Cluster
		sameClusterB := b.Cluster == team.Cluster
		if sameClusterA != sameClusterB {
			return sameClusterA
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], true
}

func findOpenSlot(schedule *domain.Schedule, ctx constraints.Context, slotsByDivision map[domain.Division][]domain.TimeSlot, mg planner.MatchupGame, t tier) (domain.TimeSlot, bool) {
	for _, slot := range slotsByDivision[mg.Division] {
		g := domain.NewGame(mg.TeamAID, mg.TeamBID, mg.Division, slot)
		if ok, _ := relaxedCheck(schedule, ctx, g, t); ok {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}

func allAtTarget(schedule *domain.Schedule, teams map[string]domain.Team, target int) bool {
	for id := range teams {
		if schedule.TeamCount(id) < target {
			return false
		}
	}
	return true
}
