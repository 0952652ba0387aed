// Package planner implements the School-Matchup Planner from spec.md
// §4.4: it turns a set of schools and teams into the ranked list of
// SchoolMatchup work items the optimizer places into TimeBlocks. It is
// the Go-native generalization of the teacher's generateRoundRobin: the
// teacher paired individual teams one round at a time, one date per
// round; this planner instead pairs whole schools across every shared
// division at once, leaving the actual date/block/home-away assignment
// to the optimizer.
package planner

import (
	"math"
	"sort"

	"pubgames/leagueschedule/domain"
)

// MatchupGame is one candidate division-level game inside a SchoolMatchup.
// TeamA/TeamB are unordered — which side hosts is an optimizer decision
// (spec.md §4.6), not a planner one.
type MatchupGame struct {
	Division domain.Division
	TeamAID  string
	TeamBID  string
	CoachAID string
	CoachBID string
}

// SchoolMatchup is the minimum indivisible unit the optimizer tries to
// place into a single TimeBlock: every division two schools share,
// bundled together.
type SchoolMatchup struct {
	SchoolAID string
	SchoolBID string
	Games     []MatchupGame
	Score     float64
}

// Plan returns every cross-school matchup with a shared division, ranked
// by composite desirability (cluster match, tier affinity, rival
// presence, rematch pressure — spec.md §4.4 step 3), most desirable
// first, ties broken by school id pair for determinism.
func Plan(schools map[string]domain.School, teams map[string]domain.Team, existing *domain.Schedule, weights map[string]int) []SchoolMatchup {
	schoolIDs := make([]string, 0, len(schools))
	for id := range schools {
		schoolIDs = append(schoolIDs, id)
	}
	sort.Strings(schoolIDs)

	var matchups []SchoolMatchup
	for i, aID := range schoolIDs {
		for _, bID := range schoolIDs[i+1:] {
			a, b := schools[aID], schools[bID]
			shared := domain.DivisionsShared(a, b)
			if len(shared) == 0 {
				continue
			}

			games := make([]MatchupGame, 0, len(shared))
			for _, div := range shared {
				teamAID, _ := a.TeamFor(div)
				teamBID, _ := b.TeamFor(div)
				games = append(games, MatchupGame{
					Division: div,
					TeamAID:  teamAID,
					TeamBID:  teamBID,
					CoachAID: teams[teamAID].CoachID,
					CoachBID: teams[teamBID].CoachID,
				})
			}
			clusterForCoach(games)

			m := SchoolMatchup{SchoolAID: aID, SchoolBID: bID, Games: games}
			m.Score = desirability(a, b, games, teams, existing, weights)
			matchups = append(matchups, m)
		}
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		if matchups[i].Score != matchups[j].Score {
			return matchups[i].Score > matchups[j].Score
		}
		if matchups[i].SchoolAID != matchups[j].SchoolAID {
			return matchups[i].SchoolAID < matchups[j].SchoolAID
		}
		return matchups[i].SchoolBID < matchups[j].SchoolBID
	})
	return matchups
}

// clusterForCoach reorders games in place by the school-A side's coach
// (the B side's when A has none), stable otherwise, so games sharing that
// coach are adjacent (S7). A coach who appears on the A side of one game
// and only on the B side of another is not grouped.
func clusterForCoach(games []MatchupGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return coachKey(games[i]) < coachKey(games[j])
	})
}

func coachKey(g MatchupGame) string {
	if g.CoachAID != "" {
		return g.CoachAID
	}
	return g.CoachBID
}

func desirability(a, b domain.School, games []MatchupGame, teams map[string]domain.Team, existing *domain.Schedule, weights map[string]int) float64 {
	clusterScore := 0.0
	if a.Cluster != "" && a.Cluster == b.Cluster {
		clusterScore = 1
	}

	tierTotal := 0.0
	rivalTotal := 0.0
	pressureTotal := 0.0
	for _, g := range games {
		ta, tb := teams[g.TeamAID], teams[g.TeamBID]
		diff := math.Abs(float64(ta.Tier - tb.Tier))
		tierTotal += 1 - diff/3

		if ta.IsRival(tb.ID) {
			rivalTotal++
		}

		if existing != nil {
			pressureTotal += float64(existing.RematchCount(ta.ID, tb.ID))
		}
	}
	n := float64(len(games))
	if n == 0 {
		n = 1
	}

	return clusterScore*float64(weights["S1_cluster_match"]) +
		(tierTotal/n)*float64(weights["S2_tier_match"]) +
		(rivalTotal/n)*float64(weights["S3_rivals_played"]) -
		(pressureTotal / n)
}
