package constraints

import (
	"math"

	"pubgames/leagueschedule/domain"
)

// SoftConstraint scores an entire schedule in [0,1], higher is better.
// The evaluator multiplies each rule's score by its configured weight
// (Context.Rules.Weight(rule.Key())) to produce the objective total.
type SoftConstraint interface {
	Name() string
	Key() string
	Score(s *domain.Schedule, ctx Context) float64
}

// SoftConstraints returns the S1-S8 registry in spec.md order.
func SoftConstraints() []SoftConstraint {
	return []SoftConstraint{
		clusterMatch{base{"S1_cluster_match"}},
		tierMatch{base{"S2_tier_match"}},
		rivalsPlayed{base{"S3_rivals_played"}},
		homeAwayBalance{base{"S4_home_away_balance"}},
		hostSchoolHome{base{"S5_host_school_home"}},
		schoolClustering{base{"S6_school_clustering"}},
		coachClustering{base{"S7_coach_clustering"}},
		weeknightUtilization{base{"S8_weeknight_utilization"}},
	}
}

func (b base) Key() string { return b.name }

type clusterMatch struct{ base }

func (clusterMatch) Score(s *domain.Schedule, ctx Context) float64 {
	games := s.Games()
	if len(games) == 0 {
		return 1
	}
	matched := 0
	for _, g := range games {
		home, hok := ctx.Teams[g.HomeTeamID]
		away, aok := ctx.Teams[g.AwayTeamID]
		if hok && aok && home.Cluster != "" && home.Cluster == away.Cluster {
			matched++
		}
	}
	return float64(matched) / float64(len(games))
}

type tierMatch struct{ base }

func (tierMatch) Score(s *domain.Schedule, ctx Context) float64 {
	games := s.Games()
	if len(games) == 0 {
		return 1
	}
	total := 0.0
	for _, g := range games {
		home, hok := ctx.Teams[g.HomeTeamID]
		away, aok := ctx.Teams[g.AwayTeamID]
		if !hok || !aok {
			continue
		}
		diff := math.Abs(float64(home.Tier - away.Tier))
		// tier 1..4, max diff 3; closer tiers score nearer to 1.
		total += 1 - diff/3
	}
	return total / float64(len(games))
}

type rivalsPlayed struct{ base }

func (rivalsPlayed) Score(s *domain.Schedule, ctx Context) float64 {
	total, realized := 0, 0
	seen := map[string]struct{}{}
	for _, t := range ctx.Teams {
		for _, rivalID := range t.RivalIDs() {
			key := domain.PairKey(t.ID, rivalID)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			total++
			if s.RematchCount(t.ID, rivalID) > 0 {
				realized++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(realized) / float64(total)
}

type homeAwayBalance struct{ base }

func (homeAwayBalance) Score(s *domain.Schedule, ctx Context) float64 {
	if len(ctx.Teams) == 0 {
		return 1
	}
	total := 0.0
	for id := range ctx.Teams {
		home, away := 0, 0
		for _, g := range s.GamesByTeam(id) {
			if g.HomeTeamID == id {
				home++
			} else {
				away++
			}
		}
		n := home + away
		if n == 0 {
			total += 1
			continue
		}
		imbalance := math.Abs(float64(home-away)) / float64(n)
		total += 1 - imbalance
	}
	return total / float64(len(ctx.Teams))
}

type hostSchoolHome struct{ base }

func (hostSchoolHome) Score(s *domain.Schedule, ctx Context) float64 {
	games := s.Games()
	relevant := 0
	satisfied := 0
	for _, g := range games {
		home, hok := ctx.Teams[g.HomeTeamID]
		away, aok := ctx.Teams[g.AwayTeamID]
		if !hok || !aok {
			continue
		}
		switch g.Slot.FacilityID {
		case home.HomeFacilityID:
			relevant++
			satisfied++
		case away.HomeFacilityID:
			relevant++
			// away team hosting at its own facility but playing away in
			// this matchup: the preference is violated.
		}
	}
	if relevant == 0 {
		return 1
	}
	return 0.9*float64(satisfied)/float64(relevant) + 0.1
}

type schoolClustering struct{ base }

func (schoolClustering) Score(s *domain.Schedule, ctx Context) float64 {
	type key struct {
		schoolPair string
		date       string
		court      int
		facility   string
	}
	groups := map[string]map[key]bool{}
	pairDates := map[string][]key{}
	for _, g := range s.Games() {
		home, hok := ctx.Teams[g.HomeTeamID]
		away, aok := ctx.Teams[g.AwayTeamID]
		if !hok || !aok {
			continue
		}
		sp := domain.PairKey(home.SchoolID, away.SchoolID)
		dk := g.Slot.Date.Format("2006-01-02")
		k := key{schoolPair: sp, date: dk, court: g.Slot.Court, facility: g.Slot.FacilityID}
		pairDates[sp+"|"+dk] = append(pairDates[sp+"|"+dk], k)
		if groups[sp] == nil {
			groups[sp] = map[key]bool{}
		}
		groups[sp][k] = true
	}
	if len(pairDates) == 0 {
		return 1
	}
	contiguous := 0
	for _, ks := range pairDates {
		single := true
		first := ks[0]
		for _, k := range ks[1:] {
			if k.court != first.court || k.facility != first.facility {
				single = false
				break
			}
		}
		if single {
			contiguous++
		}
	}
	return float64(contiguous) / float64(len(pairDates))
}

type coachClustering struct{ base }

func (coachClustering) Score(s *domain.Schedule, ctx Context) float64 {
	byCoachDate := map[string][]domain.Game{}
	for _, g := range s.Games() {
		home, hok := ctx.Teams[g.HomeTeamID]
		if !hok || home.CoachID == "" {
			continue
		}
		k := home.CoachID + "|" + g.Slot.Date.Format("2006-01-02")
		byCoachDate[k] = append(byCoachDate[k], g)
	}
	if len(byCoachDate) == 0 {
		return 1
	}
	consecutive := 0
	for _, games := range byCoachDate {
		if isConsecutive(games) {
			consecutive++
		}
	}
	return float64(consecutive) / float64(len(byCoachDate))
}

// isConsecutive reports whether games (already sharing a date) occupy
// back-to-back start times on the same court.
func isConsecutive(games []domain.Game) bool {
	if len(games) <= 1 {
		return true
	}
	sorted := append([]domain.Game(nil), games...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Slot.Start.Before(sorted[i].Slot.Start) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Slot.End.Equal(sorted[i].Slot.Start) || sorted[i-1].Slot.Court != sorted[i].Slot.Court {
			return false
		}
	}
	return true
}

type weeknightUtilization struct{ base }

func (weeknightUtilization) Score(s *domain.Schedule, ctx Context) float64 {
	weeknight, saturday := 0, 0
	for _, g := range s.Games() {
		wd := g.Slot.Date.Weekday()
		if wd == 6 { // time.Saturday == 6
			saturday++
		} else if wd != 0 {
			weeknight++
		}
	}
	total := weeknight + saturday
	if total == 0 {
		return 1
	}
	return float64(weeknight) / float64(total)
}
